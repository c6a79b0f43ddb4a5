package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/joho/godotenv"

	v1 "ecomdash/api/v1"
	v2 "ecomdash/api/v2"
	"ecomdash/database"
	analyticsapp "ecomdash/internal/analytics/application"
	datasetinfra "ecomdash/internal/dataset/infrastructure"
	exportapp "ecomdash/internal/export/application"
	sharedinfra "ecomdash/internal/shared/infrastructure"
)

func main() {
	// Charge .env
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	source, err := buildSource()
	if err != nil {
		log.Fatal("❌ Erreur initialisation source de données:", err)
	}
	defer database.Close()

	// Services V1 (naïf) et V2 (memoïsation + cache + agrégations parallèles)
	loader := datasetinfra.NewCachedLoader(sharedinfra.NewShardedCache(16))
	dashboardV1 := analyticsapp.NewDashboardServiceV1(source)
	dashboardV2 := analyticsapp.NewDashboardServiceV2(loader, source, sharedinfra.NewShardedCache(16))

	exportService := exportapp.NewExportService(dashboardV2, loader, source)
	defer exportService.Cleanup()

	handlersV1 := v1.NewHandlers(dashboardV1)
	handlersV2 := v2.NewHandlers(dashboardV2, exportService)

	// Health check
	http.HandleFunc("/api/health", healthHandler)

	// API V1 - Non optimisée (rechargement complet à chaque requête)
	http.HandleFunc("/api/v1/dashboard", handlersV1.GetDashboard)

	// API V2 - Optimisée (dataset memoïsé, cache de résultats, calcul parallèle)
	http.HandleFunc("/api/v2/dashboard", handlersV2.GetDashboard)
	http.HandleFunc("/api/v2/export/orders-csv", handlersV2.ExportOrdersCSV)
	http.HandleFunc("/api/v2/export/dashboard-csv", handlersV2.ExportDashboardCSV)
	http.HandleFunc("/api/v2/export/parquet", handlersV2.ExportParquet)

	addr := ":" + getEnv("PORT", "8080")
	log.Printf("Dashboard démarré sur %s (source: %s)", addr, source.Identity())
	log.Fatal(http.ListenAndServe(addr, nil))
}

// buildSource construit la source de données selon DATA_SOURCE (csv | postgres)
func buildSource() (datasetinfra.Source, error) {
	switch mode := getEnv("DATA_SOURCE", "csv"); mode {
	case "csv":
		path := getEnv("CSV_PATH", "data/all_data.csv")
		return datasetinfra.NewCSVSource(path), nil

	case "postgres":
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "ecomdash"),
			getEnv("DB_PASSWORD", "ecomdash"),
			getEnv("DB_NAME", "ecomdash"),
			getEnv("DB_SSLMODE", "disable"),
		)
		if err := database.Init(connStr); err != nil {
			return nil, err
		}
		return datasetinfra.NewPostgresSource(database.DB, database.OrderItemsTable), nil

	default:
		return nil, fmt.Errorf("DATA_SOURCE inconnu: %s", mode)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"message": "Dashboard v1 (non-opti) et v2 (opti) disponibles",
	})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

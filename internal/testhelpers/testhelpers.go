package testhelpers

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	datasetdomain "ecomdash/internal/dataset/domain"
	sharedinfra "ecomdash/internal/shared/infrastructure"
)

// StaticSource source de dataset en mémoire pour les tests
// Compte les chargements pour vérifier la memoïsation
type StaticSource struct {
	ID      string
	Dataset *datasetdomain.Dataset
	loads   int64
}

// NewStaticSource crée une source statique sur un dataset donné
func NewStaticSource(id string, ds *datasetdomain.Dataset) *StaticSource {
	return &StaticSource{ID: id, Dataset: ds}
}

// Identity retourne l'identité de la source
func (s *StaticSource) Identity() string { return "static:" + s.ID }

// Load retourne le dataset en comptant l'appel
func (s *StaticSource) Load() (*datasetdomain.Dataset, error) {
	atomic.AddInt64(&s.loads, 1)
	return s.Dataset, nil
}

// Loads retourne le nombre de chargements effectués
func (s *StaticSource) Loads() int {
	return int(atomic.LoadInt64(&s.loads))
}

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func intPtr(i int) *int              { return &i }
func timePtr(t time.Time) *time.Time { return &t }

func date(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }
func at(y, m, d, h int) time.Time {
	return time.Date(y, time.Month(m), d, h, 0, 0, 0, time.UTC)
}

// FixtureRecords retourne un petit jeu de lignes aux résultats connus:
//   - commande A (2024-01-01, 1 article 50.0, health_beauty): livrée 2 jours
//     après l'estimation, note 2 → Late Delivery
//   - commande B (2024-01-01, 1 article 30.0, toys): livrée 3 jours avant
//     l'estimation, note 5 → On Time Delivery
//   - commande C (2024-01-03, 2 articles 10.0 + 20.0, toys / sans catégorie):
//     expédiée mais non livrée, note absente → inéligible à la satisfaction
//   - commande D (2024-02-10, 1 article 100.0, watches_gifts): livrée le jour
//     exact de l'estimation, note 4 → On Time Delivery
func FixtureRecords() []datasetdomain.OrderItemRecord {
	return []datasetdomain.OrderItemRecord{
		{
			OrderID:               "A",
			OrderStatus:           datasetdomain.OrderStatusDelivered,
			ProductCategory:       strPtr("health_beauty"),
			Price:                 floatPtr(50.0),
			PurchaseTimestamp:     at(2024, 1, 1, 10),
			DeliveredCustomerDate: timePtr(at(2024, 1, 5, 14)),
			EstimatedDeliveryDate: timePtr(date(2024, 1, 3)),
			ReviewScore:           intPtr(2),
		},
		{
			OrderID:               "B",
			OrderStatus:           datasetdomain.OrderStatusDelivered,
			ProductCategory:       strPtr("toys"),
			Price:                 floatPtr(30.0),
			PurchaseTimestamp:     at(2024, 1, 1, 15),
			DeliveredCustomerDate: timePtr(at(2024, 1, 2, 9)),
			EstimatedDeliveryDate: timePtr(date(2024, 1, 5)),
			ReviewScore:           intPtr(5),
		},
		{
			OrderID:           "C",
			OrderStatus:       datasetdomain.OrderStatusShipped,
			ProductCategory:   strPtr("toys"),
			Price:             floatPtr(10.0),
			PurchaseTimestamp: at(2024, 1, 3, 8),
		},
		{
			OrderID:           "C",
			OrderStatus:       datasetdomain.OrderStatusShipped,
			Price:             floatPtr(20.0),
			PurchaseTimestamp: at(2024, 1, 3, 8),
		},
		{
			OrderID:               "D",
			OrderStatus:           datasetdomain.OrderStatusDelivered,
			ProductCategory:       strPtr("watches_gifts"),
			Price:                 floatPtr(100.0),
			PurchaseTimestamp:     at(2024, 2, 10, 20),
			DeliveredCustomerDate: timePtr(at(2024, 2, 20, 11)),
			EstimatedDeliveryDate: timePtr(date(2024, 2, 20)),
			ReviewScore:           intPtr(4),
		},
	}
}

// FixtureDataset retourne le dataset de test standard
func FixtureDataset() *datasetdomain.Dataset {
	return datasetdomain.NewDataset(FixtureRecords(), "fixture", 0)
}

var generatedCategories = []string{
	"bed_bath_table", "health_beauty", "sports_leisure", "furniture_decor",
	"computers_accessories", "watches_gifts", "telephony", "toys",
	"garden_tools", "auto",
}

// GenerateRecords génère un dataset synthétique déterministe pour les
// benchmarks: ~ordersPerDay commandes par jour sur days jours, 1 à 3 articles
// par commande, retards de livraison répartis autour de l'estimation
func GenerateRecords(days, ordersPerDay int) []datasetdomain.OrderItemRecord {
	rng := rand.New(rand.NewSource(42))
	base := date(2023, 1, 1)

	var records []datasetdomain.OrderItemRecord
	for d := 0; d < days; d++ {
		day := base.AddDate(0, 0, d)
		for o := 0; o < ordersPerDay; o++ {
			orderID := fmt.Sprintf("gen-%d-%d", d, o)
			purchase := day.Add(time.Duration(rng.Intn(24)) * time.Hour)
			estimated := purchase.AddDate(0, 0, 5+rng.Intn(20))

			status := datasetdomain.OrderStatusDelivered
			var delivered *time.Time
			var review *int
			if rng.Intn(10) == 0 {
				status = datasetdomain.OrderStatusShipped
			} else {
				// Écart en heures autour de l'estimation, pour exercer les
				// arrondis sous-journaliers de la frontière Late / On Time
				offset := time.Duration(rng.Intn(240)-96) * time.Hour
				dt := estimated.Add(offset)
				delivered = &dt
				score := 1 + rng.Intn(5)
				if offset > 0 {
					score = 1 + rng.Intn(3) // les retards notent plus bas
				}
				review = &score
			}

			items := 1 + rng.Intn(3)
			for i := 0; i < items; i++ {
				price := 5.0 + rng.Float64()*195.0
				cat := generatedCategories[rng.Intn(len(generatedCategories))]
				records = append(records, datasetdomain.OrderItemRecord{
					OrderID:               orderID,
					OrderStatus:           status,
					ProductCategory:       &cat,
					Price:                 &price,
					PurchaseTimestamp:     purchase,
					DeliveredCustomerDate: delivered,
					EstimatedDeliveryDate: &estimated,
					ReviewScore:           review,
				})
			}
		}
	}
	return records
}

// GenerateDataset génère un dataset synthétique prêt à l'emploi
func GenerateDataset(days, ordersPerDay int) *datasetdomain.Dataset {
	return datasetdomain.NewDataset(GenerateRecords(days, ordersPerDay), "generated", 0)
}

// NewTestCache crée le cache partagé utilisé par les tests
func NewTestCache() sharedinfra.Cache {
	return sharedinfra.NewShardedCache(16)
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// connString construit la connection string PostgreSQL depuis l'environnement
func connString() string {
	_ = godotenv.Load("../../.env")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "ecomdash"),
		getEnv("DB_PASSWORD", "ecomdash"),
		getEnv("DB_NAME", "ecomdash"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

// SetupTestDB initialise une connexion à la base de données de test
func SetupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	db, err := sql.Open("postgres", connString())
	if err != nil {
		tb.Fatalf("Failed to open database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		tb.Fatalf("Failed to ping database: %v", err)
	}

	return db
}

// SkipIfNoDatabase skip le test/benchmark si la DB n'est pas disponible
func SkipIfNoDatabase(tb testing.TB) {
	tb.Helper()

	db, err := sql.Open("postgres", connString())
	if err != nil {
		tb.Skip("Database not available:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		tb.Skip("Database not available:", err)
	}
}

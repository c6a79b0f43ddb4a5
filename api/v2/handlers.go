package v2

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	analyticsapp "ecomdash/internal/analytics/application"
	analyticsdomain "ecomdash/internal/analytics/domain"
	exportapp "ecomdash/internal/export/application"
)

// Handlers contient tous les handlers pour l'API V2 (optimisée)
type Handlers struct {
	dashboardService *analyticsapp.DashboardServiceV2
	exportService    *exportapp.ExportService
}

// NewHandlers crée une nouvelle instance des handlers V2
func NewHandlers(
	dashboardService *analyticsapp.DashboardServiceV2,
	exportService *exportapp.ExportService,
) *Handlers {
	return &Handlers{
		dashboardService: dashboardService,
		exportService:    exportService,
	}
}

// GetDashboard handler pour GET /api/v2/dashboard?start=2024-01-01&end=2024-03-31
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	start := parseDate(r.URL.Query().Get("start"))
	end := parseDate(r.URL.Query().Get("end"))

	// Service V2: dataset memoïsé + résultat en cache + agrégations parallèles
	dashboard, err := h.dashboardService.GetDashboard(start, end)
	if err != nil {
		log.Printf("Error getting dashboard (V2): %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := dashboardToJSON(dashboard, "v2",
		"Dashboard calculated with V2 (optimized: memoized dataset + cache + parallel aggregations)")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ExportOrdersCSV handler pour GET /api/v2/export/orders-csv
func (h *Handlers) ExportOrdersCSV(w http.ResponseWriter, r *http.Request) {
	start := parseDate(r.URL.Query().Get("start"))
	end := parseDate(r.URL.Query().Get("end"))

	csvData, _, err := h.exportService.ExportOrdersToCSV(start, end)
	if err != nil {
		log.Printf("Error exporting orders CSV: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=orders.csv")
	w.Write(csvData)
}

// ExportDashboardCSV handler pour GET /api/v2/export/dashboard-csv
func (h *Handlers) ExportDashboardCSV(w http.ResponseWriter, r *http.Request) {
	start := parseDate(r.URL.Query().Get("start"))
	end := parseDate(r.URL.Query().Get("end"))

	// Passe par le cache du service V2
	csvData, _, err := h.exportService.ExportDashboardToCSV(start, end)
	if err != nil {
		log.Printf("Error exporting dashboard CSV: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=dashboard.csv")
	w.Write(csvData)
}

// ExportParquet handler pour GET /api/v2/export/parquet
func (h *Handlers) ExportParquet(w http.ResponseWriter, r *http.Request) {
	start := parseDate(r.URL.Query().Get("start"))
	end := parseDate(r.URL.Query().Get("end"))

	// Export avec worker pool + batch processing
	parquetData, _, err := h.exportService.ExportOrdersToParquet(start, end)
	if err != nil {
		log.Printf("Error exporting Parquet: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename=orders.parquet")
	w.Write(parquetData)
}

// parseDate lit une date au format 2006-01-02, zéro si absente ou invalide
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DTOs de réponse, mêmes formes que l'API V1: les deux versions ne diffèrent
// que par la stratégie de calcul, jamais par le contrat de réponse

type periodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type summaryDTO struct {
	TotalOrders  int     `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
	Currency     string  `json:"currency"`
}

type dailyOrdersDTO struct {
	Day        string  `json:"day"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

type categoryDTO struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

type satisfactionDTO struct {
	Status     string  `json:"status"`
	MeanScore  float64 `json:"mean_score"`
	OrderCount int     `json:"order_count"`
}

type dashboardResponse struct {
	Version       string            `json:"version"`
	Message       string            `json:"message"`
	Period        *periodDTO        `json:"period,omitempty"`
	Summary       summaryDTO        `json:"summary"`
	DailyOrders   []dailyOrdersDTO  `json:"daily_orders"`
	TopCategories []categoryDTO     `json:"top_categories"`
	Satisfaction  []satisfactionDTO `json:"delivery_satisfaction"`
}

// dashboardToJSON convertit le dashboard du domaine en DTO de réponse
func dashboardToJSON(d *analyticsdomain.Dashboard, version, message string) dashboardResponse {
	response := dashboardResponse{
		Version: version,
		Message: message,
		Summary: summaryDTO{
			TotalOrders:  d.TotalOrders(),
			TotalRevenue: d.TotalRevenue().Amount(),
			Currency:     d.TotalRevenue().Currency(),
		},
		DailyOrders:   make([]dailyOrdersDTO, 0, len(d.Daily())),
		TopCategories: make([]categoryDTO, 0, analyticsdomain.DefaultTopCategories),
		Satisfaction:  make([]satisfactionDTO, 0, 2),
	}

	if dr := d.DateRange(); !dr.IsZero() {
		response.Period = &periodDTO{
			Start: dr.Start().Format("2006-01-02"),
			End:   dr.End().Format("2006-01-02"),
		}
	}

	for _, daily := range d.Daily() {
		response.DailyOrders = append(response.DailyOrders, dailyOrdersDTO{
			Day:        daily.Day().Format("2006-01-02"),
			OrderCount: daily.OrderCount(),
			Revenue:    daily.Revenue().Amount(),
		})
	}

	for _, c := range d.Categories().Top(analyticsdomain.DefaultTopCategories) {
		response.TopCategories = append(response.TopCategories, categoryDTO{
			Category: c.Category(),
			Revenue:  c.Revenue().Amount(),
		})
	}

	for _, b := range d.Satisfaction().Buckets() {
		response.Satisfaction = append(response.Satisfaction, satisfactionDTO{
			Status:     string(b.Status()),
			MeanScore:  b.MeanScore(),
			OrderCount: b.OrderCount(),
		})
	}

	return response
}

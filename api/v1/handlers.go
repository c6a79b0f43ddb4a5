package v1

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	analyticsapp "ecomdash/internal/analytics/application"
	analyticsdomain "ecomdash/internal/analytics/domain"
)

// Handlers contient tous les handlers pour l'API V1 (non-optimisée)
type Handlers struct {
	dashboardService *analyticsapp.DashboardServiceV1
}

// NewHandlers crée une nouvelle instance des handlers V1
func NewHandlers(dashboardService *analyticsapp.DashboardServiceV1) *Handlers {
	return &Handlers{
		dashboardService: dashboardService,
	}
}

// GetDashboard handler pour GET /api/v1/dashboard?start=2024-01-01&end=2024-03-31
// PERFORMANCE: Très lent car V1 re-parse la source entière à chaque requête
// puis calcule les trois agrégations séquentiellement (voir dashboard_service_v1.go)
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	// Période demandée; une date absente ou illisible donne le zéro de time.Time,
	// le service replie alors sur l'étendue complète du dataset
	start := parseDate(r.URL.Query().Get("start"))
	end := parseDate(r.URL.Query().Get("end"))

	dashboard, err := h.dashboardService.GetDashboard(start, end)
	if err != nil {
		log.Printf("Error getting dashboard (V1): %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := dashboardToJSON(dashboard, "v1",
		"Dashboard calculated with V1 (inefficient: full reload + sequential aggregations)")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
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

// DTOs de réponse: le domaine garde ses champs privés, l'API expose sa propre forme

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

	// Période omise quand le dataset est vide (aucune étendue de repli)
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

	// Seaux présents uniquement: un groupe absent n'apparaît pas à zéro
	for _, b := range d.Satisfaction().Buckets() {
		response.Satisfaction = append(response.Satisfaction, satisfactionDTO{
			Status:     string(b.Status()),
			MeanScore:  b.MeanScore(),
			OrderCount: b.OrderCount(),
		})
	}

	return response
}

package application

import (
	"time"

	"ecomdash/internal/analytics/domain"
	datasetinfra "ecomdash/internal/dataset/infrastructure"
)

// DashboardServiceV1 service de calcul du tableau de bord (Version 1, naïve)
// Recharge et re-parse la source à CHAQUE appel, puis enchaîne les trois
// agrégations séquentiellement, sans aucun cache. Conservé comme référence de
// comparaison pour les benchmarks V1 vs V2: les résultats sont strictement
// identiques à ceux de V2, seul le coût diffère
type DashboardServiceV1 struct {
	source datasetinfra.Source
}

// NewDashboardServiceV1 crée une nouvelle instance de DashboardServiceV1
func NewDashboardServiceV1(source datasetinfra.Source) *DashboardServiceV1 {
	return &DashboardServiceV1{source: source}
}

// GetDashboard recalcule les trois tables pour la période demandée
// Période invalide ou incomplète: repli silencieux sur la période complète
func (s *DashboardServiceV1) GetDashboard(start, end time.Time) (*domain.Dashboard, error) {
	// Re-parse la source entière (c'est le problème que V2 corrige)
	ds, err := s.source.Load()
	if err != nil {
		return nil, err
	}

	dateRange := ds.ResolveRange(start, end)
	records := ds.Filter(dateRange).Records()

	dashboard := domain.NewDashboard(dateRange)

	// Calcul séquentiel, une agrégation après l'autre
	dashboard.SetDaily(BuildDailyOrders(records))
	dashboard.SetCategories(BuildCategoryRanking(records))
	dashboard.SetSatisfaction(BuildSatisfaction(records))

	orders, revenue := buildTotals(records)
	dashboard.SetTotals(orders, revenue)

	return dashboard, nil
}

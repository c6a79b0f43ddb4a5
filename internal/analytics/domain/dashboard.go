package domain

import (
	"time"

	datasetdomain "ecomdash/internal/dataset/domain"
	"ecomdash/internal/shared/domain"
)

// DailyOrders représente un seau d'un jour de la série temporelle
type DailyOrders struct {
	day        time.Time
	orderCount int
	revenue    domain.Money
}

// NewDailyOrders crée une nouvelle instance de DailyOrders
func NewDailyOrders(day time.Time, orderCount int, revenue domain.Money) DailyOrders {
	return DailyOrders{
		day:        domain.Day(day),
		orderCount: orderCount,
		revenue:    revenue,
	}
}

// Day retourne la date calendaire du seau
func (d DailyOrders) Day() time.Time {
	return d.day
}

// OrderCount retourne le nombre de commandes distinctes du jour
func (d DailyOrders) OrderCount() int {
	return d.orderCount
}

// Revenue retourne le chiffre d'affaires du jour (toutes lignes confondues)
func (d DailyOrders) Revenue() domain.Money {
	return d.revenue
}

// CategoryRevenue représente le chiffre d'affaires d'une catégorie produit
type CategoryRevenue struct {
	category string
	revenue  domain.Money
}

// NewCategoryRevenue crée une nouvelle instance de CategoryRevenue
func NewCategoryRevenue(category string, revenue domain.Money) CategoryRevenue {
	return CategoryRevenue{
		category: category,
		revenue:  revenue,
	}
}

// Category retourne le nom de la catégorie
func (c CategoryRevenue) Category() string {
	return c.category
}

// Revenue retourne le CA de la catégorie
func (c CategoryRevenue) Revenue() domain.Money {
	return c.revenue
}

// DefaultTopCategories taille du palmarès affiché par le dashboard
const DefaultTopCategories = 5

// CategoryRanking représente le classement complet des catégories par CA
// Le top-5 est une vue sur le classement, pas un calcul séparé: re-classer
// reflète toujours le dernier filtre appliqué
type CategoryRanking struct {
	entries []CategoryRevenue
}

// NewCategoryRanking crée un classement à partir d'entrées déjà ordonnées
// (CA décroissant, égalité départagée par nom de catégorie croissant)
func NewCategoryRanking(entries []CategoryRevenue) CategoryRanking {
	return CategoryRanking{entries: entries}
}

// All retourne le classement complet
func (r CategoryRanking) All() []CategoryRevenue {
	return append([]CategoryRevenue{}, r.entries...)
}

// Top retourne les n premières catégories (toutes si moins de n, sans padding)
func (r CategoryRanking) Top(n int) []CategoryRevenue {
	if n > len(r.entries) {
		n = len(r.entries)
	}
	if n < 0 {
		n = 0
	}
	return append([]CategoryRevenue{}, r.entries[:n]...)
}

// Len retourne le nombre de catégories classées
func (r CategoryRanking) Len() int {
	return len(r.entries)
}

// IsEmpty vérifie si le classement est vide
func (r CategoryRanking) IsEmpty() bool {
	return len(r.entries) == 0
}

// SatisfactionBucket représente la note moyenne d'un groupe de livraison
type SatisfactionBucket struct {
	status     datasetdomain.DeliveryStatus
	meanScore  float64
	orderCount int
}

// NewSatisfactionBucket crée un seau de satisfaction
func NewSatisfactionBucket(status datasetdomain.DeliveryStatus, meanScore float64, orderCount int) SatisfactionBucket {
	return SatisfactionBucket{
		status:     status,
		meanScore:  meanScore,
		orderCount: orderCount,
	}
}

// Status retourne le statut de livraison du seau
func (b SatisfactionBucket) Status() datasetdomain.DeliveryStatus {
	return b.status
}

// MeanScore retourne la note moyenne (arrondie à 2 décimales)
func (b SatisfactionBucket) MeanScore() float64 {
	return b.meanScore
}

// OrderCount retourne le nombre de commandes distinctes ayant contribué
func (b SatisfactionBucket) OrderCount() int {
	return b.orderCount
}

// SatisfactionSummary représente le résultat de l'analyse de satisfaction
// Résultat typé: 0, 1 ou 2 seaux présents. Un groupe absent des données
// filtrées est OMIS, jamais rapporté à zéro — la présentation supprime la
// barre correspondante au lieu d'afficher 0
type SatisfactionSummary struct {
	buckets []SatisfactionBucket
}

// NewSatisfactionSummary crée un résumé à partir des seaux présents
func NewSatisfactionSummary(buckets []SatisfactionBucket) SatisfactionSummary {
	return SatisfactionSummary{buckets: buckets}
}

// Buckets retourne les seaux présents (ordre stable: On Time puis Late)
func (s SatisfactionSummary) Buckets() []SatisfactionBucket {
	return append([]SatisfactionBucket{}, s.buckets...)
}

// Mean retourne la note moyenne d'un statut, si le groupe est présent
func (s SatisfactionSummary) Mean(status datasetdomain.DeliveryStatus) (float64, bool) {
	for _, b := range s.buckets {
		if b.status == status {
			return b.meanScore, true
		}
	}
	return 0, false
}

// Len retourne le nombre de groupes présents
func (s SatisfactionSummary) Len() int {
	return len(s.buckets)
}

// IsEmpty vérifie si aucune commande éligible n'a été trouvée
func (s SatisfactionSummary) IsEmpty() bool {
	return len(s.buckets) == 0
}

// Dashboard représente le résultat complet d'un recalcul du tableau de bord
// sur une période: les trois tables et les métriques de synthèse
type Dashboard struct {
	dateRange    domain.DateRange
	totalOrders  int
	totalRevenue domain.Money
	daily        []DailyOrders
	categories   CategoryRanking
	satisfaction SatisfactionSummary
}

// NewDashboard crée un Dashboard vide pour une période résolue
func NewDashboard(dateRange domain.DateRange) *Dashboard {
	return &Dashboard{
		dateRange:    dateRange,
		totalRevenue: domain.BRL(0),
		daily:        make([]DailyOrders, 0),
	}
}

// DateRange retourne la période effectivement utilisée (après repli éventuel)
func (d *Dashboard) DateRange() domain.DateRange {
	return d.dateRange
}

// TotalOrders retourne le nombre de commandes distinctes de la période
func (d *Dashboard) TotalOrders() int {
	return d.totalOrders
}

// TotalRevenue retourne le chiffre d'affaires total de la période
func (d *Dashboard) TotalRevenue() domain.Money {
	return d.totalRevenue
}

// Daily retourne la série temporelle journalière
func (d *Dashboard) Daily() []DailyOrders {
	return append([]DailyOrders{}, d.daily...)
}

// Categories retourne le classement des catégories
func (d *Dashboard) Categories() CategoryRanking {
	return d.categories
}

// Satisfaction retourne le résumé de satisfaction
func (d *Dashboard) Satisfaction() SatisfactionSummary {
	return d.satisfaction
}

// SetTotals définit les métriques de synthèse
func (d *Dashboard) SetTotals(orders int, revenue domain.Money) {
	d.totalOrders = orders
	d.totalRevenue = revenue
}

// SetDaily définit la série journalière
func (d *Dashboard) SetDaily(daily []DailyOrders) {
	d.daily = daily
}

// SetCategories définit le classement des catégories
func (d *Dashboard) SetCategories(ranking CategoryRanking) {
	d.categories = ranking
}

// SetSatisfaction définit le résumé de satisfaction
func (d *Dashboard) SetSatisfaction(summary SatisfactionSummary) {
	d.satisfaction = summary
}

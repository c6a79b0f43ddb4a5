package domain

import (
	"time"

	shareddomain "ecomdash/internal/shared/domain"
)

// OrderStatus représente le statut d'une commande dans le dataset source
type OrderStatus string

const (
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCanceled  OrderStatus = "canceled"
	OrderStatusInvoiced  OrderStatus = "invoiced"
)

// DeliveryStatus représente le verdict de ponctualité d'une livraison
type DeliveryStatus string

const (
	DeliveryOnTime DeliveryStatus = "On Time Delivery"
	DeliveryLate   DeliveryStatus = "Late Delivery"
)

// OrderItemRecord représente une ligne du dataset: un article d'une commande
// Un order_id peut apparaître sur plusieurs lignes (commande multi-articles)
// Les champs optionnels sont des pointeurs: nil = valeur absente ou non
// parsable, la ligne est alors écartée des seules agrégations qui en dépendent
type OrderItemRecord struct {
	OrderID               string
	OrderStatus           OrderStatus
	ProductCategory       *string
	Price                 *float64
	PurchaseTimestamp     time.Time
	DeliveredCustomerDate *time.Time
	EstimatedDeliveryDate *time.Time
	ReviewScore           *int
}

// PurchaseDay retourne la date calendaire d'achat (minuit UTC)
func (r OrderItemRecord) PurchaseDay() time.Time {
	return shareddomain.Day(r.PurchaseTimestamp)
}

// DeliveryDiffDays calcule l'écart de livraison en jours entiers (signé)
// Le calcul se fait sur les instants bruts puis est ramené au jour inférieur
// (sémantique pandas .dt.days: -12h donne -1, +36h donne +1), et non sur des
// dates normalisées à minuit — la frontière Late / On Time en dépend
func (r OrderItemRecord) DeliveryDiffDays() (int, bool) {
	if r.DeliveredCustomerDate == nil || r.EstimatedDeliveryDate == nil {
		return 0, false
	}

	diff := r.DeliveredCustomerDate.Sub(*r.EstimatedDeliveryDate)
	days := int(diff / (24 * time.Hour))
	if diff < 0 && diff%(24*time.Hour) != 0 {
		days-- // arrondi vers le bas, pas vers zéro
	}
	return days, true
}

// DeliveryVerdict retourne le statut de livraison dérivé
// Une livraison le jour exact de l'estimation compte comme à l'heure
func (r OrderItemRecord) DeliveryVerdict() (DeliveryStatus, bool) {
	diff, ok := r.DeliveryDiffDays()
	if !ok {
		return "", false
	}
	if diff > 0 {
		return DeliveryLate, true
	}
	return DeliveryOnTime, true
}

// EligibleForSatisfaction vérifie l'éligibilité à l'analyse de satisfaction
// Variante stricte: commande livrée, dates de livraison réelles et estimées
// présentes, note de review présente. La variante relâchée (sans filtre de
// statut) moyenne des commandes non livrées et fausse les résultats
func (r OrderItemRecord) EligibleForSatisfaction() bool {
	return r.OrderStatus == OrderStatusDelivered &&
		r.DeliveredCustomerDate != nil &&
		r.EstimatedDeliveryDate != nil &&
		r.ReviewScore != nil
}

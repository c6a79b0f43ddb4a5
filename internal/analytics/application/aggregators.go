package application

import (
	"math"
	"sort"
	"time"

	"ecomdash/internal/analytics/domain"
	datasetdomain "ecomdash/internal/dataset/domain"
	shareddomain "ecomdash/internal/shared/domain"
)

// Les trois agrégations du dashboard sont des fonctions pures: elles prennent
// une séquence de lignes filtrées et retournent une nouvelle table dérivée,
// sans jamais modifier leur entrée. Les lignes arrivent triées par date
// d'achat croissante (invariant du Dataset)

// BuildDailyOrders construit la série journalière commandes / chiffre d'affaires
// Chaque jour entre le premier et le dernier jour peuplé apparaît dans la
// série, y compris les jours sans activité (axe temporel continu). Par jour:
// nombre d'order_id DISTINCTS (une commande multi-articles compte une fois)
// et somme des prix de TOUTES les lignes (chaque article contribue au CA)
func BuildDailyOrders(records []datasetdomain.OrderItemRecord) []domain.DailyOrders {
	if len(records) == 0 {
		return nil
	}

	type bucket struct {
		orders  map[string]struct{}
		revenue float64
	}
	buckets := make(map[time.Time]*bucket)

	for _, r := range records {
		day := r.PurchaseDay()
		b, ok := buckets[day]
		if !ok {
			b = &bucket{orders: make(map[string]struct{})}
			buckets[day] = b
		}
		b.orders[r.OrderID] = struct{}{}
		if r.Price != nil {
			b.revenue += *r.Price
		}
	}

	// Lignes triées: premier et dernier jour peuplés aux extrémités
	first := records[0].PurchaseDay()
	last := records[len(records)-1].PurchaseDay()

	series := make([]domain.DailyOrders, 0, int(last.Sub(first).Hours()/24)+1)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if b, ok := buckets[day]; ok {
			series = append(series, domain.NewDailyOrders(day, len(b.orders), shareddomain.BRL(b.revenue)))
		} else {
			series = append(series, domain.NewDailyOrders(day, 0, shareddomain.BRL(0)))
		}
	}
	return series
}

// BuildCategoryRanking classe les catégories produit par chiffre d'affaires
// Les lignes sans catégorie sont exclues de cette agrégation (et d'elle
// seulement). Tri CA décroissant, égalité départagée par nom croissant pour
// un classement déterministe
func BuildCategoryRanking(records []datasetdomain.OrderItemRecord) domain.CategoryRanking {
	revenues := make(map[string]float64)
	for _, r := range records {
		if r.ProductCategory == nil || r.Price == nil {
			continue
		}
		revenues[*r.ProductCategory] += *r.Price
	}

	entries := make([]domain.CategoryRevenue, 0, len(revenues))
	for category, revenue := range revenues {
		entries = append(entries, domain.NewCategoryRevenue(category, shareddomain.BRL(revenue)))
	}

	sort.Slice(entries, func(i, j int) bool {
		ri, rj := entries[i].Revenue().Amount(), entries[j].Revenue().Amount()
		if ri != rj {
			return ri > rj
		}
		return entries[i].Category() < entries[j].Category()
	})

	return domain.NewCategoryRanking(entries)
}

// BuildSatisfaction mesure l'impact du retard de livraison sur les notes
//
// Contrat exact (la version historique sans filtre d'éligibilité ni dédup
// moyennait des commandes non livrées et sur-pondérait les commandes
// multi-articles — elle est proscrite):
//  1. éligibilité: statut "delivered", dates livrée/estimée et note présentes
//  2. écart en jours entiers calculé sur les instants bruts puis
//     arrondi au jour inférieur (la frontière Late / On Time en dépend)
//  3. "Late Delivery" si écart > 0, sinon "On Time Delivery"
//  4. déduplication: première ligne par order_id dans l'ordre d'achat
//  5. moyenne des notes par groupe, arrondie à 2 décimales
//
// Un groupe sans commande éligible est omis du résumé, pas rapporté à zéro
func BuildSatisfaction(records []datasetdomain.OrderItemRecord) domain.SatisfactionSummary {
	type accumulator struct {
		sum   int
		count int
	}
	groups := make(map[datasetdomain.DeliveryStatus]*accumulator, 2)
	seen := make(map[string]struct{})

	for _, r := range records {
		if !r.EligibleForSatisfaction() {
			continue
		}
		if _, dup := seen[r.OrderID]; dup {
			continue
		}
		seen[r.OrderID] = struct{}{}

		status, ok := r.DeliveryVerdict()
		if !ok {
			continue
		}

		acc, ok := groups[status]
		if !ok {
			acc = &accumulator{}
			groups[status] = acc
		}
		acc.sum += *r.ReviewScore
		acc.count++
	}

	// Ordre stable des seaux présents: On Time puis Late
	buckets := make([]domain.SatisfactionBucket, 0, 2)
	for _, status := range []datasetdomain.DeliveryStatus{datasetdomain.DeliveryOnTime, datasetdomain.DeliveryLate} {
		if acc, ok := groups[status]; ok {
			mean := roundCents(float64(acc.sum) / float64(acc.count))
			buckets = append(buckets, domain.NewSatisfactionBucket(status, mean, acc.count))
		}
	}
	return domain.NewSatisfactionSummary(buckets)
}

// buildTotals calcule les métriques de synthèse de la période filtrée
// Commandes distinctes sur toute la période + CA toutes lignes
func buildTotals(records []datasetdomain.OrderItemRecord) (int, shareddomain.Money) {
	orders := make(map[string]struct{}, len(records))
	revenue := 0.0
	for _, r := range records {
		orders[r.OrderID] = struct{}{}
		if r.Price != nil {
			revenue += *r.Price
		}
	}
	return len(orders), shareddomain.BRL(revenue)
}

// roundCents arrondit à 2 décimales pour l'affichage
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

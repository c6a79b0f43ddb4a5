package database

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	sharedinfra "ecomdash/internal/shared/infrastructure"
)

// seedCategories catégories produit du dataset (noms anglais, style Olist)
var seedCategories = []string{
	"bed_bath_table", "health_beauty", "sports_leisure", "furniture_decor",
	"computers_accessories", "housewares", "watches_gifts", "telephony",
	"garden_tools", "auto", "toys", "cool_stuff", "perfumery", "baby",
	"electronics", "stationery", "fashion_bags_accessories", "pet_shop",
	"office_furniture", "consoles_games",
}

// seedStatuses statuts de commande pondérés (la grande majorité est livrée)
var seedStatuses = []struct {
	status string
	weight int
}{
	{"delivered", 90},
	{"shipped", 5},
	{"invoiced", 3},
	{"canceled", 2},
}

// SeedDatabase peuple la table order_items avec un dataset synthétique
func SeedDatabase(days int) error {
	fmt.Println("🌱 Création du schéma...")
	if err := CreateSchema(); err != nil {
		return fmt.Errorf("erreur création schéma: %w", err)
	}

	fmt.Printf("🌱 Génération de %d jours de commandes...\n", days)
	uow := sharedinfra.NewUnitOfWork(DB)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	totalOrders := 0
	totalItems := 0
	startTime := time.Now()

	for day := 0; day < days; day++ {
		purchaseDay := time.Now().UTC().AddDate(0, 0, -(days - 1 - day))

		// 10 à 60 commandes par jour, une transaction par jour
		numOrders := 10 + rng.Intn(51)

		err := uow.Execute(func(tx *sql.Tx) error {
			for i := 0; i < numOrders; i++ {
				orderID := fmt.Sprintf("ord-%08d", totalOrders+i+1)
				items, err := seedOrder(tx, rng, orderID, purchaseDay)
				if err != nil {
					return err
				}
				totalItems += items
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("erreur génération jour %d: %w", day+1, err)
		}

		totalOrders += numOrders
		if (day+1)%100 == 0 {
			fmt.Printf("   ... %d jours traités (%d commandes, %d lignes)\n", day+1, totalOrders, totalItems)
		}
	}

	fmt.Printf("   ✅ %d commandes créées avec %d lignes en %v\n", totalOrders, totalItems, time.Since(startTime))

	// Analyse finale
	fmt.Println("🔍 Analyse des tables...")
	if _, err := DB.Exec("ANALYZE"); err != nil {
		fmt.Println("⚠️ Attention: échec de l'analyse:", err)
	}

	return nil
}

// seedOrder insère une commande (1 à 3 lignes, colonnes commande dupliquées)
func seedOrder(tx *sql.Tx, rng *rand.Rand, orderID string, purchaseDay time.Time) (int, error) {
	status := pickStatus(rng)
	purchaseTS := purchaseDay.Truncate(24 * time.Hour).
		Add(time.Duration(rng.Intn(24*3600)) * time.Second)

	// Dates de livraison et note: uniquement pour les commandes livrées
	var delivered, estimated *time.Time
	var review *int
	if status == "delivered" {
		est := purchaseTS.AddDate(0, 0, 5+rng.Intn(16))
		// Écart livré/estimé entre -4 jours (avance) et +6 jours (retard)
		del := est.Add(time.Duration(rng.Intn(240)-96) * time.Hour)
		estimated = &est
		delivered = &del

		// Les livraisons en retard notent plus sévèrement
		score := 1 + rng.Intn(5)
		if del.After(est) {
			score = 1 + rng.Intn(3)
		}
		review = &score
	}

	numItems := 1 + rng.Intn(3)
	for j := 0; j < numItems; j++ {
		category := seedCategories[rng.Intn(len(seedCategories))]
		price := 10.0 + rng.Float64()*290.0

		_, err := tx.Exec(`
			INSERT INTO order_items
				(order_id, order_status, product_category, price,
				 order_purchase_timestamp, order_delivered_customer_date,
				 order_estimated_delivery_date, review_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, orderID, status, category, price, purchaseTS, delivered, estimated, review)

		if err != nil {
			return 0, err
		}
	}

	return numItems, nil
}

// pickStatus tire un statut selon les pondérations
func pickStatus(rng *rand.Rand) string {
	total := 0
	for _, s := range seedStatuses {
		total += s.weight
	}

	n := rng.Intn(total)
	for _, s := range seedStatuses {
		if n < s.weight {
			return s.status
		}
		n -= s.weight
	}
	return seedStatuses[0].status
}

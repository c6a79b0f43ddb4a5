package infrastructure

import (
	"database/sql"
	"fmt"
	"log"

	"ecomdash/internal/dataset/domain"
	sharedinfra "ecomdash/internal/shared/infrastructure"
)

// PostgresSource source de données table PostgreSQL (mode DATA_SOURCE=postgres)
// La table est le dataset d'entrée, lu une seule fois puis memoïsé: il n'y a
// pas de chemin d'écriture applicatif
type PostgresSource struct {
	sharedinfra.BaseRepository
	table string
}

// NewPostgresSource crée une source PostgreSQL sur la table donnée
func NewPostgresSource(db *sql.DB, table string) *PostgresSource {
	return &PostgresSource{
		BaseRepository: sharedinfra.NewBaseRepository(db),
		table:          table,
	}
}

// Identity retourne l'identité de la source (clé de memoïsation du chargement)
func (s *PostgresSource) Identity() string {
	return "postgres:" + s.table
}

// Load charge toutes les lignes de la table et construit le Dataset
// Le schéma est vérifié en amont par la requête elle-même: une colonne
// manquante fait échouer le SELECT, converti en MalformedInputError
func (s *PostgresSource) Load() (*domain.Dataset, error) {
	query := fmt.Sprintf(`
		SELECT order_id, order_status, product_category, price,
		       order_purchase_timestamp, order_delivered_customer_date,
		       order_estimated_delivery_date, review_score
		FROM %s
	`, s.table)

	rows, err := s.Query(query)
	if err != nil {
		return nil, &MalformedInputError{
			Source:  s.Identity(),
			Missing: []string{fmt.Sprintf("query failed: %v", err)},
		}
	}
	defer rows.Close()

	var records []domain.OrderItemRecord
	dropped := 0

	for rows.Next() {
		var (
			orderID   string
			status    sql.NullString
			category  sql.NullString
			price     sql.NullFloat64
			purchase  sql.NullTime
			delivered sql.NullTime
			estimated sql.NullTime
			review    sql.NullInt64
		)

		if err := rows.Scan(&orderID, &status, &category, &price,
			&purchase, &delivered, &estimated, &review); err != nil {
			dropped++
			continue
		}

		if orderID == "" || !purchase.Valid {
			dropped++
			continue
		}

		record := domain.OrderItemRecord{
			OrderID:           orderID,
			OrderStatus:       domain.OrderStatus(status.String),
			PurchaseTimestamp: purchase.Time.UTC(),
		}

		if category.Valid && category.String != "" {
			cat := category.String
			record.ProductCategory = &cat
		}
		if price.Valid && price.Float64 >= 0 {
			p := price.Float64
			record.Price = &p
		}
		if delivered.Valid {
			d := delivered.Time.UTC()
			record.DeliveredCustomerDate = &d
		}
		if estimated.Valid {
			e := estimated.Time.UTC()
			record.EstimatedDeliveryDate = &e
		}
		if review.Valid && review.Int64 >= 1 && review.Int64 <= 5 {
			r := int(review.Int64)
			record.ReviewScore = &r
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read dataset rows: %w", err)
	}

	if dropped > 0 {
		log.Printf("dataset %s: %d unusable rows dropped", s.Identity(), dropped)
	}

	return domain.NewDataset(records, s.Identity(), dropped), nil
}

package database

import "time"

// ============================================================================
// MODÈLE DE DONNÉES - Table dénormalisée des lignes de commande
//
// Le dataset est volontairement plat (une ligne par article de commande, les
// colonnes de la commande dupliquées sur chaque ligne): c'est la forme du
// dataset d'entrée, pas un schéma relationnel de production
// ============================================================================

// OrderItemRow - Ligne de commande dénormalisée
type OrderItemRow struct {
	ID                    int64      `json:"id"`
	OrderID               string     `json:"order_id"`
	OrderStatus           string     `json:"order_status"`
	ProductCategory       *string    `json:"product_category,omitempty"`
	Price                 *float64   `json:"price,omitempty"`
	PurchaseTimestamp     time.Time  `json:"order_purchase_timestamp"`
	DeliveredCustomerDate *time.Time `json:"order_delivered_customer_date,omitempty"`
	EstimatedDeliveryDate *time.Time `json:"order_estimated_delivery_date,omitempty"`
	ReviewScore           *int       `json:"review_score,omitempty"`
}

// OrderItemsTable nom de la table lue par la source PostgreSQL
const OrderItemsTable = "order_items"

// createSchemaSQL schéma de la table du dataset
// Les colonnes optionnelles sont NULLABLE: la source les convertit en
// pointeurs nil plutôt qu'en valeurs sentinelles
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS order_items (
    id BIGSERIAL PRIMARY KEY,
    order_id VARCHAR(64) NOT NULL,
    order_status VARCHAR(32) NOT NULL,
    product_category VARCHAR(128),
    price NUMERIC(10, 2),
    order_purchase_timestamp TIMESTAMP NOT NULL,
    order_delivered_customer_date TIMESTAMP,
    order_estimated_delivery_date TIMESTAMP,
    review_score SMALLINT
);

CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id);
CREATE INDEX IF NOT EXISTS idx_order_items_purchase_ts ON order_items (order_purchase_timestamp);
`

// CreateSchema crée la table du dataset et ses index
func CreateSchema() error {
	_, err := DB.Exec(createSchemaSQL)
	return err
}

// DropSchema supprime la table du dataset (re-seed complet)
func DropSchema() error {
	_, err := DB.Exec("DROP TABLE IF EXISTS order_items")
	return err
}

package infrastructure

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"ecomdash/internal/dataset/domain"
)

// Colonnes requises du dataset d'entrée
const (
	ColOrderID           = "order_id"
	ColOrderStatus       = "order_status"
	ColProductCategory   = "product_category"
	ColPrice             = "price"
	ColPurchaseTimestamp = "order_purchase_timestamp"
	ColDeliveredDate     = "order_delivered_customer_date"
	ColEstimatedDate     = "order_estimated_delivery_date"
	ColReviewScore       = "review_score"
)

// categoryAliases noms alternatifs acceptés pour la colonne catégorie
// Le dataset Olist original la nomme product_category_name_english
var categoryAliases = []string{ColProductCategory, "product_category_name_english"}

// timestampLayouts formats acceptés pour les colonnes temporelles
var timestampLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

// CSVSource source de données fichier CSV, une ligne par article de commande
type CSVSource struct {
	path string
}

// NewCSVSource crée une source CSV
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Identity retourne l'identité de la source (clé de memoïsation du chargement)
func (s *CSVSource) Identity() string {
	return "csv:" + s.path
}

// Load parse le fichier et construit le Dataset
// Schéma incomplet: fatal (MalformedInputError). Champ isolé non parsable:
// la ligne est écartée des seules agrégations concernées, jamais fatal
func (s *CSVSource) Load() (*domain.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // les colonnes auxiliaires sont tolérées

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	cols, missing := mapColumns(header)
	if len(missing) > 0 {
		return nil, &MalformedInputError{Source: s.Identity(), Missing: missing}
	}

	var records []domain.OrderItemRecord
	dropped := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Ligne illisible: écartée, jamais fatal
			dropped++
			continue
		}

		record, ok := parseRow(row, cols)
		if !ok {
			dropped++
			continue
		}
		records = append(records, record)
	}

	if dropped > 0 {
		log.Printf("dataset %s: %d unparseable rows dropped", s.Identity(), dropped)
	}

	return domain.NewDataset(records, s.Identity(), dropped), nil
}

// columnIndexes positions des colonnes requises dans l'en-tête
type columnIndexes struct {
	orderID     int
	orderStatus int
	category    int
	price       int
	purchase    int
	delivered   int
	estimated   int
	review      int
}

// mapColumns résout l'en-tête vers les positions de colonnes
func mapColumns(header []string) (columnIndexes, []string) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	find := func(names ...string) int {
		for _, n := range names {
			if i, ok := index[n]; ok {
				return i
			}
		}
		return -1
	}

	cols := columnIndexes{
		orderID:     find(ColOrderID),
		orderStatus: find(ColOrderStatus),
		category:    find(categoryAliases...),
		price:       find(ColPrice),
		purchase:    find(ColPurchaseTimestamp),
		delivered:   find(ColDeliveredDate),
		estimated:   find(ColEstimatedDate),
		review:      find(ColReviewScore),
	}

	var missing []string
	for _, c := range []struct {
		name string
		idx  int
	}{
		{ColOrderID, cols.orderID},
		{ColOrderStatus, cols.orderStatus},
		{ColProductCategory, cols.category},
		{ColPrice, cols.price},
		{ColPurchaseTimestamp, cols.purchase},
		{ColDeliveredDate, cols.delivered},
		{ColEstimatedDate, cols.estimated},
		{ColReviewScore, cols.review},
	} {
		if c.idx < 0 {
			missing = append(missing, c.name)
		}
	}

	return cols, missing
}

// parseRow convertit une ligne CSV en OrderItemRecord
// Retourne ok=false si la ligne est inutilisable pour toutes les agrégations
// (order_id ou date d'achat absents/illisibles)
func parseRow(row []string, cols columnIndexes) (domain.OrderItemRecord, bool) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	orderID := field(cols.orderID)
	if orderID == "" {
		return domain.OrderItemRecord{}, false
	}

	purchase, ok := parseTimestamp(field(cols.purchase))
	if !ok {
		// Sans date d'achat la ligne ne peut ni être filtrée ni bucketée
		return domain.OrderItemRecord{}, false
	}

	record := domain.OrderItemRecord{
		OrderID:           orderID,
		OrderStatus:       domain.OrderStatus(field(cols.orderStatus)),
		PurchaseTimestamp: purchase,
	}

	if cat := field(cols.category); cat != "" {
		record.ProductCategory = &cat
	}

	if price, err := strconv.ParseFloat(field(cols.price), 64); err == nil && price >= 0 {
		record.Price = &price
	}

	if delivered, ok := parseTimestamp(field(cols.delivered)); ok {
		record.DeliveredCustomerDate = &delivered
	}
	if estimated, ok := parseTimestamp(field(cols.estimated)); ok {
		record.EstimatedDeliveryDate = &estimated
	}

	// Le merge pandas stocke les scores en flottant ("4.0"), on tolère les deux
	if f, err := strconv.ParseFloat(field(cols.review), 64); err == nil {
		if score := int(f); float64(score) == f && score >= 1 && score <= 5 {
			record.ReviewScore = &score
		}
	}

	return record, true
}

// parseTimestamp parse une colonne temporelle textuelle du dataset
func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

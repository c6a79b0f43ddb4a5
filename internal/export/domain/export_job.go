package domain

import (
	"errors"
	"strconv"
	"time"

	datasetdomain "ecomdash/internal/dataset/domain"
	"ecomdash/internal/shared/domain"
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "CSV"
	ExportFormatParquet ExportFormat = "Parquet"
)

// ExportType représente le type d'export
type ExportType string

const (
	// ExportTypeOrders lignes de commande brutes de la période filtrée
	ExportTypeOrders ExportType = "orders"
	// ExportTypeDashboard les trois tables agrégées du tableau de bord
	ExportTypeDashboard ExportType = "dashboard"
)

// ExportJob représente un job d'export
type ExportJob struct {
	format     ExportFormat
	exportType ExportType
	dateRange  domain.DateRange
	createdAt  time.Time
}

// NewExportJob crée un nouveau job d'export avec validation
func NewExportJob(
	format ExportFormat,
	exportType ExportType,
	dateRange domain.DateRange,
) (*ExportJob, error) {
	if format != ExportFormatCSV && format != ExportFormatParquet {
		return nil, errors.New("invalid export format")
	}
	if exportType != ExportTypeOrders && exportType != ExportTypeDashboard {
		return nil, errors.New("invalid export type")
	}

	return &ExportJob{
		format:     format,
		exportType: exportType,
		dateRange:  dateRange,
		createdAt:  time.Now(),
	}, nil
}

// Format retourne le format d'export
func (ej *ExportJob) Format() ExportFormat {
	return ej.format
}

// ExportType retourne le type d'export
func (ej *ExportJob) ExportType() ExportType {
	return ej.exportType
}

// DateRange retourne la période d'export
func (ej *ExportJob) DateRange() domain.DateRange {
	return ej.dateRange
}

// CreatedAt retourne la date de création
func (ej *ExportJob) CreatedAt() time.Time {
	return ej.createdAt
}

// OrderExportRow représente une ligne d'export de commande
// Les champs optionnels absents sont exportés comme chaînes vides
type OrderExportRow struct {
	OrderID       string
	OrderStatus   string
	Category      string
	Price         string
	PurchaseDate  time.Time
	DeliveredDate string
	EstimatedDate string
	ReviewScore   string
}

// NewOrderExportRow construit une ligne d'export depuis une ligne du dataset
func NewOrderExportRow(r datasetdomain.OrderItemRecord) OrderExportRow {
	row := OrderExportRow{
		OrderID:      r.OrderID,
		OrderStatus:  string(r.OrderStatus),
		PurchaseDate: r.PurchaseTimestamp,
	}
	if r.ProductCategory != nil {
		row.Category = *r.ProductCategory
	}
	if r.Price != nil {
		row.Price = strconv.FormatFloat(*r.Price, 'f', 2, 64)
	}
	if r.DeliveredCustomerDate != nil {
		row.DeliveredDate = r.DeliveredCustomerDate.Format("2006-01-02 15:04:05")
	}
	if r.EstimatedDeliveryDate != nil {
		row.EstimatedDate = r.EstimatedDeliveryDate.Format("2006-01-02 15:04:05")
	}
	if r.ReviewScore != nil {
		row.ReviewScore = strconv.Itoa(*r.ReviewScore)
	}
	return row
}

// CSVHeaders retourne l'en-tête de l'export de commandes
func CSVHeaders() []string {
	return []string{
		"order_id", "order_status", "product_category", "price",
		"order_purchase_timestamp", "order_delivered_customer_date",
		"order_estimated_delivery_date", "review_score",
	}
}

// ToCSVRow convertit la ligne en enregistrement CSV
// strconv plutôt que fmt.Sprintf: moins d'allocations sur les gros exports
func (row OrderExportRow) ToCSVRow() []string {
	return []string{
		row.OrderID,
		row.OrderStatus,
		row.Category,
		row.Price,
		row.PurchaseDate.Format("2006-01-02 15:04:05"),
		row.DeliveredDate,
		row.EstimatedDate,
		row.ReviewScore,
	}
}

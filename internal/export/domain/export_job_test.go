package domain

import (
	"testing"
	"time"

	datasetdomain "ecomdash/internal/dataset/domain"
	shareddomain "ecomdash/internal/shared/domain"
)

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func intPtr(i int) *int              { return &i }
func timePtr(t time.Time) *time.Time { return &t }

// TestNewExportJob vérifie la validation du job d'export
func TestNewExportJob(t *testing.T) {
	dr, err := shareddomain.NewDateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("NewDateRange failed: %v", err)
	}

	job, err := NewExportJob(ExportFormatCSV, ExportTypeOrders, dr)
	if err != nil {
		t.Fatalf("NewExportJob failed: %v", err)
	}
	if job.Format() != ExportFormatCSV {
		t.Errorf("expected format CSV, got %s", job.Format())
	}
	if job.ExportType() != ExportTypeOrders {
		t.Errorf("expected type orders, got %s", job.ExportType())
	}
	if !job.DateRange().Equal(dr) {
		t.Error("expected job to carry the resolved date range")
	}

	if _, err := NewExportJob("XML", ExportTypeOrders, dr); err == nil {
		t.Error("expected error for invalid format")
	}
	if _, err := NewExportJob(ExportFormatCSV, "reviews", dr); err == nil {
		t.Error("expected error for invalid export type")
	}
}

// TestNewOrderExportRow_OptionalFields vérifie le traitement des champs absents
func TestNewOrderExportRow_OptionalFields(t *testing.T) {
	rec := datasetdomain.OrderItemRecord{
		OrderID:           "o1",
		OrderStatus:       datasetdomain.OrderStatusShipped,
		PurchaseTimestamp: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
	}

	row := NewOrderExportRow(rec)
	csvRow := row.ToCSVRow()

	if len(csvRow) != len(CSVHeaders()) {
		t.Fatalf("expected %d columns, got %d", len(CSVHeaders()), len(csvRow))
	}
	if csvRow[0] != "o1" {
		t.Errorf("expected order_id o1, got %s", csvRow[0])
	}
	// Les champs optionnels absents donnent des chaînes vides
	for _, i := range []int{2, 3, 5, 6, 7} {
		if csvRow[i] != "" {
			t.Errorf("expected empty column %d, got %q", i, csvRow[i])
		}
	}
}

// TestNewOrderExportRow_FullRecord vérifie le formatage des champs présents
func TestNewOrderExportRow_FullRecord(t *testing.T) {
	rec := datasetdomain.OrderItemRecord{
		OrderID:               "o2",
		OrderStatus:           datasetdomain.OrderStatusDelivered,
		ProductCategory:       strPtr("health_beauty"),
		Price:                 floatPtr(49.9),
		PurchaseTimestamp:     time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
		DeliveredCustomerDate: timePtr(time.Date(2024, 1, 5, 14, 0, 0, 0, time.UTC)),
		EstimatedDeliveryDate: timePtr(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)),
		ReviewScore:           intPtr(2),
	}

	csvRow := NewOrderExportRow(rec).ToCSVRow()

	if csvRow[3] != "49.90" {
		t.Errorf("expected price 49.90, got %s", csvRow[3])
	}
	if csvRow[4] != "2024-01-01 10:30:00" {
		t.Errorf("expected purchase timestamp, got %s", csvRow[4])
	}
	if csvRow[7] != "2" {
		t.Errorf("expected review score 2, got %s", csvRow[7])
	}
}

// BenchmarkOrderExportRow_ToCSVRow benchmarks la conversion d'une ligne
func BenchmarkOrderExportRow_ToCSVRow(b *testing.B) {
	row := NewOrderExportRow(datasetdomain.OrderItemRecord{
		OrderID:               "bench-order",
		OrderStatus:           datasetdomain.OrderStatusDelivered,
		ProductCategory:       strPtr("toys"),
		Price:                 floatPtr(129.99),
		PurchaseTimestamp:     time.Date(2024, 10, 15, 14, 30, 0, 0, time.UTC),
		DeliveredCustomerDate: timePtr(time.Date(2024, 10, 20, 10, 0, 0, 0, time.UTC)),
		EstimatedDeliveryDate: timePtr(time.Date(2024, 10, 25, 0, 0, 0, 0, time.UTC)),
		ReviewScore:           intPtr(5),
	})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = row.ToCSVRow()
	}
}

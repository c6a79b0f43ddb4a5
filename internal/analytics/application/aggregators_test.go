package application

import (
	"math"
	"testing"
	"time"

	datasetdomain "ecomdash/internal/dataset/domain"
	"ecomdash/internal/testhelpers"
)

// Le jeu de données de référence (testhelpers.FixtureRecords):
//   A: achat 01/01, livré 2 jours après l'estimation, note 2, 50.0 health_beauty
//   B: achat 01/01, livré 3 jours avant l'estimation, note 5, 30.0 toys
//   C: achat 03/01, expédiée non livrée, 2 articles (10.0 toys + 20.0 sans catégorie)
//   D: achat 10/02, livrée le jour exact de l'estimation, note 4, 100.0 watches_gifts

// TestBuildDailyOrders_DistinctCountAndRevenue comptage distinct + CA par jour
func TestBuildDailyOrders_DistinctCountAndRevenue(t *testing.T) {
	ds := testhelpers.FixtureDataset()
	series := BuildDailyOrders(ds.Records())

	if len(series) == 0 {
		t.Fatal("expected a non-empty series")
	}

	first := series[0]
	if !first.Day().Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first day = %v, want 2024-01-01", first.Day())
	}
	// Deux commandes distinctes le 1er janvier (A et B)
	if first.OrderCount() != 2 {
		t.Errorf("2024-01-01 order_count = %d, want 2", first.OrderCount())
	}
	if first.Revenue().Amount() != 80.0 {
		t.Errorf("2024-01-01 revenue = %.2f, want 80.00", first.Revenue().Amount())
	}

	// La commande C a deux lignes mais compte pour UNE commande,
	// et ses deux prix contribuent au CA
	day3 := series[2]
	if day3.OrderCount() != 1 {
		t.Errorf("2024-01-03 order_count = %d, want 1 (multi-item order counted once)", day3.OrderCount())
	}
	if day3.Revenue().Amount() != 30.0 {
		t.Errorf("2024-01-03 revenue = %.2f, want 30.00", day3.Revenue().Amount())
	}
}

// TestBuildDailyOrders_ContinuousAxis l'axe temporel est continu (jours vides inclus)
func TestBuildDailyOrders_ContinuousAxis(t *testing.T) {
	ds := testhelpers.FixtureDataset()
	series := BuildDailyOrders(ds.Records())

	// Du 2024-01-01 au 2024-02-10 inclus: 41 jours
	if len(series) != 41 {
		t.Fatalf("series length = %d, want 41 continuous days", len(series))
	}

	// Jours strictement croissants, pas de trou
	for i := 1; i < len(series); i++ {
		want := series[i-1].Day().AddDate(0, 0, 1)
		if !series[i].Day().Equal(want) {
			t.Fatalf("day %d = %v, want %v", i, series[i].Day(), want)
		}
	}

	// Le 2 janvier n'a aucune activité mais figure dans la série
	day2 := series[1]
	if day2.OrderCount() != 0 || !day2.Revenue().IsZero() {
		t.Error("expected zero-filled bucket for 2024-01-02")
	}
}

// TestBuildDailyOrders_Empty entrée vide: série vide, pas d'erreur
func TestBuildDailyOrders_Empty(t *testing.T) {
	if series := BuildDailyOrders(nil); len(series) != 0 {
		t.Errorf("expected empty series, got %d buckets", len(series))
	}
}

// TestBuildCategoryRanking tri décroissant et exclusion des lignes sans catégorie
func TestBuildCategoryRanking(t *testing.T) {
	ds := testhelpers.FixtureDataset()
	ranking := BuildCategoryRanking(ds.Records())

	all := ranking.All()
	if len(all) != 3 {
		t.Fatalf("ranked %d categories, want 3", len(all))
	}

	// watches_gifts 100 > health_beauty 50 > toys 40 (30 + 10)
	wantOrder := []struct {
		category string
		revenue  float64
	}{
		{"watches_gifts", 100.0},
		{"health_beauty", 50.0},
		{"toys", 40.0},
	}
	for i, want := range wantOrder {
		if all[i].Category() != want.category {
			t.Errorf("rank %d = %q, want %q", i, all[i].Category(), want.category)
		}
		if all[i].Revenue().Amount() != want.revenue {
			t.Errorf("rank %d revenue = %.2f, want %.2f", i, all[i].Revenue().Amount(), want.revenue)
		}
	}
}

// TestBuildCategoryRanking_RevenueConservation la somme des CA par catégorie
// égale la somme des prix des lignes avec catégorie
func TestBuildCategoryRanking_RevenueConservation(t *testing.T) {
	records := testhelpers.GenerateRecords(30, 8)
	ranking := BuildCategoryRanking(records)

	var want float64
	for _, r := range records {
		if r.ProductCategory != nil && r.Price != nil {
			want += *r.Price
		}
	}

	var got float64
	for _, c := range ranking.All() {
		got += c.Revenue().Amount()
	}

	if math.Abs(got-want) > 1e-6 {
		t.Errorf("ranking total = %.4f, want %.4f", got, want)
	}

	// Tri non croissant
	all := ranking.All()
	for i := 1; i < len(all); i++ {
		if all[i].Revenue().Amount() > all[i-1].Revenue().Amount() {
			t.Fatalf("ranking not sorted at index %d", i)
		}
	}
}

// TestBuildCategoryRanking_TieBreak égalité de CA départagée par nom croissant
func TestBuildCategoryRanking_TieBreak(t *testing.T) {
	price := 10.0
	zebra, auto := "zebra", "auto"
	records := []datasetdomain.OrderItemRecord{
		{OrderID: "1", ProductCategory: &zebra, Price: &price, PurchaseTimestamp: time.Now()},
		{OrderID: "2", ProductCategory: &auto, Price: &price, PurchaseTimestamp: time.Now()},
	}

	all := BuildCategoryRanking(records).All()
	if all[0].Category() != "auto" || all[1].Category() != "zebra" {
		t.Errorf("tie not broken by name: got %q, %q", all[0].Category(), all[1].Category())
	}
}

// TestCategoryRanking_Top moins de 5 catégories: toutes, sans padding
func TestCategoryRanking_Top(t *testing.T) {
	ds := testhelpers.FixtureDataset()
	ranking := BuildCategoryRanking(ds.Records())

	top := ranking.Top(5)
	if len(top) != 3 {
		t.Errorf("Top(5) returned %d entries, want all 3 available", len(top))
	}
	if top[0].Category() != "watches_gifts" {
		t.Errorf("Top(5)[0] = %q, want watches_gifts", top[0].Category())
	}
}

// TestBuildSatisfaction_ReferenceScenario scénario de référence:
// A en retard note 2, B et D à l'heure notes 5 et 4
func TestBuildSatisfaction_ReferenceScenario(t *testing.T) {
	ds := testhelpers.FixtureDataset()
	summary := BuildSatisfaction(ds.Records())

	if summary.Len() != 2 {
		t.Fatalf("summary has %d buckets, want 2", summary.Len())
	}

	late, ok := summary.Mean(datasetdomain.DeliveryLate)
	if !ok {
		t.Fatal("expected a Late Delivery bucket")
	}
	if late != 2.00 {
		t.Errorf("Late Delivery mean = %.2f, want 2.00", late)
	}

	onTime, ok := summary.Mean(datasetdomain.DeliveryOnTime)
	if !ok {
		t.Fatal("expected an On Time Delivery bucket")
	}
	// (5 + 4) / 2 — D livrée le jour exact de l'estimation compte à l'heure
	if onTime != 4.50 {
		t.Errorf("On Time Delivery mean = %.2f, want 4.50", onTime)
	}
}

// TestBuildSatisfaction_Dedup une commande multi-articles pèse une seule fois
func TestBuildSatisfaction_Dedup(t *testing.T) {
	price := 10.0
	delivered := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	estimated := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	lowScore, highScore := 1, 5

	base := datasetdomain.OrderItemRecord{
		OrderStatus:           datasetdomain.OrderStatusDelivered,
		Price:                 &price,
		DeliveredCustomerDate: &delivered,
		EstimatedDeliveryDate: &estimated,
	}

	// multi: 3 lignes note 1; single: 1 ligne note 5 — sans dédup la moyenne
	// serait (1+1+1+5)/4 = 2.0 au lieu de (1+5)/2 = 3.0
	multi := base
	multi.OrderID = "multi"
	multi.PurchaseTimestamp = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	multi.ReviewScore = &lowScore

	single := base
	single.OrderID = "single"
	single.PurchaseTimestamp = time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC)
	single.ReviewScore = &highScore

	records := []datasetdomain.OrderItemRecord{multi, multi, multi, single}
	summary := BuildSatisfaction(records)

	mean, ok := summary.Mean(datasetdomain.DeliveryLate)
	if !ok {
		t.Fatal("expected a Late Delivery bucket")
	}
	if mean != 3.00 {
		t.Errorf("mean = %.2f, want 3.00 (one weight per order)", mean)
	}

	// Le nombre de contributeurs égale le nombre de commandes distinctes
	for _, b := range summary.Buckets() {
		if b.OrderCount() != 2 {
			t.Errorf("bucket %q counts %d orders, want 2", b.Status(), b.OrderCount())
		}
	}
}

// TestBuildSatisfaction_DedupIdempotent redédupliquer ne change rien
func TestBuildSatisfaction_DedupIdempotent(t *testing.T) {
	records := testhelpers.GenerateRecords(20, 5)

	once := BuildSatisfaction(records)

	// Re-passer sur un jeu déjà dédupliqué (une ligne par commande)
	seen := make(map[string]struct{})
	deduped := records[:0:0]
	for _, r := range records {
		if _, dup := seen[r.OrderID]; dup {
			continue
		}
		seen[r.OrderID] = struct{}{}
		deduped = append(deduped, r)
	}
	twice := BuildSatisfaction(deduped)

	if once.Len() != twice.Len() {
		t.Fatalf("bucket count changed: %d then %d", once.Len(), twice.Len())
	}
	for _, b := range once.Buckets() {
		mean, ok := twice.Mean(b.Status())
		if !ok || mean != b.MeanScore() {
			t.Errorf("bucket %q: mean %.2f then %.2f", b.Status(), b.MeanScore(), mean)
		}
	}
}

// TestBuildSatisfaction_NoEligibleOrders aucun ordre éligible: résumé vide,
// les autres agrégations restent peuplées sur le même jeu
func TestBuildSatisfaction_NoEligibleOrders(t *testing.T) {
	price := 25.0
	cat := "toys"
	records := []datasetdomain.OrderItemRecord{
		{
			OrderID:           "x",
			OrderStatus:       datasetdomain.OrderStatusCanceled,
			ProductCategory:   &cat,
			Price:             &price,
			PurchaseTimestamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	summary := BuildSatisfaction(records)
	if !summary.IsEmpty() {
		t.Error("expected an empty satisfaction summary")
	}

	if len(BuildDailyOrders(records)) == 0 {
		t.Error("daily series must still be populated")
	}
	if BuildCategoryRanking(records).IsEmpty() {
		t.Error("category ranking must still be populated")
	}
}

// TestBuildSatisfaction_Rounding moyenne arrondie à 2 décimales
func TestBuildSatisfaction_Rounding(t *testing.T) {
	delivered := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	estimated := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	var records []datasetdomain.OrderItemRecord
	for i, score := range []int{4, 4, 5} {
		s := score
		records = append(records, datasetdomain.OrderItemRecord{
			OrderID:               string(rune('a' + i)),
			OrderStatus:           datasetdomain.OrderStatusDelivered,
			PurchaseTimestamp:     time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC),
			DeliveredCustomerDate: &delivered,
			EstimatedDeliveryDate: &estimated,
			ReviewScore:           &s,
		})
	}

	mean, ok := BuildSatisfaction(records).Mean(datasetdomain.DeliveryLate)
	if !ok {
		t.Fatal("expected a Late Delivery bucket")
	}
	if mean != 4.33 {
		t.Errorf("mean = %v, want 4.33 (13/3 rounded)", mean)
	}
}

// BenchmarkBuildDailyOrders mesure l'agrégation journalière
func BenchmarkBuildDailyOrders(b *testing.B) {
	records := testhelpers.GenerateRecords(365, 20)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		BuildDailyOrders(records)
	}
}

// BenchmarkBuildCategoryRanking mesure le classement des catégories
func BenchmarkBuildCategoryRanking(b *testing.B) {
	records := testhelpers.GenerateRecords(365, 20)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		BuildCategoryRanking(records)
	}
}

// BenchmarkBuildSatisfaction mesure l'analyse de satisfaction
func BenchmarkBuildSatisfaction(b *testing.B) {
	records := testhelpers.GenerateRecords(365, 20)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		BuildSatisfaction(records)
	}
}

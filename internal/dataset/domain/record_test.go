package domain

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(v int) *int              { return &v }

// TestDeliveryDiffDays_Floor l'écart est calculé sur les instants bruts
// puis arrondi au jour inférieur (sémantique .dt.days)
func TestDeliveryDiffDays_Floor(t *testing.T) {
	estimated := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		delivered time.Time
		want      int
	}{
		{"exactly on estimate", estimated, 0},
		{"12h late, same net day", estimated.Add(12 * time.Hour), 0},
		{"exactly 24h late", estimated.Add(24 * time.Hour), 1},
		{"36h late", estimated.Add(36 * time.Hour), 1},
		{"12h early floors to -1", estimated.Add(-12 * time.Hour), -1},
		{"exactly 24h early", estimated.Add(-24 * time.Hour), -1},
		{"60h early floors to -3", estimated.Add(-60 * time.Hour), -3},
	}

	for _, c := range cases {
		r := OrderItemRecord{
			DeliveredCustomerDate: timePtr(c.delivered),
			EstimatedDeliveryDate: timePtr(estimated),
		}
		got, ok := r.DeliveryDiffDays()
		if !ok {
			t.Fatalf("%s: expected diff to be computable", c.name)
		}
		if got != c.want {
			t.Errorf("%s: diff = %d, want %d", c.name, got, c.want)
		}
	}
}

// TestDeliveryDiffDays_MissingDates dates absentes: pas de calcul possible
func TestDeliveryDiffDays_MissingDates(t *testing.T) {
	r := OrderItemRecord{
		EstimatedDeliveryDate: timePtr(time.Now()),
	}
	if _, ok := r.DeliveryDiffDays(); ok {
		t.Error("expected no diff without delivered date")
	}
}

// TestDeliveryVerdict la frontière jour-exact compte comme à l'heure
func TestDeliveryVerdict(t *testing.T) {
	estimated := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		delivered time.Time
		want      DeliveryStatus
	}{
		{"early", estimated.Add(-48 * time.Hour), DeliveryOnTime},
		{"on the estimate day", estimated.Add(10 * time.Hour), DeliveryOnTime},
		{"one full day late", estimated.Add(30 * time.Hour), DeliveryLate},
	}

	for _, c := range cases {
		r := OrderItemRecord{
			DeliveredCustomerDate: timePtr(c.delivered),
			EstimatedDeliveryDate: timePtr(estimated),
		}
		got, ok := r.DeliveryVerdict()
		if !ok {
			t.Fatalf("%s: expected a verdict", c.name)
		}
		if got != c.want {
			t.Errorf("%s: verdict = %q, want %q", c.name, got, c.want)
		}
	}
}

// TestEligibleForSatisfaction variante stricte: statut + 3 champs non nuls
func TestEligibleForSatisfaction(t *testing.T) {
	delivered := time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)
	estimated := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	eligible := OrderItemRecord{
		OrderStatus:           OrderStatusDelivered,
		DeliveredCustomerDate: timePtr(delivered),
		EstimatedDeliveryDate: timePtr(estimated),
		ReviewScore:           intPtr(4),
	}
	if !eligible.EligibleForSatisfaction() {
		t.Error("expected record to be eligible")
	}

	notDelivered := eligible
	notDelivered.OrderStatus = OrderStatusShipped
	if notDelivered.EligibleForSatisfaction() {
		t.Error("shipped order must not be eligible")
	}

	noReview := eligible
	noReview.ReviewScore = nil
	if noReview.EligibleForSatisfaction() {
		t.Error("order without review must not be eligible")
	}

	noDeliveredDate := eligible
	noDeliveredDate.DeliveredCustomerDate = nil
	if noDeliveredDate.EligibleForSatisfaction() {
		t.Error("order without delivered date must not be eligible")
	}
}

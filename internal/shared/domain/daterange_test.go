package domain

import (
	"testing"
	"time"
)

// TestDay vérifie la normalisation à minuit UTC
func TestDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	ts := time.Date(2024, 1, 1, 22, 45, 12, 0, loc) // 2024-01-02 01:45 UTC

	got := Day(ts)
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	if !got.Equal(want) {
		t.Errorf("Day() = %v, want %v", got, want)
	}
}

// TestNewDateRange_Valid teste la création d'une période valide
func TestNewDateRange_Valid(t *testing.T) {
	start := time.Date(2024, 1, 1, 14, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	dr, err := NewDateRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Les bornes doivent être normalisées à minuit
	if dr.Start().Hour() != 0 || dr.End().Hour() != 0 {
		t.Error("expected bounds normalized to midnight")
	}

	if dr.Days() != 10 {
		t.Errorf("Days() = %d, want 10", dr.Days())
	}
}

// TestNewDateRange_Inverted teste le rejet d'une période inversée
func TestNewDateRange_Inverted(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := NewDateRange(start, end); err != ErrInvalidRange {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

// TestNewDateRange_Incomplete teste le rejet d'une borne manquante
func TestNewDateRange_Incomplete(t *testing.T) {
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := NewDateRange(time.Time{}, end); err != ErrInvalidRange {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

// TestDateRange_Contains teste les bornes inclusives à granularité jour
func TestDateRange_Contains(t *testing.T) {
	dr, _ := NewDateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	)

	cases := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"start day late evening", time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC), true},
		{"end day late evening", time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC), true},
		{"middle", time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), true},
		{"day before start", time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC), false},
		{"day after end", time.Date(2024, 2, 1, 0, 0, 1, 0, time.UTC), false},
	}

	for _, c := range cases {
		if got := dr.Contains(c.ts); got != c.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", c.name, c.ts, got, c.want)
		}
	}
}

// TestDateRange_SingleDay une période d'un seul jour reste valide
func TestDateRange_SingleDay(t *testing.T) {
	d := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	dr, err := NewDateRange(d, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dr.Days() != 1 {
		t.Errorf("Days() = %d, want 1", dr.Days())
	}
	if !dr.Contains(d.Add(18 * time.Hour)) {
		t.Error("expected same-day timestamp to be contained")
	}
}

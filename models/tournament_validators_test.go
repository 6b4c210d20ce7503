package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestValidateTournamentName(t *testing.T) {
	got, err := ValidateTournamentName("  Friday Night Deepstack ")
	if err != nil || got != "Friday Night Deepstack" {
		t.Errorf("got %q, %v", got, err)
	}
	if _, err := ValidateTournamentName("   "); err == nil {
		t.Error("blank name should fail")
	}
	if _, err := ValidateTournamentName(strings.Repeat("x", 101)); err == nil {
		t.Error("name over 100 characters should fail")
	}
}

func TestValidateBuyIn(t *testing.T) {
	got, err := ValidateBuyIn(dec("99.999"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "100.00" {
		t.Errorf("buy-in coerced to %s, want 100.00", got)
	}

	if _, err := ValidateBuyIn(decimal.Zero); err == nil {
		t.Error("zero buy-in should fail")
	}
	if _, err := ValidateBuyIn(dec("-10")); err == nil {
		t.Error("negative buy-in should fail")
	}
}

func TestValidatePrizePool(t *testing.T) {
	got, err := ValidatePrizePool(nil)
	if err != nil || got != nil {
		t.Errorf("nil pool = %v, %v; want nil, nil", got, err)
	}

	pool := dec("1000.005")
	got, err = ValidatePrizePool(&pool)
	if err != nil || got == nil || got.String() != "1000.01" {
		t.Errorf("pool = %v, %v; want 1000.01", got, err)
	}

	// Zero is allowed and means "compute dynamically".
	zero := decimal.Zero
	if _, err := ValidatePrizePool(&zero); err != nil {
		t.Errorf("zero pool should pass, got %v", err)
	}

	negative := dec("-1")
	if _, err := ValidatePrizePool(&negative); err == nil {
		t.Error("negative pool should fail")
	}
}

func TestValidateLocation(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	got, err := ValidateLocation(strPtr("  Casino Lugano "))
	if err != nil || got == nil || *got != "Casino Lugano" {
		t.Errorf("got %v, %v", got, err)
	}

	got, err = ValidateLocation(strPtr("   "))
	if err != nil || got != nil {
		t.Errorf("blank location = %v, %v; want nil, nil", got, err)
	}

	long := strings.Repeat("x", 151)
	if _, err := ValidateLocation(&long); err == nil {
		t.Error("location over 150 characters should fail")
	}
}

func TestParseTournamentDate(t *testing.T) {
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{
		"2025-03-14",
		"2025-03-14T21:30:00Z",
		"2025-03-14T21:30:00",
		"2025-03-14 21:30:00",
	} {
		got, err := ParseTournamentDate(raw)
		if err != nil {
			t.Errorf("ParseTournamentDate(%q) error: %v", raw, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseTournamentDate(%q) = %s, want %s (time truncated)", raw, got, want)
		}
	}

	for _, raw := range []string{"", "14/03/2025", "not a date"} {
		if _, err := ParseTournamentDate(raw); err == nil {
			t.Errorf("ParseTournamentDate(%q) should fail", raw)
		}
	}
}

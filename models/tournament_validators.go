package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	maxTournamentNameLen = 100
	maxLocationLen       = 150
)

// ValidateTournamentName normalizes the event name: trimmed, non-empty, at
// most 100 characters.
func ValidateTournamentName(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", newValidationError("name", "must not be empty")
	}
	if len([]rune(v)) > maxTournamentNameLen {
		return "", newValidationError("name", "must be at most %d characters", maxTournamentNameLen)
	}
	return v, nil
}

// ValidateBuyIn coerces the buy-in to two decimal places and requires it to
// be strictly positive.
func ValidateBuyIn(value decimal.Decimal) (decimal.Decimal, error) {
	v := roundMoney(value)
	if !v.IsPositive() {
		return decimal.Zero, newValidationError("buy_in", "must be greater than zero")
	}
	return v, nil
}

// ValidatePrizePool coerces an optional guaranteed prize pool to two
// decimal places; when present it must not be negative.
func ValidatePrizePool(value *decimal.Decimal) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	v := roundMoney(*value)
	if v.IsNegative() {
		return nil, newValidationError("prize_pool", "must not be negative")
	}
	return &v, nil
}

// ValidateLocation normalizes an optional venue: blank after trim means
// "absent", otherwise at most 150 characters.
func ValidateLocation(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil, nil
	}
	if len([]rune(v)) > maxLocationLen {
		return nil, newValidationError("location", "must be at most %d characters", maxLocationLen)
	}
	return &v, nil
}

// tournament dates are calendar days; timestamps are truncated.
var tournamentDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTournamentDate parses a date or datetime string and truncates it to
// midnight UTC.
func ParseTournamentDate(raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	for _, layout := range tournamentDateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, newValidationError("tournament_date", "must be a date (YYYY-MM-DD) or an ISO-8601 timestamp")
}

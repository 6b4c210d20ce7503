package models

import (
	"log/slog"

	"github.com/shopspring/decimal"
)

// ValidateRebuyCount normalizes the rebuy counter: nil coerces to 0,
// negatives are rejected.
func ValidateRebuyCount(value *int) (int, error) {
	if value == nil {
		return 0, nil
	}
	if *value < 0 {
		return 0, newValidationError("rebuy", "must not be negative")
	}
	return *value, nil
}

// ValidatePosition normalizes an optional finishing rank; when present it
// must be at least 1. Nil means "unranked".
func ValidatePosition(value *int) (*int, error) {
	if value == nil {
		return nil, nil
	}
	if *value < 1 {
		return nil, newValidationError("position", "must be at least 1")
	}
	return value, nil
}

// ValidatePrize coerces an optional prize to two decimal places; when
// present it must not be negative. Nil means "not in the money".
func ValidatePrize(value *decimal.Decimal) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	v := roundMoney(*value)
	if v.IsNegative() {
		return nil, newValidationError("prize", "must not be negative")
	}
	return &v, nil
}

// ValidateRebuyTotalSpent coerces the rebuy spend to two decimal places and
// cross-checks it against the participation's rebuy counter and the
// tournament's buy-in:
//
//   - rebuy = 0 with a non-zero spend is always rejected;
//   - with rebuys, a spend of rebuy x buy_in (full price) or
//     rebuy x buy_in / 2 (half price) passes silently;
//   - any other positive spend passes but logs a warning, so manual
//     overrides stay possible and visible.
//
// The buy-in comparison needs the tournament association; when it is not
// loaded the contextual checks are skipped, not failed.
func ValidateRebuyTotalSpent(tp *TournamentPlayer, logger *slog.Logger) (decimal.Decimal, error) {
	v := roundMoney(tp.RebuyTotalSpent)
	if v.IsNegative() {
		return decimal.Zero, newValidationError("rebuy_total_spent", "must not be negative")
	}
	if tp.Rebuy == 0 {
		if !v.IsZero() {
			return decimal.Zero, newValidationError("rebuy_total_spent", "must be zero when rebuy is zero")
		}
		return v, nil
	}
	if tp.Tournament == nil {
		return v, nil
	}

	count := decimal.NewFromInt(int64(tp.Rebuy))
	full := roundMoney(tp.Tournament.BuyIn.Mul(count))
	half := roundMoney(tp.Tournament.BuyIn.Div(decimal.NewFromInt(2)).Mul(count))
	if !v.Equal(full) && !v.Equal(half) && logger != nil {
		logger.Warn("non-standard rebuy pricing",
			"tournament_id", tp.TournamentID,
			"player_id", tp.PlayerID,
			"rebuy", tp.Rebuy,
			"rebuy_total_spent", v.String(),
			"expected_full", full.String(),
			"expected_half", half.String(),
		)
	}
	return v, nil
}

package models

import (
	"github.com/shopspring/decimal"
)

// TournamentPlayer is the participation record linking a player to a
// tournament. The pair (tournament_id, player_id) is the composite primary
// key: a player joins a given tournament at most once.
//
// Position is nil while the tournament is running or when the player was
// never ranked. Prize is nil when the player finished out of the money —
// distinct from a prize of zero.
type TournamentPlayer struct {
	TournamentID    int              `json:"tournament_id" db:"tournament_id"`
	PlayerID        int              `json:"player_id" db:"player_id"`
	Position        *int             `json:"position,omitempty" db:"position"`
	Rebuy           int              `json:"rebuy" db:"rebuy"`
	RebuyTotalSpent decimal.Decimal  `json:"rebuy_total_spent" db:"rebuy_total_spent"`
	Prize           *decimal.Decimal `json:"prize,omitempty" db:"prize"`

	// Loaded associations.
	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
	Player     *Player     `json:"player,omitempty" db:"-"`
}

// TotalSpent is the gross cost of this participation: the tournament's
// buy-in plus everything spent on rebuys. Returns 0.00 when the tournament
// association is not loaded.
func (tp *TournamentPlayer) TotalSpent() decimal.Decimal {
	if tp.Tournament == nil {
		return decimal.Zero.Round(2)
	}
	return roundMoney(tp.Tournament.BuyIn.Add(tp.RebuyTotalSpent))
}

// Profit is the net result of this participation: prize minus total spent.
// Negative when the player lost money.
func (tp *TournamentPlayer) Profit() decimal.Decimal {
	prize := decimal.Zero
	if tp.Prize != nil {
		prize = *tp.Prize
	}
	return roundMoney(prize.Sub(tp.TotalSpent()))
}

// ApplyStandardRebuyPricing recomputes RebuyTotalSpent from the rebuy
// counter using the tournament's buy-in: many home games price a rebuy at
// half the buy-in, others at full price. Requires the tournament
// association to be loaded.
func (tp *TournamentPlayer) ApplyStandardRebuyPricing(halfPrice bool) error {
	if tp.Tournament == nil {
		return ErrTournamentNotLoaded
	}
	unit := tp.Tournament.BuyIn
	if halfPrice {
		unit = unit.Div(decimal.NewFromInt(2))
	}
	tp.RebuyTotalSpent = roundMoney(unit.Mul(decimal.NewFromInt(int64(tp.Rebuy))))
	return nil
}

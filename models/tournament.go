package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Tournament is a single poker event. Monetary fields use fixed-point
// decimals (NUMERIC in the schema); PrizePool is nil when the pool is
// computed dynamically from buy-ins and rebuys.
type Tournament struct {
	ID             int              `json:"id" db:"id"`
	AdminID        int              `json:"admin_id" db:"admin_id"`
	Name           string           `json:"name" db:"name"`
	TournamentDate time.Time        `json:"tournament_date" db:"tournament_date"`
	BuyIn          decimal.Decimal  `json:"buy_in" db:"buy_in"`
	PrizePool      *decimal.Decimal `json:"prize_pool,omitempty" db:"prize_pool"`
	Location       *string          `json:"location,omitempty" db:"location"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`

	// Loaded associations.
	Admin        *Player            `json:"admin,omitempty" db:"-"`
	Participants []TournamentPlayer `json:"participants,omitempty" db:"-"`
}

// TournamentFilter narrows and pages the tournament list. Zero values mean
// no constraint; DateTo is inclusive.
type TournamentFilter struct {
	AdminID  *int
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// NumPlayers counts the registered participants. Operates on the loaded
// slice; callers supplying tournaments to the statistics below must
// eager-load Participants.
func (t *Tournament) NumPlayers() int {
	return len(t.Participants)
}

// EffectivePrizePool returns the pool the tournament actually pays out.
// A stored prize pool greater than zero is a manual override (guaranteed
// pool) and wins; otherwise the pool is buy_in times the number of players
// plus everything spent on rebuys.
func (t *Tournament) EffectivePrizePool() decimal.Decimal {
	if t.PrizePool != nil && t.PrizePool.IsPositive() {
		return roundMoney(*t.PrizePool)
	}

	base := t.BuyIn.Mul(decimal.NewFromInt(int64(t.NumPlayers())))
	return roundMoney(base.Add(t.TotalRebuySpent()))
}

// OrderedPlayers returns the tournament leaderboard: participants with a
// finishing position sorted ascending, followed by unranked participants in
// load order.
func (t *Tournament) OrderedPlayers() []TournamentPlayer {
	ranked := make([]TournamentPlayer, 0, len(t.Participants))
	unranked := make([]TournamentPlayer, 0)
	for _, tp := range t.Participants {
		if tp.Position != nil {
			ranked = append(ranked, tp)
		} else {
			unranked = append(unranked, tp)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Position < *ranked[j].Position
	})
	return append(ranked, unranked...)
}

// NumRebuys sums the rebuy counters of all participants.
func (t *Tournament) NumRebuys() int {
	total := 0
	for _, tp := range t.Participants {
		total += tp.Rebuy
	}
	return total
}

// TotalRebuySpent sums the money collected from rebuys.
func (t *Tournament) TotalRebuySpent() decimal.Decimal {
	total := decimal.Zero
	for _, tp := range t.Participants {
		total = total.Add(tp.RebuyTotalSpent)
	}
	return roundMoney(total)
}

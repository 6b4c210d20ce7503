package handlers

import (
	"net/http"
	"strconv"

	"github.com/delmonaco/poker-tracker/services"
)

const defaultTopLimit = 10

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Leaderboard serves every player's aggregated metrics, computed in a
// single SQL pass.
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.statsService.Leaderboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TopPerformers serves a ranking by one metric. Query parameters: limit,
// order_by, order (asc/desc), min_tournaments.
func (h *StatsHandler) TopPerformers(w http.ResponseWriter, r *http.Request) {
	input := services.TopPerformersInput{
		Limit:      defaultTopLimit,
		OrderBy:    "net_profit",
		Descending: true,
	}

	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			input.Limit = limit
		}
	}
	if raw := q.Get("order_by"); raw != "" {
		input.OrderBy = raw
	}
	if q.Get("order") == "asc" {
		input.Descending = false
	}
	if raw := q.Get("min_tournaments"); raw != "" {
		if min, err := strconv.Atoi(raw); err == nil && min > 0 {
			input.MinTournaments = min
		}
	}

	rows := h.statsService.TopPerformers(r.Context(), input)
	if err := writeJSON(w, http.StatusOK, jsonResponse{"top_performers": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

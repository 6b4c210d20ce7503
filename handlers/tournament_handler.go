package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/delmonaco/poker-tracker/middleware"
	"github.com/delmonaco/poker-tracker/models"
	"github.com/delmonaco/poker-tracker/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := tournamentFilterFromQuery(r)
	if err != nil {
		if models.IsValidationError(err) {
			mapServiceErrorToHTTP(w, r, err)
		} else {
			badRequestResponse(w, r, err)
		}
		return
	}

	tournaments, err := h.tournamentService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// tournamentFilterFromQuery parses the list query parameters: admin_id,
// date_from, date_to (same layouts as tournament payload dates), limit and
// offset.
func tournamentFilterFromQuery(r *http.Request) (models.TournamentFilter, error) {
	var filter models.TournamentFilter
	q := r.URL.Query()

	if raw := q.Get("admin_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			return filter, errors.New("invalid admin_id parameter")
		}
		filter.AdminID = &id
	}
	if raw := q.Get("date_from"); raw != "" {
		from, err := models.ParseTournamentDate(raw)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &from
	}
	if raw := q.Get("date_to"); raw != "" {
		to, err := models.ParseTournamentDate(raw)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &to
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}
	return filter, nil
}

func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"tournament":           tournament,
		"effective_prize_pool": tournament.EffectivePrizePool(),
		"num_players":          tournament.NumPlayers(),
		"num_rebuys":           tournament.NumRebuys(),
		"total_rebuy_spent":    tournament.TotalRebuySpent(),
		"ordered_players":      tournament.OrderedPlayers(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	adminID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.TournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), adminID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !canManageResource(r, tournament.AdminID) {
		forbiddenResponse(w, r, services.ErrForbiddenOperation.Error())
		return
	}

	var input services.TournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err = h.tournamentService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !canManageResource(r, tournament.AdminID) {
		forbiddenResponse(w, r, services.ErrForbiddenOperation.Error())
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/delmonaco/poker-tracker/services"
)

type stubTournamentService struct {
	filter models.TournamentFilter
	called bool
}

func (s *stubTournamentService) Create(_ context.Context, _ int, _ services.TournamentInput) (*models.Tournament, error) {
	return nil, services.ErrTournamentNotFound
}

func (s *stubTournamentService) GetByID(_ context.Context, _ int) (*models.Tournament, error) {
	return nil, services.ErrTournamentNotFound
}

func (s *stubTournamentService) List(_ context.Context, filter models.TournamentFilter) ([]models.Tournament, error) {
	s.filter = filter
	s.called = true
	return []models.Tournament{}, nil
}

func (s *stubTournamentService) Update(_ context.Context, _ int, _ services.TournamentInput) (*models.Tournament, error) {
	return nil, services.ErrTournamentNotFound
}

func (s *stubTournamentService) Delete(_ context.Context, _ int) error {
	return services.ErrTournamentNotFound
}

func TestTournamentListParsesFilters(t *testing.T) {
	svc := &stubTournamentService{}
	handler := NewTournamentHandler(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/tournaments?admin_id=3&date_from=2025-01-01&date_to=2025-02-01&limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	f := svc.filter
	if f.AdminID == nil || *f.AdminID != 3 {
		t.Errorf("admin_id = %v, want 3", f.AdminID)
	}
	wantFrom := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if f.DateFrom == nil || !f.DateFrom.Equal(wantFrom) {
		t.Errorf("date_from = %v, want %v", f.DateFrom, wantFrom)
	}
	wantTo := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if f.DateTo == nil || !f.DateTo.Equal(wantTo) {
		t.Errorf("date_to = %v, want %v", f.DateTo, wantTo)
	}
	if f.Limit != 5 || f.Offset != 10 {
		t.Errorf("limit/offset = %d/%d, want 5/10", f.Limit, f.Offset)
	}
}

func TestTournamentListWithoutFiltersIsUnconstrained(t *testing.T) {
	svc := &stubTournamentService{}
	handler := NewTournamentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/tournaments", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !svc.called {
		t.Fatal("service List was not called")
	}
	f := svc.filter
	if f.AdminID != nil || f.DateFrom != nil || f.DateTo != nil || f.Limit != 0 || f.Offset != 0 {
		t.Errorf("filter = %+v, want zero value", f)
	}
}

func TestTournamentListRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"non-numeric admin_id", "/tournaments?admin_id=abc", http.StatusBadRequest},
		{"zero admin_id", "/tournaments?admin_id=0", http.StatusBadRequest},
		{"unparseable date_from", "/tournaments?date_from=not-a-date", http.StatusUnprocessableEntity},
		{"unparseable date_to", "/tournaments?date_to=31/12/2025", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubTournamentService{}
			handler := NewTournamentHandler(svc)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			handler.List(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if svc.called {
				t.Error("service List must not run for rejected parameters")
			}
		})
	}
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/delmonaco/poker-tracker/models"
)

func newTestTournamentService(partRepo *stubParticipationRepo) *tournamentService {
	return NewTournamentService(nil, nil, partRepo, nil, nil, slog.Default()).(*tournamentService)
}

func TestReconcileParticipantsUpdateInsertDelete(t *testing.T) {
	// Editing a tournament from {1, 2} to {2, 3} must update 2, insert 3
	// and delete 1.
	partRepo := &stubParticipationRepo{}
	svc := newTestTournamentService(partRepo)

	tournament := &models.Tournament{ID: 7, BuyIn: dec("100")}
	existing := []models.TournamentPlayer{
		{TournamentID: 7, PlayerID: 1, Position: intPtr(3)},
		{TournamentID: 7, PlayerID: 2, Position: intPtr(2)},
	}
	desired := []ParticipationInput{
		{PlayerID: 2, Position: intPtr(2), Prize: decPtr("150")},
		{PlayerID: 3, Position: intPtr(1), Prize: decPtr("300")},
	}

	if err := svc.reconcileParticipants(context.Background(), nil, tournament, existing, desired); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(partRepo.updated) != 1 || partRepo.updated[0] != 2 {
		t.Errorf("updated = %v, want [2]", partRepo.updated)
	}
	if len(partRepo.created) != 1 || partRepo.created[0] != 3 {
		t.Errorf("created = %v, want [3]", partRepo.created)
	}
	if len(partRepo.deleted) != 1 || partRepo.deleted[0] != 1 {
		t.Errorf("deleted = %v, want [1]", partRepo.deleted)
	}
}

func TestReconcileParticipantsEmptyListRemovesEveryone(t *testing.T) {
	partRepo := &stubParticipationRepo{}
	svc := newTestTournamentService(partRepo)

	tournament := &models.Tournament{ID: 7, BuyIn: dec("100")}
	existing := []models.TournamentPlayer{
		{TournamentID: 7, PlayerID: 1},
		{TournamentID: 7, PlayerID: 2},
	}

	if err := svc.reconcileParticipants(context.Background(), nil, tournament, existing, []ParticipationInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(partRepo.created) != 0 || len(partRepo.updated) != 0 {
		t.Errorf("created/updated = %v/%v, want none", partRepo.created, partRepo.updated)
	}
	if len(partRepo.deleted) != 2 {
		t.Errorf("deleted = %v, want both players", partRepo.deleted)
	}
}

func TestReconcileParticipantsRejectsDuplicatePlayer(t *testing.T) {
	partRepo := &stubParticipationRepo{}
	svc := newTestTournamentService(partRepo)

	tournament := &models.Tournament{ID: 7, BuyIn: dec("100")}
	desired := []ParticipationInput{
		{PlayerID: 2, Position: intPtr(1)},
		{PlayerID: 2, Position: intPtr(2)},
	}

	err := svc.reconcileParticipants(context.Background(), nil, tournament, nil, desired)
	if !errors.Is(err, ErrParticipationConflict) {
		t.Fatalf("err = %v, want ErrParticipationConflict", err)
	}
}

func TestReconcileParticipantsPropagatesValidationError(t *testing.T) {
	partRepo := &stubParticipationRepo{}
	svc := newTestTournamentService(partRepo)

	tournament := &models.Tournament{ID: 7, BuyIn: dec("100")}
	desired := []ParticipationInput{
		{PlayerID: 2, Position: intPtr(0)},
	}

	err := svc.reconcileParticipants(context.Background(), nil, tournament, nil, desired)
	if !models.IsValidationError(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(partRepo.created) != 0 {
		t.Errorf("created = %v, want none", partRepo.created)
	}
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/delmonaco/poker-tracker/repositories"
)

type stubRoleRepo struct {
	roles    map[string]*models.Role
	nextID   int
	creates  int
	removals [][2]int
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string]*models.Role), nextID: 1}
}

func (r *stubRoleRepo) Create(_ context.Context, role *models.Role) error {
	if _, ok := r.roles[role.Name]; ok {
		return repositories.ErrRoleNameConflict
	}
	role.ID = r.nextID
	r.nextID++
	r.roles[role.Name] = role
	r.creates++
	return nil
}

func (r *stubRoleRepo) GetByName(_ context.Context, name string) (*models.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, repositories.ErrRoleNotFound
	}
	return role, nil
}

func (r *stubRoleRepo) List(_ context.Context) ([]models.Role, error) {
	out := make([]models.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *stubRoleRepo) AssignToPlayer(_ context.Context, _ repositories.SQLExecutor, _, _ int) error {
	return nil
}

func (r *stubRoleRepo) RemoveFromPlayer(_ context.Context, roleID, playerID int) error {
	r.removals = append(r.removals, [2]int{roleID, playerID})
	return nil
}

func TestEnsureDefaultRolesIdempotent(t *testing.T) {
	repo := newStubRoleRepo()
	svc := NewRoleService(repo, slog.Default())
	ctx := context.Background()

	if err := svc.EnsureDefaultRoles(ctx); err != nil {
		t.Fatalf("first seeding failed: %v", err)
	}
	if repo.creates != len(models.DefaultRoles) {
		t.Errorf("created %d roles, want %d", repo.creates, len(models.DefaultRoles))
	}
	for name := range models.DefaultRoles {
		if _, err := repo.GetByName(ctx, name); err != nil {
			t.Errorf("role %q missing after seeding", name)
		}
	}

	// Second run must be a no-op.
	if err := svc.EnsureDefaultRoles(ctx); err != nil {
		t.Fatalf("second seeding failed: %v", err)
	}
	if repo.creates != len(models.DefaultRoles) {
		t.Errorf("reseeding created extra roles: %d total creates", repo.creates)
	}
}

func TestEnsureDefaultRolesSurvivesInsertRace(t *testing.T) {
	// A concurrent seeder winning the insert surfaces as a name conflict;
	// that must count as success.
	repo := newStubRoleRepo()
	desc := "pre-existing"
	repo.roles[models.RoleAdmin] = &models.Role{ID: 99, Name: models.RoleAdmin, Description: &desc}

	svc := NewRoleService(repo, slog.Default())
	if err := svc.EnsureDefaultRoles(context.Background()); err != nil {
		t.Fatalf("seeding with pre-existing role failed: %v", err)
	}
	if repo.roles[models.RoleAdmin].ID != 99 {
		t.Error("existing role must be left untouched")
	}
}

func TestRemoveRoleFromPlayer(t *testing.T) {
	repo := newStubRoleRepo()
	desc := "admins"
	repo.roles[models.RoleAdmin] = &models.Role{ID: 7, Name: models.RoleAdmin, Description: &desc}
	svc := NewRoleService(repo, slog.Default())

	if err := svc.RemoveFromPlayer(context.Background(), models.RoleAdmin, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.removals) != 1 || repo.removals[0] != [2]int{7, 42} {
		t.Errorf("removals = %v, want [[7 42]]", repo.removals)
	}

	// Unknown roles surface as not-found, nothing is removed.
	err := svc.RemoveFromPlayer(context.Background(), "referee", 42)
	if !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("err = %v, want ErrRoleNotFound", err)
	}
	if len(repo.removals) != 1 {
		t.Errorf("removals = %v, want unchanged", repo.removals)
	}
}

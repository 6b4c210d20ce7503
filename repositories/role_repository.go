package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/lib/pq"
)

var (
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleNameConflict  = errors.New("role name conflict")
	ErrRolePlayerInvalid = errors.New("role or player invalid")
)

type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	GetByName(ctx context.Context, name string) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
	AssignToPlayer(ctx context.Context, exec SQLExecutor, roleID, playerID int) error
	RemoveFromPlayer(ctx context.Context, roleID, playerID int) error
}

type postgresRoleRepository struct {
	db *sql.DB
}

func NewPostgresRoleRepository(db *sql.DB) RoleRepository {
	return &postgresRoleRepository{db: db}
}

func (r *postgresRoleRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRoleRepository) Create(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO roles (name, description)
		VALUES ($1, $2)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, role.Name, role.Description).Scan(&role.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrRoleNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresRoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	query := `SELECT id, name, description FROM roles WHERE name = $1`

	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

func (r *postgresRoleRepository) List(ctx context.Context) ([]models.Role, error) {
	query := `SELECT id, name, description FROM roles ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]models.Role, 0)
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// AssignToPlayer links a role to a player. Assigning an already-held role
// is a no-op, which keeps seeding and admin grants idempotent.
func (r *postgresRoleRepository) AssignToPlayer(ctx context.Context, exec SQLExecutor, roleID, playerID int) error {
	query := `
		INSERT INTO roles_players (role_id, player_id)
		VALUES ($1, $2)
		ON CONFLICT (role_id, player_id) DO NOTHING`

	_, err := r.getExecutor(exec).ExecContext(ctx, query, roleID, playerID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrRolePlayerInvalid
		}
		return err
	}
	return nil
}

func (r *postgresRoleRepository) RemoveFromPlayer(ctx context.Context, roleID, playerID int) error {
	query := `DELETE FROM roles_players WHERE role_id = $1 AND player_id = $2`
	result, err := r.db.ExecContext(ctx, query, roleID, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRoleNotFound)
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound         = errors.New("player not found")
	ErrPlayerEmailConflict    = errors.New("player email conflict")
	ErrPlayerNicknameConflict = errors.New("player nickname conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByEmail(ctx context.Context, email string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Update(ctx context.Context, exec SQLExecutor, player *models.Player) error
	UpdateAvatarKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) error
	LoadRoles(ctx context.Context, player *models.Player) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func mapPlayerConstraintError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "players_email_key":
			return ErrPlayerEmailConflict
		case "players_nickname_key":
			return ErrPlayerNicknameConflict
		}
	}
	return err
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `
		INSERT INTO players (first_name, last_name, nickname, email, password_hash, country, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		player.FirstName,
		player.LastName,
		player.Nickname,
		player.Email,
		player.PasswordHash,
		player.Country,
		player.IsActive,
	).Scan(&player.ID, &player.CreatedAt)

	if err != nil {
		return mapPlayerConstraintError(err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, first_name, last_name, nickname, email, password_hash, country, is_active, avatar_key, created_at
		FROM players
		WHERE id = $1`
	return r.scanPlayer(ctx, query, id)
}

func (r *postgresPlayerRepository) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	query := `
		SELECT id, first_name, last_name, nickname, email, password_hash, country, is_active, avatar_key, created_at
		FROM players
		WHERE email = $1`
	return r.scanPlayer(ctx, query, email)
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `
		SELECT id, first_name, last_name, nickname, email, password_hash, country, is_active, avatar_key, created_at
		FROM players
		ORDER BY nickname ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(
			&p.ID,
			&p.FirstName,
			&p.LastName,
			&p.Nickname,
			&p.Email,
			&p.PasswordHash,
			&p.Country,
			&p.IsActive,
			&p.AvatarKey,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) Update(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `
		UPDATE players SET
			first_name = $1,
			last_name = $2,
			nickname = $3,
			email = $4,
			password_hash = $5,
			country = $6,
			is_active = $7
		WHERE id = $8`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		player.FirstName,
		player.LastName,
		player.Nickname,
		player.Email,
		player.PasswordHash,
		player.Country,
		player.IsActive,
		player.ID,
	)
	if err != nil {
		return mapPlayerConstraintError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateAvatarKey(ctx context.Context, id int, key *string) error {
	query := `UPDATE players SET avatar_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM players WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// LoadRoles populates player.Roles from the roles_players join table.
func (r *postgresPlayerRepository) LoadRoles(ctx context.Context, player *models.Player) error {
	query := `
		SELECT r.id, r.name, r.description
		FROM roles r
		JOIN roles_players rp ON rp.role_id = r.id
		WHERE rp.player_id = $1
		ORDER BY r.name ASC`

	rows, err := r.db.QueryContext(ctx, query, player.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	roles := make([]models.Role, 0)
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return err
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	player.Roles = roles
	return nil
}

func (r *postgresPlayerRepository) scanPlayer(ctx context.Context, query string, args ...interface{}) (*models.Player, error) {
	player := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&player.ID,
		&player.FirstName,
		&player.LastName,
		&player.Nickname,
		&player.Email,
		&player.PasswordHash,
		&player.Country,
		&player.IsActive,
		&player.AvatarKey,
		&player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

package models

import (
	"strings"
	"time"

	"github.com/delmonaco/poker-tracker/utils"
)

// Player unifies account identity (email, password, roles) and the poker
// domain entity (nickname, participations, statistics). A player whose
// PasswordHash is nil was created by an admin and has not activated the
// account yet.
type Player struct {
	ID           int       `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Nickname     string    `json:"nickname" db:"nickname"`
	Email        string    `json:"email" db:"email"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	Country      *string   `json:"country,omitempty" db:"country"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	AvatarKey    *string   `json:"-" db:"avatar_key"`
	AvatarURL    *string   `json:"avatar_url,omitempty" db:"-"`

	// Loaded associations (populated by repositories, never lazily).
	Roles          []Role             `json:"roles,omitempty" db:"-"`
	Participations []TournamentPlayer `json:"participations,omitempty" db:"-"`

	stats *PlayerStats
}

// HasRole reports whether the player carries the named role.
// Case-insensitive, iterates over the loaded roles.
func (p *Player) HasRole(name string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

func (p *Player) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// SetPassword validates the plaintext against the password policy and stores
// its bcrypt hash. The plaintext is never kept on the struct.
func (p *Player) SetPassword(password string) error {
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	p.PasswordHash = &hash
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// Players without a hash (pending activation) never match.
func (p *Player) CheckPassword(password string) bool {
	if p.PasswordHash == nil || *p.PasswordHash == "" {
		return false
	}
	return utils.CheckPasswordHash(password, *p.PasswordHash)
}

// Stats computes the player's derived statistics from the loaded
// participations. The result is cached on the instance; entities live for a
// single request, so the cache never goes stale.
func (p *Player) Stats() *PlayerStats {
	if p.stats == nil {
		p.stats = ComputePlayerStats(p.Participations)
	}
	return p.stats
}

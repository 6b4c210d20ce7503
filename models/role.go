package models

// Role is a named permission tag attached to players through the
// roles_players join table (ON DELETE CASCADE on both sides).
type Role struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultRoles is the role set that must exist before any player is created.
// Seeded idempotently at startup and via the CLI.
var DefaultRoles = map[string]string{
	RoleUser:  "Standard user with basic permissions.",
	RoleAdmin: "Administrator with full permissions.",
}

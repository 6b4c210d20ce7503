package services

import "errors"

// Shared errors used across services and the HTTP mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrAccountDisabled         = errors.New("account is disabled")
	ErrAccountNotActivated     = errors.New("account has no password set")
	ErrPlayerHasParticipations = errors.New("player has tournament participations and cannot be deleted")
	ErrTooManyLoginAttempts    = errors.New("too many login attempts, try again later")

	// Conflicts
	ErrPlayerEmailConflict    = errors.New("email address is already in use")
	ErrPlayerNicknameConflict = errors.New("nickname is already in use")
	ErrParticipationConflict  = errors.New("player is already registered for this tournament")

	// Authentication and authorization
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors (more context than the generic one)
	ErrPlayerNotFound        = errors.New("player not found")
	ErrRoleNotFound          = errors.New("role not found")
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrParticipationNotFound = errors.New("participation not found")
)

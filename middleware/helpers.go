package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/golang-jwt/jwt/v4"
)

// GetPlayerIDFromContext extracts the authenticated player's id from the
// JWT claims placed in the context by Authenticate.
func GetPlayerIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return 0, errors.New("player claims not found in context or invalid type")
	}

	idClaim, ok := claims[jwtClaimPlayerID]
	if !ok {
		return 0, fmt.Errorf("missing '%s' claim in token", jwtClaimPlayerID)
	}

	// JSON numbers decode as float64; tolerate string ids too.
	idFloat, ok := idClaim.(float64)
	if !ok {
		if idStr, okStr := idClaim.(string); okStr {
			id, err := strconv.Atoi(idStr)
			if err == nil && id > 0 {
				return id, nil
			}
		}
		return 0, fmt.Errorf("invalid type for '%s' claim: %T", jwtClaimPlayerID, idClaim)
	}

	id := int(idFloat)
	if id <= 0 {
		return 0, fmt.Errorf("invalid player ID value in '%s' claim: %d", jwtClaimPlayerID, id)
	}
	return id, nil
}

// GetRolesFromContext extracts the role names from the JWT claims.
func GetRolesFromContext(ctx context.Context) ([]string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return nil, errors.New("player claims not found in context or invalid type")
	}

	rolesClaim, ok := claims[jwtClaimRoles]
	if !ok {
		return nil, fmt.Errorf("missing '%s' claim in token", jwtClaimRoles)
	}

	rawRoles, ok := rolesClaim.([]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid type for '%s' claim: %T", jwtClaimRoles, rolesClaim)
	}

	roles := make([]string, 0, len(rawRoles))
	for _, raw := range rawRoles {
		roleStr, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("invalid role entry in '%s' claim: %T", jwtClaimRoles, raw)
		}
		roles = append(roles, roleStr)
	}
	return roles, nil
}

// IsAdminFromContext reports whether the authenticated player holds the
// admin role.
func IsAdminFromContext(ctx context.Context) bool {
	roles, err := GetRolesFromContext(ctx)
	if err != nil {
		return false
	}
	for _, role := range roles {
		if strings.EqualFold(role, models.RoleAdmin) {
			return true
		}
	}
	return false
}

package services

import (
	"strings"

	"github.com/delmonaco/poker-tracker/models"
)

// CanManage is the owner-or-admin rule shared by player and tournament
// mutations: admins manage every resource, everyone else only resources
// they own.
func CanManage(actorID int, actorRoles []string, ownerID int) bool {
	for _, role := range actorRoles {
		if strings.EqualFold(role, models.RoleAdmin) {
			return true
		}
	}
	return actorID > 0 && actorID == ownerID
}

package services

import "testing"

func TestCanManage(t *testing.T) {
	tests := []struct {
		name    string
		actorID int
		roles   []string
		ownerID int
		want    bool
	}{
		{"admin manages any resource", 1, []string{"user", "admin"}, 99, true},
		{"admin role name is case-insensitive", 1, []string{"Admin"}, 99, true},
		{"owner manages own resource", 5, []string{"user"}, 5, true},
		{"non-owner denied", 5, []string{"user"}, 6, false},
		{"no roles, owner still allowed", 5, nil, 5, true},
		{"unauthenticated actor denied", 0, nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManage(tt.actorID, tt.roles, tt.ownerID); got != tt.want {
				t.Errorf("CanManage(%d, %v, %d) = %v, want %v", tt.actorID, tt.roles, tt.ownerID, got, tt.want)
			}
		})
	}
}

package model

import (
	"fmt"
	"slices"
	"time"
)

// Role is a user's access role.
type Role string

// Roles.
const (
	RoleAdmin            Role = "admin"
	RoleBaseCommander    Role = "baseCommander"
	RoleLogisticsOfficer Role = "logisticsOfficer"
)

// AllRoles lists every role, most privileged first.
var AllRoles = []Role{RoleAdmin, RoleBaseCommander, RoleLogisticsOfficer}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return slices.Contains(AllRoles, r)
}

// Label returns the human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleBaseCommander:
		return "Base Commander"
	case RoleLogisticsOfficer:
		return "Logistics Officer"
	default:
		return string(r)
	}
}

// HasPermission reports whether role is a member of allowed.
// The empty role (no authenticated user) and unknown roles are always denied.
func HasPermission(role Role, allowed []Role) bool {
	if !role.Valid() {
		return false
	}
	return slices.Contains(allowed, role)
}

// User is an entry in the user directory.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	BaseID       string    `json:"baseId,omitempty"`
	HasAvatar    bool      `json:"hasAvatar"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MinPasswordLength is the shortest password an admin may set.
const MinPasswordLength = 8

// ValidatePassword checks a password an admin sets for a directory entry.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// Role sets that gate views and operations.
var (
	// ExpenditureRoles may view and record expenditures.
	ExpenditureRoles = []Role{RoleAdmin, RoleBaseCommander}

	// SettingsRoles may manage the user directory and settings.
	SettingsRoles = []Role{RoleAdmin}
)

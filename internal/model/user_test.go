package model

import "testing"

func TestHasPermission(t *testing.T) {
	all := []Role{RoleAdmin, RoleBaseCommander, RoleLogisticsOfficer}
	commandOnly := []Role{RoleAdmin, RoleBaseCommander}

	tests := []struct {
		role     Role
		allowed  []Role
		expected bool
	}{
		{RoleAdmin, all, true},
		{RoleBaseCommander, all, true},
		{RoleLogisticsOfficer, all, true},
		{RoleAdmin, commandOnly, true},
		{RoleBaseCommander, commandOnly, true},
		{RoleLogisticsOfficer, commandOnly, false},
		{RoleAdmin, []Role{RoleAdmin}, true},
		{RoleBaseCommander, []Role{RoleAdmin}, false},
		// Empty allowed set denies everyone.
		{RoleAdmin, nil, false},
		{RoleAdmin, []Role{}, false},
		// Unauthenticated and unknown roles fail closed.
		{"", all, false},
		{"", []Role{""}, false},
		{"general", []Role{"general"}, false},
	}

	for _, tt := range tests {
		got := HasPermission(tt.role, tt.allowed)
		if got != tt.expected {
			t.Errorf("HasPermission(%q, %v) = %v, want %v", tt.role, tt.allowed, got, tt.expected)
		}
	}
}

// Membership must hold for every combination of roles and allowed subsets.
func TestHasPermissionIsMembership(t *testing.T) {
	for mask := 0; mask < 1<<len(AllRoles); mask++ {
		var allowed []Role
		for i, r := range AllRoles {
			if mask&(1<<i) != 0 {
				allowed = append(allowed, r)
			}
		}
		for i, r := range AllRoles {
			want := mask&(1<<i) != 0
			if got := HasPermission(r, allowed); got != want {
				t.Errorf("HasPermission(%q, %v) = %v, want %v", r, allowed, got, want)
			}
		}
		if HasPermission("", allowed) {
			t.Errorf("HasPermission(\"\", %v) = true, want false", allowed)
		}
	}
}

func TestRoleLabel(t *testing.T) {
	if got := RoleBaseCommander.Label(); got != "Base Commander" {
		t.Errorf("Label() = %q", got)
	}
	if got := Role("x").Label(); got != "x" {
		t.Errorf("Label() for unknown = %q", got)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}

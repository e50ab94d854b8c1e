package model

import "testing"

func viewNames(vs []View) []string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name
	}
	return names
}

func TestVisibleViews(t *testing.T) {
	tests := []struct {
		role Role
		want int
		has  map[string]bool
	}{
		{RoleAdmin, 8, map[string]bool{"expenditures": true, "settings": true}},
		{RoleBaseCommander, 7, map[string]bool{"expenditures": true, "settings": false}},
		{RoleLogisticsOfficer, 6, map[string]bool{"expenditures": false, "settings": false}},
		{"", 0, map[string]bool{"dashboard": false}},
	}

	for _, tt := range tests {
		got := VisibleViews(tt.role)
		if len(got) != tt.want {
			t.Errorf("VisibleViews(%q) returned %v, want %d views", tt.role, viewNames(got), tt.want)
		}
		names := map[string]bool{}
		for _, v := range got {
			names[v.Name] = true
		}
		for name, want := range tt.has {
			if names[name] != want {
				t.Errorf("VisibleViews(%q) contains %s = %v, want %v", tt.role, name, names[name], want)
			}
		}
	}
}

func TestLookupView(t *testing.T) {
	v, ok := LookupView("expenditures")
	if !ok {
		t.Fatal("expected expenditures view")
	}
	if v.Path != "/expenditures" {
		t.Errorf("expected /expenditures, got %q", v.Path)
	}
	if HasPermission(RoleLogisticsOfficer, v.Roles) {
		t.Error("logistics officers must not open expenditures")
	}
	if _, ok := LookupView("armory"); ok {
		t.Error("expected unknown view to be missing")
	}
}

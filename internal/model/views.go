package model

// View is a named page of the dashboard and the roles that may open it.
type View struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Path  string `json:"path"`
	Roles []Role `json:"-"`
}

// Views lists every page in sidebar order.
var Views = []View{
	{Name: "dashboard", Label: "Dashboard", Path: "/dashboard", Roles: AllRoles},
	{Name: "purchases", Label: "Purchases", Path: "/purchases", Roles: AllRoles},
	{Name: "transfers", Label: "Transfers", Path: "/transfers", Roles: AllRoles},
	{Name: "assignments", Label: "Assignments", Path: "/assignments", Roles: AllRoles},
	{Name: "assignments-active", Label: "Active Assignments", Path: "/assignments/active", Roles: AllRoles},
	{Name: "assignments-history", Label: "Assignment History", Path: "/assignments/history", Roles: AllRoles},
	{Name: "expenditures", Label: "Expenditures", Path: "/expenditures", Roles: ExpenditureRoles},
	{Name: "settings", Label: "Settings", Path: "/settings", Roles: SettingsRoles},
}

// LookupView returns the view with the given name.
func LookupView(name string) (View, bool) {
	for _, v := range Views {
		if v.Name == name {
			return v, true
		}
	}
	return View{}, false
}

// VisibleViews returns the views role may open, in sidebar order.
func VisibleViews(role Role) []View {
	var out []View
	for _, v := range Views {
		if HasPermission(role, v.Roles) {
			out = append(out, v)
		}
	}
	return out
}

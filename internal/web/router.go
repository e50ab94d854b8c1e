package web

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/milasset/internal/view"
	webembed "github.com/erazemk/milasset/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// page wraps h in cookie auth and the role gate of the named view.
	page := func(name string, h http.HandlerFunc) http.Handler {
		return cookieAuth(RequireView(name)(h))
	}

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /unauthorized", cookieAuth(http.HandlerFunc(s.UnauthorizedPage)))
	mux.Handle("GET /avatars/{id}", cookieAuth(http.HandlerFunc(s.AvatarGet)))

	mux.Handle("GET /dashboard", page("dashboard", s.Dashboard))
	mux.Handle("GET /dashboard/export", page("dashboard", s.DashboardExport))

	mux.Handle("GET /purchases/export", page("purchases", s.PurchasesExport))
	mux.Handle("GET /purchases", page("purchases", s.PurchasesPage))
	mux.Handle("POST /purchases", page("purchases", s.PurchaseSubmit))

	mux.Handle("GET /transfers/export", page("transfers", s.TransfersExport))
	mux.Handle("GET /transfers", page("transfers", s.TransfersPage))
	mux.Handle("POST /transfers", page("transfers", s.TransferSubmit))

	mux.Handle("GET /assignments/export", page("assignments", s.AssignmentsExport))
	mux.Handle("GET /assignments", page("assignments", s.AssignmentsPage("")))
	mux.Handle("POST /assignments", page("assignments", s.AssignmentSubmit))
	mux.Handle("GET /assignments/active", page("assignments-active", s.AssignmentsPage(view.AssignmentsActive)))
	mux.Handle("GET /assignments/history", page("assignments-history", s.AssignmentsPage(view.AssignmentsHistory)))

	mux.Handle("GET /expenditures/export", page("expenditures", s.ExpendituresExport))
	mux.Handle("GET /expenditures", page("expenditures", s.ExpendituresPage))
	mux.Handle("POST /expenditures", page("expenditures", s.ExpenditureSubmit))

	mux.Handle("GET /settings", page("settings", s.SettingsPage))
	mux.Handle("POST /settings", page("settings", s.SettingsSubmit))
	mux.Handle("POST /settings/users/{id}/password", page("settings", s.UserResetPasswordSubmit))
	mux.Handle("POST /settings/users/{id}/avatar", page("settings", s.UserAvatarSubmit))

	// Anything else lands on the dashboard.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	return mux, nil
}

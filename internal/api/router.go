package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/milasset/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	refHandler := &ReferenceHandler{DB: db}
	recordsHandler := &RecordsHandler{DB: db}
	usersHandler := &UsersHandler{DB: db}
	settingsHandler := &SettingsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireExpenditure := RequireRoles(model.ExpenditureRoles...)
	requireAdmin := RequireRoles(model.SettingsRoles...)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Session.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("GET /api/nav", authMW(http.HandlerFunc(authHandler.Nav)))

	// Directories (all roles).
	mux.Handle("GET /api/bases", authMW(http.HandlerFunc(refHandler.Bases)))
	mux.Handle("GET /api/equipment", authMW(http.HandlerFunc(refHandler.Equipment)))
	mux.Handle("GET /api/personnel", authMW(http.HandlerFunc(refHandler.Personnel)))

	// Dashboard (all roles).
	mux.Handle("GET /api/dashboard", authMW(http.HandlerFunc(recordsHandler.Dashboard)))
	mux.Handle("GET /api/dashboard/export", authMW(http.HandlerFunc(recordsHandler.ExportDashboard)))

	// Purchases, transfers and assignments (all roles).
	mux.Handle("GET /api/purchases", authMW(http.HandlerFunc(recordsHandler.ListPurchases)))
	mux.Handle("POST /api/purchases", authMW(http.HandlerFunc(recordsHandler.CreatePurchase)))
	mux.Handle("GET /api/purchases/export", authMW(http.HandlerFunc(recordsHandler.ExportPurchases)))
	mux.Handle("GET /api/transfers", authMW(http.HandlerFunc(recordsHandler.ListTransfers)))
	mux.Handle("POST /api/transfers", authMW(http.HandlerFunc(recordsHandler.CreateTransfer)))
	mux.Handle("GET /api/transfers/export", authMW(http.HandlerFunc(recordsHandler.ExportTransfers)))
	mux.Handle("GET /api/assignments", authMW(http.HandlerFunc(recordsHandler.ListAssignments)))
	mux.Handle("POST /api/assignments", authMW(http.HandlerFunc(recordsHandler.CreateAssignment)))
	mux.Handle("GET /api/assignments/export", authMW(http.HandlerFunc(recordsHandler.ExportAssignments)))

	// Expenditures (admin and base commanders).
	mux.Handle("GET /api/expenditures", authMW(requireExpenditure(http.HandlerFunc(recordsHandler.ListExpenditures))))
	mux.Handle("POST /api/expenditures", authMW(requireExpenditure(http.HandlerFunc(recordsHandler.CreateExpenditure))))
	mux.Handle("GET /api/expenditures/export", authMW(requireExpenditure(http.HandlerFunc(recordsHandler.ExportExpenditures))))

	// Users and settings (admin only), avatars (self or admin).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("PUT /api/users/{id}/avatar", authMW(http.HandlerFunc(usersHandler.UploadAvatar)))
	mux.Handle("GET /api/users/{id}/avatar", authMW(http.HandlerFunc(usersHandler.GetAvatar)))
	mux.Handle("GET /api/settings", authMW(requireAdmin(http.HandlerFunc(settingsHandler.Get))))
	mux.Handle("PUT /api/settings", authMW(requireAdmin(http.HandlerFunc(settingsHandler.Update))))

	return mux
}

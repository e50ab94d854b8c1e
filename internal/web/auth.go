package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/milasset/internal/metrics"
	"github.com/erazemk/milasset/internal/session"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Sign in"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.RenderStatus(w, http.StatusUnauthorized, "login.html", &PageData{
			Title: "Sign in",
			Error: "Enter your email and password.",
		})
		return
	}

	sess := &session.Session{}
	ok, err := sess.Login(r.Context(), s.DB, email, password)
	if err != nil {
		slog.Error("failed to log in", "error", err)
		s.Templates.RenderStatus(w, http.StatusInternalServerError, "login.html", &PageData{
			Title: "Sign in",
			Error: "Sign in failed.",
		})
		return
	}
	metrics.ObserveLogin(ok)
	if !ok {
		slog.Warn("login failed", "email", email, "remote", r.RemoteAddr)
		clearAuthCookie(w)
		s.Templates.RenderStatus(w, http.StatusUnauthorized, "login.html", &PageData{
			Title: "Sign in",
			Error: "Invalid email or password.",
		})
		return
	}

	token, claims, err := sess.Issue(r.Context(), s.DB, s.JWTSecret)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		s.Templates.RenderStatus(w, http.StatusInternalServerError, "login.html", &PageData{
			Title: "Sign in",
			Error: "Sign in failed.",
		})
		return
	}

	slog.Info("user logged in", "user", email, "role", sess.Role())
	setAuthCookie(w, token, claims)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout handles POST /logout. The token is revoked so the cookie cannot
// be replayed.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromCookie(r, s.JWTSecret, s.DB)
	if err != nil {
		slog.Error("failed to restore session", "error", err)
	}
	if sess != nil && sess.IsAuthenticated() {
		if err := sess.Revoke(r.Context(), s.DB); err != nil {
			slog.Error("failed to revoke session", "error", err)
		}
		slog.Info("user logged out", "user", sess.CurrentUser().Email)
	}
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// UnauthorizedPage handles GET /unauthorized.
func (s *Server) UnauthorizedPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.RenderStatus(w, http.StatusForbidden, "unauthorized.html",
		pageData(r, "Access denied", ""))
}

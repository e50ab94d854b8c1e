package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/milasset/internal/metrics"
	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/session"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	DB        *sql.DB
	JWTSecret string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type meResponse struct {
	User  *model.User  `json:"user"`
	Views []model.View `json:"views"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var sess session.Session
	ok, err := sess.Login(r.Context(), h.DB, req.Email, req.Password)
	if err != nil {
		slog.Error("login", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	metrics.ObserveLogin(ok)
	if !ok {
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, session.ErrInvalidCredentials.Error())
		return
	}

	token, _, err := sess.Issue(r.Context(), h.DB, h.JWTSecret)
	if err != nil {
		slog.Error("issuing token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	user := sess.CurrentUser()
	slog.Info("user logged in", "user", user.Email, "role", user.Role)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	email := ""
	if u := sess.CurrentUser(); u != nil {
		email = u.Email
	}

	if err := sess.Revoke(r.Context(), h.DB); err != nil {
		slog.Error("revoking token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	slog.Info("user logged out", "user", email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := session.FromContext(r.Context()).CurrentUser()
	jsonResponse(w, http.StatusOK, meResponse{User: user, Views: model.VisibleViews(user.Role)})
}

// Nav handles GET /api/nav.
func (h *AuthHandler) Nav(w http.ResponseWriter, r *http.Request) {
	views := model.VisibleViews(session.FromContext(r.Context()).Role())
	if views == nil {
		views = []model.View{}
	}
	jsonResponse(w, http.StatusOK, views)
}

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/milasset/internal/imaging"
	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/session"
	"github.com/erazemk/milasset/internal/store"
)

// UsersHandler handles the user directory endpoints.
type UsersHandler struct {
	DB *sql.DB
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// List handles GET /api/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := store.ListUsers(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// target looks up the {id} user, writing a 404 if there is none.
func (h *UsersHandler) target(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, err := store.GetUser(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get user", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get user")
		return nil, false
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return nil, false
	}
	return user, true
}

// ResetPassword handles PUT /api/users/{id}/password. An empty password
// turns the entry back into a demo account.
func (h *UsersHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	target, ok := h.target(w, r)
	if !ok {
		return
	}

	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hash := ""
	if req.Password != "" {
		if err := model.ValidatePassword(req.Password); err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		b, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
		hash = string(b)
	}

	if err := store.UpdateUserPassword(r.Context(), h.DB, target.ID, hash); err != nil {
		slog.Error("failed to reset password", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to reset password")
		return
	}

	admin := session.FromContext(r.Context()).CurrentUser()
	slog.Info("user password reset", "user", admin.Email, "target_user", target.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password reset"})
}

// UploadAvatar handles PUT /api/users/{id}/avatar. Users may replace their
// own avatar; admins may replace anyone's.
func (h *UsersHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess.CurrentUser().ID != r.PathValue("id") && !sess.HasPermission(model.SettingsRoles) {
		jsonError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	target, ok := h.target(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "avatar file required")
		return
	}
	defer file.Close()

	data, err := imaging.Avatar(file)
	switch {
	case errors.Is(err, imaging.ErrUnsupported), errors.Is(err, imaging.ErrTooLarge):
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		jsonError(w, http.StatusBadRequest, "could not read image")
		return
	}

	if err := store.SetUserAvatar(r.Context(), h.DB, target.ID, data); err != nil {
		slog.Error("failed to save avatar", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save avatar")
		return
	}

	slog.Info("avatar updated", "user", sess.CurrentUser().Email, "target_user", target.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "avatar uploaded"})
}

// GetAvatar handles GET /api/users/{id}/avatar.
func (h *UsersHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	data, err := store.GetUserAvatar(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get avatar")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no avatar")
		return
	}

	w.Header().Set("Content-Type", imaging.ContentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Write(data)
}

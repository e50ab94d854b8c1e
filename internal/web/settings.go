package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/milasset/internal/imaging"
	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/session"
	"github.com/erazemk/milasset/internal/store"
)

// SettingsPage handles GET /settings.
func (s *Server) SettingsPage(w http.ResponseWriter, r *http.Request) {
	success := ""
	switch r.URL.Query().Get("saved") {
	case "ttl":
		success = "Session length updated."
	case "password":
		success = "Password reset."
	case "avatar":
		success = "Avatar updated."
	}
	s.settings(w, r, http.StatusOK, "", success)
}

func (s *Server) settings(w http.ResponseWriter, r *http.Request, status int, errMsg, success string) {
	users, err := store.ListUsers(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	ttl, err := store.GetSessionTTL(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to read settings", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := pageData(r, "Settings", "settings")
	data.Error = errMsg
	data.Success = success
	s.Templates.RenderStatus(w, status, "settings.html", &struct {
		PageData
		Users           []model.User
		Roles           []model.Role
		SessionTTLHours int
		MinPassword     int
	}{
		PageData:        data,
		Users:           users,
		Roles:           model.AllRoles,
		SessionTTLHours: int(ttl / time.Hour),
		MinPassword:     model.MinPasswordLength,
	})
}

// SettingsSubmit handles POST /settings.
func (s *Server) SettingsSubmit(w http.ResponseWriter, r *http.Request) {
	nums := &numberForm{r: r}
	hours := nums.Int("sessionTtlHours")
	if len(nums.errs) > 0 || hours <= 0 || hours > store.MaxSessionTTLHours {
		s.settings(w, r, http.StatusBadRequest,
			fmt.Sprintf("Session length must be a positive number of hours, at most %d.", store.MaxSessionTTLHours), "")
		return
	}
	if err := store.SetSessionTTL(r.Context(), s.DB, hours); err != nil {
		slog.Error("failed to update settings", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	slog.Info("settings updated", "user", session.FromContext(r.Context()).CurrentUser().Email,
		"session_ttl_hours", hours)
	http.Redirect(w, r, "/settings?saved=ttl", http.StatusSeeOther)
}

// UserResetPasswordSubmit handles POST /settings/users/{id}/password. An
// empty password turns the entry back into a demo account.
func (s *Server) UserResetPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	target, err := store.GetUser(r.Context(), s.DB, r.PathValue("id"))
	if err != nil || target == nil {
		s.settings(w, r, http.StatusNotFound, "User not found.", "")
		return
	}

	password := r.FormValue("password")
	hash := ""
	if password != "" {
		if err := model.ValidatePassword(password); err != nil {
			s.settings(w, r, http.StatusBadRequest, err.Error(), "")
			return
		}
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		hash = string(b)
	}

	if err := store.UpdateUserPassword(r.Context(), s.DB, target.ID, hash); err != nil {
		slog.Error("failed to reset password", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("user password reset", "user", session.FromContext(r.Context()).CurrentUser().Email,
		"target_user", target.Email)
	http.Redirect(w, r, "/settings?saved=password", http.StatusSeeOther)
}

// UserAvatarSubmit handles POST /settings/users/{id}/avatar.
func (s *Server) UserAvatarSubmit(w http.ResponseWriter, r *http.Request) {
	target, err := store.GetUser(r.Context(), s.DB, r.PathValue("id"))
	if err != nil || target == nil {
		s.settings(w, r, http.StatusNotFound, "User not found.", "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		s.settings(w, r, http.StatusBadRequest, "File too large or invalid upload.", "")
		return
	}
	file, _, err := r.FormFile("avatar")
	if err != nil {
		s.settings(w, r, http.StatusBadRequest, "Choose an image to upload.", "")
		return
	}
	defer file.Close()

	data, err := imaging.Avatar(file)
	switch {
	case errors.Is(err, imaging.ErrUnsupported), errors.Is(err, imaging.ErrTooLarge):
		s.settings(w, r, http.StatusBadRequest, err.Error(), "")
		return
	case err != nil:
		s.settings(w, r, http.StatusBadRequest, "Could not read image.", "")
		return
	}

	if err := store.SetUserAvatar(r.Context(), s.DB, target.ID, data); err != nil {
		slog.Error("failed to save avatar", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("avatar updated", "user", session.FromContext(r.Context()).CurrentUser().Email,
		"target_user", target.Email)
	http.Redirect(w, r, "/settings?saved=avatar", http.StatusSeeOther)
}

// AvatarGet handles GET /avatars/{id}.
func (s *Server) AvatarGet(w http.ResponseWriter, r *http.Request) {
	data, err := store.GetUserAvatar(r.Context(), s.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get avatar", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", imaging.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=300")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write avatar response", "error", err)
	}
}

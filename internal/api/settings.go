package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/milasset/internal/session"
	"github.com/erazemk/milasset/internal/store"
)

// SettingsHandler handles the admin settings endpoints.
type SettingsHandler struct {
	DB *sql.DB
}

type settingsBody struct {
	SessionTTLHours int `json:"sessionTtlHours"`
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ttl, err := store.GetSessionTTL(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to read settings", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to read settings")
		return
	}
	jsonResponse(w, http.StatusOK, settingsBody{SessionTTLHours: int(ttl / time.Hour)})
}

// Update handles PUT /api/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsBody
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionTTLHours <= 0 || req.SessionTTLHours > store.MaxSessionTTLHours {
		jsonError(w, http.StatusBadRequest,
			fmt.Sprintf("sessionTtlHours must be between 1 and %d", store.MaxSessionTTLHours))
		return
	}

	if err := store.SetSessionTTL(r.Context(), h.DB, req.SessionTTLHours); err != nil {
		slog.Error("failed to update settings", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	slog.Info("settings updated", "user", session.FromContext(r.Context()).CurrentUser().Email,
		"session_ttl_hours", req.SessionTTLHours)
	jsonResponse(w, http.StatusOK, req)
}

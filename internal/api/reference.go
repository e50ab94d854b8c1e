package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/store"
)

// ReferenceHandler serves the bases, equipment and personnel directories.
type ReferenceHandler struct {
	DB *sql.DB
}

// Bases handles GET /api/bases.
func (h *ReferenceHandler) Bases(w http.ResponseWriter, r *http.Request) {
	bases, err := store.ListBases(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list bases", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list bases")
		return
	}
	if bases == nil {
		bases = []model.Base{}
	}
	jsonResponse(w, http.StatusOK, bases)
}

// Equipment handles GET /api/equipment.
func (h *ReferenceHandler) Equipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := store.ListEquipment(r.Context(), h.DB, r.URL.Query().Get("status"))
	if err != nil {
		slog.Error("failed to list equipment", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list equipment")
		return
	}
	if equipment == nil {
		equipment = []model.Equipment{}
	}
	jsonResponse(w, http.StatusOK, equipment)
}

// Personnel handles GET /api/personnel.
func (h *ReferenceHandler) Personnel(w http.ResponseWriter, r *http.Request) {
	personnel, err := store.ListPersonnel(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list personnel", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list personnel")
		return
	}
	if personnel == nil {
		personnel = []model.Personnel{}
	}
	jsonResponse(w, http.StatusOK, personnel)
}

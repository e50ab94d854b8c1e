package web

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/store"
	"github.com/erazemk/milasset/internal/view"
)

// Dashboard handles GET /dashboard.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := pageData(r, "Dashboard", "dashboard")

	f, err := view.ParseFilter(r.URL.Query())
	if err != nil {
		data.Error = err.Error()
	}

	dash, err := view.BuildDashboard(r.Context(), s.DB, f)
	if err != nil {
		slog.Error("failed to build dashboard", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	bases, err := store.ListBases(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list bases", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		*view.Dashboard
		Bases     []model.Base
		Types     []model.EquipmentType
		Statuses  []string
		ExportURL template.URL
	}{
		PageData:  data,
		Dashboard: dash,
		Bases:     bases,
		Types:     model.EquipmentTypes,
		ExportURL: exportURL("/dashboard/export", f.Query()),
	})
}

package web

import (
	"context"
	"database/sql"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/report"
	"github.com/erazemk/milasset/internal/store"
	"github.com/erazemk/milasset/internal/view"
)

// exportList writes the filtered list as a spreadsheet download. The page
// filter comes along in the query string.
func exportList[T view.Record](w http.ResponseWriter, r *http.Request, db *sql.DB, name string,
	list func(context.Context, *sql.DB) ([]T, error), table func([]T) report.Table) {
	f, err := view.ParseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	all, err := list(r.Context(), db)
	if err != nil {
		slog.Error("failed to load export", "export", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeSheet(w, name, table(view.Apply(all, f)))
}

// exportURL links to an export endpoint carrying the page's query.
func exportURL(path string, q url.Values) template.URL {
	if len(q) == 0 {
		return template.URL(path)
	}
	return template.URL(path + "?" + q.Encode())
}

func writeSheet(w http.ResponseWriter, name string, t report.Table) {
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.xlsx"`)
	if err := report.Write(w, t); err != nil {
		slog.Error("failed to write export", "export", name, "error", err)
	}
}

// PurchasesExport handles GET /purchases/export.
func (s *Server) PurchasesExport(w http.ResponseWriter, r *http.Request) {
	exportList(w, r, s.DB, "purchases", store.ListPurchases, report.Purchases)
}

// TransfersExport handles GET /transfers/export.
func (s *Server) TransfersExport(w http.ResponseWriter, r *http.Request) {
	exportList(w, r, s.DB, "transfers", store.ListTransfers, report.Transfers)
}

// AssignmentsExport handles GET /assignments/export.
func (s *Server) AssignmentsExport(w http.ResponseWriter, r *http.Request) {
	sub := r.URL.Query().Get("view")
	exportList(w, r, s.DB, "assignments", store.ListAssignments, func(as []model.Assignment) report.Table {
		// Apply already ran; the sub-view only narrows by status.
		return report.Assignments(view.ApplyAssignments(as, view.Filter{}, sub))
	})
}

// ExpendituresExport handles GET /expenditures/export.
func (s *Server) ExpendituresExport(w http.ResponseWriter, r *http.Request) {
	exportList(w, r, s.DB, "expenditures", store.ListExpenditures, report.Expenditures)
}

// DashboardExport handles GET /dashboard/export.
func (s *Server) DashboardExport(w http.ResponseWriter, r *http.Request) {
	f, err := view.ParseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dash, err := view.BuildDashboard(r.Context(), s.DB, f)
	if err != nil {
		slog.Error("failed to build dashboard", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeSheet(w, "summary", report.Summaries(dash.Summaries, dash.Totals))
}

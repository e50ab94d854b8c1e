package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/milasset/internal/entry"
	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/report"
	"github.com/erazemk/milasset/internal/session"
	"github.com/erazemk/milasset/internal/store"
	"github.com/erazemk/milasset/internal/view"
)

// RecordsHandler serves the four movement record lists.
type RecordsHandler struct {
	DB *sql.DB
}

// loadFiltered reads the filter from the query and applies it to a list
// from the store. It writes the error response itself and returns ok=false
// on failure.
func loadFiltered[T view.Record](w http.ResponseWriter, r *http.Request, db *sql.DB, kind string,
	list func(context.Context, *sql.DB) ([]T, error)) ([]T, bool) {
	f, err := view.ParseFilter(r.URL.Query())
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	records, err := list(r.Context(), db)
	if err != nil {
		slog.Error("failed to list "+kind+"s", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list "+kind+"s")
		return nil, false
	}
	return view.Apply(records, f), true
}

func writeSheet(w http.ResponseWriter, name string, t report.Table) {
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.xlsx"`)
	if err := report.Write(w, t); err != nil {
		slog.Error("failed to write export", "export", name, "error", err)
	}
}

// ListPurchases handles GET /api/purchases.
func (h *RecordsHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, ok := loadFiltered(w, r, h.DB, store.KindPurchase, store.ListPurchases)
	if ok {
		jsonResponse(w, http.StatusOK, purchases)
	}
}

// CreatePurchase handles POST /api/purchases.
func (h *RecordsHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var d entry.PurchaseDraft
	if err := decodeJSON(r, &d); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := entry.SubmitPurchase(r.Context(), h.DB, session.FromContext(r.Context()), d)
	if err != nil {
		submitError(w, store.KindPurchase, err)
		return
	}
	jsonResponse(w, http.StatusCreated, p)
}

// ExportPurchases handles GET /api/purchases/export.
func (h *RecordsHandler) ExportPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, ok := loadFiltered(w, r, h.DB, store.KindPurchase, store.ListPurchases)
	if ok {
		writeSheet(w, "purchases", report.Purchases(purchases))
	}
}

// ListTransfers handles GET /api/transfers.
func (h *RecordsHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, ok := loadFiltered(w, r, h.DB, store.KindTransfer, store.ListTransfers)
	if ok {
		jsonResponse(w, http.StatusOK, transfers)
	}
}

// CreateTransfer handles POST /api/transfers.
func (h *RecordsHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var d entry.TransferDraft
	if err := decodeJSON(r, &d); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := entry.SubmitTransfer(r.Context(), h.DB, session.FromContext(r.Context()), d)
	if err != nil {
		submitError(w, store.KindTransfer, err)
		return
	}
	jsonResponse(w, http.StatusCreated, t)
}

// ExportTransfers handles GET /api/transfers/export.
func (h *RecordsHandler) ExportTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, ok := loadFiltered(w, r, h.DB, store.KindTransfer, store.ListTransfers)
	if ok {
		writeSheet(w, "transfers", report.Transfers(transfers))
	}
}

// assignments applies the filter and the ?view= sub-view.
func (h *RecordsHandler) assignments(w http.ResponseWriter, r *http.Request) ([]model.Assignment, bool) {
	f, err := view.ParseFilter(r.URL.Query())
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	all, err := store.ListAssignments(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list assignments", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list assignments")
		return nil, false
	}
	return view.ApplyAssignments(all, f, r.URL.Query().Get("view")), true
}

// ListAssignments handles GET /api/assignments.
func (h *RecordsHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, ok := h.assignments(w, r)
	if ok {
		jsonResponse(w, http.StatusOK, assignments)
	}
}

// CreateAssignment handles POST /api/assignments.
func (h *RecordsHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var d entry.AssignmentDraft
	if err := decodeJSON(r, &d); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := entry.SubmitAssignment(r.Context(), h.DB, session.FromContext(r.Context()), d)
	if err != nil {
		submitError(w, store.KindAssignment, err)
		return
	}
	jsonResponse(w, http.StatusCreated, a)
}

// ExportAssignments handles GET /api/assignments/export.
func (h *RecordsHandler) ExportAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, ok := h.assignments(w, r)
	if ok {
		writeSheet(w, "assignments", report.Assignments(assignments))
	}
}

// ListExpenditures handles GET /api/expenditures.
func (h *RecordsHandler) ListExpenditures(w http.ResponseWriter, r *http.Request) {
	expenditures, ok := loadFiltered(w, r, h.DB, store.KindExpenditure, store.ListExpenditures)
	if ok {
		jsonResponse(w, http.StatusOK, expenditures)
	}
}

// CreateExpenditure handles POST /api/expenditures.
func (h *RecordsHandler) CreateExpenditure(w http.ResponseWriter, r *http.Request) {
	var d entry.ExpenditureDraft
	if err := decodeJSON(r, &d); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := entry.SubmitExpenditure(r.Context(), h.DB, session.FromContext(r.Context()), d)
	if err != nil {
		submitError(w, store.KindExpenditure, err)
		return
	}
	jsonResponse(w, http.StatusCreated, e)
}

// ExportExpenditures handles GET /api/expenditures/export.
func (h *RecordsHandler) ExportExpenditures(w http.ResponseWriter, r *http.Request) {
	expenditures, ok := loadFiltered(w, r, h.DB, store.KindExpenditure, store.ListExpenditures)
	if ok {
		writeSheet(w, "expenditures", report.Expenditures(expenditures))
	}
}

// Dashboard handles GET /api/dashboard.
func (h *RecordsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if ok {
		jsonResponse(w, http.StatusOK, d)
	}
}

// ExportDashboard handles GET /api/dashboard/export.
func (h *RecordsHandler) ExportDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if ok {
		writeSheet(w, "summary", report.Summaries(d.Summaries, d.Totals))
	}
}

func (h *RecordsHandler) dashboard(w http.ResponseWriter, r *http.Request) (*view.Dashboard, bool) {
	f, err := view.ParseFilter(r.URL.Query())
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	d, err := view.BuildDashboard(r.Context(), h.DB, f)
	if err != nil {
		slog.Error("failed to build dashboard", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to build dashboard")
		return nil, false
	}
	return d, true
}

package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/milasset/internal/entry"
	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/session"
	"github.com/erazemk/milasset/internal/store"
	"github.com/erazemk/milasset/internal/view"
)

// recordsPage is the data behind the four record list pages.
type recordsPage struct {
	PageData
	Filter    view.Filter
	Records   any
	Count     int
	Bases     []model.Base
	BaseNames map[string]string
	Types     []model.EquipmentType
	Statuses  []string
	Equipment []model.Equipment
	Personnel []model.Personnel
	Sub       string
	ExportURL template.URL
	Form      any
	Fields    entry.FieldErrors
}

// newRecordsPage fills the parts every record page shares. A malformed
// filter is reported on the page and the list is shown unfiltered.
func (s *Server) newRecordsPage(r *http.Request, title, active string) (*recordsPage, error) {
	p := &recordsPage{
		PageData: pageData(r, title, active),
		Types:    model.EquipmentTypes,
	}

	f, err := view.ParseFilter(r.URL.Query())
	if err != nil {
		p.Error = err.Error()
	}
	p.Filter = f

	if id := r.URL.Query().Get("created"); id != "" {
		p.Success = "Recorded " + id + "."
	}

	p.Bases, err = store.ListBases(r.Context(), s.DB)
	if err != nil {
		return nil, err
	}
	p.BaseNames = make(map[string]string, len(p.Bases))
	for _, b := range p.Bases {
		p.BaseNames[b.ID] = b.Name
	}
	return p, nil
}

var (
	transferStatuses = []string{
		model.TransferStatusPending,
		model.TransferStatusInTransit,
		model.TransferStatusCompleted,
		model.TransferStatusRejected,
	}
	assignmentStatuses = []string{
		model.AssignmentStatusActive,
		model.AssignmentStatusReturned,
		model.AssignmentStatusLost,
	}
)

func today() string {
	return time.Now().Format(view.DateLayout)
}

func formString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// numberForm reads numeric form fields and remembers the ones that did not
// parse. An empty field reads as zero and is left to validation.
type numberForm struct {
	r    *http.Request
	errs entry.FieldErrors
}

func (f *numberForm) invalid(key string) {
	if f.errs == nil {
		f.errs = make(entry.FieldErrors)
	}
	f.errs[key] = entry.NumberMessage(key)
}

func (f *numberForm) Int(key string) int {
	raw := formString(f.r, key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f.invalid(key)
		return 0
	}
	return n
}

func (f *numberForm) Decimal(key string) decimal.Decimal {
	raw := formString(f.r, key)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		f.invalid(key)
		return decimal.Zero
	}
	return d
}

// check returns nil when every number parsed. Otherwise it returns the
// draft's validation errors with the parse errors in place of whatever
// validation said about those fields.
func (f *numberForm) check(draft any) entry.FieldErrors {
	if len(f.errs) == 0 {
		return nil
	}
	fields := entry.Validate(draft)
	if fields == nil {
		fields = make(entry.FieldErrors, len(f.errs))
	}
	for k, msg := range f.errs {
		fields[k] = msg
	}
	return fields
}

// render writes p with status, or a 500 if building it failed.
func (s *Server) render(w http.ResponseWriter, status int, page string, p *recordsPage, err error) {
	if err != nil {
		slog.Error("failed to load page", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.Templates.RenderStatus(w, status, page, p)
}

// submitted handles the outcome of a record form. Validation failures
// re-render the form with its errors and success redirects back to the list.
func (s *Server) submitted(w http.ResponseWriter, r *http.Request, id string, err error, rerender func(entry.FieldErrors)) {
	var fields entry.FieldErrors
	switch {
	case err == nil:
		http.Redirect(w, r, r.URL.Path+"?created="+id, http.StatusSeeOther)
	case errors.As(err, &fields):
		rerender(fields)
	case errors.Is(err, entry.ErrUnauthenticated):
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, entry.ErrForbidden):
		http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
	default:
		slog.Error("failed to submit record", "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// PurchasesPage handles GET /purchases.
func (s *Server) PurchasesPage(w http.ResponseWriter, r *http.Request) {
	s.purchases(w, r, http.StatusOK, entry.PurchaseDraft{Date: today()}, nil)
}

func (s *Server) purchases(w http.ResponseWriter, r *http.Request, status int, form entry.PurchaseDraft, fields entry.FieldErrors) {
	p, err := s.newRecordsPage(r, "Purchases", "purchases")
	if err == nil {
		var all []model.Purchase
		if all, err = store.ListPurchases(r.Context(), s.DB); err == nil {
			records := view.Apply(all, p.Filter)
			p.Records, p.Count = records, len(records)
			p.Form, p.Fields = form, fields
			p.ExportURL = exportURL("/purchases/export", p.Filter.Query())
		}
	}
	s.render(w, status, "purchases.html", p, err)
}

// PurchaseSubmit handles POST /purchases.
func (s *Server) PurchaseSubmit(w http.ResponseWriter, r *http.Request) {
	nums := &numberForm{r: r}
	d := entry.PurchaseDraft{
		EquipmentType: model.EquipmentType(formString(r, "equipmentType")),
		Quantity:      nums.Int("quantity"),
		BaseID:        formString(r, "baseId"),
		Date:          formString(r, "date"),
		PurchaseOrder: formString(r, "purchaseOrder"),
		Supplier:      formString(r, "supplier"),
		Cost:          nums.Decimal("cost"),
		Notes:         formString(r, "notes"),
	}
	if fields := nums.check(d); fields != nil {
		s.purchases(w, r, http.StatusUnprocessableEntity, d, fields)
		return
	}
	var id string
	p, err := entry.SubmitPurchase(r.Context(), s.DB, session.FromContext(r.Context()), d)
	if err == nil {
		id = p.ID
	}
	s.submitted(w, r, id, err, func(fields entry.FieldErrors) {
		s.purchases(w, r, http.StatusUnprocessableEntity, d, fields)
	})
}

// TransfersPage handles GET /transfers.
func (s *Server) TransfersPage(w http.ResponseWriter, r *http.Request) {
	s.transfers(w, r, http.StatusOK, entry.TransferDraft{Date: today()}, nil)
}

func (s *Server) transfers(w http.ResponseWriter, r *http.Request, status int, form entry.TransferDraft, fields entry.FieldErrors) {
	p, err := s.newRecordsPage(r, "Transfers", "transfers")
	if err == nil {
		p.Statuses = transferStatuses
		var all []model.Transfer
		if all, err = store.ListTransfers(r.Context(), s.DB); err == nil {
			records := view.Apply(all, p.Filter)
			p.Records, p.Count = records, len(records)
			p.Form, p.Fields = form, fields
			p.ExportURL = exportURL("/transfers/export", p.Filter.Query())
		}
	}
	s.render(w, status, "transfers.html", p, err)
}

// TransferSubmit handles POST /transfers.
func (s *Server) TransferSubmit(w http.ResponseWriter, r *http.Request) {
	nums := &numberForm{r: r}
	d := entry.TransferDraft{
		EquipmentType: model.EquipmentType(formString(r, "equipmentType")),
		Quantity:      nums.Int("quantity"),
		FromBaseID:    formString(r, "fromBaseId"),
		ToBaseID:      formString(r, "toBaseId"),
		Date:          formString(r, "date"),
		Notes:         formString(r, "notes"),
	}
	if fields := nums.check(d); fields != nil {
		s.transfers(w, r, http.StatusUnprocessableEntity, d, fields)
		return
	}
	var id string
	t, err := entry.SubmitTransfer(r.Context(), s.DB, session.FromContext(r.Context()), d)
	if err == nil {
		id = t.ID
	}
	s.submitted(w, r, id, err, func(fields entry.FieldErrors) {
		s.transfers(w, r, http.StatusUnprocessableEntity, d, fields)
	})
}

// AssignmentsPage handles GET /assignments and its active and history
// sub-views.
func (s *Server) AssignmentsPage(sub string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.assignments(w, r, sub, http.StatusOK, entry.AssignmentDraft{DateAssigned: today()}, nil)
	}
}

func (s *Server) assignments(w http.ResponseWriter, r *http.Request, sub string, status int, form entry.AssignmentDraft, fields entry.FieldErrors) {
	active := "assignments"
	if sub != "" {
		active += "-" + sub
	}
	v, _ := model.LookupView(active)

	p, err := s.newRecordsPage(r, v.Label, active)
	if err == nil {
		p.Sub = sub
		p.Statuses = assignmentStatuses
		p.Equipment, err = store.ListEquipment(r.Context(), s.DB, "")
	}
	if err == nil {
		p.Personnel, err = store.ListPersonnel(r.Context(), s.DB)
	}
	if err == nil {
		var all []model.Assignment
		if all, err = store.ListAssignments(r.Context(), s.DB); err == nil {
			records := view.ApplyAssignments(all, p.Filter, sub)
			p.Records, p.Count = records, len(records)
			p.Form, p.Fields = form, fields
			q := p.Filter.Query()
			if sub != "" {
				q.Set("view", sub)
			}
			p.ExportURL = exportURL("/assignments/export", q)
		}
	}
	s.render(w, status, "assignments.html", p, err)
}

// AssignmentSubmit handles POST /assignments.
func (s *Server) AssignmentSubmit(w http.ResponseWriter, r *http.Request) {
	d := entry.AssignmentDraft{
		EquipmentID:  formString(r, "equipmentId"),
		PersonnelID:  formString(r, "personnelId"),
		DateAssigned: formString(r, "dateAssigned"),
		Purpose:      formString(r, "purpose"),
	}
	var id string
	a, err := entry.SubmitAssignment(r.Context(), s.DB, session.FromContext(r.Context()), d)
	if err == nil {
		id = a.ID
	}
	s.submitted(w, r, id, err, func(fields entry.FieldErrors) {
		s.assignments(w, r, "", http.StatusUnprocessableEntity, d, fields)
	})
}

// ExpendituresPage handles GET /expenditures.
func (s *Server) ExpendituresPage(w http.ResponseWriter, r *http.Request) {
	s.expenditures(w, r, http.StatusOK, entry.ExpenditureDraft{Date: today()}, nil)
}

func (s *Server) expenditures(w http.ResponseWriter, r *http.Request, status int, form entry.ExpenditureDraft, fields entry.FieldErrors) {
	p, err := s.newRecordsPage(r, "Expenditures", "expenditures")
	if err == nil {
		var all []model.Expenditure
		if all, err = store.ListExpenditures(r.Context(), s.DB); err == nil {
			records := view.Apply(all, p.Filter)
			p.Records, p.Count = records, len(records)
			p.Form, p.Fields = form, fields
			p.ExportURL = exportURL("/expenditures/export", p.Filter.Query())
		}
	}
	s.render(w, status, "expenditures.html", p, err)
}

// ExpenditureSubmit handles POST /expenditures.
func (s *Server) ExpenditureSubmit(w http.ResponseWriter, r *http.Request) {
	nums := &numberForm{r: r}
	d := entry.ExpenditureDraft{
		EquipmentType: model.EquipmentType(formString(r, "equipmentType")),
		Quantity:      nums.Int("quantity"),
		BaseID:        formString(r, "baseId"),
		Date:          formString(r, "date"),
		Purpose:       formString(r, "purpose"),
	}
	if fields := nums.check(d); fields != nil {
		s.expenditures(w, r, http.StatusUnprocessableEntity, d, fields)
		return
	}
	var id string
	e, err := entry.SubmitExpenditure(r.Context(), s.DB, session.FromContext(r.Context()), d)
	if err == nil {
		id = e.ID
	}
	s.submitted(w, r, id, err, func(fields entry.FieldErrors) {
		s.expenditures(w, r, http.StatusUnprocessableEntity, d, fields)
	})
}

// Package view narrows record lists for display and derives the dashboard
// stock summaries from the movement records.
package view

import (
	"fmt"
	"net/url"
	"time"

	"github.com/erazemk/milasset/internal/model"
)

// DateLayout is the ISO date format every record date uses.
const DateLayout = "2006-01-02"

// Filter narrows a record list. Empty fields do not constrain.
type Filter struct {
	Start         string              `json:"startDate,omitempty"`
	End           string              `json:"endDate,omitempty"`
	BaseID        string              `json:"baseId,omitempty"`
	EquipmentType model.EquipmentType `json:"equipmentType,omitempty"`
	Status        string              `json:"status,omitempty"`
	FromBaseID    string              `json:"fromBaseId,omitempty"`
	ToBaseID      string              `json:"toBaseId,omitempty"`
}

// Record is implemented by every movement record kind.
type Record interface {
	FilterBase(id string) bool
	FilterType() model.EquipmentType
	// FilterDates returns the dates compared against the lower and upper
	// bound respectively.
	FilterDates() (start, end string)
}

type statusRecord interface {
	FilterStatus() string
}

type routeRecord interface {
	FilterRoute() (from, to string)
}

// ParseFilter reads a filter from query parameters.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{
		Start:         q.Get("startDate"),
		End:           q.Get("endDate"),
		BaseID:        q.Get("baseId"),
		EquipmentType: model.EquipmentType(q.Get("equipmentType")),
		Status:        q.Get("status"),
		FromBaseID:    q.Get("fromBaseId"),
		ToBaseID:      q.Get("toBaseId"),
	}

	for name, d := range map[string]string{"startDate": f.Start, "endDate": f.End} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, d); err != nil {
			return Filter{}, fmt.Errorf("%s must be a date in YYYY-MM-DD form", name)
		}
	}
	if f.EquipmentType != "" && !f.EquipmentType.Valid() {
		return Filter{}, fmt.Errorf("unknown equipment type %q", f.EquipmentType)
	}
	return f, nil
}

// Query encodes f back into query parameters, omitting empty fields.
func (f Filter) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("startDate", f.Start)
	set("endDate", f.End)
	set("baseId", f.BaseID)
	set("equipmentType", string(f.EquipmentType))
	set("status", f.Status)
	set("fromBaseId", f.FromBaseID)
	set("toBaseId", f.ToBaseID)
	return q
}

// IsZero reports whether f constrains nothing.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether r passes every predicate of f. The predicates run
// in a fixed order: base, equipment type, lower date bound, upper date
// bound, then the kind-specific ones.
func (f Filter) Match(r Record) bool {
	if f.BaseID != "" && !r.FilterBase(f.BaseID) {
		return false
	}
	if f.EquipmentType != "" && r.FilterType() != f.EquipmentType {
		return false
	}

	// ISO dates order correctly as strings.
	start, end := r.FilterDates()
	if f.Start != "" && start < f.Start {
		return false
	}
	if f.End != "" && end > f.End {
		return false
	}

	if s, ok := r.(statusRecord); ok && f.Status != "" && s.FilterStatus() != f.Status {
		return false
	}
	if rr, ok := r.(routeRecord); ok {
		from, to := rr.FilterRoute()
		if f.FromBaseID != "" && from != f.FromBaseID {
			return false
		}
		if f.ToBaseID != "" && to != f.ToBaseID {
			return false
		}
	}
	return true
}

// Apply returns the records that match f, in their original order.
func Apply[T Record](records []T, f Filter) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Recent returns at most the first n records.
func Recent[T any](records []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(records) <= n {
		return records
	}
	return records[:n]
}

// Assignment sub-views.
const (
	AssignmentsActive  = "active"
	AssignmentsHistory = "history"
)

// ApplyAssignments is Apply narrowed to a sub-view: active shows open
// assignments, history shows returned and lost ones, anything else shows all.
func ApplyAssignments(as []model.Assignment, f Filter, sub string) []model.Assignment {
	switch sub {
	case AssignmentsActive:
		f.Status = model.AssignmentStatusActive
	case AssignmentsHistory:
		out := Apply(as, f)
		n := 0
		for _, a := range out {
			if a.Status != model.AssignmentStatusActive {
				out[n] = a
				n++
			}
		}
		return out[:n]
	}
	return Apply(as, f)
}

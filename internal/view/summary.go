package view

import (
	"context"
	"database/sql"

	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/store"
)

// Input is everything the stock summaries are derived from.
type Input struct {
	Opening      []model.OpeningStock
	Purchases    []model.Purchase
	Transfers    []model.Transfer
	Assignments  []model.Assignment
	Expenditures []model.Expenditure
}

// Load reads the summary input from the record store.
func Load(ctx context.Context, db *sql.DB) (*Input, error) {
	var in Input
	var err error
	if in.Opening, err = store.ListOpeningStock(ctx, db); err != nil {
		return nil, err
	}
	if in.Purchases, err = store.ListPurchases(ctx, db); err != nil {
		return nil, err
	}
	if in.Transfers, err = store.ListTransfers(ctx, db); err != nil {
		return nil, err
	}
	if in.Assignments, err = store.ListAssignments(ctx, db); err != nil {
		return nil, err
	}
	if in.Expenditures, err = store.ListExpenditures(ctx, db); err != nil {
		return nil, err
	}
	return &in, nil
}

// period classifies a movement date against the filter's range.
type period int

const (
	before period = iota
	within
	after
)

func (f Filter) period(date string) period {
	switch {
	case f.Start != "" && date < f.Start:
		return before
	case f.End != "" && date > f.End:
		return after
	default:
		return within
	}
}

func (f Filter) atBase(id string) bool {
	return f.BaseID == "" || f.BaseID == id
}

// Summarize derives one summary per equipment type, in display order, or
// just the filtered type when f names one. Movements before the range roll
// into the opening balance and movements after it are ignored. Only
// completed transfers move stock. Without a base filter every transfer is
// both in and out of the network.
func Summarize(in *Input, f Filter) []model.EquipmentSummary {
	type acc struct {
		opening, purchases, transferIn, transferOut, assigned, expended int
	}
	totals := make(map[model.EquipmentType]*acc, len(model.EquipmentTypes))
	for _, t := range model.EquipmentTypes {
		totals[t] = &acc{}
	}
	get := func(t model.EquipmentType) *acc {
		if a, ok := totals[t]; ok {
			return a
		}
		return &acc{} // unknown types are dropped
	}

	for _, s := range in.Opening {
		if f.atBase(s.BaseID) {
			get(s.EquipmentType).opening += s.Quantity
		}
	}

	for _, p := range in.Purchases {
		if !f.atBase(p.BaseID) {
			continue
		}
		a := get(p.EquipmentType)
		switch f.period(p.Date) {
		case before:
			a.opening += p.Quantity
		case within:
			a.purchases += p.Quantity
		}
	}

	for _, t := range in.Transfers {
		if t.Status != model.TransferStatusCompleted {
			continue
		}
		var qtyIn, qtyOut int
		if f.BaseID == "" {
			qtyIn, qtyOut = t.Quantity, t.Quantity
		} else {
			if t.ToBaseID == f.BaseID {
				qtyIn = t.Quantity
			}
			if t.FromBaseID == f.BaseID {
				qtyOut = t.Quantity
			}
		}
		a := get(t.EquipmentType)
		switch f.period(t.Date) {
		case before:
			a.opening += qtyIn - qtyOut
		case within:
			a.transferIn += qtyIn
			a.transferOut += qtyOut
		}
	}

	for _, e := range in.Expenditures {
		if !f.atBase(e.BaseID) {
			continue
		}
		a := get(e.EquipmentType)
		switch f.period(e.Date) {
		case before:
			a.opening -= e.Quantity
		case within:
			a.expended += e.Quantity
		}
	}

	for _, as := range in.Assignments {
		if as.Status != model.AssignmentStatusActive || !f.atBase(as.BaseID) {
			continue
		}
		if f.End != "" && as.DateAssigned > f.End {
			continue
		}
		get(as.EquipmentType).assigned++
	}

	var out []model.EquipmentSummary
	for _, t := range model.EquipmentTypes {
		if f.EquipmentType != "" && f.EquipmentType != t {
			continue
		}
		a := totals[t]
		out = append(out, model.NewSummary(t, a.opening, a.purchases, a.transferIn, a.transferOut, a.assigned, a.expended))
	}
	return out
}

// Aggregate sums summaries into dashboard totals.
func Aggregate(summaries []model.EquipmentSummary) model.Totals {
	var t model.Totals
	for _, s := range summaries {
		t.OpeningBalance += s.OpeningBalance
		t.Purchases += s.Purchases
		t.TransferIn += s.TransferIn
		t.TransferOut += s.TransferOut
		t.Assigned += s.Assigned
		t.Expended += s.Expended
		t.ClosingBalance += s.ClosingBalance
		t.NetMovement += s.NetMovement()
	}
	return t
}

// Dashboard is the data behind the dashboard view.
type Dashboard struct {
	Filter          Filter                   `json:"filter"`
	Summaries       []model.EquipmentSummary `json:"summaries"`
	Totals          model.Totals             `json:"totals"`
	RecentPurchases []model.Purchase         `json:"recentPurchases"`
	RecentTransfers []model.Transfer         `json:"recentTransfers"`
}

// RecentCount is how many records the dashboard activity cards show.
const RecentCount = 3

// BuildDashboard loads the store and derives the dashboard for f.
func BuildDashboard(ctx context.Context, db *sql.DB, f Filter) (*Dashboard, error) {
	in, err := Load(ctx, db)
	if err != nil {
		return nil, err
	}

	summaries := Summarize(in, f)
	return &Dashboard{
		Filter:          f,
		Summaries:       summaries,
		Totals:          Aggregate(summaries),
		RecentPurchases: Recent(Apply(in.Purchases, f), RecentCount),
		RecentTransfers: Recent(Apply(in.Transfers, f), RecentCount),
	}, nil
}

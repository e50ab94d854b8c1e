package view

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/milasset/internal/model"
)

var purchases = []model.Purchase{
	{ID: "pur1", EquipmentType: model.EquipmentWeapon, Quantity: 50, BaseID: "base1", Date: "2023-08-15", Cost: decimal.NewFromInt(75000)},
	{ID: "pur2", EquipmentType: model.EquipmentVehicle, Quantity: 5, BaseID: "base2", Date: "2023-09-01", Cost: decimal.NewFromInt(350000)},
	{ID: "pur3", EquipmentType: model.EquipmentAmmunition, Quantity: 10000, BaseID: "base1", Date: "2023-09-15", Cost: decimal.NewFromInt(25000)},
}

var transfers = []model.Transfer{
	{ID: "trans1", EquipmentType: model.EquipmentWeapon, Quantity: 20, FromBaseID: "base1", ToBaseID: "base2", Date: "2023-10-05", Status: model.TransferStatusCompleted},
	{ID: "trans2", EquipmentType: model.EquipmentAmmunition, Quantity: 5000, FromBaseID: "base2", ToBaseID: "base1", Date: "2023-10-12", Status: model.TransferStatusInTransit},
	{ID: "trans3", EquipmentType: model.EquipmentVehicle, Quantity: 2, FromBaseID: "base1", ToBaseID: "base3", Date: "2023-10-20", Status: model.TransferStatusPending},
}

var assignments = []model.Assignment{
	{ID: "asn1", EquipmentID: "eq1", DateAssigned: "2023-09-10", Status: model.AssignmentStatusActive, EquipmentType: model.EquipmentWeapon, BaseID: "base1"},
	{ID: "asn2", EquipmentID: "eq2", DateAssigned: "2023-09-15", DateReturned: "2023-10-15", Status: model.AssignmentStatusReturned, EquipmentType: model.EquipmentVehicle, BaseID: "base1"},
}

func ids[T interface{ Record }](records []T, id func(T) string) []string {
	out := []string{}
	for _, r := range records {
		out = append(out, id(r))
	}
	return out
}

func purchaseID(p model.Purchase) string { return p.ID }
func transferID(t model.Transfer) string { return t.ID }
func assignmentID(a model.Assignment) string { return a.ID }

func TestApplyEmptyFilterIsIdentity(t *testing.T) {
	assert.Equal(t, purchases, Apply(purchases, Filter{}))
	assert.Equal(t, transfers, Apply(transfers, Filter{}))
	assert.Equal(t, assignments, Apply(assignments, Filter{}))
}

func TestApplyVehiclePurchases(t *testing.T) {
	got := Apply(purchases, Filter{EquipmentType: model.EquipmentVehicle})

	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Quantity)
	assert.True(t, got[0].Cost.Equal(decimal.NewFromInt(350000)))
}

func TestApplyDateRange(t *testing.T) {
	f := Filter{Start: "2023-09-01", End: "2023-09-30"}
	got := Apply(purchases, f)

	assert.Equal(t, []string{"pur2", "pur3"}, ids(got, purchaseID))
	for _, p := range got {
		assert.GreaterOrEqual(t, p.Date, f.Start)
		assert.LessOrEqual(t, p.Date, f.End)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	filters := []Filter{
		{},
		{BaseID: "base1"},
		{EquipmentType: model.EquipmentWeapon, Start: "2023-08-01"},
		{End: "2023-10-10", Status: model.TransferStatusCompleted},
	}
	for _, f := range filters {
		once := Apply(transfers, f)
		assert.Equal(t, once, Apply(once, f))
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	reversed := []model.Purchase{purchases[2], purchases[1], purchases[0]}
	got := Apply(reversed, Filter{Start: "2023-09-01"})
	assert.Equal(t, []string{"pur3", "pur2"}, ids(got, purchaseID))
}

func TestApplyTransferBaseMatchesEitherSide(t *testing.T) {
	got := Apply(transfers, Filter{BaseID: "base2"})
	assert.Equal(t, []string{"trans1", "trans2"}, ids(got, transferID))

	got = Apply(transfers, Filter{FromBaseID: "base1"})
	assert.Equal(t, []string{"trans1", "trans3"}, ids(got, transferID))

	got = Apply(transfers, Filter{FromBaseID: "base1", ToBaseID: "base3"})
	assert.Equal(t, []string{"trans3"}, ids(got, transferID))
}

func TestApplyStatusOnlyNarrowsKindsWithStatus(t *testing.T) {
	got := Apply(transfers, Filter{Status: model.TransferStatusPending})
	assert.Equal(t, []string{"trans3"}, ids(got, transferID))

	assert.Len(t, Apply(purchases, Filter{Status: model.TransferStatusPending}), 3)
}

func TestApplyOpenAssignmentUsesStartDate(t *testing.T) {
	got := Apply(assignments, Filter{Start: "2023-09-01", End: "2023-09-30"})
	assert.Equal(t, []string{"asn1"}, ids(got, assignmentID), "returned assignment ends after range")

	got = Apply(assignments, Filter{End: "2023-09-12"})
	assert.Equal(t, []string{"asn1"}, ids(got, assignmentID))

	got = Apply(assignments, Filter{End: "2023-09-05"})
	assert.Empty(t, got)

	got = Apply(assignments, Filter{End: "2023-10-31"})
	assert.Equal(t, []string{"asn1", "asn2"}, ids(got, assignmentID))
}

func TestParseFilter(t *testing.T) {
	q := url.Values{
		"startDate":     {"2023-09-01"},
		"endDate":       {"2023-09-30"},
		"baseId":        {"base1"},
		"equipmentType": {"weapon"},
	}
	f, err := ParseFilter(q)
	require.NoError(t, err)
	assert.Equal(t, Filter{Start: "2023-09-01", End: "2023-09-30", BaseID: "base1", EquipmentType: model.EquipmentWeapon}, f)
	assert.Equal(t, q, f.Query())

	empty, err := ParseFilter(url.Values{})
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = ParseFilter(url.Values{"startDate": {"09/01/2023"}})
	assert.Error(t, err)

	_, err = ParseFilter(url.Values{"equipmentType": {"tank"}})
	assert.Error(t, err)
}

func TestRecent(t *testing.T) {
	assert.Equal(t, []string{"pur1", "pur2"}, ids(Recent(purchases, 2), purchaseID))
	assert.Len(t, Recent(purchases, 10), 3)
	assert.Empty(t, Recent(purchases, 0))
}

func TestApplyAssignmentsSubViews(t *testing.T) {
	assert.Equal(t, []string{"asn1"}, ids(ApplyAssignments(assignments, Filter{}, AssignmentsActive), assignmentID))
	assert.Equal(t, []string{"asn2"}, ids(ApplyAssignments(assignments, Filter{}, AssignmentsHistory), assignmentID))
	assert.Len(t, ApplyAssignments(assignments, Filter{}, ""), 2)

	// The input list is left untouched.
	assert.Equal(t, "asn1", assignments[0].ID)
}

package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/milasset/internal/db"
	"github.com/erazemk/milasset/internal/model"
)

func loadSeeded(t *testing.T) *Input {
	t.Helper()
	in, err := Load(context.Background(), db.NewSeededTestDB(t))
	require.NoError(t, err)
	return in
}

func summaryFor(t *testing.T, summaries []model.EquipmentSummary, et model.EquipmentType) model.EquipmentSummary {
	t.Helper()
	for _, s := range summaries {
		if s.EquipmentType == et {
			return s
		}
	}
	t.Fatalf("no summary for %s", et)
	return model.EquipmentSummary{}
}

func TestAggregateAmmunitionSummary(t *testing.T) {
	ammo := model.NewSummary(model.EquipmentAmmunition, 20000, 10000, 5000, 0, 0, 3500)

	totals := Aggregate([]model.EquipmentSummary{ammo})
	assert.Equal(t, 31500, totals.ClosingBalance)
	assert.Equal(t, 15000, totals.NetMovement)
	assert.Equal(t, 3500, totals.Expended)
}

func TestAggregateSumsEveryField(t *testing.T) {
	summaries := []model.EquipmentSummary{
		model.NewSummary(model.EquipmentWeapon, 100, 50, 20, 20, 1, 0),
		model.NewSummary(model.EquipmentVehicle, 20, 5, 0, 2, 0, 0),
	}
	totals := Aggregate(summaries)

	assert.Equal(t, model.Totals{
		OpeningBalance: 120,
		Purchases:      55,
		TransferIn:     20,
		TransferOut:    22,
		Assigned:       1,
		Expended:       0,
		ClosingBalance: 173,
		NetMovement:    53,
	}, totals)
	assert.Equal(t, model.Totals{}, Aggregate(nil))
}

func TestSummarizeNetwork(t *testing.T) {
	summaries := Summarize(loadSeeded(t), Filter{})
	require.Len(t, summaries, len(model.EquipmentTypes))

	for i, s := range summaries {
		assert.Equal(t, model.EquipmentTypes[i], s.EquipmentType)
		assert.Equal(t, s.OpeningBalance+s.Purchases+s.TransferIn-s.TransferOut-s.Expended, s.ClosingBalance)
		assert.Equal(t, s.TransferIn, s.TransferOut, "network transfers net to zero")
	}

	weapon := summaryFor(t, summaries, model.EquipmentWeapon)
	assert.Equal(t, model.NewSummary(model.EquipmentWeapon, 100, 50, 20, 20, 1, 0), weapon)

	ammo := summaryFor(t, summaries, model.EquipmentAmmunition)
	assert.Equal(t, 0, ammo.TransferIn, "in-transit transfers do not move stock")
	assert.Equal(t, 3500, ammo.Expended)
	assert.Equal(t, 26500, ammo.ClosingBalance)

	assert.Equal(t, 50, summaryFor(t, summaries, model.EquipmentCommunication).ClosingBalance)
}

func TestSummarizeByBase(t *testing.T) {
	in := loadSeeded(t)

	base1 := summaryFor(t, Summarize(in, Filter{BaseID: "base1"}), model.EquipmentWeapon)
	assert.Equal(t, model.NewSummary(model.EquipmentWeapon, 60, 50, 0, 20, 1, 0), base1)

	base2 := summaryFor(t, Summarize(in, Filter{BaseID: "base2"}), model.EquipmentWeapon)
	assert.Equal(t, 20, base2.TransferIn)
	assert.Equal(t, 60, base2.ClosingBalance)
	assert.Equal(t, 0, base2.Assigned)
}

func TestSummarizeStartRollsIntoOpening(t *testing.T) {
	in := loadSeeded(t)
	full := summaryFor(t, Summarize(in, Filter{}), model.EquipmentAmmunition)

	late := summaryFor(t, Summarize(in, Filter{Start: "2023-10-05"}), model.EquipmentAmmunition)
	assert.Equal(t, 28000, late.OpeningBalance)
	assert.Equal(t, 0, late.Purchases)
	assert.Equal(t, 1500, late.Expended)
	assert.Equal(t, full.ClosingBalance, late.ClosingBalance)
}

func TestSummarizeEndIgnoresLaterMovements(t *testing.T) {
	in := loadSeeded(t)

	ammo := summaryFor(t, Summarize(in, Filter{End: "2023-09-30"}), model.EquipmentAmmunition)
	assert.Equal(t, 10000, ammo.Purchases)
	assert.Equal(t, 0, ammo.Expended)
	assert.Equal(t, 30000, ammo.ClosingBalance)

	weapon := summaryFor(t, Summarize(in, Filter{End: "2023-09-01"}), model.EquipmentWeapon)
	assert.Equal(t, 0, weapon.Assigned, "assignment starts after the range")
}

func TestSummarizeSingleType(t *testing.T) {
	summaries := Summarize(loadSeeded(t), Filter{EquipmentType: model.EquipmentVehicle})
	require.Len(t, summaries, 1)
	assert.Equal(t, 25, summaries[0].ClosingBalance)
}

func TestBuildDashboard(t *testing.T) {
	d, err := BuildDashboard(context.Background(), db.NewSeededTestDB(t), Filter{BaseID: "base1"})
	require.NoError(t, err)

	assert.Len(t, d.Summaries, len(model.EquipmentTypes))
	assert.Equal(t, Aggregate(d.Summaries), d.Totals)
	assert.Len(t, d.RecentPurchases, 2)
	assert.Len(t, d.RecentTransfers, 3)
}

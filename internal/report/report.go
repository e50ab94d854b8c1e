// Package report renders record lists as spreadsheets.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/erazemk/milasset/internal/model"
)

// ContentType is the MIME type of a written workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Table is one worksheet worth of data.
type Table struct {
	Sheet    string
	Headings []string
	Rows     [][]any
}

// Write renders t as a single-sheet workbook with a bold header row.
func Write(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", t.Sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headings := make([]any, len(t.Headings))
	for i, h := range t.Headings {
		headings[i] = h
	}
	if err := f.SetSheetRow(t.Sheet, "A1", &headings); err != nil {
		return fmt.Errorf("writing headings: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(max(len(t.Headings), 1), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.Sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("styling headings: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Purchases tabulates purchase records.
func Purchases(ps []model.Purchase) Table {
	t := Table{
		Sheet:    "Purchases",
		Headings: []string{"ID", "Date", "Equipment Type", "Quantity", "Base", "Purchase Order", "Supplier", "Cost", "Notes"},
	}
	for _, p := range ps {
		t.Rows = append(t.Rows, []any{
			p.ID, p.Date, p.EquipmentType.Label(), p.Quantity, p.BaseID,
			p.PurchaseOrder, p.Supplier, p.Cost.InexactFloat64(), p.Notes,
		})
	}
	return t
}

// Transfers tabulates transfer records.
func Transfers(ts []model.Transfer) Table {
	t := Table{
		Sheet:    "Transfers",
		Headings: []string{"ID", "Date", "Equipment Type", "Quantity", "From", "To", "Authorized By", "Status", "Notes"},
	}
	for _, tr := range ts {
		t.Rows = append(t.Rows, []any{
			tr.ID, tr.Date, tr.EquipmentType.Label(), tr.Quantity, tr.FromBaseID,
			tr.ToBaseID, tr.AuthorizedBy, tr.Status, tr.Notes,
		})
	}
	return t
}

// Assignments tabulates assignment records.
func Assignments(as []model.Assignment) Table {
	t := Table{
		Sheet:    "Assignments",
		Headings: []string{"ID", "Equipment", "Personnel", "Assigned", "Returned", "Purpose", "Status"},
	}
	for _, a := range as {
		equipment := a.EquipmentName
		if equipment == "" {
			equipment = a.EquipmentID
		}
		personnel := a.PersonnelName
		if personnel == "" {
			personnel = a.PersonnelID
		}
		t.Rows = append(t.Rows, []any{
			a.ID, equipment, personnel, a.DateAssigned, a.DateReturned, a.Purpose, a.Status,
		})
	}
	return t
}

// Expenditures tabulates expenditure records.
func Expenditures(es []model.Expenditure) Table {
	t := Table{
		Sheet:    "Expenditures",
		Headings: []string{"ID", "Date", "Equipment Type", "Quantity", "Base", "Authorized By", "Purpose"},
	}
	for _, e := range es {
		t.Rows = append(t.Rows, []any{
			e.ID, e.Date, e.EquipmentType.Label(), e.Quantity, e.BaseID, e.AuthorizedBy, e.Purpose,
		})
	}
	return t
}

// Summaries tabulates the dashboard stock summaries with a totals row.
func Summaries(ss []model.EquipmentSummary, totals model.Totals) Table {
	t := Table{
		Sheet:    "Summary",
		Headings: []string{"Equipment Type", "Opening", "Purchases", "Transfer In", "Transfer Out", "Assigned", "Expended", "Closing"},
	}
	for _, s := range ss {
		t.Rows = append(t.Rows, []any{
			s.EquipmentType.Label(), s.OpeningBalance, s.Purchases, s.TransferIn,
			s.TransferOut, s.Assigned, s.Expended, s.ClosingBalance,
		})
	}
	t.Rows = append(t.Rows, []any{
		"Total", totals.OpeningBalance, totals.Purchases, totals.TransferIn,
		totals.TransferOut, totals.Assigned, totals.Expended, totals.ClosingBalance,
	})
	return t
}

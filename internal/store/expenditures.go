package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/milasset/internal/model"
)

const expenditureColumns = `id, equipment_type, quantity, base_id, date, authorized_by, purpose, created_at`

func scanExpenditure(row interface{ Scan(...any) error }) (*model.Expenditure, error) {
	e := &model.Expenditure{}
	if err := row.Scan(&e.ID, &e.EquipmentType, &e.Quantity, &e.BaseID, &e.Date,
		&e.AuthorizedBy, &e.Purpose, &e.CreatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

// CreateExpenditure records an expenditure at the front of the expenditure list.
func CreateExpenditure(ctx context.Context, db *sql.DB, e model.Expenditure) (*model.Expenditure, error) {
	id, err := prependRecord(ctx, db, KindExpenditure, func(tx *sql.Tx, id string, position int64) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenditures (id, position, equipment_type, quantity, base_id, date, authorized_by, purpose)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, position, e.EquipmentType, e.Quantity, e.BaseID, e.Date, e.AuthorizedBy, e.Purpose,
		)
		if err != nil {
			return fmt.Errorf("recording expenditure: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetExpenditure(ctx, db, id)
}

// GetExpenditure returns an expenditure by ID.
func GetExpenditure(ctx context.Context, db *sql.DB, id string) (*model.Expenditure, error) {
	e, err := scanExpenditure(db.QueryRowContext(ctx,
		`SELECT `+expenditureColumns+` FROM expenditures WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting expenditure: %w", err)
	}
	return e, nil
}

// ListExpenditures returns expenditures, newest submission first.
func ListExpenditures(ctx context.Context, db *sql.DB) ([]model.Expenditure, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+expenditureColumns+` FROM expenditures ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing expenditures: %w", err)
	}
	defer rows.Close()

	var expenditures []model.Expenditure
	for rows.Next() {
		e, err := scanExpenditure(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expenditure: %w", err)
		}
		expenditures = append(expenditures, *e)
	}
	return expenditures, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/milasset/internal/model"
)

const transferColumns = `id, equipment_type, quantity, from_base_id, to_base_id, date, authorized_by, status, notes, created_at`

func scanTransfer(row interface{ Scan(...any) error }) (*model.Transfer, error) {
	t := &model.Transfer{}
	var notes sql.NullString
	if err := row.Scan(&t.ID, &t.EquipmentType, &t.Quantity, &t.FromBaseID, &t.ToBaseID,
		&t.Date, &t.AuthorizedBy, &t.Status, &notes, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Notes = notes.String
	return t, nil
}

// CreateTransfer records a transfer at the front of the transfer list.
// Stock levels are derived from movement records, so nothing else changes.
func CreateTransfer(ctx context.Context, db *sql.DB, t model.Transfer) (*model.Transfer, error) {
	if t.FromBaseID == t.ToBaseID {
		return nil, fmt.Errorf("cannot transfer to same base")
	}
	if t.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if t.Status == "" {
		t.Status = model.TransferStatusPending
	}

	id, err := prependRecord(ctx, db, KindTransfer, func(tx *sql.Tx, id string, position int64) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transfers (id, position, equipment_type, quantity, from_base_id, to_base_id, date, authorized_by, status, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, position, t.EquipmentType, t.Quantity, t.FromBaseID, t.ToBaseID,
			t.Date, t.AuthorizedBy, t.Status, nullString(t.Notes),
		)
		if err != nil {
			return fmt.Errorf("recording transfer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetTransfer(ctx, db, id)
}

// GetTransfer returns a transfer by ID.
func GetTransfer(ctx context.Context, db *sql.DB, id string) (*model.Transfer, error) {
	t, err := scanTransfer(db.QueryRowContext(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting transfer: %w", err)
	}
	return t, nil
}

// ListTransfers returns transfers, newest submission first.
func ListTransfers(ctx context.Context, db *sql.DB) ([]model.Transfer, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+transferColumns+` FROM transfers ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transfers: %w", err)
	}
	defer rows.Close()

	var transfers []model.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transfer: %w", err)
		}
		transfers = append(transfers, *t)
	}
	return transfers, rows.Err()
}

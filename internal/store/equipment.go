package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/milasset/internal/model"
)

const equipmentColumns = `id, name, type, serial_number, status, base_id, assigned_to`

func scanEquipment(row interface{ Scan(...any) error }) (*model.Equipment, error) {
	e := &model.Equipment{}
	var assignedTo sql.NullString
	if err := row.Scan(&e.ID, &e.Name, &e.Type, &e.SerialNumber, &e.Status, &e.BaseID, &assignedTo); err != nil {
		return nil, err
	}
	e.AssignedTo = assignedTo.String
	return e, nil
}

// ListEquipment returns all equipment, optionally filtered by status.
func ListEquipment(ctx context.Context, db *sql.DB, status string) ([]model.Equipment, error) {
	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT `+equipmentColumns+` FROM equipment WHERE status = ? ORDER BY id`, status,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT `+equipmentColumns+` FROM equipment ORDER BY id`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing equipment: %w", err)
	}
	defer rows.Close()

	var equipment []model.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning equipment: %w", err)
		}
		equipment = append(equipment, *e)
	}
	return equipment, rows.Err()
}

// GetEquipment returns a piece of equipment by ID.
func GetEquipment(ctx context.Context, db *sql.DB, id string) (*model.Equipment, error) {
	e, err := scanEquipment(db.QueryRowContext(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting equipment: %w", err)
	}
	return e, nil
}

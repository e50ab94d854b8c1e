package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/milasset/internal/model"
)

// Equipment and personnel are weak references, hence the outer joins.
const assignmentSelect = `SELECT a.id, a.equipment_id, a.personnel_id, a.date_assigned, a.date_returned,
        a.purpose, a.status, a.created_at,
        e.name AS equipment_name, e.type AS equipment_type, e.base_id AS base_id,
        p.name AS personnel_name
 FROM assignments a
 LEFT JOIN equipment e ON e.id = a.equipment_id
 LEFT JOIN personnel p ON p.id = a.personnel_id`

func scanAssignment(row interface{ Scan(...any) error }) (*model.Assignment, error) {
	a := &model.Assignment{}
	var returned, equipmentName, equipmentType, baseID, personnelName sql.NullString
	if err := row.Scan(&a.ID, &a.EquipmentID, &a.PersonnelID, &a.DateAssigned, &returned,
		&a.Purpose, &a.Status, &a.CreatedAt,
		&equipmentName, &equipmentType, &baseID, &personnelName); err != nil {
		return nil, err
	}
	a.DateReturned = returned.String
	a.EquipmentName = equipmentName.String
	a.EquipmentType = model.EquipmentType(equipmentType.String)
	a.BaseID = baseID.String
	a.PersonnelName = personnelName.String
	return a, nil
}

// CreateAssignment records an assignment at the front of the assignment list.
// The referenced equipment's status is left as it is.
func CreateAssignment(ctx context.Context, db *sql.DB, a model.Assignment) (*model.Assignment, error) {
	if a.Status == "" {
		a.Status = model.AssignmentStatusActive
	}

	id, err := prependRecord(ctx, db, KindAssignment, func(tx *sql.Tx, id string, position int64) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO assignments (id, position, equipment_id, personnel_id, date_assigned, date_returned, purpose, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, position, a.EquipmentID, a.PersonnelID, a.DateAssigned,
			nullString(a.DateReturned), a.Purpose, a.Status,
		)
		if err != nil {
			return fmt.Errorf("recording assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetAssignment(ctx, db, id)
}

// GetAssignment returns an assignment by ID.
func GetAssignment(ctx context.Context, db *sql.DB, id string) (*model.Assignment, error) {
	a, err := scanAssignment(db.QueryRowContext(ctx, assignmentSelect+` WHERE a.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting assignment: %w", err)
	}
	return a, nil
}

// ListAssignments returns assignments, newest submission first.
func ListAssignments(ctx context.Context, db *sql.DB) ([]model.Assignment, error) {
	rows, err := db.QueryContext(ctx, assignmentSelect+` ORDER BY a.position`)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

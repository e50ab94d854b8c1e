package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/milasset/internal/model"
)

// ListBases returns all bases.
func ListBases(ctx context.Context, db *sql.DB) ([]model.Base, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, location, commander_id FROM bases ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing bases: %w", err)
	}
	defer rows.Close()

	var bases []model.Base
	for rows.Next() {
		var b model.Base
		var commander sql.NullString
		if err := rows.Scan(&b.ID, &b.Name, &b.Location, &commander); err != nil {
			return nil, fmt.Errorf("scanning base: %w", err)
		}
		b.CommanderID = commander.String
		bases = append(bases, b)
	}
	return bases, rows.Err()
}

// GetBase returns a base by ID.
func GetBase(ctx context.Context, db *sql.DB, id string) (*model.Base, error) {
	b := &model.Base{}
	var commander sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, location, commander_id FROM bases WHERE id = ?`, id,
	).Scan(&b.ID, &b.Name, &b.Location, &commander)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting base: %w", err)
	}
	b.CommanderID = commander.String
	return b, nil
}

// ListPersonnel returns everyone equipment can be assigned to.
func ListPersonnel(ctx context.Context, db *sql.DB) ([]model.Personnel, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM personnel ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing personnel: %w", err)
	}
	defer rows.Close()

	var people []model.Personnel
	for rows.Next() {
		var p model.Personnel
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning personnel: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// GetPersonnel returns a service member by ID.
func GetPersonnel(ctx context.Context, db *sql.DB, id string) (*model.Personnel, error) {
	p := &model.Personnel{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name FROM personnel WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting personnel: %w", err)
	}
	return p, nil
}

// ListOpeningStock returns the opening stock of every base.
func ListOpeningStock(ctx context.Context, db *sql.DB) ([]model.OpeningStock, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT base_id, equipment_type, quantity FROM opening_stock ORDER BY base_id, equipment_type`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing opening stock: %w", err)
	}
	defer rows.Close()

	var stock []model.OpeningStock
	for rows.Next() {
		var s model.OpeningStock
		if err := rows.Scan(&s.BaseID, &s.EquipmentType, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scanning opening stock: %w", err)
		}
		stock = append(stock, s)
	}
	return stock, rows.Err()
}

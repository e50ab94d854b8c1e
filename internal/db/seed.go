package db

import (
	"database/sql"
	"fmt"
)

type seedRow struct {
	query string
	args  []any
}

// seedRows is the demo data set every new store starts from.
var seedRows = []seedRow{
	// Users. Demo accounts carry no password hash and accept any password.
	{`INSERT INTO users (id, name, email, role, base_id) VALUES (?, ?, ?, ?, ?)`,
		[]any{"1", "General Smith", "general.smith@military.gov", "admin", nil}},
	{`INSERT INTO users (id, name, email, role, base_id) VALUES (?, ?, ?, ?, ?)`,
		[]any{"2", "Colonel Johnson", "colonel.johnson@military.gov", "baseCommander", "base1"}},
	{`INSERT INTO users (id, name, email, role, base_id) VALUES (?, ?, ?, ?, ?)`,
		[]any{"3", "Major Davis", "major.davis@military.gov", "baseCommander", "base2"}},
	{`INSERT INTO users (id, name, email, role, base_id) VALUES (?, ?, ?, ?, ?)`,
		[]any{"4", "Captain Wilson", "captain.wilson@military.gov", "logisticsOfficer", "base1"}},
	{`INSERT INTO users (id, name, email, role, base_id) VALUES (?, ?, ?, ?, ?)`,
		[]any{"5", "Lieutenant Martinez", "lt.martinez@military.gov", "logisticsOfficer", "base2"}},

	// Bases.
	{`INSERT INTO bases (id, name, location, commander_id) VALUES (?, ?, ?, ?)`,
		[]any{"base1", "Fort Alpha", "Northern Region", "2"}},
	{`INSERT INTO bases (id, name, location, commander_id) VALUES (?, ?, ?, ?)`,
		[]any{"base2", "Base Bravo", "Southern Region", "3"}},
	{`INSERT INTO bases (id, name, location, commander_id) VALUES (?, ?, ?, ?)`,
		[]any{"base3", "Camp Charlie", "Eastern Region", nil}},

	// Personnel.
	{`INSERT INTO personnel (id, name) VALUES (?, ?)`, []any{"p001", "Sgt. John Wilson"}},
	{`INSERT INTO personnel (id, name) VALUES (?, ?)`, []any{"p002", "Lt. Sarah Johnson"}},
	{`INSERT INTO personnel (id, name) VALUES (?, ?)`, []any{"p003", "Pvt. Michael Davis"}},
	{`INSERT INTO personnel (id, name) VALUES (?, ?)`, []any{"p004", "Cpl. Robert Smith"}},
	{`INSERT INTO personnel (id, name) VALUES (?, ?)`, []any{"p005", "Capt. Jennifer Brown"}},

	// Equipment.
	{`INSERT INTO equipment (id, name, type, serial_number, status, base_id, assigned_to) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		[]any{"eq1", "M4 Carbine", "weapon", "W-001-2023", "available", "base1", nil}},
	{`INSERT INTO equipment (id, name, type, serial_number, status, base_id, assigned_to) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		[]any{"eq2", "Humvee", "vehicle", "V-001-2023", "assigned", "base1", "unit1"}},
	{`INSERT INTO equipment (id, name, type, serial_number, status, base_id, assigned_to) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		[]any{"eq3", "9mm Ammunition", "ammunition", "A-001-2023", "available", "base2", nil}},

	// Opening stock. Network totals: weapon 100, vehicle 20, ammunition
	// 20000, communication 50, medical 200.
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base1", "weapon", 60}},
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base2", "weapon", 40}},
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base1", "vehicle", 12}},
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base2", "vehicle", 8}},
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base1", "ammunition", 12000}},
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base2", "ammunition", 8000}},
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base1", "communication", 30}},
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base2", "communication", 15}},
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base3", "communication", 5}},
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base1", "medical", 100}},
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base2", "medical", 60}},
	{`INSERT INTO opening_stock (base_id, equipment_type, quantity) VALUES (?, ?, ?)`, []any{"base3", "medical", 40}},

	// Purchases.
	{`INSERT INTO purchases (id, position, equipment_type, quantity, base_id, date, purchase_order, supplier, cost) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{"pur1", 1, "weapon", 50, "base1", "2023-08-15", "PO-2023-001", "Defense Systems Inc.", "75000"}},
	{`INSERT INTO purchases (id, position, equipment_type, quantity, base_id, date, purchase_order, supplier, cost) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{"pur2", 2, "vehicle", 5, "base2", "2023-09-01", "PO-2023-002", "Military Motors Corp.", "350000"}},
	{`INSERT INTO purchases (id, position, equipment_type, quantity, base_id, date, purchase_order, supplier, cost) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{"pur3", 3, "ammunition", 10000, "base1", "2023-09-15", "PO-2023-003", "Ammo Suppliers Ltd.", "25000"}},

	// Transfers.
	{`INSERT INTO transfers (id, position, equipment_type, quantity, from_base_id, to_base_id, date, authorized_by, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{"trans1", 1, "weapon", 20, "base1", "base2", "2023-10-05", "2", "completed"}},
	{`INSERT INTO transfers (id, position, equipment_type, quantity, from_base_id, to_base_id, date, authorized_by, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{"trans2", 2, "ammunition", 5000, "base2", "base1", "2023-10-12", "3", "in-transit"}},
	{`INSERT INTO transfers (id, position, equipment_type, quantity, from_base_id, to_base_id, date, authorized_by, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{"trans3", 3, "vehicle", 2, "base1", "base3", "2023-10-20", "2", "pending"}},

	// Assignments.
	{`INSERT INTO assignments (id, position, equipment_id, personnel_id, date_assigned, date_returned, purpose, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{"asn1", 1, "eq1", "p001", "2023-09-10", nil, "Border patrol", "active"}},
	{`INSERT INTO assignments (id, position, equipment_id, personnel_id, date_assigned, date_returned, purpose, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{"asn2", 2, "eq2", "p002", "2023-09-15", "2023-10-15", "Training exercise", "returned"}},

	// Expenditures.
	{`INSERT INTO expenditures (id, position, equipment_type, quantity, base_id, date, authorized_by, purpose) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{"exp1", 1, "ammunition", 2000, "base1", "2023-10-01", "2", "Training exercise"}},
	{`INSERT INTO expenditures (id, position, equipment_type, quantity, base_id, date, authorized_by, purpose) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{"exp2", 2, "ammunition", 1500, "base2", "2023-10-10", "3", "Field operation"}},

	// Identifier counters start at the seeded record counts.
	{`INSERT INTO sequences (kind, value) VALUES (?, ?)`, []any{"purchase", 3}},
	{`INSERT INTO sequences (kind, value) VALUES (?, ?)`, []any{"transfer", 3}},
	{`INSERT INTO sequences (kind, value) VALUES (?, ?)`, []any{"assignment", 2}},
	{`INSERT INTO sequences (kind, value) VALUES (?, ?)`, []any{"expenditure", 2}},
}

// Seed loads the demo data set into an empty store.
func Seed(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for i, row := range seedRows {
		if _, err := tx.Exec(row.query, row.args...); err != nil {
			return fmt.Errorf("seeding row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}

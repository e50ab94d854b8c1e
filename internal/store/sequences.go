package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Record kinds and their identifier prefixes.
const (
	KindPurchase    = "purchase"
	KindTransfer    = "transfer"
	KindAssignment  = "assignment"
	KindExpenditure = "expenditure"
)

var kindPrefix = map[string]string{
	KindPurchase:    "pur",
	KindTransfer:    "trans",
	KindAssignment:  "asn",
	KindExpenditure: "exp",
}

var kindTable = map[string]string{
	KindPurchase:    "purchases",
	KindTransfer:    "transfers",
	KindAssignment:  "assignments",
	KindExpenditure: "expenditures",
}

// prependRecord allocates the next identifier for kind and runs insert with it
// and a position ahead of every existing record, in one transaction.
func prependRecord(ctx context.Context, db *sql.DB, kind string, insert func(tx *sql.Tx, id string, position int64) error) (string, error) {
	prefix, ok := kindPrefix[kind]
	if !ok {
		return "", fmt.Errorf("unknown record kind %q", kind)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// The counter only ever grows, so identifiers stay unique even if a
	// record is removed later.
	var n int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO sequences (kind, value) VALUES (?, 1)
		 ON CONFLICT (kind) DO UPDATE SET value = value + 1
		 RETURNING value`, kind,
	).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("allocating %s id: %w", kind, err)
	}

	var position int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MIN(position), 1) - 1 FROM `+kindTable[kind],
	).Scan(&position)
	if err != nil {
		return "", fmt.Errorf("finding %s position: %w", kind, err)
	}

	id := fmt.Sprintf("%s%d", prefix, n)
	if err := insert(tx, id, position); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing %s: %w", kind, err)
	}
	return id, nil
}

// nullString maps "" to NULL for optional text columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

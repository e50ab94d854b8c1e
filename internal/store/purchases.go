package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/milasset/internal/model"
)

const purchaseColumns = `id, equipment_type, quantity, base_id, date, purchase_order, supplier, cost, notes, created_at`

func scanPurchase(row interface{ Scan(...any) error }) (*model.Purchase, error) {
	p := &model.Purchase{}
	var notes sql.NullString
	if err := row.Scan(&p.ID, &p.EquipmentType, &p.Quantity, &p.BaseID, &p.Date,
		&p.PurchaseOrder, &p.Supplier, &p.Cost, &notes, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Notes = notes.String
	return p, nil
}

// CreatePurchase records a purchase at the front of the purchase list.
// The ID field of p is ignored and allocated by the store.
func CreatePurchase(ctx context.Context, db *sql.DB, p model.Purchase) (*model.Purchase, error) {
	id, err := prependRecord(ctx, db, KindPurchase, func(tx *sql.Tx, id string, position int64) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO purchases (id, position, equipment_type, quantity, base_id, date, purchase_order, supplier, cost, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, position, p.EquipmentType, p.Quantity, p.BaseID, p.Date,
			p.PurchaseOrder, p.Supplier, p.Cost.String(), nullString(p.Notes),
		)
		if err != nil {
			return fmt.Errorf("recording purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetPurchase(ctx, db, id)
}

// GetPurchase returns a purchase by ID.
func GetPurchase(ctx context.Context, db *sql.DB, id string) (*model.Purchase, error) {
	p, err := scanPurchase(db.QueryRowContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting purchase: %w", err)
	}
	return p, nil
}

// ListPurchases returns purchases, newest submission first.
func ListPurchases(ctx context.Context, db *sql.DB) ([]model.Purchase, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchases ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}
		purchases = append(purchases, *p)
	}
	return purchases, rows.Err()
}

package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. References between collections are
// not foreign keys: a base's commander or a record's base may
// point at nothing.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE COLLATE NOCASE,
    role          TEXT NOT NULL CHECK (role IN ('admin', 'baseCommander', 'logisticsOfficer')),
    base_id       TEXT,
    password_hash TEXT NOT NULL DEFAULT '',
    avatar        BLOB,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS bases (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    location     TEXT NOT NULL,
    commander_id TEXT
);

CREATE TABLE IF NOT EXISTS personnel (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS equipment (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    type          TEXT NOT NULL CHECK (type IN ('weapon', 'vehicle', 'ammunition', 'communication', 'medical')),
    serial_number TEXT NOT NULL,
    status        TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available', 'assigned', 'maintenance', 'expended')),
    base_id       TEXT NOT NULL,
    assigned_to   TEXT
);

CREATE TABLE IF NOT EXISTS opening_stock (
    base_id        TEXT NOT NULL,
    equipment_type TEXT NOT NULL,
    quantity       INTEGER NOT NULL CHECK (quantity >= 0),
    PRIMARY KEY (base_id, equipment_type)
);

CREATE TABLE IF NOT EXISTS purchases (
    id             TEXT PRIMARY KEY,
    position       INTEGER NOT NULL,
    equipment_type TEXT NOT NULL,
    quantity       INTEGER NOT NULL CHECK (quantity > 0),
    base_id        TEXT NOT NULL,
    date           TEXT NOT NULL,
    purchase_order TEXT NOT NULL,
    supplier       TEXT NOT NULL,
    cost           TEXT NOT NULL,
    notes          TEXT,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS transfers (
    id             TEXT PRIMARY KEY,
    position       INTEGER NOT NULL,
    equipment_type TEXT NOT NULL,
    quantity       INTEGER NOT NULL CHECK (quantity > 0),
    from_base_id   TEXT NOT NULL,
    to_base_id     TEXT NOT NULL,
    date           TEXT NOT NULL,
    authorized_by  TEXT NOT NULL,
    status         TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'in-transit', 'completed', 'rejected')),
    notes          TEXT,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS assignments (
    id            TEXT PRIMARY KEY,
    position      INTEGER NOT NULL,
    equipment_id  TEXT NOT NULL,
    personnel_id  TEXT NOT NULL,
    date_assigned TEXT NOT NULL,
    date_returned TEXT,
    purpose       TEXT NOT NULL,
    status        TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'returned', 'lost')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS expenditures (
    id             TEXT PRIMARY KEY,
    position       INTEGER NOT NULL,
    equipment_type TEXT NOT NULL,
    quantity       INTEGER NOT NULL CHECK (quantity > 0),
    base_id        TEXT NOT NULL,
    date           TEXT NOT NULL,
    authorized_by  TEXT NOT NULL,
    purpose        TEXT NOT NULL,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sequences (
    kind  TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

package sqlstore

import (
	"context"
	"database/sql"
)

// sqliteSchema sets up the ledger tables on SQLite.
// seq keeps ledger (insertion) order, which determines split entry order.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS expenses (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    amount TEXT NOT NULL,
    payer TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    subcategory TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    occurred_at INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS advances (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    from_member TEXT NOT NULL,
    to_member TEXT NOT NULL,
    amount TEXT NOT NULL,
    note TEXT,
    occurred_at INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settled_records (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    payer TEXT NOT NULL,
    payee TEXT NOT NULL,
    owed TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    occurred_at INTEGER NOT NULL,
    settled_by TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    UNIQUE (payer, payee, occurred_at)
);

CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_occurred_at ON expenses(occurred_at);
CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category);
`

// postgresSchema is the same layout with Postgres types.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS expenses (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    amount NUMERIC(14, 2) NOT NULL,
    payer TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    subcategory TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    occurred_at BIGINT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS advances (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    from_member TEXT NOT NULL,
    to_member TEXT NOT NULL,
    amount NUMERIC(14, 2) NOT NULL,
    note TEXT,
    occurred_at BIGINT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS settled_records (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    payer TEXT NOT NULL,
    payee TEXT NOT NULL,
    owed NUMERIC(14, 2) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    occurred_at BIGINT NOT NULL,
    settled_by TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    UNIQUE (payer, payee, occurred_at)
);

CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_occurred_at ON expenses(occurred_at);
CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB, schema string) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

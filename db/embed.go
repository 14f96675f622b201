// Package db provides embedded database schemas for the SQL-backed stores.
package db

import _ "embed"

// PostgresSchema contains the DDL for the PostgreSQL key-value and receipts
// tables.
//
//go:embed migrations/postgres/001_init.sql
var PostgresSchema string

// SQLiteSchema contains the DDL for the SQLite key-value table.
//
//go:embed migrations/sqlite/001_kv.sql
var SQLiteSchema string

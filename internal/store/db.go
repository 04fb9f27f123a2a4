package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS cards (
    id INTEGER PRIMARY KEY,
    term TEXT NOT NULL,
    reading TEXT NOT NULL,
    romanized TEXT NOT NULL DEFAULT '',
    translation_primary TEXT NOT NULL,
    translation_secondary TEXT NOT NULL DEFAULT '',
    tier TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_cards_tier ON cards(tier);

CREATE TABLE IF NOT EXISTS quiz_results (
    quiz_id TEXT PRIMARY KEY,
    tier TEXT NOT NULL,
    mode TEXT NOT NULL,
    total INTEGER NOT NULL,
    correct INTEGER NOT NULL,
    percentage INTEGER NOT NULL,
    ended_early BOOLEAN NOT NULL DEFAULT FALSE,
    finished_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS cards (
    id BIGINT PRIMARY KEY,
    term TEXT NOT NULL,
    reading TEXT NOT NULL,
    romanized TEXT NOT NULL DEFAULT '',
    translation_primary TEXT NOT NULL,
    translation_secondary TEXT NOT NULL DEFAULT '',
    tier TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_cards_tier ON cards(tier);

CREATE TABLE IF NOT EXISTS quiz_results (
    quiz_id TEXT PRIMARY KEY,
    tier TEXT NOT NULL,
    mode TEXT NOT NULL,
    total INTEGER NOT NULL,
    correct INTEGER NOT NULL,
    percentage INTEGER NOT NULL,
    ended_early BOOLEAN NOT NULL DEFAULT FALSE,
    finished_at BIGINT NOT NULL
);
`

// Open opens a DB for the driver and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*SQLStore, error) {
	var drvName, schema string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		schema = schemaSQLite
		if dsn == "" {
			dsn = "flashcards.db"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		schema = schemaPostgres
		if dsn == "" {
			dsn = "postgres://localhost:5432/flashcards?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverSQLite:
		// One writer at a time; the single connection is never recycled so
		// the pragmas below stay in effect.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragmas: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLStore{db: db, driver: driver}, nil
}

// NewSQLite opens (or creates) a SQLite database file.
func NewSQLite(dbPath string) (*SQLStore, error) {
	return Open(context.Background(), DriverSQLite, dbPath)
}

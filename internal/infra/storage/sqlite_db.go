package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// InitSQLite opens the local SQLite database and brings the schema up to
// the current version. Migrations are additive and numbered; a database
// from an older release is upgraded in place.
func InitSQLite(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// migrations are applied in order; each entry runs at most once per
// database. Never edit a shipped entry, append a new one.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS collection (
		card_id TEXT PRIMARY KEY,
		owned_standard INTEGER NOT NULL DEFAULT 0,
		owned_golden INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS packs (
		id TEXT PRIMARY KEY,
		set_id TEXT NOT NULL,
		opened_at DATETIME NOT NULL,
		card_ids_json TEXT NOT NULL,
		rarities_json TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_packs_set_id ON packs(set_id);`,
	`CREATE TABLE IF NOT EXISTS pity_timers (
		set_id TEXT PRIMARY KEY,
		packs_since_epic INTEGER NOT NULL DEFAULT 0,
		packs_since_legendary INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS preferences (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		document TEXT NOT NULL,
		last_updated DATETIME NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS game_events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		event_type TEXT NOT NULL,
		payload TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_game_events_type ON game_events(event_type);`,
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);`); err != nil {
		return err
	}

	var current int
	row := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`)
	if err := row.Scan(&current); err != nil {
		return err
	}

	for i := current; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			return err
		}
	}
	return nil
}

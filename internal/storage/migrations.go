package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Bill classification history",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS bills (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					text TEXT NOT NULL DEFAULT '',
					company_name TEXT NOT NULL DEFAULT '',
					description TEXT NOT NULL DEFAULT '',
					category TEXT NOT NULL,
					subcategory TEXT NOT NULL DEFAULT '',
					confidence REAL NOT NULL DEFAULT 0,
					matched_keywords TEXT NOT NULL DEFAULT '[]',
					tags TEXT NOT NULL DEFAULT '[]',
					classified_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX IF NOT EXISTS idx_bills_category ON bills(category)`,
				`CREATE INDEX IF NOT EXISTS idx_bills_classified_at ON bills(classified_at)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Place ranking snapshots",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS place_snapshots (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					query TEXT NOT NULL DEFAULT '',
					ref_lat REAL NOT NULL,
					ref_lon REAL NOT NULL,
					scored_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS scored_places (
					snapshot_id INTEGER NOT NULL,
					position INTEGER NOT NULL,
					place_id TEXT NOT NULL DEFAULT '',
					name TEXT NOT NULL DEFAULT '',
					type TEXT NOT NULL DEFAULT '',
					rating REAL,
					review_count INTEGER NOT NULL DEFAULT 0,
					price_level INTEGER,
					open_now INTEGER,
					lat REAL NOT NULL,
					lon REAL NOT NULL,
					reviews TEXT NOT NULL DEFAULT '[]',
					distance_km REAL NOT NULL,
					price_score INTEGER NOT NULL,
					quality_score INTEGER NOT NULL,
					service_score INTEGER NOT NULL,
					PRIMARY KEY (snapshot_id, position),
					FOREIGN KEY (snapshot_id) REFERENCES place_snapshots(id) ON DELETE CASCADE
				)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Migrate runs all database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion reports the database's current schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return s.schemaVersion(ctx)
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

package storage

import (
	"database/sql"
	"fmt"
)

// Migration represents a database schema migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up:      migration001InitialSchema,
	},
}

// runMigrations executes all pending migrations
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version, migration.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func (s *Storage) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func (s *Storage) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func migration001InitialSchema(tx *sql.Tx) error {
	schema := `
	CREATE TABLE runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		transactions INTEGER NOT NULL DEFAULT 0,
		matched INTEGER NOT NULL DEFAULT 0,
		unmatched INTEGER NOT NULL DEFAULT 0,
		system_noise INTEGER NOT NULL DEFAULT 0,
		match_rate REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE roster_entries (
		run_id TEXT NOT NULL REFERENCES runs(id),
		entry_id TEXT NOT NULL,
		name TEXT NOT NULL,
		phone TEXT,
		email TEXT,
		company_name TEXT,
		join_date TEXT,
		kind TEXT NOT NULL,
		expected_amount REAL NOT NULL DEFAULT 0,
		merged_count INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (run_id, entry_id)
	);

	CREATE TABLE match_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		source TEXT NOT NULL,
		date TEXT NOT NULL,
		amount REAL NOT NULL,
		depositor_raw TEXT,
		depositor_name TEXT,
		status TEXT NOT NULL,
		entry_id TEXT,
		entry_name TEXT,
		method TEXT,
		score REAL NOT NULL DEFAULT 0,
		system_noise INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX idx_match_results_run ON match_results(run_id);
	CREATE INDEX idx_match_results_status ON match_results(run_id, status);

	CREATE TABLE source_stats (
		run_id TEXT NOT NULL REFERENCES runs(id),
		source TEXT NOT NULL,
		rows INTEGER NOT NULL DEFAULT 0,
		loaded INTEGER NOT NULL DEFAULT 0,
		skipped_json TEXT,
		PRIMARY KEY (run_id, source)
	);
	`
	_, err := tx.Exec(schema)
	return err
}

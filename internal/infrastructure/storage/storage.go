// Package storage persists reconciliation runs to SQLite so the results
// API can serve them after the batch has finished.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for reconciliation runs.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRun inserts or replaces a run record.
func (s *Storage) SaveRun(run *Run) error {
	_, err := s.db.Exec(`
	INSERT OR REPLACE INTO runs
	(id, started_at, finished_at, transactions, matched, unmatched, system_noise, match_rate)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt,
		run.FinishedAt,
		run.Transactions,
		run.Matched,
		run.Unmatched,
		run.SystemNoise,
		run.MatchRate,
	)
	return err
}

// SaveRoster bulk-inserts the roster entries of a run.
func (s *Storage) SaveRoster(records []RosterRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO roster_entries
	(run_id, entry_id, name, phone, email, company_name, join_date, kind, expected_amount, merged_count)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.RunID, r.EntryID, r.Name, r.Phone, r.Email,
			r.CompanyName, r.JoinDate, r.Kind, r.ExpectedAmount, r.MergedCount); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SaveResults bulk-inserts the match results of a run.
func (s *Storage) SaveResults(records []ResultRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
	INSERT INTO match_results
	(run_id, source, date, amount, depositor_raw, depositor_name, status, entry_id, entry_name, method, score, system_noise)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.RunID, r.Source, r.Date, r.Amount, r.DepositorRaw,
			r.DepositorName, r.Status, r.EntryID, r.EntryName, r.Method, r.Score,
			r.SystemNoise); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SaveSourceRecords stores the per-source load outcomes of a run.
func (s *Storage) SaveSourceRecords(records []SourceRecord) error {
	for _, r := range records {
		skippedJSON, _ := json.Marshal(r.Skipped)
		if _, err := s.db.Exec(`
		INSERT OR REPLACE INTO source_stats (run_id, source, rows, loaded, skipped_json)
		VALUES (?, ?, ?, ?, ?)`,
			r.RunID, r.Source, r.Rows, r.Loaded, string(skippedJSON)); err != nil {
			return err
		}
	}
	return nil
}

// ListRuns returns all runs, most recent first.
func (s *Storage) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(`
	SELECT id, started_at, finished_at, transactions, matched, unmatched, system_noise, match_rate
	FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Transactions,
			&r.Matched, &r.Unmatched, &r.SystemNoise, &r.MatchRate); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun retrieves one run by id.
func (s *Storage) GetRun(id string) (*Run, error) {
	var r Run
	err := s.db.QueryRow(`
	SELECT id, started_at, finished_at, transactions, matched, unmatched, system_noise, match_rate
	FROM runs WHERE id = ?`, id).Scan(&r.ID, &r.StartedAt, &r.FinishedAt,
		&r.Transactions, &r.Matched, &r.Unmatched, &r.SystemNoise, &r.MatchRate)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRoster returns the roster entries of a run in entry-id order.
func (s *Storage) ListRoster(runID string) ([]RosterRecord, error) {
	rows, err := s.db.Query(`
	SELECT run_id, entry_id, name, phone, email, company_name, join_date, kind, expected_amount, merged_count
	FROM roster_entries WHERE run_id = ? ORDER BY entry_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RosterRecord
	for rows.Next() {
		var r RosterRecord
		var phone, email, company, joinDate sql.NullString
		if err := rows.Scan(&r.RunID, &r.EntryID, &r.Name, &phone, &email,
			&company, &joinDate, &r.Kind, &r.ExpectedAmount, &r.MergedCount); err != nil {
			return nil, err
		}
		r.Phone = phone.String
		r.Email = email.String
		r.CompanyName = company.String
		r.JoinDate = joinDate.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListResults returns the match results of a run in insertion order,
// optionally filtered by status.
func (s *Storage) ListResults(runID, status string) ([]ResultRecord, error) {
	query := `
	SELECT id, run_id, source, date, amount, depositor_raw, depositor_name,
	       status, entry_id, entry_name, method, score, system_noise
	FROM match_results WHERE run_id = ?`
	args := []any{runID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ResultRecord
	for rows.Next() {
		var r ResultRecord
		var raw, name, entryID, entryName, method sql.NullString
		if err := rows.Scan(&r.ID, &r.RunID, &r.Source, &r.Date, &r.Amount,
			&raw, &name, &r.Status, &entryID, &entryName, &method,
			&r.Score, &r.SystemNoise); err != nil {
			return nil, err
		}
		r.DepositorRaw = raw.String
		r.DepositorName = name.String
		r.EntryID = entryID.String
		r.EntryName = entryName.String
		r.Method = method.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetStats assembles the run summary the API serves.
func (s *Storage) GetStats(runID string) (*Stats, error) {
	run, err := s.GetRun(runID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Run: *run, ByMethod: make(map[string]int)}

	rows, err := s.db.Query(`
	SELECT method, COUNT(*) FROM match_results
	WHERE run_id = ? AND status = 'matched' GROUP BY method`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var method string
		var count int
		if err := rows.Scan(&method, &count); err != nil {
			return nil, err
		}
		stats.ByMethod[method] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	srcRows, err := s.db.Query(`
	SELECT run_id, source, rows, loaded, skipped_json
	FROM source_stats WHERE run_id = ? ORDER BY source`, runID)
	if err != nil {
		return nil, err
	}
	defer srcRows.Close()

	for srcRows.Next() {
		var r SourceRecord
		var skippedJSON sql.NullString
		if err := srcRows.Scan(&r.RunID, &r.Source, &r.Rows, &r.Loaded, &skippedJSON); err != nil {
			return nil, err
		}
		if skippedJSON.Valid && skippedJSON.String != "" {
			_ = json.Unmarshal([]byte(skippedJSON.String), &r.Skipped)
		}
		stats.Sources = append(stats.Sources, r)
	}
	return stats, srcRows.Err()
}

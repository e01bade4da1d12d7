package storage

import "time"

// Run is one persisted reconciliation run.
type Run struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Transactions int       `json:"transactions"`
	Matched      int       `json:"matched"`
	Unmatched    int       `json:"unmatched"`
	SystemNoise  int       `json:"system_noise"`
	MatchRate    float64   `json:"match_rate"`
}

// RosterRecord is a persisted roster entry, scoped to a run.
type RosterRecord struct {
	RunID          string  `json:"run_id"`
	EntryID        string  `json:"entry_id"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	CompanyName    string  `json:"company_name"`
	JoinDate       string  `json:"join_date"`
	Kind           string  `json:"kind"`
	ExpectedAmount float64 `json:"expected_amount"`
	MergedCount    int     `json:"merged_count"`
}

// ResultRecord is a persisted match result, scoped to a run.
type ResultRecord struct {
	ID            int64   `json:"id"`
	RunID         string  `json:"run_id"`
	Source        string  `json:"source"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	DepositorRaw  string  `json:"depositor_raw"`
	DepositorName string  `json:"depositor_name"`
	Status        string  `json:"status"`
	EntryID       string  `json:"entry_id"`
	EntryName     string  `json:"entry_name"`
	Method        string  `json:"method"`
	Score         float64 `json:"score"`
	SystemNoise   bool    `json:"system_noise"`
}

// SourceRecord is the per-source load outcome of a run.
type SourceRecord struct {
	RunID   string         `json:"run_id"`
	Source  string         `json:"source"`
	Rows    int            `json:"rows"`
	Loaded  int            `json:"loaded"`
	Skipped map[string]int `json:"skipped"`
}

// Stats summarizes a run for the API.
type Stats struct {
	Run      Run            `json:"run"`
	ByMethod map[string]int `json:"by_method"`
	Sources  []SourceRecord `json:"sources"`
}

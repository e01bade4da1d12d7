package storage

// Repository is the persistence surface the pipeline and the API depend
// on. Implemented by Storage (sqlite) and by the test mock.
type Repository interface {
	SaveRun(run *Run) error
	SaveRoster(records []RosterRecord) error
	SaveResults(records []ResultRecord) error
	SaveSourceRecords(records []SourceRecord) error

	ListRuns() ([]Run, error)
	GetRun(id string) (*Run, error)
	ListRoster(runID string) ([]RosterRecord, error)
	ListResults(runID, status string) ([]ResultRecord, error)
	GetStats(runID string) (*Stats, error)

	Close() error
}

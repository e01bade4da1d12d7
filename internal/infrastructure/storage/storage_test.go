package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRun(id string, startedAt time.Time) *Run {
	return &Run{
		ID:           id,
		StartedAt:    startedAt,
		FinishedAt:   startedAt.Add(2 * time.Second),
		Transactions: 10,
		Matched:      8,
		Unmatched:    1,
		SystemNoise:  1,
		MatchRate:    0.8,
	}
}

func TestStorage_SaveAndGetRun(t *testing.T) {
	s := newTestStorage(t)
	started := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveRun(testRun("run-1", started)))

	got, err := s.GetRun("run-1")

	require.NoError(t, err)
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, 10, got.Transactions)
	assert.Equal(t, 0.8, got.MatchRate)
	assert.True(t, got.StartedAt.Equal(started))
}

func TestStorage_GetRunNotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetRun("missing")

	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStorage_ListRunsMostRecentFirst(t *testing.T) {
	s := newTestStorage(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveRun(testRun("run-old", base)))
	require.NoError(t, s.SaveRun(testRun("run-new", base.Add(time.Hour))))

	runs, err := s.ListRuns()

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].ID)
	assert.Equal(t, "run-old", runs[1].ID)
}

func TestStorage_RosterRoundtrip(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.SaveRun(testRun("run-1", time.Now().UTC())))

	records := []RosterRecord{
		{RunID: "run-1", EntryID: "M0002", Name: "이영희", Kind: "supporter", ExpectedAmount: 30000},
		{RunID: "run-1", EntryID: "M0001", Name: "김철수", Phone: "010-1234-5678",
			Email: "kim@example.com", CompanyName: "(주)나와", JoinDate: "2024-01-15",
			Kind: "both", MergedCount: 2},
	}
	require.NoError(t, s.SaveRoster(records))

	got, err := s.ListRoster("run-1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	// Entry-id order, not insertion order.
	assert.Equal(t, "M0001", got[0].EntryID)
	assert.Equal(t, "010-1234-5678", got[0].Phone)
	assert.Equal(t, "(주)나와", got[0].CompanyName)
	assert.Equal(t, 2, got[0].MergedCount)
	assert.Equal(t, "M0002", got[1].EntryID)
	assert.Equal(t, 30000.0, got[1].ExpectedAmount)
}

func TestStorage_ResultsRoundtripAndStatusFilter(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.SaveRun(testRun("run-1", time.Now().UTC())))

	records := []ResultRecord{
		{RunID: "run-1", Source: "sh", Date: "2024-03-01", Amount: 30000,
			DepositorRaw: "765-김철수", DepositorName: "김철수",
			Status: "matched", EntryID: "M0001", EntryName: "김철수",
			Method: "exact_name", Score: 1.0},
		{RunID: "run-1", Source: "sh", Date: "2024-03-02", Amount: 12,
			DepositorRaw: "결산이자", Status: "unmatched", SystemNoise: true},
	}
	require.NoError(t, s.SaveResults(records))

	all, err := s.ListResults("run-1", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "김철수", all[0].DepositorName)
	assert.True(t, all[1].SystemNoise)

	matched, err := s.ListResults("run-1", "matched")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "M0001", matched[0].EntryID)
}

func TestStorage_GetStats(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.SaveRun(testRun("run-1", time.Now().UTC())))
	require.NoError(t, s.SaveResults([]ResultRecord{
		{RunID: "run-1", Source: "sh", Date: "2024-03-01", Amount: 30000,
			Status: "matched", EntryID: "M0001", Method: "exact_name", Score: 1.0},
		{RunID: "run-1", Source: "nh", Date: "2024-03-02", Amount: 50000,
			Status: "matched", EntryID: "M0002", Method: "amount_based", Score: 0.7},
		{RunID: "run-1", Source: "sh", Date: "2024-03-03", Amount: 100,
			Status: "unmatched"},
	}))
	require.NoError(t, s.SaveSourceRecords([]SourceRecord{
		{RunID: "run-1", Source: "sh", Rows: 5, Loaded: 4,
			Skipped: map[string]int{"noise": 1}},
	}))

	stats, err := s.GetStats("run-1")

	require.NoError(t, err)
	assert.Equal(t, "run-1", stats.Run.ID)
	assert.Equal(t, map[string]int{"exact_name": 1, "amount_based": 1}, stats.ByMethod)
	require.Len(t, stats.Sources, 1)
	assert.Equal(t, 4, stats.Sources[0].Loaded)
	assert.Equal(t, map[string]int{"noise": 1}, stats.Sources[0].Skipped)
}

func TestStorage_SaveRunIsIdempotent(t *testing.T) {
	s := newTestStorage(t)
	started := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	run := testRun("run-1", started)
	require.NoError(t, s.SaveRun(run))

	run.Matched = 9
	require.NoError(t, s.SaveRun(run))

	runs, err := s.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 9, runs[0].Matched)
}

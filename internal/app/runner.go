// Package app orchestrates one reconciliation run: read the exports, build
// the roster, load each bank source, match, aggregate, and persist.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pledgekit/reconciler/internal/domain/bank"
	"github.com/pledgekit/reconciler/internal/domain/matcher"
	"github.com/pledgekit/reconciler/internal/domain/report"
	"github.com/pledgekit/reconciler/internal/domain/roster"
	"github.com/pledgekit/reconciler/internal/infrastructure/config"
	"github.com/pledgekit/reconciler/internal/infrastructure/storage"
	"github.com/pledgekit/reconciler/internal/reader"
)

// Runner executes reconciliation runs. With a nil repository the run is a
// dry run: nothing is persisted.
type Runner struct {
	cfg    *config.Config
	repo   storage.Repository
	logger *slog.Logger
}

// NewRunner creates a runner. A nil logger disables logging.
func NewRunner(cfg *config.Config, repo storage.Repository, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{cfg: cfg, repo: repo, logger: logger}
}

// Output is everything one run produced.
type Output struct {
	RunID string

	Roster      *roster.Roster
	RosterStats roster.BuildStats

	Results   []matcher.Result
	Summary   report.RunSummary
	Summaries []report.EntrySummary

	SourceStats []bank.LoadStats
	// SourceErrors holds the whole-source failures that were skipped. A
	// bad source never aborts the run; the caller decides whether a
	// partial run is acceptable.
	SourceErrors []error
}

// Run performs a full reconciliation pass. It returns an error only when
// nothing could be done at all (both roster files unreadable) or when
// persistence fails; per-source and per-row problems are reported in the
// output instead.
func (r *Runner) Run() (*Output, error) {
	started := time.Now().UTC()
	out := &Output{}

	memberRows, err := r.readRoster(r.cfg.Inputs.MembersFile, out)
	supporterRows, err2 := r.readRoster(r.cfg.Inputs.SupportersFile, out)
	if err != nil && err2 != nil {
		return nil, fmt.Errorf("no roster source loaded: %w", err)
	}

	builder := roster.NewBuilder(r.logger.With("system", "roster"))
	out.Roster, out.RosterStats = builder.Build(memberRows, supporterRows)

	loader := bank.NewLoader(r.logger.With("system", "loader"))
	var txs []bank.Transaction
	for _, src := range r.cfg.Sources {
		_, rows, err := reader.ReadCSV(src.File)
		if err != nil {
			// Fatal to this source only.
			r.logger.Warn("skipping source", "source", src.Code, "error", err)
			out.SourceErrors = append(out.SourceErrors, err)
			continue
		}
		loaded, stats := loader.Load(src, rows)
		txs = append(txs, loaded...)
		out.SourceStats = append(out.SourceStats, stats)
	}

	m := matcher.NewMatcher(r.cfg.Matcher, r.cfg.Sources, r.logger.With("system", "matcher"))
	out.Results = m.Match(txs, out.Roster)

	out.Summaries = report.Aggregate(out.Results, out.Roster)
	out.Summary = report.Summarize(out.Results)

	if r.repo != nil {
		out.RunID = uuid.NewString()
		if err := r.persist(out, started); err != nil {
			return nil, fmt.Errorf("persist run: %w", err)
		}
	}

	return out, nil
}

// readRoster loads one roster export, downgrading a whole-file failure to
// a recorded source error.
func (r *Runner) readRoster(path string, out *Output) ([]map[string]string, error) {
	_, rows, err := reader.ReadCSV(path)
	if err != nil {
		r.logger.Warn("skipping roster file", "file", path, "error", err)
		out.SourceErrors = append(out.SourceErrors, err)
		return nil, err
	}
	return rows, nil
}

// persist writes the run, roster, results, and source stats.
func (r *Runner) persist(out *Output, started time.Time) error {
	run := &storage.Run{
		ID:           out.RunID,
		StartedAt:    started,
		FinishedAt:   time.Now().UTC(),
		Transactions: out.Summary.Transactions,
		Matched:      out.Summary.Matched,
		Unmatched:    out.Summary.Unmatched,
		SystemNoise:  out.Summary.SystemNoise,
		MatchRate:    out.Summary.MatchRate,
	}
	if err := r.repo.SaveRun(run); err != nil {
		return err
	}

	rosterRecords := make([]storage.RosterRecord, 0, len(out.Roster.Entries))
	for _, e := range out.Roster.Entries {
		rosterRecords = append(rosterRecords, storage.RosterRecord{
			RunID:          out.RunID,
			EntryID:        e.ID,
			Name:           e.Name,
			Phone:          e.Phone,
			Email:          e.Email,
			CompanyName:    e.CompanyName,
			JoinDate:       e.JoinDate,
			Kind:           string(e.Kind),
			ExpectedAmount: e.ExpectedAmount,
			MergedCount:    e.MergedCount,
		})
	}
	if err := r.repo.SaveRoster(rosterRecords); err != nil {
		return err
	}

	resultRecords := make([]storage.ResultRecord, 0, len(out.Results))
	for _, res := range out.Results {
		resultRecords = append(resultRecords, storage.ResultRecord{
			RunID:         out.RunID,
			Source:        res.Transaction.Source,
			Date:          res.Transaction.Date,
			Amount:        res.Transaction.Amount,
			DepositorRaw:  res.Transaction.DepositorRaw,
			DepositorName: res.Transaction.DepositorName,
			Status:        string(res.Status),
			EntryID:       res.EntryID,
			EntryName:     res.EntryName,
			Method:        string(res.Method),
			Score:         res.Score,
			SystemNoise:   res.SystemNoise,
		})
	}
	if err := r.repo.SaveResults(resultRecords); err != nil {
		return err
	}

	sourceRecords := make([]storage.SourceRecord, 0, len(out.SourceStats))
	for _, s := range out.SourceStats {
		sourceRecords = append(sourceRecords, storage.SourceRecord{
			RunID:   out.RunID,
			Source:  s.Source,
			Rows:    s.Rows,
			Loaded:  s.Loaded,
			Skipped: s.Skipped,
		})
	}
	return r.repo.SaveSourceRecords(sourceRecords)
}

// Package matcher assigns bank transactions to roster entries using a
// layered similarity policy.
//
// Per transaction, in strict priority order:
//
//  1. Amount-based matching, only for sources that omit depositor identity
//     (empty extracted name): the first entry whose pledge equals the
//     transaction amount wins with a fixed low score.
//  2. Exact depositor-name match: score 1.0, stops the scan immediately.
//  3. Company-name similarity, banded into normalized / keyword / partial.
//  4. Edit-distance name similarity above a floor.
//
// Company and name layers scan the whole roster so the true best score
// wins; only an exact name short-circuits. The roster is scanned in id
// order, so equal scores always resolve to the same entry across runs.
package matcher

import (
	"io"
	"log/slog"

	"github.com/pledgekit/reconciler/internal/domain/bank"
	"github.com/pledgekit/reconciler/internal/domain/roster"
)

// Matcher matches transactions against a read-only roster. It holds no
// cross-transaction state: individual matches are independent, so the same
// Matcher may be reused across runs and produces identical output for
// identical input.
type Matcher struct {
	config  Config
	sources map[string]bank.SourceConfig
	logger  *slog.Logger
}

// NewMatcher creates a matcher. The source configs supply the per-bank
// amount-matching flag and system-keyword lists; a nil logger disables
// logging.
func NewMatcher(config Config, sources []bank.SourceConfig, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	byCode := make(map[string]bank.SourceConfig, len(sources))
	for _, src := range sources {
		byCode[src.Code] = src
	}
	return &Matcher{config: config, sources: byCode, logger: logger}
}

// Match runs a single pass over the transactions and returns one Result
// per transaction, in input order. Unmatched results whose raw content
// hits the source's system-keyword list are flagged as system noise.
func (m *Matcher) Match(txs []bank.Transaction, r *roster.Roster) []Result {
	results := make([]Result, 0, len(txs))
	for _, tx := range txs {
		res := m.matchOne(tx, r)
		if res.Status == StatusUnmatched {
			if src, ok := m.sources[tx.Source]; ok {
				res.SystemNoise = bank.IsSystemTransaction(src, tx.DepositorRaw)
			}
		}
		results = append(results, res)
	}

	matched := 0
	noise := 0
	for _, res := range results {
		switch {
		case res.Status == StatusMatched:
			matched++
		case res.SystemNoise:
			noise++
		}
	}
	m.logger.Info("matching complete",
		slog.Int("transactions", len(txs)),
		slog.Int("matched", matched),
		slog.Int("system_noise", noise),
		slog.Int("unmatched", len(txs)-matched-noise))

	return results
}

// matchOne applies the decision procedure to a single transaction.
func (m *Matcher) matchOne(tx bank.Transaction, r *roster.Roster) Result {
	src := m.sources[tx.Source]

	if src.AmountMatching && tx.DepositorName == "" {
		return m.matchByAmount(tx, r)
	}

	var (
		best      *roster.Entry
		bestScore float64
		method    Method
	)

	for i := range r.Entries {
		entry := &r.Entries[i]

		// Exact name is the highest-priority signal and stops the scan
		// entirely, regardless of any company-name coincidence elsewhere.
		if tx.DepositorName != "" && tx.DepositorName == entry.Name {
			return Result{
				Transaction: tx,
				Status:      StatusMatched,
				EntryID:     entry.ID,
				EntryName:   entry.Name,
				Method:      MethodExactName,
				Score:       1.0,
			}
		}

		if entry.CompanyName != "" {
			if sim := CompanySimilarity(tx.DepositorName, entry.CompanyName); sim > bestScore {
				switch {
				case sim >= m.config.CompanyNormalizedMin:
					best, bestScore, method = entry, sim, MethodCompanyNormalized
				case sim >= m.config.CompanyKeywordMin:
					best, bestScore, method = entry, sim, MethodCompanyKeyword
				case sim >= m.config.CompanyPartialMin:
					best, bestScore, method = entry, sim, MethodCompanyPartial
				}
			}
		}

		if sim := NameSimilarity(tx.DepositorName, entry.Name); sim >= m.config.NameSimilarityMin && sim > bestScore {
			best, bestScore, method = entry, sim, MethodNameSimilarity
		}
	}

	if best == nil {
		return Result{Transaction: tx, Status: StatusUnmatched}
	}
	return Result{
		Transaction: tx,
		Status:      StatusMatched,
		EntryID:     best.ID,
		EntryName:   best.Name,
		Method:      method,
		Score:       bestScore,
	}
}

// matchByAmount accepts the first entry whose pledge equals the integer
// transaction amount. First-match is the documented behavior; when several
// supporters share the pledge amount the assignment is a guess, so the
// ambiguity is logged for review.
func (m *Matcher) matchByAmount(tx bank.Transaction, r *roster.Roster) Result {
	var first *roster.Entry
	candidates := 0

	for i := range r.Entries {
		entry := &r.Entries[i]
		if entry.ExpectedAmount <= 0 {
			continue
		}
		if int64(tx.Amount) == int64(entry.ExpectedAmount) {
			candidates++
			if first == nil {
				first = entry
			}
		}
	}

	if first == nil {
		return Result{Transaction: tx, Status: StatusUnmatched}
	}

	if candidates > 1 {
		m.logger.Debug("ambiguous amount match",
			slog.String("source", tx.Source),
			slog.String("date", tx.Date),
			slog.Float64("amount", tx.Amount),
			slog.Int("candidates", candidates),
			slog.String("assigned", first.ID))
	}

	return Result{
		Transaction: tx,
		Status:      StatusMatched,
		EntryID:     first.ID,
		EntryName:   first.Name,
		Method:      MethodAmountBased,
		Score:       m.config.AmountMatchScore,
	}
}

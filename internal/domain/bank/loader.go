// Package bank turns raw per-bank statement rows into canonical deposit
// transactions, filtering out institution noise along the way.
package bank

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pledgekit/reconciler/internal/domain/normalize"
)

// Loader converts one source's raw rows into transactions. Loaders for
// different sources are independent: a failure in one export never blocks
// the others.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a transaction loader. A nil logger disables logging.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger}
}

// Load emits the retained transactions for one source. Per-row problems
// are counted as skips; they never raise. The returned slice preserves the
// input row order.
func (l *Loader) Load(cfg SourceConfig, rows []map[string]string) ([]Transaction, LoadStats) {
	stats := LoadStats{
		Source:  cfg.Code,
		Rows:    len(rows),
		Skipped: make(map[string]int),
	}

	var txs []Transaction
	for _, row := range rows {
		raw := strings.TrimSpace(row[cfg.Columns.Depositor])

		if containsAny(raw, cfg.NoiseKeywords) {
			stats.Skipped[SkipNoise]++
			continue
		}

		date := normalize.Date(row[cfg.Columns.Date])
		if date == "" {
			stats.Skipped[SkipBadDate]++
			continue
		}

		amount := normalize.Amount(row[cfg.Columns.Amount])
		if amount <= 0 {
			stats.Skipped[SkipBadAmount]++
			continue
		}

		txs = append(txs, Transaction{
			Source:        cfg.Code,
			Date:          date,
			Amount:        amount,
			DepositorRaw:  raw,
			DepositorName: extractDepositor(cfg, raw),
		})
	}

	stats.Loaded = len(txs)
	l.logger.Info("source loaded",
		slog.String("source", cfg.Code),
		slog.Int("rows", stats.Rows),
		slog.Int("loaded", stats.Loaded),
		slog.Int("noise", stats.Skipped[SkipNoise]))

	return txs, stats
}

// containsAny reports whether s contains any of the keywords.
func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// IsSystemTransaction reports whether the raw depositor content marks a
// bank-generated posting for this source. Applied to unmatched results
// after matching: load-time filtering cannot catch rows whose depositor
// field looks name-like but is still automated.
func IsSystemTransaction(cfg SourceConfig, raw string) bool {
	return containsAny(raw, cfg.SystemKeywords)
}

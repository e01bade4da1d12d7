// Package roster builds the deduplicated master list of members and
// supporters that bank transactions are matched against.
package roster

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pledgekit/reconciler/internal/domain/normalize"
)

// Dedup scoring weights. Two standardized rows are duplicates when their
// combined similarity reaches dupThreshold; with these weights that
// requires exact name and exact phone agreement.
const (
	dupThreshold = 0.85
	weightName   = 0.4
	weightPhone  = 0.5
	weightEmail  = 0.1
)

// Builder merges the member and supporter collections into one roster.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a roster builder. A nil logger disables logging.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{logger: logger}
}

// Build standardizes both row collections, drops rows without a usable
// name, merges duplicates, and assigns sequential ids in surviving order.
// Malformed rows are counted in the stats, never returned as errors.
func (b *Builder) Build(memberRows, supporterRows []map[string]string) (*Roster, BuildStats) {
	stats := BuildStats{
		MemberRows:    len(memberRows),
		SupporterRows: len(supporterRows),
		Skipped:       make(map[string]int),
	}

	candidates := b.standardize(memberRows, KindMember, &stats)
	candidates = append(candidates, b.standardize(supporterRows, KindSupporter, &stats)...)

	var entries []Entry
	for _, cand := range candidates {
		if i := findDuplicate(entries, cand); i >= 0 {
			// First-seen record is the base; only the kind and the merge
			// bookkeeping change.
			if entries[i].Kind != cand.Kind {
				entries[i].Kind = KindBoth
			}
			entries[i].MergedCount++
			stats.Merged++
			continue
		}
		entries = append(entries, cand)
	}

	for i := range entries {
		entries[i].ID = fmt.Sprintf("M%04d", i+1)
	}

	b.logger.Info("roster built",
		slog.Int("entries", len(entries)),
		slog.Int("merged", stats.Merged),
		slog.Int("skipped", stats.Skipped[SkipNoName]))

	return &Roster{Entries: entries}, stats
}

// standardize maps and normalizes one source collection. Rows whose
// normalized name is empty are filtered, not reported as errors.
func (b *Builder) standardize(rows []map[string]string, kind MembershipKind, stats *BuildStats) []Entry {
	if len(rows) == 0 {
		return nil
	}

	mapping := MapColumns(headerSet(rows))

	var out []Entry
	for _, raw := range rows {
		row := standardizeRow(raw, mapping)

		name := normalize.Name(row[FieldName])
		if name == "" {
			stats.Skipped[SkipNoName]++
			continue
		}

		out = append(out, Entry{
			Name:           name,
			Phone:          normalize.Phone(row[FieldPhone]),
			Email:          row[FieldEmail],
			CompanyName:    row[FieldCompany],
			JoinDate:       normalize.Date(row[FieldJoinDate]),
			Kind:           kind,
			ExpectedAmount: normalize.Amount(row[FieldAmount]),
			MergedCount:    1,
		})
	}
	return out
}

// findDuplicate returns the index of the first existing entry scoring at or
// above the duplicate threshold against the candidate, or -1.
func findDuplicate(entries []Entry, cand Entry) int {
	for i := range entries {
		if similarity(&entries[i], &cand) >= dupThreshold {
			return i
		}
	}
	return -1
}

// similarity is the weighted dedup score between two standardized entries.
func similarity(a, b *Entry) float64 {
	score := 0.0
	if a.Name != "" && b.Name != "" && a.Name == b.Name {
		score += weightName
	}
	if a.Phone != "" && b.Phone != "" && a.Phone == b.Phone {
		score += weightPhone
	}
	if a.Email != "" && b.Email != "" && strings.EqualFold(a.Email, b.Email) {
		score += weightEmail
	}
	return score
}

// headerSet collects the union of keys across raw rows so MapColumns sees
// every header the source used.
func headerSet(rows []map[string]string) []string {
	seen := make(map[string]bool)
	var headers []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	return headers
}

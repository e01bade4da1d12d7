// Package report aggregates match results into per-entry payment
// summaries and run-level statistics. Thin by design: the matching engine
// has already done the hard work.
package report

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pledgekit/reconciler/internal/domain/matcher"
	"github.com/pledgekit/reconciler/internal/domain/roster"
)

// Compliance classifies a pledged supporter's actual payments against the
// pledge, using a 10% tolerance band on the monthly average.
type Compliance string

const (
	ComplianceNormal Compliance = "normal"
	ComplianceOver   Compliance = "over"
	ComplianceUnder  Compliance = "under"
	ComplianceNone   Compliance = "none"
	// ComplianceNA marks entries without a pledge amount.
	ComplianceNA Compliance = "n/a"
)

const complianceTolerance = 0.1

// EntrySummary is the payment picture for one roster entry.
type EntrySummary struct {
	EntryID        string
	Name           string
	Kind           roster.MembershipKind
	ExpectedAmount float64

	Transactions int
	Total        float64
	LastDate     string
	// Monthly maps YYYY-MM to the amount paid that month.
	Monthly map[string]float64

	Compliance Compliance
}

// NewPerson is an unmatched depositor that looks like a real payer rather
// than a posting artifact: a candidate for roster intake.
type NewPerson struct {
	Name         string
	Transactions int
	Total        float64
	Sources      []string
}

// RunSummary is the run-level outcome.
type RunSummary struct {
	Transactions int
	Matched      int
	Unmatched    int
	SystemNoise  int
	MatchRate    float64
	ByMethod     map[matcher.Method]int
	NewPeople    []NewPerson
}

// Aggregate groups matched transactions per roster entry and computes
// totals, monthly sums, and pledge compliance. Entries without any matched
// transaction still appear, with zero totals.
func Aggregate(results []matcher.Result, r *roster.Roster) []EntrySummary {
	byID := make(map[string]*EntrySummary, len(r.Entries))
	summaries := make([]EntrySummary, len(r.Entries))
	for i, entry := range r.Entries {
		summaries[i] = EntrySummary{
			EntryID:        entry.ID,
			Name:           entry.Name,
			Kind:           entry.Kind,
			ExpectedAmount: entry.ExpectedAmount,
			Monthly:        make(map[string]float64),
		}
		byID[entry.ID] = &summaries[i]
	}

	for _, res := range results {
		if res.Status != matcher.StatusMatched {
			continue
		}
		s, ok := byID[res.EntryID]
		if !ok {
			continue
		}
		s.Transactions++
		s.Total += res.Transaction.Amount
		if res.Transaction.Date > s.LastDate {
			s.LastDate = res.Transaction.Date
		}
		if len(res.Transaction.Date) >= 7 {
			s.Monthly[res.Transaction.Date[:7]] += res.Transaction.Amount
		}
	}

	for i := range summaries {
		summaries[i].Compliance = classify(&summaries[i])
	}
	return summaries
}

// classify compares the average monthly payment to the pledge.
func classify(s *EntrySummary) Compliance {
	if s.ExpectedAmount <= 0 {
		return ComplianceNA
	}
	if len(s.Monthly) == 0 {
		return ComplianceNone
	}

	sum := 0.0
	for _, v := range s.Monthly {
		sum += v
	}
	avg := sum / float64(len(s.Monthly))
	diff := avg - s.ExpectedAmount

	switch {
	case diff >= -s.ExpectedAmount*complianceTolerance && diff <= s.ExpectedAmount*complianceTolerance:
		return ComplianceNormal
	case diff > 0:
		return ComplianceOver
	default:
		return ComplianceUnder
	}
}

// nameLikeRe accepts depositors that start with a 2-4 syllable Hangul run.
var nameLikeRe = regexp.MustCompile(`^[가-힣]{2,4}`)

// Summarize computes run-level statistics and collects new-person
// candidates from the real (non-noise) unmatched results.
func Summarize(results []matcher.Result) RunSummary {
	summary := RunSummary{
		Transactions: len(results),
		ByMethod:     make(map[matcher.Method]int),
	}

	candidates := make(map[string]*NewPerson)
	var order []string

	for _, res := range results {
		if res.Status == matcher.StatusMatched {
			summary.Matched++
			summary.ByMethod[res.Method]++
			continue
		}
		if res.SystemNoise {
			summary.SystemNoise++
			continue
		}
		summary.Unmatched++

		depositor := res.Transaction.DepositorName
		if depositor == "" || !nameLikeRe.MatchString(depositor) {
			continue
		}
		name := stripParen(depositor)
		p, ok := candidates[name]
		if !ok {
			p = &NewPerson{Name: name}
			candidates[name] = p
			order = append(order, name)
		}
		p.Transactions++
		p.Total += res.Transaction.Amount
		if !contains(p.Sources, res.Transaction.Source) {
			p.Sources = append(p.Sources, res.Transaction.Source)
		}
	}

	if summary.Transactions > 0 {
		summary.MatchRate = float64(summary.Matched) / float64(summary.Transactions)
	}

	sort.Strings(order)
	for _, name := range order {
		summary.NewPeople = append(summary.NewPeople, *candidates[name])
	}
	return summary
}

func stripParen(name string) string {
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

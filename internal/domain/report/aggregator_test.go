package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pledgekit/reconciler/internal/domain/bank"
	"github.com/pledgekit/reconciler/internal/domain/matcher"
	"github.com/pledgekit/reconciler/internal/domain/roster"
)

func matchedResult(entryID, date string, amount float64) matcher.Result {
	return matcher.Result{
		Transaction: bank.Transaction{Source: "sh", Date: date, Amount: amount},
		Status:      matcher.StatusMatched,
		EntryID:     entryID,
		Method:      matcher.MethodExactName,
		Score:       1.0,
	}
}

func TestAggregate_TotalsAndMonthly(t *testing.T) {
	r := &roster.Roster{Entries: []roster.Entry{
		{ID: "M0001", Name: "김철수", ExpectedAmount: 30000},
		{ID: "M0002", Name: "이영희"},
	}}
	results := []matcher.Result{
		matchedResult("M0001", "2024-01-15", 30000),
		matchedResult("M0001", "2024-02-15", 15000),
		matchedResult("M0001", "2024-02-20", 15000),
	}

	summaries := Aggregate(results, r)

	require.Len(t, summaries, 2)
	s := summaries[0]
	assert.Equal(t, 3, s.Transactions)
	assert.Equal(t, 60000.0, s.Total)
	assert.Equal(t, "2024-02-20", s.LastDate)
	assert.Equal(t, map[string]float64{
		"2024-01": 30000,
		"2024-02": 30000,
	}, s.Monthly)

	// Entries with no matched transactions still get a summary row.
	assert.Equal(t, 0, summaries[1].Transactions)
	assert.Equal(t, "", summaries[1].LastDate)
}

func TestAggregate_Compliance(t *testing.T) {
	r := &roster.Roster{Entries: []roster.Entry{
		{ID: "M0001", Name: "정상", ExpectedAmount: 30000},
		{ID: "M0002", Name: "초과", ExpectedAmount: 30000},
		{ID: "M0003", Name: "미달", ExpectedAmount: 30000},
		{ID: "M0004", Name: "미납", ExpectedAmount: 30000},
		{ID: "M0005", Name: "약정없음"},
	}}
	results := []matcher.Result{
		// Within the 10% band around the pledge.
		matchedResult("M0001", "2024-01-15", 31000),
		matchedResult("M0001", "2024-02-15", 29000),
		// Well over.
		matchedResult("M0002", "2024-01-15", 60000),
		// Well under.
		matchedResult("M0003", "2024-01-15", 10000),
		// M0004 pledged but never paid; M0005 has no pledge at all.
		matchedResult("M0005", "2024-01-15", 5000),
	}

	summaries := Aggregate(results, r)

	require.Len(t, summaries, 5)
	assert.Equal(t, ComplianceNormal, summaries[0].Compliance)
	assert.Equal(t, ComplianceOver, summaries[1].Compliance)
	assert.Equal(t, ComplianceUnder, summaries[2].Compliance)
	assert.Equal(t, ComplianceNone, summaries[3].Compliance)
	assert.Equal(t, ComplianceNA, summaries[4].Compliance)
}

func TestAggregate_IgnoresUnmatched(t *testing.T) {
	r := &roster.Roster{Entries: []roster.Entry{{ID: "M0001", Name: "김철수"}}}
	results := []matcher.Result{
		{
			Transaction: bank.Transaction{Source: "sh", Date: "2024-01-15", Amount: 9999},
			Status:      matcher.StatusUnmatched,
		},
	}

	summaries := Aggregate(results, r)

	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].Transactions)
	assert.Equal(t, 0.0, summaries[0].Total)
}

func TestSummarize_Counts(t *testing.T) {
	results := []matcher.Result{
		matchedResult("M0001", "2024-01-15", 30000),
		{
			Transaction: bank.Transaction{Source: "sh", Amount: 50000, DepositorName: "신규인"},
			Status:      matcher.StatusUnmatched,
		},
		{
			Transaction: bank.Transaction{Source: "sh", Amount: 12, DepositorRaw: "결산이자"},
			Status:      matcher.StatusUnmatched,
			SystemNoise: true,
		},
		{
			Transaction: bank.Transaction{Source: "nh", Amount: 100000},
			Status:      matcher.StatusMatched,
			EntryID:     "M0002",
			Method:      matcher.MethodAmountBased,
			Score:       0.7,
		},
	}

	summary := Summarize(results)

	assert.Equal(t, 4, summary.Transactions)
	assert.Equal(t, 2, summary.Matched)
	assert.Equal(t, 1, summary.Unmatched)
	assert.Equal(t, 1, summary.SystemNoise)
	assert.Equal(t, 0.5, summary.MatchRate)
	assert.Equal(t, map[matcher.Method]int{
		matcher.MethodExactName:   1,
		matcher.MethodAmountBased: 1,
	}, summary.ByMethod)
}

func TestSummarize_NewPeople(t *testing.T) {
	unmatched := func(source, name string, amount float64) matcher.Result {
		return matcher.Result{
			Transaction: bank.Transaction{
				Source:        source,
				Amount:        amount,
				DepositorName: name,
			},
			Status: matcher.StatusUnmatched,
		}
	}

	results := []matcher.Result{
		unmatched("sh", "신규인", 10000),
		unmatched("nh", "신규인(2월)", 10000),
		unmatched("sh", "가입희망", 20000),
		// Not name-like: numeric and latin depositors stay out of the list.
		unmatched("sh", "765캠프", 5000),
		unmatched("sh", "ACME", 5000),
	}

	summary := Summarize(results)

	require.Len(t, summary.NewPeople, 2)
	// Sorted by name.
	assert.Equal(t, "가입희망", summary.NewPeople[0].Name)
	first := summary.NewPeople[1]
	assert.Equal(t, "신규인", first.Name)
	assert.Equal(t, 2, first.Transactions)
	assert.Equal(t, 20000.0, first.Total)
	assert.ElementsMatch(t, []string{"sh", "nh"}, first.Sources)
}

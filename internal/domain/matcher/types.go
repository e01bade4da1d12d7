package matcher

import (
	"github.com/pledgekit/reconciler/internal/domain/bank"
)

// Status of one matching attempt.
type Status string

const (
	StatusMatched   Status = "matched"
	StatusUnmatched Status = "unmatched"
)

// Method records which layer of the matching policy produced the match.
type Method string

const (
	MethodExactName         Method = "exact_name"
	MethodCompanyNormalized Method = "company_normalized"
	MethodCompanyKeyword    Method = "company_keyword"
	MethodCompanyPartial    Method = "company_partial"
	MethodNameSimilarity    Method = "name_similarity"
	MethodAmountBased       Method = "amount_based"
)

// Result is the outcome of matching one transaction against the roster.
// Results are immutable once emitted, one per transaction, in transaction
// order.
type Result struct {
	Transaction bank.Transaction

	Status    Status
	EntryID   string
	EntryName string
	Method    Method
	// Score is the confidence of the match in [0,1]; 0 when unmatched.
	Score float64

	// SystemNoise marks an unmatched transaction whose raw content hit the
	// source's system-keyword list. Such results are excluded from the
	// real-unmatched reporting.
	SystemNoise bool
}

// Config holds the matching thresholds. The zero value is not usable; use
// DefaultConfig.
type Config struct {
	// NameSimilarityMin is the floor for accepting an edit-distance name
	// match.
	NameSimilarityMin float64 `yaml:"name_similarity_min"`
	// Company similarity bands, highest first.
	CompanyNormalizedMin float64 `yaml:"company_normalized_min"`
	CompanyKeywordMin    float64 `yaml:"company_keyword_min"`
	CompanyPartialMin    float64 `yaml:"company_partial_min"`
	// AmountMatchScore is the fixed confidence of an amount-only match.
	// Deliberately low: it is a weak heuristic used when there is zero
	// other signal.
	AmountMatchScore float64 `yaml:"amount_match_score"`
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		NameSimilarityMin:    0.7,
		CompanyNormalizedMin: 0.95,
		CompanyKeywordMin:    0.85,
		CompanyPartialMin:    0.80,
		AmountMatchScore:     0.7,
	}
}

package matcher

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/pledgekit/reconciler/internal/domain/normalize"
)

// CompanySimilarity scores how likely a depositor string and a roster
// company name refer to the same organization. Returns one of a small set
// of fixed confidence levels:
//
//	0.95  identical after company-name normalization
//	0.85  the names share a keyword (3-5 rune substring)
//	0.80  one normalized name contains the other
//	0     otherwise
func CompanySimilarity(a, b string) float64 {
	normA := normalize.CompanyName(a)
	normB := normalize.CompanyName(b)
	if normA == "" || normB == "" {
		return 0
	}

	if normA == normB {
		return 0.95
	}

	if longestCommonKeyword(keywords(normA), keywords(normB)) >= 3 {
		return 0.85
	}

	// Partial containment compares the core names with the legal-entity
	// form stripped: "주식회사나와" must still match inside "나와컴퍼니".
	coreA := stripLegalForm(normA)
	coreB := stripLegalForm(normB)
	if coreA != "" && coreB != "" &&
		(strings.Contains(coreA, coreB) || strings.Contains(coreB, coreA)) {
		return 0.8
	}

	return 0
}

var legalForms = []string{"주식회사", "유한회사"}

// stripLegalForm removes a leading or trailing legal-entity form from a
// normalized company name.
func stripLegalForm(name string) string {
	for _, form := range legalForms {
		name = strings.TrimPrefix(name, form)
		name = strings.TrimSuffix(name, form)
	}
	return name
}

// keywords returns every contiguous substring of 3-5 runes.
func keywords(s string) map[string]bool {
	runes := []rune(s)
	out := make(map[string]bool)
	for i := 0; i < len(runes); i++ {
		for j := 3; j <= 5 && i+j <= len(runes); j++ {
			out[string(runes[i:i+j])] = true
		}
	}
	return out
}

// longestCommonKeyword returns the rune length of the longest keyword both
// sets share, 0 when they are disjoint.
func longestCommonKeyword(a, b map[string]bool) int {
	longest := 0
	for kw := range a {
		if b[kw] {
			if n := len([]rune(kw)); n > longest {
				longest = n
			}
		}
	}
	return longest
}

// NameSimilarity scores two personal names: 1.0 when identical, 0.95 when
// identical after stripping a parenthetical suffix, otherwise the
// longest-matching-blocks sequence ratio of the stripped names in [0,1].
func NameSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}

	cleanA := stripParen(a)
	cleanB := stripParen(b)
	if cleanA == cleanB {
		return 0.95
	}

	return sequenceRatio(cleanA, cleanB)
}

// stripParen drops a trailing "(...)" qualifier, e.g. "김철수(조합원)".
func stripParen(name string) string {
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// sequenceRatio is the classic difflib ratio computed per rune.
func sequenceRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

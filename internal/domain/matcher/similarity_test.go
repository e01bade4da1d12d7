package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanySimilarity_NormalizedIdentical(t *testing.T) {
	// "(주)" expands to 주식회사, roman tokens transliterate.
	assert.Equal(t, 0.95, CompanySimilarity("(주)나와", "주식회사 나와"))
	assert.Equal(t, 0.95, CompanySimilarity("PAL시스템", "피에이엘시스템"))
}

func TestCompanySimilarity_KeywordOverlap(t *testing.T) {
	// Shares the keyword "컴퍼니코리" (5 runes) without being identical
	// or a substring of one another.
	sim := CompanySimilarity("나와컴퍼니코리아", "컴퍼니코리아글로벌")
	assert.Equal(t, 0.85, sim)
}

func TestCompanySimilarity_PartialContainment(t *testing.T) {
	// The core company name (legal form stripped) is contained in the
	// depositor string.
	sim := CompanySimilarity("나와컴퍼니", "(주)나와")
	assert.Equal(t, 0.8, sim)
}

func TestCompanySimilarity_NoMatch(t *testing.T) {
	assert.Equal(t, 0.0, CompanySimilarity("한빛출판", "나무상사"))
	assert.Equal(t, 0.0, CompanySimilarity("", "(주)나와"))
	assert.Equal(t, 0.0, CompanySimilarity("나와컴퍼니", ""))
}

func TestNameSimilarity_Identical(t *testing.T) {
	assert.Equal(t, 1.0, NameSimilarity("김철수", "김철수"))
}

func TestNameSimilarity_ParenSuffix(t *testing.T) {
	assert.Equal(t, 0.95, NameSimilarity("김철수(조합원)", "김철수"))
	assert.Equal(t, 0.95, NameSimilarity("김철수 (2월분)", "김철수"))
}

func TestNameSimilarity_Ratio(t *testing.T) {
	// 3 common runes out of 7 total: 2*3/7.
	assert.InDelta(t, 0.857, NameSimilarity("홍길동님", "홍길동"), 0.001)

	// 2 of 6: below any useful threshold.
	assert.InDelta(t, 0.667, NameSimilarity("김철수", "김철호"), 0.001)
}

func TestNameSimilarity_Empty(t *testing.T) {
	assert.Equal(t, 0.0, NameSimilarity("", "김철수"))
	assert.Equal(t, 0.0, NameSimilarity("김철수", ""))
}

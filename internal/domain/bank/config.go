package bank

// ExtractRule selects how the depositor name is pulled out of the raw
// depositor field for one source.
type ExtractRule string

const (
	// ExtractVerbatim keeps the raw field as the depositor name.
	ExtractVerbatim ExtractRule = "verbatim"
	// ExtractHangulName takes the first run of 2-4 Hangul syllables,
	// unless the field matches a system-keyword pattern.
	ExtractHangulName ExtractRule = "hangul_name"
	// ExtractNone always yields an empty depositor name. Used for sources
	// whose statements carry no payer identity; those rows can only be
	// matched by amount.
	ExtractNone ExtractRule = "none"
)

// ColumnMap names the source-specific columns holding the three fields the
// loader needs.
type ColumnMap struct {
	Date      string `yaml:"date"`
	Depositor string `yaml:"depositor"`
	Amount    string `yaml:"amount"`
}

// SourceConfig is the static per-bank configuration: column names, noise
// keywords, extraction rule. It is data, not runtime inference.
type SourceConfig struct {
	// Code identifies the source on every transaction, e.g. "sh".
	Code string `yaml:"code"`
	// Name is the human-readable bank name used in logs and reports.
	Name string `yaml:"name"`
	// File is the path of this source's export.
	File string `yaml:"file"`

	Columns ColumnMap `yaml:"columns"`

	// NoiseKeywords drop a row entirely at load time when any of them
	// appears in the depositor field (aggregate totals, fees, internal
	// transfers). Dropped rows never become transactions.
	NoiseKeywords []string `yaml:"noise_keywords"`

	// SystemKeywords classify an unmatched transaction as a system
	// posting after matching, based on the raw depositor content.
	SystemKeywords []string `yaml:"system_keywords"`

	Extract ExtractRule `yaml:"extract"`

	// AmountMatching enables pledge-amount matching for rows with no
	// depositor name. Only sensible for sources using ExtractNone.
	AmountMatching bool `yaml:"amount_matching"`
}

// DefaultSources returns the built-in configuration for the three known
// exports. A config file can override or replace them.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Code: "sh",
			Name: "SH은행",
			File: "data/SH_거래내역.csv",
			Columns: ColumnMap{
				Date:      "거래일시",
				Depositor: "내용",
				Amount:    "입금",
			},
			NoiseKeywords:  []string{"총", "관리", "수수료"},
			SystemKeywords: []string{"내부이체", "결산이자", "이자지급"},
			Extract:        ExtractHangulName,
		},
		{
			Code: "nh",
			Name: "NH농협",
			File: "data/NH_거래내역.csv",
			Columns: ColumnMap{
				Date:      "거래일자",
				Depositor: "거래내용",
				Amount:    "입금금액(원)",
			},
			NoiseKeywords:  []string{"총", "내부이체", "수수료"},
			SystemKeywords: []string{"CMS공동", "PC", "폰", "타행이체", "예금이자", "스마트당행"},
			Extract:        ExtractNone,
			AmountMatching: true,
		},
		{
			Code: "donus",
			Name: "DONUS",
			File: "data/Donus_거래내역.csv",
			Columns: ColumnMap{
				Date:      "납입일",
				Depositor: "이름",
				Amount:    "납입액",
			},
			NoiseKeywords: []string{"Total", "Fee"},
			Extract:       ExtractVerbatim,
		},
	}
}

// Package normalize provides canonical forms for the raw field values found
// in roster exports and bank statements: phone numbers, person names,
// amounts, dates, and company names.
//
// Every function is pure and total. Malformed input never produces an error;
// it degrades to an empty string (or zero for amounts) so that one messy
// cell cannot abort a batch.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	nonDigitRe    = regexp.MustCompile(`\D`)
	nonAmountRe   = regexp.MustCompile(`[^\d.]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	digitsOnlyRe  = regexp.MustCompile(`^\d+$`)
	datetimeSplit = regexp.MustCompile(`[ T]`)
)

// Phone formats a phone number as NNN-NNNN-NNNN for mobiles or
// NN-NNN-NNNN / NN-NNNN-NNNN for Seoul landlines. Anything that does not
// fit a known shape passes through trimmed, so an odd but human-entered
// value is kept rather than destroyed.
func Phone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	digits := nonDigitRe.ReplaceAllString(trimmed, "")

	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "010"):
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	case strings.HasPrefix(digits, "02") && len(digits) == 9:
		return "02-" + digits[2:5] + "-" + digits[5:]
	case strings.HasPrefix(digits, "02") && len(digits) == 10:
		return "02-" + digits[2:6] + "-" + digits[6:]
	case !strings.HasPrefix(digits, "02") && len(digits) >= 9 && len(digits) <= 11:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}

	return trimmed
}

// Name collapses internal whitespace and trims. Names shorter than two
// runes are not usable as a roster identity and normalize to empty.
func Name(raw string) string {
	name := whitespaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	if len([]rune(name)) < 2 {
		return ""
	}
	return name
}

// Amount parses a currency value out of a string, tolerating thousands
// separators, currency symbols and unit suffixes. Unparseable or absent
// values become 0 rather than an error: a missing pledge amount must not
// block roster construction.
func Amount(raw string) float64 {
	cleaned := nonAmountRe.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// legalEntityForms maps abbreviated Korean legal-entity markers to their
// full forms so "(주)나와" and "주식회사 나와" compare equal.
var legalEntityForms = [][2]string{
	{"(주)", "주식회사"},
	{"(유)", "유한회사"},
}

// transliterations covers the handful of foreign-script company tokens
// known to appear in the depositor field.
var transliterations = [][2]string{
	{"pal", "피에이엘"},
	{"nawa", "나와"},
}

// CompanyName produces the comparison form of an organization name:
// lowercased, legal-entity abbreviations expanded, known roman tokens
// transliterated, and all whitespace removed. The result is only used for
// similarity scoring, never stored.
func CompanyName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return ""
	}

	for _, pair := range legalEntityForms {
		name = strings.ReplaceAll(name, pair[0], pair[1])
	}
	for _, pair := range transliterations {
		name = strings.ReplaceAll(name, pair[0], pair[1])
	}

	return whitespaceRe.ReplaceAllString(name, "")
}

// dateLayouts are the date string shapes seen across the bank exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"20060102",
}

// excelEpoch is the day-zero of Excel serial dates (1900 date system,
// including its phantom 1900-02-29).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Date canonicalizes a date value to YYYY-MM-DD. It accepts the common
// delimited layouts, datetime strings (the time part is dropped), and
// Excel serial day numbers. Unrecognized input normalizes to empty.
func Date(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Datetime strings carry the date in the first token.
	if parts := datetimeSplit.Split(s, 2); len(parts) > 1 {
		s = parts[0]
	}

	if digitsOnlyRe.MatchString(s) && len(s) < 8 {
		// Excel serial date
		serial, err := strconv.Atoi(s)
		if err != nil || serial < 1 || serial > 99999 {
			return ""
		}
		return excelEpoch.AddDate(0, 0, serial).Format("2006-01-02")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return ""
}

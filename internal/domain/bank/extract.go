package bank

import (
	"regexp"
	"strings"
)

// hangulNameRe matches a contiguous run of 2-4 Hangul syllables, the shape
// of a Korean personal name.
var hangulNameRe = regexp.MustCompile(`[가-힣]{2,4}`)

// extractDepositor applies the source's extraction rule to the raw
// depositor field.
func extractDepositor(cfg SourceConfig, raw string) string {
	switch cfg.Extract {
	case ExtractHangulName:
		return extractHangulName(cfg, raw)
	case ExtractNone:
		return ""
	default:
		return strings.TrimSpace(raw)
	}
}

// extractHangulName pulls the first plausible personal name out of
// free-text statement content. System postings yield an empty name so they
// are never name-matched; content without a Hangul name run (typically a
// company name) is returned as-is.
func extractHangulName(cfg SourceConfig, content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}

	if containsAny(content, cfg.SystemKeywords) {
		return ""
	}

	if m := hangulNameRe.FindString(content); m != "" {
		return m
	}

	return content
}

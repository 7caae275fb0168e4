// Package sanitize cleans free-text fields before they are stored: patient
// history, doctor bios, appointment reasons. It keeps multilingual text and
// punctuation, drops control characters and obvious markup, and caps length.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxLen suits short free text such as appointment reasons.
	DefaultMaxLen = 2000
	// LongMaxLen suits longer notes: medical history, doctor bios.
	LongMaxLen = 4000
)

var (
	htmlComment   = regexp.MustCompile(`(?s)<!--.*?-->`)
	dangerousTags = regexp.MustCompile(`(?i)<\s*/?\s*(script|style|iframe|object|embed|svg|math)[^>]*>`)
	spaceRuns     = regexp.MustCompile(`[ \x{00A0}]{3,}`)
)

// Text returns s with ASCII and C1 control characters removed (tab, newline
// and carriage return survive), HTML comments stripped, dangerous tags
// replaced by a visible placeholder, runs of 3+ spaces collapsed, and the
// result trimmed and truncated to maxLen runes. maxLen <= 0 means no cap.
func Text(s string, maxLen int) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' || r == '\n' || r == '\r' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			continue
		}
		b.WriteRune(r)
	}

	out := htmlComment.ReplaceAllString(b.String(), "")
	out = dangerousTags.ReplaceAllString(out, "[removed tag]")
	out = spaceRuns.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)

	if maxLen > 0 && utf8.RuneCountInString(out) > maxLen {
		runes := []rune(out)
		out = strings.TrimSpace(string(runes[:maxLen]))
	}

	return out
}

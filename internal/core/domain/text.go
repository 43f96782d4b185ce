package domain

import (
	"regexp"
	"strings"
)

var (
	spaceRuns   = regexp.MustCompile(`[^\S\n]+`)
	newlineRuns = regexp.MustCompile(`[^\S\n]*\n[\s]*`)
)

// NormalizeText collapses runs of whitespace to a single space, runs of
// newlines to a single newline, and trims the result. Idempotent:
// NormalizeText(NormalizeText(s)) == NormalizeText(s).
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

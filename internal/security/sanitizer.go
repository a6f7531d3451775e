package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeString trims, removes null bytes and caps the length in runes
func SanitizeString(input string, maxLen int) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if maxLen > 0 {
		runes := []rune(input)
		if len(runes) > maxLen {
			input = string(runes[:maxLen])
		}
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// CleanText strips markup and normalizes what is left. The policy escapes
// text as HTML, so entities are decoded back to plain text.
func CleanText(input string, maxLen int) string {
	return SanitizeString(html.UnescapeString(SanitizeHTML(input)), maxLen)
}

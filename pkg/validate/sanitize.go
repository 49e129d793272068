package validate

import (
	"regexp"
	"strings"
)

var htmlTag = regexp.MustCompile(`<[^>]+>`)

// Sanitize strips HTML tags, cuts to maxLen runes and trims spaces.
func Sanitize(text string, maxLen int) string {
	if text == "" {
		return ""
	}
	text = htmlTag.ReplaceAllString(text, "")
	if r := []rune(text); maxLen > 0 && len(r) > maxLen {
		text = string(r[:maxLen])
	}
	return strings.TrimSpace(text)
}

package rules

import (
	"regexp"
	"strings"
)

var (
	mentionRe = regexp.MustCompile(`[@#]\w+`)
	punctRe   = regexp.MustCompile(`[^\w\s]`)
)

// Normalize lower-cases text, strips @mention/#hashtag tokens, replaces
// remaining punctuation with spaces and trims the result. Vocabulary rules
// match against this form; URL and media-placeholder rules match raw text.
func Normalize(text string) string {
	t := strings.ToLower(text)
	t = mentionRe.ReplaceAllString(t, "")
	t = punctRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

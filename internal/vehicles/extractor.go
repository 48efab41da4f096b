package vehicles

import (
	"regexp"
	"sort"
	"strings"
)

// Surface patterns for plate-like tokens, applied independently to raw text.
var platePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}\b`),                         // standalone 4-digit number
	regexp.MustCompile(`(?i)\bKA[A-Z0-9]*\b`),               // KA-prefixed token
	regexp.MustCompile(`(?i)[A-Z]{2}\d{1,2}[A-Z]{0,2}\d{3,4}`), // generic plate shape
}

// Extract returns the set of candidate vehicle identifiers in text, each
// upper-cased. Matches from all patterns are unioned; duplicates collapse.
// The slice is sorted so callers see a deterministic order.
func Extract(text string) []string {
	set := make(map[string]struct{})
	for _, re := range platePatterns {
		for _, m := range re.FindAllString(text, -1) {
			set[strings.ToUpper(m)] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

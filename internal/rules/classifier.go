// Package rules maps raw message text to an alert category through a fixed
// precedence table. Classification is pure: no state, first match wins.
package rules

import (
	"gatewatch/internal/models"
	"regexp"
	"strings"
)

var (
	rescueRe = regexp.MustCompile(`\brescue needed\b`)
	mapRe    = regexp.MustCompile(`(?i)https?://(maps\.app\.goo\.gl|maps\.google\.com|goo\.gl/maps)/`)

	escalationWords = compileWords("missing", "lost", "waiting", "very long", "support", "help")
	paymentWords    = compileWords("allowance", "travel", "petty cash")
	qrWord          = regexp.MustCompile(`\bqr\b`)
)

func compileWords(words ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		res = append(res, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return res
}

func anyWord(norm string, words []*regexp.Regexp) bool {
	for _, re := range words {
		if re.MatchString(norm) {
			return true
		}
	}
	return false
}

// rule is one row of the precedence table. raw is the message text as-is,
// norm its normalized form.
type rule struct {
	match func(raw, norm string) bool
	typ   models.AlertType
}

var ruleTable = []rule{
	{
		match: func(raw, norm string) bool {
			return rescueRe.MatchString(norm) || mapRe.MatchString(raw)
		},
		typ: models.AlertRescueNeeded,
	},
	{
		match: func(raw, norm string) bool {
			return strings.TrimSpace(raw) == "[Audio]" || anyWord(norm, escalationWords)
		},
		typ: models.AlertEscalation,
	},
	{
		match: func(raw, norm string) bool {
			if anyWord(norm, paymentWords) {
				return true
			}
			return strings.Contains(raw, "[Image]") && qrWord.MatchString(norm)
		},
		typ: models.AlertPaymentRequest,
	},
}

// Classify returns the first matching alert category for text, or false when
// no rule applies. A message receives at most one category.
func Classify(text string) (models.AlertType, bool) {
	norm := Normalize(text)
	for _, r := range ruleTable {
		if r.match(text, norm) {
			return r.typ, true
		}
	}
	return "", false
}

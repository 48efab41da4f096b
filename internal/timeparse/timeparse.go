// Package timeparse converts the scraper's loosely formatted time fields
// into instants. It only reports failure; the fallback-to-now policy belongs
// to the caller.
package timeparse

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var ErrUnrecognized = errors.New("unrecognized timestamp format")

var bracketRe = regexp.MustCompile(`\[(.*?)\]`)

// Layouts tried in order against the bracketed segment (or the whole string
// when no brackets are present). Day and month are unpadded in the source.
var layouts = []string{
	"15:04, 2/1/2006",
	"15:04, 2/1/06",
	"2/1/2006, 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Comma-split retry layouts, applied to "<part0> <part1>".
var splitLayouts = []string{
	"15:04 2/1/2006",
	"15:04 2/1/06",
}

// Parse extracts the bracketed segment of raw if present and attempts each
// known layout. It never substitutes a wall-clock value on failure.
func Parse(raw string) (time.Time, error) {
	timestr := strings.TrimSpace(raw)
	if m := bracketRe.FindStringSubmatch(raw); m != nil {
		timestr = strings.TrimSpace(m[1])
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, timestr); err == nil {
			return t, nil
		}
	}

	if strings.Contains(timestr, ",") {
		parts := strings.SplitN(timestr, ",", 2)
		joined := strings.TrimSpace(parts[0]) + " " + strings.TrimSpace(parts[1])
		for _, layout := range splitLayouts {
			if t, err := time.Parse(layout, joined); err == nil {
				return t, nil
			}
		}
	}

	return time.Time{}, ErrUnrecognized
}

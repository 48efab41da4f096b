package models

import "time"

// VehicleEvent is one line of the vehicle-events JSONL sink, written once per
// completed entry→exit pairing. Times are the raw strings from the source
// messages, not parsed instants.
type VehicleEvent struct {
	Vehicle   string `json:"vehicle"`
	EntryTime string `json:"entry_time"`
	ExitTime  string `json:"exit_time"`
}

// ActiveEntry is the tracker's in-flight record for a vehicle that has an
// entry sighting but no exit yet. EntryAt is the parsed instant, or the
// wall-clock fallback when the raw string was unparseable.
type ActiveEntry struct {
	EntryTimeRaw string    `json:"entry_time_raw"`
	EntryAt      time.Time `json:"entry_at"`
}

package models

// Message is one entry of a scraped per-chat log file. The scraper rewrites
// each file as a whole JSON array in chronological order, so the same message
// is observed again on every change notification.
type Message struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

// DedupKey identifies a logically-seen message instance purely by content.
// There is no upstream message id, so two real-world messages with identical
// group/time/text collapse into one. That is accepted behavior inherited from
// the scraper's output format, not something to compensate for here.
type DedupKey struct {
	Group string
	Time  string
	Text  string
}

package ingest

import (
	"gatewatch/internal/models"
	"sync"
)

// Ledger is the dedup set of already-processed messages. Membership implies
// the message has produced its classification and extraction side effects.
// It grows monotonically; chat files are small enough that it never shrinks.
type Ledger struct {
	mu   sync.Mutex
	seen map[models.DedupKey]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{seen: make(map[models.DedupKey]struct{})}
}

func (l *Ledger) Seen(key models.DedupKey) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[key]
	return ok
}

func (l *Ledger) Mark(key models.DedupKey) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen[key] = struct{}{}
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}

// Snapshot copies all seen keys for persistence.
func (l *Ledger) Snapshot() []models.DedupKey {
	l.mu.Lock()
	defer l.mu.Unlock()

	keys := make([]models.DedupKey, 0, len(l.seen))
	for k := range l.seen {
		keys = append(keys, k)
	}
	return keys
}

// Restore replaces the ledger content from a persisted snapshot.
func (l *Ledger) Restore(keys []models.DedupKey) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seen = make(map[models.DedupKey]struct{}, len(keys))
	for _, k := range keys {
		l.seen[k] = struct{}{}
	}
}

package vehicles

import (
	"fmt"
	"gatewatch/internal/models"
	"gatewatch/internal/providers"
	"gatewatch/internal/timeparse"
	"sort"
	"sync"
	"time"
)

// Tracker owns the entry/exit state machine. A vehicle identifier is either
// absent or has exactly one active entry; the first sighting opens an entry,
// the second closes it and emits a VehicleEvent. A sweep flags entries older
// than a threshold once per entry period.
//
// All mutation happens on the ingestion worker; the mutex exists because the
// HTTP surface reads active entries concurrently.
type Tracker struct {
	mu      sync.Mutex
	active  map[string]*models.ActiveEntry
	alerted map[string]struct{}
	clock   func() time.Time
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewTracker(logger providers.Logger, metrics providers.MetricsProviderInterface) *Tracker {
	return &Tracker{
		active:  make(map[string]*models.ActiveEntry),
		alerted: make(map[string]struct{}),
		clock:   time.Now,
		logger:  logger,
		metrics: metrics,
	}
}

// Sighting records one mention of vehicle at timeField. The first sighting
// opens an active entry and returns nothing; the second returns the completed
// VehicleEvent and resets the identifier to absent. An unparseable timeField
// on entry falls back to wall-clock now with a warning — the entry must still
// carry an instant so later sweeps can age it.
func (t *Tracker) Sighting(vehicle, timeField string) (*models.VehicleEvent, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, inside := t.active[vehicle]
	if !inside {
		entryAt, err := timeparse.Parse(timeField)
		if err != nil {
			entryAt = t.clock()
			t.logger.Warnf(providers.TypeTracker, "Could not parse time %q — using now() for vehicle %s", timeField, vehicle)
			t.metrics.IncTimestampFallbacks()
		}
		t.active[vehicle] = &models.ActiveEntry{
			EntryTimeRaw: timeField,
			EntryAt:      entryAt,
		}
		// A fresh entry period may be alerted again later.
		delete(t.alerted, vehicle)
		t.metrics.SetActiveVehicles(len(t.active))
		t.logger.Infof(providers.TypeTracker, "[ENTRY] Vehicle %s at %s", vehicle, timeField)
		return nil, false
	}

	event := &models.VehicleEvent{
		Vehicle:   vehicle,
		EntryTime: entry.EntryTimeRaw,
		ExitTime:  timeField,
	}
	delete(t.active, vehicle)
	delete(t.alerted, vehicle)
	t.metrics.SetActiveVehicles(len(t.active))
	t.logger.Infof(providers.TypeTracker, "[EXIT] Vehicle %s at %s (entered at %s)", vehicle, timeField, entry.EntryTimeRaw)
	return event, true
}

// Sweep returns one staleness alert for every active entry older than
// threshold that has not been alerted during its current entry period.
// Exited vehicles can never be flagged: Sighting removes them from both maps
// before any later sweep runs.
func (t *Tracker) Sweep(now time.Time, threshold time.Duration) []models.AlertRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	var alerts []models.AlertRecord
	for vehicle, entry := range t.active {
		if entry.EntryAt.IsZero() {
			continue
		}
		if _, done := t.alerted[vehicle]; done {
			continue
		}
		if now.Sub(entry.EntryAt) <= threshold {
			continue
		}

		alerts = append(alerts, models.AlertRecord{
			Group:  "vehicle_watch",
			Time:   now.Format("15:04, 02/01/2006"),
			Sender: "system",
			Text: fmt.Sprintf("Vehicle %s entered at %s but has no recorded exit after %d hours.",
				vehicle, entry.EntryTimeRaw, int(threshold.Hours())),
			AlertType: models.AlertNoExit,
		})
		t.alerted[vehicle] = struct{}{}
		t.logger.Warnf(providers.TypeTracker, "[No Exit] Vehicle %s (entered %s)", vehicle, entry.EntryTimeRaw)
	}

	sort.Slice(alerts, func(i, j int) bool { return alerts[i].Text < alerts[j].Text })
	return alerts
}

// ActiveVehicle is the HTTP-facing view of one in-flight entry.
type ActiveVehicle struct {
	Vehicle   string `json:"vehicle"`
	EntryTime string `json:"entry_time"`
	AgeHours  float64 `json:"age_hours"`
}

func (t *Tracker) ActiveVehicles() []ActiveVehicle {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	out := make([]ActiveVehicle, 0, len(t.active))
	for vehicle, entry := range t.active {
		out = append(out, ActiveVehicle{
			Vehicle:   vehicle,
			EntryTime: entry.EntryTimeRaw,
			AgeHours:  now.Sub(entry.EntryAt).Hours(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Vehicle < out[j].Vehicle })
	return out
}

func (t *Tracker) ActiveCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

// Snapshot copies the tracker state for persistence.
func (t *Tracker) Snapshot() (map[string]*models.ActiveEntry, []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	active := make(map[string]*models.ActiveEntry, len(t.active))
	for v, e := range t.active {
		copied := *e
		active[v] = &copied
	}
	alerted := make([]string, 0, len(t.alerted))
	for v := range t.alerted {
		alerted = append(alerted, v)
	}
	sort.Strings(alerted)
	return active, alerted
}

// Restore replaces the tracker state from a persisted snapshot.
func (t *Tracker) Restore(active map[string]*models.ActiveEntry, alerted []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = make(map[string]*models.ActiveEntry, len(active))
	for v, e := range active {
		copied := *e
		t.active[v] = &copied
	}
	t.alerted = make(map[string]struct{}, len(alerted))
	for _, v := range alerted {
		t.alerted[v] = struct{}{}
	}
	t.metrics.SetActiveVehicles(len(t.active))
}

// SetClock overrides the wall-clock source. Test hook.
func (t *Tracker) SetClock(clock func() time.Time) {
	t.clock = clock
}

package testutil

import (
	"gatewatch/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns the number of recorded entries at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                 sync.Mutex
	Requests           int
	Messages           int
	Duplicates         int
	Alerts             map[string]int
	VehicleEvents      int
	ActiveVehicles     int
	FileLoadFailures   int
	SinkWriteFailures  map[string]int
	TimestampFallbacks int
	CacheHits          int
	CacheMisses        int
	Sweeps             int
	Persists           int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Alerts:            make(map[string]int),
		SinkWriteFailures: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncMessagesProcessed(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages++
}

func (m *MockMetrics) IncDuplicatesSkipped(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duplicates++
}

func (m *MockMetrics) IncAlertsEmitted(alertType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Alerts[alertType]++
}

func (m *MockMetrics) IncVehicleEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VehicleEvents++
}

func (m *MockMetrics) SetActiveVehicles(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ActiveVehicles = count
}

func (m *MockMetrics) IncFileLoadFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FileLoadFailures++
}

func (m *MockMetrics) IncSinkWriteFailures(sink string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SinkWriteFailures[sink]++
}

func (m *MockMetrics) IncTimestampFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TimestampFallbacks++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObserveSweepDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sweeps++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

// MockSink records appended records and optionally fails.
type MockSink struct {
	mu      sync.Mutex
	Records []any
	Err     error
}

func (m *MockSink) Append(record any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Records = append(m.Records, record)
	return nil
}

func (m *MockSink) Close() error { return nil }

func (m *MockSink) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records)
}

package services

import (
	"sync"
	"time"
)

// RunStats is a point-in-time view of the pipeline counters, served by the
// HTTP surface. Prometheus remains the long-term store; this exists so the
// API works with metrics disabled.
type RunStats struct {
	StartedAt     time.Time        `json:"started_at"`
	Messages      int64            `json:"messages_processed"`
	Duplicates    int64            `json:"duplicates_skipped"`
	Alerts        map[string]int64 `json:"alerts_by_type"`
	VehicleEvents int64            `json:"vehicle_events"`
	FilesSkipped  int64            `json:"files_skipped"`
}

type WatchStatsInterface interface {
	RecordMessage()
	RecordDuplicate()
	RecordAlert(alertType string)
	RecordVehicleEvent()
	RecordFileSkipped()
	Snapshot() RunStats
}

type WatchStatsService struct {
	mu            sync.Mutex
	startedAt     time.Time
	messages      int64
	duplicates    int64
	alerts        map[string]int64
	vehicleEvents int64
	filesSkipped  int64
}

func NewWatchStatsService() WatchStatsInterface {
	return &WatchStatsService{
		startedAt: time.Now(),
		alerts:    make(map[string]int64),
	}
}

func (ws *WatchStatsService) RecordMessage() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.messages++
}

func (ws *WatchStatsService) RecordDuplicate() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.duplicates++
}

func (ws *WatchStatsService) RecordAlert(alertType string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.alerts[alertType]++
}

func (ws *WatchStatsService) RecordVehicleEvent() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.vehicleEvents++
}

func (ws *WatchStatsService) RecordFileSkipped() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.filesSkipped++
}

func (ws *WatchStatsService) Snapshot() RunStats {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	alerts := make(map[string]int64, len(ws.alerts))
	for k, v := range ws.alerts {
		alerts[k] = v
	}
	return RunStats{
		StartedAt:     ws.startedAt,
		Messages:      ws.messages,
		Duplicates:    ws.duplicates,
		Alerts:        alerts,
		VehicleEvents: ws.vehicleEvents,
		FilesSkipped:  ws.filesSkipped,
	}
}

package controllers

import (
	"fmt"
	"gatewatch/internal/ingest"
	"gatewatch/internal/vehicles"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	ledger    *ingest.Ledger
	tracker   *vehicles.Tracker
	startTime time.Time
}

type healthResponse struct {
	Status         string  `json:"status"`
	Uptime         string  `json:"uptime"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	SeenMessages   int     `json:"seen_messages"`
	ActiveVehicles int     `json:"active_vehicles"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:         "ok",
		Uptime:         formatDuration(uptime),
		UptimeSeconds:  uptime.Seconds(),
		SeenMessages:   hc.ledger.Len(),
		ActiveVehicles: hc.tracker.ActiveCount(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(ledger *ingest.Ledger, tracker *vehicles.Tracker) *HealthController {
	return &HealthController{
		ledger:    ledger,
		tracker:   tracker,
		startTime: time.Now(),
	}
}

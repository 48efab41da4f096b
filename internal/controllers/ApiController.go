package controllers

import (
	"gatewatch/internal/providers"
	"gatewatch/internal/services"
	"gatewatch/internal/vehicles"
	"net/http"

	json "github.com/goccy/go-json"
)

// ApiController serves the read-only observation endpoints. It never mutates
// pipeline state; the ingestion worker remains the sole writer.
type ApiController struct {
	logger  providers.Logger
	stats   services.WatchStatsInterface
	tracker *vehicles.Tracker
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, stats services.WatchStatsInterface, tracker *vehicles.Tracker, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		stats:   stats,
		tracker: tracker,
		cache:   cache,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetActiveVehicles lists vehicles currently inside (entry without exit).
func (ac *ApiController) GetActiveVehicles(w http.ResponseWriter, _ *http.Request) {
	ac.serveFromCacheOrCompute(w, "vehicles:active", func() (any, error) {
		return ac.tracker.ActiveVehicles(), nil
	})
}

// GetStats returns the run counters since process start.
func (ac *ApiController) GetStats(w http.ResponseWriter, _ *http.Request) {
	ac.serveFromCacheOrCompute(w, "stats:run", func() (any, error) {
		return ac.stats.Snapshot(), nil
	})
}

// Package ingest owns the file ingestion path: it watches a directory of
// per-chat JSON logs, deduplicates messages, runs classification and vehicle
// extraction, and appends the derived records to two JSONL sinks.
//
// All state mutation is serialized through a single worker goroutine that
// consumes tagged events (file change, poll tick, sweep tick, persist tick).
// The fsnotify pump and the tickers only enqueue; they never touch the
// ledger, the tracker or the sinks.
package ingest

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"gatewatch/internal/ingest/interfaces"
	"gatewatch/internal/models"
	"gatewatch/internal/providers"
	"gatewatch/internal/rules"
	"gatewatch/internal/services"
	"gatewatch/internal/structures"
	"gatewatch/internal/vehicles"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	json "github.com/goccy/go-json"
)

type eventKind int

const (
	eventFileChanged eventKind = iota
	eventPollTick
	eventSweepTick
	eventPersistTick
)

type event struct {
	kind eventKind
	path string
}

const eventQueueSize = 256

type Loop struct {
	config       *structures.Config
	logger       providers.Logger
	metrics      providers.MetricsProviderInterface
	cache        providers.CacheProviderInterface
	stats        services.WatchStatsInterface
	ledger       *Ledger
	tracker      *vehicles.Tracker
	fileManager  *FileManager
	alertsSink   SinkInterface
	vehiclesSink SinkInterface

	events  chan event
	errs    chan error
	quit    chan struct{}
	wg      sync.WaitGroup
	watcher *fsnotify.Watcher
	opsMu   sync.Mutex
}

func NewLoop(
	config *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	cache providers.CacheProviderInterface,
	stats services.WatchStatsInterface,
	ledger *Ledger,
	tracker *vehicles.Tracker,
	fileManager *FileManager,
) (interfaces.LoopInterface, error) {
	alertsSink, err := NewJsonlSink(config.Sinks.AlertsPath)
	if err != nil {
		return nil, err
	}
	vehiclesSink, err := NewJsonlSink(config.Sinks.VehiclesPath)
	if err != nil {
		alertsSink.Close()
		return nil, err
	}

	return &Loop{
		config:       config,
		logger:       logger,
		metrics:      metrics,
		cache:        cache,
		stats:        stats,
		ledger:       ledger,
		tracker:      tracker,
		fileManager:  fileManager,
		alertsSink:   alertsSink,
		vehiclesSink: vehiclesSink,
		events:       make(chan event, eventQueueSize),
		errs:         make(chan error, 1),
		quit:         make(chan struct{}),
	}, nil
}

// Init starts the watcher, the tickers and the worker. It fails fast when the
// watched directory cannot be observed; a watch failure at runtime is
// delivered on Errors instead of being swallowed.
func (l *Loop) Init() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	if err := watcher.Add(l.config.Watch.Dir); err != nil {
		watcher.Close()
		return fmt.Errorf("cannot watch %s: %w", l.config.Watch.Dir, err)
	}
	l.watcher = watcher

	l.logger.Infof(providers.TypeIngest, "Watching %s for chat log changes", l.config.Watch.Dir)

	l.wg.Add(2)
	go l.watchPump()
	go l.worker()

	l.startTicker(l.config.Watch.PollInterval, eventPollTick)
	l.startTicker(l.config.Tracker.SweepInterval, eventSweepTick)
	if l.config.Persistence.Enabled && l.config.Persistence.SaveInterval > 0 {
		l.startTicker(l.config.Persistence.SaveInterval, eventPersistTick)
	}

	return nil
}

func (l *Loop) startTicker(interval time.Duration, kind eventKind) {
	ticker := time.NewTicker(interval)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.enqueue(event{kind: kind})
			case <-l.quit:
				return
			}
		}
	}()
}

// watchPump forwards file-change notifications into the event queue. Watcher
// errors are fatal to the loop per the error policy: they surface on Errors
// rather than stopping silently.
func (l *Loop) watchPump() {
	defer l.wg.Done()
	for {
		select {
		case ev, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isChatLog(ev.Name) {
				continue
			}
			l.enqueue(event{kind: eventFileChanged, path: ev.Name})
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			select {
			case l.errs <- fmt.Errorf("watch mechanism failed: %w", err):
			default:
			}
			return
		case <-l.quit:
			return
		}
	}
}

func (l *Loop) enqueue(ev event) {
	select {
	case l.events <- ev:
	case <-l.quit:
	}
}

// worker is the single thread of control for the ingestion path. Each event
// is handled to completion before the next one starts, and before shutdown
// proceeds.
func (l *Loop) worker() {
	defer l.wg.Done()
	for {
		select {
		case ev := <-l.events:
			l.handle(ev)
		case <-l.quit:
			return
		}
	}
}

func (l *Loop) handle(ev event) {
	switch ev.kind {
	case eventFileChanged:
		l.processFile(ev.path)
	case eventPollTick:
		l.scanDir()
	case eventSweepTick:
		l.sweep()
	case eventPersistTick:
		if err := l.Persist(); err != nil {
			l.logger.Errorf(providers.TypeIngest, "Error while persisting state: %s", err)
		}
	}
}

func isChatLog(path string) bool {
	return strings.HasSuffix(filepath.Base(path), ".json")
}

// scanDir enqueues nothing: it runs on the worker and processes every chat
// log directly. The digest cache keeps rescans of unchanged files cheap.
func (l *Loop) scanDir() {
	entries, err := os.ReadDir(l.config.Watch.Dir)
	if err != nil {
		l.logger.Errorf(providers.TypeIngest, "Cannot scan %s: %s", l.config.Watch.Dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isChatLog(entry.Name()) {
			continue
		}
		l.processFile(filepath.Join(l.config.Watch.Dir, entry.Name()))
	}
}

// processFile re-reads the whole message array and feeds every unseen
// message through classification and vehicle extraction, in array order.
// A file that fails to load or decode is skipped entirely: no partial
// processing, no state mutation.
func (l *Loop) processFile(path string) {
	if !isChatLog(path) {
		return
	}
	group := strings.TrimSuffix(filepath.Base(path), ".json")

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Errorf(providers.TypeIngest, "Failed to load %s: %s", path, err)
		l.metrics.IncFileLoadFailures()
		l.stats.RecordFileSkipped()
		return
	}

	digest := sha256.Sum256(data)
	cacheKey := "file:" + path
	if cached, ok := l.cache.Get(cacheKey); ok && bytes.Equal(cached, digest[:]) {
		l.metrics.IncCacheHits()
		return
	}
	l.metrics.IncCacheMisses()

	var messages []models.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		l.logger.Errorf(providers.TypeIngest, "Failed to parse %s: %s", path, err)
		l.metrics.IncFileLoadFailures()
		l.stats.RecordFileSkipped()
		return
	}

	for _, msg := range messages {
		l.processMessage(group, msg)
	}

	l.cache.Set(cacheKey, digest[:])
}

func (l *Loop) processMessage(group string, msg models.Message) {
	key := models.DedupKey{Group: group, Time: msg.Time, Text: msg.Text}
	if l.ledger.Seen(key) {
		l.metrics.IncDuplicatesSkipped(group)
		l.stats.RecordDuplicate()
		return
	}
	l.ledger.Mark(key)
	l.metrics.IncMessagesProcessed(group)
	l.stats.RecordMessage()

	if alertType, ok := rules.Classify(msg.Text); ok {
		l.appendAlert(models.AlertRecord{
			Group:     group,
			Time:      msg.Time,
			Sender:    models.ExtractSender(msg.Time),
			Text:      msg.Text,
			AlertType: alertType,
		})
	}

	for _, vehicle := range vehicles.Extract(msg.Text) {
		vehicleEvent, done := l.tracker.Sighting(vehicle, msg.Time)
		if !done {
			continue
		}
		if err := l.vehiclesSink.Append(vehicleEvent); err != nil {
			// Dropped, not retried: the message is already marked seen and
			// the tracker transition stands.
			l.logger.Errorf(providers.TypeIngest, "Failed writing vehicle record: %s", err)
			l.metrics.IncSinkWriteFailures("vehicles")
			continue
		}
		l.metrics.IncVehicleEvents()
		l.stats.RecordVehicleEvent()
	}
}

func (l *Loop) appendAlert(record models.AlertRecord) {
	if err := l.alertsSink.Append(record); err != nil {
		l.logger.Errorf(providers.TypeIngest, "Failed writing alert: %s", err)
		l.metrics.IncSinkWriteFailures("alerts")
		return
	}
	l.metrics.IncAlertsEmitted(string(record.AlertType))
	l.stats.RecordAlert(string(record.AlertType))
	l.logger.Infof(providers.TypeIngest, "[%s] in %q by %s at %s", record.AlertType, record.Group, record.Sender, record.Time)
}

// sweep is the timer-driven path into the tracker. It bypasses the ledger:
// staleness alerts are synthesized, not derived from messages.
func (l *Loop) sweep() {
	start := time.Now()
	for _, alert := range l.tracker.Sweep(start, l.config.Tracker.StaleThreshold) {
		l.appendAlert(alert)
	}
	l.metrics.ObserveSweepDuration(time.Since(start))
}

// Stop stops accepting new events after the current one completes. In-memory
// state stays untouched; App decides whether to persist afterwards.
func (l *Loop) Stop() {
	close(l.quit)
	if l.watcher != nil {
		l.watcher.Close()
	}
	l.wg.Wait()
	if err := l.alertsSink.Close(); err != nil {
		l.logger.Errorf(providers.TypeIngest, "Error closing alerts sink: %s", err)
	}
	if err := l.vehiclesSink.Close(); err != nil {
		l.logger.Errorf(providers.TypeIngest, "Error closing vehicles sink: %s", err)
	}
}

func (l *Loop) Restore() error {
	if !l.config.Persistence.Enabled {
		return nil
	}
	return l.fileManager.LoadFromFile(l.config.Persistence.FilePath)
}

func (l *Loop) Persist() error {
	if !l.config.Persistence.Enabled {
		return nil
	}

	l.opsMu.Lock()
	defer l.opsMu.Unlock()

	start := time.Now()
	err := l.fileManager.SaveToFile(l.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	l.metrics.ObservePersistenceDuration(time.Since(start))
	l.logger.Infof(providers.TypeIngest, "Persisted state to file %s", l.config.Persistence.FilePath)
	return nil
}

func (l *Loop) Errors() <-chan error {
	return l.errs
}

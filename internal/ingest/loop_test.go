package ingest

import (
	"gatewatch/internal/models"
	"gatewatch/internal/providers"
	"gatewatch/internal/services"
	"gatewatch/internal/structures"
	"gatewatch/internal/testutil"
	"gatewatch/internal/vehicles"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loopFixture struct {
	loop    *Loop
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
	ledger  *Ledger
	tracker *vehicles.Tracker
	watch   string
	conf    *structures.Config
}

func newLoopFixture(t *testing.T, cacheEnabled bool) *loopFixture {
	t.Helper()

	watchDir := t.TempDir()
	sinkDir := t.TempDir()
	conf := &structures.Config{
		Watch: structures.WatchConfig{
			Dir:          watchDir,
			PollInterval: time.Second,
		},
		Sinks: structures.SinksConfig{
			AlertsPath:   filepath.Join(sinkDir, "alerts.jsonl"),
			VehiclesPath: filepath.Join(sinkDir, "vehicles.jsonl"),
		},
		Tracker: structures.TrackerConfig{
			SweepInterval:  time.Second,
			StaleThreshold: 24 * time.Hour,
		},
		Cache: structures.CacheConfig{
			Enabled: cacheEnabled,
			Size:    1,
		},
	}

	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	ledger := NewLedger()
	tracker := vehicles.NewTracker(logger, metrics)
	stats := services.NewWatchStatsService()
	cache := providers.NewCacheProvider(conf, logger)

	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	fileManager := NewFileManager(compressor, ledger, tracker, logger)

	li, err := NewLoop(conf, logger, metrics, cache, stats, ledger, tracker, fileManager)
	require.NoError(t, err)
	loop := li.(*Loop)
	t.Cleanup(func() {
		loop.alertsSink.Close()
		loop.vehiclesSink.Close()
	})

	return &loopFixture{
		loop:    loop,
		logger:  logger,
		metrics: metrics,
		ledger:  ledger,
		tracker: tracker,
		watch:   watchDir,
		conf:    conf,
	}
}

func (f *loopFixture) writeChatLog(t *testing.T, group string, messages []models.Message) string {
	t.Helper()
	data, err := json.Marshal(messages)
	require.NoError(t, err)
	path := filepath.Join(f.watch, group+".json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return strings.Count(string(data), "\n")
}

func TestProcessFile_EmitsAlertsAndVehicleEvents(t *testing.T) {
	f := newLoopFixture(t, false)
	path := f.writeChatLog(t, "Ops Team", []models.Message{
		{Time: "[11:32, 27/8/2025] Ayush:", Text: "rescue needed at gate 2"},
		{Time: "[11:40, 27/8/2025] Priya:", Text: "KA05HH1234 entered"},
		{Time: "[15:10, 27/8/2025] Priya:", Text: "KA05HH1234 left"},
		{Time: "[15:15, 27/8/2025] Desk:", Text: "all clear"},
	})

	f.loop.processFile(path)

	assert.Equal(t, 1, countLines(t, f.conf.Sinks.AlertsPath))
	assert.Equal(t, 1, countLines(t, f.conf.Sinks.VehiclesPath))
	assert.Equal(t, 4, f.ledger.Len())
	assert.Equal(t, 0, f.tracker.ActiveCount())

	data, err := os.ReadFile(f.conf.Sinks.AlertsPath)
	require.NoError(t, err)
	var alert models.AlertRecord
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &alert))
	assert.Equal(t, models.AlertRescueNeeded, alert.AlertType)
	assert.Equal(t, "Ops Team", alert.Group)
	assert.Equal(t, "Ayush", alert.Sender)

	vdata, err := os.ReadFile(f.conf.Sinks.VehiclesPath)
	require.NoError(t, err)
	var event models.VehicleEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(vdata))), &event))
	assert.Equal(t, "KA05HH1234", event.Vehicle)
	assert.Equal(t, "[11:40, 27/8/2025] Priya:", event.EntryTime)
	assert.Equal(t, "[15:10, 27/8/2025] Priya:", event.ExitTime)
}

func TestProcessFile_SecondIngestionIsIdempotent(t *testing.T) {
	f := newLoopFixture(t, false)
	path := f.writeChatLog(t, "Ops Team", []models.Message{
		{Time: "[11:32, 27/8/2025] Ayush:", Text: "please send allowance for travel"},
		{Time: "[11:40, 27/8/2025] Priya:", Text: "truck 4321 in"},
	})

	f.loop.processFile(path)
	alertsBefore := countLines(t, f.conf.Sinks.AlertsPath)
	vehiclesBefore := countLines(t, f.conf.Sinks.VehiclesPath)

	f.loop.processFile(path)

	assert.Equal(t, alertsBefore, countLines(t, f.conf.Sinks.AlertsPath))
	assert.Equal(t, vehiclesBefore, countLines(t, f.conf.Sinks.VehiclesPath))
	assert.Equal(t, 2, f.metrics.Duplicates)
	// The active entry must not have been flipped to an exit by the rescan.
	assert.Equal(t, 1, f.tracker.ActiveCount())
}

func TestProcessFile_AppendedMessagesOnlyProcessedOnce(t *testing.T) {
	f := newLoopFixture(t, false)
	messages := []models.Message{
		{Time: "[11:40, 27/8/2025] Priya:", Text: "truck 4321 in"},
	}
	path := f.writeChatLog(t, "Ops Team", messages)
	f.loop.processFile(path)

	// The scraper rewrites the whole array with one new message at the end.
	messages = append(messages, models.Message{Time: "[12:40, 27/8/2025] Priya:", Text: "truck 4321 out"})
	f.writeChatLog(t, "Ops Team", messages)
	f.loop.processFile(path)

	assert.Equal(t, 1, countLines(t, f.conf.Sinks.VehiclesPath))
	assert.Equal(t, 0, f.tracker.ActiveCount())
	assert.Equal(t, 2, f.metrics.Messages)
}

func TestProcessFile_MalformedFileSkippedWithoutStateChange(t *testing.T) {
	f := newLoopFixture(t, false)
	path := filepath.Join(f.watch, "Broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	f.loop.processFile(path)

	assert.Equal(t, 0, f.ledger.Len())
	assert.Equal(t, 1, f.metrics.FileLoadFailures)
	assert.Equal(t, 0, countLines(t, f.conf.Sinks.AlertsPath))
}

func TestProcessFile_MissingFileSkipped(t *testing.T) {
	f := newLoopFixture(t, false)
	f.loop.processFile(filepath.Join(f.watch, "Gone.json"))
	assert.Equal(t, 1, f.metrics.FileLoadFailures)
}

func TestProcessFile_IgnoresNonJsonNames(t *testing.T) {
	f := newLoopFixture(t, false)
	path := filepath.Join(f.watch, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("irrelevant"), 0o644))

	f.loop.processFile(path)
	assert.Equal(t, 0, f.metrics.FileLoadFailures)
	assert.Equal(t, 0, f.ledger.Len())
}

func TestProcessFile_DigestCacheSkipsUnchangedFiles(t *testing.T) {
	f := newLoopFixture(t, true)
	path := f.writeChatLog(t, "Ops Team", []models.Message{
		{Time: "[11:32, 27/8/2025] Ayush:", Text: "hello there"},
	})

	f.loop.processFile(path)
	f.loop.processFile(path)

	assert.Equal(t, 1, f.metrics.CacheHits)
	assert.Equal(t, 1, f.metrics.CacheMisses)
	assert.Equal(t, 0, f.metrics.Duplicates)
}

func TestScanDir_ProcessesAllChatLogs(t *testing.T) {
	f := newLoopFixture(t, false)
	f.writeChatLog(t, "Ops A", []models.Message{
		{Time: "[11:32, 27/8/2025] A:", Text: "driver waiting for support"},
	})
	f.writeChatLog(t, "Ops B", []models.Message{
		{Time: "[11:33, 27/8/2025] B:", Text: "[Audio]"},
	})
	require.NoError(t, os.WriteFile(filepath.Join(f.watch, "skip.txt"), []byte("x"), 0o644))

	f.loop.scanDir()

	assert.Equal(t, 2, countLines(t, f.conf.Sinks.AlertsPath))
	assert.Equal(t, 2, f.metrics.Messages)
}

func TestSweep_AppendsStaleAlertToSink(t *testing.T) {
	f := newLoopFixture(t, false)
	old := time.Now().Add(-48 * time.Hour)
	timeField := old.Format("[15:04, 2/1/2006] Guard:")

	f.writeChatLog(t, "Gate", []models.Message{
		{Time: timeField, Text: "KA05HH1234 entered"},
	})
	f.loop.processFile(filepath.Join(f.watch, "Gate.json"))
	require.Equal(t, 1, f.tracker.ActiveCount())

	f.loop.sweep()
	assert.Equal(t, 1, countLines(t, f.conf.Sinks.AlertsPath))

	// Same entry period: a second sweep adds nothing.
	f.loop.sweep()
	assert.Equal(t, 1, countLines(t, f.conf.Sinks.AlertsPath))
}

func TestSinkFailure_DoesNotRollBackState(t *testing.T) {
	f := newLoopFixture(t, false)
	failing := &testutil.MockSink{Err: os.ErrPermission}
	f.loop.alertsSink = failing

	f.loop.processMessage("Ops", models.Message{
		Time: "[11:32, 27/8/2025] Ayush:", Text: "rescue needed",
	})

	// The record is dropped, but the message stays marked seen.
	assert.Equal(t, 1, f.ledger.Len())
	assert.Equal(t, 1, f.metrics.SinkWriteFailures["alerts"])

	f.loop.processMessage("Ops", models.Message{
		Time: "[11:32, 27/8/2025] Ayush:", Text: "rescue needed",
	})
	assert.Equal(t, 1, f.metrics.Duplicates)
}

func TestLoop_InitAndStop(t *testing.T) {
	f := newLoopFixture(t, false)

	require.NoError(t, f.loop.Init())
	f.loop.Stop()

	select {
	case err := <-f.loop.Errors():
		t.Fatalf("unexpected loop error: %s", err)
	default:
	}
}

func TestLoop_InitFailsOnMissingDir(t *testing.T) {
	f := newLoopFixture(t, false)
	f.conf.Watch.Dir = filepath.Join(f.watch, "does-not-exist")

	assert.Error(t, f.loop.Init())
}

func TestLoop_PersistAndRestoreRoundTrip(t *testing.T) {
	f := newLoopFixture(t, false)
	f.conf.Persistence = structures.Persistence{
		Enabled:  true,
		FilePath: filepath.Join(t.TempDir(), "state.dat"),
	}

	path := f.writeChatLog(t, "Gate", []models.Message{
		{Time: "[11:40, 27/8/2025] Priya:", Text: "KA05HH1234 entered"},
	})
	f.loop.processFile(path)
	require.NoError(t, f.loop.Persist())

	g := newLoopFixture(t, false)
	g.conf.Persistence = f.conf.Persistence
	require.NoError(t, g.loop.Restore())

	assert.Equal(t, 1, g.ledger.Len())
	assert.Equal(t, 1, g.tracker.ActiveCount())

	// The restored ledger still blocks the already-seen message, so the
	// sighting is not replayed as an exit.
	g.loop.processFile(g.writeChatLog(t, "Gate", []models.Message{
		{Time: "[11:40, 27/8/2025] Priya:", Text: "KA05HH1234 entered"},
	}))
	assert.Equal(t, 1, g.metrics.Duplicates)
	assert.Equal(t, 1, g.tracker.ActiveCount())
}

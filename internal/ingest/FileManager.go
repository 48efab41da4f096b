package ingest

import (
	"gatewatch/internal/ingest/interfaces"
	"gatewatch/internal/models"
	"gatewatch/internal/providers"
	"gatewatch/internal/vehicles"
	"os"

	json "github.com/goccy/go-json"
)

// snapshot is the on-disk state format: ledger keys plus tracker state,
// JSON-encoded and zstd-compressed. Restoring it gives best-effort
// continuity across restarts; losing it only means reprocessing.
type snapshot struct {
	Seen    []models.DedupKey              `json:"seen"`
	Active  map[string]*models.ActiveEntry `json:"active"`
	Alerted []string                       `json:"alerted"`
}

type FileManager struct {
	ledger     *Ledger
	tracker    *vehicles.Tracker
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, ledger *Ledger, tracker *vehicles.Tracker, logger providers.Logger) *FileManager {
	return &FileManager{
		ledger:     ledger,
		tracker:    tracker,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	active, alerted := f.tracker.Snapshot()
	snap := snapshot{
		Seen:    f.ledger.Snapshot(),
		Active:  active,
		Alerted: alerted,
	}

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(decompressedData, &snap); err != nil {
		f.logger.Warnf(providers.TypeApp, "Inconsistent snapshot found, starting with empty state: %s", err)
		return err
	}

	f.ledger.Restore(snap.Seen)
	if snap.Active == nil {
		snap.Active = make(map[string]*models.ActiveEntry)
	}
	f.tracker.Restore(snap.Active, snap.Alerted)
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

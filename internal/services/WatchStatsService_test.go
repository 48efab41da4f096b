package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchStatsService_Counters(t *testing.T) {
	ws := NewWatchStatsService()

	ws.RecordMessage()
	ws.RecordMessage()
	ws.RecordDuplicate()
	ws.RecordAlert("Escalation")
	ws.RecordAlert("Escalation")
	ws.RecordAlert("Rescue Needed")
	ws.RecordVehicleEvent()
	ws.RecordFileSkipped()

	snap := ws.Snapshot()
	assert.Equal(t, int64(2), snap.Messages)
	assert.Equal(t, int64(1), snap.Duplicates)
	assert.Equal(t, int64(2), snap.Alerts["Escalation"])
	assert.Equal(t, int64(1), snap.Alerts["Rescue Needed"])
	assert.Equal(t, int64(1), snap.VehicleEvents)
	assert.Equal(t, int64(1), snap.FilesSkipped)
	assert.False(t, snap.StartedAt.IsZero())
}

func TestWatchStatsService_SnapshotIsCopy(t *testing.T) {
	ws := NewWatchStatsService()
	ws.RecordAlert("Escalation")

	snap := ws.Snapshot()
	snap.Alerts["Escalation"] = 99

	assert.Equal(t, int64(1), ws.Snapshot().Alerts["Escalation"])
}

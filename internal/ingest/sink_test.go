package ingest

import (
	"gatewatch/internal/models"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonlSink_AppendsOneLinePerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.jsonl")
	sink, err := NewJsonlSink(path)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Append(models.AlertRecord{Group: "Ops", AlertType: models.AlertEscalation}))
	require.NoError(t, sink.Append(models.AlertRecord{Group: "Ops", AlertType: models.AlertPaymentRequest}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 2)

	var rec models.AlertRecord
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, models.AlertEscalation, rec.AlertType)
}

func TestJsonlSink_AppendsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicles.jsonl")

	sink, err := NewJsonlSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Append(models.VehicleEvent{Vehicle: "KA05HH1234"}))
	require.NoError(t, sink.Close())

	sink, err = NewJsonlSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Append(models.VehicleEvent{Vehicle: "4321"}))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestJsonlSink_PreservesNonAscii(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.jsonl")
	sink, err := NewJsonlSink(path)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Append(models.AlertRecord{Group: "Ops", Text: "गाड़ी missing"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "गाड़ी")
	assert.NotContains(t, string(data), `\u0`)
}

func TestJsonlSink_BadPath(t *testing.T) {
	_, err := NewJsonlSink("/nonexistent/dir/alerts.jsonl")
	assert.Error(t, err)
}

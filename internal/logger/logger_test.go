package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")
	_, err = New(Options{Format: "xml"})
	assert.ErrorContains(t, err, "unknown log format")
}

func TestJSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	l, err := New(Options{Level: "debug", Format: FormatJSON, OutputPaths: []string{path}})
	require.NoError(t, err)

	log := Logr(l).WithValues("run", "r-1")
	log.V(1).Info("improving timetable", "objective", 12)
	log.V(2).Info("too verbose")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "improving timetable", entry["msg"])
	assert.Equal(t, "r-1", entry["run"])
	assert.Equal(t, 12.0, entry["objective"])
	assert.Contains(t, entry, "timestamp")
}

func TestInfoLevelHidesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	l, err := New(Options{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	log := Logr(l)
	log.V(1).Info("hidden")
	log.Info("shown")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "INFO")
	assert.Contains(t, string(data), "shown")
}

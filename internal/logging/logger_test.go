package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger, closeFn, err := New(Options{Dir: dir, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("slide rendered", zap.Int("index", 3))
	logger.Warn("render failed", zap.String("renderer", "raster"))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "slide rendered")
	assert.Contains(t, string(data), "WARN")
	assert.Contains(t, string(data), "renderer")
}

func TestLevelFilters(t *testing.T) {
	dir := t.TempDir()
	logger, closeFn, err := New(Options{Dir: dir, Level: "warn"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Error("shown")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestBadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNoCoresIsNop(t *testing.T) {
	logger, closeFn, err := New(Options{})
	require.NoError(t, err)
	logger.Info("nowhere")
	assert.NoError(t, closeFn())
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, 10, cfg.Reflow.CompactThreshold)
	assert.Equal(t, 4096, cfg.IO.ChunkSize)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TERMFLOW_LOG_LEVEL", "debug")
	t.Setenv("TERMFLOW_COMPACT_THRESHOLD", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 25, cfg.Reflow.CompactThreshold)
	// Untouched settings keep their defaults.
	assert.Equal(t, 4096, cfg.IO.ChunkSize)
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	t.Setenv("TERMFLOW_COMPACT_THRESHOLD", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("TERMFLOW_CHUNK_SIZE", "not-a-number")

	cfg := LoadOrDefault()
	assert.Equal(t, 4096, cfg.IO.ChunkSize)
}

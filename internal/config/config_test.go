package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, 0.05, cfg.DecayRate)
	assert.Equal(t, 30, cfg.DecayDays)
	assert.Equal(t, time.Hour, cfg.ChainGap)
	assert.Equal(t, "0 * * * *", cfg.Schedule)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ATHENA_DB", "/tmp/custom.db")
	t.Setenv("ATHENA_DECAY_RATE", "0.2")
	t.Setenv("ATHENA_CHAIN_GAP", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, 0.2, cfg.DecayRate)
	assert.Equal(t, 30*time.Minute, cfg.ChainGap)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ATHENA_DECAY_RATE", "-1")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadSchedule(t *testing.T) {
	t.Setenv("ATHENA_SCHEDULE", "not a cron line")
	_, err := Load()
	assert.Error(t, err)
}

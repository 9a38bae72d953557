package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Freeeeeet/schedule_builder/internal/config"
	"github.com/Freeeeeet/schedule_builder/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadQuarters(t *testing.T) {
	quarters, err := loadQuarters(&config.Config{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultQuarters(), quarters)

	path := filepath.Join(t.TempDir(), "quarters.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quarters:\n  - value: Summer\n    label: Summer 2026\n"), 0o600))

	quarters, err = loadQuarters(&config.Config{QuartersFile: path})
	require.NoError(t, err)
	require.Len(t, quarters, 1)
	assert.Equal(t, "Summer", quarters[0].Value)

	_, err = loadQuarters(&config.Config{QuartersFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestNewFilter(t *testing.T) {
	f, err := newFilter(&config.Config{OverlapMode: "time_of_day"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, schedule.ModeTimeOfDay, f.Mode())

	_, err = newFilter(&config.Config{OverlapMode: "weekly"}, zap.NewNop())
	assert.Error(t, err)
}

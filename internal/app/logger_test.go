package app

import (
	"testing"

	"github.com/Freeeeeet/schedule_builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerConfig(t *testing.T) {
	prod := loggerConfig(&config.Config{Environment: "production"}, "schedule-api")
	assert.Equal(t, "json", prod.Encoding)
	assert.False(t, prod.Development)
	assert.Equal(t, "schedule-api", prod.InitialFields["service"])
	assert.Equal(t, "production", prod.InitialFields["environment"])

	dev := loggerConfig(&config.Config{Environment: "development"}, "schedule-bot")
	assert.Equal(t, "console", dev.Encoding)
	assert.True(t, dev.Development)
	assert.Equal(t, []string{"stdout"}, dev.OutputPaths)

	require.NotNil(t, NewLogger(&config.Config{Environment: "development"}, "test"))
}

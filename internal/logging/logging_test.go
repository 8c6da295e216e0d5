package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "ref", "U1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "ref=U1")
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Level(true, slog.LevelError))
	assert.Equal(t, slog.LevelError, Level(false, slog.LevelError))
}

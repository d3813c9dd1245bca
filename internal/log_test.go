package internal

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestLogger_LevelGate(t *testing.T) {
	buf := captureLog(t)

	logger := NewLogger("demo", LogLevelInfo)
	logger.Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	logger.Info("wrote %s", "eda.html")
	assert.Contains(t, buf.String(), "[demo] wrote eda.html")

	logger.Warn("skipping %s", "u-chart")
	assert.Contains(t, buf.String(), "[demo] WARN: skipping u-chart")
}

func TestLogger_DebugLevelShowsEverything(t *testing.T) {
	buf := captureLog(t)

	logger := NewLogger("demo", LogLevelDebug)
	logger.Debug("rendering %s", "spc.html")
	assert.Contains(t, buf.String(), "[demo] DEBUG: rendering spc.html")
}

func TestNewDefaultLogger_ReadsEnv(t *testing.T) {
	t.Setenv("REGVIZ_LOG_LEVEL", "ERROR")
	assert.Equal(t, LogLevelError, NewDefaultLogger("demo").GetLevel())

	t.Setenv("REGVIZ_LOG_LEVEL", "DEBUG")
	assert.Equal(t, LogLevelDebug, NewDefaultLogger("demo").GetLevel())

	t.Setenv("REGVIZ_LOG_LEVEL", "loud")
	assert.Equal(t, LogLevelInfo, NewDefaultLogger("demo").GetLevel())

	t.Setenv("REGVIZ_LOG_LEVEL", "")
	assert.Equal(t, LogLevelInfo, NewDefaultLogger("demo").GetLevel())
}

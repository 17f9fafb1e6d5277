package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsAndSource(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(slog.LevelInfo, &buf)

	Debugf("hidden %d", 1)
	Infof("shown %d", 2)
	Errorf("bad %s", "thing")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "bad thing")
	assert.Contains(t, out, "logger_test.go")
}

func TestDisabledTags(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(slog.LevelDebug, &buf, "Host")

	DebugTagf("host", "dropped")
	DebugTagf("ui", "kept")
	InfoTagf("HOST", "dropped too")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "tag=ui")
}

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel("WARN")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, l)
	_, ok = ParseLevel("loud")
	assert.False(t, ok)
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.log")
	require.NoError(t, Init(Config{LogLevel: "debug", LogFilePath: path}))
	Debugf("to file")
	require.NoError(t, Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "to file")

	assert.Error(t, Init(Config{LogLevel: "chatty"}))
}

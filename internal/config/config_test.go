package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CanvasBoard/internal/state"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[logger]
level = "debug"

[board]
max_history = 12
default_color = "#ff0000"
confirm_window = "1500ms"

[host]
port = 9000
mdns = false
colour = "oops"
`)
	cfg, warnings, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, 12, cfg.Board.MaxHistory)
	assert.Equal(t, state.Red, cfg.Board.Color())
	assert.Equal(t, 1500*time.Millisecond, cfg.Board.ConfirmDuration())
	assert.Equal(t, DefaultWindowWidth, cfg.Board.WindowWidth)
	assert.Equal(t, 9000, cfg.Host.Port)
	assert.False(t, cfg.Host.MDNS)
	assert.Equal(t, DefaultServiceName, cfg.Host.ServiceName)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "host.colour")
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, _, err := Load(missing, false)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)

	_, _, err = Load(missing, true)
	assert.Error(t, err)
}

func TestLoadBadFile(t *testing.T) {
	_, _, err := Load(writeConfig(t, "[board\nmax_history = "), true)
	assert.Error(t, err)

	_, _, err = Load(writeConfig(t, "[board]\nconfirm_window = \"soon\"\n"), true)
	assert.Error(t, err)
}

func TestValidateResetsBadValues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Board.MaxHistory = -1
	cfg.Board.DefaultColor = "purple"
	cfg.Host.Port = 70000
	cfg.Logger.LogLevel = "chatty"

	fixed := cfg.Validate()
	assert.Len(t, fixed, 4)
	assert.Equal(t, state.DefaultHistoryDepth, cfg.Board.MaxHistory)
	assert.Equal(t, state.Black, cfg.Board.Color())
	assert.Equal(t, DefaultPort, cfg.Host.Port)
	assert.Equal(t, "info", cfg.Logger.LogLevel)

	assert.Empty(t, NewDefaultConfig().Validate())
}

func TestFlagOverrides(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, f.Parse(fs, []string{
		"-loglevel", "warn", "-port", "7000", "-history", "5", "-no-mdns",
		"-log-disable-tags", "host, ui", "-serve",
	}))

	cfg := NewDefaultConfig()
	f.ApplyOverrides(cfg)
	assert.Equal(t, "warn", cfg.Logger.LogLevel)
	assert.Equal(t, 7000, cfg.Host.Port)
	assert.Equal(t, 5, cfg.Board.MaxHistory)
	assert.False(t, cfg.Host.MDNS)
	assert.Equal(t, []string{"host", "ui"}, cfg.Logger.DisabledTags)
	assert.True(t, f.Serve)

	path, explicit := f.ConfigPath()
	assert.False(t, explicit)
	assert.Equal(t, DefaultPath(), path)
}

func TestUnsetFlagsKeepFileValues(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, f.Parse(fs, []string{"-config", "x.toml"}))

	cfg := NewDefaultConfig()
	cfg.Host.Port = 1234
	f.ApplyOverrides(cfg)
	assert.Equal(t, 1234, cfg.Host.Port)
	assert.True(t, cfg.Host.MDNS)

	path, explicit := f.ConfigPath()
	assert.True(t, explicit)
	assert.Equal(t, "x.toml", path)
}

// Package config loads the board configuration from a TOML file and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"CanvasBoard/internal/logger"
	"CanvasBoard/internal/state"
)

const (
	AppName               = "canvasboard"
	DefaultConfigFileName = "config.toml"

	DefaultPort         = 8888
	DefaultServiceName  = "_canvasboard._tcp"
	DefaultWindowWidth  = 1024
	DefaultWindowHeight = 768
)

// Config is the combined application configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Board  BoardConfig   `toml:"board"`
	Host   HostConfig    `toml:"host"`
}

// BoardConfig holds document and window settings.
type BoardConfig struct {
	MaxHistory    int      `toml:"max_history"`
	DefaultColor  string   `toml:"default_color"`
	WindowWidth   int      `toml:"window_width"`
	WindowHeight  int      `toml:"window_height"`
	ConfirmWindow duration `toml:"confirm_window"`
}

// HostConfig holds settings for the headless websocket host.
type HostConfig struct {
	Port        int    `toml:"port"`
	MDNS        bool   `toml:"mdns"`
	ServiceName string `toml:"service_name"`
	Instance    string `toml:"instance"`
}

// duration decodes TOML strings such as "3s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// NewDefaultConfig returns the built-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel: "info",
		},
		Board: BoardConfig{
			MaxHistory:    state.DefaultHistoryDepth,
			DefaultColor:  state.Black.String(),
			WindowWidth:   DefaultWindowWidth,
			WindowHeight:  DefaultWindowHeight,
			ConfirmWindow: duration{3 * time.Second},
		},
		Host: HostConfig{
			Port:        DefaultPort,
			MDNS:        true,
			ServiceName: DefaultServiceName,
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/canvasboard/config.toml or the platform
// equivalent. It is empty when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// Load reads path over the defaults. A missing file is not an error when
// path is the default location. Unknown keys are returned as warnings.
func Load(path string, explicit bool) (*Config, []string, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		return cfg, nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil, nil
		}
		return nil, nil, fmt.Errorf("config file %s: %w", path, err)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	var warnings []string
	for _, key := range meta.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("unrecognized key %q", key.String()))
	}
	return cfg, warnings, nil
}

// Validate resets out-of-range values to their defaults and reports what it
// changed.
func (c *Config) Validate() []string {
	d := NewDefaultConfig()
	var fixed []string

	if c.Board.MaxHistory <= 0 {
		fixed = append(fixed, fmt.Sprintf("board.max_history %d reset to %d", c.Board.MaxHistory, d.Board.MaxHistory))
		c.Board.MaxHistory = d.Board.MaxHistory
	}
	if _, err := state.ParseColor(c.Board.DefaultColor); err != nil {
		fixed = append(fixed, fmt.Sprintf("board.default_color %q reset to %s", c.Board.DefaultColor, d.Board.DefaultColor))
		c.Board.DefaultColor = d.Board.DefaultColor
	}
	if c.Board.WindowWidth <= 0 || c.Board.WindowHeight <= 0 {
		c.Board.WindowWidth, c.Board.WindowHeight = d.Board.WindowWidth, d.Board.WindowHeight
		fixed = append(fixed, "board window size reset")
	}
	if c.Board.ConfirmWindow.Duration <= 0 {
		c.Board.ConfirmWindow = d.Board.ConfirmWindow
		fixed = append(fixed, "board.confirm_window reset")
	}
	if c.Host.Port <= 0 || c.Host.Port > 65535 {
		fixed = append(fixed, fmt.Sprintf("host.port %d reset to %d", c.Host.Port, d.Host.Port))
		c.Host.Port = d.Host.Port
	}
	if c.Host.ServiceName == "" {
		c.Host.ServiceName = d.Host.ServiceName
	}
	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		fixed = append(fixed, fmt.Sprintf("logger.level %q reset to %s", c.Logger.LogLevel, d.Logger.LogLevel))
		c.Logger.LogLevel = d.Logger.LogLevel
	}
	return fixed
}

// Color returns the validated default ink color.
func (b BoardConfig) Color() state.Color {
	c, err := state.ParseColor(b.DefaultColor)
	if err != nil {
		return state.Black
	}
	return c
}

// ConfirmDuration is the confirm-clear window.
func (b BoardConfig) ConfirmDuration() time.Duration {
	return b.ConfirmWindow.Duration
}

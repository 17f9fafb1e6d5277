// Package logger is a small leveled, tagged wrapper around log/slog.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const tagKey = "tag"

var (
	mu            sync.RWMutex
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	logLevel      = new(slog.LevelVar)
	logCloser     io.Closer
)

// Config selects the log level and destination.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"level"`
	// LogFilePath is the file to append to. Empty or "-" means stderr.
	LogFilePath string `toml:"file"`
	// DisabledTags drops messages carrying one of these tags.
	DisabledTags []string `toml:"disabled_tags"`
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Init configures the package logger. It may be called again to reconfigure;
// a file opened by a previous call is closed.
func Init(cfg Config) error {
	level, ok := ParseLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer
	if cfg.LogFilePath != "" && cfg.LogFilePath != "-" {
		f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", cfg.LogFilePath, err)
		}
		out, closer = f, f
	}
	InitWriter(level, out, cfg.DisabledTags...)

	mu.Lock()
	logCloser = closer
	mu.Unlock()
	return nil
}

// InitWriter configures the logger to write to out.
func InitWriter(level slog.Level, out io.Writer, disabledTags ...string) {
	mu.Lock()
	defer mu.Unlock()
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	logLevel.Set(level)
	opts := slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	var h slog.Handler = slog.NewTextHandler(out, &opts)
	if len(disabledTags) > 0 {
		h = newTagFilter(h, disabledTags)
	}
	defaultLogger = slog.New(h)
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

// Get returns the configured slog logger.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

func logAt(level slog.Level, tag string, format string, args ...any) {
	l := Get()
	if !l.Enabled(context.Background(), level) {
		return
	}
	var pcs [1]uintptr
	// Skip runtime.Callers, logAt and the exported wrapper.
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = l.Handler().Handle(context.Background(), r)
}

func Debugf(format string, args ...any) { logAt(slog.LevelDebug, "", format, args...) }
func Infof(format string, args ...any)  { logAt(slog.LevelInfo, "", format, args...) }
func Warnf(format string, args ...any)  { logAt(slog.LevelWarn, "", format, args...) }
func Errorf(format string, args ...any) { logAt(slog.LevelError, "", format, args...) }

// DebugTagf logs at debug level with a tag attribute that can be filtered.
func DebugTagf(tag, format string, args ...any) { logAt(slog.LevelDebug, tag, format, args...) }

// InfoTagf logs at info level with a tag attribute.
func InfoTagf(tag, format string, args ...any) { logAt(slog.LevelInfo, tag, format, args...) }

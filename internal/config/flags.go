package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds command-line values. Only flags that were actually set
// override the file.
type Flags struct {
	ConfigFilePath string
	LogLevel       string
	LogFilePath    string
	Port           int
	MaxHistory     int
	NoMDNS         bool
	DisableTags    string

	Serve    bool
	Discover bool

	fs *flag.FlagSet
}

// Define registers the flags on fs.
func (f *Flags) Define(fs *flag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default %s)", DefaultPath()))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - overrides config file")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr) - overrides config file")
	fs.IntVar(&f.Port, "port", 0, "Port for the websocket host - overrides config file")
	fs.IntVar(&f.MaxHistory, "history", 0, "Maximum number of text undo snapshots - overrides config file")
	fs.BoolVar(&f.NoMDNS, "no-mdns", false, "Do not advertise the host over mDNS")
	fs.StringVar(&f.DisableTags, "log-disable-tags", "", "Comma-separated list of log tags to drop")
	fs.BoolVar(&f.Serve, "serve", false, "Run the headless websocket host instead of the window")
	fs.BoolVar(&f.Discover, "discover", false, "Browse the local network for running hosts and exit")
}

// Parse defines the flags on fs and parses args.
func (f *Flags) Parse(fs *flag.FlagSet, args []string) error {
	f.Define(fs)
	return fs.Parse(args)
}

// ApplyOverrides copies the flags that were set on the command line into cfg.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "port":
			if f.Port > 0 {
				cfg.Host.Port = f.Port
			}
		case "history":
			if f.MaxHistory > 0 {
				cfg.Board.MaxHistory = f.MaxHistory
			}
		case "no-mdns":
			cfg.Host.MDNS = !f.NoMDNS
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(f.DisableTags)
		}
	})
}

// ConfigPath is the file to load and whether the user named it explicitly.
func (f *Flags) ConfigPath() (string, bool) {
	if f.ConfigFilePath != "" {
		return f.ConfigFilePath, true
	}
	return DefaultPath(), false
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

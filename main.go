package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CanvasBoard/internal/config"
	"CanvasBoard/internal/logger"
	boardnet "CanvasBoard/internal/net"
	"CanvasBoard/internal/state"
	"CanvasBoard/internal/ui"
)

const discoverTimeout = 3 * time.Second

func main() {
	var flags config.Flags
	if err := flags.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(2)
	}

	path, explicit := flags.ConfigPath()
	cfg, warnings, err := config.Load(path, explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	flags.ApplyOverrides(cfg)
	fixed := cfg.Validate()

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		logger.Warnf("Config: %s", w)
	}
	for _, f := range fixed {
		logger.Warnf("Config: %s", f)
	}

	code := 0
	switch {
	case flags.Discover:
		code = runDiscover(cfg)
	case flags.Serve:
		code = runServe(cfg)
	default:
		runBoard(cfg)
	}
	logger.Close()
	os.Exit(code)
}

func hostOptions(cfg *config.Config) boardnet.HostOptions {
	return boardnet.HostOptions{
		Port:         cfg.Host.Port,
		MaxHistory:   cfg.Board.MaxHistory,
		DefaultColor: cfg.Board.Color(),
		MDNS:         cfg.Host.MDNS,
		ServiceName:  cfg.Host.ServiceName,
		Instance:     cfg.Host.Instance,
	}
}

func runDiscover(cfg *config.Config) int {
	logger.Infof("Browsing for %s", cfg.Host.ServiceName)
	links, err := boardnet.Browse(cfg.Host.ServiceName, discoverTimeout)
	if err != nil {
		logger.Errorf("Discovery failed: %v", err)
		return 1
	}
	if len(links) == 0 {
		fmt.Println("No boards found.")
		return 0
	}
	for _, l := range links {
		fmt.Println(l)
	}
	return 0
}

func runServe(cfg *config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := boardnet.NewHost(hostOptions(cfg))
	if err := host.ListenAndServe(ctx); err != nil {
		logger.Errorf("Host failed: %v", err)
		return 1
	}
	return 0
}

// runBoard opens the local window. A host runs next to it so a remote
// device can open a board of its own on this machine.
func runBoard(cfg *config.Config) {
	store := state.NewStore(
		state.WithHistoryDepth(cfg.Board.MaxHistory),
		state.WithColor(cfg.Board.Color()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	host := boardnet.NewHost(hostOptions(cfg))
	shareLink := ""
	if err := host.Listen(); err != nil {
		logger.Warnf("Remote host unavailable: %v", err)
	} else {
		shareLink, _ = host.ShareLink()
		go func() {
			if err := host.Serve(ctx); err != nil {
				logger.Warnf("Remote host stopped: %v", err)
			}
		}()
	}

	ui.RunApp(cfg, store, shareLink)
}

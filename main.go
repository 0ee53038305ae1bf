package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"retrotv/library"
	"retrotv/player"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	var (
		configPath = flag.String("config", "", "Path to config file (default: XDG config directory)")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	logger := NewLogger(*verbose)

	// Use XDG config directory if not specified
	if *configPath == "" {
		var err error
		*configPath, err = xdg.ConfigFile("retrotv/config.json")
		if err != nil {
			// Fallback to legacy location
			*configPath = filepath.Join(os.ExpandEnv("$HOME"), ".config/retrotv/config.json")
		}
	}

	config, err := LoadOrCreateConfig(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Printf("Starting Retro TV...")
	logger.Printf("Listening on port %d", config.Port)
	logger.Printf("Base paths: %v", config.BasePaths)
	logger.Printf("mpv IPC socket: %s", config.IPCSocket)

	lib := library.New(library.Config{
		BasePaths:  config.BasePaths,
		DirKeyword: ChannelDirKeyword,
		Workers:    config.ProbeWorkers,
		CachePath:  config.CachePath,
	}, nil, logger)

	if err := lib.Scan(); err != nil {
		logger.Fatalf("Failed to scan channel library: %v", err)
	}

	channels := lib.Names()
	if len(channels) == 0 {
		logger.Fatalf("No channel directories found under %v", config.BasePaths)
	}
	logger.Printf("Detected channels: %v", channels)

	tv := player.New(player.Config{
		Socket:           config.IPCSocket,
		HWDec:            config.HWDec,
		TransitionVideo:  config.TransitionVideo,
		TransitionLength: time.Duration(config.TransitionLengthS * float64(time.Second)),
		SeekDelay:        time.Duration(config.SeekDelayMS) * time.Millisecond,
	}, lib, logger)

	// Tune the first channel so the TV comes up playing something
	if err := tv.Start(channels[0]); err != nil {
		logger.Fatalf("Failed to start player: %v", err)
	}

	scheduler := NewAutoScheduler(channels, config.AutoIntervalS, tv, logger)
	go scheduler.Run()

	server := NewAPIServer(config, lib, tv, scheduler, logger)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start()
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverDone:
		logger.Printf("Server stopped: %v", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)
	}

	logger.Printf("Shutting down...")
	scheduler.Stop()
	tv.Stop()
	server.Stop()
}

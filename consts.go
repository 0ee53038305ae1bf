package main

import "time"

// =============================================================================
// Timing Constants
// =============================================================================

const (
	// Auto mode
	DefaultAutoIntervalS = 120 // Change video every 2 minutes by default
	AutoTickInterval     = time.Second

	// Player sequencing
	DefaultTransitionLengthS = 3.0 // Static/transition clip length in seconds
	DefaultSeekDelayMS       = 300 // Wait between loadfile and seek
)

// =============================================================================
// Server Timeouts
// =============================================================================

const (
	// Protects against slow-read attacks and hung connections
	ServerReadTimeout       = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerReadHeaderTimeout = 10 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	HTTPMaxHeaderBytes      = 1 << 20 // 1MB maximum HTTP header size
)

// =============================================================================
// Default Configuration Values
// =============================================================================

const (
	DefaultPort         = 8080
	DefaultProbeWorkers = 8 // Parallel ffprobe processes during library scan
	DefaultIPCSocket    = "/tmp/mpv-socket"
	DefaultMediaPath    = "/mnt/myhdd/compressed_vids"
)

// =============================================================================
// Auto Modes
// =============================================================================

const (
	AutoModeGlobal = "global" // Hop to a random channel every interval
	AutoModeLocal  = "local"  // Shuffle within the current channel every interval
	AutoModeOff    = "off"
)

// IsAutoMode reports whether s names a known auto mode.
func IsAutoMode(s string) bool {
	return s == AutoModeGlobal || s == AutoModeLocal || s == AutoModeOff
}

// =============================================================================
// Channel Detection
// =============================================================================

const (
	// A subdirectory of a base path is a channel if its name contains this,
	// case-insensitive.
	ChannelDirKeyword = "channel"

	// Durations cache filename under the XDG state directory.
	DurationsCacheFile = "durations_cache.json"
)

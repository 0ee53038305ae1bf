package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port              int      `json:"port" env:"PORT"`
	BasePaths         []string `json:"base_paths" env:"BASE_PATHS" envSeparator:":"`
	TransitionVideo   string   `json:"transition_video" env:"TRANSITION_VIDEO"`
	TransitionLengthS float64  `json:"transition_length_s"`
	AutoIntervalS     int      `json:"auto_interval_s" env:"AUTO_INTERVAL_S"`
	IPCSocket         string   `json:"ipc_socket" env:"IPC_SOCKET"`
	HWDec             string   `json:"hwdec" env:"HWDEC"` // e.g. "mmal" on the Pi
	AuthToken         string   `json:"auth_token" env:"AUTH_TOKEN"`
	ProbeWorkers      int      `json:"probe_workers"`
	CachePath         string   `json:"cache_path"` // durations cache location
	SeekDelayMS       int      `json:"seek_delay_ms"`
}

func DefaultConfig() *Config {
	cachePath, err := xdg.StateFile("retrotv/" + DurationsCacheFile)
	if err != nil {
		// Fallback if XDG fails
		homeDir, _ := os.UserHomeDir()
		cachePath = filepath.Join(homeDir, ".local/state/retrotv", DurationsCacheFile)
	}

	cwd, _ := os.Getwd()
	transition, _ := filepath.Abs("transition.mp4")

	return &Config{
		Port:              DefaultPort,
		BasePaths:         []string{cwd, DefaultMediaPath},
		TransitionVideo:   transition,
		TransitionLengthS: DefaultTransitionLengthS,
		AutoIntervalS:     DefaultAutoIntervalS,
		IPCSocket:         DefaultIPCSocket,
		ProbeWorkers:      DefaultProbeWorkers,
		CachePath:         cachePath,
		SeekDelayMS:       DefaultSeekDelayMS,
	}
}

func LoadOrCreateConfig(configPath string) (*Config, error) {
	// If config exists, load it
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		config := &Config{}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}

		// Set defaults for fields missing from older configs
		if config.AutoIntervalS == 0 {
			config.AutoIntervalS = DefaultAutoIntervalS
		}
		if config.ProbeWorkers == 0 {
			config.ProbeWorkers = DefaultProbeWorkers
		}
		if config.IPCSocket == "" {
			config.IPCSocket = DefaultIPCSocket
		}
		if config.SeekDelayMS == 0 {
			config.SeekDelayMS = DefaultSeekDelayMS
		}
		if config.CachePath == "" {
			config.CachePath = DefaultConfig().CachePath
		}

		return applyEnvOverrides(config)
	}

	// Create default config
	config := DefaultConfig()

	// Generate auth token if not present
	if config.AuthToken == "" {
		config.AuthToken = generateToken()
	}

	// Ensure parent directories exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(config.CachePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	// Write default config
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Created default config at %s\n", configPath)
	fmt.Printf("Auth token: %s\n", config.AuthToken)

	return applyEnvOverrides(config)
}

// applyEnvOverrides lets RETROTV_* environment variables win over the file.
func applyEnvOverrides(config *Config) (*Config, error) {
	if err := env.ParseWithOptions(config, env.Options{Prefix: "RETROTV_"}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return config, nil
}

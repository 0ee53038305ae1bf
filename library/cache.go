package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type cacheEntry struct {
	ModTime  int64   `json:"mod_time"` // unix nanoseconds
	Duration float64 `json:"duration"`
}

// DurationCache persists probed video durations between runs, invalidated by
// file modification time.
type DurationCache struct {
	path    string
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewDurationCache(path string) *DurationCache {
	return &DurationCache{
		path:    path,
		entries: make(map[string]cacheEntry),
	}
}

// Load reads the cache file. A missing file is not an error.
func (dc *DurationCache) Load() error {
	data, err := os.ReadFile(dc.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read durations cache: %w", err)
	}

	entries := make(map[string]cacheEntry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse durations cache: %w", err)
	}

	dc.mu.Lock()
	dc.entries = entries
	dc.mu.Unlock()
	return nil
}

func (dc *DurationCache) Save() error {
	dc.mu.Lock()
	data, err := json.Marshal(dc.entries)
	dc.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal durations cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dc.path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := os.WriteFile(dc.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write durations cache: %w", err)
	}
	return nil
}

func (dc *DurationCache) Get(path string, modTime time.Time) (float64, bool) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	entry, ok := dc.entries[path]
	if !ok || entry.ModTime != modTime.UnixNano() {
		return 0, false
	}
	return entry.Duration, true
}

func (dc *DurationCache) Put(path string, modTime time.Time, duration float64) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	dc.entries[path] = cacheEntry{
		ModTime:  modTime.UnixNano(),
		Duration: duration,
	}
}

func (dc *DurationCache) Len() int {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return len(dc.entries)
}

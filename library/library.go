package library

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Config holds the settings the library needs from the application config.
type Config struct {
	BasePaths  []string
	DirKeyword string // subdirectory names containing this (case-insensitive) are channels
	Workers    int    // parallel duration probes
	CachePath  string
}

type channel struct {
	name      string
	dir       string
	videos    []string  // shuffled playlist, fixed for the process lifetime
	durations []float64 // seconds, parallel to videos
}

func (c *channel) totalDuration() float64 {
	var total float64
	for _, d := range c.durations {
		total += d
	}
	return total
}

// ChannelInfo is the external summary of one channel.
type ChannelInfo struct {
	Name           string  `json:"name"`
	VideoCount     int     `json:"video_count"`
	TotalDurationS float64 `json:"total_duration_s"`
}

// Library discovers channel directories, builds per-channel playlists and
// knows every video's duration.
type Library struct {
	cfg    Config
	logger Logger
	prober Prober
	cache  *DurationCache

	mu       sync.RWMutex
	channels map[string]*channel
	names    []string // sorted channel names
	byPath   map[string]float64
}

func New(cfg Config, prober Prober, logger Logger) *Library {
	if prober == nil {
		prober = FFProbe{}
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.DirKeyword == "" {
		cfg.DirKeyword = "channel"
	}

	return &Library{
		cfg:      cfg,
		logger:   logger,
		prober:   prober,
		cache:    NewDurationCache(cfg.CachePath),
		channels: make(map[string]*channel),
		byPath:   make(map[string]float64),
	}
}

// Scan detects channels under the base paths and builds their playlists.
func (l *Library) Scan() error {
	if err := l.cache.Load(); err != nil {
		l.logger.Printf("Ignoring durations cache: %v", err)
	}

	channels := make(map[string]*channel)
	for _, base := range l.cfg.BasePaths {
		entries, err := os.ReadDir(base)
		if err != nil {
			l.logger.Debugf("Skipping base path %s: %v", base, err)
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if !strings.Contains(strings.ToLower(entry.Name()), strings.ToLower(l.cfg.DirKeyword)) {
				continue
			}
			channels[entry.Name()] = &channel{
				name: entry.Name(),
				dir:  filepath.Join(base, entry.Name()),
			}
		}
	}

	names := maps.Keys(channels)
	slices.Sort(names)

	for _, name := range names {
		ch := channels[name]
		if err := l.buildPlaylist(ch); err != nil {
			return fmt.Errorf("failed to build playlist for channel %q: %w", name, err)
		}
		l.logger.Printf("Channel %q: %d videos, %.2fs total", name, len(ch.videos), ch.totalDuration())
	}

	byPath := make(map[string]float64)
	for _, ch := range channels {
		for i, v := range ch.videos {
			byPath[v] = ch.durations[i]
		}
	}

	l.mu.Lock()
	l.channels = channels
	l.names = names
	l.byPath = byPath
	l.mu.Unlock()

	if err := l.cache.Save(); err != nil {
		l.logger.Printf("Failed to save durations cache: %v", err)
	}

	return nil
}

func (l *Library) buildPlaylist(ch *channel) error {
	files, err := filepath.Glob(filepath.Join(ch.dir, "*.*"))
	if err != nil {
		return err
	}

	rand.Shuffle(len(files), func(i, j int) {
		files[i], files[j] = files[j], files[i]
	})

	ch.videos = files
	ch.durations = make([]float64, len(files))
	l.probePlaylist(ch)
	return nil
}

// probePlaylist fills ch.durations with a bounded worker pool. Each worker
// writes distinct indices, so only the cache needs locking.
func (l *Library) probePlaylist(ch *channel) {
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < l.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ch.durations[i] = l.videoDuration(ch.videos[i])
			}
		}()
	}

	for i := range ch.videos {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// videoDuration returns the cached duration or probes the file. Probe
// failures yield 0, matching the schedule's zero-duration fallback.
func (l *Library) videoDuration(path string) float64 {
	info, err := os.Stat(path)
	if err != nil {
		l.logger.Debugf("Could not stat %s: %v", path, err)
		return 0
	}

	if d, ok := l.cache.Get(path, info.ModTime()); ok {
		return d
	}

	d, err := l.prober.Duration(path)
	if err != nil {
		l.logger.Debugf("Could not probe duration: %v", err)
		return 0
	}

	l.cache.Put(path, info.ModTime(), d)
	return d
}

// Names returns channel names in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.names)
}

func (l *Library) Has(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.channels[name]
	return ok
}

// Playlist returns the shuffled playlist for a channel.
func (l *Library) Playlist(name string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ch, ok := l.channels[name]
	if !ok {
		return nil
	}
	return slices.Clone(ch.videos)
}

// VideoDuration returns the known duration of a probed video, or 0.
func (l *Library) VideoDuration(path string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.byPath[path]
}

// RandomVideo picks a random video from a channel, avoiding exclude when the
// playlist has alternatives.
func (l *Library) RandomVideo(name string, exclude string) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ch, ok := l.channels[name]
	if !ok {
		return "", fmt.Errorf("unknown channel %q", name)
	}
	if len(ch.videos) == 0 {
		return "", fmt.Errorf("channel %q has no videos", name)
	}
	if len(ch.videos) == 1 {
		return ch.videos[0], nil
	}

	candidates := make([]string, 0, len(ch.videos))
	for _, v := range ch.videos {
		if v != exclude {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return ch.videos[rand.Intn(len(ch.videos))], nil
	}
	return candidates[rand.Intn(len(candidates))], nil
}

// Info summarizes every channel for the admin API.
func (l *Library) Info() []ChannelInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	infos := make([]ChannelInfo, 0, len(l.names))
	for _, name := range l.names {
		ch := l.channels[name]
		infos = append(infos, ChannelInfo{
			Name:           name,
			VideoCount:     len(ch.videos),
			TotalDurationS: ch.totalDuration(),
		})
	}
	return infos
}

// TotalVideos counts videos across all channels.
func (l *Library) TotalVideos() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total int
	for _, ch := range l.channels {
		total += len(ch.videos)
	}
	return total
}

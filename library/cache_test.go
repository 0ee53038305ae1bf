package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutGet(t *testing.T) {
	cache := NewDurationCache(filepath.Join(t.TempDir(), "cache.json"))
	mod := time.Now()

	_, ok := cache.Get("/videos/a.mp4", mod)
	assert.False(t, ok)

	cache.Put("/videos/a.mp4", mod, 42.5)
	d, ok := cache.Get("/videos/a.mp4", mod)
	assert.True(t, ok)
	assert.Equal(t, 42.5, d)

	// A changed mod time invalidates the entry
	_, ok = cache.Get("/videos/a.mp4", mod.Add(time.Second))
	assert.False(t, ok)
}

func TestCacheSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.json")
	mod := time.Unix(1700000000, 0)

	cache := NewDurationCache(path)
	cache.Put("/videos/a.mp4", mod, 10)
	cache.Put("/videos/b.mp4", mod, 20)
	require.NoError(t, cache.Save())

	reloaded := NewDurationCache(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 2, reloaded.Len())

	d, ok := reloaded.Get("/videos/b.mp4", mod)
	assert.True(t, ok)
	assert.Equal(t, 20.0, d)
}

func TestCacheLoadMissingFile(t *testing.T) {
	cache := NewDurationCache(filepath.Join(t.TempDir(), "nope.json"))
	assert.NoError(t, cache.Load())
	assert.Equal(t, 0, cache.Len())
}

func TestCacheLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	cache := NewDurationCache(path)
	assert.Error(t, cache.Load())
}

func TestScanReusesCache(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, filepath.Join(base, "channel_a"), "a.mp4")

	cachePath := filepath.Join(t.TempDir(), "cache.json")
	counting := &countingProber{durations: map[string]float64{"a.mp4": 9}}

	lib := New(Config{
		BasePaths: []string{base},
		Workers:   1,
		CachePath: cachePath,
	}, counting, testLogger{})
	require.NoError(t, lib.Scan())
	assert.Equal(t, 1, counting.calls)

	// A second library over the same cache file probes nothing
	lib2 := New(Config{
		BasePaths: []string{base},
		Workers:   1,
		CachePath: cachePath,
	}, counting, testLogger{})
	require.NoError(t, lib2.Scan())
	assert.Equal(t, 1, counting.calls)

	v := lib2.Playlist("channel_a")[0]
	assert.Equal(t, 9.0, lib2.VideoDuration(v))
}

type countingProber struct {
	durations map[string]float64
	calls     int
}

func (p *countingProber) Duration(path string) (float64, error) {
	p.calls++
	return p.durations[filepath.Base(path)], nil
}

package library

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentVideoAtWalksSchedule(t *testing.T) {
	base := t.TempDir()
	durations := map[string]float64{"a.mp4": 10, "b.mp4": 20, "c.mp4": 30}
	writeFiles(t, filepath.Join(base, "channel_a"), "a.mp4", "b.mp4", "c.mp4")

	lib := newTestLibrary(t, base, durations)
	require.NoError(t, lib.Scan())

	// The playlist order is shuffled at scan time; derive expectations from
	// the actual order.
	playlist := lib.Playlist("channel_a")
	require.Len(t, playlist, 3)

	// 35 seconds after midnight, total 60s: position 35
	now := time.Date(2026, 8, 31, 0, 0, 35, 0, time.UTC)

	var cumulative float64
	var wantVideo string
	var wantOffset float64
	for _, v := range playlist {
		d := durations[filepath.Base(v)]
		if cumulative+d > 35 {
			wantVideo = v
			wantOffset = 35 - cumulative
			break
		}
		cumulative += d
	}

	video, offset, err := lib.CurrentVideoAt("channel_a", now)
	require.NoError(t, err)
	assert.Equal(t, wantVideo, video)
	assert.InDelta(t, wantOffset, offset, 1e-9)
}

func TestCurrentVideoAtWrapsPastTotal(t *testing.T) {
	base := t.TempDir()
	durations := map[string]float64{"a.mp4": 10, "b.mp4": 20}
	writeFiles(t, filepath.Join(base, "channel_a"), "a.mp4", "b.mp4")

	lib := newTestLibrary(t, base, durations)
	require.NoError(t, lib.Scan())

	playlist := lib.Playlist("channel_a")
	first := playlist[0]
	firstDur := durations[filepath.Base(first)]

	// Total is 30s; 90s past midnight wraps to position 0
	now := time.Date(2026, 8, 31, 0, 1, 30, 0, time.UTC)
	video, offset, err := lib.CurrentVideoAt("channel_a", now)
	require.NoError(t, err)
	assert.Equal(t, first, video)
	assert.InDelta(t, 0, offset, 1e-9)
	assert.Less(t, offset, firstDur)
}

func TestCurrentVideoAtZeroTotalDuration(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, filepath.Join(base, "channel_a"), "a.mp4", "b.mp4")

	// Prober reports 0 for everything
	lib := newTestLibrary(t, base, nil)
	require.NoError(t, lib.Scan())

	video, offset, err := lib.CurrentVideoAt("channel_a", time.Now())
	require.NoError(t, err)
	assert.Equal(t, lib.Playlist("channel_a")[0], video)
	assert.Equal(t, 0.0, offset)
}

func TestCurrentVideoAtErrors(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, filepath.Join(base, "channel_empty"))

	lib := newTestLibrary(t, base, nil)
	require.NoError(t, lib.Scan())

	_, _, err := lib.CurrentVideoAt("channel_empty", time.Now())
	assert.Error(t, err)

	_, _, err = lib.CurrentVideoAt("unknown", time.Now())
	assert.Error(t, err)
}

func TestSecondsSinceMidnight(t *testing.T) {
	now := time.Date(2026, 8, 31, 1, 2, 3, 0, time.UTC)
	assert.InDelta(t, 3723, secondsSinceMidnight(now), 1e-9)
}

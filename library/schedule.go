package library

import (
	"fmt"
	"math"
	"time"
)

// secondsSinceMidnight returns the elapsed seconds of the current day in the
// timestamp's location.
func secondsSinceMidnight(now time.Time) float64 {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return now.Sub(midnight).Seconds()
}

// CurrentVideoAt computes which video a channel "broadcasts" at the given
// time and the offset into it. The channel loops its playlist continuously,
// anchored to midnight, so every viewer tuning in sees the same point.
func (l *Library) CurrentVideoAt(name string, now time.Time) (string, float64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ch, ok := l.channels[name]
	if !ok {
		return "", 0, fmt.Errorf("unknown channel %q", name)
	}
	if len(ch.videos) == 0 {
		return "", 0, fmt.Errorf("channel %q has no videos", name)
	}

	total := ch.totalDuration()
	if total == 0 {
		l.logger.Printf("Warning: total duration for channel %q is 0, using first video at offset 0", name)
		return ch.videos[0], 0, nil
	}

	pos := math.Mod(secondsSinceMidnight(now), total)
	var cumulative float64
	for i, video := range ch.videos {
		if cumulative+ch.durations[i] > pos {
			return video, pos - cumulative, nil
		}
		cumulative += ch.durations[i]
	}

	// Floating point edge at the end of the loop
	return ch.videos[len(ch.videos)-1], 0, nil
}

package library

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Prober reports the duration of a video file in seconds.
type Prober interface {
	Duration(path string) (float64, error)
}

// FFProbe shells out to ffprobe for durations.
type FFProbe struct{}

func (FFProbe) Duration(path string) (float64, error) {
	cmd := exec.Command(
		"ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", filepath.Base(path), err)
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: bad duration output %q: %w", filepath.Base(path), strings.TrimSpace(string(out)), err)
	}

	return d, nil
}

package player

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/exec"
	"sync"
	"time"
)

// Library is the slice of the channel library the player needs.
type Library interface {
	CurrentVideoAt(name string, now time.Time) (string, float64, error)
	RandomVideo(name string, exclude string) (string, error)
	VideoDuration(path string) float64
}

// Config holds the player settings from the application config.
type Config struct {
	Socket            string
	HWDec             string // e.g. "mmal" for hardware decoding on the Pi
	TransitionVideo   string
	TransitionLength  time.Duration
	SeekDelay         time.Duration
	SocketWaitTimeout time.Duration
}

// Player owns the persistent mpv process and drives channel switches and
// video changes through its IPC socket.
type Player struct {
	cfg    Config
	logger Logger
	lib    Library
	ipc    CommandSender

	cmd   *exec.Cmd
	cmdMu sync.Mutex

	mu             sync.Mutex
	currentChannel string
}

func New(cfg Config, lib Library, logger Logger) *Player {
	if cfg.SocketWaitTimeout == 0 {
		cfg.SocketWaitTimeout = 5 * time.Second
	}

	return &Player{
		cfg:    cfg,
		logger: logger,
		lib:    lib,
		ipc:    NewIPC(cfg.Socket),
	}
}

// Start launches mpv tuned to the channel's scheduled video and offset, and
// waits for the IPC socket to appear.
func (p *Player) Start(channel string) error {
	video, offset, err := p.lib.CurrentVideoAt(channel, time.Now())
	if err != nil {
		return fmt.Errorf("failed to start player: %w", err)
	}

	// Stale socket from a previous run
	os.Remove(p.cfg.Socket)

	cmd := exec.Command("mpv", p.buildArgs(video, offset)...)

	p.cmdMu.Lock()
	p.cmd = cmd
	p.cmdMu.Unlock()

	if err := cmd.Start(); err != nil {
		p.cmdMu.Lock()
		p.cmd = nil
		p.cmdMu.Unlock()
		return fmt.Errorf("failed to start mpv: %w", err)
	}

	if err := p.waitForSocket(); err != nil {
		return err
	}

	p.setCurrentChannel(channel)
	p.logger.Printf("mpv started on channel %q: %s @ %.2fs", channel, video, offset)
	return nil
}

func (p *Player) buildArgs(video string, offset float64) []string {
	args := []string{
		"--loop",
		"--no-input-default-bindings",
		"--quiet",
		"--input-ipc-server=" + p.cfg.Socket,
	}
	if p.cfg.HWDec != "" {
		args = append(args, "--hwdec="+p.cfg.HWDec)
	}
	return append(args, fmt.Sprintf("--start=%.2f", offset), video)
}

func (p *Player) waitForSocket() error {
	deadline := time.Now().Add(p.cfg.SocketWaitTimeout)
	for {
		if _, err := os.Stat(p.cfg.Socket); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("mpv did not create IPC socket %s in time", p.cfg.Socket)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// SwitchChannel plays the transition clip, then tunes to the channel's
// scheduled video. With randomOffset the playback position is picked within
// the first 80% of the video instead of the broadcast schedule.
func (p *Player) SwitchChannel(channel string, randomOffset bool) error {
	p.setCurrentChannel(channel)
	p.playTransition()

	video, offset, err := p.lib.CurrentVideoAt(channel, time.Now())
	if err != nil {
		return fmt.Errorf("failed to switch channel: %w", err)
	}

	if randomOffset {
		offset = randomStartOffset(p.lib.VideoDuration(video))
	}

	p.logger.Debugf("Switching to channel %q: %s @ %.2fs", channel, video, offset)
	return p.loadAndSeek(video, offset)
}

// NextVideo jumps to another video within the current channel.
func (p *Player) NextVideo(randomOffset bool) error {
	current := p.CurrentChannel()
	if current == "" {
		return fmt.Errorf("no channel is currently active")
	}

	// Avoid replaying what the schedule says is on right now.
	exclude, _, _ := p.lib.CurrentVideoAt(current, time.Now())

	video, err := p.lib.RandomVideo(current, exclude)
	if err != nil {
		return fmt.Errorf("failed to pick next video: %w", err)
	}

	duration := p.lib.VideoDuration(video)
	var offset float64
	if randomOffset {
		offset = randomStartOffset(duration)
	} else if duration > 0 {
		offset = math.Mod(secondsOfDay(time.Now()), duration)
	}

	p.playTransition()

	p.logger.Debugf("Next video on channel %q: %s @ %.2fs", current, video, offset)
	return p.loadAndSeek(video, offset)
}

// CurrentChannel returns the last channel tuned, or "".
func (p *Player) CurrentChannel() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentChannel
}

func (p *Player) setCurrentChannel(channel string) {
	p.mu.Lock()
	p.currentChannel = channel
	p.mu.Unlock()
}

func (p *Player) loadAndSeek(video string, offset float64) error {
	if _, err := p.ipc.Send(loadFileCommand(video)); err != nil {
		return fmt.Errorf("failed to load %s: %w", video, err)
	}
	// mpv needs a moment to open the file before time-pos sticks
	time.Sleep(p.cfg.SeekDelay)
	if _, err := p.ipc.Send(seekCommand(offset)); err != nil {
		return fmt.Errorf("failed to seek in %s: %w", video, err)
	}
	return nil
}

// playTransition shows the static/transition clip between switches when one
// is configured and present.
func (p *Player) playTransition() {
	if p.cfg.TransitionVideo == "" {
		return
	}
	if _, err := os.Stat(p.cfg.TransitionVideo); err != nil {
		p.logger.Debugf("Transition video not found; skipping transition")
		return
	}

	if _, err := p.ipc.Send(loadFileCommand(p.cfg.TransitionVideo)); err != nil {
		p.logger.Printf("Failed to play transition: %v", err)
		return
	}
	time.Sleep(p.cfg.TransitionLength)
}

// Stop kills the mpv process.
func (p *Player) Stop() {
	p.cmdMu.Lock()
	defer p.cmdMu.Unlock()
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
}

func randomStartOffset(duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	// Start within the first 80% so there is enough left to watch
	return rand.Float64() * duration * 0.8
}

func secondsOfDay(now time.Time) float64 {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return now.Sub(midnight).Seconds()
}

package main

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// remoteControl is what the scheduler and the HTTP handlers drive. The mpv
// player implements it.
type remoteControl interface {
	SwitchChannel(channel string, randomOffset bool) error
	NextVideo(randomOffset bool) error
	CurrentChannel() string
}

// AutoScheduler changes channel or video every interval while a mode is
// active. Mode and interval are mutable from the HTTP handlers; a change to
// "off" aborts the running countdown at the next tick.
type AutoScheduler struct {
	logger  *Logger
	control remoteControl

	mu        sync.Mutex
	mode      string
	intervalS int
	queue     []string // shuffled channel queue for global mode
	channels  []string

	tick     time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

func NewAutoScheduler(channels []string, intervalS int, control remoteControl, logger *Logger) *AutoScheduler {
	if intervalS <= 0 {
		intervalS = DefaultAutoIntervalS
	}

	return &AutoScheduler{
		logger:    logger,
		control:   control,
		mode:      AutoModeOff,
		intervalS: intervalS,
		channels:  channels,
		tick:      AutoTickInterval,
		done:      make(chan struct{}),
	}
}

// Run counts down and fires mode actions until Stop. Intended to run in its
// own goroutine.
func (a *AutoScheduler) Run() {
	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	remaining := 0
	for {
		select {
		case <-a.done:
			return
		case <-ticker.C:
			mode := a.Mode()
			if mode == AutoModeOff {
				remaining = 0
				continue
			}

			if remaining <= 0 {
				remaining = a.Interval()
			}
			remaining--
			if remaining > 0 {
				a.logger.Debugf("Auto mode (%s) active; %d seconds until next change", mode, remaining)
				continue
			}

			a.fire(mode)
		}
	}
}

func (a *AutoScheduler) fire(mode string) {
	switch mode {
	case AutoModeGlobal:
		channel := a.nextChannel()
		if channel == "" {
			return
		}
		a.logger.Printf("Auto mode (global) switching to channel %q", channel)
		if err := a.control.SwitchChannel(channel, true); err != nil {
			a.logger.Printf("Auto mode switch failed: %v", err)
		}
	case AutoModeLocal:
		if a.control.CurrentChannel() == "" {
			channel := a.nextChannel()
			if channel == "" {
				return
			}
			a.logger.Printf("Auto mode (local) no current channel; switching to %q", channel)
			if err := a.control.SwitchChannel(channel, true); err != nil {
				a.logger.Printf("Auto mode switch failed: %v", err)
			}
			return
		}
		a.logger.Printf("Auto mode (local) shuffling within current channel")
		if err := a.control.NextVideo(true); err != nil {
			a.logger.Printf("Auto mode next video failed: %v", err)
		}
	}
}

// nextChannel pops from a shuffled queue so every channel comes up once
// before any repeats.
func (a *AutoScheduler) nextChannel() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.channels) == 0 {
		return ""
	}
	if len(a.queue) == 0 {
		a.queue = append([]string(nil), a.channels...)
		rand.Shuffle(len(a.queue), func(i, j int) {
			a.queue[i], a.queue[j] = a.queue[j], a.queue[i]
		})
	}

	channel := a.queue[0]
	a.queue = a.queue[1:]
	return channel
}

func (a *AutoScheduler) SetMode(mode string) error {
	if !IsAutoMode(mode) {
		return fmt.Errorf("invalid auto mode %q", mode)
	}

	a.mu.Lock()
	a.mode = mode
	a.mu.Unlock()

	a.logger.Printf("Auto mode set to %s", mode)
	return nil
}

func (a *AutoScheduler) Mode() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *AutoScheduler) SetInterval(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("invalid interval %d", seconds)
	}

	a.mu.Lock()
	a.intervalS = seconds
	a.mu.Unlock()

	a.logger.Printf("Shuffle timer set to %d seconds", seconds)
	return nil
}

func (a *AutoScheduler) Interval() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.intervalS
}

func (a *AutoScheduler) Stop() {
	a.stopOnce.Do(func() { close(a.done) })
}

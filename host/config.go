// Package host runs a cpu.Chip8 against a display, a keyboard and a speaker.
//
// The Emulator drives two clocks from a single loop: the instruction clock,
// whose rate is configurable, and the 60Hz timer clock. Each loop iteration
// is one timer tick; the instructions due in that tick run first, then the
// timers tick, then the screen is handed to the display if it changed. The
// clocks only ever meet between instructions.
package host

import (
	"errors"
	"fmt"
)

// Display names accepted by Config.Display.
const (
	DisplayWindow   = "window"
	DisplayTerminal = "terminal"
	DisplayHeadless = "headless"
)

// Config holds the settings of one emulator run.
type Config struct {
	ROMPath string

	// Scale is the size in screen pixels of one Chip-8 pixel in window mode.
	Scale int
	// ClockHz is the number of instructions executed per second.
	ClockHz int
	// TickHz is the rate of the delay and sound timers.
	TickHz int

	Display string
	// Frames stops the run after that many timer ticks. Zero runs until quit.
	Frames int

	Mute    bool
	WavPath string

	Trace           bool
	StrictAlignment bool
	// Seed for RND. Zero seeds from the clock.
	Seed int64
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Scale:   10,
		ClockHz: 500,
		TickHz:  60,
		Display: DisplayWindow,
	}
}

// Validate checks the configuration and reports every problem it finds.
func (c Config) Validate() error {
	var errs []error
	if c.ROMPath == "" {
		errs = append(errs, errors.New("missing rom path"))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %d", c.Scale))
	}
	if c.ClockHz <= 0 {
		errs = append(errs, fmt.Errorf("clock must be positive, got %d", c.ClockHz))
	}
	if c.TickHz <= 0 {
		errs = append(errs, fmt.Errorf("timer rate must be positive, got %d", c.TickHz))
	}
	switch c.Display {
	case DisplayWindow, DisplayTerminal, DisplayHeadless:
	default:
		errs = append(errs, fmt.Errorf("unknown display '%s'", c.Display))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", c.Frames))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

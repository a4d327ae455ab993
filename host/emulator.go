package host

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/mpingram/chip8/cpu"
)

// Display shows the framebuffer. Scaling and presentation are up to it.
type Display interface {
	Render(screen cpu.Screen)
}

// KeyEvent is a key going down or coming up.
type KeyEvent struct {
	Key  cpu.KeyCode
	Down bool
}

// Control is a set of emulator control requests.
type Control uint8

const (
	ControlQuit Control = 1 << iota
	ControlPause
	ControlResume
	ControlStep
	ControlDump
)

// Input delivers the key events and control requests that arrived since
// the last Poll.
type Input interface {
	Poll() ([]KeyEvent, Control)
}

// Speaker is told once per timer tick whether the tone should sound.
type Speaker interface {
	Tone(on bool)
}

// Collaborators are the devices attached to an Emulator. Nil devices are
// replaced by ones that do nothing.
type Collaborators struct {
	Display Display
	Input   Input
	Speaker Speaker
	Logger  *log.Logger
}

// Emulator owns a cpu.Chip8 and runs it against its collaborators.
type Emulator struct {
	cfg     Config
	c8      *cpu.Chip8
	display Display
	input   Input
	speaker Speaker
	logger  *log.Logger

	cyclesPerTick float64
	cycleBudget   float64
	frames        int

	paused bool
	quit   bool
}

// New validates cfg and returns an Emulator with an empty machine.
func New(cfg Config, co Collaborators) (*Emulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Emulator{
		cfg:           cfg,
		display:       co.Display,
		input:         co.Input,
		speaker:       co.Speaker,
		logger:        co.Logger,
		cyclesPerTick: float64(cfg.ClockHz) / float64(cfg.TickHz),
	}
	if e.display == nil {
		e.display = nopDisplay{}
	}
	if e.input == nil {
		e.input = nopInput{}
	}
	if e.speaker == nil {
		e.speaker = nopSpeaker{}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard, "host:", log.Ltime|log.Lmicroseconds)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e.c8 = cpu.NewChip8(
		cpu.WithLogger(e.logger),
		cpu.WithTrace(cfg.Trace),
		cpu.WithStrictAlignment(cfg.StrictAlignment),
		cpu.WithRandSource(rand.NewSource(seed)),
	)
	return e, nil
}

// Chip8 returns the machine the emulator drives.
func (e *Emulator) Chip8() *cpu.Chip8 {
	return e.c8
}

// Load resets the machine and loads program into it.
func (e *Emulator) Load(program []byte) error {
	if err := e.c8.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	e.cycleBudget = 0
	e.frames = 0
	e.quit = false
	return nil
}

// Run executes frames at TickHz until the context is cancelled, the quit
// control is received, the configured number of frames has run or the
// machine faults. Only a fault is returned as an error.
func (e *Emulator) Run(ctx context.Context) error {
	// render the blank screen first
	e.display.Render(e.c8.TakeScreen())

	ticker := time.NewTicker(time.Second / time.Duration(e.cfg.TickHz))
	defer ticker.Stop()

	for !e.quit {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if err := e.Frame(); err != nil {
			return err
		}
		if e.cfg.Frames > 0 && e.frames >= e.cfg.Frames {
			return nil
		}
	}
	return nil
}

// Frame runs one iteration of the host loop: poll input, run the
// instructions due in one timer period, tick the timers, render.
// While paused only the step and dump controls do anything.
func (e *Emulator) Frame() error {
	e.poll()
	if e.quit {
		return nil
	}
	e.frames++

	if e.paused {
		e.speaker.Tone(false)
		return nil
	}

	e.cycleBudget += e.cyclesPerTick
	for ; e.cycleBudget >= 1; e.cycleBudget-- {
		if err := e.c8.Cycle(); err != nil {
			e.quit = true
			return fmt.Errorf("executing program: %w", err)
		}
	}

	e.speaker.Tone(e.c8.Tick())
	e.render()
	return nil
}

func (e *Emulator) poll() {
	events, ctl := e.input.Poll()
	for _, ev := range events {
		if ev.Down {
			e.c8.KeyDown(ev.Key)
		} else {
			e.c8.KeyUp(ev.Key)
		}
	}

	if ctl&ControlQuit != 0 {
		e.quit = true
		return
	}
	if ctl&ControlPause != 0 {
		e.Pause()
	}
	if ctl&ControlResume != 0 {
		e.Resume()
	}
	if ctl&ControlDump != 0 {
		e.Dump()
	}
	if ctl&ControlStep != 0 && e.paused {
		if err := e.Step(); err != nil {
			e.logger.Printf("step: %v", err)
		}
	}
}

func (e *Emulator) render() {
	if e.c8.DrawFlag() {
		e.display.Render(e.c8.TakeScreen())
	}
}

// Pause stops instruction execution and timer ticks until Resume.
func (e *Emulator) Pause() {
	if !e.paused {
		e.logger.Print("paused")
	}
	e.paused = true
}

// Resume continues a paused emulator.
func (e *Emulator) Resume() {
	if e.paused {
		e.logger.Print("resumed")
	}
	e.paused = false
}

// Paused reports whether the emulator is paused.
func (e *Emulator) Paused() bool {
	return e.paused
}

// Step executes exactly one instruction and renders the result.
func (e *Emulator) Step() error {
	if err := e.c8.Cycle(); err != nil {
		return err
	}
	e.render()
	return nil
}

// Dump logs the registers and the screen.
func (e *Emulator) Dump() {
	s := e.c8.Snapshot()
	e.logger.Printf("state:\n%v%v", s, &s.Screen)
}

// Frames returns the number of frames run since the program was loaded.
func (e *Emulator) Frames() int {
	return e.frames
}

type nopDisplay struct{}

func (nopDisplay) Render(cpu.Screen) {}

type nopInput struct{}

func (nopInput) Poll() ([]KeyEvent, Control) { return nil, 0 }

type nopSpeaker struct{}

func (nopSpeaker) Tone(bool) {}

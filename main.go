// Package main implements a Chip-8 interpreter with window, terminal and
// headless frontends.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/mpingram/chip8/cpu"
	"github.com/mpingram/chip8/host"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	host.Config

	disasm    bool
	quiet     bool
	statsView bool
	version   bool
}

func init() {
	// openGL requires this to render properly
	runtime.LockOSThread()
}

func main() {
	options := readArguments()
	logger := log.New(os.Stderr, "chip8:", log.Ltime|log.Lmicroseconds)

	if options.version {
		fmt.Println(buildinfo.Version(version, commit, date))
		return
	}
	if !options.quiet {
		printBanner()
	}

	if err := run(options, logger); err != nil {
		logger.Printf("error: %v", err)
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{Config: host.DefaultConfig()}

	flags.IntVar(&options.Scale, "scale", options.Scale, "size of one chip-8 pixel in window pixels")
	flags.IntVar(&options.ClockHz, "clock", options.ClockHz, "instructions executed per second")
	flags.IntVar(&options.TickHz, "timers", options.TickHz, "delay and sound timer rate in Hz")
	flags.StringVar(&options.Display, "display", options.Display, "frontend to use: window, terminal or headless")
	flags.IntVar(&options.Frames, "frames", 0, "stop after this many timer ticks, 0 runs until quit")
	flags.BoolVar(&options.Mute, "mute", false, "do not play the tone")
	flags.StringVar(&options.WavPath, "wav", "", "record the tone to this WAV file")
	flags.BoolVar(&options.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&options.StrictAlignment, "strict", false, "fault on instruction fetches from odd addresses")
	flags.Int64Var(&options.Seed, "seed", 0, "random seed for RND, 0 seeds from the clock")
	flags.BoolVar(&options.disasm, "disasm", false, "print a disassembly of the rom and exit")
	flags.BoolVar(&options.quiet, "q", false, "do not print the banner")
	flags.BoolVar(&options.statsView, "statsview", false, "serve runtime statistics over http (statsview builds only)")
	flags.BoolVar(&options.version, "version", false, "print the version and exit")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || (len(args) == 0 && !options.version) {
		printBanner()
		fmt.Printf("usage: chip8 [options] <rom file>\n\n")
		flags.PrintDefaults()
		fmt.Printf("\n%s", keyboardHelp)
		os.Exit(1)
	}
	if len(args) > 0 {
		options.ROMPath = args[0]
	}
	return options
}

const keyboardHelp = `keyboard      keypad
1 2 3 4      1 2 3 C
Q W E R      4 5 6 D
A S D F      7 8 9 E
Z X C V      A 0 B F

Esc quits, P pauses, [ resumes, ] steps while paused, O dumps the machine state.
`

func printBanner() {
	fmt.Println("[-----------------------------]")
	fmt.Println("[ chip8 - Chip-8 interpreter  ]")
	fmt.Printf("[-----------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func run(options optionFlags, logger *log.Logger) error {
	if err := options.Validate(); err != nil {
		return err
	}
	rom, err := host.LoadROM(options.ROMPath)
	if err != nil {
		return err
	}

	if options.disasm {
		return cpu.Disassemble(os.Stdout, rom)
	}
	if options.statsView {
		if !statsViewAvailable() {
			return errors.New("statsview is not available in this build, rebuild with -tags statsview")
		}
		launchStatsView(os.Stderr)
	}

	speaker, closeSpeaker, err := openSpeaker(options.Config, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSpeaker(); err != nil {
			logger.Printf("closing audio: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	co := host.Collaborators{
		Speaker: speaker,
		Logger:  logger,
	}

	switch options.Display {
	case host.DisplayWindow:
		return runWindow(ctx, options.Config, co, rom)
	case host.DisplayTerminal:
		return runTerminal(ctx, options.Config, co, rom)
	default:
		return runHeadless(ctx, options.Config, co, rom)
	}
}

// openSpeaker builds the speaker chain: the oto beeper unless muted, plus a
// WAV recorder if requested. A missing audio device is not fatal.
func openSpeaker(cfg host.Config, logger *log.Logger) (host.Speaker, func() error, error) {
	var speakers host.Speakers
	var closers []func() error

	if !cfg.Mute {
		beeper, err := NewBeeper(beeperSampleRate)
		if err != nil {
			logger.Printf("audio unavailable, continuing without sound: %v", err)
		} else {
			speakers = append(speakers, beeper)
			closers = append(closers, beeper.Close)
		}
	}
	if cfg.WavPath != "" {
		rec, err := host.NewWavRecorder(cfg.WavPath, cfg.TickHz)
		if err != nil {
			for _, c := range closers {
				_ = c()
			}
			return nil, nil, err
		}
		speakers = append(speakers, rec)
		closers = append(closers, rec.Close)
	}

	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}
	return speakers, closeAll, nil
}

func runHeadless(ctx context.Context, cfg host.Config, co host.Collaborators, rom []byte) error {
	display := &host.Headless{}
	co.Display = display

	emu, err := host.New(cfg, co)
	if err != nil {
		return err
	}
	if err := emu.Load(rom); err != nil {
		return err
	}
	runErr := emu.Run(ctx)

	screen := display.Screen()
	fmt.Print(screen.String())
	return runErr
}

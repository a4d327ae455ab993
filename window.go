package main

import (
	"context"
	"fmt"

	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/mpingram/chip8/cpu"
	"github.com/mpingram/chip8/host"
)

// runWindow opens a GLFW window scaled by cfg.Scale and runs the emulator
// in it until the window is closed.
func runWindow(ctx context.Context, cfg host.Config, co host.Collaborators, rom []byte) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initializing glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	window, err := glfw.CreateWindow(cpu.ScreenWidth*cfg.Scale, cpu.ScreenHeight*cfg.Scale, "Chip-8", nil, nil)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	renderer, err := NewOpenGLRenderer(window)
	if err != nil {
		return err
	}
	co.Display = renderer
	co.Input = NewGLFWKeyboardInput(window)

	emu, err := host.New(cfg, co)
	if err != nil {
		return err
	}
	if err := emu.Load(rom); err != nil {
		return err
	}
	return emu.Run(ctx)
}

package main

import (
	"sync"

	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/mpingram/chip8/host"
)

// GLFWKeyboardInput turns GLFW key callbacks into keypad events and
// emulator controls. Key repeats are dropped, so the keypad sees exactly
// one down and one up per physical press.
type GLFWKeyboardInput struct {
	window *glfw.Window

	mu     sync.Mutex
	events []host.KeyEvent
	ctl    host.Control
}

func NewGLFWKeyboardInput(window *glfw.Window) *GLFWKeyboardInput {
	input := &GLFWKeyboardInput{window: window}
	window.SetKeyCallback(input.onKey)
	return input
}

func (input *GLFWKeyboardInput) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	down := action == glfw.Press

	input.mu.Lock()
	defer input.mu.Unlock()

	// Power Off key
	if key == glfw.KeyEscape {
		if down {
			input.ctl |= host.ControlQuit
		}
		return
	}
	// GLFW key codes of printable keys are their upper case ASCII values
	if key < glfw.KeySpace || key > glfw.KeyGraveAccent {
		return
	}
	r := rune(key)
	if k, ok := host.KeyForRune(r); ok {
		input.events = append(input.events, host.KeyEvent{Key: k, Down: down})
		return
	}
	if c, ok := host.ControlForRune(r); ok && down {
		input.ctl |= c
	}
}

// Poll processes pending window events and returns what arrived since the
// last call.
func (input *GLFWKeyboardInput) Poll() ([]host.KeyEvent, host.Control) {
	glfw.PollEvents()

	input.mu.Lock()
	defer input.mu.Unlock()

	events, ctl := input.events, input.ctl
	input.events, input.ctl = nil, 0
	if input.window.ShouldClose() {
		ctl |= host.ControlQuit
	}
	return events, ctl
}

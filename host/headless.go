package host

import (
	"sync"

	"github.com/mpingram/chip8/cpu"
)

// Headless is a Display that keeps the last frame it was given.
type Headless struct {
	mu      sync.Mutex
	screen  cpu.Screen
	renders int
}

// Render implements the Display interface.
func (h *Headless) Render(screen cpu.Screen) {
	h.mu.Lock()
	h.screen = screen
	h.renders++
	h.mu.Unlock()
}

// Screen returns the last rendered frame.
func (h *Headless) Screen() cpu.Screen {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.screen
}

// Renders returns how many frames were rendered.
func (h *Headless) Renders() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renders
}

// Speakers fans the tone signal out to several speakers.
type Speakers []Speaker

// Tone implements the Speaker interface.
func (s Speakers) Tone(on bool) {
	for _, sp := range s {
		sp.Tone(on)
	}
}

package main

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/mpingram/chip8/cpu"
)

// OpenGLRenderer draws the framebuffer into a GLFW window, one quad per lit
// pixel, stretched to whatever size the window has.
type OpenGLRenderer struct {
	window *glfw.Window
}

// NewOpenGLRenderer initializes OpenGL for the current context of window.
func NewOpenGLRenderer(window *glfw.Window) (*OpenGLRenderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing opengl: %w", err)
	}
	return &OpenGLRenderer{window: window}, nil
}

// Render implements the host.Display interface.
func (r *OpenGLRenderer) Render(screen cpu.Screen) {
	w, h := r.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(w), int32(h))

	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	// one unit per chip-8 pixel, origin top-left
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, cpu.ScreenWidth, cpu.ScreenHeight, 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	gl.Color3f(1, 1, 1)
	gl.Begin(gl.QUADS)
	for y, row := range screen {
		for x, px := range row {
			if !px {
				continue
			}
			fx, fy := float32(x), float32(y)
			gl.Vertex2f(fx, fy)
			gl.Vertex2f(fx+1, fy)
			gl.Vertex2f(fx+1, fy+1)
			gl.Vertex2f(fx, fy+1)
		}
	}
	gl.End()

	r.window.SwapBuffers()
}

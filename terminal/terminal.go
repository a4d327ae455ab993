// Package terminal is a text mode Chip-8 frontend: it draws the framebuffer
// with block characters and reads the keypad from a raw mode terminal.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mpingram/chip8/cpu"
	"github.com/mpingram/chip8/host"
	"golang.org/x/term"
)

// KeyHold is how long a key counts as held after its last press or
// auto-repeat. A terminal only reports key presses, never releases.
const KeyHold = 150 * time.Millisecond

// keyBuffer is the number of unpolled bytes kept. Further bytes are dropped.
const keyBuffer = 64

// Frontend renders the framebuffer with half block characters, two
// pixel rows per text line, and reads the keyboard from a raw mode stdin.
type Frontend struct {
	fd       int
	oldState *term.State
	out      io.Writer

	keys      chan byte
	done      chan struct{}
	closeOnce sync.Once

	mu   sync.Mutex
	held map[cpu.KeyCode]time.Time
	now  func() time.Time
}

// New switches stdin to raw mode. Call Close to restore it.
func New(in *os.File, out *os.File) (*Frontend, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("terminal display needs stdin to be a terminal")
	}
	width, height, err := term.GetSize(int(out.Fd()))
	if err != nil {
		return nil, fmt.Errorf("reading terminal size: %w", err)
	}
	if width < cpu.ScreenWidth+2 || height < cpu.ScreenHeight/2+2 {
		return nil, fmt.Errorf("terminal is %dx%d, needs at least %dx%d",
			width, height, cpu.ScreenWidth+2, cpu.ScreenHeight/2+2)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("switching terminal to raw mode: %w", err)
	}

	t := newFrontend(out)
	t.fd = fd
	t.oldState = oldState
	go t.readLoop(in)

	// clear the screen and hide the cursor
	fmt.Fprint(out, "\x1b[2J\x1b[?25l")
	return t, nil
}

func newFrontend(out io.Writer) *Frontend {
	return &Frontend{
		fd:   -1,
		out:  out,
		keys: make(chan byte, keyBuffer),
		done: make(chan struct{}),
		held: map[cpu.KeyCode]time.Time{},
		now:  time.Now,
	}
}

// readLoop feeds bytes from in to Poll until in fails or Close is called.
func (t *Frontend) readLoop(in io.Reader) {
	defer close(t.keys)

	buf := make([]byte, 16)
	for {
		n, err := in.Read(buf)
		select {
		case <-t.done:
			return
		default:
		}
		for _, b := range buf[:n] {
			select {
			case t.keys <- b:
			default:
			}
		}
		if err != nil {
			return
		}
	}
}

// Poll implements the host.Input interface.
func (t *Frontend) Poll() ([]host.KeyEvent, host.Control) {
	var events []host.KeyEvent
	var ctl host.Control

	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()

drain:
	for {
		select {
		case b, ok := <-t.keys:
			if !ok {
				ctl |= host.ControlQuit
				break drain
			}
			events, ctl = t.handleByte(b, now, events, ctl)
		default:
			break drain
		}
	}

	for key, at := range t.held {
		if now.Sub(at) >= KeyHold {
			delete(t.held, key)
			events = append(events, host.KeyEvent{Key: key, Down: false})
		}
	}
	return events, ctl
}

func (t *Frontend) handleByte(b byte, now time.Time, events []host.KeyEvent, ctl host.Control) ([]host.KeyEvent, host.Control) {
	switch b {
	case 0x1b, 0x03: // Esc, Ctrl-C
		return events, ctl | host.ControlQuit
	}
	r := rune(b)
	if key, ok := host.KeyForRune(r); ok {
		if _, down := t.held[key]; !down {
			events = append(events, host.KeyEvent{Key: key, Down: true})
		}
		t.held[key] = now
		return events, ctl
	}
	if c, ok := host.ControlForRune(r); ok {
		ctl |= c
	}
	return events, ctl
}

// Render implements the host.Display interface.
func (t *Frontend) Render(screen cpu.Screen) {
	var b strings.Builder
	b.WriteString("\x1b[H")
	b.WriteString("+" + strings.Repeat("-", cpu.ScreenWidth) + "+\r\n")
	for y := 0; y < cpu.ScreenHeight; y += 2 {
		b.WriteByte('|')
		for x := 0; x < cpu.ScreenWidth; x++ {
			upper, lower := screen[y][x], screen[y+1][x]
			switch {
			case upper && lower:
				b.WriteString("█")
			case upper:
				b.WriteString("▀")
			case lower:
				b.WriteString("▄")
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString("|\r\n")
	}
	b.WriteString("+" + strings.Repeat("-", cpu.ScreenWidth) + "+\r\n")
	_, _ = io.WriteString(t.out, b.String())
}

// Close stops reading input and restores the terminal.
func (t *Frontend) Close() error {
	t.closeOnce.Do(func() { close(t.done) })
	fmt.Fprint(t.out, "\x1b[?25h\r\n")
	if t.oldState == nil {
		return nil
	}
	return term.Restore(t.fd, t.oldState)
}

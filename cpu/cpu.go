// Package cpu implements the Chip-8 virtual machine: memory, registers,
// stack, timers, framebuffer, keypad and the 35 instruction set.
//
// The package does no I/O of its own. A host feeds it key events, calls
// Cycle at whatever instruction rate it likes, calls Tick at 60Hz and reads
// the Screen back when DrawFlag says it changed.
package cpu

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"
)

// StackDepth is the number of nested subroutine calls the stack holds.
const StackDepth = 16

// Chip8 represents an emulated Chip-8 CPU. Not that the Chip-8 was ever a real physical
// computer with a CPU, but it is fun to pretend.
//
// Every Chip8 owns all of its state, so any number of them can run side by side.
type Chip8 struct {
	// program counter
	pc uint16
	// address register
	i uint16
	// data registers. VF doubles as the carry, borrow and collision flag.
	v [16]byte

	// stack pointer, the number of return addresses on the stack
	sp    uint16
	stack [StackDepth]uint16

	memory Memory
	screen Screen
	keypad Keypad
	timers Timers

	drawFlag bool
	unknown  uint64

	logger          *log.Logger
	trace           bool
	rng             *rand.Rand
	strictAlignment bool
	onUnknown       UnknownOpcodeHandler
}

// UnknownOpcodeHandler is called with the address and word of every
// instruction that is not part of the instruction set.
type UnknownOpcodeHandler func(pc, word uint16)

// Option configures a Chip8.
type Option func(*Chip8)

// WithLogger sends fault, unknown opcode and trace lines to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Chip8) {
		c.logger = logger
	}
}

// WithTrace logs every executed instruction.
func WithTrace(trace bool) Option {
	return func(c *Chip8) {
		c.trace = trace
	}
}

// WithRandSource sets the source of random bytes for RND.
func WithRandSource(src rand.Source) Option {
	return func(c *Chip8) {
		c.rng = rand.New(src)
	}
}

// WithStrictAlignment makes fetching from an odd address a fault.
// By default the PC may hold any address a jump leaves in it.
func WithStrictAlignment(strict bool) Option {
	return func(c *Chip8) {
		c.strictAlignment = strict
	}
}

// WithUnknownOpcodeHandler registers fn to be told about unknown opcodes.
func WithUnknownOpcodeHandler(fn UnknownOpcodeHandler) Option {
	return func(c *Chip8) {
		c.onUnknown = fn
	}
}

// NewChip8 returns an initialized Chip8 with the PC at ProgramStart and no
// program loaded.
func NewChip8(opts ...Option) *Chip8 {
	c := &Chip8{
		logger: log.New(io.Discard, "chip8:", log.Ltime|log.Lmicroseconds),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c
}

// Reset clears registers, timers, stack, keypad, screen and memory, writes
// the font sprites back and points the PC at ProgramStart.
// Options given to NewChip8 survive a reset.
func (c *Chip8) Reset() {
	c.i = 0
	c.v = [16]byte{}
	c.sp = 0
	c.stack = [StackDepth]uint16{}
	c.memory = Memory{}
	c.screen.Clear()
	c.keypad.Reset()
	c.timers.Reset()
	c.drawFlag = true
	c.unknown = 0

	// set program counter to start of program memory
	c.pc = ProgramStart

	// set decimal digits in memory location
	c.memory.loadFontSprites(FontAddress)
}

// Load resets the machine and copies program into memory at ProgramStart.
func (c *Chip8) Load(program []byte) error {
	c.Reset()
	return c.memory.loadProgram(program)
}

// Fetch reads the big-endian instruction word at the PC and advances the PC
// past it.
func (c *Chip8) Fetch() (uint16, error) {
	if c.strictAlignment && c.pc%2 != 0 {
		return 0, &Fault{PC: c.pc, Err: ErrMisalignedPC}
	}
	if c.pc >= highestMemoryAddress {
		return 0, &Fault{PC: c.pc, Err: fmt.Errorf("%w: fetch at %04x", ErrAddressOutOfRange, c.pc)}
	}
	// the opcode we want to read is the next two bytes, stored big-endian.
	word := uint16(c.memory[c.pc])<<8 | uint16(c.memory[c.pc+1])
	c.pc += 2
	return word, nil
}

// Execute runs a single instruction word as if it had just been fetched,
// ie. with the PC already pointing at the following instruction.
//
// Words outside the instruction set are logged, counted and otherwise
// treated as no-ops. A faulting instruction has no effect and the PC is
// left on it.
func (c *Chip8) Execute(word uint16) error {
	in := Decode(word)
	if c.trace {
		c.logger.Printf("%03x: %04x: %v", c.pc-2, word, in)
	}
	if in.Op == OpUnknown {
		c.unknownOpcode(word)
		return nil
	}
	if err := handlers[in.Op](c, in); err != nil {
		c.pc -= 2
		f := &Fault{PC: c.pc, Opcode: word, Err: err}
		c.logger.Printf("fault: %v", f)
		return f
	}
	return nil
}

func (c *Chip8) unknownOpcode(word uint16) {
	pc := c.pc - 2
	c.unknown++
	c.logger.Printf("%03x: %04x: %v", pc, word, ErrUnknownOpcode)
	if c.onUnknown != nil {
		c.onUnknown(pc, word)
	}
}

// Cycle fetches, decodes and executes the next instruction.
func (c *Chip8) Cycle() error {
	word, err := c.Fetch()
	if err != nil {
		var f *Fault
		if errors.As(err, &f) {
			c.logger.Printf("fault: %v", f)
		}
		return err
	}
	return c.Execute(word)
}

// Tick advances the delay and sound timers by one step. It reports whether
// the tone should sound for this tick. Tick may be called from a different
// goroutine than Cycle.
func (c *Chip8) Tick() bool {
	return c.timers.Tick()
}

// KeyDown latches key as pressed. It may be called from any goroutine.
func (c *Chip8) KeyDown(key KeyCode) {
	c.keypad.Press(key)
}

// KeyUp latches key as released. It may be called from any goroutine.
func (c *Chip8) KeyUp(key KeyCode) {
	c.keypad.Release(key)
}

// Screen returns a copy of the framebuffer. The draw flag is left alone.
func (c *Chip8) Screen() Screen {
	return c.screen
}

// TakeScreen returns a copy of the framebuffer and clears the draw flag.
// Hosts call it when they present a frame, so that DrawFlag reports only
// changes made since.
func (c *Chip8) TakeScreen() Screen {
	c.drawFlag = false
	return c.screen
}

// DrawFlag reports whether the screen changed since the last TakeScreen.
func (c *Chip8) DrawFlag() bool {
	return c.drawFlag
}

// UnknownOpcodes returns the number of unknown opcodes executed since the last reset.
func (c *Chip8) UnknownOpcodes() uint64 {
	return c.unknown
}

// State is a read-only snapshot of the machine.
type State struct {
	PC     uint16
	I      uint16
	V      [16]byte
	DT     byte
	ST     byte
	SP     uint16
	Stack  []uint16
	Keys   [NumKeys]bool
	Memory Memory
	Screen Screen
}

// Snapshot returns a static copy of the Chip8 at the moment the method is called.
func (c *Chip8) Snapshot() State {
	stack := make([]uint16, c.sp)
	copy(stack, c.stack[:c.sp])
	return State{
		PC:     c.pc,
		I:      c.i,
		V:      c.v,
		DT:     c.timers.Delay(),
		ST:     c.timers.Sound(),
		SP:     c.sp,
		Stack:  stack,
		Keys:   c.keypad.State(),
		Memory: c.memory,
		Screen: c.screen,
	}
}

// String formats the registers the way a debugger would show them.
func (s State) String() string {
	out := fmt.Sprintf("PC=%03x I=%03x SP=%d DT=%02x ST=%02x\n", s.PC, s.I, s.SP, s.DT, s.ST)
	for i, v := range s.V {
		out += fmt.Sprintf("V%X=%02x", i, v)
		if i%8 == 7 {
			out += "\n"
		} else {
			out += " "
		}
	}
	out += fmt.Sprintf("stack: %03x\n", s.Stack)
	return out
}

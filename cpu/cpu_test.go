package cpu

import (
	"bytes"
	"errors"
	"log"
	"math/rand"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// newTestChip8 returns a Chip8 with the given instruction words loaded at
// ProgramStart and a fixed random seed.
func newTestChip8(t *testing.T, words ...uint16) *Chip8 {
	t.Helper()
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	c := NewChip8(WithRandSource(rand.NewSource(1)))
	assert.NoError(t, c.Load(program))
	return c
}

func step(t *testing.T, c *Chip8, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		assert.NoError(t, c.Cycle())
	}
}

func TestReset(t *testing.T) {
	c := newTestChip8(t, 0x6005, 0xa123, 0x2300)
	step(t, c, 3)
	c.KeyDown(KeyA)
	c.timers.SetDelay(9)
	c.screen[0][0] = true

	c.Reset()
	s := c.Snapshot()

	assert.Equal(t, ProgramStart, s.PC)
	assert.Equal(t, uint16(0), s.I)
	assert.Equal(t, uint16(0), s.SP)
	assert.Equal(t, [16]byte{}, s.V)
	assert.Equal(t, byte(0), s.DT)
	assert.Equal(t, [NumKeys]bool{}, s.Keys)
	assert.Equal(t, Screen{}, s.Screen)
	assert.Equal(t, byte(0xF0), s.Memory[0])
	assert.Equal(t, byte(0x80), s.Memory[79])
	// the program is gone after a reset
	assert.Equal(t, byte(0), s.Memory[ProgramStart])
}

func TestLoadSetFirstRegister(t *testing.T) {
	c := NewChip8()
	assert.NoError(t, c.Load([]byte{0x60, 0x05}))

	assert.NoError(t, c.Cycle())

	s := c.Snapshot()
	assert.Equal(t, byte(5), s.V[0])
	assert.Equal(t, uint16(0x202), s.PC)
}

func TestLoadTooLarge(t *testing.T) {
	c := NewChip8()
	assert.NoError(t, c.Load(make([]byte, MaxROMSize)))

	err := c.Load(make([]byte, MaxROMSize+1))
	assert.True(t, errors.Is(err, ErrROMTooLarge))
}

func TestFetch(t *testing.T) {
	c := newTestChip8(t, 0xabcd)

	word, err := c.Fetch()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xabcd), word)
	assert.Equal(t, uint16(0x202), c.pc)
}

func TestFetchOutOfRange(t *testing.T) {
	c := newTestChip8(t)
	c.pc = 0xffe
	_, err := c.Fetch()
	assert.NoError(t, err)

	c.pc = 0xfff
	_, err = c.Fetch()
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))

	var f *Fault
	assert.True(t, errors.As(err, &f))
	assert.Equal(t, uint16(0xfff), f.PC)
	assert.Equal(t, uint16(0xfff), c.pc)
}

func TestFetchAlignment(t *testing.T) {
	c := newTestChip8(t, 0x1201, 0x6005, 0x0000)
	// 1201 jumps to an odd address, which lenient mode happily runs from
	step(t, c, 2)
	assert.Equal(t, uint16(0x203), c.pc)

	strict := NewChip8(WithStrictAlignment(true))
	assert.NoError(t, strict.Load([]byte{0x12, 0x01}))
	assert.NoError(t, strict.Cycle())
	err := strict.Cycle()
	assert.True(t, errors.Is(err, ErrMisalignedPC))
}

func TestPCAdvancesByTwo(t *testing.T) {
	words := []uint16{
		0x00e0, 0x0123, 0x6a12, 0x7a01, 0x8ab0, 0x8ab1, 0x8ab2, 0x8ab3,
		0x8ab4, 0x8ab5, 0x8ab6, 0x8ab7, 0x8abe, 0xa300, 0xca0f, 0xd001,
		0xfa07, 0xfa15, 0xfa18, 0xfa1e, 0xfa29, 0xfa33, 0xf155, 0xf165,
	}
	c := newTestChip8(t, words...)
	for i := range words {
		pc := c.pc
		assert.NoError(t, c.Cycle())
		assert.Equal(t, pc+2, c.pc, Decode(words[i]).String())
	}
}

func TestCallReturn(t *testing.T) {
	c := newTestChip8(t,
		0x2206, // 200: CALL 206
		0x6101, // 202: LD V1, 1
		0x1204, // 204: JP 204
		0x6202, // 206: LD V2, 2
		0x00ee, // 208: RET
	)

	step(t, c, 1)
	assert.Equal(t, uint16(0x206), c.pc)
	assert.Equal(t, uint16(1), c.sp)

	step(t, c, 2)
	assert.Equal(t, uint16(0x202), c.pc)
	assert.Equal(t, uint16(0), c.sp)

	step(t, c, 1)
	assert.Equal(t, byte(1), c.v[1])
	assert.Equal(t, byte(2), c.v[2])
}

func TestStackOverflow(t *testing.T) {
	// 200: CALL 200, forever
	c := newTestChip8(t, 0x2200)
	step(t, c, StackDepth)

	err := c.Cycle()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	var f *Fault
	assert.True(t, errors.As(err, &f))
	assert.Equal(t, uint16(0x2200), f.Opcode)

	// the faulting call had no effect
	assert.Equal(t, uint16(StackDepth), c.sp)
	assert.Equal(t, uint16(0x200), c.pc)
}

func TestStackUnderflow(t *testing.T) {
	c := newTestChip8(t, 0x00ee)

	err := c.Cycle()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(0x200), c.pc)
	assert.Equal(t, uint16(0), c.sp)
}

func TestUnknownOpcode(t *testing.T) {
	var buf bytes.Buffer
	var seenPC, seenWord uint16
	c := NewChip8(
		WithLogger(log.New(&buf, "", 0)),
		WithUnknownOpcodeHandler(func(pc, word uint16) {
			seenPC, seenWord = pc, word
		}),
	)
	// 5121 and 8128 are unknown, followed by LD V0, 7
	assert.NoError(t, c.Load([]byte{0x51, 0x21, 0x81, 0x28, 0x60, 0x07}))

	assert.NoError(t, c.Cycle())
	assert.Equal(t, uint16(0x200), seenPC)
	assert.Equal(t, uint16(0x5121), seenWord)

	assert.NoError(t, c.Cycle())
	assert.NoError(t, c.Cycle())

	assert.Equal(t, uint64(2), c.UnknownOpcodes())
	assert.Equal(t, byte(7), c.v[0])
	assert.Equal(t, uint16(0x206), c.pc)
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("unknown opcode")))
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	c := NewChip8(WithLogger(log.New(&buf, "", 0)), WithTrace(true))
	assert.NoError(t, c.Load([]byte{0x60, 0x05}))
	assert.NoError(t, c.Cycle())

	assert.Equal(t, "200: 6005: LD V0, 0x05\n", buf.String())
}

func TestIndependentInstances(t *testing.T) {
	a := newTestChip8(t, 0x6011)
	b := newTestChip8(t, 0x6022)
	step(t, a, 1)
	step(t, b, 1)
	assert.Equal(t, byte(0x11), a.v[0])
	assert.Equal(t, byte(0x22), b.v[0])
}

func TestSnapshotCopies(t *testing.T) {
	c := newTestChip8(t, 0x2204, 0x0000, 0x6001)
	step(t, c, 1)

	s := c.Snapshot()
	assert.Equal(t, 1, len(s.Stack))
	assert.Equal(t, uint16(0x202), s.Stack[0])

	s.Stack[0] = 0
	s.Memory[0x300] = 0xff
	assert.Equal(t, uint16(0x202), c.stack[0])
	assert.Equal(t, byte(0), c.memory[0x300])
}

func TestDrawFlag(t *testing.T) {
	c := newTestChip8(t, 0xd001, 0x6000)
	_ = c.TakeScreen()
	assert.False(t, c.DrawFlag())

	step(t, c, 1)
	assert.True(t, c.DrawFlag())
	_ = c.TakeScreen()
	assert.False(t, c.DrawFlag())

	step(t, c, 1)
	assert.False(t, c.DrawFlag())
}

func TestScreenKeepsDrawFlag(t *testing.T) {
	c := newTestChip8(t, 0xd005)
	step(t, c, 1)
	assert.True(t, c.DrawFlag())

	screen := c.Screen()
	assert.True(t, screen[0][0])
	assert.True(t, c.DrawFlag())

	taken := c.TakeScreen()
	assert.Equal(t, screen, taken)
	assert.False(t, c.DrawFlag())
}

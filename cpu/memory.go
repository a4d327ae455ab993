package cpu

import "fmt"

const (
	// MemorySize is the number of addressable bytes.
	MemorySize = 4096
	// ProgramStart is where programs are loaded and where the PC points after a reset.
	ProgramStart uint16 = 0x200
	// FontAddress is where the built-in hex digit sprites live.
	FontAddress uint16 = 0x000
	// FontGlyphSize is the height, in bytes, of one digit sprite.
	FontGlyphSize = 5

	// The COSMAC VIP kept its stack at 0xEA0 and its video memory at 0xF00,
	// so programs never grew past stackAddress. We keep the stack and the
	// screen out of memory, but still refuse programs that reach into that region.
	stackAddress         uint16 = 0xEA0
	highestMemoryAddress uint16 = 0xFFF

	// MaxROMSize is the largest program Load accepts.
	MaxROMSize = int(stackAddress - ProgramStart)
)

var fontSpriteData = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4 KiB address space of the machine.
//
// Reads and writes through an address wrap at the 4 KiB boundary: only the
// low 12 bits of an address are meaningful, the same way only the low 12 bits
// of the I register are.
type Memory [MemorySize]byte

// Read returns the byte at addr, wrapping addr into the address space.
func (m *Memory) Read(addr uint16) byte {
	return m[addr&highestMemoryAddress]
}

// Write stores b at addr, wrapping addr into the address space.
func (m *Memory) Write(addr uint16, b byte) {
	m[addr&highestMemoryAddress] = b
}

// loadFontSprites writes the 16 digit glyphs, five bytes each, starting at
// startAddress.
func (m *Memory) loadFontSprites(startAddress uint16) {
	for i, b := range fontSpriteData {
		m.Write(startAddress+uint16(i), b)
	}
}

// loadProgram copies program into memory starting at ProgramStart.
func (m *Memory) loadProgram(program []byte) error {
	if len(program) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, at most %d fit at %03x", ErrROMTooLarge, len(program), MaxROMSize, ProgramStart)
	}
	copy(m[ProgramStart:], program)
	return nil
}

// fontAddress returns the address of the glyph for digit.
func fontAddress(digit byte) uint16 {
	// each sprite corresponds to one digit and is five bytes tall,
	// and digits are stored in increasing order. So the sprite for '5'
	// starts five glyphs away from the font address.
	return FontAddress + uint16(digit)*FontGlyphSize
}

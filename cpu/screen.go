package cpu

import "strings"

const (
	ScreenWidth  = 64
	ScreenHeight = 32

	spriteWidth = 8
)

// Screen is the 64x32 monochrome framebuffer, indexed [row][column] with
// the origin at the top-left corner. A true pixel is lit.
type Screen [ScreenHeight][ScreenWidth]bool

// Clear turns every pixel off.
func (s *Screen) Clear() {
	*s = Screen{}
}

// DrawSprite XORs sprite onto the screen with its top-left corner at x, y.
// Each byte of sprite is one 8 pixel row, most significant bit leftmost.
// Pixels that fall off an edge wrap around to the opposite edge.
//
// It returns true if the sprite turned off any pixel that was already lit,
// otherwise false.
func (s *Screen) DrawSprite(sprite []byte, x, y byte) bool {
	collision := false
	for row, line := range sprite {
		yOffset := (int(y) + row) % ScreenHeight
		for col := 0; col < spriteWidth; col++ {
			// the leftmost pixel of the row is the highest bit of the byte
			if line&(0x80>>col) == 0 {
				continue
			}
			xOffset := (int(x) + col) % ScreenWidth
			if s[yOffset][xOffset] {
				collision = true
			}
			s[yOffset][xOffset] = !s[yOffset][xOffset]
		}
	}
	return collision
}

// Lit returns the number of pixels that are on.
func (s *Screen) Lit() int {
	n := 0
	for _, row := range s {
		for _, px := range row {
			if px {
				n++
			}
		}
	}
	return n
}

// String draws the screen as a bordered block of text, one character per
// pixel, '*' for lit pixels.
func (s *Screen) String() string {
	var b strings.Builder
	border := "+" + strings.Repeat("-", ScreenWidth) + "+\n"

	b.WriteString(border)
	for _, row := range s {
		b.WriteByte('|')
		for _, px := range row {
			if px {
				b.WriteByte('*')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}

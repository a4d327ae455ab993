package cpu

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawSpriteCollision(t *testing.T) {
	var s Screen
	assert.False(t, s.DrawSprite([]byte{0xf0}, 0, 0))
	assert.Equal(t, 4, s.Lit())

	// overlaps one lit pixel, turns it off and lights three new ones
	assert.True(t, s.DrawSprite([]byte{0x1e}, 0, 0))
	assert.False(t, s[0][3])
	assert.Equal(t, 6, s.Lit())
}

func TestDrawSpriteCornerWrap(t *testing.T) {
	var s Screen
	s.DrawSprite([]byte{0xc0, 0xc0}, 63, 31)

	assert.True(t, s[31][63])
	assert.True(t, s[31][0])
	assert.True(t, s[0][63])
	assert.True(t, s[0][0])
	assert.Equal(t, 4, s.Lit())
}

func TestDrawSpriteLargeCoordinates(t *testing.T) {
	var s Screen
	s.DrawSprite([]byte{0x80}, 200, 100)
	assert.True(t, s[100%ScreenHeight][200%ScreenWidth])
}

func TestScreenClear(t *testing.T) {
	var s Screen
	s.DrawSprite([]byte{0xff, 0xff}, 5, 5)
	s.Clear()
	assert.Equal(t, 0, s.Lit())
}

func TestScreenString(t *testing.T) {
	var s Screen
	s[0][0] = true
	s[31][63] = true

	lines := strings.Split(strings.TrimSuffix(s.String(), "\n"), "\n")
	assert.Equal(t, ScreenHeight+2, len(lines))
	assert.Equal(t, "+"+strings.Repeat("-", ScreenWidth)+"+", lines[0])
	assert.Equal(t, "|*"+strings.Repeat(" ", ScreenWidth-1)+"|", lines[1])
	assert.Equal(t, "|"+strings.Repeat(" ", ScreenWidth-1)+"*|", lines[ScreenHeight])
}

package host

import (
	"testing"

	"github.com/mpingram/chip8/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestLayoutCoversKeypad(t *testing.T) {
	seen := map[cpu.KeyCode]bool{}
	for _, k := range Layout {
		seen[k] = true
	}
	assert.Equal(t, cpu.NumKeys, len(seen))
}

func TestKeyForRune(t *testing.T) {
	tests := []struct {
		r    rune
		key  cpu.KeyCode
		isOK bool
	}{
		{'1', cpu.Key1, true},
		{'4', cpu.KeyC, true},
		{'Q', cpu.Key4, true},
		{'x', cpu.Key0, true},
		{'V', cpu.KeyF, true},
		{'m', 0, false},
	}
	for _, tt := range tests {
		key, ok := KeyForRune(tt.r)
		assert.Equal(t, tt.isOK, ok, string(tt.r))
		assert.Equal(t, tt.key, key, string(tt.r))
	}
}

func TestControlForRune(t *testing.T) {
	c, ok := ControlForRune('P')
	assert.True(t, ok)
	assert.Equal(t, ControlPause, c)

	_, ok = ControlForRune('w')
	assert.False(t, ok)
}

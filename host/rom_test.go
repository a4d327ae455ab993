package host

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mpingram/chip8/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadROM(t *testing.T) {
	path := writeFile(t, []byte{0x60, 0x05})
	rom, err := LoadROM(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(rom))
	assert.Equal(t, byte(0x60), rom[0])
}

func TestLoadROMErrors(t *testing.T) {
	_, err := LoadROM(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	empty := writeFile(t, nil)
	_, err = LoadROM(empty)
	assert.Error(t, err, "reading rom '"+empty+"': file is empty")

	_, err = LoadROM(writeFile(t, make([]byte, cpu.MaxROMSize+1)))
	assert.True(t, errors.Is(err, cpu.ErrROMTooLarge))
}

package host

import (
	"errors"
	"fmt"
	"os"

	"github.com/mpingram/chip8/cpu"
)

// LoadROM reads a program from disk and checks that it fits in memory.
func LoadROM(path string) ([]byte, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom '%s': %w", path, err)
	}
	if len(rom) == 0 {
		return nil, fmt.Errorf("reading rom '%s': %w", path, errors.New("file is empty"))
	}
	if len(rom) > cpu.MaxROMSize {
		return nil, fmt.Errorf("reading rom '%s': %w: %d bytes", path, cpu.ErrROMTooLarge, len(rom))
	}
	return rom, nil
}

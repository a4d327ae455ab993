package cpu

import "sync"

// A KeyCode is a number that represents a key on the Chip-8 hexadecimal keyboard.
// Only the numbers 0x0 through 0xF are valid KeyCodes.
type KeyCode byte

const (
	Key0 KeyCode = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF

	// NumKeys is the number of keys on the keypad.
	NumKeys = 16
)

// Keypad is the input latch: one pressed/released state per key.
// The host writes it from its input thread, the CPU only reads it.
type Keypad struct {
	mu    sync.Mutex
	state [NumKeys]bool
}

// Press latches key k as held down. Out of range keys are ignored.
func (k *Keypad) Press(key KeyCode) {
	k.set(key, true)
}

// Release latches key k as released. Out of range keys are ignored.
func (k *Keypad) Release(key KeyCode) {
	k.set(key, false)
}

func (k *Keypad) set(key KeyCode, down bool) {
	if key >= NumKeys {
		return
	}
	k.mu.Lock()
	k.state[key] = down
	k.mu.Unlock()
}

// IsPressed reports whether key is held down. Only the low nibble of key is
// significant, so a register value can be passed straight through.
func (k *Keypad) IsPressed(key byte) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state[key&0x0f]
}

// FirstPressed returns the lowest numbered key that is held down.
func (k *Keypad) FirstPressed() (KeyCode, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i, down := range k.state {
		if down {
			return KeyCode(i), true
		}
	}
	return 0, false
}

// State returns a copy of the latch.
func (k *Keypad) State() [NumKeys]bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

// Reset releases every key.
func (k *Keypad) Reset() {
	k.mu.Lock()
	k.state = [NumKeys]bool{}
	k.mu.Unlock()
}

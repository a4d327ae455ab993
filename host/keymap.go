package host

import (
	"unicode"

	"github.com/mpingram/chip8/cpu"
)

// Layout maps the left hand side of a QWERTY keyboard onto the hex keypad:
//
//	keyboard      keypad
//	1 2 3 4      1 2 3 C
//	Q W E R      4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var Layout = map[rune]cpu.KeyCode{
	'1': cpu.Key1, '2': cpu.Key2, '3': cpu.Key3, '4': cpu.KeyC,
	'q': cpu.Key4, 'w': cpu.Key5, 'e': cpu.Key6, 'r': cpu.KeyD,
	'a': cpu.Key7, 's': cpu.Key8, 'd': cpu.Key9, 'f': cpu.KeyE,
	'z': cpu.KeyA, 'x': cpu.Key0, 'c': cpu.KeyB, 'v': cpu.KeyF,
}

// Controls maps keyboard keys to emulator controls.
var Controls = map[rune]Control{
	'p': ControlPause,
	'[': ControlResume,
	']': ControlStep,
	'o': ControlDump,
}

// KeyForRune returns the keypad key for a keyboard character, ignoring case.
func KeyForRune(r rune) (cpu.KeyCode, bool) {
	k, ok := Layout[unicode.ToLower(r)]
	return k, ok
}

// ControlForRune returns the emulator control for a keyboard character, ignoring case.
func ControlForRune(r rune) (Control, bool) {
	c, ok := Controls[unicode.ToLower(r)]
	return c, ok
}

package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is raised by CALL when all stack slots are in use.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is raised by RET when the stack is empty.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrAddressOutOfRange is raised when an instruction fetch reaches past
	// the end of memory.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrMisalignedPC is raised by a fetch from an odd address when strict
	// alignment is enabled.
	ErrMisalignedPC = errors.New("misaligned program counter")
	// ErrROMTooLarge is returned by Load when the program does not fit
	// between ProgramStart and the reserved region.
	ErrROMTooLarge = errors.New("rom too large")
	// ErrUnknownOpcode identifies an instruction word outside the instruction set.
	// It is passed to the unknown opcode handler and never returned by Cycle.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// A Fault is an error raised while executing a single instruction.
// The instruction that faulted has no effect on the machine state.
type Fault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%03x: %04x: %v", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

package cpu

import (
	"fmt"
	"io"
)

// Disassemble writes one line per instruction word of program, as it would
// sit in memory starting at ProgramStart:
//
//	200: 6005  LD V0, 0x05
//
// Words outside the instruction set are written as DW data. A trailing odd
// byte is written as DB.
func Disassemble(w io.Writer, program []byte) error {
	addr := ProgramStart
	for i := 0; i+1 < len(program); i += 2 {
		word := uint16(program[i])<<8 | uint16(program[i+1])
		if _, err := fmt.Fprintf(w, "%03x: %04x  %v\n", addr, word, Decode(word)); err != nil {
			return err
		}
		addr += 2
	}
	if len(program)%2 != 0 {
		last := program[len(program)-1]
		if _, err := fmt.Fprintf(w, "%03x: %02x    DB 0x%02x\n", addr, last, last); err != nil {
			return err
		}
	}
	return nil
}

package cpu

import "fmt"

// Op identifies one of the 35 instructions, or OpUnknown.
type Op uint8

const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpSYS        // 0nnn
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEByte     // 3xkk
	OpSNEByte    // 4xkk
	OpSEReg      // 5xy0
	OpLDByte     // 6xkk
	OpADDByte    // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65

	opCount
)

// Instruction is a decoded instruction word.
//
// key:
// ------
// NNN - low 12 bits of the word
// N - low 4 bits of the word
// X - low 4 bits of the word's high byte
// Y - high 4 bits of the word's low byte
// KK - the word's low byte
type Instruction struct {
	Op   Op
	Word uint16
	X    byte
	Y    byte
	N    byte
	KK   byte
	NNN  uint16
}

// Decode classifies an instruction word. Words that are not part of the
// instruction set decode to OpUnknown.
func Decode(word uint16) Instruction {
	in := Instruction{
		Word: word,
		X:    byte(word & 0x0f00 >> 8),
		Y:    byte(word & 0x00f0 >> 4),
		N:    byte(word & 0x000f),
		KK:   byte(word & 0x00ff),
		NNN:  word & 0x0fff,
	}
	in.Op = decodeOp(word)
	return in
}

func decodeOp(word uint16) Op {
	switch word & 0xf000 >> 12 {
	case 0x0:
		switch word {
		case 0x00e0:
			return OpCLS
		case 0x00ee:
			return OpRET
		}
		return OpSYS
	case 0x1:
		return OpJP
	case 0x2:
		return OpCALL
	case 0x3:
		return OpSEByte
	case 0x4:
		return OpSNEByte
	case 0x5:
		if word&0x000f == 0 {
			return OpSEReg
		}
	case 0x6:
		return OpLDByte
	case 0x7:
		return OpADDByte
	case 0x8:
		if op, ok := aluOps[word&0x000f]; ok {
			return op
		}
	case 0x9:
		if word&0x000f == 0 {
			return OpSNEReg
		}
	case 0xa:
		return OpLDI
	case 0xb:
		return OpJPV0
	case 0xc:
		return OpRND
	case 0xd:
		return OpDRW
	case 0xe:
		switch word & 0x00ff {
		case 0x9e:
			return OpSKP
		case 0xa1:
			return OpSKNP
		}
	case 0xf:
		if op, ok := miscOps[word&0x00ff]; ok {
			return op
		}
	}
	return OpUnknown
}

var aluOps = map[uint16]Op{
	0x0: OpLDReg,
	0x1: OpOR,
	0x2: OpAND,
	0x3: OpXOR,
	0x4: OpADDReg,
	0x5: OpSUB,
	0x6: OpSHR,
	0x7: OpSUBN,
	0xe: OpSHL,
}

var miscOps = map[uint16]Op{
	0x07: OpLDVxDT,
	0x0a: OpLDVxK,
	0x15: OpLDDTVx,
	0x18: OpLDSTVx,
	0x1e: OpADDI,
	0x29: OpLDF,
	0x33: OpLDB,
	0x55: OpLDIVx,
	0x65: OpLDVxI,
}

// String returns the assembly mnemonic for the instruction, eg. "LD V3, 0x2a".
func (in Instruction) String() string {
	switch in.Op {
	case OpCLS:
		return "CLS"
	case OpRET:
		return "RET"
	case OpSYS:
		return fmt.Sprintf("SYS 0x%03x", in.NNN)
	case OpJP:
		return fmt.Sprintf("JP 0x%03x", in.NNN)
	case OpCALL:
		return fmt.Sprintf("CALL 0x%03x", in.NNN)
	case OpSEByte:
		return fmt.Sprintf("SE V%X, 0x%02x", in.X, in.KK)
	case OpSNEByte:
		return fmt.Sprintf("SNE V%X, 0x%02x", in.X, in.KK)
	case OpSEReg:
		return fmt.Sprintf("SE V%X, V%X", in.X, in.Y)
	case OpLDByte:
		return fmt.Sprintf("LD V%X, 0x%02x", in.X, in.KK)
	case OpADDByte:
		return fmt.Sprintf("ADD V%X, 0x%02x", in.X, in.KK)
	case OpLDReg:
		return fmt.Sprintf("LD V%X, V%X", in.X, in.Y)
	case OpOR:
		return fmt.Sprintf("OR V%X, V%X", in.X, in.Y)
	case OpAND:
		return fmt.Sprintf("AND V%X, V%X", in.X, in.Y)
	case OpXOR:
		return fmt.Sprintf("XOR V%X, V%X", in.X, in.Y)
	case OpADDReg:
		return fmt.Sprintf("ADD V%X, V%X", in.X, in.Y)
	case OpSUB:
		return fmt.Sprintf("SUB V%X, V%X", in.X, in.Y)
	case OpSHR:
		return fmt.Sprintf("SHR V%X, V%X", in.X, in.Y)
	case OpSUBN:
		return fmt.Sprintf("SUBN V%X, V%X", in.X, in.Y)
	case OpSHL:
		return fmt.Sprintf("SHL V%X, V%X", in.X, in.Y)
	case OpSNEReg:
		return fmt.Sprintf("SNE V%X, V%X", in.X, in.Y)
	case OpLDI:
		return fmt.Sprintf("LD I, 0x%03x", in.NNN)
	case OpJPV0:
		return fmt.Sprintf("JP V0, 0x%03x", in.NNN)
	case OpRND:
		return fmt.Sprintf("RND V%X, 0x%02x", in.X, in.KK)
	case OpDRW:
		return fmt.Sprintf("DRW V%X, V%X, %d", in.X, in.Y, in.N)
	case OpSKP:
		return fmt.Sprintf("SKP V%X", in.X)
	case OpSKNP:
		return fmt.Sprintf("SKNP V%X", in.X)
	case OpLDVxDT:
		return fmt.Sprintf("LD V%X, DT", in.X)
	case OpLDVxK:
		return fmt.Sprintf("LD V%X, K", in.X)
	case OpLDDTVx:
		return fmt.Sprintf("LD DT, V%X", in.X)
	case OpLDSTVx:
		return fmt.Sprintf("LD ST, V%X", in.X)
	case OpADDI:
		return fmt.Sprintf("ADD I, V%X", in.X)
	case OpLDF:
		return fmt.Sprintf("LD F, V%X", in.X)
	case OpLDB:
		return fmt.Sprintf("LD B, V%X", in.X)
	case OpLDIVx:
		return fmt.Sprintf("LD [I], V%X", in.X)
	case OpLDVxI:
		return fmt.Sprintf("LD V%X, [I]", in.X)
	}
	return fmt.Sprintf("DW 0x%04x", in.Word)
}

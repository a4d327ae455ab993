package cpu

import "fmt"

type handler func(c *Chip8, in Instruction) error

// handlers maps every known Op to its implementation. When a handler runs,
// the PC already points at the next instruction.
var handlers = [opCount]handler{
	OpCLS:     (*Chip8).cls,
	OpRET:     (*Chip8).ret,
	OpSYS:     (*Chip8).sys,
	OpJP:      (*Chip8).jp,
	OpCALL:    (*Chip8).call,
	OpSEByte:  (*Chip8).seByte,
	OpSNEByte: (*Chip8).sneByte,
	OpSEReg:   (*Chip8).seReg,
	OpLDByte:  (*Chip8).ldByte,
	OpADDByte: (*Chip8).addByte,
	OpLDReg:   (*Chip8).ldReg,
	OpOR:      (*Chip8).or,
	OpAND:     (*Chip8).and,
	OpXOR:     (*Chip8).xor,
	OpADDReg:  (*Chip8).addReg,
	OpSUB:     (*Chip8).sub,
	OpSHR:     (*Chip8).shr,
	OpSUBN:    (*Chip8).subn,
	OpSHL:     (*Chip8).shl,
	OpSNEReg:  (*Chip8).sneReg,
	OpLDI:     (*Chip8).ldI,
	OpJPV0:    (*Chip8).jpV0,
	OpRND:     (*Chip8).rnd,
	OpDRW:     (*Chip8).drw,
	OpSKP:     (*Chip8).skp,
	OpSKNP:    (*Chip8).sknp,
	OpLDVxDT:  (*Chip8).ldVxDT,
	OpLDVxK:   (*Chip8).ldVxK,
	OpLDDTVx:  (*Chip8).ldDTVx,
	OpLDSTVx:  (*Chip8).ldSTVx,
	OpADDI:    (*Chip8).addI,
	OpLDF:     (*Chip8).ldF,
	OpLDB:     (*Chip8).ldB,
	OpLDIVx:   (*Chip8).ldIVx,
	OpLDVxI:   (*Chip8).ldVxI,
}

func (c *Chip8) skipIf(cond bool) {
	if cond {
		c.pc += 2
	}
}

// setWithFlag stores result in Vx and then flag in VF, so that when x is
// 0xF the flag wins.
func (c *Chip8) setWithFlag(x, result, flag byte) {
	c.v[x] = result
	c.v[0xf] = flag
}

func boolToFlag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// 00E0: CLS (clear)
func (c *Chip8) cls(Instruction) error {
	c.screen.Clear()
	c.drawFlag = true
	return nil
}

// 00EE: RET (return)
func (c *Chip8) ret(Instruction) error {
	if c.sp == 0 {
		return ErrStackUnderflow
	}
	c.sp--
	c.pc = c.stack[c.sp]
	return nil
}

// 0nnn: SYS addr. Machine code routines of the original interpreter can't
// be run here, so this does nothing.
func (c *Chip8) sys(Instruction) error {
	return nil
}

// 1nnn: JP addr
func (c *Chip8) jp(in Instruction) error {
	c.pc = in.NNN
	return nil
}

// 2nnn: CALL addr
func (c *Chip8) call(in Instruction) error {
	if c.sp >= StackDepth {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, StackDepth)
	}
	c.stack[c.sp] = c.pc
	c.sp++
	c.pc = in.NNN
	return nil
}

// 3xkk: SE Vx byte (skip if equal)
func (c *Chip8) seByte(in Instruction) error {
	c.skipIf(c.v[in.X] == in.KK)
	return nil
}

// 4xkk: SNE Vx byte (skip if not equal)
func (c *Chip8) sneByte(in Instruction) error {
	c.skipIf(c.v[in.X] != in.KK)
	return nil
}

// 5xy0: SE Vx Vy (skip if equal)
func (c *Chip8) seReg(in Instruction) error {
	c.skipIf(c.v[in.X] == c.v[in.Y])
	return nil
}

// 6xkk: LD Vx byte
func (c *Chip8) ldByte(in Instruction) error {
	c.v[in.X] = in.KK
	return nil
}

// 7xkk: ADD Vx byte. VF is left alone.
func (c *Chip8) addByte(in Instruction) error {
	c.v[in.X] += in.KK
	return nil
}

// 8xy0: LD Vx Vy
func (c *Chip8) ldReg(in Instruction) error {
	c.v[in.X] = c.v[in.Y]
	return nil
}

// 8xy1: OR Vx Vy
func (c *Chip8) or(in Instruction) error {
	c.v[in.X] |= c.v[in.Y]
	return nil
}

// 8xy2: AND Vx Vy
func (c *Chip8) and(in Instruction) error {
	c.v[in.X] &= c.v[in.Y]
	return nil
}

// 8xy3: XOR Vx Vy
func (c *Chip8) xor(in Instruction) error {
	c.v[in.X] ^= c.v[in.Y]
	return nil
}

// 8xy4: ADD Vx Vy, VF = carry
func (c *Chip8) addReg(in Instruction) error {
	vx, vy := c.v[in.X], c.v[in.Y]
	sum := uint16(vx) + uint16(vy)
	c.setWithFlag(in.X, byte(sum), boolToFlag(sum > 0xff))
	return nil
}

// 8xy5: SUB Vx Vy, VF = not borrow
func (c *Chip8) sub(in Instruction) error {
	vx, vy := c.v[in.X], c.v[in.Y]
	c.setWithFlag(in.X, vx-vy, boolToFlag(vx >= vy))
	return nil
}

// 8xy6: SHR Vx, VF = the bit shifted out
func (c *Chip8) shr(in Instruction) error {
	vx := c.v[in.X]
	c.setWithFlag(in.X, vx>>1, vx&0x01)
	return nil
}

// 8xy7: SUBN Vx Vy, Vx = Vy - Vx, VF = not borrow
func (c *Chip8) subn(in Instruction) error {
	vx, vy := c.v[in.X], c.v[in.Y]
	c.setWithFlag(in.X, vy-vx, boolToFlag(vy >= vx))
	return nil
}

// 8xyE: SHL Vx, VF = the bit shifted out
func (c *Chip8) shl(in Instruction) error {
	vx := c.v[in.X]
	c.setWithFlag(in.X, vx<<1, vx>>7)
	return nil
}

// 9xy0: SNE Vx Vy (skip if not equal)
func (c *Chip8) sneReg(in Instruction) error {
	c.skipIf(c.v[in.X] != c.v[in.Y])
	return nil
}

// Annn: LD I addr
func (c *Chip8) ldI(in Instruction) error {
	c.i = in.NNN
	return nil
}

// Bnnn: JP V0 addr
func (c *Chip8) jpV0(in Instruction) error {
	c.pc = in.NNN + uint16(c.v[0])
	return nil
}

// Cxkk: RND Vx byte
func (c *Chip8) rnd(in Instruction) error {
	c.v[in.X] = byte(c.rng.Intn(256)) & in.KK
	return nil
}

// Dxyn: DRW Vx Vy n. Draws the n byte sprite at I to Vx, Vy, VF = collision.
func (c *Chip8) drw(in Instruction) error {
	sprite := make([]byte, in.N)
	for row := range sprite {
		sprite[row] = c.memory.Read(c.i + uint16(row))
	}
	x, y := c.v[in.X], c.v[in.Y]
	c.v[0xf] = 0
	if c.screen.DrawSprite(sprite, x, y) {
		c.v[0xf] = 1
	}
	c.drawFlag = true
	return nil
}

// Ex9E: SKP Vx (skip if the key in Vx is down)
func (c *Chip8) skp(in Instruction) error {
	c.skipIf(c.keypad.IsPressed(c.v[in.X]))
	return nil
}

// ExA1: SKNP Vx (skip if the key in Vx is up)
func (c *Chip8) sknp(in Instruction) error {
	c.skipIf(!c.keypad.IsPressed(c.v[in.X]))
	return nil
}

// Fx07: LD Vx DT
func (c *Chip8) ldVxDT(in Instruction) error {
	c.v[in.X] = c.timers.Delay()
	return nil
}

// Fx0A: LD Vx K (wait for key press, store value of key press in Vx)
func (c *Chip8) ldVxK(in Instruction) error {
	key, ok := c.keypad.FirstPressed()
	if !ok {
		// if no key is pressed, step the PC back onto this instruction
		// so it runs again next cycle. The host loop keeps ticking timers
		// and polling input in the meantime.
		c.pc -= 2
		return nil
	}
	c.v[in.X] = byte(key)
	return nil
}

// Fx15: LD DT Vx
func (c *Chip8) ldDTVx(in Instruction) error {
	c.timers.SetDelay(c.v[in.X])
	return nil
}

// Fx18: LD ST Vx
func (c *Chip8) ldSTVx(in Instruction) error {
	c.timers.SetSound(c.v[in.X])
	return nil
}

// Fx1E: ADD I Vx
func (c *Chip8) addI(in Instruction) error {
	c.i += uint16(c.v[in.X])
	return nil
}

// Fx29: LD F Vx (I = address of the font sprite for the digit in Vx)
func (c *Chip8) ldF(in Instruction) error {
	c.i = fontAddress(c.v[in.X])
	return nil
}

// Fx33: LD B Vx. Stores the binary coded decimal digits of Vx at I
// (hundreds), I+1 (tens) and I+2 (ones).
func (c *Chip8) ldB(in Instruction) error {
	vx := c.v[in.X]
	c.memory.Write(c.i, vx/100)
	c.memory.Write(c.i+1, vx/10%10)
	c.memory.Write(c.i+2, vx%10)
	return nil
}

// Fx55: LD [I] Vx (store V0 through Vx in memory starting at I)
func (c *Chip8) ldIVx(in Instruction) error {
	for r := uint16(0); r <= uint16(in.X); r++ {
		c.memory.Write(c.i+r, c.v[r])
	}
	return nil
}

// Fx65: LD Vx [I] (read memory starting at I into V0 through Vx)
func (c *Chip8) ldVxI(in Instruction) error {
	for r := uint16(0); r <= uint16(in.X); r++ {
		c.v[r] = c.memory.Read(c.i + r)
	}
	return nil
}

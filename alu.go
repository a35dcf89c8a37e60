package go6809

// The helpers in this file perform the arithmetic shared by the
// instruction handlers. Each one clears the condition code bits it is
// documented to produce, then ORs in the new values, so stale flags
// can never leak through an operation.

// complement inverts all bits in the byte. N and Z follow the result,
// V is cleared and C is always set.
func (cpu *CPU) complement(v byte) byte {
	result := ^v
	cpu.Reg.Clear(Negative | Zero | Overflow)
	cpu.Reg.Set(Carry)
	cpu.Reg.Assign(Negative, result&0x80 != 0)
	cpu.Reg.Assign(Zero, result == 0)
	return result
}

// negate computes the two's complement of the byte. 0x80 negates to
// itself with N, V and C set; zero negates to zero with only Z set.
func (cpu *CPU) negate(v byte) byte {
	result := twosComplement8(v)
	cpu.Reg.Clear(Negative | Zero | Overflow | Carry)

	switch v {
	case 0x80:
		result = 0x80
		cpu.Reg.Set(Overflow | Negative | Carry)
	case 0x00:
		result = 0x00
		cpu.Reg.Set(Zero)
	default:
		cpu.Reg.Assign(Overflow, result&0x80 != 0)
		cpu.Reg.Assign(Zero, result == 0)
		cpu.Reg.Assign(Negative, result&0x80 != 0)
		cpu.Reg.Set(Carry)
	}
	return result
}

// logicalShiftRight shifts right one bit, filling bit 7 with zero.
// Bit 0 lands in the carry. N is never set.
func (cpu *CPU) logicalShiftRight(v byte) byte {
	result := v >> 1
	cpu.Reg.Clear(Negative | Zero | Carry)
	cpu.Reg.Assign(Carry, v&0x1 != 0)
	cpu.Reg.Assign(Zero, result == 0)
	return result
}

// rotateRight rotates right one bit through the carry: the old carry
// becomes bit 7 and bit 0 becomes the new carry.
func (cpu *CPU) rotateRight(v byte) byte {
	result := v >> 1
	if cpu.Reg.IsSet(Carry) {
		result |= 0x80
	}
	cpu.Reg.Clear(Negative | Zero | Carry)
	cpu.Reg.Assign(Carry, v&0x1 != 0)
	cpu.Reg.Assign(Zero, result == 0)
	cpu.Reg.Assign(Negative, result&0x80 != 0)
	return result
}

// arithmeticShiftRight shifts right one bit, preserving bit 7. Bit 0
// lands in the carry.
func (cpu *CPU) arithmeticShiftRight(v byte) byte {
	result := (v >> 1) | (v & 0x80)
	cpu.Reg.Clear(Negative | Zero | Carry)
	cpu.Reg.Assign(Carry, v&0x1 != 0)
	cpu.Reg.Assign(Zero, result == 0)
	cpu.Reg.Assign(Negative, result&0x80 != 0)
	return result
}

// arithmeticShiftLeft shifts left one bit, filling bit 0 with zero.
// Bit 7 lands in the carry; V is the XOR of the old bits 7 and 6.
func (cpu *CPU) arithmeticShiftLeft(v byte) byte {
	result := v << 1
	cpu.Reg.Clear(Negative | Zero | Overflow | Carry)
	cpu.Reg.Assign(Carry, v&0x80 != 0)
	cpu.Reg.Assign(Overflow, (v&0x80 != 0) != (v&0x40 != 0))
	cpu.Reg.Assign(Zero, result == 0)
	cpu.Reg.Assign(Negative, result&0x80 != 0)
	return result
}

// rotateLeft rotates left one bit through the carry: the old carry
// becomes bit 0 and bit 7 becomes the new carry. V is the XOR of the
// old bits 7 and 6.
func (cpu *CPU) rotateLeft(v byte) byte {
	result := v << 1
	if cpu.Reg.IsSet(Carry) {
		result |= 0x1
	}
	cpu.Reg.Clear(Negative | Zero | Overflow | Carry)
	cpu.Reg.Assign(Carry, v&0x80 != 0)
	cpu.Reg.Assign(Overflow, (v&0x80 != 0) != (v&0x40 != 0))
	cpu.Reg.Assign(Zero, result == 0)
	cpu.Reg.Assign(Negative, result&0x80 != 0)
	return result
}

// decrement subtracts one from the byte. V is set when the original
// value was zero.
func (cpu *CPU) decrement(v byte) byte {
	result := cpu.IO.BinaryAdd8(v, 0xff, false, false, false)
	cpu.Reg.Clear(Negative | Zero | Overflow)
	cpu.Reg.Assign(Overflow, v == 0)
	cpu.Reg.Assign(Zero, result == 0)
	cpu.Reg.Assign(Negative, result&0x80 != 0)
	return result
}

// increment adds one to the byte. V comes from the signed overflow of
// the addition.
func (cpu *CPU) increment(v byte) byte {
	cpu.Reg.Clear(Negative | Zero | Overflow)
	result := cpu.IO.BinaryAdd8(v, 0x1, false, false, true)
	cpu.Reg.Assign(Zero, result == 0)
	cpu.Reg.Assign(Negative, result&0x80 != 0)
	return result
}

// test sets N and Z from the byte and clears V, returning the value
// unchanged.
func (cpu *CPU) test(v byte) byte {
	cpu.Reg.Clear(Negative | Zero | Overflow)
	cpu.Reg.Assign(Zero, v == 0)
	cpu.Reg.Assign(Negative, v&0x80 != 0)
	return v
}

// clear returns zero with Z set and N, V and C cleared.
func (cpu *CPU) clear(_ byte) byte {
	cpu.Reg.Clear(Negative | Carry | Overflow)
	cpu.Reg.Set(Zero)
	return 0
}

// compareByte subtracts b from a for flags only. C is a strict
// unsigned comparison of the original operands.
func (cpu *CPU) compareByte(a, b byte) {
	cpu.Reg.Clear(Negative | Zero | Overflow | Carry)
	result := cpu.IO.BinaryAdd8(a, twosComplement8(b), false, false, true)
	cpu.Reg.Assign(Carry, a < b)
	cpu.Reg.Assign(Zero, result == 0)
	cpu.Reg.Assign(Negative, result&0x80 != 0)
}

// compareWord subtracts b from a for flags only at word width.
func (cpu *CPU) compareWord(a, b uint16) {
	cpu.Reg.Clear(Negative | Zero | Overflow | Carry)
	result := cpu.IO.BinaryAdd16(a, twosComplement16(b), false, false, true)
	cpu.Reg.Assign(Carry, a < b)
	cpu.Reg.Assign(Zero, result == 0)
	cpu.Reg.Assign(Negative, result&0x8000 != 0)
}

// logicalAnd ANDs the value into the register cell.
func (cpu *CPU) logicalAnd(reg *byte, v byte) {
	cpu.Reg.Clear(Negative | Zero | Overflow)
	*reg &= v
	cpu.Reg.Assign(Zero, *reg == 0)
	cpu.Reg.Assign(Negative, *reg&0x80 != 0)
}

// logicalOr ORs the value into the register cell.
func (cpu *CPU) logicalOr(reg *byte, v byte) {
	cpu.Reg.Clear(Negative | Zero | Overflow)
	*reg |= v
	cpu.Reg.Assign(Zero, *reg == 0)
	cpu.Reg.Assign(Negative, *reg&0x80 != 0)
}

// exclusiveOr XORs the value into the register cell.
func (cpu *CPU) exclusiveOr(reg *byte, v byte) {
	cpu.Reg.Clear(Negative | Zero | Overflow)
	*reg ^= v
	cpu.Reg.Assign(Zero, *reg == 0)
	cpu.Reg.Assign(Negative, *reg&0x80 != 0)
}

// addWithCarry adds the value plus the carry bit into the register
// cell, flagging half carry, carry and overflow. When the operand plus
// the carry already exceeds a byte, the carry and overflow are forced.
func (cpu *CPU) addWithCarry(reg *byte, v byte) {
	var forceCarry, forceOverflow bool
	sum := uint16(v)
	if cpu.Reg.IsSet(Carry) {
		sum++
	}
	cpu.Reg.Clear(Negative | Zero | Overflow | Carry | HalfCarry)
	if sum > 255 {
		sum &= 0xff
		forceCarry = true
		forceOverflow = true
	}
	*reg = cpu.IO.BinaryAdd8(*reg, byte(sum), true, true, true)
	cpu.Reg.Assign(Carry, forceCarry || cpu.Reg.IsSet(Carry))
	cpu.Reg.Assign(Overflow, forceOverflow || cpu.Reg.IsSet(Overflow))
	cpu.Reg.Assign(Zero, *reg == 0)
	cpu.Reg.Assign(Negative, *reg&0x80 != 0)
}

// addByte adds the value into the register cell, flagging half carry,
// carry and overflow.
func (cpu *CPU) addByte(reg *byte, v byte) {
	cpu.Reg.Clear(Negative | Zero | Overflow | Carry | HalfCarry)
	*reg = cpu.IO.BinaryAdd8(*reg, v, true, true, true)
	cpu.Reg.Assign(Zero, *reg == 0)
	cpu.Reg.Assign(Negative, *reg&0x80 != 0)
}

// addD adds the word value into the D accumulator, flagging carry and
// overflow.
func (cpu *CPU) addD(v uint16) {
	cpu.Reg.Clear(Negative | Zero | Overflow | Carry)
	d := cpu.IO.BinaryAdd16(cpu.Reg.D(), v, false, true, true)
	cpu.Reg.SetD(d)
	cpu.Reg.Assign(Zero, d == 0)
	cpu.Reg.Assign(Negative, d&0x8000 != 0)
}

// subtractM subtracts the value from the register cell. C is set from
// a strict unsigned comparison before the subtraction.
func (cpu *CPU) subtractM(reg *byte, v byte) {
	cpu.Reg.Clear(Negative | Zero | Overflow | Carry)
	cpu.Reg.Assign(Carry, *reg < v)
	*reg = cpu.IO.BinaryAdd8(*reg, twosComplement8(v), false, false, true)
	cpu.Reg.Assign(Zero, *reg == 0)
	cpu.Reg.Assign(Negative, *reg&0x80 != 0)
}

// subtractMC subtracts the value and the carry bit from the register
// cell.
func (cpu *CPU) subtractMC(reg *byte, v byte) {
	if cpu.Reg.IsSet(Carry) {
		v++
	}
	cpu.subtractM(reg, v)
}

// subtractD subtracts the word value from the D accumulator.
func (cpu *CPU) subtractD(v uint16) {
	d := cpu.Reg.D()
	cpu.Reg.Clear(Negative | Zero | Overflow | Carry)
	cpu.Reg.Assign(Carry, d < v)
	d = cpu.IO.BinaryAdd16(d, twosComplement16(v), false, false, true)
	cpu.Reg.SetD(d)
	cpu.Reg.Assign(Zero, d == 0)
	cpu.Reg.Assign(Negative, d&0x8000 != 0)
}

// decimalAdditionAdjust corrects the A accumulator into binary coded
// decimal form following a binary addition. The carry flag is set from
// the non-zero-ness of the assembled correction byte.
func (cpu *CPU) decimalAdditionAdjust() {
	a := cpu.Reg.A
	high := a & 0xf0
	low := a & 0x0f

	var adjustment byte
	if cpu.Reg.IsSet(Carry) || high > 0x90 || (high > 0x80 && low > 0x09) {
		adjustment |= 0x60
	}
	if cpu.Reg.IsSet(HalfCarry) || low > 0x09 {
		adjustment |= 0x06
	}

	correction := adjustment
	if cpu.Reg.IsSet(Carry) {
		correction += 0x01
	}

	cpu.Reg.A = cpu.IO.BinaryAdd8(a, correction, false, true, false)
	cpu.Reg.Clear(Carry | Negative | Zero)
	cpu.Reg.Assign(Zero, cpu.Reg.A == 0)
	cpu.Reg.Assign(Carry, correction != 0)
	cpu.Reg.Assign(Negative, cpu.Reg.A&0x80 != 0)
}

// loadByteRegister loads a value into a byte register cell, updating
// N and Z and clearing V.
func (cpu *CPU) loadByteRegister(reg *byte, v byte) {
	cpu.Reg.Clear(Negative | Zero | Overflow)
	*reg = v
	cpu.Reg.Assign(Zero, v == 0)
	cpu.Reg.Assign(Negative, v&0x80 != 0)
}

// loadWordRegister loads a value into a word register, updating N and
// Z and clearing V.
func (cpu *CPU) loadWordRegister(reg RegID, v uint16) {
	cpu.Reg.Clear(Negative | Zero | Overflow)
	cpu.IO.setWordRegister(reg, v)
	cpu.Reg.Assign(Zero, v == 0)
	cpu.Reg.Assign(Negative, v&0x8000 != 0)
}

// storeByteRegister writes a byte register to memory, updating N and Z
// and clearing V.
func (cpu *CPU) storeByteRegister(v byte, addr uint16) {
	cpu.IO.WriteByte(addr, v)
	cpu.Reg.Clear(Negative | Zero | Overflow)
	cpu.Reg.Assign(Zero, v == 0)
	cpu.Reg.Assign(Negative, v&0x80 != 0)
}

// storeWordRegister writes a word register to memory, updating N and Z
// and clearing V.
func (cpu *CPU) storeWordRegister(reg RegID, addr uint16) {
	v := cpu.IO.wordRegister(reg)
	cpu.IO.WriteWord(addr, v)
	cpu.Reg.Clear(Negative | Zero | Overflow)
	cpu.Reg.Assign(Zero, v == 0)
	cpu.Reg.Assign(Negative, v&0x8000 != 0)
}

// loadEffectiveAddress loads a computed address into an index or stack
// register. Only X and Y update the zero flag.
func (cpu *CPU) loadEffectiveAddress(reg RegID, v uint16) {
	cpu.IO.setWordRegister(reg, v)
	if reg == RegX || reg == RegY {
		cpu.Reg.Assign(Zero, v == 0)
	}
}

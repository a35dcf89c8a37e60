package go6809

import "fmt"

// IOAddressSize is the number of memory-mapped I/O addresses.
const IOAddressSize = 256

// ioBase is the first logical address handled by the I/O register file.
const ioBase = 0xff00

// Memory-mapped I/O register addresses.
const (
	AddrKeyboardHigh = 0xff00 // keyboard matrix high byte (read-only)
	AddrKeyboardLow  = 0xff02 // keyboard matrix low byte (read-only)
	AddrInit0        = 0xff90 // ROM mode bits 0-1, MMU enable bit 6
	AddrInit1        = 0xff91 // PAR select bit 0
	AddrExecPAR      = 0xffa0 // executive PAR entries 0-7
	AddrTaskPAR      = 0xffa8 // task PAR entries 0-7
	AddrClearAllRAM  = 0xffde // clear the SAM TY bit
	AddrSetAllRAM    = 0xffdf // set the SAM TY bit
)

// Interrupt vector addresses.
const (
	VectorSWI3  = 0xfff2
	VectorSWI2  = 0xfff4
	VectorFIRQ  = 0xfff6
	VectorIRQ   = 0xfff8
	VectorSWI   = 0xfffa
	VectorNMI   = 0xfffc
	VectorReset = 0xfffe
)

// The reset vector always reads as this constant word, regardless of
// the physical memory contents.
const (
	resetVectorHigh = 0x8c
	resetVectorLow  = 0x1b
)

// A Keyboard provides the two bytes of the keyboard matrix exposed at
// the keyboard I/O addresses.
type Keyboard interface {
	HighByte() byte
	LowByte() byte
}

// A MemoryResult is returned by the effective-address fetch helpers.
// For memory addressing modes Value holds the effective address; for
// immediate and relative fetches it holds the operand itself. Bytes is
// the number of post-opcode bytes consumed, which indexed instructions
// add to their cycle count.
type MemoryResult struct {
	Bytes int
	Value uint16
}

// An IllegalIndexedPostbyteError indicates that the indexed addressing
// decoder encountered an undefined post-byte pattern.
type IllegalIndexedPostbyteError struct {
	PostByte byte
}

func (e *IllegalIndexedPostbyteError) Error() string {
	return fmt.Sprintf("illegal indexed post-byte $%02X", e.PostByte)
}

// IOController is the unified read/write surface of the machine. It
// dispatches addresses below the I/O window to memory translation and
// addresses inside the window to the I/O register file, and owns the
// stack, fetch and flag-arithmetic helpers the instruction handlers
// are built on.
type IOController struct {
	Mem      *Memory
	Reg      *Registers
	Keyboard Keyboard

	ioMemory [IOAddressSize]byte
	ticks    uint64

	// invoked on every byte store when non-nil (data breakpoints)
	onStore func(addr uint16, v byte)
}

// NewIOController creates an I/O controller bound to the given memory,
// register file and keyboard provider. A nil keyboard reads as an idle
// matrix.
func NewIOController(mem *Memory, reg *Registers, kbd Keyboard) *IOController {
	return &IOController{
		Mem:      mem,
		Reg:      reg,
		Keyboard: kbd,
	}
}

// ReadByte reads the byte at a logical address, dispatching to the
// I/O register file for addresses at or above the I/O window.
func (io *IOController) ReadByte(addr uint16) byte {
	if addr < ioBase {
		return io.Mem.ReadByte(addr)
	}
	return io.readIOByte(addr)
}

// readIOByte reads a byte from the I/O register file.
func (io *IOController) readIOByte(addr uint16) byte {
	switch addr {
	case AddrKeyboardHigh:
		if io.Keyboard == nil {
			return 0xff
		}
		return io.Keyboard.HighByte()
	case AddrKeyboardLow:
		if io.Keyboard == nil {
			return 0xff
		}
		return io.Keyboard.LowByte()
	case VectorReset:
		return resetVectorHigh
	case VectorReset + 1:
		return resetVectorLow
	}
	return io.ioMemory[addr-ioBase]
}

// ReadWord reads a big-endian word: high byte at 'addr', low byte at
// the following address.
func (io *IOController) ReadWord(addr uint16) uint16 {
	return joinWord(io.ReadByte(addr), io.ReadByte(addr+1))
}

// WriteByte writes the byte at a logical address, dispatching to the
// I/O register file for addresses at or above the I/O window.
func (io *IOController) WriteByte(addr uint16, v byte) {
	if io.onStore != nil {
		io.onStore(addr, v)
	}
	if addr < ioBase {
		io.Mem.WriteByte(addr, v)
		return
	}
	io.writeIOByte(addr, v)
}

// writeIOByte writes a byte into the I/O register file, applying the
// side effects of the control registers. Addresses without dedicated
// semantics record the value for subsequent reads.
func (io *IOController) writeIOByte(addr uint16, v byte) {
	io.ioMemory[addr-ioBase] = v

	switch {
	case addr == AddrInit0:
		io.Mem.SetROMMode(v & 0x3)
		if v&0x40 != 0 {
			io.Mem.EnableMMU()
		} else {
			io.Mem.DisableMMU()
		}

	case addr == AddrInit1:
		if v&0x1 != 0 {
			io.Mem.EnableExecutivePAR()
		} else {
			io.Mem.EnableTaskPAR()
		}

	case addr >= AddrExecPAR && addr < AddrExecPAR+8:
		io.Mem.SetExecutivePAR(int(addr-AddrExecPAR), v)

	case addr >= AddrTaskPAR && addr < AddrTaskPAR+8:
		io.Mem.SetTaskPAR(int(addr-AddrTaskPAR), v)

	case addr == AddrClearAllRAM:
		io.Mem.DisableAllRAMMode()

	case addr == AddrSetAllRAM:
		io.Mem.EnableAllRAMMode()
	}
}

// WriteWord writes a big-endian word: high byte at 'addr', low byte at
// the following address.
func (io *IOController) WriteWord(addr uint16, v uint16) {
	io.WriteByte(addr, hiByte(v))
	io.WriteByte(addr+1, loByte(v))
}

// stackPtr returns the storage cell of the requested stack pointer.
// Only S and U are valid stacking registers.
func (io *IOController) stackPtr(reg RegID) *uint16 {
	if reg == RegS {
		return &io.Reg.S
	}
	return &io.Reg.U
}

// PushStack decrements the stack pointer, then writes the byte at the
// new stack top.
func (io *IOController) PushStack(reg RegID, v byte) {
	sp := io.stackPtr(reg)
	*sp--
	io.WriteByte(*sp, v)
}

// PushStackWord pushes a word onto the stack, low byte first, so that
// popping returns the high byte first.
func (io *IOController) PushStackWord(reg RegID, v uint16) {
	io.PushStack(reg, loByte(v))
	io.PushStack(reg, hiByte(v))
}

// PopStack reads the byte at the stack top, then increments the stack
// pointer.
func (io *IOController) PopStack(reg RegID) byte {
	sp := io.stackPtr(reg)
	v := io.ReadByte(*sp)
	*sp++
	return v
}

// PopStackWord pops a word from the stack, reading the high byte first.
func (io *IOController) PopStackWord(reg RegID) uint16 {
	hi := io.PopStack(reg)
	lo := io.PopStack(reg)
	return joinWord(hi, lo)
}

// ImmediateByte fetches the byte at PC and advances PC past it.
func (io *IOController) ImmediateByte() MemoryResult {
	v := io.ReadByte(io.Reg.PC)
	io.Reg.PC++
	return MemoryResult{Bytes: 1, Value: uint16(v)}
}

// ImmediateWord fetches the word at PC and advances PC past it.
func (io *IOController) ImmediateWord() MemoryResult {
	v := io.ReadWord(io.Reg.PC)
	io.Reg.PC += 2
	return MemoryResult{Bytes: 2, Value: v}
}

// Direct fetches a direct-mode effective address: the direct page
// register supplies the high byte and the byte at PC the low byte.
func (io *IOController) Direct() MemoryResult {
	lo := io.ReadByte(io.Reg.PC)
	io.Reg.PC++
	return MemoryResult{Bytes: 1, Value: joinWord(io.Reg.DP, lo)}
}

// Extended fetches a 16-bit absolute effective address from PC.
func (io *IOController) Extended() MemoryResult {
	addr := io.ReadWord(io.Reg.PC)
	io.Reg.PC += 2
	return MemoryResult{Bytes: 2, Value: addr}
}

// indexedRegister returns the storage cell of the index register
// selected by bits 5-6 of an indexed post-byte.
func (io *IOController) indexedRegister(postByte byte) *uint16 {
	switch (postByte & 0x60) >> 5 {
	case 0x0:
		return &io.Reg.X
	case 0x1:
		return &io.Reg.Y
	case 0x2:
		return &io.Reg.U
	default:
		return &io.Reg.S
	}
}

// Indexed consumes the post-byte at PC, plus any displacement bytes
// the post-byte calls for, and computes the effective address. Auto
// increment and decrement modes modify the selected index register.
// Indirect modes read the final address through memory. Undefined
// post-byte patterns produce an IllegalIndexedPostbyteError.
func (io *IOController) Indexed() (MemoryResult, error) {
	postByte := io.ReadByte(io.Reg.PC)
	io.Reg.PC++

	// 5-bit signed offset from R
	if postByte&0x80 == 0 {
		r := io.indexedRegister(postByte)
		return MemoryResult{Bytes: 1, Value: *r + signExtend5(postByte)}, nil
	}

	switch postByte & 0x1f {
	case 0x00: // ,R+
		r := io.indexedRegister(postByte)
		addr := *r
		*r++
		return MemoryResult{Bytes: 1, Value: addr}, nil

	case 0x01: // ,R++
		r := io.indexedRegister(postByte)
		addr := *r
		*r += 2
		return MemoryResult{Bytes: 1, Value: addr}, nil

	case 0x02: // ,R-
		r := io.indexedRegister(postByte)
		addr := *r
		*r--
		return MemoryResult{Bytes: 1, Value: addr}, nil

	case 0x03: // ,R--
		r := io.indexedRegister(postByte)
		addr := *r
		*r -= 2
		return MemoryResult{Bytes: 1, Value: addr}, nil

	case 0x04: // ,R
		r := io.indexedRegister(postByte)
		return MemoryResult{Bytes: 1, Value: *r}, nil

	case 0x05: // B,R
		r := io.indexedRegister(postByte)
		return MemoryResult{Bytes: 1, Value: *r + signExtend(io.Reg.B)}, nil

	case 0x06: // A,R
		r := io.indexedRegister(postByte)
		return MemoryResult{Bytes: 1, Value: *r + signExtend(io.Reg.A)}, nil

	case 0x08: // n,R (8-bit)
		r := io.indexedRegister(postByte)
		n := io.ReadByte(io.Reg.PC)
		io.Reg.PC++
		return MemoryResult{Bytes: 2, Value: *r + signExtend(n)}, nil

	case 0x09: // n,R (16-bit)
		r := io.indexedRegister(postByte)
		n := io.ReadWord(io.Reg.PC)
		io.Reg.PC += 2
		return MemoryResult{Bytes: 3, Value: *r + n}, nil

	case 0x0b: // D,R
		r := io.indexedRegister(postByte)
		return MemoryResult{Bytes: 1, Value: *r + io.Reg.D()}, nil

	case 0x0c: // n,PC (8-bit)
		n := io.ReadByte(io.Reg.PC)
		io.Reg.PC++
		return MemoryResult{Bytes: 2, Value: io.Reg.PC + signExtend(n)}, nil

	case 0x0d: // n,PC (16-bit)
		n := io.ReadWord(io.Reg.PC)
		io.Reg.PC += 2
		return MemoryResult{Bytes: 3, Value: io.Reg.PC + n}, nil

	case 0x11: // [,R++]
		r := io.indexedRegister(postByte)
		addr := io.ReadWord(*r)
		*r += 2
		return MemoryResult{Bytes: 1, Value: addr}, nil

	case 0x13: // [,R--]
		r := io.indexedRegister(postByte)
		addr := io.ReadWord(*r)
		*r -= 2
		return MemoryResult{Bytes: 1, Value: addr}, nil

	case 0x14: // [,R]
		r := io.indexedRegister(postByte)
		return MemoryResult{Bytes: 1, Value: io.ReadWord(*r)}, nil

	case 0x15: // [B,R]
		r := io.indexedRegister(postByte)
		return MemoryResult{Bytes: 1, Value: io.ReadWord(*r + signExtend(io.Reg.B))}, nil

	case 0x16: // [A,R]
		r := io.indexedRegister(postByte)
		return MemoryResult{Bytes: 1, Value: io.ReadWord(*r + signExtend(io.Reg.A))}, nil

	case 0x18: // [n,R] (8-bit)
		r := io.indexedRegister(postByte)
		n := io.ReadByte(io.Reg.PC)
		io.Reg.PC++
		return MemoryResult{Bytes: 2, Value: io.ReadWord(*r + signExtend(n))}, nil

	case 0x19: // [n,R] (16-bit)
		r := io.indexedRegister(postByte)
		n := io.ReadWord(io.Reg.PC)
		io.Reg.PC += 2
		return MemoryResult{Bytes: 3, Value: io.ReadWord(*r + n)}, nil

	case 0x1b: // [D,R]
		r := io.indexedRegister(postByte)
		return MemoryResult{Bytes: 1, Value: io.ReadWord(*r + io.Reg.D())}, nil

	case 0x1c: // [n,PC] (8-bit)
		n := io.ReadByte(io.Reg.PC)
		io.Reg.PC++
		return MemoryResult{Bytes: 2, Value: io.ReadWord(io.Reg.PC + signExtend(n))}, nil

	case 0x1d: // [n,PC] (16-bit)
		n := io.ReadWord(io.Reg.PC)
		io.Reg.PC += 2
		return MemoryResult{Bytes: 3, Value: io.ReadWord(io.Reg.PC + n)}, nil

	case 0x1f: // [n] extended indirect
		n := io.ReadWord(io.Reg.PC)
		io.Reg.PC += 2
		return MemoryResult{Bytes: 3, Value: io.ReadWord(n)}, nil
	}

	return MemoryResult{}, &IllegalIndexedPostbyteError{PostByte: postByte}
}

// BinaryAdd8 adds two bytes at byte width. The half-carry, carry and
// overflow flags are ORed into CC when their corresponding argument is
// true; they are never cleared here, so callers clear them first when
// they want fresh values.
func (io *IOController) BinaryAdd8(a, b byte, flagHalfCarry, flagCarry, flagOverflow bool) byte {
	if flagHalfCarry {
		if (uint16(a&0xf)+uint16(b&0xf))&0x10 != 0 {
			io.Reg.Set(HalfCarry)
		}
	}
	if flagCarry {
		if (uint16(a)+uint16(b))&0x100 != 0 {
			io.Reg.Set(Carry)
		}
	}
	if flagOverflow {
		signed := int(int8(a)) + int(int8(b))
		if signed > 127 || signed < -128 {
			io.Reg.Set(Overflow)
		}
	}
	return a + b
}

// BinaryAdd16 adds two words at word width with the same flag
// discipline as BinaryAdd8.
func (io *IOController) BinaryAdd16(a, b uint16, flagHalfCarry, flagCarry, flagOverflow bool) uint16 {
	if flagHalfCarry {
		if ((a&0xf)+(b&0xf))&0x10 != 0 {
			io.Reg.Set(HalfCarry)
		}
	}
	if flagCarry {
		if (uint32(a)+uint32(b))&0x10000 != 0 {
			io.Reg.Set(Carry)
		}
	}
	if flagOverflow {
		signed := int(int16(a)) + int(int16(b))
		if signed > 32767 || signed < -32768 {
			io.Reg.Set(Overflow)
		}
	}
	return a + b
}

// TimerTick accounts the cycles consumed by the last instruction.
func (io *IOController) TimerTick(ticks int) {
	io.ticks += uint64(ticks)
}

// Ticks returns the total number of cycles accounted so far.
func (io *IOController) Ticks() uint64 {
	return io.ticks
}

// byteRegister returns the storage cell of a byte register, or nil if
// the identifier does not name one. CC is returned as a byte cell.
func (io *IOController) byteRegister(reg RegID) *byte {
	switch reg {
	case RegA:
		return &io.Reg.A
	case RegB:
		return &io.Reg.B
	case RegDP:
		return &io.Reg.DP
	case RegCC:
		return (*byte)(&io.Reg.CC)
	}
	return nil
}

// wordRegister reads a word register. D is assembled from A and B.
func (io *IOController) wordRegister(reg RegID) uint16 {
	switch reg {
	case RegX:
		return io.Reg.X
	case RegY:
		return io.Reg.Y
	case RegU:
		return io.Reg.U
	case RegS:
		return io.Reg.S
	case RegPC:
		return io.Reg.PC
	case RegD:
		return io.Reg.D()
	}
	return 0
}

// setWordRegister writes a word register. D is split into A and B.
func (io *IOController) setWordRegister(reg RegID, v uint16) {
	switch reg {
	case RegX:
		io.Reg.X = v
	case RegY:
		io.Reg.Y = v
	case RegU:
		io.Reg.U = v
	case RegS:
		io.Reg.S = v
	case RegPC:
		io.Reg.PC = v
	case RegD:
		io.Reg.SetD(v)
	}
}

// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package go6809 implements a Motorola 6809E CPU instruction set and
// emulator, together with the paged memory management unit and
// memory-mapped I/O fabric of the Color Computer 3.
package go6809

import (
	"fmt"
	"io"
	"os"
)

// An UnknownOpcodeError indicates that the dispatcher reached an
// opcode with no handler. The host should log the program counter and
// opcode and stop executing.
type UnknownOpcodeError struct {
	PC     uint16
	Opcode uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode $%02X at $%04X", e.Opcode, e.PC)
}

// An IllegalTransferError indicates a byte/word register mismatch in a
// TFR post-byte.
type IllegalTransferError struct {
	PostByte byte
}

func (e *IllegalTransferError) Error() string {
	return fmt.Sprintf("illegal transfer post-byte $%02X", e.PostByte)
}

// CPU represents a single 6809 CPU bound to an I/O controller.
type CPU struct {
	Reg         *Registers    // CPU registers
	Mem         *Memory       // physical memory and MMU
	IO          *IOController // unified read/write surface
	Cycles      uint64        // total executed CPU cycles
	TraceWriter io.Writer     // sink for trace output

	trace       bool
	deltaCycles int
	pendingIRQ  bool
	pendingFIRQ bool
	pendingNMI  bool
	debugger    *Debugger
}

// New creates an emulated 6809 CPU bound to the specified memory,
// register file and keyboard provider.
func New(mem *Memory, reg *Registers, kbd Keyboard) *CPU {
	cpu := &CPU{
		Reg:         reg,
		Mem:         mem,
		TraceWriter: os.Stdout,
	}
	cpu.IO = NewIOController(mem, reg, kbd)
	return cpu
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
}

// SetTrace enables or disables per-instruction trace output.
func (cpu *CPU) SetTrace(on bool) {
	cpu.trace = on
}

// Reset re-initializes the machine state: the condition codes mask
// both interrupt lines, the program counter points at the ROM entry,
// the MMU is disabled, and the ROM mapping returns to the 32 KiB map
// with write protection enabled.
func (cpu *CPU) Reset() {
	cpu.Reg.CC = IRQMask | FIRQMask
	cpu.Reg.PC = 0xc000
	cpu.Mem.DisableMMU()
	cpu.Mem.SetROMMode(0x2)
	cpu.Mem.DisableAllRAMMode()
}

// ScheduleIRQ raises the pending IRQ flag. The interrupt is delivered
// after the current instruction if the IRQ mask is clear.
func (cpu *CPU) ScheduleIRQ() {
	cpu.pendingIRQ = true
}

// ScheduleFIRQ raises the pending FIRQ flag.
func (cpu *CPU) ScheduleFIRQ() {
	cpu.pendingFIRQ = true
}

// ScheduleNMI raises the pending NMI flag. NMI delivery ignores the
// interrupt masks.
func (cpu *CPU) ScheduleNMI() {
	cpu.pendingNMI = true
}

// AttachDebugger attaches a debugger to the CPU. Only one debugger
// may be attached at a time.
func (cpu *CPU) AttachDebugger(d *Debugger) {
	cpu.debugger = d
	cpu.IO.onStore = func(addr uint16, v byte) {
		d.onDataStore(cpu, addr, v)
	}
}

// DetachDebugger detaches the debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.IO.onStore = nil
}

// Step executes exactly one instruction and returns its cycle count.
// After the instruction completes, pending interrupts are delivered in
// priority order NMI, FIRQ, IRQ, subject to the condition code masks.
func (cpu *CPU) Step() (int, error) {
	pc := cpu.Reg.PC
	if cpu.debugger != nil {
		cpu.debugger.onCPUExecute(cpu, pc)
	}

	// Grab the opcode, following the 0x10/0x11 prefixes into the
	// extended pages.
	opcode := uint16(cpu.IO.ReadByte(cpu.Reg.PC))
	cpu.Reg.PC++
	if opcode == 0x10 || opcode == 0x11 {
		opcode = opcode<<8 | uint16(cpu.IO.ReadByte(cpu.Reg.PC))
		cpu.Reg.PC++
	}

	inst := Lookup(opcode)
	if inst.fn == nil {
		return 0, &UnknownOpcodeError{PC: pc, Opcode: opcode}
	}

	// Fetch the operand appropriate to the addressing mode, advancing
	// the PC past it.
	var mr MemoryResult
	switch inst.Mode {
	case IMM8, REL8:
		mr = cpu.IO.ImmediateByte()
	case IMM16, REL16:
		mr = cpu.IO.ImmediateWord()
	case DIR:
		mr = cpu.IO.Direct()
	case IDX:
		var err error
		mr, err = cpu.IO.Indexed()
		if err != nil {
			return 0, err
		}
	case EXT:
		mr = cpu.IO.Extended()
	}

	cpu.deltaCycles = 0
	if err := inst.fn(cpu, inst, mr); err != nil {
		return 0, err
	}

	cycles := int(inst.Cycles) + cpu.deltaCycles
	if inst.Mode == IDX {
		cycles += mr.Bytes
	}
	cpu.Cycles += uint64(cycles)
	cpu.IO.TimerTick(cycles)

	if cpu.trace {
		cpu.traceInstruction(pc, inst, mr)
	}

	cpu.deliverInterrupts()
	return cycles, nil
}

// traceInstruction emits a human-readable line for the instruction
// just executed.
func (cpu *CPU) traceInstruction(pc uint16, inst *Instruction, mr MemoryResult) {
	var operand string
	switch inst.Mode {
	case IMM8:
		operand = fmt.Sprintf("#$%02X", byte(mr.Value))
	case IMM16:
		operand = fmt.Sprintf("#$%04X", mr.Value)
	case DIR, EXT:
		operand = fmt.Sprintf("$%04X", mr.Value)
	case IDX:
		operand = fmt.Sprintf("$%04X,IND", mr.Value)
	case REL8, REL16:
		operand = fmt.Sprintf("$%04X", cpu.Reg.PC)
	}
	name := inst.Name
	switch inst.Mode {
	case ACCA:
		name += "A"
	case ACCB:
		name += "B"
	}
	if inst.Opcode > 0xff {
		fmt.Fprintf(cpu.TraceWriter, "%04X  %04X  %-5s %s\n", pc, inst.Opcode, name, operand)
	} else {
		fmt.Fprintf(cpu.TraceWriter, "%04X  %02X    %-5s %s\n", pc, inst.Opcode, name, operand)
	}
}

// deliverInterrupts dispatches at most one pending interrupt, highest
// priority first. A masked interrupt stays pending.
func (cpu *CPU) deliverInterrupts() {
	switch {
	case cpu.pendingNMI:
		cpu.pendingNMI = false
		cpu.nonMaskableInterruptRequest()
	case cpu.pendingFIRQ && !cpu.Reg.IsSet(FIRQMask):
		cpu.pendingFIRQ = false
		cpu.fastInterruptRequest()
	case cpu.pendingIRQ && !cpu.Reg.IsSet(IRQMask):
		cpu.pendingIRQ = false
		cpu.interruptRequest()
	}
}

// pushEntireFrame saves every register except S onto the system stack,
// with the condition codes pushed last.
func (cpu *CPU) pushEntireFrame() {
	cpu.IO.PushStackWord(RegS, cpu.Reg.PC)
	cpu.IO.PushStackWord(RegS, cpu.Reg.U)
	cpu.IO.PushStackWord(RegS, cpu.Reg.Y)
	cpu.IO.PushStackWord(RegS, cpu.Reg.X)
	cpu.IO.PushStack(RegS, cpu.Reg.DP)
	cpu.IO.PushStack(RegS, cpu.Reg.B)
	cpu.IO.PushStack(RegS, cpu.Reg.A)
	cpu.IO.PushStack(RegS, byte(cpu.Reg.CC))
}

// interruptRequest performs an IRQ: the entire register frame is
// stacked with the entire bit set, the IRQ mask is raised, and the PC
// is fetched from the IRQ vector.
func (cpu *CPU) interruptRequest() {
	cpu.Reg.Set(Entire)
	cpu.pushEntireFrame()
	cpu.Reg.Set(IRQMask)
	cpu.Reg.PC = cpu.IO.ReadWord(VectorIRQ)
}

// fastInterruptRequest performs a FIRQ: only the PC and the condition
// codes are stacked, with the entire bit cleared, both interrupt masks
// are raised, and the PC is fetched from the FIRQ vector.
func (cpu *CPU) fastInterruptRequest() {
	cpu.IO.PushStackWord(RegS, cpu.Reg.PC)
	cpu.Reg.Clear(Entire)
	cpu.IO.PushStack(RegS, byte(cpu.Reg.CC))
	cpu.Reg.Set(FIRQMask | IRQMask)
	cpu.Reg.PC = cpu.IO.ReadWord(VectorFIRQ)
}

// nonMaskableInterruptRequest performs an NMI: the entire register
// frame is stacked, both interrupt masks are raised, and the PC is
// fetched from the NMI vector.
func (cpu *CPU) nonMaskableInterruptRequest() {
	cpu.Reg.Set(Entire)
	cpu.pushEntireFrame()
	cpu.Reg.Set(IRQMask | FIRQMask)
	cpu.Reg.PC = cpu.IO.ReadWord(VectorNMI)
}

// softwareInterrupt stacks the entire register frame with the entire
// bit set and fetches the new PC from the given vector.
func (cpu *CPU) softwareInterrupt(vector uint16) {
	cpu.Reg.Set(Entire)
	cpu.pushEntireFrame()
	cpu.Reg.PC = cpu.IO.ReadWord(vector)
}

// loadByte loads a byte operand using the instruction's addressing
// mode.
func (cpu *CPU) loadByte(inst *Instruction, mr MemoryResult) byte {
	switch inst.Mode {
	case IMM8:
		return byte(mr.Value)
	case ACCA:
		return cpu.Reg.A
	case ACCB:
		return cpu.Reg.B
	default:
		return cpu.IO.ReadByte(mr.Value)
	}
}

// storeByte stores a byte result using the instruction's addressing
// mode.
func (cpu *CPU) storeByte(inst *Instruction, mr MemoryResult, v byte) {
	switch inst.Mode {
	case ACCA:
		cpu.Reg.A = v
	case ACCB:
		cpu.Reg.B = v
	default:
		cpu.IO.WriteByte(mr.Value, v)
	}
}

// loadWord loads a word operand using the instruction's addressing
// mode.
func (cpu *CPU) loadWord(inst *Instruction, mr MemoryResult) uint16 {
	if inst.Mode == IMM16 {
		return mr.Value
	}
	return cpu.IO.ReadWord(mr.Value)
}

// rmw runs a read-modify-write ALU helper against the instruction's
// operand location.
func (cpu *CPU) rmw(inst *Instruction, mr MemoryResult, fn func(byte) byte) {
	cpu.storeByte(inst, mr, fn(cpu.loadByte(inst, mr)))
}

// branchShort adds a sign-extended 8-bit offset to the PC.
func (cpu *CPU) branchShort(offset byte) {
	cpu.Reg.PC += signExtend(offset)
}

// branchLong adds a 16-bit offset to the PC.
func (cpu *CPU) branchLong(offset uint16) {
	cpu.Reg.PC += offset
}

// longBranch takes a conditional long branch, which costs one extra
// cycle when taken.
func (cpu *CPU) longBranch(taken bool, mr MemoryResult) {
	if taken {
		cpu.branchLong(mr.Value)
		cpu.deltaCycles++
	}
}

// jumpToSubroutine pushes the post-instruction PC onto the system
// stack, then jumps.
func (cpu *CPU) jumpToSubroutine(addr uint16) {
	cpu.IO.PushStackWord(RegS, cpu.Reg.PC)
	cpu.Reg.PC = addr
}

// tfrRegister maps a transfer post-byte register code to a register
// identifier.
func tfrRegister(code byte) RegID {
	switch code {
	case 0x0:
		return RegD
	case 0x1:
		return RegX
	case 0x2:
		return RegY
	case 0x3:
		return RegU
	case 0x4:
		return RegS
	case 0x5:
		return RegPC
	case 0x8:
		return RegA
	case 0x9:
		return RegB
	case 0xa:
		return RegCC
	case 0xb:
		return RegDP
	}
	return RegUnknown
}

// isByteRegister reports whether a register identifier names an 8-bit
// register.
func isByteRegister(reg RegID) bool {
	switch reg {
	case RegA, RegB, RegCC, RegDP:
		return true
	}
	return false
}

// Negate M / A / B
func (cpu *CPU) neg(inst *Instruction, mr MemoryResult) error {
	cpu.rmw(inst, mr, cpu.negate)
	return nil
}

// Complement M / A / B
func (cpu *CPU) com(inst *Instruction, mr MemoryResult) error {
	cpu.rmw(inst, mr, cpu.complement)
	return nil
}

// Logical Shift Right M / A / B
func (cpu *CPU) lsr(inst *Instruction, mr MemoryResult) error {
	cpu.rmw(inst, mr, cpu.logicalShiftRight)
	return nil
}

// Rotate Right M / A / B
func (cpu *CPU) ror(inst *Instruction, mr MemoryResult) error {
	cpu.rmw(inst, mr, cpu.rotateRight)
	return nil
}

// Arithmetic Shift Right M / A / B
func (cpu *CPU) asr(inst *Instruction, mr MemoryResult) error {
	cpu.rmw(inst, mr, cpu.arithmeticShiftRight)
	return nil
}

// Arithmetic Shift Left M / A / B
func (cpu *CPU) asl(inst *Instruction, mr MemoryResult) error {
	cpu.rmw(inst, mr, cpu.arithmeticShiftLeft)
	return nil
}

// Rotate Left M / A / B
func (cpu *CPU) rol(inst *Instruction, mr MemoryResult) error {
	cpu.rmw(inst, mr, cpu.rotateLeft)
	return nil
}

// Decrement M / A / B
func (cpu *CPU) dec(inst *Instruction, mr MemoryResult) error {
	cpu.rmw(inst, mr, cpu.decrement)
	return nil
}

// Increment M / A / B
func (cpu *CPU) inc(inst *Instruction, mr MemoryResult) error {
	cpu.rmw(inst, mr, cpu.increment)
	return nil
}

// Test M / A / B
func (cpu *CPU) tst(inst *Instruction, mr MemoryResult) error {
	cpu.rmw(inst, mr, cpu.test)
	return nil
}

// Clear M / A / B
func (cpu *CPU) clr(inst *Instruction, mr MemoryResult) error {
	cpu.rmw(inst, mr, cpu.clear)
	return nil
}

// Jump
func (cpu *CPU) jmp(inst *Instruction, mr MemoryResult) error {
	cpu.Reg.PC = mr.Value
	return nil
}

// Jump to Subroutine
func (cpu *CPU) jsr(inst *Instruction, mr MemoryResult) error {
	cpu.jumpToSubroutine(mr.Value)
	return nil
}

// No Operation
func (cpu *CPU) nop(inst *Instruction, mr MemoryResult) error {
	return nil
}

// Sync (treated as a no-op at the step level)
func (cpu *CPU) sync(inst *Instruction, mr MemoryResult) error {
	return nil
}

// Decimal Addition Adjust
func (cpu *CPU) daa(inst *Instruction, mr MemoryResult) error {
	cpu.decimalAdditionAdjust()
	return nil
}

// Logical OR on the Condition Code register. The immediate byte is
// ORed in raw, bypassing the flag discipline.
func (cpu *CPU) orcc(inst *Instruction, mr MemoryResult) error {
	cpu.Reg.CC |= Status(mr.Value)
	return nil
}

// Logical AND on the Condition Code register.
func (cpu *CPU) andcc(inst *Instruction, mr MemoryResult) error {
	cpu.Reg.CC &= Status(mr.Value)
	return nil
}

// Sign Extend B into A
func (cpu *CPU) sex(inst *Instruction, mr MemoryResult) error {
	if cpu.Reg.B&0x80 != 0 {
		cpu.Reg.A = 0xff
	} else {
		cpu.Reg.A = 0x00
	}
	return nil
}

// Exchange registers. A byte/word mismatch is ignored.
func (cpu *CPU) exg(inst *Instruction, mr MemoryResult) error {
	postByte := byte(mr.Value)
	src := tfrRegister(postByte >> 4)
	dst := tfrRegister(postByte & 0xf)
	switch {
	case src == RegUnknown || dst == RegUnknown || src == dst:
		// ignored
	case isByteRegister(src) && isByteRegister(dst):
		s, d := cpu.IO.byteRegister(src), cpu.IO.byteRegister(dst)
		*s, *d = *d, *s
	case !isByteRegister(src) && !isByteRegister(dst):
		s, d := cpu.IO.wordRegister(src), cpu.IO.wordRegister(dst)
		cpu.IO.setWordRegister(src, d)
		cpu.IO.setWordRegister(dst, s)
	}
	return nil
}

// Transfer between registers. A byte/word mismatch is an error.
func (cpu *CPU) tfr(inst *Instruction, mr MemoryResult) error {
	postByte := byte(mr.Value)
	src := tfrRegister(postByte >> 4)
	dst := tfrRegister(postByte & 0xf)
	switch {
	case src == dst && src != RegUnknown:
		// self to self - ignored
	case src == RegUnknown || dst == RegUnknown:
		return &IllegalTransferError{PostByte: postByte}
	case isByteRegister(src) && isByteRegister(dst):
		*cpu.IO.byteRegister(dst) = *cpu.IO.byteRegister(src)
	case !isByteRegister(src) && !isByteRegister(dst):
		cpu.IO.setWordRegister(dst, cpu.IO.wordRegister(src))
	default:
		return &IllegalTransferError{PostByte: postByte}
	}
	return nil
}

// Branch Always
func (cpu *CPU) bra(inst *Instruction, mr MemoryResult) error {
	cpu.branchShort(byte(mr.Value))
	return nil
}

// Branch Never
func (cpu *CPU) brn(inst *Instruction, mr MemoryResult) error {
	return nil
}

// Branch on Higher
func (cpu *CPU) bhi(inst *Instruction, mr MemoryResult) error {
	if !cpu.Reg.IsSet(Carry) && !cpu.Reg.IsSet(Zero) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Lower or Same
func (cpu *CPU) bls(inst *Instruction, mr MemoryResult) error {
	if cpu.Reg.IsSet(Carry) || cpu.Reg.IsSet(Zero) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Carry Clear
func (cpu *CPU) bcc(inst *Instruction, mr MemoryResult) error {
	if !cpu.Reg.IsSet(Carry) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Carry Set
func (cpu *CPU) bcs(inst *Instruction, mr MemoryResult) error {
	if cpu.Reg.IsSet(Carry) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Not Equal
func (cpu *CPU) bne(inst *Instruction, mr MemoryResult) error {
	if !cpu.Reg.IsSet(Zero) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Equal
func (cpu *CPU) beq(inst *Instruction, mr MemoryResult) error {
	if cpu.Reg.IsSet(Zero) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Overflow Clear
func (cpu *CPU) bvc(inst *Instruction, mr MemoryResult) error {
	if !cpu.Reg.IsSet(Overflow) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Overflow Set
func (cpu *CPU) bvs(inst *Instruction, mr MemoryResult) error {
	if cpu.Reg.IsSet(Overflow) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Plus
func (cpu *CPU) bpl(inst *Instruction, mr MemoryResult) error {
	if !cpu.Reg.IsSet(Negative) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Minus
func (cpu *CPU) bmi(inst *Instruction, mr MemoryResult) error {
	if cpu.Reg.IsSet(Negative) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Greater Than or Equal to Zero
func (cpu *CPU) bge(inst *Instruction, mr MemoryResult) error {
	if cpu.Reg.IsSet(Negative) == cpu.Reg.IsSet(Overflow) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Less Than Zero
func (cpu *CPU) blt(inst *Instruction, mr MemoryResult) error {
	if cpu.Reg.IsSet(Negative) != cpu.Reg.IsSet(Overflow) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Greater Than Zero
func (cpu *CPU) bgt(inst *Instruction, mr MemoryResult) error {
	if !cpu.Reg.IsSet(Zero) && cpu.Reg.IsSet(Negative) == cpu.Reg.IsSet(Overflow) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch on Less Than or Equal to Zero
func (cpu *CPU) ble(inst *Instruction, mr MemoryResult) error {
	if cpu.Reg.IsSet(Zero) || cpu.Reg.IsSet(Negative) != cpu.Reg.IsSet(Overflow) {
		cpu.branchShort(byte(mr.Value))
	}
	return nil
}

// Branch to Subroutine
func (cpu *CPU) bsr(inst *Instruction, mr MemoryResult) error {
	cpu.IO.PushStackWord(RegS, cpu.Reg.PC)
	cpu.branchShort(byte(mr.Value))
	return nil
}

// Long Branch Always
func (cpu *CPU) lbra(inst *Instruction, mr MemoryResult) error {
	cpu.branchLong(mr.Value)
	return nil
}

// Long Branch Never
func (cpu *CPU) lbrn(inst *Instruction, mr MemoryResult) error {
	return nil
}

// Long Branch to Subroutine
func (cpu *CPU) lbsr(inst *Instruction, mr MemoryResult) error {
	cpu.IO.PushStackWord(RegS, cpu.Reg.PC)
	cpu.branchLong(mr.Value)
	return nil
}

// Long Branch on Higher
func (cpu *CPU) lbhi(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(!cpu.Reg.IsSet(Carry) && !cpu.Reg.IsSet(Zero), mr)
	return nil
}

// Long Branch on Lower or Same
func (cpu *CPU) lbls(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(cpu.Reg.IsSet(Carry) || cpu.Reg.IsSet(Zero), mr)
	return nil
}

// Long Branch on Carry Clear
func (cpu *CPU) lbcc(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(!cpu.Reg.IsSet(Carry), mr)
	return nil
}

// Long Branch on Carry Set
func (cpu *CPU) lbcs(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(cpu.Reg.IsSet(Carry), mr)
	return nil
}

// Long Branch on Not Equal
func (cpu *CPU) lbne(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(!cpu.Reg.IsSet(Zero), mr)
	return nil
}

// Long Branch on Equal
func (cpu *CPU) lbeq(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(cpu.Reg.IsSet(Zero), mr)
	return nil
}

// Long Branch on Overflow Clear
func (cpu *CPU) lbvc(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(!cpu.Reg.IsSet(Overflow), mr)
	return nil
}

// Long Branch on Overflow Set
func (cpu *CPU) lbvs(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(cpu.Reg.IsSet(Overflow), mr)
	return nil
}

// Long Branch on Plus
func (cpu *CPU) lbpl(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(!cpu.Reg.IsSet(Negative), mr)
	return nil
}

// Long Branch on Minus
func (cpu *CPU) lbmi(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(cpu.Reg.IsSet(Negative), mr)
	return nil
}

// Long Branch on Greater Than or Equal to Zero
func (cpu *CPU) lbge(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(cpu.Reg.IsSet(Negative) == cpu.Reg.IsSet(Overflow), mr)
	return nil
}

// Long Branch on Less Than Zero
func (cpu *CPU) lblt(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(cpu.Reg.IsSet(Negative) != cpu.Reg.IsSet(Overflow), mr)
	return nil
}

// Long Branch on Greater Than Zero
func (cpu *CPU) lbgt(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(!cpu.Reg.IsSet(Zero) && cpu.Reg.IsSet(Negative) == cpu.Reg.IsSet(Overflow), mr)
	return nil
}

// Long Branch on Less Than or Equal to Zero
func (cpu *CPU) lble(inst *Instruction, mr MemoryResult) error {
	cpu.longBranch(cpu.Reg.IsSet(Zero) || cpu.Reg.IsSet(Negative) != cpu.Reg.IsSet(Overflow), mr)
	return nil
}

// Load Effective Address into X
func (cpu *CPU) leax(inst *Instruction, mr MemoryResult) error {
	cpu.loadEffectiveAddress(RegX, mr.Value)
	return nil
}

// Load Effective Address into Y
func (cpu *CPU) leay(inst *Instruction, mr MemoryResult) error {
	cpu.loadEffectiveAddress(RegY, mr.Value)
	return nil
}

// Load Effective Address into S
func (cpu *CPU) leas(inst *Instruction, mr MemoryResult) error {
	cpu.loadEffectiveAddress(RegS, mr.Value)
	return nil
}

// Load Effective Address into U
func (cpu *CPU) leau(inst *Instruction, mr MemoryResult) error {
	cpu.loadEffectiveAddress(RegU, mr.Value)
	return nil
}

// pushRegisters pushes the registers selected by the post-byte mask
// onto the given stack and returns the number of bytes pushed. When
// stacking on S the 0x40 bit selects U, and vice versa.
func (cpu *CPU) pushRegisters(stack RegID, mask byte) int {
	bytes := 0
	if mask&0x80 != 0 {
		cpu.IO.PushStackWord(stack, cpu.Reg.PC)
		bytes += 2
	}
	if mask&0x40 != 0 {
		if stack == RegS {
			cpu.IO.PushStackWord(stack, cpu.Reg.U)
		} else {
			cpu.IO.PushStackWord(stack, cpu.Reg.S)
		}
		bytes += 2
	}
	if mask&0x20 != 0 {
		cpu.IO.PushStackWord(stack, cpu.Reg.Y)
		bytes += 2
	}
	if mask&0x10 != 0 {
		cpu.IO.PushStackWord(stack, cpu.Reg.X)
		bytes += 2
	}
	if mask&0x08 != 0 {
		cpu.IO.PushStack(stack, cpu.Reg.DP)
		bytes++
	}
	if mask&0x04 != 0 {
		cpu.IO.PushStack(stack, cpu.Reg.B)
		bytes++
	}
	if mask&0x02 != 0 {
		cpu.IO.PushStack(stack, cpu.Reg.A)
		bytes++
	}
	if mask&0x01 != 0 {
		cpu.IO.PushStack(stack, byte(cpu.Reg.CC))
		bytes++
	}
	return bytes
}

// popRegisters pulls the registers selected by the post-byte mask from
// the given stack, in the reverse of the push order, and returns the
// number of bytes pulled.
func (cpu *CPU) popRegisters(stack RegID, mask byte) int {
	bytes := 0
	if mask&0x01 != 0 {
		cpu.Reg.CC = Status(cpu.IO.PopStack(stack))
		bytes++
	}
	if mask&0x02 != 0 {
		cpu.Reg.A = cpu.IO.PopStack(stack)
		bytes++
	}
	if mask&0x04 != 0 {
		cpu.Reg.B = cpu.IO.PopStack(stack)
		bytes++
	}
	if mask&0x08 != 0 {
		cpu.Reg.DP = cpu.IO.PopStack(stack)
		bytes++
	}
	if mask&0x10 != 0 {
		cpu.Reg.X = cpu.IO.PopStackWord(stack)
		bytes += 2
	}
	if mask&0x20 != 0 {
		cpu.Reg.Y = cpu.IO.PopStackWord(stack)
		bytes += 2
	}
	if mask&0x40 != 0 {
		if stack == RegS {
			cpu.Reg.U = cpu.IO.PopStackWord(stack)
		} else {
			cpu.Reg.S = cpu.IO.PopStackWord(stack)
		}
		bytes += 2
	}
	if mask&0x80 != 0 {
		cpu.Reg.PC = cpu.IO.PopStackWord(stack)
		bytes += 2
	}
	return bytes
}

// Push Registers onto the S Stack
func (cpu *CPU) pshs(inst *Instruction, mr MemoryResult) error {
	cpu.deltaCycles += cpu.pushRegisters(RegS, byte(mr.Value))
	return nil
}

// Pull Registers from the S Stack
func (cpu *CPU) puls(inst *Instruction, mr MemoryResult) error {
	cpu.deltaCycles += cpu.popRegisters(RegS, byte(mr.Value))
	return nil
}

// Push Registers onto the U Stack
func (cpu *CPU) pshu(inst *Instruction, mr MemoryResult) error {
	cpu.deltaCycles += cpu.pushRegisters(RegU, byte(mr.Value))
	return nil
}

// Pull Registers from the U Stack
func (cpu *CPU) pulu(inst *Instruction, mr MemoryResult) error {
	cpu.deltaCycles += cpu.popRegisters(RegU, byte(mr.Value))
	return nil
}

// Return from Subroutine
func (cpu *CPU) rts(inst *Instruction, mr MemoryResult) error {
	cpu.Reg.PC = cpu.IO.PopStackWord(RegS)
	return nil
}

// Add Accumulator B into X, without touching flags
func (cpu *CPU) abx(inst *Instruction, mr MemoryResult) error {
	cpu.Reg.X = cpu.IO.BinaryAdd16(cpu.Reg.X, uint16(cpu.Reg.B), false, false, false)
	return nil
}

// Return from Interrupt. The entire bit of the popped condition codes
// selects between the full and the fast stack frame.
func (cpu *CPU) rti(inst *Instruction, mr MemoryResult) error {
	cpu.Reg.CC = Status(cpu.IO.PopStack(RegS))
	if cpu.Reg.IsSet(Entire) {
		cpu.deltaCycles += 9
		cpu.Reg.A = cpu.IO.PopStack(RegS)
		cpu.Reg.B = cpu.IO.PopStack(RegS)
		cpu.Reg.DP = cpu.IO.PopStack(RegS)
		cpu.Reg.X = cpu.IO.PopStackWord(RegS)
		cpu.Reg.Y = cpu.IO.PopStackWord(RegS)
		cpu.Reg.U = cpu.IO.PopStackWord(RegS)
	}
	cpu.Reg.PC = cpu.IO.PopStackWord(RegS)
	return nil
}

// Call and Wait for Interrupt. The condition codes are ANDed with the
// immediate byte, the entire frame is stacked, and execution resumes
// at the following instruction. Step does not wait for an interrupt.
func (cpu *CPU) cwai(inst *Instruction, mr MemoryResult) error {
	cpu.Reg.CC &= Status(mr.Value)
	cpu.Reg.Set(Entire)
	cpu.pushEntireFrame()
	return nil
}

// Multiply Unsigned
func (cpu *CPU) mul(inst *Instruction, mr MemoryResult) error {
	d := uint16(cpu.Reg.A) * uint16(cpu.Reg.B)
	cpu.Reg.SetD(d)
	cpu.Reg.Clear(Zero | Carry)
	cpu.Reg.Assign(Zero, d == 0)
	cpu.Reg.Assign(Carry, d&0x80 != 0)
	return nil
}

// Software Interrupt
func (cpu *CPU) swi(inst *Instruction, mr MemoryResult) error {
	cpu.softwareInterrupt(VectorSWI)
	cpu.Reg.Set(IRQMask | FIRQMask)
	return nil
}

// Software Interrupt 2
func (cpu *CPU) swi2(inst *Instruction, mr MemoryResult) error {
	cpu.softwareInterrupt(VectorSWI2)
	return nil
}

// Software Interrupt 3
func (cpu *CPU) swi3(inst *Instruction, mr MemoryResult) error {
	cpu.softwareInterrupt(VectorSWI3)
	return nil
}

// Subtract M from A
func (cpu *CPU) suba(inst *Instruction, mr MemoryResult) error {
	cpu.subtractM(&cpu.Reg.A, cpu.loadByte(inst, mr))
	return nil
}

// Compare A
func (cpu *CPU) cmpa(inst *Instruction, mr MemoryResult) error {
	cpu.compareByte(cpu.Reg.A, cpu.loadByte(inst, mr))
	return nil
}

// Subtract M and C from A
func (cpu *CPU) sbca(inst *Instruction, mr MemoryResult) error {
	cpu.subtractMC(&cpu.Reg.A, cpu.loadByte(inst, mr))
	return nil
}

// Subtract M from D
func (cpu *CPU) subd(inst *Instruction, mr MemoryResult) error {
	cpu.subtractD(cpu.loadWord(inst, mr))
	return nil
}

// Logical AND A
func (cpu *CPU) anda(inst *Instruction, mr MemoryResult) error {
	cpu.logicalAnd(&cpu.Reg.A, cpu.loadByte(inst, mr))
	return nil
}

// Bit Test A
func (cpu *CPU) bita(inst *Instruction, mr MemoryResult) error {
	cpu.test(cpu.Reg.A & cpu.loadByte(inst, mr))
	return nil
}

// Load A
func (cpu *CPU) lda(inst *Instruction, mr MemoryResult) error {
	cpu.loadByteRegister(&cpu.Reg.A, cpu.loadByte(inst, mr))
	return nil
}

// Store A
func (cpu *CPU) sta(inst *Instruction, mr MemoryResult) error {
	cpu.storeByteRegister(cpu.Reg.A, mr.Value)
	return nil
}

// Exclusive OR A
func (cpu *CPU) eora(inst *Instruction, mr MemoryResult) error {
	cpu.exclusiveOr(&cpu.Reg.A, cpu.loadByte(inst, mr))
	return nil
}

// Add with Carry A
func (cpu *CPU) adca(inst *Instruction, mr MemoryResult) error {
	cpu.addWithCarry(&cpu.Reg.A, cpu.loadByte(inst, mr))
	return nil
}

// Logical OR A
func (cpu *CPU) ora(inst *Instruction, mr MemoryResult) error {
	cpu.logicalOr(&cpu.Reg.A, cpu.loadByte(inst, mr))
	return nil
}

// Add A
func (cpu *CPU) adda(inst *Instruction, mr MemoryResult) error {
	cpu.addByte(&cpu.Reg.A, cpu.loadByte(inst, mr))
	return nil
}

// Compare X
func (cpu *CPU) cmpx(inst *Instruction, mr MemoryResult) error {
	cpu.compareWord(cpu.Reg.X, cpu.loadWord(inst, mr))
	return nil
}

// Load X
func (cpu *CPU) ldx(inst *Instruction, mr MemoryResult) error {
	cpu.loadWordRegister(RegX, cpu.loadWord(inst, mr))
	return nil
}

// Store X
func (cpu *CPU) stx(inst *Instruction, mr MemoryResult) error {
	cpu.storeWordRegister(RegX, mr.Value)
	return nil
}

// Subtract M from B
func (cpu *CPU) subb(inst *Instruction, mr MemoryResult) error {
	cpu.subtractM(&cpu.Reg.B, cpu.loadByte(inst, mr))
	return nil
}

// Compare B
func (cpu *CPU) cmpb(inst *Instruction, mr MemoryResult) error {
	cpu.compareByte(cpu.Reg.B, cpu.loadByte(inst, mr))
	return nil
}

// Subtract M and C from B
func (cpu *CPU) sbcb(inst *Instruction, mr MemoryResult) error {
	cpu.subtractMC(&cpu.Reg.B, cpu.loadByte(inst, mr))
	return nil
}

// Add D
func (cpu *CPU) addd(inst *Instruction, mr MemoryResult) error {
	cpu.addD(cpu.loadWord(inst, mr))
	return nil
}

// Logical AND B
func (cpu *CPU) andb(inst *Instruction, mr MemoryResult) error {
	cpu.logicalAnd(&cpu.Reg.B, cpu.loadByte(inst, mr))
	return nil
}

// Bit Test B
func (cpu *CPU) bitb(inst *Instruction, mr MemoryResult) error {
	cpu.test(cpu.Reg.B & cpu.loadByte(inst, mr))
	return nil
}

// Load B
func (cpu *CPU) ldb(inst *Instruction, mr MemoryResult) error {
	cpu.loadByteRegister(&cpu.Reg.B, cpu.loadByte(inst, mr))
	return nil
}

// Store B
func (cpu *CPU) stb(inst *Instruction, mr MemoryResult) error {
	cpu.storeByteRegister(cpu.Reg.B, mr.Value)
	return nil
}

// Exclusive OR B
func (cpu *CPU) eorb(inst *Instruction, mr MemoryResult) error {
	cpu.exclusiveOr(&cpu.Reg.B, cpu.loadByte(inst, mr))
	return nil
}

// Add with Carry B
func (cpu *CPU) adcb(inst *Instruction, mr MemoryResult) error {
	cpu.addWithCarry(&cpu.Reg.B, cpu.loadByte(inst, mr))
	return nil
}

// Logical OR B
func (cpu *CPU) orb(inst *Instruction, mr MemoryResult) error {
	cpu.logicalOr(&cpu.Reg.B, cpu.loadByte(inst, mr))
	return nil
}

// Add B
func (cpu *CPU) addb(inst *Instruction, mr MemoryResult) error {
	cpu.addByte(&cpu.Reg.B, cpu.loadByte(inst, mr))
	return nil
}

// Load D
func (cpu *CPU) ldd(inst *Instruction, mr MemoryResult) error {
	cpu.loadWordRegister(RegD, cpu.loadWord(inst, mr))
	return nil
}

// Store D
func (cpu *CPU) std(inst *Instruction, mr MemoryResult) error {
	cpu.storeWordRegister(RegD, mr.Value)
	return nil
}

// Load U
func (cpu *CPU) ldu(inst *Instruction, mr MemoryResult) error {
	cpu.loadWordRegister(RegU, cpu.loadWord(inst, mr))
	return nil
}

// Store U
func (cpu *CPU) stu(inst *Instruction, mr MemoryResult) error {
	cpu.storeWordRegister(RegU, mr.Value)
	return nil
}

// Compare D
func (cpu *CPU) cmpd(inst *Instruction, mr MemoryResult) error {
	cpu.compareWord(cpu.Reg.D(), cpu.loadWord(inst, mr))
	return nil
}

// Compare Y
func (cpu *CPU) cmpy(inst *Instruction, mr MemoryResult) error {
	cpu.compareWord(cpu.Reg.Y, cpu.loadWord(inst, mr))
	return nil
}

// Load Y
func (cpu *CPU) ldy(inst *Instruction, mr MemoryResult) error {
	cpu.loadWordRegister(RegY, cpu.loadWord(inst, mr))
	return nil
}

// Store Y
func (cpu *CPU) sty(inst *Instruction, mr MemoryResult) error {
	cpu.storeWordRegister(RegY, mr.Value)
	return nil
}

// Load S
func (cpu *CPU) lds(inst *Instruction, mr MemoryResult) error {
	cpu.loadWordRegister(RegS, cpu.loadWord(inst, mr))
	return nil
}

// Store S
func (cpu *CPU) sts(inst *Instruction, mr MemoryResult) error {
	cpu.storeWordRegister(RegS, mr.Value)
	return nil
}

// Compare U
func (cpu *CPU) cmpu(inst *Instruction, mr MemoryResult) error {
	cpu.compareWord(cpu.Reg.U, cpu.loadWord(inst, mr))
	return nil
}

// Compare S
func (cpu *CPU) cmps(inst *Instruction, mr MemoryResult) error {
	cpu.compareWord(cpu.Reg.S, cpu.loadWord(inst, mr))
	return nil
}

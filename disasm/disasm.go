// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 6809 instruction set disassembler.
package disasm

import (
	"fmt"

	"github.com/beevik/go6809"
)

// Index register names selected by bits 5-6 of an indexed post-byte.
var indexRegName = []string{"X", "Y", "U", "S"}

// Disassemble the machine code readable through 'io' at address
// 'addr'. Return a 'line' string representing the disassembled
// instruction and a 'next' address that starts the following line of
// machine code.
func Disassemble(io *go6809.IOController, addr uint16) (line string, next uint16) {
	opcode := uint16(io.ReadByte(addr))
	if opcode == 0x10 || opcode == 0x11 {
		opcode = opcode<<8 | uint16(io.ReadByte(addr+1))
	}

	inst := go6809.Lookup(opcode)
	if inst.Name == "" {
		return fmt.Sprintf("FCB $%02X", io.ReadByte(addr)), addr + 1
	}

	length := uint16(inst.Length())
	operandAddr := addr + length
	switch inst.Mode {
	case go6809.IMM8:
		line = fmt.Sprintf("%s #$%02X", inst.Name, io.ReadByte(operandAddr-1))
	case go6809.IMM16:
		line = fmt.Sprintf("%s #$%04X", inst.Name, io.ReadWord(operandAddr-2))
	case go6809.DIR:
		line = fmt.Sprintf("%s <$%02X", inst.Name, io.ReadByte(operandAddr-1))
	case go6809.EXT:
		line = fmt.Sprintf("%s $%04X", inst.Name, io.ReadWord(operandAddr-2))
	case go6809.REL8:
		offset := int8(io.ReadByte(operandAddr - 1))
		line = fmt.Sprintf("%s $%04X", inst.Name, operandAddr+uint16(int16(offset)))
	case go6809.REL16:
		offset := io.ReadWord(operandAddr - 2)
		line = fmt.Sprintf("%s $%04X", inst.Name, operandAddr+offset)
	case go6809.ACCA:
		line = inst.Name + "A"
	case go6809.ACCB:
		line = inst.Name + "B"
	case go6809.IDX:
		var operand string
		var extra uint16
		operand, extra = indexedOperand(io, operandAddr-1)
		line = fmt.Sprintf("%s %s", inst.Name, operand)
		length += extra
	default:
		line = inst.Name
	}

	return line, addr + length
}

// indexedOperand formats the indexed post-byte at 'addr' plus any
// displacement bytes that follow it, returning the operand text and
// the number of displacement bytes consumed.
func indexedOperand(io *go6809.IOController, addr uint16) (string, uint16) {
	postByte := io.ReadByte(addr)
	reg := indexRegName[(postByte&0x60)>>5]

	if postByte&0x80 == 0 {
		offset := int8(postByte << 3)
		return fmt.Sprintf("%d,%s", int(offset)>>3, reg), 0
	}

	switch postByte & 0x1f {
	case 0x00:
		return fmt.Sprintf(",%s+", reg), 0
	case 0x01:
		return fmt.Sprintf(",%s++", reg), 0
	case 0x02:
		return fmt.Sprintf(",%s-", reg), 0
	case 0x03:
		return fmt.Sprintf(",%s--", reg), 0
	case 0x04:
		return fmt.Sprintf(",%s", reg), 0
	case 0x05:
		return fmt.Sprintf("B,%s", reg), 0
	case 0x06:
		return fmt.Sprintf("A,%s", reg), 0
	case 0x08:
		return fmt.Sprintf("$%02X,%s", io.ReadByte(addr+1), reg), 1
	case 0x09:
		return fmt.Sprintf("$%04X,%s", io.ReadWord(addr+1), reg), 2
	case 0x0b:
		return fmt.Sprintf("D,%s", reg), 0
	case 0x0c:
		return fmt.Sprintf("$%02X,PC", io.ReadByte(addr+1)), 1
	case 0x0d:
		return fmt.Sprintf("$%04X,PC", io.ReadWord(addr+1)), 2
	case 0x11:
		return fmt.Sprintf("[,%s++]", reg), 0
	case 0x13:
		return fmt.Sprintf("[,%s--]", reg), 0
	case 0x14:
		return fmt.Sprintf("[,%s]", reg), 0
	case 0x15:
		return fmt.Sprintf("[B,%s]", reg), 0
	case 0x16:
		return fmt.Sprintf("[A,%s]", reg), 0
	case 0x18:
		return fmt.Sprintf("[$%02X,%s]", io.ReadByte(addr+1), reg), 1
	case 0x19:
		return fmt.Sprintf("[$%04X,%s]", io.ReadWord(addr+1), reg), 2
	case 0x1b:
		return fmt.Sprintf("[D,%s]", reg), 0
	case 0x1c:
		return fmt.Sprintf("[$%02X,PC]", io.ReadByte(addr+1)), 1
	case 0x1d:
		return fmt.Sprintf("[$%04X,PC]", io.ReadWord(addr+1)), 2
	case 0x1f:
		return fmt.Sprintf("[$%04X]", io.ReadWord(addr+1)), 2
	}

	return fmt.Sprintf("?$%02X", postByte), 0
}

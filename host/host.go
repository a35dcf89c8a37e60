// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allows you to create a "host" that emulates a computer
// system with a 6809 CPU, 512K of paged memory, a built-in debugger,
// and other useful tools.
//
// Within the host it is possible to load machine code into memory,
// debug and step through machine code, set address and data
// breakpoints, dump and modify the contents of memory, disassemble the
// contents of memory, manipulate CPU registers, and schedule
// interrupts. The host does not display elapsed CPU cycle counts.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/go6809"
	"github.com/beevik/go6809/disasm"
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
	stateInterrupted
)

var errQuit = errors.New("quit")

// A Host represents a fully emulated 6809 system with 512K of paged
// memory, a built-in debugger, and other useful tools.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	mem         *go6809.Memory
	cpu         *go6809.CPU
	debugger    *go6809.Debugger
	lastCmd     *cmd.Selection
	state       state
	settings    *settings
}

// New creates a new 6809 host environment.
func New() *Host {
	h := &Host{
		state:    stateProcessingCommands,
		settings: newSettings(),
	}

	// Create the emulated CPU and memory.
	h.mem = go6809.NewMemory()
	h.cpu = go6809.New(h.mem, &go6809.Registers{}, nil)
	h.cpu.Reset()

	// The monitor writes anywhere in the logical space, so lift the
	// ROM write protection.
	h.mem.EnableAllRAMMode()

	// Create a CPU debugger and attach it to the CPU.
	h.debugger = go6809.NewDebugger(h)
	h.cpu.AttachDebugger(h.debugger)

	return h
}

// CPU returns the emulated CPU.
func (h *Host) CPU() *go6809.CPU {
	return h.cpu
}

// RunCommands accepts host commands from a reader and outputs the
// results to a writer. If the commands are interactive, a prompt is
// displayed while the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
		h.displayPC()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(func(*Host, cmd.Selection) error)
		err = handler(h, c)
		if err != nil {
			break
		}
	}
}

// Break interrupts a running CPU.
func (h *Host) Break() {
	h.println()
	if h.state == stateRunning {
		h.state = stateInterrupted
	}
}

// OnBreakpoint is called by the debugger when the CPU reaches a
// breakpoint address.
func (h *Host) OnBreakpoint(cpu *go6809.CPU, b *go6809.Breakpoint) {
	if h.state == stateRunning {
		h.state = stateBreakpoint
		h.printf("Breakpoint hit at $%04X.\n", b.Address)
	}
}

// OnDataBreakpoint is called by the debugger when a watched address is
// stored to.
func (h *Host) OnDataBreakpoint(cpu *go6809.CPU, b *go6809.DataBreakpoint) {
	if h.state == stateRunning {
		h.state = stateBreakpoint
		h.printf("Data breakpoint hit at $%04X.\n", b.Address)
	}
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) displayPC() {
	if h.interactive {
		line, _ := disasm.Disassemble(h.cpu.IO, h.cpu.Reg.PC)
		h.printf("%04X-   %-24s  %s\n", h.cpu.Reg.PC, line, h.registerString())
	}
}

func (h *Host) registerString() string {
	r := h.cpu.Reg
	flags := []byte("EFHINZVC")
	for i, m := range []go6809.Status{
		go6809.Entire, go6809.FIRQMask, go6809.HalfCarry, go6809.IRQMask,
		go6809.Negative, go6809.Zero, go6809.Overflow, go6809.Carry,
	} {
		if !r.IsSet(m) {
			flags[i] = '.'
		}
	}
	return fmt.Sprintf("A=%02X B=%02X X=%04X Y=%04X U=%04X S=%04X DP=%02X CC=%s",
		r.A, r.B, r.X, r.Y, r.U, r.S, r.DP, flags)
}

func (h *Host) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		h.printf("Usage: %s\n", c.Usage)
	}
}

func (h *Host) parseExpr(s string) (uint16, error) {
	v, err := h.parseInt(s)
	return uint16(v), err
}

func (h *Host) parseByte(s string) (byte, error) {
	v, err := h.parseInt(s)
	return byte(v), err
}

func (h *Host) parseInt(s string) (int64, error) {
	base := 10
	if h.settings.HexMode {
		base = 16
	}
	switch {
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	var v int64
	var err error
	for _, ch := range s {
		d := int64(hexDigit(byte(ch)))
		if d < 0 || d >= int64(base) {
			err = fmt.Errorf("invalid number '%s'", s)
			break
		}
		v = v*int64(base) + d
	}
	if s == "" {
		err = fmt.Errorf("invalid number")
	}
	return v, err
}

func hexDigit(ch byte) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10
	default:
		return -1
	}
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	if len(c.Args) > 0 {
		s, err := cmds.Lookup(strings.Join(c.Args, " "))
		if err == nil && s.Command != nil {
			if s.Command.Description != "" {
				h.println(s.Command.Description)
			}
			h.displayUsage(s.Command)
			return nil
		}
		h.println("Command not found.")
		return nil
	}

	h.println("Commands:")
	h.println("    breakpoint      Breakpoint commands (list, add, remove, enable, disable)")
	h.println("    databreakpoint  Data breakpoint commands (list, add, remove)")
	h.println("    disassemble     Disassemble code")
	h.println("    interrupt       Schedule interrupts (irq, firq, nmi)")
	h.println("    load            Load a binary file")
	h.println("    memory          Memory commands (dump, set)")
	h.println("    register        View or change register values")
	h.println("    reset           Reset the machine")
	h.println("    run             Run the CPU")
	h.println("    set             Set a configuration variable")
	h.println("    step            Step the CPU")
	h.println("    trace           Enable or disable instruction tracing")
	h.println("    quit            Quit the program")
	return nil
}

func (h *Host) cmdBreakpointList(c cmd.Selection) error {
	h.println("Addr  Enabled")
	h.println("----- -------")
	for _, b := range h.debugger.Breakpoints() {
		h.printf("$%04X %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if h.debugger.GetBreakpoint(addr) == nil {
		h.printf("No breakpoint at $%04X.\n", addr)
		return nil
	}
	h.debugger.RemoveBreakpoint(addr)
	h.printf("Breakpoint removed at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(c cmd.Selection) error {
	return h.setBreakpointDisabled(c, false)
}

func (h *Host) cmdBreakpointDisable(c cmd.Selection) error {
	return h.setBreakpointDisabled(c, true)
}

func (h *Host) setBreakpointDisabled(c cmd.Selection, disabled bool) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint at $%04X.\n", addr)
		return nil
	}
	b.Disabled = disabled
	return nil
}

func (h *Host) cmdDataBreakpointList(c cmd.Selection) error {
	h.println("Addr  Conditional Value")
	h.println("----- ----------- -----")
	for _, b := range h.debugger.DataBreakpoints() {
		if b.Conditional {
			h.printf("$%04X true        $%02X\n", b.Address, b.Value)
		} else {
			h.printf("$%04X false\n", b.Address)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if len(c.Args) > 1 {
		value, err := h.parseByte(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, value)
	} else {
		h.debugger.AddDataBreakpoint(addr)
	}
	h.printf("Data breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.debugger.RemoveDataBreakpoint(addr)
	h.printf("Data breakpoint removed at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	addr := h.settings.NextDisasmAddr
	if len(c.Args) > 0 {
		switch c.Args[0] {
		case ".":
			addr = h.cpu.Reg.PC
		default:
			a, err := h.parseExpr(c.Args[0])
			if err != nil {
				h.printf("%v\n", err)
				return nil
			}
			addr = a
		}
	}

	lines := h.settings.DisasmLines
	if len(c.Args) > 1 {
		n, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(n)
	}

	for i := 0; i < lines; i++ {
		line, next := disasm.Disassemble(h.cpu.IO, addr)
		h.printf("%04X-   %s\n", addr, line)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	data, err := os.ReadFile(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	for _, b := range data {
		h.cpu.IO.WriteByte(addr, b)
		addr++
	}
	h.printf("Loaded '%s' (%d bytes).\n", c.Args[0], len(data))
	return nil
}

func (h *Host) cmdMemoryDump(c cmd.Selection) error {
	addr := h.settings.NextMemDumpAddr
	if len(c.Args) > 0 {
		switch c.Args[0] {
		case ".":
			addr = h.cpu.Reg.PC
		default:
			a, err := h.parseExpr(c.Args[0])
			if err != nil {
				h.printf("%v\n", err)
				return nil
			}
			addr = a
		}
	}

	bytes := uint16(h.settings.MemDumpBytes)
	if len(c.Args) > 1 {
		n, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		bytes = n
	}

	h.dumpMemory(addr, bytes)
	h.settings.NextMemDumpAddr = addr + bytes
	return nil
}

// dumpMemory writes a hex dump, 8 bytes per line with a printable
// character gutter.
func (h *Host) dumpMemory(addr0 uint16, bytes uint16) {
	if bytes < 0x100 && (addr0&0xff)+bytes > 0x100 {
		bytes = 0x100 - (addr0 & 0xff)
	}

	buf := []byte("XXXX- XX XX XX XX XX XX XX XX  ........")

	// Don't align display for short dumps.
	if bytes < 8 {
		addrToBuf(addr0, buf[0:4])
		for i, j, k := uint16(0), 6, 31; i < bytes; i, j, k = i+1, j+3, k+1 {
			m := h.cpu.IO.ReadByte(addr0 + i)
			byteToBuf(m, buf[j:j+2])
			buf[k] = toPrintableChar(m)
		}
		h.println(string(buf[:31+bytes]))
		return
	}

	// Align addresses to 8-byte boundaries for longer dumps.
	start := addr0 & 0xfff8
	end := addr0 + bytes - 1

	a := start
	for i := int(end-start)/8 + 1; i > 0; i-- {
		addrToBuf(a, buf[0:4])
		for j, k := 6, 31; j < 29; j, k = j+3, k+1 {
			if a >= addr0 && a <= end {
				m := h.cpu.IO.ReadByte(a)
				byteToBuf(m, buf[j:j+2])
				buf[k] = toPrintableChar(m)
			} else {
				buf[j], buf[j+1], buf[k] = ' ', ' ', ' '
			}
			a++
		}
		h.println(string(buf))
	}
}

func (h *Host) cmdMemorySet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}
	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	for _, arg := range c.Args[1:] {
		v, err := h.parseByte(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.IO.WriteByte(addr, v)
		addr++
	}
	return nil
}

func (h *Host) cmdInterruptIRQ(c cmd.Selection) error {
	h.cpu.ScheduleIRQ()
	return nil
}

func (h *Host) cmdInterruptFIRQ(c cmd.Selection) error {
	h.cpu.ScheduleFIRQ()
	return nil
}

func (h *Host) cmdInterruptNMI(c cmd.Selection) error {
	h.cpu.ScheduleNMI()
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errQuit
}

func (h *Host) cmdRegister(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.printf("PC=%04X %s\n", h.cpu.Reg.PC, h.registerString())
		return nil
	}
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	value, err := h.parseExpr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	r := h.cpu.Reg
	switch strings.ToUpper(c.Args[0]) {
	case "A":
		r.A = byte(value)
	case "B":
		r.B = byte(value)
	case "D":
		r.SetD(value)
	case "X":
		r.X = value
	case "Y":
		r.Y = value
	case "U":
		r.U = value
	case "S":
		r.S = value
	case "PC":
		r.PC = value
	case "DP":
		r.DP = byte(value)
	case "CC":
		r.CC = go6809.Status(value)
	default:
		h.printf("Unknown register '%s'.\n", c.Args[0])
		return nil
	}
	h.printf("PC=%04X %s\n", r.PC, h.registerString())
	return nil
}

func (h *Host) cmdReset(c cmd.Selection) error {
	h.cpu.Reset()
	h.mem.EnableAllRAMMode()
	h.displayPC()
	return nil
}

func (h *Host) cmdRun(c cmd.Selection) error {
	if len(c.Args) > 0 {
		pc, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.SetPC(pc)
	}

	h.state = stateRunning
	for h.state == stateRunning {
		if _, err := h.cpu.Step(); err != nil {
			h.printf("%v\n", err)
			break
		}
	}
	h.state = stateProcessingCommands
	h.displayPC()
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()
	case 1:
		h.displayUsage(c.Command)
	default:
		key, value := c.Args[0], strings.Join(c.Args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = errors.New("invalid setting")
		case reflect.Bool:
			var b bool
			if b, err = stringToBool(value); err == nil {
				err = h.settings.Set(key, b)
			}
		case reflect.String:
			err = h.settings.Set(key, value)
		default:
			var v int64
			if v, err = h.parseInt(value); err == nil {
				err = h.settings.Set(key, v)
			}
		}
		if err != nil {
			h.printf("%v\n", err)
		}
	}
	return nil
}

func (h *Host) cmdStep(c cmd.Selection) error {
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = int(n)
	}

	for i := 0; i < count; i++ {
		if _, err := h.cpu.Step(); err != nil {
			h.printf("%v\n", err)
			break
		}
		if count <= h.settings.MaxStepLines || i >= count-h.settings.MaxStepLines {
			h.displayPC()
		}
	}
	return nil
}

func (h *Host) cmdTrace(c cmd.Selection) error {
	on := true
	if len(c.Args) > 0 {
		var err error
		on, err = stringToBool(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}
	h.cpu.TraceWriter = h.output
	h.cpu.SetTrace(on)
	return nil
}

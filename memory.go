package go6809

import (
	"errors"
	"os"
)

// PhysicalMemorySize is the size of the machine's physical RAM.
const PhysicalMemorySize = 0x80000 // 512 KiB

// Memory errors
var (
	ErrMemoryOutOfBounds = errors.New("memory out of bounds")
)

// Memory represents the machine's physical memory together with the
// memory management unit state: two 8-entry page address register
// tables, the MMU enable switch, the PAR table selector, the all-RAM
// switch, and the two-bit ROM mapping mode.
//
// Logical 16-bit addresses are translated to physical addresses in one
// of two ways. With the MMU disabled, the logical space maps onto the
// top 64 KiB of physical memory. With the MMU enabled, the top three
// bits of the logical address select an entry in the active PAR table,
// and that entry supplies the upper bits of the physical address of an
// 8 KiB page.
type Memory struct {
	ram          []byte
	executivePAR [8]byte
	taskPAR      [8]byte
	mmuEnabled   bool
	executivePar bool
	allRAMMode   bool
	romMode      byte
}

// NewMemory creates physical memory in the power-on state: MMU
// disabled, task PAR selected, and both PAR tables mapping the top
// 64 KiB of physical memory.
func NewMemory() *Memory {
	m := &Memory{
		ram: make([]byte, PhysicalMemorySize),
	}
	for i := 0; i < 8; i++ {
		m.executivePAR[i] = byte(0x38 + i)
		m.taskPAR[i] = byte(0x38 + i)
	}
	return m
}

// physicalAddress translates a logical address to a physical address
// using the current MMU state.
func (m *Memory) physicalAddress(addr uint16) int {
	if !m.mmuEnabled {
		return 0x70000 + int(addr)
	}
	slot := addr >> 13
	par := m.taskPAR[slot]
	if m.executivePar {
		par = m.executivePAR[slot]
	}
	return int(par)<<13 | int(addr&0x1fff)
}

// romWindowStart returns the first logical address of the ROM image
// window for the current ROM mapping mode. Bit 1 of the mode selects
// the 32 KiB map; otherwise only the top 16 KiB is ROM.
func (m *Memory) romWindowStart() uint16 {
	if m.romMode&0x2 != 0 {
		return 0x8000
	}
	return 0xc000
}

// ReadByte reads the byte at a logical address.
func (m *Memory) ReadByte(addr uint16) byte {
	return m.ram[m.physicalAddress(addr)]
}

// WriteByte writes a byte to a logical address. Writes that land in
// the ROM window are suppressed unless all-RAM mode is enabled.
func (m *Memory) WriteByte(addr uint16, v byte) {
	if !m.allRAMMode && addr >= m.romWindowStart() {
		return
	}
	m.ram[m.physicalAddress(addr)] = v
}

// ReadPhysical reads the byte at a physical address, bypassing the MMU.
func (m *Memory) ReadPhysical(addr int) byte {
	return m.ram[addr]
}

// WritePhysical writes a byte to a physical address, bypassing the MMU
// and the ROM write protection.
func (m *Memory) WritePhysical(addr int, v byte) {
	m.ram[addr] = v
}

// CopyBytes copies binary 'data' into physical memory at 'addr'.
func (m *Memory) CopyBytes(addr int, data []byte) error {
	if addr+len(data) > len(m.ram) {
		return ErrMemoryOutOfBounds
	}
	copy(m.ram[addr:], data)
	return nil
}

// LoadFile loads binary data from the file at 'filename' into physical
// memory starting at address 'addr'.
func (m *Memory) LoadFile(addr int, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return m.CopyBytes(addr, data)
}

// EnableMMU turns on PAR-based address translation.
func (m *Memory) EnableMMU() {
	m.mmuEnabled = true
}

// DisableMMU turns off PAR-based address translation.
func (m *Memory) DisableMMU() {
	m.mmuEnabled = false
}

// MMUEnabled reports whether PAR-based translation is active.
func (m *Memory) MMUEnabled() bool {
	return m.mmuEnabled
}

// EnableExecutivePAR selects the executive PAR table for translation.
func (m *Memory) EnableExecutivePAR() {
	m.executivePar = true
}

// EnableTaskPAR selects the task PAR table for translation.
func (m *Memory) EnableTaskPAR() {
	m.executivePar = false
}

// ExecutivePAREnabled reports whether the executive PAR table is
// selected.
func (m *Memory) ExecutivePAREnabled() bool {
	return m.executivePar
}

// SetExecutivePAR sets entry 'n' of the executive PAR table.
func (m *Memory) SetExecutivePAR(n int, v byte) {
	m.executivePAR[n] = v
}

// SetTaskPAR sets entry 'n' of the task PAR table.
func (m *Memory) SetTaskPAR(n int, v byte) {
	m.taskPAR[n] = v
}

// ExecutivePAR returns entry 'n' of the executive PAR table.
func (m *Memory) ExecutivePAR(n int) byte {
	return m.executivePAR[n]
}

// TaskPAR returns entry 'n' of the task PAR table.
func (m *Memory) TaskPAR(n int) byte {
	return m.taskPAR[n]
}

// EnableAllRAMMode disables ROM write protection.
func (m *Memory) EnableAllRAMMode() {
	m.allRAMMode = true
}

// DisableAllRAMMode enables ROM write protection.
func (m *Memory) DisableAllRAMMode() {
	m.allRAMMode = false
}

// AllRAMMode reports whether ROM write protection is disabled.
func (m *Memory) AllRAMMode() bool {
	return m.allRAMMode
}

// SetROMMode sets the two-bit ROM mapping mode.
func (m *Memory) SetROMMode(mode byte) {
	m.romMode = mode & 0x3
}

// ROMMode returns the two-bit ROM mapping mode.
func (m *Memory) ROMMode() byte {
	return m.romMode
}

package go6809_test

import (
	"testing"

	"github.com/beevik/go6809"
)

func TestTranslationMMUDisabled(t *testing.T) {
	mem := go6809.NewMemory()
	mem.WritePhysical(0x70000, 0x11)
	mem.WritePhysical(0x7ffff, 0x22)

	if got := mem.ReadByte(0x0000); got != 0x11 {
		t.Errorf("exp: $11, got: $%02X", got)
	}
	if got := mem.ReadByte(0xffff); got != 0x22 {
		t.Errorf("exp: $22, got: $%02X", got)
	}
}

func TestTranslationMMUEnabled(t *testing.T) {
	mem := go6809.NewMemory()
	mem.EnableMMU()
	mem.SetTaskPAR(0, 0x05)
	mem.WritePhysical(0x05<<13|0x123, 0x99)

	if got := mem.ReadByte(0x0123); got != 0x99 {
		t.Errorf("exp: $99, got: $%02X", got)
	}

	// Slot selection uses the top three bits of the logical address.
	mem.SetTaskPAR(7, 0x06)
	mem.WritePhysical(0x06<<13|0x1456, 0x77)
	if got := mem.ReadByte(0xf456); got != 0x77 {
		t.Errorf("exp: $77, got: $%02X", got)
	}
}

func TestTranslationPARSelect(t *testing.T) {
	mem := go6809.NewMemory()
	mem.EnableMMU()
	mem.SetTaskPAR(0, 0x01)
	mem.SetExecutivePAR(0, 0x02)
	mem.WritePhysical(0x01<<13, 0xaa)
	mem.WritePhysical(0x02<<13, 0xbb)

	if got := mem.ReadByte(0x0000); got != 0xaa {
		t.Errorf("task PAR: exp $AA, got $%02X", got)
	}
	mem.EnableExecutivePAR()
	if got := mem.ReadByte(0x0000); got != 0xbb {
		t.Errorf("executive PAR: exp $BB, got $%02X", got)
	}
}

func TestROMWriteSuppression(t *testing.T) {
	mem := go6809.NewMemory()
	mem.SetROMMode(0x2) // 32K map: ROM window starts at $8000

	mem.WriteByte(0x8000, 0x55)
	if got := mem.ReadByte(0x8000); got != 0 {
		t.Errorf("write inside ROM window not suppressed: $%02X", got)
	}

	mem.WriteByte(0x7fff, 0x66)
	if got := mem.ReadByte(0x7fff); got != 0x66 {
		t.Errorf("write below ROM window suppressed: $%02X", got)
	}

	mem.EnableAllRAMMode()
	mem.WriteByte(0x8000, 0x55)
	if got := mem.ReadByte(0x8000); got != 0x55 {
		t.Errorf("write suppressed in all-RAM mode: $%02X", got)
	}
}

func TestROMWindowFollowsROMMode(t *testing.T) {
	mem := go6809.NewMemory()
	mem.SetROMMode(0x0) // 16K map: ROM window starts at $C000

	mem.WriteByte(0x8000, 0x11)
	if got := mem.ReadByte(0x8000); got != 0x11 {
		t.Errorf("write below 16K ROM window suppressed: $%02X", got)
	}

	mem.WriteByte(0xc000, 0x22)
	if got := mem.ReadByte(0xc000); got != 0 {
		t.Errorf("write inside 16K ROM window not suppressed: $%02X", got)
	}
}

func TestCopyBytes(t *testing.T) {
	mem := go6809.NewMemory()
	if err := mem.CopyBytes(0x70000, []byte{0x01, 0x02, 0x03}); err != nil {
		t.Fatalf("CopyBytes failed: %v", err)
	}
	if got := mem.ReadByte(0x0002); got != 0x03 {
		t.Errorf("exp: $03, got: $%02X", got)
	}

	if err := mem.CopyBytes(go6809.PhysicalMemorySize-1, []byte{1, 2}); err == nil {
		t.Error("expected out of bounds error")
	}
}

func TestUninitializedMemoryReadsZero(t *testing.T) {
	mem := go6809.NewMemory()
	if got := mem.ReadByte(0x1234); got != 0 {
		t.Errorf("exp: $00, got: $%02X", got)
	}
}

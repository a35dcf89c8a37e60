package go6809_test

import (
	"errors"
	"testing"

	"github.com/beevik/go6809"
)

type ioFixture struct {
	mem *go6809.Memory
	reg *go6809.Registers
	io  *go6809.IOController
}

func newIOFixture() *ioFixture {
	mem := go6809.NewMemory()
	mem.EnableAllRAMMode()
	reg := &go6809.Registers{}
	return &ioFixture{
		mem: mem,
		reg: reg,
		io:  go6809.NewIOController(mem, reg, nil),
	}
}

func expectWord(t *testing.T, got, exp uint16) {
	t.Helper()
	if got != exp {
		t.Errorf("word incorrect. exp: $%04X, got: $%04X", exp, got)
	}
}

func TestReadByteReadsCorrectByte(t *testing.T) {
	f := newIOFixture()
	f.mem.WritePhysical(0x7beef, 0xab)
	if got := f.io.ReadByte(0xbeef); got != 0xab {
		t.Errorf("exp: $AB, got: $%02X", got)
	}
}

func TestWriteByteWritesCorrectByte(t *testing.T) {
	f := newIOFixture()
	f.io.WriteByte(0xbeef, 0xab)
	if got := f.mem.ReadPhysical(0x7beef); got != 0xab {
		t.Errorf("exp: $AB, got: $%02X", got)
	}
}

func TestReadWriteIOByte(t *testing.T) {
	f := newIOFixture()
	f.io.WriteByte(0xff22, 0xab)
	if got := f.io.ReadByte(0xff22); got != 0xab {
		t.Errorf("exp: $AB, got: $%02X", got)
	}
}

func TestReadWordReadsCorrectWord(t *testing.T) {
	f := newIOFixture()
	f.mem.WritePhysical(0x7beee, 0xab)
	f.mem.WritePhysical(0x7beef, 0xcd)
	expectWord(t, f.io.ReadWord(0xbeee), 0xabcd)
}

func TestReadIOWordReadsCorrectWord(t *testing.T) {
	f := newIOFixture()
	f.io.WriteByte(0xff20, 0xab)
	f.io.WriteByte(0xff21, 0xcd)
	expectWord(t, f.io.ReadWord(0xff20), 0xabcd)
}

func TestGetImmediateWordReadsFromPC(t *testing.T) {
	f := newIOFixture()
	f.io.WriteByte(0xbeee, 0xab)
	f.io.WriteByte(0xbeef, 0xcd)
	f.reg.PC = 0xbeee

	mr := f.io.ImmediateWord()
	if mr.Bytes != 2 {
		t.Errorf("bytes incorrect. exp: 2, got: %d", mr.Bytes)
	}
	expectWord(t, mr.Value, 0xabcd)
	expectWord(t, f.reg.PC, 0xbef0)
}

func TestGetDirectReadsAddressFromDPAndPC(t *testing.T) {
	f := newIOFixture()
	f.io.WriteByte(0xbeee, 0xcd)
	f.reg.PC = 0xbeee
	f.reg.DP = 0xab

	mr := f.io.Direct()
	if mr.Bytes != 1 {
		t.Errorf("bytes incorrect. exp: 1, got: %d", mr.Bytes)
	}
	expectWord(t, mr.Value, 0xabcd)
}

func TestPushStackWritesToMemoryLocation(t *testing.T) {
	f := newIOFixture()
	f.reg.S = 0xa000
	f.io.PushStack(go6809.RegS, 0x98)
	if got := f.mem.ReadPhysical(0x79fff); got != 0x98 {
		t.Errorf("exp: $98, got: $%02X", got)
	}
	expectWord(t, f.reg.S, 0x9fff)
}

func TestPushStackUsingUStack(t *testing.T) {
	f := newIOFixture()
	f.reg.U = 0xa000
	f.io.PushStack(go6809.RegU, 0x98)
	if got := f.mem.ReadPhysical(0x79fff); got != 0x98 {
		t.Errorf("exp: $98, got: $%02X", got)
	}
	expectWord(t, f.reg.U, 0x9fff)
}

func TestPopStackReadsMemoryLocation(t *testing.T) {
	f := newIOFixture()
	f.reg.S = 0xa000
	f.mem.WritePhysical(0x7a000, 0x98)
	if got := f.io.PopStack(go6809.RegS); got != 0x98 {
		t.Errorf("exp: $98, got: $%02X", got)
	}
	expectWord(t, f.reg.S, 0xa001)
}

func TestPushWordPopRoundTrip(t *testing.T) {
	f := newIOFixture()
	f.reg.S = 0xa000
	f.io.PushStackWord(go6809.RegS, 0xbeef)
	hi := f.io.PopStack(go6809.RegS)
	lo := f.io.PopStack(go6809.RegS)
	if hi != 0xbe || lo != 0xef {
		t.Errorf("exp: $BE $EF, got: $%02X $%02X", hi, lo)
	}
	expectWord(t, f.reg.S, 0xa000)
}

func TestBinaryAddWordFlags(t *testing.T) {
	cases := []struct {
		a, b                 uint16
		half, carry, overfl  bool
		result               uint16
		cc                   go6809.Status
	}{
		{0, 0, false, false, false, 0, 0},
		{1, 1, false, false, false, 2, 0},
		{0xffff, 1, false, false, false, 0, 0},
		{0xffff, 1, false, false, true, 0, 0},
		{0x7fff, 1, false, false, true, 0x8000, go6809.Overflow},
		{0xffff, 1, false, true, false, 0, go6809.Carry},
		{1, 1, false, true, false, 2, 0},
		{0xffff, 1, true, false, false, 0, go6809.HalfCarry},
		{0, 1, true, false, false, 1, 0},
	}

	for _, c := range cases {
		f := newIOFixture()
		result := f.io.BinaryAdd16(c.a, c.b, c.half, c.carry, c.overfl)
		if result != c.result {
			t.Errorf("$%04X+$%04X: result exp $%04X, got $%04X", c.a, c.b, c.result, result)
		}
		if f.reg.CC != c.cc {
			t.Errorf("$%04X+$%04X: CC exp $%02X, got $%02X", c.a, c.b, byte(c.cc), byte(f.reg.CC))
		}
	}
}

func TestBinaryAddByteFlags(t *testing.T) {
	cases := []struct {
		a, b                byte
		half, carry, overfl bool
		result              byte
		cc                  go6809.Status
	}{
		{0x0f, 0x01, true, false, false, 0x10, go6809.HalfCarry},
		{0x0e, 0x01, true, false, false, 0x0f, 0},
		{0xff, 0x01, false, true, false, 0x00, go6809.Carry},
		{0x7f, 0x01, false, false, true, 0x80, go6809.Overflow},
		{0x80, 0xff, false, false, true, 0x7f, go6809.Overflow},
		{0x81, 0xff, false, false, true, 0x80, 0},
	}

	for _, c := range cases {
		f := newIOFixture()
		result := f.io.BinaryAdd8(c.a, c.b, c.half, c.carry, c.overfl)
		if result != c.result {
			t.Errorf("$%02X+$%02X: result exp $%02X, got $%02X", c.a, c.b, c.result, result)
		}
		if f.reg.CC != c.cc {
			t.Errorf("$%02X+$%02X: CC exp $%02X, got $%02X", c.a, c.b, byte(c.cc), byte(f.reg.CC))
		}
	}
}

func TestWriteIOByteWritesToPARs(t *testing.T) {
	f := newIOFixture()
	for i := 0; i < 8; i++ {
		f.io.WriteByte(uint16(0xffa0+i), byte(0xa0+i))
		if got := f.mem.ExecutivePAR(i); got != byte(0xa0+i) {
			t.Errorf("executive PAR %d: exp $%02X, got $%02X", i, 0xa0+i, got)
		}
		f.io.WriteByte(uint16(0xffa8+i), byte(0xa8+i))
		if got := f.mem.TaskPAR(i); got != byte(0xa8+i) {
			t.Errorf("task PAR %d: exp $%02X, got $%02X", i, 0xa8+i, got)
		}
	}
}

func TestMMUEnableDisable(t *testing.T) {
	f := newIOFixture()
	f.io.WriteByte(0xff90, 0x00)
	if f.mem.MMUEnabled() {
		t.Error("MMU enabled")
	}
	f.io.WriteByte(0xff90, 0x40)
	if !f.mem.MMUEnabled() {
		t.Error("MMU disabled")
	}
}

func TestPARSelect(t *testing.T) {
	f := newIOFixture()
	f.io.WriteByte(0xff91, 0x00)
	if f.mem.ExecutivePAREnabled() {
		t.Error("executive PAR selected")
	}
	f.io.WriteByte(0xff91, 0x01)
	if !f.mem.ExecutivePAREnabled() {
		t.Error("task PAR selected")
	}
}

func TestAllRAMModeRegisters(t *testing.T) {
	f := newIOFixture()
	f.io.WriteByte(0xffde, 0x00)
	if f.mem.AllRAMMode() {
		t.Error("all-RAM mode enabled")
	}
	f.io.WriteByte(0xffdf, 0x00)
	if !f.mem.AllRAMMode() {
		t.Error("all-RAM mode disabled")
	}
}

// getIndexed decodes the post-byte at PC and returns the effective
// address result.
func getIndexed(t *testing.T, f *ioFixture) go6809.MemoryResult {
	t.Helper()
	mr, err := f.io.Indexed()
	if err != nil {
		t.Fatalf("Indexed failed: %v", err)
	}
	return mr
}

func TestGetIndexedZeroOffset(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteByte(0x0000, 0x84)
	expectWord(t, getIndexed(t, f).Value, 0xb000)
}

func TestGetIndexedZeroOffsetIndirect(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteWord(0xb000, 0xbeef)
	f.io.WriteByte(0x0000, 0x94)
	expectWord(t, getIndexed(t, f).Value, 0xbeef)
}

func TestGetIndexed5BitPositiveOffset(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteByte(0x0000, 0x01)
	mr := getIndexed(t, f)
	expectWord(t, mr.Value, 0xb001)
	if mr.Bytes != 1 {
		t.Errorf("bytes incorrect. exp: 1, got: %d", mr.Bytes)
	}
}

func TestGetIndexed5BitNegativeOffset(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteByte(0x0000, 0x1f) // -1,X
	expectWord(t, getIndexed(t, f).Value, 0xafff)

	f.reg.PC = 0
	f.io.WriteByte(0x0000, 0x10) // -16,X
	expectWord(t, getIndexed(t, f).Value, 0xaff0)
}

func TestGetIndexedRegisterSelection(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0x1000
	f.reg.Y = 0x2000
	f.reg.U = 0x3000
	f.reg.S = 0x4000
	for i, exp := range []uint16{0x1000, 0x2000, 0x3000, 0x4000} {
		f.reg.PC = 0
		f.io.WriteByte(0x0000, byte(0x84|i<<5))
		expectWord(t, getIndexed(t, f).Value, exp)
	}
}

func TestGetIndexedPostIncrement(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteByte(0x0000, 0x80)
	expectWord(t, getIndexed(t, f).Value, 0xb000)
	expectWord(t, f.reg.X, 0xb001)
}

func TestGetIndexedPostIncrementTwice(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteByte(0x0000, 0x81)
	expectWord(t, getIndexed(t, f).Value, 0xb000)
	expectWord(t, f.reg.X, 0xb002)
}

func TestGetIndexedPostIncrementTwiceIndirect(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteWord(0xb000, 0xbeef)
	f.io.WriteByte(0x0000, 0x91)
	expectWord(t, getIndexed(t, f).Value, 0xbeef)
	expectWord(t, f.reg.X, 0xb002)
}

func TestGetIndexedPostDecrement(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteByte(0x0000, 0x82)
	expectWord(t, getIndexed(t, f).Value, 0xb000)
	expectWord(t, f.reg.X, 0xafff)
}

func TestGetIndexedPostDecrementTwice(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteByte(0x0000, 0x83)
	expectWord(t, getIndexed(t, f).Value, 0xb000)
	expectWord(t, f.reg.X, 0xaffe)
}

func TestGetIndexedPostDecrementTwiceIndirect(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteWord(0xb000, 0xbeef)
	f.io.WriteByte(0x0000, 0x93)
	expectWord(t, getIndexed(t, f).Value, 0xbeef)
	expectWord(t, f.reg.X, 0xaffe)
}

func TestGetIndexedBOffset(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.reg.B = 0x0b
	f.io.WriteByte(0x0000, 0x85)
	expectWord(t, getIndexed(t, f).Value, 0xb00b)
}

func TestGetIndexedAOffsetIndirect(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.reg.A = 0x0a
	f.io.WriteWord(0xb00a, 0xbeef)
	f.io.WriteByte(0x0000, 0x96)
	expectWord(t, getIndexed(t, f).Value, 0xbeef)
}

func TestGetIndexed8BitOffsets(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteWord(0x0000, 0x8802)
	mr := getIndexed(t, f)
	expectWord(t, mr.Value, 0xb002)
	if mr.Bytes != 2 {
		t.Errorf("bytes incorrect. exp: 2, got: %d", mr.Bytes)
	}

	f.reg.PC = 0
	f.io.WriteWord(0x0000, 0x88fe) // -2,X
	expectWord(t, getIndexed(t, f).Value, 0xaffe)
}

func TestGetIndexed16BitOffsets(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.io.WriteByte(0x0000, 0x89)
	f.io.WriteWord(0x0001, 0x0200)
	mr := getIndexed(t, f)
	expectWord(t, mr.Value, 0xb200)
	if mr.Bytes != 3 {
		t.Errorf("bytes incorrect. exp: 3, got: %d", mr.Bytes)
	}

	f.reg.PC = 0
	f.io.WriteByte(0x0000, 0x89)
	f.io.WriteWord(0x0001, 0xfe00) // -$200,X
	expectWord(t, getIndexed(t, f).Value, 0xae00)
}

func TestGetIndexedDOffset(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.reg.SetD(0x0200)
	f.io.WriteByte(0x0000, 0x8b)
	expectWord(t, getIndexed(t, f).Value, 0xb200)
}

func TestGetIndexedDOffsetIndirect(t *testing.T) {
	f := newIOFixture()
	f.reg.X = 0xb000
	f.reg.SetD(0x0200)
	f.io.WriteWord(0xb200, 0xbeef)
	f.io.WriteByte(0x0000, 0x9b)
	expectWord(t, getIndexed(t, f).Value, 0xbeef)
}

// PC-relative offsets are taken from the PC after the displacement
// bytes are consumed.
func TestGetIndexedPCRelative8Bit(t *testing.T) {
	f := newIOFixture()
	f.io.WriteWord(0x0000, 0x8c0a)
	expectWord(t, getIndexed(t, f).Value, 0x000c)
}

func TestGetIndexedPCRelative16Bit(t *testing.T) {
	f := newIOFixture()
	f.io.WriteByte(0x0000, 0x8d)
	f.io.WriteWord(0x0001, 0x0200)
	expectWord(t, getIndexed(t, f).Value, 0x0203)
}

func TestGetIndexedExtendedIndirect(t *testing.T) {
	f := newIOFixture()
	f.io.WriteWord(0xb000, 0xbeef)
	f.io.WriteByte(0x0000, 0x9f)
	f.io.WriteWord(0x0001, 0xb000)
	mr := getIndexed(t, f)
	expectWord(t, mr.Value, 0xbeef)
	if mr.Bytes != 3 {
		t.Errorf("bytes incorrect. exp: 3, got: %d", mr.Bytes)
	}
}

func TestGetIndexedIllegalPostBytes(t *testing.T) {
	for _, postByte := range []byte{0x87, 0x8a, 0x8e, 0x8f, 0x90, 0x92, 0x97, 0x9a, 0x9e} {
		f := newIOFixture()
		f.io.WriteByte(0x0000, postByte)
		_, err := f.io.Indexed()
		var perr *go6809.IllegalIndexedPostbyteError
		if !errors.As(err, &perr) {
			t.Fatalf("$%02X: expected IllegalIndexedPostbyteError, got %v", postByte, err)
		}
		if perr.PostByte != postByte {
			t.Errorf("post-byte incorrect. exp: $%02X, got: $%02X", postByte, perr.PostByte)
		}
	}
}

func TestKeyboardReads(t *testing.T) {
	f := newIOFixture()
	// A nil keyboard reads as an idle matrix.
	if got := f.io.ReadByte(0xff00); got != 0xff {
		t.Errorf("exp: $FF, got: $%02X", got)
	}
	if got := f.io.ReadByte(0xff02); got != 0xff {
		t.Errorf("exp: $FF, got: $%02X", got)
	}
}

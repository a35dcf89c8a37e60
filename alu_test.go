package go6809_test

import (
	"testing"

	"github.com/beevik/go6809"
)

// Negating a value twice reproduces it for every byte, including the
// 0x80 fixed point.
func TestNegateDoubleNegation(t *testing.T) {
	for v := 0; v < 256; v++ {
		cpu := newTestCPU()
		cpu.Reg.A = byte(v)
		loadCode(cpu, 0x1000, 0x40, 0x40) // NEGA / NEGA
		step(t, cpu)
		step(t, cpu)
		if cpu.Reg.A != byte(v) {
			t.Fatalf("$%02X: double negation yielded $%02X", v, cpu.Reg.A)
		}
	}
}

// Rotating left then right through a consistent carry restores the
// original value.
func TestRotateRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		for _, carry := range []bool{false, true} {
			cpu := newTestCPU()
			cpu.Reg.A = byte(v)
			cpu.Reg.Assign(go6809.Carry, carry)
			loadCode(cpu, 0x1000, 0x49, 0x46) // ROLA / RORA
			step(t, cpu)
			step(t, cpu)
			if cpu.Reg.A != byte(v) {
				t.Fatalf("$%02X C=%v: rotate round trip yielded $%02X", v, carry, cpu.Reg.A)
			}
		}
	}
}

func TestCompareFlags(t *testing.T) {
	cases := []struct{ a, b byte }{
		{0x00, 0x00}, {0x01, 0x00}, {0x00, 0x01}, {0x80, 0x7f},
		{0x7f, 0x80}, {0xff, 0xff}, {0x40, 0xc0}, {0xc0, 0x40},
	}
	for _, c := range cases {
		cpu := newTestCPU()
		cpu.Reg.A = c.a
		loadCode(cpu, 0x1000, 0x81, c.b) // CMPA #b
		step(t, cpu)

		if zero := cpu.Reg.IsSet(go6809.Zero); zero != (c.a == c.b) {
			t.Errorf("CMPA $%02X,$%02X: Z=%v", c.a, c.b, zero)
		}
		if carry := cpu.Reg.IsSet(go6809.Carry); carry != (c.a < c.b) {
			t.Errorf("CMPA $%02X,$%02X: C=%v", c.a, c.b, carry)
		}
		if neg := cpu.Reg.IsSet(go6809.Negative); neg != ((c.a-c.b)&0x80 != 0) {
			t.Errorf("CMPA $%02X,$%02X: N=%v", c.a, c.b, neg)
		}
		expectA(t, cpu, c.a)
	}
}

func TestComplement(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.A = 0x0f
	loadCode(cpu, 0x1000, 0x43) // COMA
	step(t, cpu)
	expectA(t, cpu, 0xf0)
	expectCCSet(t, cpu, go6809.Carry|go6809.Negative)
	expectCCClear(t, cpu, go6809.Zero|go6809.Overflow)
}

func TestShifts(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.A = 0x81
	loadCode(cpu, 0x1000, 0x44) // LSRA
	step(t, cpu)
	expectA(t, cpu, 0x40)
	expectCCSet(t, cpu, go6809.Carry)
	expectCCClear(t, cpu, go6809.Negative|go6809.Zero)

	cpu = newTestCPU()
	cpu.Reg.A = 0x81
	loadCode(cpu, 0x1000, 0x47) // ASRA
	step(t, cpu)
	expectA(t, cpu, 0xc0)
	expectCCSet(t, cpu, go6809.Carry|go6809.Negative)

	cpu = newTestCPU()
	cpu.Reg.A = 0xc0
	loadCode(cpu, 0x1000, 0x48) // ASLA
	step(t, cpu)
	expectA(t, cpu, 0x80)
	expectCCSet(t, cpu, go6809.Carry|go6809.Negative)
	expectCCClear(t, cpu, go6809.Overflow)

	cpu = newTestCPU()
	cpu.Reg.A = 0x40
	loadCode(cpu, 0x1000, 0x48) // ASLA overflows into the sign bit
	step(t, cpu)
	expectA(t, cpu, 0x80)
	expectCCSet(t, cpu, go6809.Overflow|go6809.Negative)
	expectCCClear(t, cpu, go6809.Carry)
}

func TestIncrementDecrement(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.A = 0x7f
	loadCode(cpu, 0x1000, 0x4c) // INCA
	step(t, cpu)
	expectA(t, cpu, 0x80)
	expectCCSet(t, cpu, go6809.Overflow|go6809.Negative)

	cpu = newTestCPU()
	cpu.Reg.A = 0x00
	loadCode(cpu, 0x1000, 0x4a) // DECA
	step(t, cpu)
	expectA(t, cpu, 0xff)
	expectCCSet(t, cpu, go6809.Overflow|go6809.Negative)

	cpu = newTestCPU()
	cpu.Reg.A = 0x01
	loadCode(cpu, 0x1000, 0x4a) // DECA
	step(t, cpu)
	expectA(t, cpu, 0x00)
	expectCCSet(t, cpu, go6809.Zero)
	expectCCClear(t, cpu, go6809.Overflow)
}

func TestAddFlags(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.A = 0x0f
	loadCode(cpu, 0x1000, 0x8b, 0x01) // ADDA #$01
	step(t, cpu)
	expectA(t, cpu, 0x10)
	expectCCSet(t, cpu, go6809.HalfCarry)
	expectCCClear(t, cpu, go6809.Carry|go6809.Overflow|go6809.Zero|go6809.Negative)

	cpu = newTestCPU()
	cpu.Reg.A = 0xff
	loadCode(cpu, 0x1000, 0x8b, 0x01) // ADDA #$01
	step(t, cpu)
	expectA(t, cpu, 0x00)
	expectCCSet(t, cpu, go6809.Carry|go6809.Zero|go6809.HalfCarry)
}

func TestAddWithCarryChain(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.A = 0x10
	cpu.Reg.Set(go6809.Carry)
	loadCode(cpu, 0x1000, 0x89, 0x20) // ADCA #$20
	step(t, cpu)
	expectA(t, cpu, 0x31)
	expectCCClear(t, cpu, go6809.Carry)

	// Operand $FF plus an incoming carry wraps and forces C and V.
	cpu = newTestCPU()
	cpu.Reg.A = 0x10
	cpu.Reg.Set(go6809.Carry)
	loadCode(cpu, 0x1000, 0x89, 0xff) // ADCA #$FF
	step(t, cpu)
	expectA(t, cpu, 0x10)
	expectCCSet(t, cpu, go6809.Carry|go6809.Overflow)
}

func TestSubtractFlags(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.A = 0x40
	loadCode(cpu, 0x1000, 0x80, 0x50) // SUBA #$50
	step(t, cpu)
	expectA(t, cpu, 0xf0)
	expectCCSet(t, cpu, go6809.Carry|go6809.Negative)

	cpu = newTestCPU()
	cpu.Reg.A = 0x50
	loadCode(cpu, 0x1000, 0x80, 0x50) // SUBA #$50
	step(t, cpu)
	expectA(t, cpu, 0x00)
	expectCCSet(t, cpu, go6809.Zero)
	expectCCClear(t, cpu, go6809.Carry)
}

func TestSubtractWithCarry(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.A = 0x10
	cpu.Reg.Set(go6809.Carry)
	loadCode(cpu, 0x1000, 0x82, 0x05) // SBCA #$05
	step(t, cpu)
	expectA(t, cpu, 0x0a)
}

func TestSubtractD(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.SetD(0x4000)
	loadCode(cpu, 0x1000, 0x83, 0x20, 0x00) // SUBD #$2000
	step(t, cpu)
	if d := cpu.Reg.D(); d != 0x2000 {
		t.Errorf("D incorrect. exp: $2000, got: $%04X", d)
	}
	expectCCClear(t, cpu, go6809.Carry|go6809.Zero|go6809.Negative)
}

func TestDAA(t *testing.T) {
	// 0x19 + 0x28 = 0x41 binary with a half carry; DAA corrects the
	// result to decimal 47.
	cpu := newTestCPU()
	cpu.Reg.A = 0x19
	loadCode(cpu, 0x1000, 0x8b, 0x28, 0x19) // ADDA #$28 / DAA
	step(t, cpu)
	expectA(t, cpu, 0x41)
	expectCCSet(t, cpu, go6809.HalfCarry)

	step(t, cpu)
	expectA(t, cpu, 0x47)
	// The carry reflects the non-zero correction byte.
	expectCCSet(t, cpu, go6809.Carry)

	// A result already in decimal form needs no correction.
	cpu = newTestCPU()
	cpu.Reg.A = 0x21
	loadCode(cpu, 0x1000, 0x8b, 0x21, 0x19) // ADDA #$21 / DAA
	step(t, cpu)
	step(t, cpu)
	expectA(t, cpu, 0x42)
	expectCCClear(t, cpu, go6809.Carry)
}

func TestLogicalOps(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.A = 0xf0
	loadCode(cpu, 0x1000, 0x84, 0x0f) // ANDA #$0F
	step(t, cpu)
	expectA(t, cpu, 0x00)
	expectCCSet(t, cpu, go6809.Zero)
	expectCCClear(t, cpu, go6809.Overflow)

	cpu = newTestCPU()
	cpu.Reg.B = 0x0f
	loadCode(cpu, 0x1000, 0xca, 0x80) // ORB #$80
	step(t, cpu)
	expectB(t, cpu, 0x8f)
	expectCCSet(t, cpu, go6809.Negative)

	cpu = newTestCPU()
	cpu.Reg.A = 0xff
	loadCode(cpu, 0x1000, 0x88, 0xff) // EORA #$FF
	step(t, cpu)
	expectA(t, cpu, 0x00)
	expectCCSet(t, cpu, go6809.Zero)
}

func TestBitTestLeavesRegister(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.A = 0x81
	loadCode(cpu, 0x1000, 0x85, 0x80) // BITA #$80
	step(t, cpu)
	expectA(t, cpu, 0x81)
	expectCCSet(t, cpu, go6809.Negative)
	expectCCClear(t, cpu, go6809.Zero)
}

func TestClear(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.A = 0x5a
	cpu.Reg.Set(go6809.Carry | go6809.Negative | go6809.Overflow)
	loadCode(cpu, 0x1000, 0x4f) // CLRA
	step(t, cpu)
	expectA(t, cpu, 0x00)
	expectCCSet(t, cpu, go6809.Zero)
	expectCCClear(t, cpu, go6809.Carry|go6809.Negative|go6809.Overflow)
}

func TestLoadEffectiveAddress(t *testing.T) {
	cpu := newTestCPU()
	cpu.Reg.X = 0x1000
	loadCode(cpu, 0x2000, 0x30, 0x01) // LEAX 1,X
	cycles := step(t, cpu)
	if cpu.Reg.X != 0x1001 {
		t.Errorf("X incorrect. exp: $1001, got: $%04X", cpu.Reg.X)
	}
	expectCCClear(t, cpu, go6809.Zero)
	expectCycles(t, cycles, 2+1)

	// LEAS does not touch the zero flag.
	cpu = newTestCPU()
	cpu.Reg.S = 0x0001
	cpu.Reg.Clear(go6809.Zero)
	loadCode(cpu, 0x2000, 0x32, 0x7f) // LEAS -1,S
	step(t, cpu)
	if cpu.Reg.S != 0x0000 {
		t.Errorf("S incorrect. exp: $0000, got: $%04X", cpu.Reg.S)
	}
	expectCCClear(t, cpu, go6809.Zero)
}

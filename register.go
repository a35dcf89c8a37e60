package go6809

// Status contains the condition code register bits.
type Status byte

// Condition code register bits.
const (
	Carry     Status = 1 << 0 // C
	Overflow  Status = 1 << 1 // V
	Zero      Status = 1 << 2 // Z
	Negative  Status = 1 << 3 // N
	IRQMask   Status = 1 << 4 // I
	HalfCarry Status = 1 << 5 // H
	FIRQMask  Status = 1 << 6 // F
	Entire    Status = 1 << 7 // E
)

// RegID identifies a CPU register. It is used by the transfer, exchange
// and stacking instructions and by the register load/store helpers.
type RegID byte

// All register identifiers.
const (
	RegA RegID = iota
	RegB
	RegD
	RegX
	RegY
	RegU
	RegS
	RegPC
	RegDP
	RegCC
	RegUnknown
)

// 6809 registers. D is not stored; it is the A:B concatenation and is
// accessed through the D and SetD methods so the halves can never fall
// out of sync.
type Registers struct {
	A  byte   // accumulator A
	B  byte   // accumulator B
	X  uint16 // X index register
	Y  uint16 // Y index register
	U  uint16 // user stack pointer
	S  uint16 // system stack pointer
	PC uint16 // program counter
	DP byte   // direct page register
	CC Status // condition code register
}

// Init initializes all registers to the power-on state.
func (r *Registers) Init() {
	r.A = 0
	r.B = 0
	r.X = 0
	r.Y = 0
	r.U = 0
	r.S = 0
	r.PC = 0
	r.DP = 0
	r.CC = 0
}

// D returns the 16-bit accumulator formed by concatenating A and B.
func (r *Registers) D() uint16 {
	return joinWord(r.A, r.B)
}

// SetD stores a 16-bit value into the concatenated accumulator,
// updating A and B.
func (r *Registers) SetD(v uint16) {
	r.A = hiByte(v)
	r.B = loByte(v)
}

// IsSet returns true if all condition code bits in 's' are set.
func (r *Registers) IsSet(s Status) bool {
	return (r.CC & s) == s
}

// Set ORs the condition code bits in 's' into the CC register.
func (r *Registers) Set(s Status) {
	r.CC |= s
}

// Clear removes the condition code bits in 's' from the CC register.
func (r *Registers) Clear(s Status) {
	r.CC &^= s
}

// Assign sets or clears the condition code bits in 's' depending
// on 'on'.
func (r *Registers) Assign(s Status, on bool) {
	if on {
		r.CC |= s
	} else {
		r.CC &^= s
	}
}

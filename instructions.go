package go6809

// An opsym is an internal symbol used to associate opcode data
// with its implementation.
type opsym byte

const (
	symABX opsym = iota
	symADCA
	symADCB
	symADDA
	symADDB
	symADDD
	symANDA
	symANDB
	symANDCC
	symASL
	symASR
	symBCC
	symBCS
	symBEQ
	symBGE
	symBGT
	symBHI
	symBITA
	symBITB
	symBLE
	symBLS
	symBLT
	symBMI
	symBNE
	symBPL
	symBRA
	symBRN
	symBSR
	symBVC
	symBVS
	symCLR
	symCMPA
	symCMPB
	symCMPD
	symCMPS
	symCMPU
	symCMPX
	symCMPY
	symCOM
	symCWAI
	symDAA
	symDEC
	symEORA
	symEORB
	symEXG
	symINC
	symJMP
	symJSR
	symLBCC
	symLBCS
	symLBEQ
	symLBGE
	symLBGT
	symLBHI
	symLBLE
	symLBLS
	symLBLT
	symLBMI
	symLBNE
	symLBPL
	symLBRA
	symLBRN
	symLBSR
	symLBVC
	symLBVS
	symLDA
	symLDB
	symLDD
	symLDS
	symLDU
	symLDX
	symLDY
	symLEAS
	symLEAU
	symLEAX
	symLEAY
	symLSR
	symMUL
	symNEG
	symNOP
	symORA
	symORB
	symORCC
	symPSHS
	symPSHU
	symPULS
	symPULU
	symROL
	symROR
	symRTI
	symRTS
	symSBCA
	symSBCB
	symSEX
	symSTA
	symSTB
	symSTD
	symSTS
	symSTU
	symSTX
	symSTY
	symSUBA
	symSUBB
	symSUBD
	symSWI
	symSWI2
	symSWI3
	symSYNC
	symTFR
	symTST
)

type instfunc func(c *CPU, inst *Instruction, mr MemoryResult) error

// Opcode name and function implementation
type opcodeImpl struct {
	sym  opsym
	name string
	fn   instfunc
}

var impl = []opcodeImpl{
	{symABX, "ABX", (*CPU).abx},
	{symADCA, "ADCA", (*CPU).adca},
	{symADCB, "ADCB", (*CPU).adcb},
	{symADDA, "ADDA", (*CPU).adda},
	{symADDB, "ADDB", (*CPU).addb},
	{symADDD, "ADDD", (*CPU).addd},
	{symANDA, "ANDA", (*CPU).anda},
	{symANDB, "ANDB", (*CPU).andb},
	{symANDCC, "ANDCC", (*CPU).andcc},
	{symASL, "ASL", (*CPU).asl},
	{symASR, "ASR", (*CPU).asr},
	{symBCC, "BCC", (*CPU).bcc},
	{symBCS, "BCS", (*CPU).bcs},
	{symBEQ, "BEQ", (*CPU).beq},
	{symBGE, "BGE", (*CPU).bge},
	{symBGT, "BGT", (*CPU).bgt},
	{symBHI, "BHI", (*CPU).bhi},
	{symBITA, "BITA", (*CPU).bita},
	{symBITB, "BITB", (*CPU).bitb},
	{symBLE, "BLE", (*CPU).ble},
	{symBLS, "BLS", (*CPU).bls},
	{symBLT, "BLT", (*CPU).blt},
	{symBMI, "BMI", (*CPU).bmi},
	{symBNE, "BNE", (*CPU).bne},
	{symBPL, "BPL", (*CPU).bpl},
	{symBRA, "BRA", (*CPU).bra},
	{symBRN, "BRN", (*CPU).brn},
	{symBSR, "BSR", (*CPU).bsr},
	{symBVC, "BVC", (*CPU).bvc},
	{symBVS, "BVS", (*CPU).bvs},
	{symCLR, "CLR", (*CPU).clr},
	{symCMPA, "CMPA", (*CPU).cmpa},
	{symCMPB, "CMPB", (*CPU).cmpb},
	{symCMPD, "CMPD", (*CPU).cmpd},
	{symCMPS, "CMPS", (*CPU).cmps},
	{symCMPU, "CMPU", (*CPU).cmpu},
	{symCMPX, "CMPX", (*CPU).cmpx},
	{symCMPY, "CMPY", (*CPU).cmpy},
	{symCOM, "COM", (*CPU).com},
	{symCWAI, "CWAI", (*CPU).cwai},
	{symDAA, "DAA", (*CPU).daa},
	{symDEC, "DEC", (*CPU).dec},
	{symEORA, "EORA", (*CPU).eora},
	{symEORB, "EORB", (*CPU).eorb},
	{symEXG, "EXG", (*CPU).exg},
	{symINC, "INC", (*CPU).inc},
	{symJMP, "JMP", (*CPU).jmp},
	{symJSR, "JSR", (*CPU).jsr},
	{symLBCC, "LBCC", (*CPU).lbcc},
	{symLBCS, "LBCS", (*CPU).lbcs},
	{symLBEQ, "LBEQ", (*CPU).lbeq},
	{symLBGE, "LBGE", (*CPU).lbge},
	{symLBGT, "LBGT", (*CPU).lbgt},
	{symLBHI, "LBHI", (*CPU).lbhi},
	{symLBLE, "LBLE", (*CPU).lble},
	{symLBLS, "LBLS", (*CPU).lbls},
	{symLBLT, "LBLT", (*CPU).lblt},
	{symLBMI, "LBMI", (*CPU).lbmi},
	{symLBNE, "LBNE", (*CPU).lbne},
	{symLBPL, "LBPL", (*CPU).lbpl},
	{symLBRA, "LBRA", (*CPU).lbra},
	{symLBRN, "LBRN", (*CPU).lbrn},
	{symLBSR, "LBSR", (*CPU).lbsr},
	{symLBVC, "LBVC", (*CPU).lbvc},
	{symLBVS, "LBVS", (*CPU).lbvs},
	{symLDA, "LDA", (*CPU).lda},
	{symLDB, "LDB", (*CPU).ldb},
	{symLDD, "LDD", (*CPU).ldd},
	{symLDS, "LDS", (*CPU).lds},
	{symLDU, "LDU", (*CPU).ldu},
	{symLDX, "LDX", (*CPU).ldx},
	{symLDY, "LDY", (*CPU).ldy},
	{symLEAS, "LEAS", (*CPU).leas},
	{symLEAU, "LEAU", (*CPU).leau},
	{symLEAX, "LEAX", (*CPU).leax},
	{symLEAY, "LEAY", (*CPU).leay},
	{symLSR, "LSR", (*CPU).lsr},
	{symMUL, "MUL", (*CPU).mul},
	{symNEG, "NEG", (*CPU).neg},
	{symNOP, "NOP", (*CPU).nop},
	{symORA, "ORA", (*CPU).ora},
	{symORB, "ORB", (*CPU).orb},
	{symORCC, "ORCC", (*CPU).orcc},
	{symPSHS, "PSHS", (*CPU).pshs},
	{symPSHU, "PSHU", (*CPU).pshu},
	{symPULS, "PULS", (*CPU).puls},
	{symPULU, "PULU", (*CPU).pulu},
	{symROL, "ROL", (*CPU).rol},
	{symROR, "ROR", (*CPU).ror},
	{symRTI, "RTI", (*CPU).rti},
	{symRTS, "RTS", (*CPU).rts},
	{symSBCA, "SBCA", (*CPU).sbca},
	{symSBCB, "SBCB", (*CPU).sbcb},
	{symSEX, "SEX", (*CPU).sex},
	{symSTA, "STA", (*CPU).sta},
	{symSTB, "STB", (*CPU).stb},
	{symSTD, "STD", (*CPU).std},
	{symSTS, "STS", (*CPU).sts},
	{symSTU, "STU", (*CPU).stu},
	{symSTX, "STX", (*CPU).stx},
	{symSTY, "STY", (*CPU).sty},
	{symSUBA, "SUBA", (*CPU).suba},
	{symSUBB, "SUBB", (*CPU).subb},
	{symSUBD, "SUBD", (*CPU).subd},
	{symSWI, "SWI", (*CPU).swi},
	{symSWI2, "SWI2", (*CPU).swi2},
	{symSWI3, "SWI3", (*CPU).swi3},
	{symSYNC, "SYNC", (*CPU).sync},
	{symTFR, "TFR", (*CPU).tfr},
	{symTST, "TST", (*CPU).tst},
}

// Mode describes a memory addressing mode.
type Mode byte

// All possible memory addressing modes
const (
	INH   Mode = iota // Inherent
	IMM8              // Immediate byte
	IMM16             // Immediate word
	DIR               // Direct
	IDX               // Indexed
	EXT               // Extended
	REL8              // Relative byte
	REL16             // Relative word
	ACCA              // Accumulator A
	ACCB              // Accumulator B
)

// Opcode data for an (opcode, mode) pair. The opcode column includes
// the 0x10 or 0x11 prefix for the extended pages. For indexed entries,
// cycles holds the base count; the decoder's consumed-byte count is
// added at execution time.
type opcodeData struct {
	sym    opsym  // internal opcode key value
	mode   Mode   // addressing mode
	opcode uint16 // opcode value, including page prefix
	cycles byte   // base CPU cycles to execute the instruction
}

// All valid (opcode, mode) pairs
var data = []opcodeData{
	{symNEG, DIR, 0x00, 6},
	{symCOM, DIR, 0x03, 6},
	{symLSR, DIR, 0x04, 6},
	{symROR, DIR, 0x06, 6},
	{symASR, DIR, 0x07, 6},
	{symASL, DIR, 0x08, 6},
	{symROL, DIR, 0x09, 6},
	{symDEC, DIR, 0x0a, 6},
	{symINC, DIR, 0x0c, 6},
	{symTST, DIR, 0x0d, 6},
	{symJMP, DIR, 0x0e, 3},
	{symCLR, DIR, 0x0f, 6},

	{symNOP, INH, 0x12, 2},
	{symSYNC, INH, 0x13, 2},
	{symLBRA, REL16, 0x16, 5},
	{symLBSR, REL16, 0x17, 9},
	{symDAA, INH, 0x19, 2},
	{symORCC, IMM8, 0x1a, 3},
	{symANDCC, IMM8, 0x1c, 3},
	{symSEX, INH, 0x1d, 2},
	{symEXG, IMM8, 0x1e, 8},
	{symTFR, IMM8, 0x1f, 6},

	{symBRA, REL8, 0x20, 3},
	{symBRN, REL8, 0x21, 3},
	{symBHI, REL8, 0x22, 3},
	{symBLS, REL8, 0x23, 5},
	{symBCC, REL8, 0x24, 3},
	{symBCS, REL8, 0x25, 3},
	{symBNE, REL8, 0x26, 3},
	{symBEQ, REL8, 0x27, 3},
	{symBVC, REL8, 0x28, 3},
	{symBVS, REL8, 0x29, 3},
	{symBPL, REL8, 0x2a, 3},
	{symBMI, REL8, 0x2b, 3},
	{symBGE, REL8, 0x2c, 3},
	{symBLT, REL8, 0x2d, 5},
	{symBGT, REL8, 0x2e, 3},
	{symBLE, REL8, 0x2f, 3},

	{symLEAX, IDX, 0x30, 2},
	{symLEAY, IDX, 0x31, 2},
	{symLEAS, IDX, 0x32, 2},
	{symLEAU, IDX, 0x33, 2},
	{symPSHS, IMM8, 0x34, 5},
	{symPULS, IMM8, 0x35, 5},
	{symPSHU, IMM8, 0x36, 5},
	{symPULU, IMM8, 0x37, 5},
	{symRTS, INH, 0x39, 5},
	{symABX, INH, 0x3a, 3},
	{symRTI, INH, 0x3b, 6},
	{symCWAI, IMM8, 0x3c, 20},
	{symMUL, INH, 0x3d, 11},
	{symSWI, INH, 0x3f, 19},

	{symNEG, ACCA, 0x40, 2},
	{symCOM, ACCA, 0x43, 2},
	{symLSR, ACCA, 0x44, 2},
	{symROR, ACCA, 0x46, 2},
	{symASR, ACCA, 0x47, 2},
	{symASL, ACCA, 0x48, 2},
	{symROL, ACCA, 0x49, 2},
	{symDEC, ACCA, 0x4a, 2},
	{symINC, ACCA, 0x4c, 2},
	{symTST, ACCA, 0x4d, 2},
	{symCLR, ACCA, 0x4f, 2},

	{symNEG, ACCB, 0x50, 2},
	{symCOM, ACCB, 0x53, 2},
	{symLSR, ACCB, 0x54, 2},
	{symROR, ACCB, 0x56, 2},
	{symASR, ACCB, 0x57, 2},
	{symASL, ACCB, 0x58, 2},
	{symROL, ACCB, 0x59, 2},
	{symDEC, ACCB, 0x5a, 2},
	{symINC, ACCB, 0x5c, 2},
	{symTST, ACCB, 0x5d, 2},
	{symCLR, ACCB, 0x5f, 2},

	{symNEG, IDX, 0x60, 4},
	{symCOM, IDX, 0x63, 4},
	{symLSR, IDX, 0x64, 4},
	{symROR, IDX, 0x66, 4},
	{symASR, IDX, 0x67, 4},
	{symASL, IDX, 0x68, 4},
	{symROL, IDX, 0x69, 4},
	{symDEC, IDX, 0x6a, 4},
	{symINC, IDX, 0x6c, 4},
	{symTST, IDX, 0x6d, 4},
	{symJMP, IDX, 0x6e, 1},
	{symCLR, IDX, 0x6f, 4},

	{symNEG, EXT, 0x70, 7},
	{symCOM, EXT, 0x73, 7},
	{symLSR, EXT, 0x74, 7},
	{symROR, EXT, 0x76, 7},
	{symASR, EXT, 0x77, 7},
	{symASL, EXT, 0x78, 7},
	{symROL, EXT, 0x79, 7},
	{symDEC, EXT, 0x7a, 7},
	{symINC, EXT, 0x7c, 7},
	{symTST, EXT, 0x7d, 7},
	{symJMP, EXT, 0x7e, 4},
	{symCLR, EXT, 0x7f, 7},

	{symSUBA, IMM8, 0x80, 2},
	{symCMPA, IMM8, 0x81, 2},
	{symSBCA, IMM8, 0x82, 2},
	{symSUBD, IMM16, 0x83, 4},
	{symANDA, IMM8, 0x84, 2},
	{symBITA, IMM8, 0x85, 2},
	{symLDA, IMM8, 0x86, 4},
	{symEORA, IMM8, 0x88, 2},
	{symADCA, IMM8, 0x89, 2},
	{symORA, IMM8, 0x8a, 2},
	{symADDA, IMM8, 0x8b, 2},
	{symCMPX, IMM16, 0x8c, 4},
	{symBSR, REL8, 0x8d, 7},
	{symLDX, IMM16, 0x8e, 3},

	{symSUBA, DIR, 0x90, 4},
	{symCMPA, DIR, 0x91, 4},
	{symSBCA, DIR, 0x92, 4},
	{symSUBD, DIR, 0x93, 6},
	{symANDA, DIR, 0x94, 4},
	{symBITA, DIR, 0x95, 4},
	{symLDA, DIR, 0x96, 2},
	{symSTA, DIR, 0x97, 4},
	{symEORA, DIR, 0x98, 4},
	{symADCA, DIR, 0x99, 4},
	{symORA, DIR, 0x9a, 4},
	{symADDA, DIR, 0x9b, 4},
	{symCMPX, DIR, 0x9c, 6},
	{symJSR, DIR, 0x9d, 7},
	{symLDX, DIR, 0x9e, 5},
	{symSTX, DIR, 0x9f, 5},

	{symSUBA, IDX, 0xa0, 2},
	{symCMPA, IDX, 0xa1, 3},
	{symSBCA, IDX, 0xa2, 2},
	{symSUBD, IDX, 0xa3, 4},
	{symANDA, IDX, 0xa4, 2},
	{symBITA, IDX, 0xa5, 2},
	{symLDA, IDX, 0xa6, 2},
	{symSTA, IDX, 0xa7, 2},
	{symEORA, IDX, 0xa8, 2},
	{symADCA, IDX, 0xa9, 2},
	{symORA, IDX, 0xaa, 2},
	{symADDA, IDX, 0xab, 2},
	{symCMPX, IDX, 0xac, 4},
	{symJSR, IDX, 0xad, 5},
	{symLDX, IDX, 0xae, 3},
	{symSTX, IDX, 0xaf, 3},

	{symSUBA, EXT, 0xb0, 4},
	{symCMPA, EXT, 0xb1, 5},
	{symSBCA, EXT, 0xb2, 5},
	{symSUBD, EXT, 0xb3, 7},
	{symANDA, EXT, 0xb4, 5},
	{symBITA, EXT, 0xb5, 5},
	{symLDA, EXT, 0xb6, 5},
	{symSTA, EXT, 0xb7, 5},
	{symEORA, EXT, 0xb8, 5},
	{symADCA, EXT, 0xb9, 5},
	{symORA, EXT, 0xba, 5},
	{symADDA, EXT, 0xbb, 5},
	{symCMPX, EXT, 0xbc, 7},
	{symJSR, EXT, 0xbd, 8},
	{symLDX, EXT, 0xbe, 6},
	{symSTX, EXT, 0xbf, 6},

	{symSUBB, IMM8, 0xc0, 2},
	{symCMPB, IMM8, 0xc1, 2},
	{symSBCB, IMM8, 0xc2, 2},
	{symADDD, IMM16, 0xc3, 4},
	{symANDB, IMM8, 0xc4, 2},
	{symBITB, IMM8, 0xc5, 2},
	{symLDB, IMM8, 0xc6, 4},
	{symEORB, IMM8, 0xc8, 2},
	{symADCB, IMM8, 0xc9, 2},
	{symORB, IMM8, 0xca, 2},
	{symADDB, IMM8, 0xcb, 2},
	{symLDD, IMM16, 0xcc, 3},
	{symLDU, IMM16, 0xce, 3},

	{symSUBB, DIR, 0xd0, 4},
	{symCMPB, DIR, 0xd1, 4},
	{symSBCB, DIR, 0xd2, 4},
	{symADDD, DIR, 0xd3, 6},
	{symANDB, DIR, 0xd4, 4},
	{symBITB, DIR, 0xd5, 4},
	{symLDB, DIR, 0xd6, 2},
	{symSTB, DIR, 0xd7, 2},
	{symEORB, DIR, 0xd8, 4},
	{symADCB, DIR, 0xd9, 4},
	{symORB, DIR, 0xda, 4},
	{symADDB, DIR, 0xdb, 4},
	{symLDD, DIR, 0xdc, 5},
	{symSTD, DIR, 0xdd, 5},
	{symLDU, DIR, 0xde, 5},
	{symSTU, DIR, 0xdf, 5},

	{symSUBB, IDX, 0xe0, 2},
	{symCMPB, IDX, 0xe1, 3},
	{symSBCB, IDX, 0xe2, 2},
	{symADDD, IDX, 0xe3, 6},
	{symANDB, IDX, 0xe4, 2},
	{symBITB, IDX, 0xe5, 2},
	{symLDB, IDX, 0xe6, 2},
	{symSTB, IDX, 0xe7, 2},
	{symEORB, IDX, 0xe8, 2},
	{symADCB, IDX, 0xe9, 2},
	{symORB, IDX, 0xea, 2},
	{symADDB, IDX, 0xeb, 2},
	{symLDD, IDX, 0xec, 3},
	{symSTD, IDX, 0xed, 3},
	{symLDU, IDX, 0xee, 3},
	{symSTU, IDX, 0xef, 3},

	{symSUBB, EXT, 0xf0, 4},
	{symCMPB, EXT, 0xf1, 5},
	{symSBCB, EXT, 0xf2, 5},
	{symADDD, EXT, 0xf3, 7},
	{symANDB, EXT, 0xf4, 5},
	{symBITB, EXT, 0xf5, 5},
	{symLDB, EXT, 0xf6, 5},
	{symSTB, EXT, 0xf7, 5},
	{symEORB, EXT, 0xf8, 5},
	{symADCB, EXT, 0xf9, 5},
	{symORB, EXT, 0xfa, 5},
	{symADDB, EXT, 0xfb, 5},
	{symLDD, EXT, 0xfc, 6},
	{symSTD, EXT, 0xfd, 6},
	{symLDU, EXT, 0xfe, 6},
	{symSTU, EXT, 0xff, 6},

	// 0x10 page
	{symLBRN, REL16, 0x1021, 5},
	{symLBHI, REL16, 0x1022, 5},
	{symLBLS, REL16, 0x1023, 5},
	{symLBCC, REL16, 0x1024, 5},
	{symLBCS, REL16, 0x1025, 5},
	{symLBNE, REL16, 0x1026, 5},
	{symLBEQ, REL16, 0x1027, 5},
	{symLBVC, REL16, 0x1028, 5},
	{symLBVS, REL16, 0x1029, 5},
	{symLBPL, REL16, 0x102a, 5},
	{symLBMI, REL16, 0x102b, 5},
	{symLBGE, REL16, 0x102c, 5},
	{symLBLT, REL16, 0x102d, 5},
	{symLBGT, REL16, 0x102e, 5},
	{symLBLE, REL16, 0x102f, 5},
	{symSWI3, INH, 0x103f, 19},
	{symCMPD, IMM16, 0x1083, 5},
	{symCMPY, IMM16, 0x108c, 5},
	{symLDY, IMM16, 0x108e, 4},
	{symCMPD, DIR, 0x1093, 7},
	{symCMPY, DIR, 0x109c, 7},
	{symLDY, DIR, 0x109e, 6},
	{symSTY, DIR, 0x109f, 6},
	{symCMPD, IDX, 0x10a3, 5},
	{symCMPY, IDX, 0x10ac, 5},
	{symLDY, IDX, 0x10ae, 4},
	{symSTY, IDX, 0x10af, 4},
	{symCMPD, EXT, 0x10b3, 8},
	{symCMPY, EXT, 0x10bc, 8},
	{symLDY, EXT, 0x10be, 7},
	{symSTY, EXT, 0x10bf, 7},
	{symLDS, IMM16, 0x10ce, 4},
	{symLDS, DIR, 0x10de, 6},
	{symSTS, DIR, 0x10df, 6},
	{symLDS, IDX, 0x10ee, 4},
	{symSTS, IDX, 0x10ef, 4},
	{symLDS, EXT, 0x10fe, 7},
	{symSTS, EXT, 0x10ff, 7},

	// 0x11 page
	{symSWI2, INH, 0x113f, 20},
	{symCMPU, IMM16, 0x1183, 5},
	{symCMPS, IMM16, 0x118c, 5},
	{symCMPU, DIR, 0x1193, 7},
	{symCMPS, DIR, 0x119c, 7},
	{symCMPU, IDX, 0x11a3, 5},
	{symCMPS, IDX, 0x11ac, 5},
	{symCMPU, EXT, 0x11b3, 8},
	{symCMPS, EXT, 0x11bc, 8},
}

// An Instruction describes a 6809 CPU instruction, including its name,
// its function implementation, and other metadata.
type Instruction struct {
	Name   string // string representation of the opcode
	Mode   Mode   // addressing mode
	Opcode uint16 // opcode value, including page prefix
	Cycles byte   // base CPU cycles to execute the instruction
	fn     instfunc
}

// Instruction tables for the primary page and the two extended pages,
// indexed by the unprefixed opcode byte.
var (
	Instructions   [256]Instruction
	Instructions10 [256]Instruction
	Instructions11 [256]Instruction
)

// Build the instruction tables.
func init() {
	symToImpl := make(map[opsym]*opcodeImpl, len(impl))
	for i := range impl {
		symToImpl[impl[i].sym] = &impl[i]
	}

	for _, d := range data {
		var inst *Instruction
		switch d.opcode >> 8 {
		case 0x10:
			inst = &Instructions10[d.opcode&0xff]
		case 0x11:
			inst = &Instructions11[d.opcode&0xff]
		default:
			inst = &Instructions[d.opcode]
		}
		im := symToImpl[d.sym]
		inst.Name = im.name
		inst.Mode = d.mode
		inst.Opcode = d.opcode
		inst.Cycles = d.cycles
		inst.fn = im.fn
	}
}

// Lookup returns the instruction table entry for a combined opcode
// (primary byte, or 0x10xx / 0x11xx). An entry with a nil
// implementation indicates an unknown opcode.
func Lookup(opcode uint16) *Instruction {
	switch opcode >> 8 {
	case 0x10:
		return &Instructions10[opcode&0xff]
	case 0x11:
		return &Instructions11[opcode&0xff]
	default:
		return &Instructions[opcode&0xff]
	}
}

// Length returns the number of bytes an instruction's opcode and
// mode-implied operand occupy, excluding any extra bytes the indexed
// post-byte calls for.
func (inst *Instruction) Length() int {
	n := 1
	if inst.Opcode > 0xff {
		n = 2
	}
	switch inst.Mode {
	case IMM8, DIR, IDX, REL8:
		n++
	case IMM16, EXT, REL16:
		n += 2
	}
	return n
}

package mos6502

// 6502 Instruction mnemonics
// https://www.nesdev.org/obelisk-6502-guide/instructions.html
// ILL is deliberately the zero value so that any opcode byte not
// explicitly populated in opcodeTable decodes to the illegal-opcode
// no-op handler in IMPLICIT mode.
const (
	ILL = iota
	ADC
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

var mnemonicNames = map[uint8]string{
	ILL: "ILL",
	ADC: "ADC", AND: "AND", ASL: "ASL",
	BCC: "BCC", BCS: "BCS", BEQ: "BEQ", BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL",
	BRK: "BRK", BVC: "BVC", BVS: "BVS",
	CLC: "CLC", CLD: "CLD", CLI: "CLI", CLV: "CLV",
	CMP: "CMP", CPX: "CPX", CPY: "CPY",
	DEC: "DEC", DEX: "DEX", DEY: "DEY",
	EOR: "EOR",
	INC: "INC", INX: "INX", INY: "INY",
	JMP: "JMP", JSR: "JSR",
	LDA: "LDA", LDX: "LDX", LDY: "LDY",
	LSR: "LSR", NOP: "NOP", ORA: "ORA",
	PHA: "PHA", PHP: "PHP", PLA: "PLA", PLP: "PLP",
	ROL: "ROL", ROR: "ROR", RTI: "RTI", RTS: "RTS",
	SBC: "SBC", SEC: "SEC", SED: "SED", SEI: "SEI",
	STA: "STA", STX: "STX", STY: "STY",
	TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA", TXS: "TXS", TYA: "TYA",
}

// instruction is a table entry: which handler to invoke and in which
// addressing mode. pageCrossAlways implements the assumePageCross
// hint from §4.2 — stores and read-modify-write instructions always
// charge the cross penalty on indexed modes regardless of whether the
// address actually crosses a page.
type instruction struct {
	mnemonic        uint8
	mode            uint8
	pageCrossAlways bool
}

// opcodeTable maps opcode byte to instruction. Bytes not assigned
// below are undocumented opcodes and decode, by the zero value, to
// {ILL, IMPLICIT, false} — a single-byte no-op per §1's Non-goals.
var opcodeTable = [256]instruction{
	// ADC
	0x69: {ADC, IMMEDIATE, false},
	0x65: {ADC, ZERO_PAGE, false},
	0x75: {ADC, ZERO_PAGE_X, false},
	0x6D: {ADC, ABSOLUTE, false},
	0x7D: {ADC, ABSOLUTE_X, false},
	0x79: {ADC, ABSOLUTE_Y, false},
	0x61: {ADC, INDEXED_INDIRECT, false},
	0x71: {ADC, INDIRECT_INDEXED, false},

	// AND
	0x29: {AND, IMMEDIATE, false},
	0x25: {AND, ZERO_PAGE, false},
	0x35: {AND, ZERO_PAGE_X, false},
	0x2D: {AND, ABSOLUTE, false},
	0x3D: {AND, ABSOLUTE_X, false},
	0x39: {AND, ABSOLUTE_Y, false},
	0x21: {AND, INDEXED_INDIRECT, false},
	0x31: {AND, INDIRECT_INDEXED, false},

	// ASL (RMW, always assumes page cross)
	0x0A: {ASL, ACCUMULATOR, false},
	0x06: {ASL, ZERO_PAGE, false},
	0x16: {ASL, ZERO_PAGE_X, false},
	0x0E: {ASL, ABSOLUTE, false},
	0x1E: {ASL, ABSOLUTE_X, true},

	// Branches
	0x90: {BCC, RELATIVE, false},
	0xB0: {BCS, RELATIVE, false},
	0xF0: {BEQ, RELATIVE, false},
	0x30: {BMI, RELATIVE, false},
	0xD0: {BNE, RELATIVE, false},
	0x10: {BPL, RELATIVE, false},
	0x50: {BVC, RELATIVE, false},
	0x70: {BVS, RELATIVE, false},

	// BIT
	0x24: {BIT, ZERO_PAGE, false},
	0x2C: {BIT, ABSOLUTE, false},

	// BRK
	0x00: {BRK, IMPLICIT, false},

	// Flags
	0x18: {CLC, IMPLICIT, false},
	0xD8: {CLD, IMPLICIT, false},
	0x58: {CLI, IMPLICIT, false},
	0xB8: {CLV, IMPLICIT, false},
	0x38: {SEC, IMPLICIT, false},
	0xF8: {SED, IMPLICIT, false},
	0x78: {SEI, IMPLICIT, false},

	// CMP
	0xC9: {CMP, IMMEDIATE, false},
	0xC5: {CMP, ZERO_PAGE, false},
	0xD5: {CMP, ZERO_PAGE_X, false},
	0xCD: {CMP, ABSOLUTE, false},
	0xDD: {CMP, ABSOLUTE_X, false},
	0xD9: {CMP, ABSOLUTE_Y, false},
	0xC1: {CMP, INDEXED_INDIRECT, false},
	0xD1: {CMP, INDIRECT_INDEXED, false},

	// CPX / CPY
	0xE0: {CPX, IMMEDIATE, false},
	0xE4: {CPX, ZERO_PAGE, false},
	0xEC: {CPX, ABSOLUTE, false},
	0xC0: {CPY, IMMEDIATE, false},
	0xC4: {CPY, ZERO_PAGE, false},
	0xCC: {CPY, ABSOLUTE, false},

	// DEC (RMW)
	0xC6: {DEC, ZERO_PAGE, false},
	0xD6: {DEC, ZERO_PAGE_X, false},
	0xCE: {DEC, ABSOLUTE, false},
	0xDE: {DEC, ABSOLUTE_X, true},

	0xCA: {DEX, IMPLICIT, false},
	0x88: {DEY, IMPLICIT, false},

	// EOR
	0x49: {EOR, IMMEDIATE, false},
	0x45: {EOR, ZERO_PAGE, false},
	0x55: {EOR, ZERO_PAGE_X, false},
	0x4D: {EOR, ABSOLUTE, false},
	0x5D: {EOR, ABSOLUTE_X, false},
	0x59: {EOR, ABSOLUTE_Y, false},
	0x41: {EOR, INDEXED_INDIRECT, false},
	0x51: {EOR, INDIRECT_INDEXED, false},

	// INC (RMW)
	0xE6: {INC, ZERO_PAGE, false},
	0xF6: {INC, ZERO_PAGE_X, false},
	0xEE: {INC, ABSOLUTE, false},
	0xFE: {INC, ABSOLUTE_X, true},

	0xE8: {INX, IMPLICIT, false},
	0xC8: {INY, IMPLICIT, false},

	// JMP / JSR
	0x4C: {JMP, ABSOLUTE, false},
	0x6C: {JMP, INDIRECT, false},
	0x20: {JSR, ABSOLUTE, false},

	// LDA
	0xA9: {LDA, IMMEDIATE, false},
	0xA5: {LDA, ZERO_PAGE, false},
	0xB5: {LDA, ZERO_PAGE_X, false},
	0xAD: {LDA, ABSOLUTE, false},
	0xBD: {LDA, ABSOLUTE_X, false},
	0xB9: {LDA, ABSOLUTE_Y, false},
	0xA1: {LDA, INDEXED_INDIRECT, false},
	0xB1: {LDA, INDIRECT_INDEXED, false},

	// LDX
	0xA2: {LDX, IMMEDIATE, false},
	0xA6: {LDX, ZERO_PAGE, false},
	0xB6: {LDX, ZERO_PAGE_Y, false},
	0xAE: {LDX, ABSOLUTE, false},
	0xBE: {LDX, ABSOLUTE_Y, false},

	// LDY
	0xA0: {LDY, IMMEDIATE, false},
	0xA4: {LDY, ZERO_PAGE, false},
	0xB4: {LDY, ZERO_PAGE_X, false},
	0xAC: {LDY, ABSOLUTE, false},
	0xBC: {LDY, ABSOLUTE_X, false},

	// LSR (RMW)
	0x4A: {LSR, ACCUMULATOR, false},
	0x46: {LSR, ZERO_PAGE, false},
	0x56: {LSR, ZERO_PAGE_X, false},
	0x4E: {LSR, ABSOLUTE, false},
	0x5E: {LSR, ABSOLUTE_X, true},

	0xEA: {NOP, IMPLICIT, false},

	// ORA
	0x09: {ORA, IMMEDIATE, false},
	0x05: {ORA, ZERO_PAGE, false},
	0x15: {ORA, ZERO_PAGE_X, false},
	0x0D: {ORA, ABSOLUTE, false},
	0x1D: {ORA, ABSOLUTE_X, false},
	0x19: {ORA, ABSOLUTE_Y, false},
	0x01: {ORA, INDEXED_INDIRECT, false},
	0x11: {ORA, INDIRECT_INDEXED, false},

	// Stack
	0x48: {PHA, IMPLICIT, false},
	0x08: {PHP, IMPLICIT, false},
	0x68: {PLA, IMPLICIT, false},
	0x28: {PLP, IMPLICIT, false},

	// ROL / ROR (RMW)
	0x2A: {ROL, ACCUMULATOR, false},
	0x26: {ROL, ZERO_PAGE, false},
	0x36: {ROL, ZERO_PAGE_X, false},
	0x2E: {ROL, ABSOLUTE, false},
	0x3E: {ROL, ABSOLUTE_X, true},
	0x6A: {ROR, ACCUMULATOR, false},
	0x66: {ROR, ZERO_PAGE, false},
	0x76: {ROR, ZERO_PAGE_X, false},
	0x6E: {ROR, ABSOLUTE, false},
	0x7E: {ROR, ABSOLUTE_X, true},

	0x40: {RTI, IMPLICIT, false},
	0x60: {RTS, IMPLICIT, false},

	// SBC
	0xE9: {SBC, IMMEDIATE, false},
	0xE5: {SBC, ZERO_PAGE, false},
	0xF5: {SBC, ZERO_PAGE_X, false},
	0xED: {SBC, ABSOLUTE, false},
	0xFD: {SBC, ABSOLUTE_X, false},
	0xF9: {SBC, ABSOLUTE_Y, false},
	0xE1: {SBC, INDEXED_INDIRECT, false},
	0xF1: {SBC, INDIRECT_INDEXED, false},

	// STA (always assumes page cross on indexed modes)
	0x85: {STA, ZERO_PAGE, false},
	0x95: {STA, ZERO_PAGE_X, false},
	0x8D: {STA, ABSOLUTE, false},
	0x9D: {STA, ABSOLUTE_X, true},
	0x99: {STA, ABSOLUTE_Y, true},
	0x81: {STA, INDEXED_INDIRECT, false},
	0x91: {STA, INDIRECT_INDEXED, true},

	// STX / STY
	0x86: {STX, ZERO_PAGE, false},
	0x96: {STX, ZERO_PAGE_Y, false},
	0x8E: {STX, ABSOLUTE, false},
	0x84: {STY, ZERO_PAGE, false},
	0x94: {STY, ZERO_PAGE_X, false},
	0x8C: {STY, ABSOLUTE, false},

	// Transfers
	0xAA: {TAX, IMPLICIT, false},
	0xA8: {TAY, IMPLICIT, false},
	0xBA: {TSX, IMPLICIT, false},
	0x8A: {TXA, IMPLICIT, false},
	0x9A: {TXS, IMPLICIT, false},
	0x98: {TYA, IMPLICIT, false},
}

// Package mos6502 implements a cycle-approximate core for the MOS
// Technologies 6502 processor.
// https://en.wikipedia.org/wiki/MOS_Technology_6502
package mos6502

import (
	"fmt"
	"strings"
)

// 6502 Interrupt Vectors
// https://en.wikipedia.org/wiki/Interrupts_in_65xx_processors
const (
	INT_NMI   = 0xFFFA
	INT_RESET = 0xFFFC
	INT_IRQ   = 0xFFFE
	INT_BRK   = INT_IRQ
)

// 6502 Processor Status Flags
// https://www.nesdev.org/obelisk-6502-guide/registers.html
const (
	STATUS_FLAG_CARRY             = 1 << 0 // C
	STATUS_FLAG_ZERO              = 1 << 1 // Z
	STATUS_FLAG_INTERRUPT_DISABLE = 1 << 2 // I
	STATUS_FLAG_DECIMAL           = 1 << 3 // D, stored but never acted on
	STATUS_FLAG_BREAK             = 1 << 4 // B, only meaningful in a pushed byte
	UNUSED_STATUS_FLAG            = 1 << 5 // U, always 1 when pushed
	STATUS_FLAG_OVERFLOW          = 1 << 6 // V
	STATUS_FLAG_NEGATIVE          = 1 << 7 // N
)

// 6502 Addressing Modes
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	IMPLICIT = iota
	ACCUMULATOR
	IMMEDIATE
	ZERO_PAGE
	ZERO_PAGE_X
	ZERO_PAGE_Y
	ABSOLUTE
	ABSOLUTE_X
	ABSOLUTE_Y
	INDIRECT       // JMP only, page-wrap bug
	INDEXED_INDIRECT // ($nn,X)
	INDIRECT_INDEXED // ($nn),Y
	RELATIVE
)

var modeNames = map[uint8]string{
	IMPLICIT:         "IMP",
	ACCUMULATOR:      "ACC",
	IMMEDIATE:        "IMM",
	ZERO_PAGE:        "ZOP",
	ZERO_PAGE_X:      "ZPX",
	ZERO_PAGE_Y:      "ZPY",
	ABSOLUTE:         "ABS",
	ABSOLUTE_X:       "ABX",
	ABSOLUTE_Y:       "ABY",
	INDIRECT:         "IND",
	INDEXED_INDIRECT: "PRE",
	INDIRECT_INDEXED: "POS",
	RELATIVE:         "REL",
}

const STACK_PAGE = 0x0100

var flagMap = map[uint8]byte{
	STATUS_FLAG_CARRY:             'C',
	STATUS_FLAG_ZERO:              'Z',
	STATUS_FLAG_INTERRUPT_DISABLE: 'I',
	STATUS_FLAG_DECIMAL:           'D',
	STATUS_FLAG_BREAK:             'B',
	UNUSED_STATUS_FLAG:            '-',
	STATUS_FLAG_OVERFLOW:          'V',
	STATUS_FLAG_NEGATIVE:          'N',
}

func statusString(p uint8) string {
	var sb strings.Builder
	for _, f := range []uint8{
		STATUS_FLAG_NEGATIVE,
		STATUS_FLAG_OVERFLOW,
		UNUSED_STATUS_FLAG,
		STATUS_FLAG_BREAK,
		STATUS_FLAG_DECIMAL,
		STATUS_FLAG_INTERRUPT_DISABLE,
		STATUS_FLAG_ZERO,
		STATUS_FLAG_CARRY,
	} {
		if p&f != 0 {
			sb.WriteByte(flagMap[f])
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// CPU is all of the architectural state of the 6502: the register
// file, the status flags, the cycle counter for the instruction in
// flight, and the memory port it executes against. Mutated only by
// its own Reset/Step/NMI/IRQ operations.
type CPU struct {
	A, X, Y uint8
	P       uint8
	SP      uint8
	PC      uint16

	mem Memory

	cycles int

	nextPC          uint16
	mode            uint8
	assumePageCross bool

	pendingNMI bool
	pendingIRQ bool

	// Trace enables recording of the last-step log line described by
	// the optional trace format: PPPP OO MMM A:AA X:XX Y:YY P:PP SP:SS.
	Trace     bool
	LastTrace string
}

func (c *CPU) String() string {
	return fmt.Sprintf("A,X,Y: %3d,%3d,%3d; PC: $%04X; SP: $%02X; P: %s", c.A, c.X, c.Y, c.PC, c.SP, statusString(c.P))
}

// New constructs a CPU wired to mem and performs power-on
// initialization: https://nesdev-wiki.nes.science/wikipages/CPU_ALL.xhtml#Power_up_state
func New(mem Memory) *CPU {
	c := &CPU{
		mem: mem,
		SP:  0xFD,
		P:   UNUSED_STATUS_FLAG | STATUS_FLAG_INTERRUPT_DISABLE,
	}
	c.PC = c.read16(INT_RESET)
	c.cycles = 0
	return c
}

// Reset returns the CPU to its power-on register state without
// touching memory.
func (c *CPU) Reset() {
	c.SP = 0xFD
	c.A, c.X, c.Y = 0, 0, 0
	c.P = UNUSED_STATUS_FLAG | STATUS_FLAG_INTERRUPT_DISABLE
	c.PC = c.read16(INT_RESET)
	c.cycles = 0
}

// NMI requests a non-maskable interrupt be serviced before the next
// Step.
func (c *CPU) NMI() {
	c.pendingNMI = true
}

// IRQ requests a maskable interrupt be serviced before the next Step,
// unless the interrupt-disable flag is set.
func (c *CPU) IRQ() {
	c.pendingIRQ = true
}

// Cycles returns the number of cycles consumed by the most recent
// Step.
func (c *CPU) Cycles() int {
	return c.cycles
}

// read performs a cycle-counted memory read: every bus transaction is
// the natural cycle boundary, so read/write/read16 both dispatch to
// the memory port and advance the cycle counter.
func (c *CPU) read(addr uint16) uint8 {
	c.cycles++
	return c.mem.Read(addr)
}

func (c *CPU) write(addr uint16, val uint8) {
	c.cycles++
	c.mem.Write(addr, val)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return (hi << 8) | lo
}

// pushByte/popByte drive the stack through the cycle-counted write/read
// helpers, so every byte moved across the bus charges its one cycle
// automatically; handlers add only the true internal-only cycles on
// top (the stack-pointer increment/decrement itself, or an extra
// internal delay some stack ops have).
func (c *CPU) pushByte(v uint8) {
	c.write(STACK_PAGE+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) popByte() uint8 {
	c.SP++
	return c.read(STACK_PAGE + uint16(c.SP))
}

func (c *CPU) pushWord(v uint16) {
	c.pushByte(uint8(v >> 8))
	c.pushByte(uint8(v & 0x00FF))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.popByte())
	hi := uint16(c.popByte())
	return (hi << 8) | lo
}

// Step executes one instruction (or, if an interrupt is pending,
// services it) and returns the number of cycles it consumed.
func (c *CPU) Step() int {
	c.cycles = 0

	if c.pendingNMI {
		c.pendingNMI = false
		c.serviceInterrupt(INT_NMI)
		return c.clampCycles()
	}
	if c.pendingIRQ {
		c.pendingIRQ = false
		if c.P&STATUS_FLAG_INTERRUPT_DISABLE == 0 {
			c.serviceInterrupt(INT_IRQ)
			return c.clampCycles()
		}
	}

	opAddr := c.PC
	op := c.read(opAddr)
	entry := opcodeTable[op]

	if c.Trace {
		c.LastTrace = c.traceLine(opAddr, op, entry)
	}

	c.mode = entry.mode
	c.assumePageCross = entry.pageCrossAlways

	c.nextPC = opAddr + 1
	execute(c, entry.mnemonic, entry.mode)

	c.PC = c.nextPC
	return c.clampCycles()
}

func (c *CPU) clampCycles() int {
	if c.cycles == 0 {
		c.cycles = 1
	}
	return c.cycles
}

// serviceInterrupt pushes PC and P and loads PC from vector, exactly
// as a hardware NMI/IRQ does (bit 4 forced off, bit 5 forced on in the
// pushed status byte). BRK pushes its own way (see the BRK handler)
// since it also has an opcode fetch and a padding-byte read that are
// real, counted bus transactions this path never performs. The two
// internal cycles below, plus the three bytes pushed (auto-charged by
// pushWord/pushByte) plus the two-cycle vector read, total the usual
// 7-cycle interrupt latency.
func (c *CPU) serviceInterrupt(vector uint16) {
	c.cycles += 2
	c.pushWord(c.PC)
	c.pushByte((c.P &^ STATUS_FLAG_BREAK) | UNUSED_STATUS_FLAG)
	c.P |= STATUS_FLAG_INTERRUPT_DISABLE
	c.PC = c.read16(vector)
}

// resolve implements the addressing-mode table in full, including the
// indirect-JMP page-wrap bug and the zero-page wrap of the two
// indirect-indexed forms. pc is the address of the first operand byte
// (the opcode's address + 1). It returns the effective address; for
// Imm, the address of the operand byte itself; for Rel, the offset
// byte it has already fetched (zero-extended, to be read as signed);
// for Imp/Acc, 0. It leaves c.nextPC past the operand.
func (c *CPU) resolve(mode uint8, pc uint16) uint16 {
	switch mode {
	case IMPLICIT, ACCUMULATOR:
		c.nextPC = pc
		return 0
	case IMMEDIATE:
		c.nextPC = pc + 1
		return pc
	case RELATIVE:
		offset := c.read(pc)
		c.nextPC = pc + 1
		return uint16(offset)
	case ZERO_PAGE:
		addr := uint16(c.read(pc))
		c.nextPC = pc + 1
		return addr
	case ZERO_PAGE_X:
		base := c.read(pc)
		c.cycles++ // internal add
		c.nextPC = pc + 1
		return uint16(base + c.X)
	case ZERO_PAGE_Y:
		base := c.read(pc)
		c.cycles++ // internal add
		c.nextPC = pc + 1
		return uint16(base + c.Y)
	case ABSOLUTE:
		addr := c.read16(pc)
		c.nextPC = pc + 2
		return addr
	case ABSOLUTE_X:
		base := c.read16(pc)
		addr := base + uint16(c.X)
		if (base&0xFF)+uint16(c.X) >= 0x100 || c.assumePageCross {
			c.cycles++
		}
		c.nextPC = pc + 2
		return addr
	case ABSOLUTE_Y:
		base := c.read16(pc)
		addr := base + uint16(c.Y)
		if (base&0xFF)+uint16(c.Y) >= 0x100 || c.assumePageCross {
			c.cycles++
		}
		c.nextPC = pc + 2
		return addr
	case INDIRECT:
		ptr := c.read16(pc)
		lo := c.read(ptr)
		var hiAddr uint16
		if ptr&0x00FF == 0x00FF {
			hiAddr = ptr & 0xFF00 // the page-wrap bug
		} else {
			hiAddr = ptr + 1
		}
		hi := c.read(hiAddr)
		c.nextPC = pc + 2
		return (uint16(hi) << 8) | uint16(lo)
	case INDEXED_INDIRECT: // ($nn,X)
		zp := c.read(pc)
		ptr := zp + c.X // zero-page wrap
		lo := c.read(uint16(ptr))
		hi := c.read(uint16(ptr + 1)) // zero-page wrap
		c.nextPC = pc + 1
		return (uint16(hi) << 8) | uint16(lo)
	case INDIRECT_INDEXED: // ($nn),Y
		zp := c.read(pc)
		lo := c.read(uint16(zp))
		hi := c.read(uint16(zp + 1)) // zero-page wrap
		base := (uint16(hi) << 8) | uint16(lo)
		addr := base + uint16(c.Y)
		if (base&0xFF)+uint16(c.Y) >= 0x100 || c.assumePageCross {
			c.cycles++
		}
		c.nextPC = pc + 1
		return addr
	}
	panic("mos6502: invalid addressing mode")
}

// operand reads the 6502's operand for the given mode: in Acc mode it
// returns A with no bus cycle; in every other mode it reads addr,
// charging one cycle. No handler calls it in Imp mode.
func (c *CPU) operand(mode uint8, addr uint16) uint8 {
	if mode == ACCUMULATOR {
		return c.A
	}
	return c.read(addr)
}

func (c *CPU) storeOperand(mode uint8, addr uint16, val uint8) {
	if mode == ACCUMULATOR {
		c.A = val
		return
	}
	c.write(addr, val)
}

func (c *CPU) setNZ(v uint8) {
	if v == 0 {
		c.P |= STATUS_FLAG_ZERO
	} else {
		c.P &^= STATUS_FLAG_ZERO
	}
	if v&0x80 != 0 {
		c.P |= STATUS_FLAG_NEGATIVE
	} else {
		c.P &^= STATUS_FLAG_NEGATIVE
	}
}

// adc implements A' := A + operand + C with the carry/overflow
// derivation from §4.4.
func (c *CPU) adc(operand uint8) {
	carry := uint16(c.P & STATUS_FLAG_CARRY)
	sum := uint16(c.A) + uint16(operand) + carry

	if sum >= 0x100 {
		c.P |= STATUS_FLAG_CARRY
	} else {
		c.P &^= STATUS_FLAG_CARRY
	}
	if (c.A^operand)&0x80 == 0 && (c.A^uint8(sum))&0x80 != 0 {
		c.P |= STATUS_FLAG_OVERFLOW
	} else {
		c.P &^= STATUS_FLAG_OVERFLOW
	}

	c.A = uint8(sum)
	c.setNZ(c.A)
}

// sbc implements A' := A + ^operand + C, per §4.4's cleaner
// reformulation of the reference's fragile single-bit complement.
func (c *CPU) sbc(operand uint8) {
	c.adc(^operand)
}

func (c *CPU) compare(reg, operand uint8) {
	diff := reg - operand
	if reg >= operand {
		c.P |= STATUS_FLAG_CARRY
	} else {
		c.P &^= STATUS_FLAG_CARRY
	}
	c.setNZ(diff)
}

func crossesPage(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// branch adjusts nextPC when take is true. The offset byte is always
// fetched by resolve, so a not-taken branch costs the usual 2 cycles
// (opcode + operand); a taken branch costs 3, or 4 if it crosses a
// page, per §4.4's Rel timing.
func (c *CPU) branch(take bool, offsetByte uint16) {
	if !take {
		return
	}
	offset := int8(uint8(offsetByte))
	from := c.nextPC
	target := uint16(int32(from) + int32(offset))
	c.cycles++ // taken branch
	if crossesPage(from, target) {
		c.cycles++ // crossed into a new page
	}
	c.nextPC = target
}

func (c *CPU) traceLine(opAddr uint16, op uint8, entry instruction) string {
	return fmt.Sprintf("%04X %02X %s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		opAddr, op, mnemonicNames[entry.mnemonic], c.A, c.X, c.Y, c.P&0xEF, c.SP)
}

package mos6502

import "testing"

// newCPU builds a CPU over a fresh FlatMemory with the reset vector
// pointed at resetPC.
func newCPU(resetPC uint16) (*CPU, *FlatMemory) {
	mem := NewFlatMemory()
	mem.Write(INT_RESET, uint8(resetPC&0xFF))
	mem.Write(INT_RESET+1, uint8(resetPC>>8))
	return New(mem), mem
}

func TestReset(t *testing.T) {
	c, _ := newCPU(0x8000)

	if c.PC != 0x8000 {
		t.Errorf("PC = %04x, want 8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %02x, want FD", c.SP)
	}
	if c.A != 0 || c.X != 0 || c.Y != 0 {
		t.Errorf("A,X,Y = %d,%d,%d, want 0,0,0", c.A, c.X, c.Y)
	}
	if c.P != 0x24 {
		t.Errorf("P = %02x, want 24", c.P)
	}

	c.A, c.X, c.Y, c.SP = 1, 2, 3, 0x10
	c.Reset()
	if c.PC != 0x8000 || c.SP != 0xFD || c.A != 0 || c.X != 0 || c.Y != 0 || c.P != 0x24 {
		t.Errorf("Reset() did not restore power-on defaults: %+v", c)
	}
}

func TestADCOverflow(t *testing.T) {
	c, mem := newCPU(0x8000)
	c.A = 0x50
	c.P &^= STATUS_FLAG_CARRY
	mem.Write(0x8000, 0x69) // ADC #imm
	mem.Write(0x8001, 0x50)

	c.Step()

	if c.A != 0xA0 {
		t.Fatalf("A = %02x, want A0", c.A)
	}
	if c.P&STATUS_FLAG_NEGATIVE == 0 {
		t.Error("N not set")
	}
	if c.P&STATUS_FLAG_OVERFLOW == 0 {
		t.Error("V not set")
	}
	if c.P&STATUS_FLAG_CARRY != 0 {
		t.Error("C set, want clear")
	}
	if c.P&STATUS_FLAG_ZERO != 0 {
		t.Error("Z set, want clear")
	}
}

func TestSBCBorrow(t *testing.T) {
	c, mem := newCPU(0x8000)
	c.A = 0x50
	c.P |= STATUS_FLAG_CARRY
	mem.Write(0x8000, 0xE9) // SBC #imm
	mem.Write(0x8001, 0xB0)

	c.Step()

	if c.A != 0xA0 {
		t.Fatalf("A = %02x, want A0", c.A)
	}
	if c.P&STATUS_FLAG_NEGATIVE == 0 {
		t.Error("N not set")
	}
	if c.P&STATUS_FLAG_OVERFLOW == 0 {
		t.Error("V not set")
	}
	if c.P&STATUS_FLAG_CARRY != 0 {
		t.Error("C set, want clear")
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, mem := newCPU(0x8000)
	mem.Write(0x8000, 0x6C) // JMP (ind)
	mem.Write(0x8001, 0xFF)
	mem.Write(0x8002, 0x02) // pointer = $02FF
	mem.Write(0x02FF, 0x00)
	mem.Write(0x0300, 0x04) // would be wrong high byte
	mem.Write(0x0200, 0x80) // correct high byte, from page wrap

	c.Step()

	if c.PC != 0x8000 {
		t.Errorf("PC = %04x, want 8000 (bug: high byte must come from $0200)", c.PC)
	}
}

func TestIndexedIndirectZeroPageWrap(t *testing.T) {
	c, mem := newCPU(0x8000)
	c.X = 0
	mem.Write(0x8000, 0xA1) // LDA ($nn,X)
	mem.Write(0x8001, 0xFF)
	mem.Write(0x00FF, 0x34) // pointer low, from $FF
	mem.Write(0x0000, 0x12) // pointer high, wrapped from $00
	mem.Write(0x1234, 0x99)

	c.Step()

	if c.A != 0x99 {
		t.Errorf("A = %02x, want 99", c.A)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, mem := newCPU(0x8000)
	mem.Write(0x8000, 0x20) // JSR
	mem.Write(0x8001, 0x10)
	mem.Write(0x8002, 0x90)
	mem.Write(0x9010, 0x60) // RTS

	c.Step()
	if c.PC != 0x9010 {
		t.Fatalf("PC = %04x, want 9010", c.PC)
	}
	if c.SP != 0xFB {
		t.Fatalf("SP = %02x, want FB", c.SP)
	}
	if got := mem.Read(0x01FD); got != 0x80 {
		t.Errorf("stack[01FD] = %02x, want 80", got)
	}
	if got := mem.Read(0x01FC); got != 0x02 {
		t.Errorf("stack[01FC] = %02x, want 02", got)
	}
	if c.Cycles() != 6 {
		t.Errorf("JSR cycles = %d, want 6", c.Cycles())
	}

	c.Step()
	if c.PC != 0x8003 {
		t.Errorf("PC = %04x, want 8003", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %02x, want FD", c.SP)
	}
	if c.Cycles() != 6 {
		t.Errorf("RTS cycles = %d, want 6", c.Cycles())
	}
}

func TestPHPPLPPreservesBandU(t *testing.T) {
	c, mem := newCPU(0x8000)
	c.P = 0xA5
	mem.Write(0x8000, 0x08) // PHP
	c.Step()

	if got := mem.Read(0x0100 + uint16(c.SP) + 1); got != 0xB5 {
		t.Errorf("pushed P = %02x, want B5", got)
	}
	if c.Cycles() != 3 {
		t.Errorf("PHP cycles = %d, want 3", c.Cycles())
	}

	c.P = 0x00
	mem.Write(0x8001, 0x28) // PLP
	c.Step()

	if c.P != 0x85 {
		t.Errorf("P after PLP = %02x, want 85", c.P)
	}
	if c.Cycles() != 4 {
		t.Errorf("PLP cycles = %d, want 4", c.Cycles())
	}
}

func TestPHAPLACycles(t *testing.T) {
	c, mem := newCPU(0x8000)
	c.A = 0x7E
	mem.Write(0x8000, 0x48) // PHA
	c.Step()
	if c.Cycles() != 3 {
		t.Errorf("PHA cycles = %d, want 3", c.Cycles())
	}

	c.A = 0x00
	mem.Write(0x8001, 0x68) // PLA
	c.Step()
	if c.A != 0x7E {
		t.Errorf("A after PLA = %02x, want 7E", c.A)
	}
	if c.Cycles() != 4 {
		t.Errorf("PLA cycles = %d, want 4", c.Cycles())
	}
}

func TestRTICycles(t *testing.T) {
	c, mem := newCPU(0x8000)
	mem.Write(INT_NMI, 0x00)
	mem.Write(INT_NMI+1, 0x90)
	mem.Write(0x9000, 0x40) // RTI

	c.NMI()
	c.Step() // services the NMI, lands at $9000

	c.Step() // executes RTI
	if c.PC != 0x8000 {
		t.Errorf("PC after RTI = %04x, want 8000", c.PC)
	}
	if c.Cycles() != 6 {
		t.Errorf("RTI cycles = %d, want 6", c.Cycles())
	}
}

func TestFlagIdempotence(t *testing.T) {
	c, mem := newCPU(0x8000)
	mem.Write(0x8000, 0x38) // SEC
	mem.Write(0x8001, 0x38) // SEC
	c.Step()
	p1 := c.P
	c.Step()
	if c.P != p1 {
		t.Errorf("second SEC changed P: %02x -> %02x", p1, c.P)
	}
}

func TestCycleCounts(t *testing.T) {
	cases := []struct {
		name       string
		setup      func(c *CPU, mem *FlatMemory)
		wantCycles int
		wantPC     uint16
	}{
		{
			name: "LDA imm",
			setup: func(c *CPU, mem *FlatMemory) {
				mem.Write(0x8000, 0xA9)
				mem.Write(0x8001, 0x42)
			},
			wantCycles: 2,
			wantPC:     0x8002,
		},
		{
			name: "LDA abs,X no page cross",
			setup: func(c *CPU, mem *FlatMemory) {
				c.X = 0x01
				mem.Write(0x8000, 0xBD)
				mem.Write(0x8001, 0x00)
				mem.Write(0x8002, 0x80)
			},
			wantCycles: 4,
			wantPC:     0x8003,
		},
		{
			name: "LDA $80FF,X page cross",
			setup: func(c *CPU, mem *FlatMemory) {
				c.X = 0x01
				mem.Write(0x8000, 0xBD)
				mem.Write(0x8001, 0xFF)
				mem.Write(0x8002, 0x80)
			},
			wantCycles: 5,
			wantPC:     0x8003,
		},
		{
			name: "STA $80FF,X always pays the cross penalty",
			setup: func(c *CPU, mem *FlatMemory) {
				c.X = 0x01
				mem.Write(0x8000, 0x9D)
				mem.Write(0x8001, 0xFF)
				mem.Write(0x8002, 0x80)
			},
			wantCycles: 5,
			wantPC:     0x8003,
		},
		{
			name: "branch taken, crosses page",
			setup: func(c *CPU, mem *FlatMemory) {
				c.PC = 0x80FD
				c.P &^= STATUS_FLAG_CARRY
				mem.Write(0x80FD, 0x90) // BCC
				mem.Write(0x80FE, 0x04)
			},
			wantCycles: 4,
			wantPC:     0x8103,
		},
		{
			name: "branch not taken",
			setup: func(c *CPU, mem *FlatMemory) {
				c.P |= STATUS_FLAG_CARRY
				mem.Write(0x8000, 0x90) // BCC
				mem.Write(0x8001, 0x04)
			},
			wantCycles: 2,
			wantPC:     0x8002,
		},
		{
			name: "ASL accumulator",
			setup: func(c *CPU, mem *FlatMemory) {
				c.A = 0x81
				mem.Write(0x8000, 0x0A)
			},
			wantCycles: 2,
			wantPC:     0x8001,
		},
		{
			name: "INC absolute is RMW: read, modify, write",
			setup: func(c *CPU, mem *FlatMemory) {
				mem.Write(0x8000, 0xEE)
				mem.Write(0x8001, 0x00)
				mem.Write(0x8002, 0x80)
			},
			wantCycles: 6,
			wantPC:     0x8003,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, mem := newCPU(0x8000)
			c.PC = 0x8000
			tc.setup(c, mem)
			c.Step()
			if c.Cycles() != tc.wantCycles {
				t.Errorf("cycles = %d, want %d", c.Cycles(), tc.wantCycles)
			}
			if c.PC != tc.wantPC {
				t.Errorf("PC = %04x, want %04x", c.PC, tc.wantPC)
			}
		})
	}
}

func TestIllegalOpcodeIsNoFaultNoOp(t *testing.T) {
	c, mem := newCPU(0x8000)
	mem.Write(0x8000, 0x02) // undocumented
	c.Step()
	if c.PC != 0x8001 {
		t.Errorf("PC = %04x, want 8001", c.PC)
	}
}

func TestNMIServicedBeforeNextStep(t *testing.T) {
	c, mem := newCPU(0x8000)
	mem.Write(INT_NMI, 0x00)
	mem.Write(INT_NMI+1, 0x90)
	mem.Write(0x8000, 0xEA) // NOP

	c.NMI()
	c.Step()

	if c.PC != 0x9000 {
		t.Errorf("PC = %04x, want 9000 after NMI service", c.PC)
	}
	if c.P&STATUS_FLAG_INTERRUPT_DISABLE == 0 {
		t.Error("I flag not set after NMI")
	}
}

func TestIRQMaskedByInterruptDisable(t *testing.T) {
	c, mem := newCPU(0x8000)
	c.P |= STATUS_FLAG_INTERRUPT_DISABLE
	mem.Write(0x8000, 0xEA) // NOP

	c.IRQ()
	c.Step()

	if c.PC != 0x8001 {
		t.Errorf("PC = %04x, want 8001 (IRQ should have been masked)", c.PC)
	}
}

func TestBRK(t *testing.T) {
	c, mem := newCPU(0x8000)
	mem.Write(INT_BRK, 0x00)
	mem.Write(INT_BRK+1, 0x90)
	mem.Write(0x8000, 0x00) // BRK

	c.Step()

	if c.PC != 0x9000 {
		t.Errorf("PC = %04x, want 9000", c.PC)
	}
	if c.P&STATUS_FLAG_INTERRUPT_DISABLE == 0 {
		t.Error("I flag not set after BRK")
	}
	if c.Cycles() != 7 {
		t.Errorf("cycles = %d, want 7", c.Cycles())
	}
}

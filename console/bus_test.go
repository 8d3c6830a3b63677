package console

import (
	"testing"

	"github.com/mhollis/m6502nes/mappers"
)

func TestBaseRAMMirroring(t *testing.T) {
	b := New(mappers.Dummy)

	for i := 0; i < 10; i++ {
		b.Write(uint16(i), uint8(i+1))
	}

	for _, base := range []uint16{0, 0x800, 0x1000, 0x1800} {
		for i := 0; i < 10; i++ {
			if got := b.Read(base + uint16(i)); got != uint8(i+1) {
				t.Errorf("mem[%04x] = %02x, want %02x", base+uint16(i), got, i+1)
			}
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b := New(mappers.Dummy)

	b.Write(0x2000, 0x80) // PPUCTRL
	if got := b.Read(0x2000); got != 0x80 {
		t.Errorf("PPUCTRL readback = %02x, want 80", got)
	}

	// 0x2008-0x3FFF mirrors every 8 bytes back to 0x2000-0x2007.
	b.Write(0x3FF8, 0x80)
	if got := b.Read(0x2000); got != 0x80 {
		t.Errorf("mirrored PPUCTRL = %02x, want 80", got)
	}
}

func TestJoypadStrobeAndShift(t *testing.T) {
	b := New(mappers.Dummy)
	b.pad1.buttons = 0b0000_0101 // A and Select pressed
	b.Write(JOYPAD1, 1)          // strobe high: reset the shift index

	want := []uint8{1, 0, 1, 0, 0, 0, 0, 0}
	for i, w := range want {
		if got := b.Read(JOYPAD1); got != w {
			t.Errorf("bit %d = %d, want %d", i, got, w)
		}
	}
	// Past the 8th read, real hardware returns 1 forever until re-strobed.
	if got := b.Read(JOYPAD1); got != 1 {
		t.Errorf("9th read = %d, want 1", got)
	}
}

func TestOAMDMACopiesPage(t *testing.T) {
	b := New(mappers.Dummy)

	for i := 0; i < 256; i++ {
		b.Write(uint16(i), uint8(i))
	}
	b.Write(OAMDMA, 0x00)

	for i := 0; i < 4; i++ {
		b.ppu.WriteReg(0x2003, uint8(i)) // OAMADDR
		if got := b.ppu.ReadReg(0x2004); got != uint8(i) {
			t.Errorf("OAM[%d] = %02x, want %02x", i, got, i)
		}
	}
}

func TestCPUIntegrationExecutesFromBus(t *testing.T) {
	b := New(mappers.Dummy)

	b.mapper.PrgWrite(0x8000, 0xEA) // NOP
	b.cpu.PC = 0x8000
	cycles := b.cpu.Step()

	if cycles == 0 {
		t.Error("Step() reported zero cycles")
	}
	if b.cpu.PC != 0x8001 {
		t.Errorf("PC = %04x, want 8001", b.cpu.PC)
	}
}

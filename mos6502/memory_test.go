package mos6502

import "testing"

func TestFlatMemoryReadWrite(t *testing.T) {
	m := NewFlatMemory()

	for i := 0; i < 16; i++ {
		m.Write(uint16(i), uint8(i+1))
	}

	for i := 0; i < 16; i++ {
		if got := m.Read(uint16(i)); got != uint8(i+1) {
			t.Errorf("Read(%d) = %02x, want %02x", i, got, i+1)
		}
	}
}

func TestFlatMemoryLoad(t *testing.T) {
	m := NewFlatMemory()
	data := []uint8{0xA9, 0x01, 0x00}

	m.Load(0x8000, data)

	for i, want := range data {
		if got := m.Read(0x8000 + uint16(i)); got != want {
			t.Errorf("Read(%04x) = %02x, want %02x", 0x8000+i, got, want)
		}
	}
}

func TestFlatMemoryMaxAddress(t *testing.T) {
	m := NewFlatMemory()
	m.Write(MAX_ADDRESS, 0x42)
	if got := m.Read(MAX_ADDRESS); got != 0x42 {
		t.Errorf("Read(MAX_ADDRESS) = %02x, want 0x42", got)
	}
}

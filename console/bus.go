package console

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mhollis/m6502nes/mappers"
	"github.com/mhollis/m6502nes/mos6502"
	"github.com/mhollis/m6502nes/ppu"
)

const (
	NES_BASE_MEMORY = 0x800 // 2KB built in RAM

	MAX_ADDRESS          = math.MaxUint16
	MEM_SIZE             = MAX_ADDRESS + 1
	MAX_NES_BASE_RAM     = 0x1FFF
	MAX_PPU_REG_MIRRORED = 0x3FFF
	MAX_IO_REG           = 0x4020
	MAX_SRAM             = 0x6000
)

const (
	OAMDMA  = 0x4014 // Triggers DMA from CPU memory to PPU OAM
	JOYPAD1 = 0x4016
	JOYPAD2 = 0x4017
)

// Bus wires the CPU, PPU and cartridge mapper together behind the
// NES's memory map and drives the emulation loop. It implements
// mos6502.Memory for the CPU, ppu.Bus for the PPU, and ebiten.Game so
// it can drive a window directly.
type Bus struct {
	cpu    *mos6502.CPU
	ppu    *ppu.PPU
	mapper mappers.Mapper
	pad1   *controller
	ram    []uint8
	ticks  uint64
}

func New(m mappers.Mapper) *Bus {
	bus := &Bus{mapper: m, pad1: &controller{}, ram: make([]uint8, NES_BASE_MEMORY)}

	bus.cpu = mos6502.New(bus)
	bus.ppu = ppu.New(bus)

	w, h := bus.ppu.GetResolution()
	ebiten.SetWindowSize(w*2, h*2) // Start with 2x the screen size
	ebiten.SetWindowTitle("m6502nes")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return bus
}

func (b *Bus) MirrorMode() uint8 {
	return b.mapper.MirroringMode()
}

// Layout returns the constant resolution of the NES and is part of
// the ebiten.Game interface. By returning constants here, we will
// force ebiten to scale the display when the window size changes.
func (b *Bus) Layout(w, h int) (int, int) {
	return b.ppu.GetResolution()
}

// Draw updates the displayed ebiten window with the current state of
// the PPU.
func (b *Bus) Draw(screen *ebiten.Image) {
	w, _ := b.ppu.GetResolution()
	px := b.ppu.GetPixels()

	for i, c := range px {
		x, y := i%w, i/w
		screen.Set(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]})
	}
}

// Update is called by ebiten roughly every 1/60s and will be our
// driver for the emulation.
func (b *Bus) Update() error {
	// We do work in a different goroutine and don't need ebiten
	// to drive this. We have to be implemented and called though
	// as it's part of the required interface.
	return nil
}

// TriggerNMI is used by the PPU to signal the CPU that it is in vblank.
func (b *Bus) TriggerNMI() {
	b.cpu.NMI()
}

// ChrRead is used by the PPU to access CHR data through the loaded
// mapper. It returns the inclusive byte range [start, end].
func (b *Bus) ChrRead(start, end uint16) []uint8 {
	out := make([]uint8, 0, int(end-start)+1)
	for a := start; ; a++ {
		out = append(out, b.mapper.ChrRead(a))
		if a == end {
			break
		}
	}
	return out
}

func (b *Bus) Read(addr uint16) uint8 {
	// https://www.nesdev.org/wiki/CPU_memory_map
	switch {
	case addr <= MAX_NES_BASE_RAM:
		// 0x800-0x1FFF mirrors 0x0000-0x07FF
		return b.ram[addr&0x7FF]
	case addr <= MAX_PPU_REG_MIRRORED:
		// PPU registers are mirrored between 0x2000 and 0x4000
		return b.ppu.ReadReg(addr & 0x2007)
	case addr == JOYPAD1:
		return b.pad1.read()
	case addr < MAX_IO_REG:
		// APU registers and joypad 2 are not emulated
		return 0
	case addr <= MAX_SRAM:
		return 0
	case addr <= MAX_ADDRESS:
		return b.mapper.PrgRead(addr)
	}

	panic("should never happen") // hah, prod crashes await!
}

func (b *Bus) ClearMem() {
	b.ram = make([]uint8, len(b.ram))
}

func (b *Bus) Write(addr uint16, val uint8) {
	// https://www.nesdev.org/wiki/CPU_memory_map
	switch {
	case addr <= MAX_NES_BASE_RAM:
		// 0x800-0x1FFF mirrors 0x0000-0x07FF
		b.ram[addr&0x07FF] = val
	case addr <= MAX_PPU_REG_MIRRORED:
		// PPU registers are mirrored between 0x2000 and 0x4000
		b.ppu.WriteReg(addr&0x2007, val)
	case addr < MAX_IO_REG:
		// Handle Joysticks, APU and PPU DMA
		switch addr {
		case OAMDMA:
			base := uint16(val) << 8
			for a := base; a < base+256; a++ {
				b.ppu.WriteReg(ppu.OAMDATA, b.Read(a))
			}
			// DMA stalls the CPU for 513 cycles (514 when it
			// starts on an odd CPU cycle); the PPU keeps running
			// during the stall.
			extra := 513
			if b.ticks%2 == 1 {
				extra = 514
			}
			b.ppu.Tick(extra * 3)
			b.ticks += uint64(extra)
		case JOYPAD1:
			b.pad1.write(val)
		}
	case addr <= MAX_SRAM:
		// nothing for now
	case addr <= MAX_ADDRESS:
		b.mapper.PrgWrite(addr, val)
	}
}

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Printf(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}

// Run drives the emulation by repeatedly stepping the CPU and ticking
// the PPU three times per CPU cycle consumed, until ctx is canceled.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			cycles := b.cpu.Step()
			b.ppu.Tick(cycles * 3)
			b.ticks += uint64(cycles)
		}
	}
}

func (b *Bus) BIOS(ctx context.Context) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n\n", b.cpu)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - cleear breakpoints")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(S)step - step the cpu one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)memory - select a memory range to display")
		fmt.Println("S(t)ack - show last 3 items on the stack")
		fmt.Println("(I)instruction - show instruction memory locations")
		fmt.Println("(P)C - set program counter")
		fmt.Println("PP(U) - show PPU status")
		fmt.Println("(Q)uit - shutdown the console")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			b.cpu.PC = readAddress("Set PC to what address (eg: 0400)?: ")
		case 'q', 'Q':
			return
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			go func(ctx context.Context) {
				for {
					select {
					case <-sigQuit:
						cancel()
					case <-ctx.Done():
						return
					}
				}
			}(cctx)

			b.Run(cctx)
		case 's', 'S':
			c := b.cpu.Step()
			b.ppu.Tick(c * 3)
		case 't', 'T':
			fmt.Println()
			for i := 0; i < 3; i++ {
				m := mos6502.STACK_PAGE + uint16(b.cpu.SP+1+uint8(i))
				fmt.Printf("0x%04x: 0x%02x ", m, b.Read(m))
				if m == 0x01ff {
					break
				}
			}
			fmt.Printf("\n\n")
		case 'i', 'I':
			fmt.Printf("\nPC=$%04X: %02X %02X %02X\n\n", b.cpu.PC, b.Read(b.cpu.PC), b.Read(b.cpu.PC+1), b.Read(b.cpu.PC+2))
		case 'u', 'U':
			fmt.Println(b.ppu)
		case 'e', 'E':
			b.cpu.Reset()
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			i := low
			for {
				fmt.Printf("0x%04x: 0x%02x ", i, b.Read(i))
				if x%5 == 0 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
				x += 1
				i += 1
			}
			fmt.Printf("\n\n")
		}
	}
}

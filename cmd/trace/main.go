// Command trace runs the m6502nes CPU core against a ROM or a raw hex
// byte stream and optionally prints a trace line per instruction.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mhollis/m6502nes/console"
	"github.com/mhollis/m6502nes/mappers"
	"github.com/mhollis/m6502nes/mos6502"
	"github.com/mhollis/m6502nes/nesrom"
)

var (
	romFile  = flag.String("nes_rom", "", "Path to an iNES ROM to run, windowed via ebiten.")
	hexBytes = flag.String("hex", "", "Raw hex byte stream to load at -org and run headless (mutually exclusive with -nes_rom).")
	org      = flag.Uint("org", 0x8000, "Load/reset address for -hex mode.")
	steps    = flag.Int("steps", 0, "Number of instructions to execute in -hex mode (0 = run until BRK or a PC self-loop).")
	doTrace  = flag.Bool("trace", false, "Print the per-step trace line (-hex mode only).")
)

func main() {
	flag.Parse()

	switch {
	case *hexBytes != "":
		runHex()
	case *romFile != "":
		runROM()
	default:
		log.Fatal("one of -nes_rom or -hex is required")
	}
}

// runHex drives the CPU directly against FlatMemory, for quick manual
// tracing of a handful of instructions without a full ROM.
func runHex() {
	data, err := hex.DecodeString(strings.TrimSpace(*hexBytes))
	if err != nil {
		log.Fatalf("invalid -hex stream: %v", err)
	}

	mem := mos6502.NewFlatMemory()
	mem.Load(uint16(*org), data)
	mem.Write(mos6502.INT_RESET, uint8(*org))
	mem.Write(mos6502.INT_RESET+1, uint8(*org>>8))

	cpu := mos6502.New(mem)
	cpu.Trace = *doTrace

	n := *steps
	unbounded := n == 0
	lastPC := cpu.PC
	for i := 0; unbounded || i < n; i++ {
		op := mem.Read(cpu.PC)
		cpu.Step()
		if *doTrace {
			log.Print(cpu.LastTrace)
		}
		if op == 0x00 {
			break // BRK
		}
		if cpu.PC == lastPC {
			break // self-loop (e.g. JMP *)
		}
		lastPC = cpu.PC
	}
}

// runROM loads a cartridge through the normal mapper/bus path and runs
// it windowed, matching the teacher's original entry point.
func runROM() {
	rom, err := nesrom.New(*romFile)
	if err != nil {
		log.Fatalf("invalid ROM: %v", err)
	}

	m, err := mappers.Get(rom)
	if err != nil {
		log.Fatalf("couldn't get mapper: %v", err)
	}

	bus := console.New(m)

	ctx, cancel := context.WithCancel(context.Background())
	go bus.Run(ctx)

	if err := ebiten.RunGame(bus); err != nil {
		log.Fatal(err)
	}

	cancel()
	os.Exit(0)
}

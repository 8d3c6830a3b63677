package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mhollis/m6502nes/mos6502"
)

var (
	hexBytes = flag.String("hex", "", "Raw hex byte stream to load at -org before starting the debugger.")
	org      = flag.Uint("org", 0x8000, "Load/reset address for the loaded program.")
)

func main() {
	flag.Parse()

	mem := mos6502.NewFlatMemory()
	if *hexBytes != "" {
		data, err := hex.DecodeString(strings.TrimSpace(*hexBytes))
		if err != nil {
			log.Fatalf("invalid -hex stream: %v", err)
		}
		mem.Load(uint16(*org), data)
	}
	mem.Write(mos6502.INT_RESET, uint8(*org))
	mem.Write(mos6502.INT_RESET+1, uint8(*org>>8))

	cpu := mos6502.New(mem)

	m := model{
		cpu:         cpu,
		mem:         mem,
		breakpoints: make(map[uint16]struct{}),
		memOffset:   uint16(*org),
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Println(dump(cpu))
		log.Fatalf("inspect: %v", err)
	}
}

// Package main implements inspect, an interactive terminal debugger
// for the m6502nes CPU core, in the style of the teacher's BIOS REPL
// reimplemented as a bubbletea TUI.
package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/mhollis/m6502nes/mos6502"
)

const rowWidth = 16

var (
	pcStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	bpStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	headStyle = lipgloss.NewStyle().Faint(true)
)

type model struct {
	cpu *mos6502.CPU
	mem *mos6502.FlatMemory

	breakpoints map[uint16]struct{}
	memOffset   uint16

	halted  bool
	message string
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s":
		m.step()
	case "r":
		m.run()
	case "e":
		m.cpu.Reset()
		m.halted = false
		m.message = "reset"
	case "b":
		m.breakpoints[m.cpu.PC] = struct{}{}
		m.message = fmt.Sprintf("breakpoint set at $%04X", m.cpu.PC)
	case "c":
		m.breakpoints = make(map[uint16]struct{})
		m.message = "breakpoints cleared"
	case "up":
		m.memOffset -= rowWidth
	case "down":
		m.memOffset += rowWidth
	case "pgup":
		m.memOffset -= rowWidth * 8
	case "pgdown":
		m.memOffset += rowWidth * 8
	}

	return m, nil
}

// step executes a single instruction and reports a hit when the new PC
// is a breakpoint. The pre-step PC is not kept; the disassembly pane
// shows the byte at the current PC.
func (m *model) step() {
	if m.halted {
		return
	}
	m.cpu.Step()
	m.message = ""
	if _, atBreak := m.breakpoints[m.cpu.PC]; atBreak {
		m.message = fmt.Sprintf("hit breakpoint at $%04X", m.cpu.PC)
	}
}

// run steps until a breakpoint is hit, a BRK executes, or the PC stops
// advancing (a self-loop), matching the teacher's BIOS "(R)un" command.
func (m *model) run() {
	if m.halted {
		return
	}
	const maxSteps = 1_000_000
	lastPC := m.cpu.PC
	for i := 0; i < maxSteps; i++ {
		op := m.mem.Read(m.cpu.PC)
		m.cpu.Step()
		if _, atBreak := m.breakpoints[m.cpu.PC]; atBreak {
			m.message = fmt.Sprintf("hit breakpoint at $%04X", m.cpu.PC)
			return
		}
		if op == 0x00 {
			m.halted = true
			m.message = "halted on BRK"
			return
		}
		if m.cpu.PC == lastPC {
			m.halted = true
			m.message = fmt.Sprintf("halted on self-loop at $%04X", m.cpu.PC)
			return
		}
		lastPC = m.cpu.PC
	}
	m.message = "stopped after 1,000,000 steps without halting"
}

func (m model) registers() string {
	return fmt.Sprintf(
		"PC: $%04X\nSP: $%02X\nA:  $%02X\nX:  $%02X\nY:  $%02X\nP:  %08b\n",
		m.cpu.PC, m.cpu.SP, m.cpu.A, m.cpu.X, m.cpu.Y, m.cpu.P,
	)
}

func (m model) disassembly() string {
	addr := m.cpu.PC
	return fmt.Sprintf("next opcode byte: $%02X @ $%04X", m.mem.Read(addr), addr)
}

func (m model) breakpointList() string {
	if len(m.breakpoints) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for addr := range m.breakpoints {
		fmt.Fprintf(&sb, "$%04X\n", addr)
	}
	return sb.String()
}

// memDump renders 8 rows of rowWidth bytes starting at m.memOffset,
// highlighting the byte at PC. Breakpoint addresses are not marked in
// the dump.
func (m model) memDump() string {
	var sb strings.Builder
	sb.WriteString(headStyle.Render("addr | " + strings.Repeat(" xx ", rowWidth)))
	sb.WriteByte('\n')

	for row := 0; row < 8; row++ {
		start := m.memOffset + uint16(row*rowWidth)
		fmt.Fprintf(&sb, "%04X | ", start)
		for i := uint16(0); i < rowWidth; i++ {
			addr := start + i
			b := fmt.Sprintf("%02X", m.mem.Read(addr))
			if addr == m.cpu.PC {
				b = pcStyle.Render(b)
			}
			sb.WriteString(b)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m model) View() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		headStyle.Render("memory"),
		m.memDump(),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		headStyle.Render("registers"),
		m.registers(),
		headStyle.Render("breakpoints (b=set, c=clear)"),
		bpStyle.Render(m.breakpointList()),
	)

	help := "s=step  r=run  e=reset  b=breakpoint  c=clear-breakpoints  up/down/pgup/pgdown=scroll  q=quit"

	status := m.message
	if m.halted {
		status = "HALTED: " + status
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right),
		"",
		m.disassembly(),
		status,
		help,
	)
}

// dump is used outside the TUI (e.g. on a fatal error) to print raw
// CPU state for post-mortem debugging.
func dump(c *mos6502.CPU) string {
	return spew.Sdump(c)
}

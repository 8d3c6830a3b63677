package main

import (
	"fmt"

	"github.com/go-test/deep"
	"github.com/pkg/errors"

	"github.com/mhollis/m6502nes/mos6502"
)

// Result is the outcome of running a single vector.
type Result struct {
	Vector Vector
	Diffs  []string // non-nil only on a state mismatch
	Err    error    // non-nil only on a harness/fixture failure, never a CPU mismatch
}

func (r Result) Pass() bool {
	return r.Err == nil && len(r.Diffs) == 0
}

// apply loads a State into a fresh FlatMemory and CPU, bypassing
// Reset/power-on so the vector's exact register values are the
// starting point.
func apply(s State) (*mos6502.CPU, *mos6502.FlatMemory) {
	mem := mos6502.NewFlatMemory()
	for _, kv := range s.RAM {
		mem.Write(uint16(kv[0]), uint8(kv[1]))
	}

	cpu := mos6502.New(mem)
	cpu.PC = s.PC
	cpu.SP = s.S
	cpu.A, cpu.X, cpu.Y, cpu.P = s.A, s.X, s.Y, s.P

	return cpu, mem
}

// snapshot reads back the State implied by cpu/mem's current contents
// at exactly the RAM addresses the vector cares about, so the deep
// comparison only inspects bytes the vector actually asserts on.
func snapshot(cpu *mos6502.CPU, mem *mos6502.FlatMemory, want State) State {
	ram := make([][2]int, len(want.RAM))
	for i, kv := range want.RAM {
		ram[i] = [2]int{kv[0], int(mem.Read(uint16(kv[0])))}
	}
	return State{
		PC:  cpu.PC,
		S:   cpu.SP,
		A:   cpu.A,
		X:   cpu.X,
		Y:   cpu.Y,
		P:   cpu.P,
		RAM: ram,
	}
}

// Run executes v's single instruction and reports whether the
// resulting state and cycle count (when the vector specifies one)
// matches v.Final.
func Run(v Vector) Result {
	if len(v.Initial.RAM) == 0 {
		return Result{Vector: v, Err: errors.New("vector has no initial RAM entries, opcode byte is unloadable")}
	}

	cpu, mem := apply(v.Initial)
	cycles := cpu.Step()

	got := snapshot(cpu, mem, v.Final)
	diffs := deep.Equal(got, v.Final)

	if v.Cycles > 0 && cycles != v.Cycles {
		diffs = append(diffs, fmt.Sprintf("cycles = %d, want %d", cycles, v.Cycles))
	}

	return Result{Vector: v, Diffs: diffs}
}

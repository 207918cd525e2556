// Package emulator runs hack machine code. It executes one instruction per
// step with the hack ALU, which is enough to check what translated vm code
// does to the stack and the memory segments.
package emulator

import (
	"errors"
	"fmt"
)

const (
	// RAMSize covers the data memory, the screen memory map and the keyboard.
	RAMSize = 24577
	ROMSize = 32768
)

var (
	ErrProgramTooLarge = errors.New("program does not fit in rom")
	ErrAddressRange    = errors.New("memory address out of range")
)

// Instruction bits.
const (
	cInstructionBit = 0x8000
	aBit            = 0x1000
	destM           = 1
	destD           = 2
	destA           = 4
	jumpGT          = 1
	jumpEQ          = 2
	jumpLT          = 4
)

type CPU struct {
	A   int16
	D   int16
	PC  int
	RAM []int16
	ROM []uint16
	// Steps counts executed instructions since Load.
	Steps  int
	halted bool
}

func New() *CPU {
	return &CPU{RAM: make([]int16, RAMSize)}
}

// Load replaces the rom with program and resets the registers. The ram is
// kept, so the caller can prepare it before or after loading.
func (cpu *CPU) Load(program []uint16) error {
	if len(program) > ROMSize {
		return fmt.Errorf("%w: %d words", ErrProgramTooLarge, len(program))
	}
	cpu.ROM = append([]uint16(nil), program...)
	cpu.A, cpu.D, cpu.PC, cpu.Steps = 0, 0, 0, 0
	cpu.halted = false
	return nil
}

// Halted reports whether the program ran off the end of the rom or is parked
// in the `(END) @END 0;JMP` idle loop.
func (cpu *CPU) Halted() bool {
	return cpu.halted || cpu.PC < 0 || cpu.PC >= len(cpu.ROM)
}

func (cpu *CPU) Peek(addr int) int16 {
	if addr < 0 || addr >= len(cpu.RAM) {
		return 0
	}
	return cpu.RAM[addr]
}

func (cpu *CPU) Poke(addr int, value int16) {
	if addr >= 0 && addr < len(cpu.RAM) {
		cpu.RAM[addr] = value
	}
}

// Step executes the instruction at PC.
func (cpu *CPU) Step() error {
	if cpu.Halted() {
		return nil
	}
	pc := cpu.PC
	ins := cpu.ROM[pc]
	cpu.Steps++
	if ins&cInstructionBit == 0 {
		cpu.A = int16(ins)
		cpu.PC++
		return nil
	}
	// M is always RAM[A] with A taken before this instruction updates it.
	addr := int(uint16(cpu.A))
	y := cpu.A
	if ins&aBit != 0 {
		if addr >= len(cpu.RAM) {
			return fmt.Errorf("%w: read %d at pc %d", ErrAddressRange, addr, pc)
		}
		y = cpu.RAM[addr]
	}
	out := alu(cpu.D, y, ins>>6&0x3f)
	dest := ins >> 3 & 7
	if dest&destM != 0 {
		if addr >= len(cpu.RAM) {
			return fmt.Errorf("%w: write %d at pc %d", ErrAddressRange, addr, pc)
		}
		cpu.RAM[addr] = out
	}
	if dest&destD != 0 {
		cpu.D = out
	}
	if dest&destA != 0 {
		cpu.A = out
	}
	jump := ins & 7
	if (jump&jumpLT != 0 && out < 0) || (jump&jumpEQ != 0 && out == 0) || (jump&jumpGT != 0 && out > 0) {
		cpu.PC = addr
		// An unconditional jump back to the @self that loaded it never leaves.
		if jump == 7 && addr == pc-1 && int(cpu.ROM[addr]) == addr {
			cpu.halted = true
		}
		return nil
	}
	cpu.PC++
	return nil
}

// Run steps until the program halts or maxSteps instructions were executed,
// and returns the number of steps taken.
func (cpu *CPU) Run(maxSteps int) (int, error) {
	steps := 0
	for steps < maxSteps && !cpu.Halted() {
		if err := cpu.Step(); err != nil {
			return steps, err
		}
		steps++
	}
	return steps, nil
}

// alu computes the hack ALU function selected by the six control bits
// zx nx zy ny f no.
func alu(x, y int16, control uint16) int16 {
	if control&0x20 != 0 {
		x = 0
	}
	if control&0x10 != 0 {
		x = ^x
	}
	if control&0x08 != 0 {
		y = 0
	}
	if control&0x04 != 0 {
		y = ^y
	}
	var out int16
	if control&0x02 != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if control&0x01 != 0 {
		out = ^out
	}
	return out
}

package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/xiaobogaga/hackvm/emulator"
	"github.com/xiaobogaga/hackvm/vmtranslator/internal"
)

var registerNames = []string{"SP", "LCL", "ARG", "THIS", "THAT"}

// renderReport prints the machine state after a run: the segment registers,
// the temp segment and the top of the stack.
func renderReport(cpu *emulator.CPU, depth int) string {
	var builder strings.Builder

	regTable := table.NewWriter()
	regTable.SetTitle("Registers")
	header := table.Row{"PC", "Steps", "Halted"}
	row := table.Row{cpu.PC, cpu.Steps, cpu.Halted()}
	for i, name := range registerNames {
		header = append(header, name)
		row = append(row, cpu.Peek(i))
	}
	regTable.AppendHeader(header)
	regTable.AppendRow(row)
	builder.WriteString(regTable.Render())
	builder.WriteString("\n\n")

	tempTable := table.NewWriter()
	tempTable.SetTitle("Temp")
	tempHeader := table.Row{}
	tempRow := table.Row{}
	for i := 0; i < 8; i++ {
		tempHeader = append(tempHeader, fmt.Sprintf("temp %d", i))
		tempRow = append(tempRow, cpu.Peek(5+i))
	}
	tempTable.AppendHeader(tempHeader)
	tempTable.AppendRow(tempRow)
	builder.WriteString(tempTable.Render())
	builder.WriteString("\n\n")

	stackTable := table.NewWriter()
	stackTable.SetTitle("Stack")
	stackTable.AppendHeader(table.Row{"Address", "Value"})
	sp := int(cpu.Peek(0))
	for addr := sp - 1; addr >= internal.StackBase && addr >= sp-depth; addr-- {
		stackTable.AppendRow(table.Row{addr, cpu.Peek(addr)})
	}
	builder.WriteString(stackTable.Render())
	builder.WriteString("\n")
	return builder.String()
}

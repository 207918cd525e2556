package internal

import (
	"strconv"
	"strings"
)

// Generated code is built as a list of hack instructions and only turned into
// text at the very end. There are three kinds of hack instructions:
// * A instruction: @value or @symbol, loads the A register.
// * C instruction: dest=comp;jump, where dest and jump are optional.
// * Label declaration: (label), binds label to the address of the next instruction.
// Comments are carried along so the output can be annotated with the vm line
// that produced each fragment.

type InstructionTP int

const (
	AInstructionTP InstructionTP = iota
	CInstructionTP
	LabelDeclarationTP
	CommentTP
)

type Instruction struct {
	Tp InstructionTP
	// Symbol is the operand of an A instruction, the name of a label declaration
	// or the text of a comment.
	Symbol string
	Dest   string
	Comp   string
	Jump   string
}

func At(symbol string) Instruction {
	return Instruction{Tp: AInstructionTP, Symbol: symbol}
}

func AtInt(value int) Instruction {
	return At(strconv.Itoa(value))
}

// Assign builds dest=comp.
func Assign(dest, comp string) Instruction {
	return Instruction{Tp: CInstructionTP, Dest: dest, Comp: comp}
}

// JumpOn builds comp;jump.
func JumpOn(comp, jump string) Instruction {
	return Instruction{Tp: CInstructionTP, Comp: comp, Jump: jump}
}

func Declare(label string) Instruction {
	return Instruction{Tp: LabelDeclarationTP, Symbol: label}
}

func Comment(text string) Instruction {
	return Instruction{Tp: CommentTP, Symbol: text}
}

func (ins Instruction) String() string {
	switch ins.Tp {
	case AInstructionTP:
		return "@" + ins.Symbol
	case LabelDeclarationTP:
		return "(" + ins.Symbol + ")"
	case CommentTP:
		return "// " + ins.Symbol
	}
	code := ins.Comp
	if ins.Dest != "" {
		code = ins.Dest + "=" + code
	}
	if ins.Jump != "" {
		code = code + ";" + ins.Jump
	}
	return code
}

// Fragment is the code generated for a single vm operation.
type Fragment []Instruction

// String serializes the fragment, one instruction per line.
func (fragment Fragment) String() string {
	var builder strings.Builder
	for _, ins := range fragment {
		builder.WriteString(ins.String())
		builder.WriteByte('\n')
	}
	return builder.String()
}

// Size returns the number of rom words the fragment occupies. Label
// declarations and comments take no space.
func (fragment Fragment) Size() int {
	count := 0
	for _, ins := range fragment {
		if ins.Tp == AInstructionTP || ins.Tp == CInstructionTP {
			count++
		}
	}
	return count
}

package internal

import "fmt"

// Push copies segment[index] to the top of the stack.
//
//	// push local 2
//	@2
//	D=A
//	@LCL
//	A=D+M
//	D=M
//	@SP
//	A=M
//	M=D
//	@SP
//	M=M+1
type Push struct {
	Segment Segment
	Index   int
	// Module names the static cells of this operation.
	Module string
}

// Pop moves the top of the stack to segment[index].
//
// A dynamic segment address must be computed before the value is popped, as
// popping reuses D. The address is parked in R13:
//
//	// pop local 2
//	@LCL
//	D=M
//	@2
//	D=D+A
//	@R13
//	M=D
//	@SP
//	AM=M-1
//	D=M
//	@R13
//	A=M
//	M=D
type Pop struct {
	Segment Segment
	Index   int
	Module  string
}

func (op *Push) OpString() string { return "push" }

func (op *Pop) OpString() string { return "pop" }

func (op *Push) String() string {
	return fmt.Sprintf("push %s %d", op.Segment, op.Index)
}

func (op *Pop) String() string {
	return fmt.Sprintf("pop %s %d", op.Segment, op.Index)
}

func (op *Push) Render(state *TranslationState) (Fragment, error) {
	var load Fragment
	switch {
	case op.Segment.IsDynamic():
		load = Fragment{
			AtInt(op.Index),
			Assign("D", "A"),
			At(op.Segment.BaseRegister()),
			Assign("A", "D+M"),
			Assign("D", "M"),
		}
	case op.Segment == ConstantSegment:
		load = Fragment{
			AtInt(op.Index),
			Assign("D", "A"),
		}
	case op.Segment == StaticSegment:
		load = Fragment{
			At(staticLabel(op.Module, op.Index)),
			Assign("D", "M"),
		}
	default:
		load = Fragment{
			AtInt(op.Segment.Address(op.Index)),
			Assign("D", "M"),
		}
	}
	return concat(load, pushD()), nil
}

func (op *Pop) Render(state *TranslationState) (Fragment, error) {
	switch {
	case op.Segment.IsDynamic():
		address := Fragment{
			At(op.Segment.BaseRegister()),
			Assign("D", "M"),
			AtInt(op.Index),
			Assign("D", "D+A"),
			At(scratchRegister),
			Assign("M", "D"),
		}
		store := Fragment{
			At(scratchRegister),
			Assign("A", "M"),
			Assign("M", "D"),
		}
		return concat(address, popD(), store), nil
	case op.Segment == ConstantSegment:
		return nil, ErrNotApplicable
	case op.Segment == StaticSegment:
		return concat(popD(), Fragment{
			At(staticLabel(op.Module, op.Index)),
			Assign("M", "D"),
		}), nil
	default:
		return concat(popD(), Fragment{
			AtInt(op.Segment.Address(op.Index)),
			Assign("M", "D"),
		}), nil
	}
}

package internal

import "fmt"

// Function declares the entry point of a function and clears its locals.
//
//	// function f 2
//	(f)
//	@SP
//	A=M
//	M=0
//	@SP
//	M=M+1 // repeated 2 times
type Function struct {
	Name    string
	NLocals int
}

// Call pushes the return address and the caller's LCL, ARG, THIS and THAT,
// then repositions ARG=SP-5-nArgs and LCL=SP and jumps to the callee. The
// return address is declared as <caller>$$ret.<n> right after the jump.
type Call struct {
	Name  string
	NArgs int
	// Scope is the calling function.
	Scope string
}

// Return copies the return value to ARG[0], restores the caller frame from
// the five words below LCL and jumps back. LCL is saved in R14 because it is
// restored before the return address is used; the return address is read
// into R15 first because for a function without arguments *ARG overlaps it.
type Return struct{}

func (op *Function) OpString() string { return "function" }
func (op *Call) OpString() string     { return "call" }
func (op *Return) OpString() string   { return "return" }

func (op *Function) String() string { return fmt.Sprintf("function %s %d", op.Name, op.NLocals) }
func (op *Call) String() string     { return fmt.Sprintf("call %s %d", op.Name, op.NArgs) }
func (op *Return) String() string   { return "return" }

func (op *Function) Render(state *TranslationState) (Fragment, error) {
	ret := Fragment{Declare(op.Name)}
	for i := 0; i < op.NLocals; i++ {
		ret = append(ret,
			At(stackPointerSymbol),
			Assign("A", "M"),
			Assign("M", "0"),
			At(stackPointerSymbol),
			Assign("M", "M+1"),
		)
	}
	return ret, nil
}

func (op *Call) Render(state *TranslationState) (Fragment, error) {
	returnLabel := fmt.Sprintf("%s$$ret.%d", op.Scope, state.nextLabelID())
	ret := concat(Fragment{
		At(returnLabel),
		Assign("D", "A"),
	}, pushD())
	for _, register := range []string{"LCL", "ARG", "THIS", "THAT"} {
		ret = concat(ret, Fragment{
			At(register),
			Assign("D", "M"),
		}, pushD())
	}
	return concat(ret, Fragment{
		At(stackPointerSymbol),
		Assign("D", "M"),
		AtInt(savedFrameSize + op.NArgs),
		Assign("D", "D-A"),
		At("ARG"),
		Assign("M", "D"),
		At(stackPointerSymbol),
		Assign("D", "M"),
		At("LCL"),
		Assign("M", "D"),
		At(op.Name),
		JumpOn("0", "JMP"),
		Declare(returnLabel),
	}), nil
}

func (op *Return) Render(state *TranslationState) (Fragment, error) {
	ret := Fragment{
		At("LCL"),
		Assign("D", "M"),
		At(frameRegister),
		Assign("M", "D"),
		AtInt(savedFrameSize),
		Assign("A", "D-A"),
		Assign("D", "M"),
		At(returnAddrRegister),
		Assign("M", "D"),
	}
	ret = concat(ret, popD(), Fragment{
		At("ARG"),
		Assign("A", "M"),
		Assign("M", "D"),
		At("ARG"),
		Assign("D", "M+1"),
		At(stackPointerSymbol),
		Assign("M", "D"),
	})
	for _, register := range []string{"THAT", "THIS", "ARG", "LCL"} {
		ret = append(ret,
			At(frameRegister),
			Assign("AM", "M-1"),
			Assign("D", "M"),
			At(register),
			Assign("M", "D"),
		)
	}
	return append(ret,
		At(returnAddrRegister),
		Assign("A", "M"),
		JumpOn("0", "JMP"),
	), nil
}

// Bootstrap sets SP to StackBase and calls Sys.init.
func Bootstrap() (Fragment, error) {
	state := NewTranslationState(bootstrapScope)
	call := &Call{Name: bootstrapEntryPoint, Scope: bootstrapScope}
	fragment, err := call.Render(state)
	if err != nil {
		return nil, err
	}
	return concat(Fragment{
		AtInt(StackBase),
		Assign("D", "A"),
		At(stackPointerSymbol),
		Assign("M", "D"),
	}, fragment), nil
}

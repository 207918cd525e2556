package internal

import (
	"fmt"
	"strings"
)

// Arithmetic is one of the stack arithmetic and logic commands. Binary
// commands pop y then x and push x op y, unary commands rewrite the top of the
// stack in place. Comparisons push -1 for true and 0 for false.
type Arithmetic struct {
	Op string
}

var binaryComps = map[string]string{
	"add": "D+M",
	"sub": "M-D",
	"and": "D&M",
	"or":  "D|M",
}

var unaryComps = map[string]string{
	"neg": "-M",
	"not": "!M",
}

var compareJumps = map[string]string{
	"eq": "JEQ",
	"gt": "JGT",
	"lt": "JLT",
}

func isArithmetic(op string) bool {
	_, binary := binaryComps[op]
	_, unary := unaryComps[op]
	_, compare := compareJumps[op]
	return binary || unary || compare
}

func (op *Arithmetic) OpString() string { return op.Op }

func (op *Arithmetic) String() string { return op.Op }

func (op *Arithmetic) Render(state *TranslationState) (Fragment, error) {
	if comp, ok := binaryComps[op.Op]; ok {
		return concat(popD(), topOfStack(), Fragment{Assign("M", comp)}), nil
	}
	if comp, ok := unaryComps[op.Op]; ok {
		return concat(topOfStack(), Fragment{Assign("M", comp)}), nil
	}
	jump, ok := compareJumps[op.Op]
	if !ok {
		return nil, ErrNotApplicable
	}
	// D=x-y, then jump on the sign of D.
	id := state.nextLabelID()
	name := strings.ToUpper(op.Op)
	trueLabel := fmt.Sprintf("%s$$%s_TRUE.%d", state.Module, name, id)
	endLabel := fmt.Sprintf("%s$$%s_END.%d", state.Module, name, id)
	return concat(popD(), topOfStack(), Fragment{
		Assign("D", "M-D"),
		At(trueLabel),
		JumpOn("D", jump),
	}, topOfStack(), Fragment{
		Assign("M", "0"),
		At(endLabel),
		JumpOn("0", "JMP"),
		Declare(trueLabel),
	}, topOfStack(), Fragment{
		Assign("M", "-1"),
		Declare(endLabel),
	}), nil
}

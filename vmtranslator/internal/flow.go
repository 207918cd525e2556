package internal

import "fmt"

// Program flow commands. A vm label is local to the function it appears in,
// so its hack name is <function>$<label>. Scope is recorded when the command
// is parsed.

type Label struct {
	Scope string
	Name  string
}

type Goto struct {
	Scope string
	Name  string
}

// IfGoto pops the top of the stack and jumps when it is not zero.
type IfGoto struct {
	Scope string
	Name  string
}

func scopedLabel(scope, name string) string {
	return scope + "$" + name
}

func (op *Label) OpString() string  { return "label" }
func (op *Goto) OpString() string   { return "goto" }
func (op *IfGoto) OpString() string { return "if-goto" }

func (op *Label) String() string  { return fmt.Sprintf("label %s", op.Name) }
func (op *Goto) String() string   { return fmt.Sprintf("goto %s", op.Name) }
func (op *IfGoto) String() string { return fmt.Sprintf("if-goto %s", op.Name) }

func (op *Label) Render(state *TranslationState) (Fragment, error) {
	return Fragment{Declare(scopedLabel(op.Scope, op.Name))}, nil
}

func (op *Goto) Render(state *TranslationState) (Fragment, error) {
	return Fragment{
		At(scopedLabel(op.Scope, op.Name)),
		JumpOn("0", "JMP"),
	}, nil
}

func (op *IfGoto) Render(state *TranslationState) (Fragment, error) {
	return concat(popD(), Fragment{
		At(scopedLabel(op.Scope, op.Name)),
		JumpOn("D", "JNE"),
	}), nil
}

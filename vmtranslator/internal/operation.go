package internal

// There are four kinds of vm commands, they are:
// * Memory access commands: push segment index, pop segment index.
// * Arithmetic commands: add, sub, neg, eq, gt, lt, and, or, not.
// * Program flow commands: label name, goto name, if-goto name.
// * Function calling commands: function f n, call f m, return.
// Each recognized command becomes an Operation which renders itself to a
// fragment of hack instructions.

type Operation interface {
	// OpString is the opcode the operation is recognized by.
	OpString() string
	// Render generates the hack instructions of the operation. Operations that
	// need unique labels take them from state.
	Render(state *TranslationState) (Fragment, error)
}

// pushD stores D at the top of the stack and increments SP.
func pushD() Fragment {
	return Fragment{
		At(stackPointerSymbol),
		Assign("A", "M"),
		Assign("M", "D"),
		At(stackPointerSymbol),
		Assign("M", "M+1"),
	}
}

// popD decrements SP and loads the old top of the stack into D.
func popD() Fragment {
	return Fragment{
		At(stackPointerSymbol),
		Assign("AM", "M-1"),
		Assign("D", "M"),
	}
}

// topOfStack points A at the top element of the stack without moving SP.
func topOfStack() Fragment {
	return Fragment{
		At(stackPointerSymbol),
		Assign("A", "M-1"),
	}
}

func concat(fragments ...Fragment) Fragment {
	var ret Fragment
	for _, fragment := range fragments {
		ret = append(ret, fragment...)
	}
	return ret
}

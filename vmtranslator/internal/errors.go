package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedOperand is returned when a line is recognized by its opcode
	// but an operand cannot be parsed.
	ErrMalformedOperand = errors.New("malformed operand")
	// ErrOperandOutOfRange is returned for an index outside its segment.
	ErrOperandOutOfRange = errors.New("operand out of range")
	// ErrNotApplicable is returned by Render when an operation has no meaning
	// for its operands, e.g. popping into the constant segment.
	ErrNotApplicable = errors.New("operation not applicable")
	// ErrInvalidPopTarget is reported for a pop into the constant segment.
	ErrInvalidPopTarget = errors.New("invalid pop target")
	// ErrUnhandledInstruction is reported in strict mode for a line no
	// operation recognizes.
	ErrUnhandledInstruction = errors.New("unhandled instruction")
	ErrInvalidModuleName    = errors.New("invalid module name")
	ErrDuplicateModule      = errors.New("duplicate module")
)

// TranslationError locates a failure in the vm source.
type TranslationError struct {
	Module string
	Line   int
	Text   string
	Err    error
}

func (err *TranslationError) Error() string {
	return fmt.Sprintf("SyntaxError: %v near %q at line %d of %s", err.Err, err.Text, err.Line, err.Module)
}

func (err *TranslationError) Unwrap() error {
	return err.Err
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedOperand, fmt.Sprintf(format, args...))
}

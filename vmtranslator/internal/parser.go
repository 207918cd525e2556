package internal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xiaobogaga/hackvm/util"
)

// A recognizer tries to read a tokenized line as one kind of operation. It
// returns ok=false and no error when the line is not of its kind, so the next
// recognizer can try. Once the opcode and the shape of the line match, bad
// operands are errors rather than a mismatch.
type recognizer func(tokens []string, state *TranslationState) (op Operation, ok bool, err error)

// recognizers are tried in this order; the first one that recognizes a line wins.
var recognizers = []recognizer{
	recognizePush,
	recognizePop,
	recognizeArithmetic,
	recognizeLabel,
	recognizeGoto,
	recognizeIfGoto,
	recognizeFunction,
	recognizeCall,
	recognizeReturn,
}

// ParseLine recognizes one normalized line. It returns ok=false with a nil
// error for a line that no operation recognizes.
func ParseLine(line string, state *TranslationState) (Operation, bool, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, false, nil
	}
	for _, recognize := range recognizers {
		op, ok, err := recognize(tokens, state)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return op, true, nil
		}
	}
	return nil, false, nil
}

func recognizePush(tokens []string, state *TranslationState) (Operation, bool, error) {
	segment, index, ok, err := recognizeMemoryAccess("push", tokens)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &Push{Segment: segment, Index: index, Module: state.Module}, true, nil
}

func recognizePop(tokens []string, state *TranslationState) (Operation, bool, error) {
	segment, index, ok, err := recognizeMemoryAccess("pop", tokens)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &Pop{Segment: segment, Index: index, Module: state.Module}, true, nil
}

// recognizeMemoryAccess matches `opString segment index`.
func recognizeMemoryAccess(opString string, tokens []string) (Segment, int, bool, error) {
	if len(tokens) != 3 || tokens[0] != opString {
		return "", 0, false, nil
	}
	segment, ok := lookupSegment(tokens[1])
	if !ok {
		return "", 0, false, nil
	}
	index, err := parseIndex(tokens[2])
	if err != nil {
		return "", 0, true, err
	}
	if limit, bounded := segmentLimits[segment]; bounded && index > limit {
		return "", 0, true, fmt.Errorf("%w: %s %d, max %d", ErrOperandOutOfRange, segment, index, limit)
	}
	return segment, index, true, nil
}

// parseIndex accepts a non-negative decimal integer.
func parseIndex(token string) (int, error) {
	value, err := strconv.ParseUint(token, 10, 15)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s exceeds %d", ErrOperandOutOfRange, token, maxConstant)
		}
		return 0, malformed("%s is not a non-negative integer", token)
	}
	return int(value), nil
}

func recognizeArithmetic(tokens []string, state *TranslationState) (Operation, bool, error) {
	if len(tokens) != 1 || !isArithmetic(tokens[0]) {
		return nil, false, nil
	}
	return &Arithmetic{Op: tokens[0]}, true, nil
}

// recognizeLabelName matches `opString name` and validates name.
func recognizeLabelName(opString string, tokens []string) (string, bool, error) {
	if len(tokens) != 2 || tokens[0] != opString {
		return "", false, nil
	}
	if !util.IsSymbol(tokens[1]) {
		return "", true, malformed("bad label name %s", tokens[1])
	}
	return tokens[1], true, nil
}

func recognizeLabel(tokens []string, state *TranslationState) (Operation, bool, error) {
	name, ok, err := recognizeLabelName("label", tokens)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &Label{Scope: state.Scope(), Name: name}, true, nil
}

func recognizeGoto(tokens []string, state *TranslationState) (Operation, bool, error) {
	name, ok, err := recognizeLabelName("goto", tokens)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &Goto{Scope: state.Scope(), Name: name}, true, nil
}

func recognizeIfGoto(tokens []string, state *TranslationState) (Operation, bool, error) {
	name, ok, err := recognizeLabelName("if-goto", tokens)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &IfGoto{Scope: state.Scope(), Name: name}, true, nil
}

// recognizeNamedCount matches `opString name count`.
func recognizeNamedCount(opString string, tokens []string) (string, int, bool, error) {
	if len(tokens) != 3 || tokens[0] != opString {
		return "", 0, false, nil
	}
	if !util.IsSymbol(tokens[1]) {
		return "", 0, true, malformed("bad function name %s", tokens[1])
	}
	if isStaticLabel(tokens[1]) {
		return "", 0, true, malformed("function name %s is taken by a static variable", tokens[1])
	}
	count, err := parseIndex(tokens[2])
	if err != nil {
		return "", 0, true, err
	}
	return tokens[1], count, true, nil
}

// recognizeFunction also enters the function, so labels and calls on the
// following lines are scoped to it.
func recognizeFunction(tokens []string, state *TranslationState) (Operation, bool, error) {
	name, nLocals, ok, err := recognizeNamedCount("function", tokens)
	if !ok || err != nil {
		return nil, ok, err
	}
	state.Function = name
	return &Function{Name: name, NLocals: nLocals}, true, nil
}

func recognizeCall(tokens []string, state *TranslationState) (Operation, bool, error) {
	name, nArgs, ok, err := recognizeNamedCount("call", tokens)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &Call{Name: name, NArgs: nArgs, Scope: state.Scope()}, true, nil
}

func recognizeReturn(tokens []string, state *TranslationState) (Operation, bool, error) {
	if len(tokens) != 1 || tokens[0] != "return" {
		return nil, false, nil
	}
	return &Return{}, true, nil
}

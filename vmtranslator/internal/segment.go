package internal

// Segment names a region of the target memory reachable by push and pop.
// There are two kinds of segments:
// * Dynamic segments: argument, local, this, that. Their base address lives in
//   the ARG, LCL, THIS and THAT registers, so the address of segment[i] is
//   RAM[base]+i.
// * Static segments: constant, pointer, temp, static. pointer and temp start
//   at a fixed address (3 and 5), static cells are named <module>.<index> and
//   placed from address 16 by the assembler, and constant has no address at
//   all: its value is the index itself.
type Segment string

const (
	ArgumentSegment Segment = "argument"
	LocalSegment    Segment = "local"
	ThisSegment     Segment = "this"
	ThatSegment     Segment = "that"
	ConstantSegment Segment = "constant"
	PointerSegment  Segment = "pointer"
	TempSegment     Segment = "temp"
	StaticSegment   Segment = "static"
)

var dynamicSegments = map[Segment]string{
	ArgumentSegment: "ARG",
	LocalSegment:    "LCL",
	ThisSegment:     "THIS",
	ThatSegment:     "THAT",
}

var staticSegments = map[Segment]int{
	ConstantSegment: 0,
	PointerSegment:  3,
	TempSegment:     5,
	StaticSegment:   16,
}

// segmentLimits is the largest valid index per segment. Every index, and so
// every constant, is also bounded by maxConstant.
var segmentLimits = map[Segment]int{
	PointerSegment: 1,
	TempSegment:    7,
}

// maxConstant is the largest value an A instruction can load.
const maxConstant = 1<<15 - 1

// StackBase is the first RAM word of the stack, where bootstrap points SP.
const StackBase = 256

// Scratch registers. R13 holds the destination address of a dynamic pop,
// R14 and R15 hold the frame and the return address while returning.
const (
	scratchRegister     = "R13"
	frameRegister       = "R14"
	returnAddrRegister  = "R15"
	stackPointerSymbol  = "SP"
	savedFrameSize      = 5
	bootstrapScope      = "$bootstrap"
	bootstrapEntryPoint = "Sys.init"
)

func lookupSegment(name string) (Segment, bool) {
	segment := Segment(name)
	if _, ok := dynamicSegments[segment]; ok {
		return segment, true
	}
	if _, ok := staticSegments[segment]; ok {
		return segment, true
	}
	return "", false
}

func (segment Segment) IsDynamic() bool {
	_, ok := dynamicSegments[segment]
	return ok
}

// BaseRegister returns the register holding the base address of a dynamic segment.
func (segment Segment) BaseRegister() string {
	return dynamicSegments[segment]
}

// Address returns the fixed address of segment[index] for pointer and temp.
func (segment Segment) Address(index int) int {
	return staticSegments[segment] + index
}

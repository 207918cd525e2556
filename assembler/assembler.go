package assembler

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// A two-pass assembler for the hack assembler code produced by the vm
// translator. The first pass records label declarations and emits every
// instruction, leaving @symbol references as placeholders; the second pass
// resolves each placeholder to a label address or allocates it a variable.

// The most ambiguous instruction is the A instruction, it has many types:
// * @10(decimal value), put this value to the A register.
// * @label, put the instruction address of label to A register, note that the label can be used before declared.
// * @R[0-15], @SP, @LCL, @ARG, @THIS, @THAT, @SCREEN, @KBD are predefined symbols.
// * @Variable, allocate a data memory address for this symbol (from 16 upwards) if it's the first reference.
// The vm translator relies on the last rule for static cells: Foo.3 becomes a variable.

var predefinedSymbols = map[string]int{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"R0":     0,
	"R1":     1,
	"R2":     2,
	"R3":     3,
	"R4":     4,
	"R5":     5,
	"R6":     6,
	"R7":     7,
	"R8":     8,
	"R9":     9,
	"R10":    10,
	"R11":    11,
	"R12":    12,
	"R13":    13,
	"R14":    14,
	"R15":    15,
	"SCREEN": 16384,
	"KBD":    24576,
}

var cCommandCompMap = map[string]string{
	"0":   "0101010",
	"1":   "0111111",
	"-1":  "0111010",
	"D":   "0001100",
	"A":   "0110000",
	"!D":  "0001101",
	"!A":  "0110001",
	"-D":  "0001111",
	"-A":  "0110011",
	"D+1": "0011111",
	"1+D": "0011111",
	"A+1": "0110111",
	"1+A": "0110111",
	"D-1": "0001110",
	"A-1": "0110010",
	"D+A": "0000010",
	"A+D": "0000010",
	"D-A": "0010011",
	"A-D": "0000111",
	"D&A": "0000000",
	"A&D": "0000000",
	"D|A": "0010101",
	"A|D": "0010101",
	"M":   "1110000",
	"!M":  "1110001",
	"-M":  "1110011",
	"M+1": "1110111",
	"1+M": "1110111",
	"M-1": "1110010",
	"D+M": "1000010",
	"M+D": "1000010",
	"D-M": "1010011",
	"M-D": "1000111",
	"D&M": "1000000",
	"M&D": "1000000",
	"D|M": "1010101",
	"M|D": "1010101",
}

var cCommandDestMap = map[string]string{
	"M":   "001",
	"D":   "010",
	"MD":  "011",
	"DM":  "011",
	"A":   "100",
	"AM":  "101",
	"MA":  "101",
	"AD":  "110",
	"DA":  "110",
	"AMD": "111",
	"ADM": "111",
	"DAM": "111",
	"DMA": "111",
	"MAD": "111",
	"MDA": "111",
}

var cCommandJumpMap = map[string]string{
	"JGT": "001",
	"JEQ": "010",
	"JGE": "011",
	"JLT": "100",
	"JNE": "101",
	"JLE": "110",
	"JMP": "111",
}

// Variables are allocated from firstVariableAddr up to, but not including,
// the screen memory map.
const (
	firstVariableAddr = 16
	lastVariableAddr  = 16383
	maxAddress        = 1<<15 - 1
)

type CommandType int

const (
	ACommand_Constant CommandType = iota
	ACommand_Label
	ACommand_Variable
	CCommand
)

type Command struct {
	Tp CommandType
	// Code is the 16 bits binary machine code, as a string of '0' and '1'.
	Code            string
	Line            int
	OriginalContent string
}

func (command Command) String() string {
	return fmt.Sprintf("Command: {Tp: %d, Code: %s, Line: %d, OriginalContent: %s}", command.Tp, command.Code,
		command.Line, command.OriginalContent)
}

// Word returns the machine code as a number.
func (command Command) Word() uint16 {
	value, _ := strconv.ParseUint(command.Code, 2, 16)
	return uint16(value)
}

type Assembler struct {
	line             int
	labelLocationMap map[string]int
	symbolLocations  []symbolLocation
	commands         []Command
}

type symbolLocation struct {
	symbol string
	// index of the placeholder command.
	index int
}

func CreateAssembler() *Assembler {
	return &Assembler{
		line:             1,
		labelLocationMap: map[string]int{},
	}
}

// Assemble is a shortcut to assemble source with a new Assembler.
func Assemble(source string) ([]Command, error) {
	return CreateAssembler().Parse(strings.NewReader(source))
}

// Parse parses the input source which is a sequence of assembler code, and transfers
// them into a sequence of binary code supported by hack computer of nand2tetris. The returned
// value is a command array where each element is a machine instruction.
func (asm *Assembler) Parse(rd io.Reader) ([]Command, error) {
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		line, hasRemainCharacter := asm.trimLine(scanner.Text())
		if hasRemainCharacter {
			if err := asm.transformLine(line); err != nil {
				return nil, err
			}
		}
		asm.line++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := asm.resolveSymbols(); err != nil {
		return nil, err
	}
	return asm.commands, nil
}

// resolveSymbols updates those @label or @variable commands. because those commands point to
// an address which we don't know before all label declarations are parsed. we resolve those commands at
// last.
func (asm *Assembler) resolveSymbols() error {
	variableMemAddrMap := map[string]int{}
	nextVariableAddr := firstVariableAddr
	for _, location := range asm.symbolLocations {
		command := &asm.commands[location.index]
		if labelAddr, exist := asm.labelLocationMap[location.symbol]; exist {
			command.Tp = ACommand_Label
			command.Code = formatCode(labelAddr)
			continue
		}
		addr, exist := variableMemAddrMap[location.symbol]
		if !exist {
			if nextVariableAddr > lastVariableAddr {
				return makeSyntaxErr(command.Line, "too many variables")
			}
			addr = nextVariableAddr
			variableMemAddrMap[location.symbol] = addr
			nextVariableAddr++
		}
		command.Tp = ACommand_Variable
		command.Code = formatCode(addr)
	}
	return nil
}

// trimLine will remove space from line, also remove comments if it has, then return whether those line has other characters after trimmed.
func (asm *Assembler) trimLine(line string) (string, bool) {
	if index := strings.Index(line, "//"); index != -1 {
		line = line[:index]
	}
	line = strings.TrimSpace(line)
	return line, len(line) > 0
}

func (asm *Assembler) transformLine(line string) error {
	switch line[0] {
	case '@':
		return asm.transformACommand(line)
	case '(':
		return asm.transformLabelCommand(line)
	default:
		return asm.transformCCommand(line)
	}
}

var symbolFormat = regexp.MustCompile(`^[a-zA-Z_.$:][0-9a-zA-Z_.$:]*$`)

func (asm *Assembler) transformACommand(line string) error {
	value := line[1:]
	if len(value) == 0 {
		return makeSyntaxErr(asm.line, "missing A command value")
	}
	if value[0] >= '0' && value[0] <= '9' {
		return asm.transformADecimalCommand(line)
	}
	if addr, exist := predefinedSymbols[value]; exist {
		asm.commands = append(asm.commands, Command{
			Tp:              ACommand_Variable,
			Code:            formatCode(addr),
			Line:            asm.line,
			OriginalContent: line,
		})
		return nil
	}
	if !symbolFormat.MatchString(value) {
		return makeSyntaxErr(asm.line, "wrong variable or label format")
	}
	// Put it to commands as a placeholder, it's resolved once all labels are known.
	asm.symbolLocations = append(asm.symbolLocations, symbolLocation{
		symbol: value,
		index:  len(asm.commands),
	})
	asm.commands = append(asm.commands, Command{
		Tp:              ACommand_Label,
		Code:            value,
		Line:            asm.line,
		OriginalContent: line,
	})
	return nil
}

func (asm *Assembler) transformADecimalCommand(line string) error {
	value, err := strconv.Atoi(line[1:])
	if err != nil || value > maxAddress {
		return makeSyntaxErr(asm.line, "wrong decimal value format")
	}
	asm.commands = append(asm.commands, Command{
		Tp:              ACommand_Constant,
		Code:            formatCode(value),
		Line:            asm.line,
		OriginalContent: line,
	})
	return nil
}

// transformLabelCommand after we recognize the current command is a label command.
// A label command is like '(label)', after we parse a label command, we remember the address
// of the next instruction for it.
func (asm *Assembler) transformLabelCommand(line string) error {
	if line[len(line)-1] != ')' {
		return makeSyntaxErr(asm.line, "wrong label format")
	}
	// We dont allow a label contains space. for example, ( hello ) is not allowed.
	label := line[1 : len(line)-1]
	if !symbolFormat.MatchString(label) {
		return makeSyntaxErr(asm.line, "wrong label format")
	}
	if _, exist := predefinedSymbols[label]; exist {
		return makeSyntaxErr(asm.line, "label shadows predefined symbol")
	}
	if _, exist := asm.labelLocationMap[label]; exist {
		return makeSyntaxErr(asm.line, "found duplicate label")
	}
	asm.labelLocationMap[label] = len(asm.commands)
	return nil
}

// transformCCommand after we recognize the current command is a C command.
// A C command supports: dest=comp;jump
func (asm *Assembler) transformCCommand(line string) error {
	destCodeStr, rest, err := asm.parseCCommandDestCode(line)
	if err != nil {
		return err
	}
	jumpCodeStr, rest, err := asm.parseCCommandJumpCode(rest)
	if err != nil {
		return err
	}
	compCodeStr, err := asm.parseCCommandCompCode(rest)
	if err != nil {
		return err
	}
	asm.commands = append(asm.commands, Command{
		Tp:              CCommand,
		Code:            "111" + compCodeStr + destCodeStr + jumpCodeStr,
		Line:            asm.line,
		OriginalContent: line,
	})
	return nil
}

func (asm *Assembler) parseCCommandDestCode(line string) (string, string, error) {
	dest := strings.IndexByte(line, '=')
	if dest == -1 {
		return "000", line, nil
	}
	destCodeStr, exist := cCommandDestMap[line[:dest]]
	if !exist {
		return "", "", makeSyntaxErr(asm.line, fmt.Sprintf("wrong c command of dest code format near %s", line))
	}
	return destCodeStr, line[dest+1:], nil
}

func (asm *Assembler) parseCCommandJumpCode(line string) (string, string, error) {
	comp := strings.IndexByte(line, ';')
	if comp == -1 {
		return "000", line, nil
	}
	jumpCodeStr, exist := cCommandJumpMap[line[comp+1:]]
	if !exist {
		return "", "", makeSyntaxErr(asm.line, fmt.Sprintf("wrong c command of jump code format near %s", line))
	}
	return jumpCodeStr, line[:comp], nil
}

func (asm *Assembler) parseCCommandCompCode(line string) (string, error) {
	compCodeStr, exist := cCommandCompMap[line]
	if !exist {
		return "", makeSyntaxErr(asm.line, fmt.Sprintf("wrong c command of comp code format near %s", line))
	}
	return compCodeStr, nil
}

// formatCode transfers the addr to binary code format
func formatCode(addr int) string {
	var code [16]byte
	for j := 15; j >= 0; j-- {
		code[j] = byte(addr&1) + '0'
		addr >>= 1
	}
	return string(code[:])
}

func makeSyntaxErr(line int, msg string) error {
	return fmt.Errorf("syntax err at line %d: %s", line, msg)
}

// WriteHack writes one binary instruction per line, the .hack file format.
func WriteHack(w io.Writer, commands []Command) error {
	bw := bufio.NewWriter(w)
	for _, command := range commands {
		if _, err := fmt.Fprintln(bw, command.Code); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Words returns the machine code of commands.
func Words(commands []Command) []uint16 {
	ret := make([]uint16, len(commands))
	for i, command := range commands {
		ret[i] = command.Word()
	}
	return ret
}

package assembler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCode(t *testing.T) {
	testData := []struct {
		addr int
		code string
	}{
		{0, "0000000000000000"},
		{1, "0000000000000001"},
		{2, "0000000000000010"},
		{16, "0000000000010000"},
		{32767, "0111111111111111"},
		{-1, "1111111111111111"},
		{-2, "1111111111111110"},
	}
	for _, data := range testData {
		assert.Equal(t, data.code, formatCode(data.addr))
	}
}

func TestTransformCCommand(t *testing.T) {
	asm := CreateAssembler()
	type code struct {
		assembleCode string
		binaryCode   string
	}
	dest := []code{
		{assembleCode: "", binaryCode: "000"},
		{assembleCode: "M", binaryCode: "001"},
		{assembleCode: "D", binaryCode: "010"},
		{assembleCode: "MD", binaryCode: "011"},
		{assembleCode: "A", binaryCode: "100"},
		{assembleCode: "AM", binaryCode: "101"},
		{assembleCode: "AD", binaryCode: "110"},
		{assembleCode: "AMD", binaryCode: "111"},
	}
	comp := []code{
		{assembleCode: "0", binaryCode: "0101010"},
		{assembleCode: "1", binaryCode: "0111111"},
		{assembleCode: "-1", binaryCode: "0111010"},
		{assembleCode: "D", binaryCode: "0001100"},
		{assembleCode: "A", binaryCode: "0110000"},
		{assembleCode: "!D", binaryCode: "0001101"},
		{assembleCode: "!A", binaryCode: "0110001"},
		{assembleCode: "-D", binaryCode: "0001111"},
		{assembleCode: "-A", binaryCode: "0110011"},
		{assembleCode: "D+1", binaryCode: "0011111"},
		{assembleCode: "A+1", binaryCode: "0110111"},
		{assembleCode: "D-1", binaryCode: "0001110"},
		{assembleCode: "A-1", binaryCode: "0110010"},
		{assembleCode: "D+A", binaryCode: "0000010"},
		{assembleCode: "D-A", binaryCode: "0010011"},
		{assembleCode: "A-D", binaryCode: "0000111"},
		{assembleCode: "D&A", binaryCode: "0000000"},
		{assembleCode: "D|A", binaryCode: "0010101"},

		{assembleCode: "M", binaryCode: "1110000"},
		{assembleCode: "!M", binaryCode: "1110001"},
		{assembleCode: "-M", binaryCode: "1110011"},
		{assembleCode: "M+1", binaryCode: "1110111"},
		{assembleCode: "M-1", binaryCode: "1110010"},
		{assembleCode: "D+M", binaryCode: "1000010"},
		{assembleCode: "D-M", binaryCode: "1010011"},
		{assembleCode: "M-D", binaryCode: "1000111"},
		{assembleCode: "D&M", binaryCode: "1000000"},
		{assembleCode: "D|M", binaryCode: "1010101"},
	}
	jump := []code{
		{assembleCode: "", binaryCode: "000"},
		{assembleCode: "JGT", binaryCode: "001"},
		{assembleCode: "JEQ", binaryCode: "010"},
		{assembleCode: "JGE", binaryCode: "011"},
		{assembleCode: "JLT", binaryCode: "100"},
		{assembleCode: "JNE", binaryCode: "101"},
		{assembleCode: "JLE", binaryCode: "110"},
		{assembleCode: "JMP", binaryCode: "111"},
	}
	preCode := "111"
	for _, destCode := range dest {
		temp1 := destCode.assembleCode
		if temp1 != "" {
			temp1 = temp1 + "="
		}
		for _, compCode := range comp {
			temp2 := temp1
			temp2 = temp2 + compCode.assembleCode
			for _, jumpCode := range jump {
				temp3 := temp2
				if jumpCode.assembleCode != "" {
					temp3 = temp3 + ";"
				}
				temp3 = temp3 + jumpCode.assembleCode
				require.NoError(t, asm.transformCCommand(temp3), temp3)
				assert.Equal(t, CCommand, asm.commands[len(asm.commands)-1].Tp, temp3)
				assert.Equal(t, preCode+compCode.binaryCode+
					destCode.binaryCode+jumpCode.binaryCode,
					asm.commands[len(asm.commands)-1].Code, temp3)
			}
		}
	}
}

func TestTransformLabelCommand(t *testing.T) {
	asm := CreateAssembler()
	assert.NotNil(t, asm.transformLabelCommand("(5shsl)"))
	assert.NotNil(t, asm.transformLabelCommand("(hello"))
	assert.NotNil(t, asm.transformLabelCommand("( hello )"))
	assert.NotNil(t, asm.transformLabelCommand("(SP)"))
	line := "(hel4lo._)"
	assert.Nil(t, asm.transformLabelCommand(line))
	assert.NotNil(t, asm.transformLabelCommand(line))
	assert.Nil(t, asm.transformLabelCommand("(Main.main$ret.0)"))
}

func TestTransformADecimalCommand(t *testing.T) {
	asm := CreateAssembler()
	assert.Nil(t, asm.transformADecimalCommand("@10"))
	assert.Equal(t, ACommand_Constant, asm.commands[0].Tp)
	assert.Equal(t, "0000000000001010", asm.commands[0].Code)
	assert.Nil(t, asm.transformADecimalCommand("@32767"))
	assert.Equal(t, "0111111111111111", asm.commands[1].Code)
	assert.NotNil(t, asm.transformADecimalCommand("@32768"))
	assert.NotNil(t, asm.transformADecimalCommand("@1x"))
}

func TestTransformACommand(t *testing.T) {
	asm := CreateAssembler()
	assert.Nil(t, asm.transformACommand("@R13"))
	assert.Equal(t, ACommand_Variable, asm.commands[0].Tp)
	assert.Equal(t, "0000000000001101", asm.commands[0].Code)
	assert.Nil(t, asm.transformACommand("@Foo.3"))
	assert.Equal(t, []symbolLocation{{symbol: "Foo.3", index: 1}}, asm.symbolLocations)
	assert.NotNil(t, asm.transformACommand("@"))
	assert.NotNil(t, asm.transformACommand("@a-b"))
}

func TestAssembler_IntegrationTest(t *testing.T) {
	contents := `
// set M[11] = 10 + M[11]
@10
D=A
@11
M=M+D
@2
D=A // welcome
@i
M=D
@10
D=A
@j
M=D


// Loop M[11] = M[11] - 2 until M[11] < 0
(LOOP)
@i
D=A
@11
M=M-D // hello
@11
D=M
@END
D;JLT
@LOOP
0;JMP

(END)
@END
0;JMP`
	asm := CreateAssembler()
	commands, err := asm.Parse(bytes.NewReader([]byte(contents)))
	require.NoError(t, err)
	// The last line has no newline and must not be lost.
	require.Len(t, commands, 24)
	// i and j are variables at 16 and 17.
	assert.Equal(t, ACommand_Variable, commands[6].Tp)
	assert.Equal(t, uint16(16), commands[6].Word())
	assert.Equal(t, uint16(17), commands[10].Word())
	assert.Equal(t, uint16(16), commands[12].Word())
	// LOOP is declared before instruction 12, END before instruction 22.
	assert.Equal(t, ACommand_Label, commands[20].Tp)
	assert.Equal(t, uint16(22), commands[18].Word())
	assert.Equal(t, uint16(12), commands[20].Word())
	assert.Equal(t, uint16(22), commands[22].Word())
	assert.Equal(t, "1110001100000100", commands[19].Code)
}

func TestAssemble_Errors(t *testing.T) {
	for _, source := range []string{
		"D=Q",
		"X=D",
		"0;JXX",
		"@!bad",
		"(LOOP)\n(LOOP)",
	} {
		_, err := Assemble(source)
		assert.Error(t, err, source)
	}
}

func TestWriteHack(t *testing.T) {
	commands, err := Assemble("@2\nD=A\n")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteHack(buf, commands))
	assert.Equal(t, "0000000000000010\n1110110000010000\n", buf.String())
	assert.Equal(t, []uint16{2, 0xEC10}, Words(commands))
}

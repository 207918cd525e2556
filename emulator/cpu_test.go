package emulator_test

import (
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/xiaobogaga/hackvm/assembler"
	"github.com/xiaobogaga/hackvm/emulator"
)

func load(cpu *emulator.CPU, source string) {
	commands, err := assembler.Assemble(source)
	Expect(err).NotTo(HaveOccurred())
	Expect(cpu.Load(assembler.Words(commands))).To(Succeed())
}

var _ = Describe("CPU", func() {
	var cpu *emulator.CPU

	BeforeEach(func() {
		cpu = emulator.New()
	})

	Context("A instructions", func() {
		It("should load the value into A", func() {
			load(cpu, "@1234")
			Expect(cpu.Step()).To(Succeed())
			Expect(cpu.A).To(Equal(int16(1234)))
			Expect(cpu.PC).To(Equal(1))
			Expect(cpu.Halted()).To(BeTrue())
		})
	})

	Context("C instructions", func() {
		It("should compute with D and M", func() {
			cpu.Poke(100, 7)
			load(cpu, "@5\nD=A\n@100\nM=M-D\nD=D+M\nMD=-D\nAM=M+1")
			_, err := cpu.Run(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(cpu.Peek(100)).To(Equal(int16(-6)))
			Expect(cpu.D).To(Equal(int16(-7)))
			Expect(cpu.A).To(Equal(int16(-6)))
		})

		DescribeTable("ALU functions",
			func(comp string, d, m, expected int16) {
				cpu.Poke(0, m)
				load(cpu, "@0\nD=M\n@"+strconv.Itoa(int(d))+"\nD=A\n@0\nD="+comp)
				_, err := cpu.Run(10)
				Expect(err).NotTo(HaveOccurred())
				Expect(cpu.D).To(Equal(expected))
			},
			Entry("0", "0", int16(3), int16(9), int16(0)),
			Entry("1", "1", int16(3), int16(9), int16(1)),
			Entry("-1", "-1", int16(3), int16(9), int16(-1)),
			Entry("!D", "!D", int16(3), int16(9), int16(-4)),
			Entry("-M", "-M", int16(3), int16(9), int16(-9)),
			Entry("D+1", "D+1", int16(3), int16(9), int16(4)),
			Entry("M-1", "M-1", int16(3), int16(9), int16(8)),
			Entry("D-M", "D-M", int16(3), int16(9), int16(-6)),
			Entry("M-D", "M-D", int16(3), int16(9), int16(6)),
			Entry("D&M", "D&M", int16(3), int16(9), int16(1)),
			Entry("D|M", "D|M", int16(3), int16(9), int16(11)),
			Entry("D|A", "D|A", int16(3), int16(9), int16(3)),
		)

		It("should jump on the sign of the result", func() {
			load(cpu, "@3\nD=A\n@SKIP\nD;JGT\n@1\nM=1\n(SKIP)\n@2\nM=1")
			_, err := cpu.Run(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(cpu.Peek(1)).To(Equal(int16(0)))
			Expect(cpu.Peek(2)).To(Equal(int16(1)))
		})

		It("should not jump when the condition is false", func() {
			load(cpu, "@0\nD=A\n@SKIP\nD;JNE\n@1\nM=1\n(SKIP)\n@2\nM=1")
			_, err := cpu.Run(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(cpu.Peek(1)).To(Equal(int16(1)))
		})
	})

	Context("halting", func() {
		It("should stop in the idle loop", func() {
			load(cpu, "@7\nD=A\n(END)\n@END\n0;JMP")
			steps, err := cpu.Run(1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(steps).To(Equal(4))
			Expect(cpu.Halted()).To(BeTrue())
		})

		It("should stop after max steps in a longer loop", func() {
			load(cpu, "(LOOP)\n@0\nM=M+1\n@LOOP\n0;JMP")
			steps, err := cpu.Run(400)
			Expect(err).NotTo(HaveOccurred())
			Expect(steps).To(Equal(400))
			Expect(cpu.Halted()).To(BeFalse())
			Expect(cpu.Peek(0)).To(Equal(int16(100)))
		})
	})

	Context("errors", func() {
		It("should reject addresses past the keyboard", func() {
			load(cpu, "@30000\nM=1")
			_, err := cpu.Run(10)
			Expect(err).To(MatchError(emulator.ErrAddressRange))
		})

		It("should reject programs larger than the rom", func() {
			Expect(cpu.Load(make([]uint16, emulator.ROMSize+1))).To(MatchError(emulator.ErrProgramTooLarge))
		})
	})
})

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xiaobogaga/hackvm/assembler"
	"github.com/xiaobogaga/hackvm/emulator"
	"github.com/xiaobogaga/hackvm/vmtranslator/internal"
)

type options struct {
	configPath string
	bootstrap  string
	strict     bool
	comments   bool
	parallel   int
	logLevel   string
	logFormat  string

	output  string
	verbose bool
	hack    bool

	steps int
	depth int
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "vmtranslator <path>",
		Short: "Translate hack vm code to hack assembler code",
		Long: `Vmtranslator translates a .vm file, or every .vm file of a directory, to a
single hack assembler file. A file Foo.vm is written to Foo.asm next to it, a
directory Prog to Prog/Prog.asm. Static variables of each file are named after
the file, so file names must be unique within a program.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, opts, args[0])
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "yaml config file")
	flags.StringVar(&opts.bootstrap, "bootstrap", string(internal.BootstrapAuto), "write bootstrap code: auto, always or never")
	flags.BoolVar(&opts.strict, "strict", false, "fail on lines that are not vm commands instead of skipping them")
	flags.BoolVar(&opts.comments, "comments", false, "annotate the output with the vm commands")
	flags.IntVar(&opts.parallel, "parallel", 0, "max files translated at once, 0 for no limit")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	root.Flags().StringVarP(&opts.output, "output", "o", "", "the saved path, defaults to <name>.asm")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print the translate result")
	root.Flags().BoolVar(&opts.hack, "hack", false, "also assemble the result to <name>.hack")

	root.AddCommand(newRunCommand(opts))
	return root
}

func newRunCommand(opts *options) *cobra.Command {
	run := &cobra.Command{
		Use:   "run <path>",
		Short: "Translate, assemble and execute vm code on the hack emulator",
		Long: `Run translates the vm code at path, assembles it and executes it until the
program halts or the step limit is reached, then prints the registers, the
temp segment and the top of the stack. Before running, SP, LCL, ARG, THIS and
THAT are set to 256, 300, 400, 3000 and 3010; bootstrap code overrides them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(cmd, opts, args[0])
		},
	}
	run.Flags().IntVar(&opts.steps, "steps", 1000000, "max instructions to execute")
	run.Flags().IntVar(&opts.depth, "depth", 8, "stack entries to print")
	return run
}

// loadConfig starts from the config file, if any, and applies the flags set
// on the command line.
func loadConfig(cmd *cobra.Command, opts *options) (internal.Config, error) {
	config := internal.DefaultConfig()
	if opts.configPath != "" {
		var err error
		config, err = internal.LoadConfig(opts.configPath)
		if err != nil {
			return config, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("bootstrap") {
		config.Bootstrap = internal.BootstrapMode(opts.bootstrap)
	}
	if flags.Changed("strict") {
		config.Strict = opts.strict
	}
	if flags.Changed("comments") {
		config.Comments = opts.comments
	}
	if flags.Changed("parallel") {
		config.Parallel = opts.parallel
	}
	if flags.Changed("log-level") {
		config.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		config.LogFormat = opts.logFormat
	}
	return config, config.Validate()
}

func translate(cmd *cobra.Command, opts *options, path string) (*program, string, *slog.Logger, error) {
	config, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, "", nil, err
	}
	logger, err := internal.NewLogger(cmd.ErrOrStderr(), config)
	if err != nil {
		return nil, "", nil, err
	}
	prog, err := readProgram(path)
	if err != nil {
		return nil, "", nil, err
	}
	translator := internal.NewTranslator(config, logger)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	asm, err := translator.TranslateProgram(ctx, prog.units)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to translate program: %s, err: %w", path, err)
	}
	return prog, asm, logger, nil
}

func runTranslate(cmd *cobra.Command, opts *options, path string) error {
	prog, asm, logger, err := translate(cmd, opts, path)
	if err != nil {
		return err
	}
	if opts.verbose {
		fmt.Fprint(cmd.OutOrStdout(), asm)
	}
	output := opts.output
	if output == "" {
		output = prog.outputBase + asmExt
	}
	if err := saveTo(output, []byte(asm)); err != nil {
		return fmt.Errorf("failed to save to path: %s, err: %w", output, err)
	}
	logger.Info("saved assembler code", "path", output, "modules", len(prog.units))
	if !opts.hack {
		return nil
	}
	commands, err := assembler.Assemble(asm)
	if err != nil {
		return fmt.Errorf("failed to assemble %s: %w", output, err)
	}
	buf := &bytes.Buffer{}
	if err := assembler.WriteHack(buf, commands); err != nil {
		return err
	}
	hackPath := strings.TrimSuffix(output, asmExt) + hackExt
	if err := saveTo(hackPath, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save to path: %s, err: %w", hackPath, err)
	}
	logger.Info("saved machine code", "path", hackPath, "instructions", len(commands))
	return nil
}

func runExecute(cmd *cobra.Command, opts *options, path string) error {
	_, asm, logger, err := translate(cmd, opts, path)
	if err != nil {
		return err
	}
	commands, err := assembler.Assemble(asm)
	if err != nil {
		return fmt.Errorf("failed to assemble %s: %w", path, err)
	}
	cpu := emulator.New()
	if err := cpu.Load(assembler.Words(commands)); err != nil {
		return err
	}
	for i, value := range []int16{internal.StackBase, 300, 400, 3000, 3010} {
		cpu.Poke(i, value)
	}
	steps, err := cpu.Run(opts.steps)
	if err != nil {
		return fmt.Errorf("execution stopped after %d steps: %w", steps, err)
	}
	logger.Info("executed program", "steps", steps, "halted", cpu.Halted())
	return writeReport(cmd.OutOrStdout(), cpu, opts.depth)
}

func writeReport(w io.Writer, cpu *emulator.CPU, depth int) error {
	_, err := io.WriteString(w, renderReport(cpu, depth))
	return err
}

// Command lc3asm assembles LC-3 assembly source into object code.
//
// The command is a thin driver: it opens files, selects an output format, and prints
// diagnostics. The assembly itself lives in internal/asm.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anvil-systems/lc3asm/internal/asm"
	"github.com/anvil-systems/lc3asm/internal/config"
	"github.com/anvil-systems/lc3asm/internal/encoding"
	"github.com/anvil-systems/lc3asm/internal/log"
	"github.com/anvil-systems/lc3asm/internal/vm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type driverFlags struct {
	output     string
	format     string
	configPath string
	debug      bool
	symbols    bool
	requireEnd bool
}

func newRootCommand() *cobra.Command {
	flags := driverFlags{}

	cmd := &cobra.Command{
		Use:          "lc3asm FILE",
		Short:        "assemble an LC-3 program",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: input with .obj or .hex extension)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "object format: raw or hex (default: from config)")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "configuration file (default: "+config.Path()+")")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&flags.symbols, "symbols", false, "print the symbol table after assembly")
	cmd.Flags().BoolVar(&flags.requireEnd, "require-end", false, "treat a missing .END directive as an error")

	return cmd
}

func run(cmd *cobra.Command, flags driverFlags, input string) error {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}

	if flags.debug || cfg.Log.Debug {
		log.Verbosity.Set(log.Debug)
	}

	logger := log.DefaultLogger()

	format := cfg.Output.Format
	if flags.format != "" {
		format = flags.format
	}

	if format != config.FormatRaw && format != config.FormatHex {
		return fmt.Errorf("unknown format %q", format)
	}

	opts := asm.Options{RequireEnd: flags.requireEnd || cfg.Strictness.RequireEnd}

	sink := &asm.SliceSink{}

	summary, err := asm.AssembleWith(&fileSource{path: input}, sink, opts)
	if err != nil {
		return err
	}

	logger.Debug("assembled", log.String("file", input),
		log.Int("words", summary.Words), log.String("origin", summary.Origin.String()))

	output := flags.output
	if output == "" {
		output = outputPath(input, format)
	}

	if err := writeObject(output, format, sink.Words); err != nil {
		return err
	}

	if flags.symbols {
		printSymbols(cmd, summary)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d words at %s\n", output, summary.Words, summary.Origin)

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}

	return config.Load()
}

// outputPath derives the object file name from the source file name: prog.asm becomes prog.obj,
// or prog.hex for Intel Hex output.
func outputPath(input, format string) string {
	base := strings.TrimSuffix(input, ".asm")

	if format == config.FormatHex {
		return base + ".hex"
	}

	return base + ".obj"
}

// writeObject writes assembled words -- origin first -- to path. Assembly has already succeeded
// by the time this runs, so a partially written file can only result from an I/O failure.
func writeObject(path, format string, words []vm.Word) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch format {
	case config.FormatHex:
		sink := encoding.NewHexSink(file, words[0])
		for _, w := range words[1:] {
			if err := sink.WriteWord(w); err != nil {
				return err
			}
		}

		return sink.Close()

	default:
		sink := asm.NewBinarySink(file)
		for _, w := range words {
			if err := sink.WriteWord(w); err != nil {
				return err
			}
		}

		return nil
	}
}

func printSymbols(cmd *cobra.Command, summary asm.Summary) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "symbol           address")

	for _, name := range summary.Symbols.Names() {
		addr, _ := summary.Symbols.Lookup(name)
		fmt.Fprintf(out, "%-16s %s\n", name, addr)
	}
}

// fileSource adapts a file on disk to asm.LineProvider.
type fileSource struct {
	path string
}

func (f *fileSource) Lines() ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, scanner.Err()
}

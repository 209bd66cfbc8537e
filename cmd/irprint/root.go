package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasm-ir/internal/irfile"
	"github.com/wippyai/wasm-ir/ir"
	"github.com/wippyai/wasm-ir/printer"
	"github.com/wippyai/wasm-ir/walker"
)

type options struct {
	color    string
	function string
	check    bool
	annotate bool
	verbose  bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "irprint [flags] FILE...",
		Short:         "Print IR module descriptions as canonical S-expressions",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.color {
			case "auto", "always", "never":
				return nil
			}
			return fmt.Errorf("invalid color mode %q: must be auto, always or never", opts.color)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = log.Sync() }()
			ir.SetLogger(log)
			walker.SetLogger(log)
			printer.SetLogger(log)

			out := cmd.OutOrStdout()
			for _, file := range args {
				if err := run(out, file, opts, log); err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.color, "color", "auto", "colorize output (auto|always|never)")
	flags.StringVar(&opts.function, "func", "", "print only the named function")
	flags.BoolVar(&opts.check, "check", false, "verify output is lint-clean and stable under an identity rewrite")
	flags.BoolVar(&opts.annotate, "annotate", false, "comment out unsupported expressions instead of failing")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func run(out io.Writer, file string, opts *options, log *zap.Logger) error {
	a := ir.NewArena()
	defer a.Release()

	m, err := irfile.LoadFile(file, a)
	if err != nil {
		return err
	}
	log.Debug("module loaded",
		zap.String("file", file),
		zap.Int("functions", len(m.Functions)),
		zap.Int("nodes", a.Len()))

	popts := printer.DefaultOptions()
	if opts.annotate {
		popts.OnUnsupported = printer.Annotate(log)
	}

	if opts.check {
		if err := check(a, m, popts); err != nil {
			return err
		}
	}

	popts.Decorator = decorator(out, opts.color)
	p := printer.New(a, popts)

	var text string
	if opts.function != "" {
		fn := m.GetFunction(ir.Name(opts.function))
		if fn == nil {
			return fmt.Errorf("function %q not found", opts.function)
		}
		text, err = p.Function(fn)
		text += "\n"
	} else {
		text, err = p.Module(m)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

// check prints every function, rewrites it with the identity visitor and
// prints it again. Both renderings must agree and pass Lint.
func check(a *ir.Arena, m *ir.Module, opts printer.Options) error {
	p := printer.New(a, opts)
	for _, fn := range m.Functions {
		before, err := p.Function(fn)
		if err != nil {
			return err
		}
		if err := printer.Lint(before); err != nil {
			return fmt.Errorf("function %s: %w", fn.Name, err)
		}
		walker.WalkFunction(a, fn, walker.Identity{})
		after, err := p.Function(fn)
		if err != nil {
			return err
		}
		if before != after {
			return fmt.Errorf("function %s: output changed after identity rewrite", fn.Name)
		}
	}
	return nil
}

func decorator(out io.Writer, mode string) printer.Decorator {
	switch mode {
	case "never":
		return printer.Plain
	case "always":
		r := lipgloss.NewRenderer(out)
		r.SetColorProfile(termenv.ANSI256)
		return printer.NewStyled(r)
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return printer.NewStyled(lipgloss.NewRenderer(out))
	}
	return printer.Plain
}

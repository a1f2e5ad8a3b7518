package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/njchilds90/mathsinterp"
)

// Context represents the global context for commands
type Context struct {
	Config  *mathsinterp.Config
	Interp  *mathsinterp.Interpreter
	Out     io.Writer
	Verbose bool
}

// CLI represents the command-line interface
var CLI struct {
	Config  string   `help:"Configuration file path" default:"mathsi.yaml"`
	Verbose bool     `help:"Enable verbose output" short:"v"`
	NoColor bool     `help:"Disable colored output"`
	Let     []string `help:"Assignments evaluated before the command, e.g. --let a=2" short:"l"`

	Eval    EvalCmd    `cmd:"" help:"Evaluate expressions and assignments in one session"`
	Solve   SolveCmd   `cmd:"" help:"Solve a linear equation in one unknown"`
	Diff    DiffCmd    `cmd:"" help:"Differentiate an expression symbolically"`
	Plot    PlotCmd    `cmd:"" help:"Sample an expression for plotting"`
	Tangent TangentCmd `cmd:"" help:"Tangent line to an expression at a point"`
	Vars    VarsCmd    `cmd:"" help:"List the variables bound with --let"`
	Repl    ReplCmd    `cmd:"" default:"1" help:"Start the interactive interpreter"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mathsi"),
		kong.Description("Evaluate, solve, differentiate and plot algebraic expressions."),
	)

	if CLI.NoColor {
		color.NoColor = true
	}

	appCtx, err := newContext(CLI.Config, CLI.Let, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	appCtx.Verbose = CLI.Verbose

	err = ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newContext(configPath string, lets []string, out io.Writer) (*Context, error) {
	config, err := mathsinterp.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ip := mathsinterp.New(config)
	for _, let := range lets {
		if _, err := ip.Evaluate(let); err != nil {
			return nil, fmt.Errorf("--let %q: %w", let, err)
		}
	}

	return &Context{Config: config, Interp: ip, Out: out}, nil
}

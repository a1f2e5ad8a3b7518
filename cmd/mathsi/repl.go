package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/njchilds90/mathsinterp"
	"github.com/peterh/liner"
)

const (
	promptMain = "mathsi> "
	banner     = "mathsi: type an expression, an assignment (x = 2) or an equation (2*x+4=0). :help for commands."
)

// ReplCmd represents the interactive interpreter
type ReplCmd struct{}

// Run executes the repl command
func (cmd *ReplCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Out, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completer)

	histPath := ctx.Config.HistoryFile
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(ctx.Out)
				break
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if done := handleReplCommand(ctx, line); done {
				break
			}
			continue
		}

		out, err := evaluateLine(ctx.Interp, line)
		if err != nil {
			printError(ctx.Out, err)
			continue
		}
		printResult(ctx.Out, out)
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return nil
}

// handleReplCommand handles :help, :quit, :vars, :clear, :solve, :diff, :latex, :plot,
// :tangent and :tokens. It reports whether the REPL should exit.
func handleReplCommand(ctx *Context, line string) (exit bool) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	w := ctx.Out
	ip := ctx.Interp

	switch name {
	case ":q", ":quit", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprint(w, replHelp)
	case ":vars":
		printSymbols(w, ip.Symbols(), ctx.Config.Precision)
	case ":clear":
		ip.ClearSymbols()
		fmt.Fprintln(w, typeFmt("variables cleared"))
	case ":solve":
		sol, err := ip.Solve(rest)
		if err != nil {
			printError(w, err)
			return false
		}
		printResult(w, sol.Unknown+" = "+ip.Format(sol.Value))
	case ":diff", ":latex":
		d, err := ip.DerivativeExpr(rest, ctx.Config.Variable)
		if err != nil {
			printError(w, err)
			return false
		}
		if name == ":latex" {
			printResult(w, d.LaTeX())
		} else {
			printResult(w, d.String())
		}
	case ":plot":
		expr, d, err := parsePlotArgs(rest)
		if err != nil {
			printError(w, err)
			return false
		}
		points, err := ip.SamplePoints(expr, d)
		if err != nil {
			printError(w, err)
			return false
		}
		_ = printPoints(w, points, "table", ctx.Config.Precision)
	case ":tangent":
		i := strings.LastIndex(rest, " ")
		if i < 0 {
			printError(w, errors.New("usage: :tangent EXPR X0"))
			return false
		}
		x0, err := strconv.ParseFloat(rest[i+1:], 64)
		if err != nil {
			printError(w, fmt.Errorf("invalid point %q", rest[i+1:]))
			return false
		}
		t, err := ip.Tangent(strings.TrimSpace(rest[:i]), x0)
		if err != nil {
			printError(w, err)
			return false
		}
		printResult(w, formatTangent(ctx, t))
	case ":tokens":
		tokens, err := mathsinterp.Tokenize(rest)
		if err != nil {
			printError(w, err)
			return false
		}
		for _, tok := range tokens {
			fmt.Fprintf(w, "%4d  %s\n", tok.Pos, tok)
		}
	case ":color":
		color.NoColor = !color.NoColor
	default:
		printError(w, fmt.Errorf("unknown command %s (try :help)", name))
	}
	return false
}

// parsePlotArgs splits ":plot EXPR[, MIN, MAX[, STEP]]". Commas never occur inside an
// expression, so they separate the bounds unambiguously.
func parsePlotArgs(rest string) (string, mathsinterp.Domain, error) {
	d := mathsinterp.Auto()
	parts := strings.Split(rest, ",")
	expr := strings.TrimSpace(parts[0])
	if expr == "" || len(parts) == 2 || len(parts) > 4 {
		return "", d, errors.New("usage: :plot EXPR[, MIN, MAX[, STEP]]")
	}

	nums := make([]float64, 0, 3)
	for _, part := range parts[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return "", d, fmt.Errorf("invalid plot bound %q", strings.TrimSpace(part))
		}
		nums = append(nums, v)
	}
	if len(nums) >= 2 {
		d.Min, d.Max = nums[0], nums[1]
	}
	if len(nums) == 3 {
		d.Step = nums[2]
	}
	return expr, d, nil
}

func completer(line string) []string {
	var out []string
	for _, c := range []string{":help", ":quit", ":vars", ":clear", ":solve ", ":diff ", ":latex ", ":plot ", ":tangent ", ":tokens ", ":color"} {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

const replHelp = `Input:
  EXPR              evaluate, e.g. 2+3*4, sin(pi/2)
  NAME = EXPR       assign, e.g. r = 2.5
  LHS = RHS         solve a linear equation, e.g. 2*x+4=0
Commands:
  :vars             list variables
  :clear            remove all variables
  :solve EQ         solve a linear equation
  :diff EXPR        derivative in the plot variable
  :latex EXPR       derivative as LaTeX
  :plot EXPR[, MIN, MAX[, STEP]]
                    sample points (range inferred when omitted)
  :tangent EXPR X0  tangent line at X0
  :tokens TEXT      show lexer output
  :color            toggle colored output
  :quit             exit
`

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/njchilds90/mathsinterp"
)

// EvalCmd represents the eval command
type EvalCmd struct {
	Exprs []string `arg:"" help:"Expressions or assignments, evaluated in order"`
}

// Run executes the eval command
func (cmd *EvalCmd) Run(ctx *Context) error {
	for _, text := range cmd.Exprs {
		out, err := evaluateLine(ctx.Interp, text)
		if err != nil {
			return err
		}
		printResult(ctx.Out, out)
	}
	if ctx.Verbose {
		printSymbols(ctx.Out, ctx.Interp.Symbols(), ctx.Config.Precision)
	}
	return nil
}

// SolveCmd represents the solve command
type SolveCmd struct {
	Equation string `arg:"" help:"Linear equation, e.g. '2*x+4=0'"`
}

// Run executes the solve command
func (cmd *SolveCmd) Run(ctx *Context) error {
	sol, err := ctx.Interp.Solve(cmd.Equation)
	if err != nil {
		return err
	}
	printResult(ctx.Out, sol.Unknown+" = "+ctx.Interp.Format(sol.Value))
	return nil
}

// DiffCmd represents the diff command
type DiffCmd struct {
	Expr  string `arg:"" help:"Expression to differentiate"`
	Var   string `help:"Variable to differentiate by (default from config)" short:"w"`
	Order int    `help:"Derivative order" default:"1" short:"n"`
	LaTeX bool   `help:"Print LaTeX instead of plain text" name:"latex"`
}

// Run executes the diff command
func (cmd *DiffCmd) Run(ctx *Context) error {
	if cmd.Order < 1 {
		return fmt.Errorf("invalid derivative order %d: must be at least 1", cmd.Order)
	}
	variable := cmd.Var
	if variable == "" {
		variable = ctx.Config.Variable
	}

	d, err := ctx.Interp.DerivativeExpr(cmd.Expr, variable)
	if err != nil {
		return err
	}
	if cmd.Order > 1 {
		if d, err = mathsinterp.DeriveN(d, variable, cmd.Order-1); err != nil {
			return err
		}
	}

	if cmd.LaTeX {
		printResult(ctx.Out, d.LaTeX())
	} else {
		printResult(ctx.Out, d.String())
	}
	return nil
}

// PlotCmd represents the plot command
type PlotCmd struct {
	Expr   string  `arg:"" help:"Expression in the plot variable, or 'y = f(x)'"`
	Min    float64 `help:"Lower bound (inferred when omitted)" default:"NaN"`
	Max    float64 `help:"Upper bound (inferred when omitted)" default:"NaN"`
	Step   float64 `help:"Sampling step (inferred when omitted)" default:"NaN"`
	Format string  `help:"Output format" enum:"table,csv,json" default:"table"`
}

// Run executes the plot command
func (cmd *PlotCmd) Run(ctx *Context) error {
	d := mathsinterp.Range(cmd.Min, cmd.Max, cmd.Step)
	if ctx.Verbose {
		resolved, err := ctx.Interp.ResolveDomain(cmd.Expr, d)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.Out, "Range: [%s, %s] step %s\n",
			mathsinterp.FormatNumber(resolved.Min), mathsinterp.FormatNumber(resolved.Max), mathsinterp.FormatNumber(resolved.Step))
	}

	points, err := ctx.Interp.SamplePoints(cmd.Expr, d)
	if err != nil {
		return err
	}
	return printPoints(ctx.Out, points, cmd.Format, ctx.Config.Precision)
}

// TangentCmd represents the tangent command
type TangentCmd struct {
	Expr string  `arg:"" help:"Expression in the plot variable"`
	X0   float64 `arg:"" help:"Point of tangency"`
}

// Run executes the tangent command
func (cmd *TangentCmd) Run(ctx *Context) error {
	t, err := ctx.Interp.Tangent(cmd.Expr, cmd.X0)
	if err != nil {
		return err
	}
	printResult(ctx.Out, formatTangent(ctx, t))
	return nil
}

// VarsCmd represents the vars command
type VarsCmd struct{}

// Run executes the vars command
func (cmd *VarsCmd) Run(ctx *Context) error {
	printSymbols(ctx.Out, ctx.Interp.Symbols(), ctx.Config.Precision)
	return nil
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Out, "mathsi v0.1.0")
	return nil
}

// evaluateLine evaluates a statement. A line holding a single '=' is retried as an
// equation when it is not a valid statement ("2*x+4=0") or when it assigns an unbound
// name in terms of itself ("x = 2*x - 3").
func evaluateLine(ip *mathsinterp.Interpreter, text string) (string, error) {
	v, err := ip.Evaluate(text)
	if err == nil {
		return ip.Format(v), nil
	}
	if strings.Count(text, "=") == 1 && (errors.Is(err, mathsinterp.ErrParse) || selfReference(text, err)) {
		sol, serr := ip.Solve(text)
		if serr != nil {
			return "", serr
		}
		return sol.Unknown + " = " + ip.Format(sol.Value), nil
	}
	return "", err
}

func selfReference(text string, err error) bool {
	var evalErr *mathsinterp.EvalError
	if !errors.As(err, &evalErr) || !errors.Is(err, mathsinterp.ErrUndefinedVariable) {
		return false
	}
	target, _, _ := strings.Cut(text, "=")
	return strings.TrimSpace(target) == evalErr.Name
}

func formatTangent(ctx *Context, t mathsinterp.Tangent) string {
	return fmt.Sprintf("y = %s  (slope %s, intercept %s at %s = %s)",
		t.Line(ctx.Config.Variable),
		ctx.Interp.Format(t.Slope),
		ctx.Interp.Format(t.Intercept),
		ctx.Config.Variable,
		ctx.Interp.Format(t.X0),
	)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

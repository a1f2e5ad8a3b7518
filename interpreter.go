package mathsinterp

import (
	"fmt"
	"sync"
)

// Interpreter is a session: a symbol table plus the operations a shell calls. All
// methods are safe for concurrent use; each call holds the session lock for its
// duration, so the table has at most one writer at a time.
type Interpreter struct {
	mu      sync.Mutex
	symbols *SymbolTable
	config  *Config
}

// New returns an interpreter with an empty symbol table. A nil config uses the defaults.
func New(config *Config) *Interpreter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Interpreter{symbols: NewSymbolTable(), config: config}
}

// Config returns the session configuration.
func (ip *Interpreter) Config() *Config { return ip.config }

// Evaluate parses and evaluates one statement. An assignment binds its target and
// returns the assigned value. On failure the symbol table is unchanged.
func (ip *Interpreter) Evaluate(text string) (result float64, err error) {
	defer recoverInto(&err)
	stmt, err := ParseString(text)
	if err != nil {
		return 0, err
	}

	ip.mu.Lock()
	defer ip.mu.Unlock()
	return Exec(stmt, ip.symbols)
}

// Symbols lists the bindings in insertion order.
func (ip *Interpreter) Symbols() []Entry {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	return ip.symbols.List()
}

// ClearSymbols removes every binding.
func (ip *Interpreter) ClearSymbols() {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	ip.symbols.Clear()
}

// Solve solves a single-unknown linear equation. Bound variables are treated as known.
func (ip *Interpreter) Solve(text string) (sol Solution, err error) {
	defer recoverInto(&err)
	ip.mu.Lock()
	defer ip.mu.Unlock()
	return SolveLinear(text, ip.symbols)
}

// Differentiate returns the simplified derivative of text with respect to the configured
// variable, rendered as an expression string.
func (ip *Interpreter) Differentiate(text string) (string, error) {
	d, err := ip.DerivativeExpr(text, ip.config.Variable)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// DerivativeExpr returns the simplified derivative tree of text with respect to variable.
// A statement of the form "y = f(x)" differentiates f(x).
func (ip *Interpreter) DerivativeExpr(text, variable string) (d Expr, err error) {
	defer recoverInto(&err)
	stmt, err := ParseString(text)
	if err != nil {
		return nil, err
	}
	raw, err := Derive(stmt.Value, variable)
	if err != nil {
		return nil, err
	}
	return Simplify(raw), nil
}

// SamplePoints samples text over d in the configured variable. A statement of the form
// "y = f(x)" plots f(x) without binding y.
func (ip *Interpreter) SamplePoints(text string, d Domain) (points []Point, err error) {
	defer recoverInto(&err)
	stmt, err := ParseString(text)
	if err != nil {
		return nil, err
	}

	ip.mu.Lock()
	defer ip.mu.Unlock()
	return Sample(stmt.Value, ip.config.Variable, d, ip.symbols, ip.config.Plot), nil
}

// ResolveDomain reports the window and step SamplePoints would use for text and d.
func (ip *Interpreter) ResolveDomain(text string, d Domain) (out Domain, err error) {
	defer recoverInto(&err)
	stmt, err := ParseString(text)
	if err != nil {
		return Domain{}, err
	}

	ip.mu.Lock()
	defer ip.mu.Unlock()
	return d.Resolve(stmt.Value, ip.config.Variable, ip.symbols, ip.config.Plot), nil
}

// Tangent returns the tangent line to text at x0 in the configured variable.
func (ip *Interpreter) Tangent(text string, x0 float64) (t Tangent, err error) {
	defer recoverInto(&err)
	stmt, err := ParseString(text)
	if err != nil {
		return Tangent{}, err
	}

	ip.mu.Lock()
	defer ip.mu.Unlock()
	return TangentLine(stmt.Value, ip.config.Variable, x0, ip.symbols)
}

// Format renders a result with the configured display precision.
func (ip *Interpreter) Format(v float64) string { return FormatValue(v, ip.config.Precision) }

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("mathsinterp: internal error: %v", r)
	}
}

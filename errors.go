package mathsinterp

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the interpreter matches exactly one of
// these with errors.Is.
var (
	ErrLex             = errors.New("lex error")
	ErrParse           = errors.New("parse error")
	ErrEval            = errors.New("evaluation error")
	ErrSolve           = errors.New("solve error")
	ErrDifferentiation = errors.New("differentiation error")
)

var (
	// ErrUnexpectedChar is returned for input characters outside the accepted alphabet.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrMalformedNumber is returned for numbers with more than one decimal point.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrUnexpectedToken is returned when the grammar cannot accept the next token.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrUnbalancedParens is returned for a missing or extra parenthesis.
	ErrUnbalancedParens = errors.New("unbalanced parentheses")
	// ErrEmptyExpression is returned for blank input.
	ErrEmptyExpression = errors.New("empty expression")

	// ErrUndefinedVariable is returned when a name has no binding.
	ErrUndefinedVariable = errors.New("undefined variable")
	// ErrDivisionByZero is returned for x/0 and 0^-n.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrDomain is returned when a function is applied outside its real domain.
	ErrDomain = errors.New("domain error")
	// ErrNonFinite is returned when arithmetic overflows to an infinity.
	ErrNonFinite = errors.New("result is not finite")
	// ErrUnknownFunction is returned when evaluating a call to an unregistered function.
	ErrUnknownFunction = errors.New("unknown function")

	// Solver failures
	ErrNoEquals          = errors.New("equation has no '='")
	ErrMultipleEquals    = errors.New("equation has more than one '='")
	ErrNonLinear         = errors.New("equation is not linear in the unknown")
	ErrNoSolution        = errors.New("equation has no solution")
	ErrInfiniteSolutions = errors.New("equation has infinitely many solutions")
	ErrNoUnknown         = errors.New("equation has no unknown")
	ErrMultipleUnknowns  = errors.New("equation has more than one unknown")

	// ErrUnsupportedFunction is returned when no derivative rule exists for a function.
	ErrUnsupportedFunction = errors.New("unsupported function")
)

// LexError reports an input character the lexer cannot accept.
type LexError struct {
	Pos  int
	Char rune
	Err  error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %v %q at position %d", ErrLex, e.Err, e.Char, e.Pos+1)
}

func (e *LexError) Unwrap() []error { return []error{ErrLex, e.Err} }

// ParseError reports a grammar violation at a token.
type ParseError struct {
	Pos   int
	Token Token
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token.Kind == TokenEOF {
		return fmt.Sprintf("%s: %v at end of input", ErrParse, e.Err)
	}
	return fmt.Sprintf("%s: %v %s at position %d", ErrParse, e.Err, e.Token, e.Pos+1)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// EvalError reports a runtime failure. Name is the variable or function involved, if any.
type EvalError struct {
	Name string
	Err  error
}

func (e *EvalError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %v: %s", ErrEval, e.Err, e.Name)
	}
	return fmt.Sprintf("%s: %v", ErrEval, e.Err)
}

func (e *EvalError) Unwrap() []error { return []error{ErrEval, e.Err} }

// SolveError reports why an equation could not be reduced to a single solution.
type SolveError struct {
	Unknown string
	Err     error
}

func (e *SolveError) Error() string {
	if e.Unknown != "" {
		return fmt.Sprintf("%s: %v (unknown %s)", ErrSolve, e.Err, e.Unknown)
	}
	return fmt.Sprintf("%s: %v", ErrSolve, e.Err)
}

func (e *SolveError) Unwrap() []error { return []error{ErrSolve, e.Err} }

// DiffError reports a construct without a derivative rule.
type DiffError struct {
	Name string
	Err  error
}

func (e *DiffError) Error() string {
	return fmt.Sprintf("%s: %v: %s", ErrDifferentiation, e.Err, e.Name)
}

func (e *DiffError) Unwrap() []error { return []error{ErrDifferentiation, e.Err} }

func evalErr(err error, name string) error { return &EvalError{Name: name, Err: err} }

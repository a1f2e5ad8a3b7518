package mathsinterp

import (
	"math"
	"strconv"
	"strings"
)

// Binding strength used to decide parenthesization. Unary minus binds tighter than '^'
// because the grammar reads -x^2 as (-x)^2.
const (
	precAdd = iota + 1
	precMul
	precPow
	precUnary
	precAtom
)

func precedence(e Expr) int {
	switch v := e.(type) {
	case *Num:
		if v.Value < 0 || math.Signbit(v.Value) {
			return precUnary
		}
		return precAtom
	case *Sym, *Call:
		return precAtom
	case *Unary:
		return precUnary
	case *Binary:
		switch v.Op {
		case OpAdd, OpSub:
			return precAdd
		case OpMul, OpDiv:
			return precMul
		}
		return precPow
	}
	panic(unknownNode(e))
}

// FormatNumber renders a literal in the shortest form that parses back to the same float.
// Exponent notation is never used since the lexer has no syntax for it.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (n *Num) String() string  { return FormatNumber(n.Value) }
func (s *Sym) String() string  { return s.Name }
func (c *Call) String() string { return c.Name + "(" + c.Arg.String() + ")" }

func (u *Unary) String() string {
	x := u.X.String()
	if precedence(u.X) < precAtom {
		x = "(" + x + ")"
	}
	return u.Op.String() + x
}

func (b *Binary) String() string {
	l, r := b.Left.String(), b.Right.String()
	if b.leftNeedsParens() {
		l = "(" + l + ")"
	}
	if b.rightNeedsParens() {
		r = "(" + r + ")"
	}
	switch b.Op {
	case OpAdd, OpSub:
		return l + " " + b.Op.String() + " " + r
	}
	return l + b.Op.String() + r
}

func (b *Binary) leftNeedsParens() bool {
	p := precedence(b.Left)
	if b.Op == OpPow {
		return p < precAtom
	}
	return p < precedence(b)
}

func (b *Binary) rightNeedsParens() bool {
	p := precedence(b.Right)
	if b.Op == OpPow {
		_, isPow := b.Right.(*Binary)
		return p < precAtom && !(isPow && p == precPow)
	}
	return p <= precedence(b) || p == precUnary
}

// ============================================================
// LaTeX
// ============================================================

// LaTeX renders e as a LaTeX math fragment.
func LaTeX(e Expr) string { return e.LaTeX() }

func (n *Num) LaTeX() string { return FormatNumber(n.Value) }

func (s *Sym) LaTeX() string {
	switch s.Name {
	case "pi":
		return "\\pi"
	}
	return s.Name
}

func (u *Unary) LaTeX() string {
	x := u.X.LaTeX()
	if precedence(u.X) < precAtom {
		x = "\\left(" + x + "\\right)"
	}
	return "-" + x
}

func (b *Binary) LaTeX() string {
	if b.Op == OpDiv {
		return "\\frac{" + b.Left.LaTeX() + "}{" + b.Right.LaTeX() + "}"
	}
	l, r := b.Left.LaTeX(), b.Right.LaTeX()
	if b.leftNeedsParens() {
		l = "\\left(" + l + "\\right)"
	}
	switch b.Op {
	case OpPow:
		return l + "^{" + r + "}"
	case OpMul:
		if b.rightNeedsParens() {
			r = "\\left(" + r + "\\right)"
		}
		return l + " \\cdot " + r
	}
	if b.rightNeedsParens() {
		r = "\\left(" + r + "\\right)"
	}
	return l + " " + b.Op.String() + " " + r
}

func (c *Call) LaTeX() string {
	arg := c.Arg.LaTeX()
	switch c.Name {
	case "sqrt":
		return "\\sqrt{" + arg + "}"
	case "abs":
		return "\\left|" + arg + "\\right|"
	case "log":
		return "\\log_{10}\\left(" + arg + "\\right)"
	case "asin", "acos", "atan":
		return "\\arc" + strings.TrimPrefix(c.Name, "a") + "\\left(" + arg + "\\right)"
	case "sin", "cos", "tan", "sinh", "cosh", "tanh", "ln", "exp":
		return "\\" + c.Name + "\\left(" + arg + "\\right)"
	}
	return "\\operatorname{" + c.Name + "}\\left(" + arg + "\\right)"
}

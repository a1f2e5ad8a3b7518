package mathsinterp

// ============================================================
// Symbolic differentiation
// ============================================================

// derivRules maps a function name to the derivative of its outer function, evaluated at
// the (cloned) argument u. The chain rule factor u' is applied by Derive.
var derivRules = map[string]func(u Expr) Expr{
	"sin": func(u Expr) Expr { return CallOf("cos", u) },
	"cos": func(u Expr) Expr { return NegOf(CallOf("sin", u)) },
	"tan": func(u Expr) Expr { return DivOf(N(1), PowOf(CallOf("cos", u), N(2))) },
	"asin": func(u Expr) Expr {
		return DivOf(N(1), CallOf("sqrt", SubOf(N(1), PowOf(u, N(2)))))
	},
	"acos": func(u Expr) Expr {
		return NegOf(DivOf(N(1), CallOf("sqrt", SubOf(N(1), PowOf(u, N(2))))))
	},
	"atan": func(u Expr) Expr { return DivOf(N(1), AddOf(N(1), PowOf(u, N(2)))) },
	"sinh": func(u Expr) Expr { return CallOf("cosh", u) },
	"cosh": func(u Expr) Expr { return CallOf("sinh", u) },
	"tanh": func(u Expr) Expr { return SubOf(N(1), PowOf(CallOf("tanh", u), N(2))) },
	"sqrt": func(u Expr) Expr { return DivOf(N(1), MulOf(N(2), CallOf("sqrt", u))) },
	"ln":   func(u Expr) Expr { return DivOf(N(1), u) },
	"log":  func(u Expr) Expr { return DivOf(N(1), MulOf(u, CallOf("ln", N(10)))) },
	"exp":  func(u Expr) Expr { return CallOf("exp", u) },
	"abs":  func(u Expr) Expr { return DivOf(u, CallOf("abs", Clone(u))) },
}

// Derive returns the derivative of e with respect to variable. Names other than variable
// are constants. The result is unsimplified; pass it through Simplify for display. The
// input tree is not modified and shares no nodes with the result.
func Derive(e Expr, variable string) (Expr, error) {
	switch v := e.(type) {
	case *Num:
		return N(0), nil
	case *Sym:
		if v.Name == variable {
			return N(1), nil
		}
		return N(0), nil
	case *Unary:
		dx, err := Derive(v.X, variable)
		if err != nil {
			return nil, err
		}
		return NegOf(dx), nil
	case *Binary:
		return deriveBinary(v, variable)
	case *Call:
		rule, ok := derivRules[v.Name]
		if !ok {
			return nil, &DiffError{Name: v.Name, Err: ErrUnsupportedFunction}
		}
		du, err := Derive(v.Arg, variable)
		if err != nil {
			return nil, err
		}
		return MulOf(rule(Clone(v.Arg)), du), nil
	}
	panic(unknownNode(e))
}

func deriveBinary(b *Binary, variable string) (Expr, error) {
	u, v := b.Left, b.Right
	du, err := Derive(u, variable)
	if err != nil {
		return nil, err
	}
	dv, err := Derive(v, variable)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case OpAdd:
		return AddOf(du, dv), nil
	case OpSub:
		return SubOf(du, dv), nil
	case OpMul:
		// u'v + uv'
		return AddOf(MulOf(du, Clone(v)), MulOf(Clone(u), dv)), nil
	case OpDiv:
		// (u'v - uv') / v^2
		return DivOf(
			SubOf(MulOf(du, Clone(v)), MulOf(Clone(u), dv)),
			PowOf(Clone(v), N(2)),
		), nil
	case OpPow:
		if !DependsOn(v, variable) {
			// n * u^(n-1) * u'
			return MulOf(MulOf(Clone(v), PowOf(Clone(u), SubOf(Clone(v), N(1)))), du), nil
		}
		// u^v * (v' ln(u) + v u'/u)
		return MulOf(
			PowOf(Clone(u), Clone(v)),
			AddOf(
				MulOf(dv, CallOf("ln", Clone(u))),
				DivOf(MulOf(Clone(v), du), Clone(u)),
			),
		), nil
	}
	panic("mathsinterp: unknown operator " + b.Op.String())
}

// DeriveN applies Derive n times, simplifying between rounds.
func DeriveN(e Expr, variable string, n int) (Expr, error) {
	out := Clone(e)
	for i := 0; i < n; i++ {
		d, err := Derive(out, variable)
		if err != nil {
			return nil, err
		}
		out = Simplify(d)
	}
	return out, nil
}

// Clone returns a deep copy of e.
func Clone(e Expr) Expr {
	switch v := e.(type) {
	case *Num:
		return N(v.Value)
	case *Sym:
		return S(v.Name)
	case *Unary:
		return &Unary{Op: v.Op, X: Clone(v.X)}
	case *Binary:
		return &Binary{Op: v.Op, Left: Clone(v.Left), Right: Clone(v.Right)}
	case *Call:
		return CallOf(v.Name, Clone(v.Arg))
	}
	panic(unknownNode(e))
}

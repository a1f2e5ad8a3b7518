package mathsinterp

import "math"

// ============================================================
// Linear equation solver
// ============================================================

// Solution is the value of the unknown of a linear equation.
type Solution struct {
	Unknown string  `json:"unknown"`
	Value   float64 `json:"value"`
}

// linear is a*x + b in the unknown. deg is the structural degree, which stays 1 even
// when a cancels to zero, so 0*x reports "no solution" rather than "no unknown".
type linear struct {
	a, b float64
	deg  int
}

// SolveLinear solves an equation with exactly one '=' and one unknown. The unknown is the
// only variable not bound in env; when every variable is bound and a single name occurs,
// that name is the unknown.
func SolveLinear(input string, env Env) (Solution, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return Solution{}, err
	}

	split := -1
	for i, tok := range tokens {
		if !tok.IsOp('=') {
			continue
		}
		if split >= 0 {
			return Solution{}, &SolveError{Err: ErrMultipleEquals}
		}
		split = i
	}
	if split < 0 {
		return Solution{}, &SolveError{Err: ErrNoEquals}
	}

	lhsTokens := append(append([]Token{}, tokens[:split]...), Token{Kind: TokenEOF, Pos: tokens[split].Pos})
	lhs, err := ParseExpr(lhsTokens)
	if err != nil {
		return Solution{}, err
	}
	rhs, err := ParseExpr(tokens[split+1:])
	if err != nil {
		return Solution{}, err
	}
	return SolveEquation(lhs, rhs, env)
}

// SolveEquation solves lhs = rhs for its unknown.
func SolveEquation(lhs, rhs Expr, env Env) (Solution, error) {
	combined := SubOf(lhs, rhs)
	unknown, err := findUnknown(combined, env)
	if err != nil {
		return Solution{}, err
	}

	form, err := collect(combined, unknown, env)
	if err != nil {
		return Solution{}, err
	}
	if form.deg == 0 {
		return Solution{}, &SolveError{Unknown: unknown, Err: ErrNoUnknown}
	}
	if form.a == 0 {
		if form.b == 0 {
			return Solution{}, &SolveError{Unknown: unknown, Err: ErrInfiniteSolutions}
		}
		return Solution{}, &SolveError{Unknown: unknown, Err: ErrNoSolution}
	}

	x := -form.b / form.a
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return Solution{}, evalErr(ErrNonFinite, unknown)
	}
	if x == 0 {
		x = 0 // normalize -0
	}
	return Solution{Unknown: unknown, Value: x}, nil
}

func findUnknown(e Expr, env Env) (string, error) {
	names := FreeSymbols(e)
	var unbound []string
	for _, name := range names {
		if _, ok := lookup(env, name); !ok {
			unbound = append(unbound, name)
		}
	}
	switch {
	case len(unbound) == 1:
		return unbound[0], nil
	case len(unbound) > 1:
		return "", &SolveError{Err: ErrMultipleUnknowns}
	case len(names) == 1:
		return names[0], nil
	}
	return "", &SolveError{Err: ErrNoUnknown}
}

// collect reduces e to a*x + b in the unknown x.
func collect(e Expr, x string, env Env) (linear, error) {
	switch v := e.(type) {
	case *Num:
		return linear{b: v.Value}, nil
	case *Sym:
		if v.Name == x {
			return linear{a: 1, deg: 1}, nil
		}
		val, err := Eval(v, env)
		if err != nil {
			return linear{}, err
		}
		return linear{b: val}, nil
	case *Unary:
		inner, err := collect(v.X, x, env)
		if err != nil {
			return linear{}, err
		}
		return linear{a: -inner.a, b: -inner.b, deg: inner.deg}, nil
	case *Binary:
		return collectBinary(v, x, env)
	case *Call:
		if DependsOn(v.Arg, x) {
			return linear{}, &SolveError{Unknown: x, Err: ErrNonLinear}
		}
		val, err := Eval(v, env)
		if err != nil {
			return linear{}, err
		}
		return linear{b: val}, nil
	}
	panic(unknownNode(e))
}

func collectBinary(v *Binary, x string, env Env) (linear, error) {
	l, err := collect(v.Left, x, env)
	if err != nil {
		return linear{}, err
	}
	if v.Op == OpPow {
		return collectPow(v, l, x, env)
	}
	r, err := collect(v.Right, x, env)
	if err != nil {
		return linear{}, err
	}

	switch v.Op {
	case OpAdd:
		return linear{a: l.a + r.a, b: l.b + r.b, deg: max(l.deg, r.deg)}, nil
	case OpSub:
		return linear{a: l.a - r.a, b: l.b - r.b, deg: max(l.deg, r.deg)}, nil
	case OpMul:
		if l.deg > 0 && r.deg > 0 {
			return linear{}, &SolveError{Unknown: x, Err: ErrNonLinear}
		}
		return linear{a: l.a*r.b + l.b*r.a, b: l.b * r.b, deg: l.deg + r.deg}, nil
	case OpDiv:
		if r.deg > 0 {
			return linear{}, &SolveError{Unknown: x, Err: ErrNonLinear}
		}
		if r.b == 0 {
			return linear{}, evalErr(ErrDivisionByZero, "")
		}
		return linear{a: l.a / r.b, b: l.b / r.b, deg: l.deg}, nil
	}
	panic("mathsinterp: unknown operator " + v.Op.String())
}

func collectPow(v *Binary, base linear, x string, env Env) (linear, error) {
	if DependsOn(v.Right, x) {
		return linear{}, &SolveError{Unknown: x, Err: ErrNonLinear}
	}
	n, err := Eval(v.Right, env)
	if err != nil {
		return linear{}, err
	}
	if base.deg == 0 {
		out, err := applyBinary(OpPow, base.b, n)
		if err != nil {
			return linear{}, err
		}
		return linear{b: out}, nil
	}
	switch n {
	case 0:
		return linear{b: 1, deg: base.deg}, nil
	case 1:
		return base, nil
	}
	return linear{}, &SolveError{Unknown: x, Err: ErrNonLinear}
}

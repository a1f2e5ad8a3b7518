package mathsinterp

import "math"

// maxSimplifyPasses bounds the fixed-point iteration; each pass only shrinks the tree,
// so real inputs settle in a handful of passes.
const maxSimplifyPasses = 64

// Simplify applies local rewrites until the tree stops changing, so
// Simplify(Simplify(e)) equals Simplify(e). Rewrites never change the value of the
// expression at any point where the original evaluates successfully.
func Simplify(e Expr) Expr {
	cur := Clone(e)
	for i := 0; i < maxSimplifyPasses; i++ {
		next := simplifyPass(cur)
		if next.Equal(cur) {
			return next
		}
		cur = next
	}
	return cur
}

func simplifyPass(e Expr) Expr {
	switch v := e.(type) {
	case *Num, *Sym:
		return v
	case *Unary:
		return simplifyNeg(simplifyPass(v.X))
	case *Binary:
		return simplifyBinary(v.Op, simplifyPass(v.Left), simplifyPass(v.Right))
	case *Call:
		arg := simplifyPass(v.Arg)
		if n, ok := arg.(*Num); ok {
			if out, err := applyFunc(v.Name, n.Value); err == nil {
				return N(out)
			}
		}
		return CallOf(v.Name, arg)
	}
	panic(unknownNode(e))
}

func simplifyNeg(x Expr) Expr {
	switch v := x.(type) {
	case *Num:
		return N(-v.Value)
	case *Unary:
		return v.X
	}
	return NegOf(x)
}

func simplifyBinary(op Op, l, r Expr) Expr {
	ln, lNum := l.(*Num)
	rn, rNum := r.(*Num)
	if lNum && rNum {
		if out, err := applyBinary(op, ln.Value, rn.Value); err == nil {
			return N(out)
		}
		return &Binary{Op: op, Left: l, Right: r}
	}

	switch op {
	case OpAdd:
		switch {
		case isNum(l, 0):
			return r
		case isNum(r, 0):
			return l
		case isNegative(r):
			return SubOf(l, simplifyNeg(r))
		}
	case OpSub:
		switch {
		case isNum(r, 0):
			return l
		case isNum(l, 0):
			return simplifyNeg(r)
		case isNegative(r):
			return AddOf(l, simplifyNeg(r))
		}
	case OpMul:
		switch {
		case isNum(l, 1):
			return r
		case isNum(r, 1):
			return l
		case isNum(l, 0) && isTotal(r), isNum(r, 0) && isTotal(l):
			return N(0)
		case isNum(l, -1):
			return simplifyNeg(r)
		case isNum(r, -1):
			return simplifyNeg(l)
		}
	case OpDiv:
		if isNum(r, 1) {
			return l
		}
	case OpPow:
		switch {
		case isNum(r, 1):
			return l
		case isNum(r, 0) && isTotal(l):
			return N(1)
		}
	}
	return &Binary{Op: op, Left: l, Right: r}
}

func isNum(e Expr, v float64) bool {
	n, ok := e.(*Num)
	return ok && n.Value == v
}

func isNegative(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.Value < 0
	case *Unary:
		return true
	}
	return false
}

// isTotal reports whether e evaluates without error wherever its variables are bound:
// sums and products of names and literals raised to non-negative integer powers.
func isTotal(e Expr) bool {
	switch v := e.(type) {
	case *Num, *Sym:
		return true
	case *Unary:
		return isTotal(v.X)
	case *Binary:
		switch v.Op {
		case OpAdd, OpSub, OpMul:
			return isTotal(v.Left) && isTotal(v.Right)
		case OpPow:
			n, ok := v.Right.(*Num)
			return ok && n.Value >= 0 && n.Value == math.Trunc(n.Value) && isTotal(v.Left)
		}
	}
	return false
}

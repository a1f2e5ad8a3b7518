package mathsinterp

import (
	"errors"
	"math"
)

// Eval computes the value of e. Names resolve through env first and then through
// Constants.
func Eval(e Expr, env Env) (float64, error) {
	switch v := e.(type) {
	case *Num:
		return v.Value, nil
	case *Sym:
		val, ok := lookup(env, v.Name)
		if !ok {
			return 0, evalErr(ErrUndefinedVariable, v.Name)
		}
		return val, nil
	case *Unary:
		x, err := Eval(v.X, env)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case *Binary:
		l, err := Eval(v.Left, env)
		if err != nil {
			return 0, err
		}
		r, err := Eval(v.Right, env)
		if err != nil {
			return 0, err
		}
		return applyBinary(v.Op, l, r)
	case *Call:
		x, err := Eval(v.Arg, env)
		if err != nil {
			return 0, err
		}
		return applyFunc(v.Name, x)
	}
	panic(unknownNode(e))
}

func applyBinary(op Op, l, r float64) (float64, error) {
	var out float64
	switch op {
	case OpAdd:
		out = l + r
	case OpSub:
		out = l - r
	case OpMul:
		out = l * r
	case OpDiv:
		if r == 0 {
			return 0, evalErr(ErrDivisionByZero, "")
		}
		out = l / r
	case OpPow:
		if l == 0 && r < 0 {
			return 0, evalErr(ErrDivisionByZero, "")
		}
		out = math.Pow(l, r)
		if math.IsNaN(out) {
			return 0, evalErr(ErrDomain, "^")
		}
	default:
		panic("mathsinterp: unknown operator " + op.String())
	}
	return finite(out, "")
}

type mathFunc func(x float64) (float64, error)

var funcTable = map[string]mathFunc{
	"sin":  total(math.Sin),
	"cos":  total(math.Cos),
	"tan":  total(math.Tan),
	"asin": within(-1, 1, math.Asin),
	"acos": within(-1, 1, math.Acos),
	"atan": total(math.Atan),
	"sinh": total(math.Sinh),
	"cosh": total(math.Cosh),
	"tanh": total(math.Tanh),
	"sqrt": func(x float64) (float64, error) {
		if x < 0 {
			return 0, evalErr(ErrDomain, "sqrt")
		}
		return math.Sqrt(x), nil
	},
	"ln":  positive("ln", math.Log),
	"log": positive("log", math.Log10),
	"exp": total(math.Exp),
	"abs": total(math.Abs),
}

func total(f func(float64) float64) mathFunc {
	return func(x float64) (float64, error) { return f(x), nil }
}

func within(lo, hi float64, f func(float64) float64) mathFunc {
	return func(x float64) (float64, error) {
		if x < lo || x > hi {
			return 0, evalErr(ErrDomain, "")
		}
		return f(x), nil
	}
}

func positive(name string, f func(float64) float64) mathFunc {
	return func(x float64) (float64, error) {
		if x <= 0 {
			return 0, evalErr(ErrDomain, name)
		}
		return f(x), nil
	}
}

func applyFunc(name string, x float64) (float64, error) {
	f, ok := funcTable[name]
	if !ok {
		return 0, evalErr(ErrUnknownFunction, name)
	}
	out, err := f(x)
	if err != nil {
		var ee *EvalError
		if errors.As(err, &ee) && ee.Name == "" {
			ee.Name = name
		}
		return 0, err
	}
	return finite(out, name)
}

func finite(v float64, name string) (float64, error) {
	if math.IsInf(v, 0) {
		return 0, evalErr(ErrNonFinite, name)
	}
	if math.IsNaN(v) {
		return 0, evalErr(ErrDomain, name)
	}
	return v, nil
}

// Exec evaluates stmt against table. An assignment writes the table only after its
// value evaluated successfully.
func Exec(stmt *Statement, table *SymbolTable) (float64, error) {
	v, err := Eval(stmt.Value, table)
	if err != nil {
		return 0, err
	}
	if stmt.IsAssignment() {
		table.SetEntry(bindingFor(stmt, v))
	}
	return v, nil
}

func bindingFor(stmt *Statement, v float64) Entry {
	e := Entry{Name: stmt.Target, Value: v, Type: SymbolExpression, Source: stmt.Value.String()}
	if isLiteral(stmt.Value) {
		e.Type = SymbolNumber
		e.Source = ""
	}
	return e
}

func isLiteral(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return true
	case *Unary:
		return isLiteral(v.X)
	}
	return false
}

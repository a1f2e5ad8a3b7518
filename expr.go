package mathsinterp

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is a node of an expression tree. The set of node types is closed: *Num, *Sym,
// *Unary, *Binary and *Call. Every parent owns its children.
type Expr interface {
	String() string
	LaTeX() string
	Equal(other Expr) bool
	toJSON() map[string]interface{}
	exprNode()
}

// Op is a unary or binary operator.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
	OpPow Op = '^'
)

func (o Op) String() string { return string(o) }

// ============================================================
// Num: float literal
// ============================================================

type Num struct{ Value float64 }

func N(v float64) *Num { return &Num{Value: v} }

func (n *Num) exprNode()             {}
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.Value == o.Value }
func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.Value}
}

// ============================================================
// Sym: variable reference
// ============================================================

type Sym struct{ Name string }

func S(name string) *Sym { return &Sym{Name: name} }

func (s *Sym) exprNode()             {}
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.Name == o.Name }
func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.Name}
}

// ============================================================
// Unary: negation
// ============================================================

type Unary struct {
	Op Op
	X  Expr
}

func NegOf(x Expr) *Unary { return &Unary{Op: OpSub, X: x} }

func (u *Unary) exprNode() {}
func (u *Unary) Equal(other Expr) bool {
	o, ok := other.(*Unary)
	return ok && u.Op == o.Op && u.X.Equal(o.X)
}
func (u *Unary) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "unary", "op": u.Op.String(), "x": u.X.toJSON()}
}

// ============================================================
// Binary: arithmetic operators
// ============================================================

type Binary struct {
	Op          Op
	Left, Right Expr
}

func AddOf(l, r Expr) *Binary { return &Binary{Op: OpAdd, Left: l, Right: r} }
func SubOf(l, r Expr) *Binary { return &Binary{Op: OpSub, Left: l, Right: r} }
func MulOf(l, r Expr) *Binary { return &Binary{Op: OpMul, Left: l, Right: r} }
func DivOf(l, r Expr) *Binary { return &Binary{Op: OpDiv, Left: l, Right: r} }
func PowOf(l, r Expr) *Binary { return &Binary{Op: OpPow, Left: l, Right: r} }

func (b *Binary) exprNode() {}
func (b *Binary) Equal(other Expr) bool {
	o, ok := other.(*Binary)
	return ok && b.Op == o.Op && b.Left.Equal(o.Left) && b.Right.Equal(o.Right)
}
func (b *Binary) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":  "binary",
		"op":    b.Op.String(),
		"left":  b.Left.toJSON(),
		"right": b.Right.toJSON(),
	}
}

// ============================================================
// Call: named function applications
// ============================================================

type Call struct {
	Name string
	Arg  Expr
}

func CallOf(name string, arg Expr) *Call { return &Call{Name: name, Arg: arg} }

func (c *Call) exprNode() {}
func (c *Call) Equal(other Expr) bool {
	o, ok := other.(*Call)
	return ok && c.Name == o.Name && c.Arg.Equal(o.Arg)
}
func (c *Call) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "call", "name": c.Name, "arg": c.Arg.toJSON()}
}

// ============================================================
// Tree utilities
// ============================================================

// ToJSON serializes an expression tree.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// FreeSymbols returns the distinct variable names in e in first-occurrence order.
func FreeSymbols(e Expr) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(Expr)
	walk = func(e Expr) {
		switch v := e.(type) {
		case *Num:
		case *Sym:
			if !seen[v.Name] {
				seen[v.Name] = true
				out = append(out, v.Name)
			}
		case *Unary:
			walk(v.X)
		case *Binary:
			walk(v.Left)
			walk(v.Right)
		case *Call:
			walk(v.Arg)
		}
	}
	walk(e)
	return out
}

// DependsOn reports whether e references the variable name.
func DependsOn(e Expr, name string) bool {
	switch v := e.(type) {
	case *Num:
		return false
	case *Sym:
		return v.Name == name
	case *Unary:
		return DependsOn(v.X, name)
	case *Binary:
		return DependsOn(v.Left, name) || DependsOn(v.Right, name)
	case *Call:
		return DependsOn(v.Arg, name)
	}
	panic(unknownNode(e))
}

func unknownNode(e Expr) string {
	return fmt.Sprintf("mathsinterp: unknown expression node %T", e)
}

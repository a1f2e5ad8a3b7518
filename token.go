package mathsinterp

import (
	"fmt"
	"strconv"
)

// TokenKind is the lexical class of a Token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNumber
	TokenIdent
	TokenFunc
	TokenOp
	TokenLParen
	TokenRParen
	TokenComma
)

var tokenKindNames = [...]string{
	TokenEOF:    "end of input",
	TokenNumber: "number",
	TokenIdent:  "identifier",
	TokenFunc:   "function",
	TokenOp:     "operator",
	TokenLParen: "'('",
	TokenRParen: "')'",
	TokenComma:  "','",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is one lexical unit. Num is set for numbers, Text for everything else.
type Token struct {
	Kind TokenKind
	Text string
	Num  float64
	Pos  int
}

// IsOp reports whether t is the operator op.
func (t Token) IsOp(op byte) bool {
	return t.Kind == TokenOp && len(t.Text) == 1 && t.Text[0] == op
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return t.Kind.String()
	case TokenNumber:
		return fmt.Sprintf("number %s", t.Text)
	case TokenIdent, TokenFunc:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
	return fmt.Sprintf("%q", t.Text)
}

// Functions lists the reserved function names. A reserved name followed by '(' lexes as
// TokenFunc.
var Functions = []string{
	"sin", "cos", "tan",
	"asin", "acos", "atan",
	"sinh", "cosh", "tanh",
	"sqrt", "ln", "log", "exp", "abs",
}

func isFunction(name string) bool {
	for _, f := range Functions {
		if f == name {
			return true
		}
	}
	return false
}

package mathsinterp

// Statement is a parsed input line: an expression, optionally assigned to Target.
type Statement struct {
	Target string
	Value  Expr
}

// IsAssignment reports whether the statement binds a name.
func (s *Statement) IsAssignment() bool { return s.Target != "" }

func (s *Statement) String() string {
	if s.IsAssignment() {
		return s.Target + " = " + s.Value.String()
	}
	return s.Value.String()
}

// Parse parses a token sequence produced by Tokenize.
//
// Grammar, lowest to highest precedence:
//
//	assignment := IDENT '=' expr | expr
//	expr       := term (('+' | '-') term)*
//	term       := power (('*' | '/') power)*
//	power      := unary ('^' power)?
//	unary      := '-' unary | primary
//	primary    := NUMBER | IDENT | FUNC '(' expr ')' | '(' expr ')'
func Parse(tokens []Token) (*Statement, error) {
	p := &parser{tokens: tokens}
	if p.peek().Kind == TokenEOF {
		return nil, p.errorf(ErrEmptyExpression)
	}

	stmt := &Statement{}
	if p.peek().Kind == TokenIdent && p.peekAt(1).IsOp('=') {
		stmt.Target = p.advance().Text
		p.advance()
		if p.peek().Kind == TokenEOF {
			return nil, p.errorf(ErrEmptyExpression)
		}
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}

// ParseExpr parses tokens as a bare expression; assignment is rejected.
func ParseExpr(tokens []Token) (Expr, error) {
	p := &parser{tokens: tokens}
	if p.peek().Kind == TokenEOF {
		return nil, p.errorf(ErrEmptyExpression)
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return value, nil
}

// ParseString tokenizes and parses input in one step.
func ParseString(input string) (*Statement, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseExprString tokenizes and parses input as a bare expression.
func ParseExprString(input string) (Expr, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return ParseExpr(tokens)
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token { return p.peekAt(0) }

func (p *parser) peekAt(n int) Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	// Tolerate sequences built without a trailing EOF.
	end := 0
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1]
		end = last.Pos + len(last.Text)
	}
	return Token{Kind: TokenEOF, Pos: end}
}

func (p *parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(err error) *ParseError {
	tok := p.peek()
	return &ParseError{Pos: tok.Pos, Token: tok, Err: err}
}

func (p *parser) expectEOF() error {
	switch tok := p.peek(); tok.Kind {
	case TokenEOF:
		return nil
	case TokenRParen:
		return p.errorf(ErrUnbalancedParens)
	}
	return p.errorf(ErrUnexpectedToken)
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek().IsOp('+') || p.peek().IsOp('-') {
		op := Op(p.advance().Text[0])
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.peek().IsOp('*') || p.peek().IsOp('/') {
		op := Op(p.advance().Text[0])
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if !p.peek().IsOp('^') {
		return base, nil
	}
	p.advance()
	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return PowOf(base, exp), nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek().IsOp('-') {
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NegOf(x), nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenNumber:
		p.advance()
		return N(tok.Num), nil
	case TokenIdent:
		p.advance()
		return S(tok.Text), nil
	case TokenFunc:
		p.advance()
		if p.peek().Kind != TokenLParen {
			return nil, p.errorf(ErrUnexpectedToken)
		}
		arg, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return CallOf(tok.Text, arg), nil
	case TokenLParen:
		return p.parseGroup()
	case TokenRParen:
		return nil, p.errorf(ErrUnbalancedParens)
	}
	return nil, p.errorf(ErrUnexpectedToken)
}

// parseGroup parses '(' expr ')' with the cursor on the opening parenthesis.
func (p *parser) parseGroup() (Expr, error) {
	open := p.advance()
	if p.peek().Kind == TokenRParen {
		return nil, p.errorf(ErrEmptyExpression)
	}
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != TokenRParen {
		if p.peek().Kind == TokenEOF {
			return nil, &ParseError{Pos: open.Pos, Token: open, Err: ErrUnbalancedParens}
		}
		return nil, p.errorf(ErrUnexpectedToken)
	}
	p.advance()
	return inner, nil
}

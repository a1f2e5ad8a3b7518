package mathsinterp

import "strconv"

// Tokenize splits input into tokens. The result always ends with a TokenEOF token.
//
// Identifiers are a letter followed by letters or digits. A multi-letter identifier is a
// single variable name, never an implicit product: "ab" is the variable ab. A reserved
// function name becomes TokenFunc only when the next non-blank character is '('.
func Tokenize(input string) ([]Token, error) {
	l := lexer{src: input}
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

func (l *lexer) next() (Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	ch := l.src[l.pos]

	switch {
	case isDigit(ch) || (ch == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		return l.readNumber(start)
	case isLetter(ch):
		return l.readIdent(start), nil
	}

	l.pos++
	switch ch {
	case '+', '-', '*', '/', '^', '=':
		return Token{Kind: TokenOp, Text: string(ch), Pos: start}, nil
	case '(':
		return Token{Kind: TokenLParen, Text: "(", Pos: start}, nil
	case ')':
		return Token{Kind: TokenRParen, Text: ")", Pos: start}, nil
	case ',':
		return Token{Kind: TokenComma, Text: ",", Pos: start}, nil
	case '.':
		return Token{}, &LexError{Pos: start, Char: '.', Err: ErrMalformedNumber}
	}
	return Token{}, &LexError{Pos: start, Char: runeAt(l.src, start), Err: ErrUnexpectedChar}
}

func (l *lexer) readNumber(start int) (Token, error) {
	seenDot := false
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == '.' {
			if seenDot {
				return Token{}, &LexError{Pos: l.pos, Char: '.', Err: ErrMalformedNumber}
			}
			seenDot = true
		} else if !isDigit(ch) {
			break
		}
		l.pos++
	}
	text := l.src[start:l.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Only reachable for out-of-range literals.
		return Token{}, &LexError{Pos: start, Char: rune(text[0]), Err: ErrMalformedNumber}
	}
	return Token{Kind: TokenNumber, Text: text, Num: v, Pos: start}, nil
}

func (l *lexer) readIdent(start int) Token {
	for l.pos < len(l.src) && (isLetter(l.src[l.pos]) || isDigit(l.src[l.pos])) {
		l.pos++
	}
	name := l.src[start:l.pos]
	if isFunction(name) && l.nextNonBlank() == '(' {
		return Token{Kind: TokenFunc, Text: name, Pos: start}
	}
	return Token{Kind: TokenIdent, Text: name, Pos: start}
}

func (l *lexer) nextNonBlank() byte {
	for i := l.pos; i < len(l.src); i++ {
		if !isSpace(l.src[i]) {
			return l.src[i]
		}
	}
	return 0
}

func isDigit(ch byte) bool  { return ch >= '0' && ch <= '9' }
func isLetter(ch byte) bool { return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') }
func isSpace(ch byte) bool  { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }

func runeAt(s string, i int) rune {
	for _, r := range s[i:] {
		return r
	}
	return 0
}

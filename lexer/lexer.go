package lexer

import (
	"fmt"

	"github.com/IbadDotCom/Compiler-Construction/token"
)

const eof = rune(-1)

// Err is a lexical error: no pattern matched at the current position.
// Tokenization stops immediately when one is produced.
type Err struct {
	Line uint
	Char rune
}

func (e Err) Error() string {
	return fmt.Sprintf("lexical error: illegal character '%c' at line %d", e.Char, e.Line)
}

type Lexer struct {
	src     []rune // source code
	lenSrc  uint   // source string length
	pointer uint   // index of the current character; == lenSrc at EOF
	line    uint
	ch      rune // current character, eof when exhausted
}

func New(input string) *Lexer {
	l := &Lexer{
		src:     []rune(input),
		pointer: 0,
		line:    1,
		ch:      eof,
	}
	l.lenSrc = uint(len(l.src))
	if l.lenSrc > 0 {
		l.ch = l.src[0]
	}
	return l
}

func (l *Lexer) peek() rune {
	if l.pointer+1 >= l.lenSrc {
		return eof
	}
	return l.src[l.pointer+1]
}

func (l *Lexer) advance() {
	if l.pointer >= l.lenSrc {
		return
	}
	// the line counter moves when the newline is consumed, so every
	// token produced after it reports the new line
	if l.ch == '\n' {
		l.line++
	}
	l.pointer++
	if l.pointer >= l.lenSrc {
		l.ch = eof
		return
	}
	l.ch = l.src[l.pointer]
}

func isLetter(ch rune) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isOperator(ch rune) bool {
	switch ch {
	case '+', '-', '*', '/', '=', '<', '>', '!':
		return true
	}
	return false
}

// identifiers and keywords both match [A-Za-z_][A-Za-z0-9_]*; the whole
// word is read first, then the keyword set decides.
func (l *Lexer) lexWord() token.Token {
	start := l.pointer
	line := l.line
	for isLetter(l.ch) || isDigit(l.ch) {
		l.advance()
	}
	lit := string(l.src[start:l.pointer])
	return token.New(token.LookupIdent(lit), lit, line)
}

// numbers are digits with an optional fraction. the dot belongs to the
// number only when a digit follows it; otherwise the number ends before
// the dot and the dot is left for the next match attempt (where it is
// always a lexical error, since there is no dot token).
func (l *Lexer) lexNumber() token.Token {
	start := l.pointer
	line := l.line
	for isDigit(l.ch) {
		l.advance()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		l.advance() // eat '.'
		for isDigit(l.ch) {
			l.advance()
		}
	}
	lit := string(l.src[start:l.pointer])
	return token.New(token.NUMBER, lit, line)
}

// Next returns the next token, or an Err when no pattern matches.
// Whitespace is consumed without producing a token; newlines bump the
// line counter inside advance.
func (l *Lexer) Next() (token.Token, error) {
	for isWhitespace(l.ch) {
		l.advance()
	}
	if l.ch == eof {
		return token.New(token.EOF, "<<<EOF>>>", l.line), nil
	}
	if isLetter(l.ch) {
		return l.lexWord(), nil
	}
	if isDigit(l.ch) {
		return l.lexNumber(), nil
	}
	if isOperator(l.ch) {
		// every operator is a single character. '<=' and friends come
		// out as two adjacent operator tokens.
		t := token.New(token.OPERATOR, string(l.ch), l.line)
		l.advance()
		return t, nil
	}
	var typ token.Type
	switch l.ch {
	case '(':
		typ = token.LPAREN
	case ')':
		typ = token.RPAREN
	case '{':
		typ = token.LBRACE
	case '}':
		typ = token.RBRACE
	case ';':
		typ = token.SEMICOLON
	default:
		return token.Token{}, Err{Line: l.line, Char: l.ch}
	}
	t := token.New(typ, string(l.ch), l.line)
	l.advance()
	return t, nil
}

// Tokenize runs the lexer to completion. The returned sequence always
// ends with a single EOF token; on error the tokens lexed so far are
// returned along with the error.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		t, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, t)
		if t.Type == token.EOF {
			break
		}
	}
	return tokens, nil
}

package token

type Type int

const (
	EOF Type = iota
	KEYWORD
	IDENT
	NUMBER
	OPERATOR
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	SEMICOLON
)

func (t Type) String() string {
	tt := map[Type]string{
		EOF: "EOF", KEYWORD: "KEYWORD", IDENT: "IDENTIFIER", NUMBER: "NUMBER",
		OPERATOR: "OPERATOR", LPAREN: "LEFT_PAREN", RPAREN: "RIGHT_PAREN",
		LBRACE: "LEFT_BRACE", RBRACE: "RIGHT_BRACE", SEMICOLON: "SEMICOLON",
	}
	return tt[t]
}

type Token struct {
	Type    Type
	Literal string
	Line    uint
}

// return new token
func New(typ Type, lit string, line uint) Token {
	return Token{
		Type:    typ,
		Literal: lit,
		Line:    line,
	}
}

var keywords = map[string]bool{
	"if":     true,
	"else":   true,
	"while":  true,
	"return": true,
	"int":    true,
	"float":  true,
}

// keywords match as whole words only, so the lexer reads a complete
// identifier-shaped word first and asks afterwards.
func LookupIdent(word string) Type {
	if keywords[word] {
		return KEYWORD
	}
	return IDENT
}

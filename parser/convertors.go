package parser

import (
	"strconv"
	"strings"

	"github.com/IbadDotCom/Compiler-Construction/ast"
)

// little utility to convert NUMBER lexemes to literal nodes. a lexeme
// with a dot is a float, anything else an int; the lexer guarantees the
// shape, so conversion failures are close to impossible.

func (p *Parser) parseNumberLiteral() (*ast.NumberLiteral, error) {
	tok := p.tok
	n := &ast.NumberLiteral{Tok: tok}
	if strings.Contains(tok.Literal, ".") {
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid number: unable to convert '%s' to a float", tok.Literal)
		}
		n.IsFloat = true
		n.Float = f
	} else {
		i, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid number: unable to convert '%s' to an integer", tok.Literal)
		}
		n.Int = i
	}
	p.move()
	return n, nil
}

package parser

import (
	"fmt"

	"github.com/IbadDotCom/Compiler-Construction/ast"
	"github.com/IbadDotCom/Compiler-Construction/token"
)

// Err is a syntax error. Expected is meaningful only for consume
// mismatches; dispatch errors carry a Msg instead.
type Err struct {
	Line     uint
	Expected token.Type
	Actual   token.Token
	Msg      string
}

func (e Err) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("syntax error at line %d: expected %s, got '%s'", e.Line, e.Expected, e.Actual.Literal)
}

// comparison operators the expression level accepts. the lexer only
// ever produces single-character operator tokens, so the two-character
// entries can never match; they are kept to mirror the historical
// accepted-token set. see the parser tests for the consequence: 'x <= y'
// is a syntax error at the stray '='.
var comparisonOps = map[string]bool{
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true,
}

type Parser struct {
	tokens []token.Token
	ptr    uint
	tok    token.Token // current token pointed to, by ptr
}

// New expects the token sequence to be terminated by an EOF token,
// which is what lexer.Tokenize produces.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 {
		tokens = []token.Token{token.New(token.EOF, "<<<EOF>>>", 1)}
	}
	p := &Parser{}
	p.tokens = tokens
	p.ptr = 0
	p.tok = p.tokens[p.ptr]
	return p
}

// set p.tok to the next token
func (p *Parser) move() {
	outOfBounds := len(p.tokens)-1 == int(p.ptr)
	if outOfBounds {
		return
	}
	p.ptr++
	p.tok = p.tokens[p.ptr]
}

// check the current token's type is t; if it is, move past it and
// return the consumed token.
func (p *Parser) consume(t token.Type) (token.Token, error) {
	if p.tok.Type != t {
		return token.Token{}, Err{Line: p.tok.Line, Expected: t, Actual: p.tok}
	}
	tok := p.tok
	p.move()
	return tok, nil
}

func (p *Parser) errorf(formatMsg string, elems ...interface{}) error {
	return Err{Line: p.tok.Line, Actual: p.tok, Msg: fmt.Sprintf(formatMsg, elems...)}
}

func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{}
	for p.tok.Type != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.PushStmt(stmt)
	}
	return program, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.tok.Type {
	case token.KEYWORD:
		switch p.tok.Literal {
		case "int", "float":
			return p.parseDeclaration()
		case "if":
			return p.parseIfStatement()
		case "return":
			return p.parseReturnStatement()
		}
		// 'while' and 'else' have no statement production
		return nil, p.errorf("unexpected keyword '%s'", p.tok.Literal)
	case token.IDENT:
		return p.parseAssignment()
	}
	return nil, p.errorf("unexpected token '%s'", p.tok.Literal)
}

func (p *Parser) parseDeclaration() (*ast.Declaration, error) {
	d := &ast.Declaration{}
	tok, err := p.consume(token.KEYWORD) // int or float
	if err != nil {
		return nil, err
	}
	d.Tok = tok
	ident, err := p.consume(token.IDENT) // variable name
	if err != nil {
		return nil, err
	}
	d.Ident = &ast.Identifier{Tok: ident}
	if _, err := p.consume(token.OPERATOR); err != nil { // =
		return nil, err
	}
	if d.Value, err = p.parseExpr(); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Parser) parseAssignment() (*ast.Assignment, error) {
	ident, err := p.consume(token.IDENT) // variable name
	if err != nil {
		return nil, err
	}
	a := &ast.Assignment{Tok: ident, Ident: &ast.Identifier{Tok: ident}}
	if _, err := p.consume(token.OPERATOR); err != nil { // =
		return nil, err
	}
	if a.Value, err = p.parseExpr(); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON); err != nil {
		return nil, err
	}
	return a, nil
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	tok, err := p.consume(token.KEYWORD) // if
	if err != nil {
		return nil, err
	}
	i := &ast.IfStatement{Tok: tok}
	if _, err := p.consume(token.LPAREN); err != nil {
		return nil, err
	}
	if i.Cond, err = p.parseExpr(); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN); err != nil {
		return nil, err
	}
	if i.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	if p.tok.Type == token.KEYWORD && p.tok.Literal == "else" {
		p.move()
		if i.ElseBody, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return i, nil
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	tok, err := p.consume(token.KEYWORD) // return
	if err != nil {
		return nil, err
	}
	r := &ast.ReturnStatement{Tok: tok}
	if r.Expr, err = p.parseExpr(); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON); err != nil {
		return nil, err
	}
	return r, nil
}

// a block is a brace-delimited, possibly empty sequence of statements.
// braces are statement-level only; one appearing mid-expression is
// never expected here.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.consume(token.LBRACE); err != nil {
		return nil, err
	}
	stmts := []ast.Statement{}
	for p.tok.Type != token.RBRACE {
		if p.tok.Type == token.EOF {
			return nil, Err{Line: p.tok.Line, Expected: token.RBRACE, Actual: p.tok}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.move() // skip }
	return stmts, nil
}

// expression -> arithmetic (comparisonOp arithmetic)*
func (p *Parser) parseExpr() (ast.Expr, error) {
	left, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == token.OPERATOR && comparisonOps[p.tok.Literal] {
		op := p.tok
		p.move()
		right, err := p.parseArithmetic()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Tok: op, Op: op.Literal, Left: left, Right: right}
	}
	return left, nil
}

// arithmetic -> term (('+' | '-') term)*
func (p *Parser) parseArithmetic() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == token.OPERATOR && (p.tok.Literal == "+" || p.tok.Literal == "-") {
		op := p.tok
		p.move()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Tok: op, Op: op.Literal, Left: left, Right: right}
	}
	return left, nil
}

// term -> factor (('*' | '/') factor)*
func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == token.OPERATOR && (p.tok.Literal == "*" || p.tok.Literal == "/") {
		op := p.tok
		p.move()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Tok: op, Op: op.Literal, Left: left, Right: right}
	}
	return left, nil
}

// factor -> NUMBER | IDENTIFIER | '(' expression ')'
func (p *Parser) parseFactor() (ast.Expr, error) {
	switch p.tok.Type {
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.IDENT:
		i := &ast.Identifier{Tok: p.tok}
		p.move()
		return i, nil
	case token.LPAREN:
		p.move() // skip (
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.errorf("unexpected token '%s' in expression", p.tok.Literal)
}

package ast

import (
	"fmt"
	"strings"

	"github.com/IbadDotCom/Compiler-Construction/token"
)

type Program struct {
	Stmts []Statement
}

func (p *Program) PushStmt(stmt Statement) {
	p.Stmts = append(p.Stmts, stmt)
}

func (p *Program) String() string {
	var res strings.Builder
	for _, v := range p.Stmts {
		res.WriteString(v.String())
		res.WriteByte('\n')
	}
	return res.String()
}

type Node interface {
	String() string
}

type Expr interface {
	Node
	expr()
}

type Statement interface {
	Node
	statement()
}

// a numeric literal. IsFloat records whether the lexeme carried a
// fractional part; exactly one of Int/Float is meaningful.
type NumberLiteral struct {
	Tok     token.Token
	IsFloat bool
	Int     int64
	Float   float64
}

func (n NumberLiteral) String() string {
	if n.IsFloat {
		return n.Tok.Literal
	}
	return fmt.Sprint(n.Int)
}
func (NumberLiteral) expr() {}

type Identifier struct {
	Tok token.Token
}

func (i Identifier) String() string {
	return i.Tok.Literal
}
func (Identifier) expr() {}

// BinaryExpr always has exactly two operands; chains of operators at
// the same precedence level fold into left-leaning trees.
type BinaryExpr struct {
	Tok         token.Token // operator token
	Op          string
	Left, Right Expr
}

func (b BinaryExpr) String() string {
	left, right := "<nil_left>", "<nil_right>"
	if b.Left != nil {
		left = b.Left.String()
	}
	if b.Right != nil {
		right = b.Right.String()
	}
	return fmt.Sprintf("(%s %s %s)", left, b.Op, right)
}
func (BinaryExpr) expr() {}

type Declaration struct {
	Tok   token.Token // type keyword (int or float)
	Ident *Identifier // variable name
	Value Expr
}

func (d Declaration) String() string {
	if d.Value == nil {
		return "VALUE (Expr) IS NIL"
	}
	name := ""
	if d.Ident != nil {
		name = d.Ident.String()
	}
	return fmt.Sprintf("%s %s = %s;", d.Tok.Literal, name, d.Value.String())
}
func (Declaration) statement() {}

type Assignment struct {
	Tok   token.Token // IDENT token
	Ident *Identifier
	Value Expr
}

func (a Assignment) String() string {
	if a.Value == nil {
		return "NEW VALUE (Expr) IS NIL"
	}
	name := ""
	if a.Ident != nil {
		name = a.Ident.String()
	}
	return fmt.Sprintf("%s = %s;", name, a.Value.String())
}
func (Assignment) statement() {}

// ElseBody is nil when the else arm is absent; an empty (but present)
// else block is a non-nil empty slice.
type IfStatement struct {
	Tok      token.Token // token.KEYWORD "if"
	Cond     Expr
	Body     []Statement
	ElseBody []Statement
}

func (i IfStatement) String() string {
	var res strings.Builder
	res.WriteString("if ")
	if i.Cond != nil {
		res.WriteString(i.Cond.String())
	} else {
		res.WriteString("<nil_cond>")
	}
	res.WriteString(" {\n")
	for _, v := range i.Body {
		res.WriteByte('\t')
		res.WriteString(v.String())
		res.WriteByte('\n')
	}
	res.WriteByte('}')
	if i.ElseBody != nil {
		res.WriteString(" else {\n")
		for _, v := range i.ElseBody {
			res.WriteByte('\t')
			res.WriteString(v.String())
			res.WriteByte('\n')
		}
		res.WriteByte('}')
	}
	return res.String()
}
func (IfStatement) statement() {}

type ReturnStatement struct {
	Tok  token.Token // token.KEYWORD "return"
	Expr Expr
}

func (r ReturnStatement) String() string {
	if r.Expr == nil {
		return "RETURN VALUE (Expr) IS NIL"
	}
	return fmt.Sprintf("return %s;", r.Expr.String())
}
func (ReturnStatement) statement() {}

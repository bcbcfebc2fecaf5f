package analyzer

import (
	"fmt"

	"github.com/IbadDotCom/Compiler-Construction/ast"
)

type ErrKind int

const (
	TypeMismatch ErrKind = iota
	UndeclaredVariable
	UnsupportedOperator
)

func (k ErrKind) String() string {
	switch k {
	case TypeMismatch:
		return "type mismatch"
	case UndeclaredVariable:
		return "undeclared variable"
	case UnsupportedOperator:
		return "unsupported operator"
	}
	return "UNKNOWN"
}

// Err is a semantic error. Analysis aborts at the first one; table
// entries and annotations committed before the failing statement are
// kept, not rolled back.
type Err struct {
	Kind   ErrKind
	Detail string
}

func (e Err) Error() string {
	return fmt.Sprintf("semantic error: %s: %s", e.Kind, e.Detail)
}

func newErr(kind ErrKind, msgf string, args ...interface{}) Err {
	return Err{Kind: kind, Detail: fmt.Sprintf(msgf, args...)}
}

// AttributedProgram is the analyzed AST. Nodes stay exactly as parsed;
// evaluation results live in Evals, keyed by node identity, written
// once per expression node.
type AttributedProgram struct {
	Program *ast.Program
	Evals   map[ast.Expr]Value
	Symbols *SymbolTable
}

// Evaluation returns the evaluated value (and with it, the evaluated
// type) recorded for the expression node e.
func (ap *AttributedProgram) Evaluation(e ast.Expr) (Value, bool) {
	v, ok := ap.Evals[e]
	return v, ok
}

// Analyzer walks a program in statement order, building the symbol
// table and eagerly evaluating every expression to a concrete value.
// One Analyzer analyzes one program; analyzing another needs a fresh
// Analyzer and with it a fresh symbol table.
type Analyzer struct {
	program *ast.Program
	symbols *SymbolTable
	evals   map[ast.Expr]Value
}

func New(program *ast.Program) *Analyzer {
	return &Analyzer{
		program: program,
		symbols: NewSymbolTable(),
		evals:   make(map[ast.Expr]Value),
	}
}

func (a *Analyzer) Analyze() (*AttributedProgram, error) {
	if err := a.analyzeStatements(a.program.Stmts); err != nil {
		return nil, err
	}
	return &AttributedProgram{
		Program: a.program,
		Evals:   a.evals,
		Symbols: a.symbols,
	}, nil
}

// depth-first, pre-order, one pass. if statement bodies go through the
// same routine, which is what makes the symbol table flat: declarations
// inside a block land in the one global table.
func (a *Analyzer) analyzeStatements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		var err error
		switch stmt := stmt.(type) {
		case *ast.Declaration:
			err = a.analyzeDeclaration(stmt)
		case *ast.Assignment:
			err = a.analyzeAssignment(stmt)
		case *ast.IfStatement:
			err = a.analyzeIfStatement(stmt)
		case *ast.ReturnStatement:
			_, err = a.evalExpr(stmt.Expr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeDeclaration(d *ast.Declaration) error {
	val, err := a.evalExpr(d.Value)
	if err != nil {
		return err
	}
	declType := typeFromKeyword(d.Tok.Literal)
	// exact equality; an int literal assigned to a float variable is an
	// error, never a widening
	if val.Type != declType {
		return newErr(TypeMismatch, "cannot assign %s to %s for variable '%s'", val.Type, declType, d.Ident)
	}
	a.symbols.define(d.Ident.String(), declType, val)
	return nil
}

func (a *Analyzer) analyzeAssignment(s *ast.Assignment) error {
	name := s.Ident.String()
	info, found := a.symbols.get(name)
	if !found {
		return newErr(UndeclaredVariable, "assignment to undeclared variable '%s'", name)
	}
	val, err := a.evalExpr(s.Value)
	if err != nil {
		return err
	}
	if val.Type != info.typ {
		return newErr(TypeMismatch, "cannot assign %s to %s for variable '%s'", val.Type, info.typ, name)
	}
	info.val = val
	return nil
}

func (a *Analyzer) analyzeIfStatement(s *ast.IfStatement) error {
	// condition analysis expects a single comparison: one binary node
	// whose operands it evaluates separately
	cond, ok := s.Cond.(*ast.BinaryExpr)
	if !ok {
		return newErr(UnsupportedOperator, "if condition must be a single comparison, got '%s'", s.Cond)
	}
	left, err := a.evalExpr(cond.Left)
	if err != nil {
		return err
	}
	right, err := a.evalExpr(cond.Right)
	if err != nil {
		return err
	}
	if left.Type != right.Type {
		return newErr(TypeMismatch, "cannot compare %s and %s", left.Type, right.Type)
	}
	result, err := evaluateCondition(left, right, cond.Op)
	if err != nil {
		return err
	}
	a.evals[cond] = result
	if err := a.analyzeStatements(s.Body); err != nil {
		return err
	}
	if s.ElseBody != nil {
		return a.analyzeStatements(s.ElseBody)
	}
	return nil
}

// evalExpr returns the concrete value of expr, annotating expr and
// every sub-expression under it along the way.
func (a *Analyzer) evalExpr(expr ast.Expr) (Value, error) {
	switch expr := expr.(type) {
	case *ast.NumberLiteral:
		var val Value
		if expr.IsFloat {
			val = floatValue(expr.Float)
		} else {
			val = intValue(expr.Int)
		}
		a.evals[expr] = val
		return val, nil
	case *ast.Identifier:
		info, found := a.symbols.get(expr.String())
		if !found {
			return Value{}, newErr(UndeclaredVariable, "undeclared variable '%s'", expr)
		}
		a.evals[expr] = info.val
		return info.val, nil
	case *ast.BinaryExpr:
		left, err := a.evalExpr(expr.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := a.evalExpr(expr.Right)
		if err != nil {
			return Value{}, err
		}
		if left.Type != right.Type {
			return Value{}, newErr(TypeMismatch, "cannot apply '%s' to %s and %s", expr.Op, left.Type, right.Type)
		}
		val, err := performOperation(left, right, expr.Op)
		if err != nil {
			return Value{}, err
		}
		a.evals[expr] = val
		return val, nil
	}
	panic(fmt.Sprintf("analyzer: unknown expression node %T", expr))
}

// arithmetic only. comparisons are not expressions here; outside an if
// condition they fall through to the unsupported-operator error.
// division is deliberately unchecked: float division by zero follows
// IEEE rules (infinities, NaN), integer division by zero follows the
// runtime rule.
func performOperation(left, right Value, op string) (Value, error) {
	if left.Type == TypeInt {
		switch op {
		case "+":
			return intValue(left.Int + right.Int), nil
		case "-":
			return intValue(left.Int - right.Int), nil
		case "*":
			return intValue(left.Int * right.Int), nil
		case "/":
			return intValue(left.Int / right.Int), nil
		}
	}
	if left.Type == TypeFloat {
		switch op {
		case "+":
			return floatValue(left.Float + right.Float), nil
		case "-":
			return floatValue(left.Float - right.Float), nil
		case "*":
			return floatValue(left.Float * right.Float), nil
		case "/":
			return floatValue(left.Float / right.Float), nil
		}
	}
	return Value{}, newErr(UnsupportedOperator, "unsupported operator '%s'", op)
}

// condition operators are a smaller set than the grammar parses: only
// '<', '>' and '==' analyze, the rest fail here.
func evaluateCondition(left, right Value, op string) (Value, error) {
	switch op {
	case "<":
		if left.Type == TypeFloat {
			return boolValue(left.Float < right.Float), nil
		}
		return boolValue(left.Int < right.Int), nil
	case ">":
		if left.Type == TypeFloat {
			return boolValue(left.Float > right.Float), nil
		}
		return boolValue(left.Int > right.Int), nil
	case "==":
		if left.Type == TypeFloat {
			return boolValue(left.Float == right.Float), nil
		}
		return boolValue(left.Int == right.Int), nil
	}
	return Value{}, newErr(UnsupportedOperator, "unsupported comparison operator '%s'", op)
}

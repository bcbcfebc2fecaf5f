package analyzer

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IbadDotCom/Compiler-Construction/ast"
	"github.com/IbadDotCom/Compiler-Construction/lexer"
	"github.com/IbadDotCom/Compiler-Construction/parser"
	"github.com/IbadDotCom/Compiler-Construction/token"
)

func _new(t *testing.T, input string) *Analyzer {
	t.Helper()
	tokens, err := lexer.New(input).Tokenize()
	require.NoError(t, err)
	program, err := parser.New(tokens).Parse()
	require.NoError(t, err)
	return New(program)
}

func analyze(t *testing.T, input string) *AttributedProgram {
	t.Helper()
	ap, err := _new(t, input).Analyze()
	require.NoError(t, err)
	return ap
}

func analyzeErr(t *testing.T, input string) Err {
	t.Helper()
	_, err := _new(t, input).Analyze()
	require.Error(t, err)
	var aerr Err
	require.True(t, errors.As(err, &aerr))
	return aerr
}

func intLit(n int64) *ast.NumberLiteral {
	return &ast.NumberLiteral{Tok: token.New(token.NUMBER, "", 1), Int: n}
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Tok: token.New(token.IDENT, name, 1)}
}

func TestEndToEnd(t *testing.T) {
	ap := analyze(t, `int a = 5;
int b = 10;
int sum = a + b;
return sum;`)

	for name, want := range map[string]int64{"a": 5, "b": 10, "sum": 15} {
		typ, val, found := ap.Symbols.Lookup(name)
		require.True(t, found, name)
		assert.Equal(t, TypeInt, typ, name)
		assert.Equal(t, want, val.Int, name)
	}

	ret := ap.Program.Stmts[3].(*ast.ReturnStatement)
	val, ok := ap.Evaluation(ret.Expr)
	require.True(t, ok)
	assert.Equal(t, TypeInt, val.Type)
	assert.Equal(t, int64(15), val.Int)
}

func TestEverySubexpressionIsAnnotated(t *testing.T) {
	ap := analyze(t, `int a = 5;
int b = 10;
int sum = a + b;`)

	d := ap.Program.Stmts[2].(*ast.Declaration)
	be := d.Value.(*ast.BinaryExpr)
	for _, expr := range []ast.Expr{be, be.Left, be.Right} {
		_, ok := ap.Evaluation(expr)
		assert.True(t, ok, "missing annotation for %s", expr)
	}
}

func TestTypeStrictness(t *testing.T) {
	// an int literal is never widened to float
	aerr := analyzeErr(t, "float x = 1;")
	assert.Equal(t, TypeMismatch, aerr.Kind)
	assert.Contains(t, aerr.Detail, "cannot assign int to float")

	aerr = analyzeErr(t, "int x = 1.0;")
	assert.Equal(t, TypeMismatch, aerr.Kind)
}

func TestMixedArithmetic(t *testing.T) {
	aerr := analyzeErr(t, "float x = 1 + 2.5;")
	assert.Equal(t, TypeMismatch, aerr.Kind)
	assert.Contains(t, aerr.Detail, "cannot apply '+' to int and float")
}

func TestUndeclaredVariable(t *testing.T) {
	aerr := analyzeErr(t, "return z;")
	assert.Equal(t, UndeclaredVariable, aerr.Kind)
	assert.Contains(t, aerr.Detail, "'z'")

	aerr = analyzeErr(t, "int x = y + 1;")
	assert.Equal(t, UndeclaredVariable, aerr.Kind)
}

func TestAssignment(t *testing.T) {
	ap := analyze(t, `int x = 1;
x = x + 41;`)
	_, val, found := ap.Symbols.Lookup("x")
	require.True(t, found)
	assert.Equal(t, int64(42), val.Int)
}

func TestAssignmentErrors(t *testing.T) {
	aerr := analyzeErr(t, "x = 1;")
	assert.Equal(t, UndeclaredVariable, aerr.Kind)

	aerr = analyzeErr(t, "int x = 1;\nx = 2.5;")
	assert.Equal(t, TypeMismatch, aerr.Kind)
}

func TestRedeclarationOverwrites(t *testing.T) {
	// flat table, silent overwrite: historical behavior
	ap := analyze(t, `int x = 1;
float x = 2.5;`)
	typ, val, found := ap.Symbols.Lookup("x")
	require.True(t, found)
	assert.Equal(t, TypeFloat, typ)
	assert.Equal(t, 2.5, val.Float)
}

func TestIfCondition(t *testing.T) {
	ap := analyze(t, `int x = 10;
float y = 20.5;
if (x < 11) {
	return x;
} else {
	return y;
}`)
	i := ap.Program.Stmts[2].(*ast.IfStatement)
	val, ok := ap.Evaluation(i.Cond)
	require.True(t, ok)
	assert.Equal(t, TypeBool, val.Type)
	assert.True(t, val.Bool)

	// both arms are analyzed regardless of the condition's value
	ret := i.ElseBody[0].(*ast.ReturnStatement)
	val, ok = ap.Evaluation(ret.Expr)
	require.True(t, ok)
	assert.Equal(t, TypeFloat, val.Type)
}

func TestIfConditionTypeMismatch(t *testing.T) {
	aerr := analyzeErr(t, `int x = 1;
float y = 2.0;
if (x < y) {}`)
	assert.Equal(t, TypeMismatch, aerr.Kind)
	assert.Contains(t, aerr.Detail, "cannot compare int and float")
}

func TestIfConditionMustBeComparison(t *testing.T) {
	aerr := analyzeErr(t, "int x = 1;\nif (x) { return x; }")
	assert.Equal(t, UnsupportedOperator, aerr.Kind)
}

func TestComparisonOutsideConditionIsUnsupported(t *testing.T) {
	// the grammar parses it, the evaluator refuses it
	aerr := analyzeErr(t, "int a = 1;\nint b = 2;\nint c = (a < b);")
	assert.Equal(t, UnsupportedOperator, aerr.Kind)
	assert.Contains(t, aerr.Detail, "'<'")
}

func TestScopeIsFlat(t *testing.T) {
	// declarations inside a block land in the one global table and stay
	ap := analyze(t, `int x = 1;
if (x < 2) {
	int inner = 7;
}
return inner;`)
	_, val, found := ap.Symbols.Lookup("inner")
	require.True(t, found)
	assert.Equal(t, int64(7), val.Int)
}

func TestDivision(t *testing.T) {
	ap := analyze(t, `int a = 5 / 2;
float b = 5.0 / 2.0;`)
	_, val, _ := ap.Symbols.Lookup("a")
	assert.Equal(t, int64(2), val.Int) // host integer division truncates
	_, val, _ = ap.Symbols.Lookup("b")
	assert.Equal(t, 2.5, val.Float)
}

func TestFloatDivisionByZero(t *testing.T) {
	// never checked; IEEE rules apply
	ap := analyze(t, "float x = 1.0 / 0.0;")
	_, val, _ := ap.Symbols.Lookup("x")
	assert.True(t, math.IsInf(val.Float, 1))
}

func TestFloatArithmetic(t *testing.T) {
	ap := analyze(t, "float x = 20.5;\nfloat y = x * 2.0 - 0.5;")
	_, val, _ := ap.Symbols.Lookup("y")
	assert.Equal(t, TypeFloat, val.Type)
	assert.InDelta(t, 40.5, val.Float, 1e-9)
}

// '==' never survives tokenization as one operator, so an equality
// condition can only exist in a hand-built tree. analysis itself
// supports it.
func TestEqualityConditionOnHandBuiltTree(t *testing.T) {
	program := &ast.Program{}
	program.PushStmt(&ast.Declaration{
		Tok:   token.New(token.KEYWORD, "int", 1),
		Ident: ident("a"),
		Value: intLit(5),
	})
	program.PushStmt(&ast.IfStatement{
		Tok: token.New(token.KEYWORD, "if", 2),
		Cond: &ast.BinaryExpr{
			Tok: token.New(token.OPERATOR, "==", 2), Op: "==",
			Left: ident("a"), Right: intLit(5),
		},
		Body: []ast.Statement{},
	})

	ap, err := New(program).Analyze()
	require.NoError(t, err)
	i := ap.Program.Stmts[1].(*ast.IfStatement)
	val, ok := ap.Evaluation(i.Cond)
	require.True(t, ok)
	assert.True(t, val.Bool)
}

func TestUnsupportedConditionOperator(t *testing.T) {
	program := &ast.Program{}
	program.PushStmt(&ast.IfStatement{
		Tok: token.New(token.KEYWORD, "if", 1),
		Cond: &ast.BinaryExpr{
			Tok: token.New(token.OPERATOR, "!=", 1), Op: "!=",
			Left: intLit(1), Right: intLit(2),
		},
		Body: []ast.Statement{},
	})

	_, err := New(program).Analyze()
	require.Error(t, err)
	var aerr Err
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, UnsupportedOperator, aerr.Kind)
	assert.Contains(t, aerr.Detail, "'!='")
}

func TestDeclarationAbortsBeforeTableUpdate(t *testing.T) {
	a := _new(t, "float x = 1;")
	_, err := a.Analyze()
	require.Error(t, err)
	_, found := a.symbols.get("x")
	assert.False(t, found)
}

func TestAnalysisIsIdempotent(t *testing.T) {
	input := `int a = 5;
int b = 10;
if (a < b) {
	int c = a * b;
}
return a + b;`
	first := analyze(t, input)

	// same unattributed AST, fresh analyzer and table
	second, err := New(first.Program).Analyze()
	require.NoError(t, err)

	require.Equal(t, len(first.Evals), len(second.Evals))
	for expr, val := range first.Evals {
		got, ok := second.Evals[expr]
		require.True(t, ok)
		assert.Equal(t, val, got)
	}
}

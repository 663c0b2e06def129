package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/lexer"
	"github.com/shapelang/shape/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, errs := lexer.Lex(src)
	require.Empty(t, errs)
	program, perrs := parser.Parse(toks)
	require.Empty(t, perrs)
	return program
}

func parseErrs(t *testing.T, src string) []error {
	t.Helper()
	toks, errs := lexer.Lex(src)
	require.Empty(t, errs)
	_, perrs := parser.Parse(toks)
	return perrs
}

func TestParseCommandWithBareIdentifierArgument(t *testing.T) {
	program := parse(t, "print i")
	require.Len(t, program.Statements, 1)
	cmd, ok := program.Statements[0].(*ast.CommandStmt)
	require.True(t, ok)
	assert.Equal(t, "print", cmd.Ident)
	_, ok = cmd.Args.(*ast.IdentExpr)
	assert.True(t, ok)
}

func TestParseCommandWithoutArguments(t *testing.T) {
	program := parse(t, "cube")
	require.Len(t, program.Statements, 1)
	cmd, ok := program.Statements[0].(*ast.CommandStmt)
	require.True(t, ok)
	assert.Nil(t, cmd.Args)
}

func TestParseBlockArgumentReparsesAsExpression(t *testing.T) {
	program := parse(t, "cube { }")
	require.Len(t, program.Statements, 1)
	es, ok := program.Statements[0].(*ast.ExpressionStmt)
	require.True(t, ok)
	be, ok := es.Expr.(*ast.BlockExpr)
	require.True(t, ok)
	assert.Equal(t, "cube", be.Ident)
}

func TestParseTightCallReparsesAsExpression(t *testing.T) {
	program := parse(t, "f(1)")
	require.Len(t, program.Statements, 1)
	es, ok := program.Statements[0].(*ast.ExpressionStmt)
	require.True(t, ok)
	call, ok := es.Expr.(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
}

func TestParseMultiplicationBindsTighterThanAddition(t *testing.T) {
	program := parse(t, "print 1 + 2 * 3")
	cmd := program.Statements[0].(*ast.CommandStmt)
	sum, ok := cmd.Args.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, "+", sum.Op)
	prod, ok := sum.Right.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, "*", prod.Op)
}

func TestParseRangeWithStep(t *testing.T) {
	program := parse(t, "for i in 1 to 3 step 0.5 { }")
	loop := program.Statements[0].(*ast.ForStmt)
	require.NotNil(t, loop.Ident)
	assert.Equal(t, "i", *loop.Ident)

	step, ok := loop.Expr.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, "step", step.Op)
	rng, ok := step.Left.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, "to", rng.Op)
}

func TestParseStepDoesNotChain(t *testing.T) {
	errs := parseErrs(t, "for i in 1 to 9 step 2 step 3 { }")
	assert.NotEmpty(t, errs)
}

func TestParseToDoesNotChain(t *testing.T) {
	errs := parseErrs(t, "for i in 1 to 2 to 3 { }")
	assert.NotEmpty(t, errs)
}

func TestParseDefineForms(t *testing.T) {
	program := parse(t, "define a 1\ndefine b { }\ndefine c(x y) { }")
	require.Len(t, program.Statements, 3)

	a := program.Statements[0].(*ast.DefineStmt)
	_, ok := a.Definition.(*ast.ExprDefinition)
	assert.True(t, ok)

	b := program.Statements[1].(*ast.DefineStmt)
	_, ok = b.Definition.(*ast.BlockDefinition)
	assert.True(t, ok)

	c := program.Statements[2].(*ast.DefineStmt)
	fn, ok := c.Definition.(*ast.FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, fn.Params)
}

func TestParseElseIfChainNestsInsideElseBlock(t *testing.T) {
	program := parse(t, "if a { } else if b { } else { }")
	top := program.Statements[0].(*ast.IfStmt)
	require.NotNil(t, top.Else)
	require.Len(t, top.Else.Statements, 1)
	nested, ok := top.Else.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.NotNil(t, nested.Else)
}

func TestParseParenSingleExpressionIsSubexpression(t *testing.T) {
	program := parse(t, "print (1)")
	cmd := program.Statements[0].(*ast.CommandStmt)
	_, ok := cmd.Args.(*ast.SubexpressionExpr)
	assert.True(t, ok)
}

func TestParseParenExpressionListIsTuple(t *testing.T) {
	program := parse(t, "print (1 2 3)")
	cmd := program.Statements[0].(*ast.CommandStmt)
	tup, ok := cmd.Args.(*ast.TupleExpr)
	require.True(t, ok)
	assert.Len(t, tup.Elements, 3)
}

func TestParseParenListAllowsLinebreaks(t *testing.T) {
	program := parse(t, "print (\n  1\n  2\n)")
	cmd := program.Statements[0].(*ast.CommandStmt)
	tup, ok := cmd.Args.(*ast.TupleExpr)
	require.True(t, ok)
	assert.Len(t, tup.Elements, 2)
}

func TestParseMemberChain(t *testing.T) {
	program := parse(t, "print v.x")
	cmd := program.Statements[0].(*ast.CommandStmt)
	member, ok := cmd.Args.(*ast.MemberExpr)
	require.True(t, ok)
	assert.Equal(t, "x", member.Member)
}

func TestParseHexColorLiteral(t *testing.T) {
	program := parse(t, "color #ff0000")
	cmd := program.Statements[0].(*ast.CommandStmt)
	col, ok := cmd.Args.(*ast.ColorExpr)
	require.True(t, ok)
	assert.Equal(t, 1.0, col.R)
	assert.Equal(t, 0.0, col.G)
	assert.Equal(t, 1.0, col.A)
}

func TestParseMismatchedBraceReportsError(t *testing.T) {
	errs := parseErrs(t, "cube {")
	assert.NotEmpty(t, errs)
}

func TestParseErrorCarriesExpectedDescription(t *testing.T) {
	errs := parseErrs(t, "define 5")
	require.NotEmpty(t, errs)
	type hinted interface{ Hint() string }
	h, ok := errs[0].(hinted)
	require.True(t, ok)
	assert.Contains(t, h.Hint(), "a name")
}

func TestParseStatementRangesDoNotOverlap(t *testing.T) {
	program := parse(t, "cube { }\nsphere { }\nprint 1")
	var prevEnd lexer.Position
	for _, st := range program.Statements {
		r := st.Range()
		assert.True(t, r.Start >= prevEnd, "statement ranges must be monotonically increasing")
		assert.True(t, r.End > r.Start, "statement ranges must be non-empty")
		prevEnd = r.End
	}
}

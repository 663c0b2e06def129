package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapelang/shape/lexer"
)

func kinds(toks []lexer.Token) []lexer.Kind {
	ks := make([]lexer.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexIdentifiersAndKeywords(t *testing.T) {
	toks, errs := lexer.Lex("cube define for")
	require.Empty(t, errs)
	require.Equal(t, []lexer.Kind{lexer.Identifier, lexer.Keyword, lexer.Keyword, lexer.EOF}, kinds(toks))
	assert.Equal(t, "cube", toks[0].Text)
}

func TestLexWordOperators(t *testing.T) {
	toks, errs := lexer.Lex("1 to 3 step 0.5")
	require.Empty(t, errs)
	assert.Equal(t, []lexer.Kind{lexer.Number, lexer.Infix, lexer.Number, lexer.Infix, lexer.Number, lexer.EOF}, kinds(toks))
}

func TestLexNumberWithTrailingDotBeforeLetter(t *testing.T) {
	toks, errs := lexer.Lex("1.foo")
	require.Empty(t, errs)
	require.Equal(t, []lexer.Kind{lexer.Number, lexer.Dot, lexer.Identifier, lexer.EOF}, kinds(toks))
	assert.Equal(t, "1", toks[0].Text)
}

func TestLexString(t *testing.T) {
	toks, errs := lexer.Lex(`"hi\nthere"`)
	require.Empty(t, errs)
	require.Len(t, toks, 2)
	assert.Equal(t, "hi\nthere", toks[0].Text)
}

func TestLexUnterminatedString(t *testing.T) {
	_, errs := lexer.Lex("\"abc")
	require.NotEmpty(t, errs)
}

func TestLexHexColor(t *testing.T) {
	for _, ok := range []string{"#fff", "#ffff", "#ffffff", "#ffffffff"} {
		toks, errs := lexer.Lex(ok)
		require.Emptyf(t, errs, "for %s", ok)
		assert.Equal(t, lexer.HexColor, toks[0].Kind)
	}
	_, errs := lexer.Lex("#ff")
	assert.NotEmpty(t, errs)
}

func TestLexConsecutiveLinebreaksCollapse(t *testing.T) {
	toks, errs := lexer.Lex("cube\n\n\nsphere")
	require.Empty(t, errs)
	assert.Equal(t, []lexer.Kind{lexer.Identifier, lexer.Linebreak, lexer.Identifier, lexer.EOF}, kinds(toks))
}

func TestLexCallVsSubscriptTightness(t *testing.T) {
	toks, errs := lexer.Lex("f(1) f (1)")
	require.Empty(t, errs)
	// Tight '(' after an atom is still an LParen token at the lexer level;
	// tightness is encoded via SpaceBefore and interpreted by the parser.
	require.True(t, len(toks) >= 6)
	assert.False(t, toks[1].SpaceBefore) // '(' right after f(
	assert.True(t, toks[5].SpaceBefore)  // '(' after "f " has a space
}

func TestLexBlockCommentsNest(t *testing.T) {
	toks, errs := lexer.Lex("/* outer /* inner */ still outer */ cube")
	require.Empty(t, errs)
	require.Equal(t, []lexer.Kind{lexer.Identifier, lexer.EOF}, kinds(toks))
}

func TestLexOperatorDisambiguation(t *testing.T) {
	toks, errs := lexer.Lex("-x")
	require.Empty(t, errs)
	require.Equal(t, lexer.Prefix, toks[0].Kind)

	toks, errs = lexer.Lex("x - y")
	require.Empty(t, errs)
	require.Equal(t, lexer.Infix, toks[1].Kind)
}

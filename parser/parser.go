// Package parser implements the recursive-descent parser that turns a
// lexer token stream into a Program AST.
package parser

import (
	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/diagnostics"
	"github.com/shapelang/shape/lexer"
)

// infixOperatorNames lists every spelling the fuzzy "expected an operator"
// suggestion is drawn from, when an identifier appears where an operator
// was expected.
var infixOperatorNames = []string{
	"+", "-", "*", "/", "%", "<", ">", "<=", ">=", "=", "<>", "!=", "and", "or", "in", "to", "step",
}

type parser struct {
	toks   []lexer.Token
	pos    int
	errors []error

	// noBlockArg suppresses `ident { ... }` block arguments while a for/if
	// header expression is being parsed; parentheses clear it again.
	noBlockArg bool
}

// Parse runs the recursive-descent parser over toks (as produced by
// lexer.Lex) and returns the resulting Program plus any parse errors
// encountered. Parsing continues past an error at statement granularity so
// a single source file can report more than one problem per pass.
func Parse(toks []lexer.Token) (*ast.Program, []error) {
	p := &parser{toks: toks}
	var stmts []ast.Statement
	p.skipLinebreaks()
	for !p.atEOF() {
		st := p.parseStatement()
		if st != nil {
			stmts = append(stmts, st)
		}
		p.skipLinebreaks()
	}
	return &ast.Program{Statements: stmts}, p.errors
}

func (p *parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[i]
}

func (p *parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) atEOF() bool { return p.cur().Kind == lexer.EOF }

func (p *parser) skipLinebreaks() {
	for p.cur().Kind == lexer.Linebreak {
		p.advance()
	}
}

func (p *parser) isKeyword(text string) bool {
	t := p.cur()
	return t.Kind == lexer.Keyword && t.Text == text
}

func (p *parser) isInfixWord(text string) bool {
	t := p.cur()
	return t.Kind == lexer.Infix && t.Text == text
}

// expect consumes the current token if it matches kind, else records a
// ParserError with a human "expected" description and (for the common case
// of an identifier appearing where an operator was wanted) a fuzzy
// suggestion drawn from the infix-operator set.
func (p *parser) expect(kind lexer.Kind, expected string) (lexer.Token, bool) {
	t := p.cur()
	if t.Kind == kind {
		return p.advance(), true
	}
	p.fail(t, expected)
	return t, false
}

func (p *parser) fail(got lexer.Token, expected string) {
	suggestion := ""
	if got.Kind == lexer.Identifier {
		suggestion = diagnostics.Suggest(got.Text, infixOperatorNames)
	}
	p.errors = append(p.errors, &diagnostics.ParserError{
		Got:         got,
		Expected:    expected,
		SuggestText: suggestion,
		Rng:         got.Range,
	})
}

// recoverToLinebreak advances past tokens until the next linebreak, closing
// brace, or eof, so a single malformed statement does not desynchronize
// the rest of the parse.
func (p *parser) recoverToLinebreak() {
	for !p.atEOF() && p.cur().Kind != lexer.Linebreak && p.cur().Kind != lexer.RBrace {
		p.advance()
	}
}

func spanFrom(start lexer.Token, endPos lexer.Position) lexer.Range {
	return lexer.Range{Start: start.Range.Start, End: endPos}
}

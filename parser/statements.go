package parser

import (
	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/lexer"
)

// parseStatement tries, in order, define, option, for, if, import, then
// falls back to the command-vs-expression disambiguation.
func (p *parser) parseStatement() ast.Statement {
	switch {
	case p.isKeyword("define"):
		return p.parseDefine()
	case p.cur().Kind == lexer.Identifier && p.cur().Text == "option":
		return p.parseOption()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("import"):
		return p.parseImport()
	case p.cur().Kind == lexer.Identifier:
		return p.parseCommandOrExpr()
	default:
		// A bare expression statement starting with a literal/paren/prefix.
		if canStartExpr(p.cur()) {
			start := p.cur()
			e := p.parseExpr()
			return &ast.ExpressionStmt{Expr: e, Rng: spanFrom(start, p.prevEnd())}
		}
		p.fail(p.cur(), "a statement")
		p.advance() // always make progress, even on a stray closing brace
		p.recoverToLinebreak()
		return nil
	}
}

func (p *parser) prevEnd() lexer.Position {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].Range.End
}

// parseBlock consumes `{ {statement NL} }`.
func (p *parser) parseBlock() *ast.Block {
	open, ok := p.expect(lexer.LBrace, "'{'")
	if !ok {
		return &ast.Block{Rng: open.Range}
	}
	p.skipLinebreaks()
	var stmts []ast.Statement
	for p.cur().Kind != lexer.RBrace && !p.atEOF() {
		st := p.parseStatement()
		if st != nil {
			stmts = append(stmts, st)
		}
		p.skipLinebreaks()
	}
	close, _ := p.expect(lexer.RBrace, "'}'")
	return &ast.Block{Statements: stmts, Rng: spanFrom(open, close.Range.End)}
}

// parseDefine handles `define name expr`, `define name { body }`, and
// `define name (params) { body }`.
func (p *parser) parseDefine() ast.Statement {
	start := p.advance() // "define"
	nameTok, ok := p.expect(lexer.Identifier, "a name")
	if !ok {
		p.recoverToLinebreak()
		return nil
	}

	if p.cur().Kind == lexer.LParen && !p.cur().SpaceBefore {
		p.advance() // "("
		params := p.parseParamList()
		p.expect(lexer.RParen, "')'")
		body := p.parseBlock()
		return &ast.DefineStmt{
			Ident:      nameTok.Text,
			Definition: &ast.FunctionDefinition{Params: params, Body: body, Rng: body.Rng},
			Rng:        spanFrom(start, body.Rng.End),
		}
	}

	if p.cur().Kind == lexer.LBrace {
		body := p.parseBlock()
		return &ast.DefineStmt{
			Ident:      nameTok.Text,
			Definition: &ast.BlockDefinition{Body: body, Rng: body.Rng},
			Rng:        spanFrom(start, body.Rng.End),
		}
	}

	e := p.parseExpr()
	return &ast.DefineStmt{
		Ident:      nameTok.Text,
		Definition: &ast.ExprDefinition{Expr: e, Rng: e.Range()},
		Rng:        spanFrom(start, e.Range().End),
	}
}

func (p *parser) parseParamList() []string {
	var params []string
	p.skipLinebreaks()
	for p.cur().Kind == lexer.Identifier {
		params = append(params, p.advance().Text)
		p.skipLinebreaks()
	}
	return params
}

// parseOption handles `option ident expr`.
func (p *parser) parseOption() ast.Statement {
	start := p.advance() // "option"
	nameTok, ok := p.expect(lexer.Identifier, "a name")
	if !ok {
		p.recoverToLinebreak()
		return nil
	}
	e := p.parseExpr()
	return &ast.OptionStmt{Ident: nameTok.Text, Expr: e, Rng: spanFrom(start, e.Range().End)}
}

// parseFor handles `for ident? in expr Block`.
func (p *parser) parseFor() ast.Statement {
	start := p.advance() // "for"
	var ident *string
	if p.cur().Kind == lexer.Identifier && p.peekAt(1).Kind == lexer.Infix && p.peekAt(1).Text == "in" {
		name := p.advance().Text
		ident = &name
		p.advance() // "in"
	} else if p.isInfixWord("in") {
		p.advance()
	}
	e := p.parseHeaderExpr()
	body := p.parseBlock()
	return &ast.ForStmt{Ident: ident, Expr: e, Body: body, Rng: spanFrom(start, body.Rng.End)}
}

// parseHeaderExpr parses the expression heading a for/if statement with
// block arguments suppressed, so the `{` that follows is the statement's
// body rather than a block argument to a trailing identifier (`if flag
// { ... }` conditions on flag; a genuine block argument in a header must be
// parenthesized). Parentheses re-enable block arguments inside themselves.
func (p *parser) parseHeaderExpr() ast.Expression {
	saved := p.noBlockArg
	p.noBlockArg = true
	e := p.parseExpr()
	p.noBlockArg = saved
	return e
}

// parseIf handles `if cond Block (else Block|if)?`.
func (p *parser) parseIf() ast.Statement {
	start := p.advance() // "if"
	cond := p.parseHeaderExpr()
	then := p.parseBlock()
	end := then.Rng.End

	var elseBlock *ast.Block
	save := p.pos
	p.skipLinebreaksWithoutConsumingStatement()
	if p.isKeyword("else") {
		p.advance()
		if p.isKeyword("if") {
			nested := p.parseIf()
			elseBlock = &ast.Block{Statements: []ast.Statement{nested}, Rng: nested.Range()}
		} else {
			elseBlock = p.parseBlock()
		}
		end = elseBlock.Rng.End
	} else {
		p.pos = save
	}

	return &ast.IfStmt{Cond: cond, Then: then, Else: elseBlock, Rng: spanFrom(start, end)}
}

// skipLinebreaksWithoutConsumingStatement looks past a single collapsed
// linebreak to see whether an `else` follows on the next line, without
// losing the ability to rewind if it does not (an `if` with no `else` must
// not swallow the blank line before the next statement).
func (p *parser) skipLinebreaksWithoutConsumingStatement() {
	for p.cur().Kind == lexer.Linebreak {
		p.advance()
	}
}

// parseImport handles `import expr`.
func (p *parser) parseImport() ast.Statement {
	start := p.advance() // "import"
	e := p.parseExpr()
	return &ast.ImportStmt{Expr: e, Rng: spanFrom(start, e.Range().End)}
}

// parseCommandOrExpr implements the command-vs-expression disambiguation:
// after a leading identifier, if the next significant token is a tight
// call, `{`, `.`, or an infix operator, the leading identifier is actually
// the start of a larger expression rather than a command name, so the
// whole statement is reparsed as one expression; otherwise the remaining
// expr-list on the line is the command's argument tuple (this is also how
// a command with a bare-identifier argument, e.g. `print i` or `color
// red`, is told apart: a following identifier is just the first argument
// expression, not a reason to reparse).
func (p *parser) parseCommandOrExpr() ast.Statement {
	next := p.peekAt(1)
	reparseAsExpr := (next.Kind == lexer.LParen && !next.SpaceBefore) ||
		next.Kind == lexer.LBrace ||
		next.Kind == lexer.Dot ||
		next.Kind == lexer.Infix

	if reparseAsExpr {
		e := p.parseExpr()
		return &ast.ExpressionStmt{Expr: e, Rng: e.Range()}
	}

	ident := p.advance()
	argExprs := p.parseCommandArgList()
	var argsExpr ast.Expression
	end := ident.Range.End
	switch len(argExprs) {
	case 0:
		argsExpr = nil
	case 1:
		argsExpr = argExprs[0]
		end = argExprs[0].Range().End
	default:
		argsExpr = &ast.TupleExpr{Elements: argExprs, Rng: spanFrom(ident, argExprs[len(argExprs)-1].Range().End)}
		end = argsExpr.Range().End
	}
	return &ast.CommandStmt{Ident: ident.Text, Args: argsExpr, Rng: spanFrom(ident, end)}
}

// parseCommandArgList collects whitespace-juxtaposed expressions until the
// current token can no longer start one, implementing "the remaining
// expr-list on the line is the command's argument tuple".
func (p *parser) parseCommandArgList() []ast.Expression {
	var exprs []ast.Expression
	for canStartExpr(p.cur()) {
		exprs = append(exprs, p.parseExpr())
	}
	return exprs
}

func canStartExpr(t lexer.Token) bool {
	switch t.Kind {
	case lexer.Number, lexer.String, lexer.HexColor, lexer.Identifier, lexer.Prefix, lexer.LParen:
		return true
	default:
		return false
	}
}

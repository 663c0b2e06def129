// Package ast defines the abstract syntax tree produced by the parser.
//
// Every node carries a non-empty source Range; ranges are half-open and
// monotonically increasing within a parent.
package ast

import "github.com/shapelang/shape/lexer"

// Node is the common interface implemented by every AST node.
type Node interface {
	Range() lexer.Range
}

// Program is the root of a parsed source file: an ordered list of
// statements. Tokens and the AST are produced once per parse and are
// immutable afterward.
type Program struct {
	Source     string
	Statements []Statement
}

func (p *Program) Range() lexer.Range {
	if len(p.Statements) == 0 {
		return lexer.Range{}
	}
	return lexer.Range{Start: p.Statements[0].Range().Start, End: p.Statements[len(p.Statements)-1].Range().End}
}

// Block is a brace-delimited sequence of statements.
type Block struct {
	Statements []Statement
	Rng        lexer.Range
}

func (b *Block) Range() lexer.Range { return b.Rng }

// Statement is implemented by every statement-level AST node.
type Statement interface {
	Node
	statementNode()
}

// CommandStmt is `ident expr?`: resolution of ident happens at evaluation
// time against the current symbol table.
type CommandStmt struct {
	Ident string
	Args  Expression // nil when the command takes no arguments
	Rng   lexer.Range
}

func (*CommandStmt) statementNode()     {}
func (s *CommandStmt) Range() lexer.Range { return s.Rng }

// DefineStmt is `define ident <Definition>`.
type DefineStmt struct {
	Ident      string
	Definition Definition
	Rng        lexer.Range
}

func (*DefineStmt) statementNode()     {}
func (s *DefineStmt) Range() lexer.Range { return s.Rng }

// OptionStmt is `option ident expr`, legal only inside a user block body.
type OptionStmt struct {
	Ident string
	Expr  Expression
	Rng   lexer.Range
}

func (*OptionStmt) statementNode()     {}
func (s *OptionStmt) Range() lexer.Range { return s.Rng }

// ForStmt is `for ident? in expr Block`.
type ForStmt struct {
	Ident *string
	Expr  Expression
	Body  *Block
	Rng   lexer.Range
}

func (*ForStmt) statementNode()     {}
func (s *ForStmt) Range() lexer.Range { return s.Rng }

// IfStmt is `if cond Block (else Block)?`. The else branch is nil when
// absent; an `else if` chain is represented by nesting an IfStmt inside a
// single-statement Else block.
type IfStmt struct {
	Cond Expression
	Then *Block
	Else *Block
	Rng  lexer.Range
}

func (*IfStmt) statementNode()     {}
func (s *IfStmt) Range() lexer.Range { return s.Rng }

// ExpressionStmt wraps a bare expression used as a statement.
type ExpressionStmt struct {
	Expr Expression
	Rng  lexer.Range
}

func (*ExpressionStmt) statementNode()     {}
func (s *ExpressionStmt) Range() lexer.Range { return s.Rng }

// ImportStmt is `import expr`.
type ImportStmt struct {
	Expr Expression
	Rng  lexer.Range
}

func (*ImportStmt) statementNode()     {}
func (s *ImportStmt) Range() lexer.Range { return s.Rng }

// Definition is the right-hand side of a `define` statement.
type Definition interface {
	Node
	definitionNode()
}

// ExprDefinition is `define name expr`.
type ExprDefinition struct {
	Expr Expression
	Rng  lexer.Range
}

func (*ExprDefinition) definitionNode()     {}
func (d *ExprDefinition) Range() lexer.Range { return d.Rng }

// FunctionDefinition is `define name (params) { body }`.
type FunctionDefinition struct {
	Params []string
	Body   *Block
	Rng    lexer.Range
}

func (*FunctionDefinition) definitionNode()     {}
func (d *FunctionDefinition) Range() lexer.Range { return d.Rng }

// BlockDefinition is `define name { body }`.
type BlockDefinition struct {
	Body *Block
	Rng  lexer.Range
}

func (*BlockDefinition) definitionNode()     {}
func (d *BlockDefinition) Range() lexer.Range { return d.Rng }

// Expression is implemented by every expression-level AST node.
type Expression interface {
	Node
	expressionNode()
}

// NumberExpr is a numeric literal.
type NumberExpr struct {
	Value float64
	Rng   lexer.Range
}

func (*NumberExpr) expressionNode()     {}
func (e *NumberExpr) Range() lexer.Range { return e.Rng }

// StringExpr is a string literal (already escape-decoded by the lexer).
type StringExpr struct {
	Value string
	Rng   lexer.Range
}

func (*StringExpr) expressionNode()     {}
func (e *StringExpr) Range() lexer.Range { return e.Rng }

// ColorExpr is a hex color literal converted to RGBA components in [0,1].
type ColorExpr struct {
	R, G, B, A float64
	Rng        lexer.Range
}

func (*ColorExpr) expressionNode()     {}
func (e *ColorExpr) Range() lexer.Range { return e.Rng }

// IdentExpr is a bare identifier reference.
type IdentExpr struct {
	Name string
	Rng  lexer.Range
}

func (*IdentExpr) expressionNode()     {}
func (e *IdentExpr) Range() lexer.Range { return e.Rng }

// TupleExpr is a parenthesized expression list whose elements are separated
// by whitespace or linebreaks. A single element with no linebreak before the
// close paren parses as SubexpressionExpr instead, so a parenthesized
// TupleExpr has len(Elements) == 1 only where a trailing linebreak was
// written.
type TupleExpr struct {
	Elements []Expression
	Rng      lexer.Range
}

func (*TupleExpr) expressionNode()     {}
func (e *TupleExpr) Range() lexer.Range { return e.Rng }

// PrefixExpr is a prefix `+`/`-` or `not` application.
type PrefixExpr struct {
	Op      string
	Operand Expression
	Rng     lexer.Range
}

func (*PrefixExpr) expressionNode()     {}
func (e *PrefixExpr) Range() lexer.Range { return e.Rng }

// InfixExpr is a binary operator application, including `to`/`step`.
type InfixExpr struct {
	Op    string
	Left  Expression
	Right Expression
	Rng   lexer.Range
}

func (*InfixExpr) expressionNode()     {}
func (e *InfixExpr) Range() lexer.Range { return e.Rng }

// MemberExpr is `receiver.ident`.
type MemberExpr struct {
	Receiver Expression
	Member   string
	Rng      lexer.Range
}

func (*MemberExpr) expressionNode()     {}
func (e *MemberExpr) Range() lexer.Range { return e.Rng }

// CallExpr is a tight call `ident(args)` or a call on any other callee
// expression produced by a subscript/member chain.
type CallExpr struct {
	Callee Expression
	Args   []Expression
	Rng    lexer.Range
}

func (*CallExpr) expressionNode()     {}
func (e *CallExpr) Range() lexer.Range { return e.Rng }

// BlockExpr is a block-argument expression: `ident { statements }`.
type BlockExpr struct {
	Ident string
	Body  *Block
	Rng   lexer.Range
}

func (*BlockExpr) expressionNode()     {}
func (e *BlockExpr) Range() lexer.Range { return e.Rng }

// SubexpressionExpr is a parenthesized single expression, kept distinct
// from TupleExpr so the static analyzer and evaluator can tell `(x)` from
// a one-tuple (`x` followed by a linebreak before the `)`).
type SubexpressionExpr struct {
	Inner Expression
	Rng   lexer.Range
}

func (*SubexpressionExpr) expressionNode()     {}
func (e *SubexpressionExpr) Range() lexer.Range { return e.Rng }

// Package shape is the public entry point for the shape-language
// interpreter. Parse turns source text into an immutable Program; Evaluate
// walks a Program against a host-supplied geometry delegate and returns the
// resulting Scene. Everything else in this module is plumbing behind these
// two calls.
package shape

import (
	"strings"

	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/diagnostics"
	"github.com/shapelang/shape/evaluator"
	"github.com/shapelang/shape/geometry"
	"github.com/shapelang/shape/lexer"
	"github.com/shapelang/shape/parser"
)

// Parse lexes and parses source into a Program. The first lexical or parse
// error encountered is returned; the Program is nil on failure. Parsing is
// deterministic and idempotent: the same source always yields an equal AST.
func Parse(source string) (*ast.Program, error) {
	toks, lexErrs := lexer.Lex(source)
	if len(lexErrs) > 0 {
		return nil, classifyLexError(lexErrs[0])
	}
	program, parseErrs := parser.Parse(toks)
	if len(parseErrs) > 0 {
		return nil, parseErrs[0]
	}
	program.Source = source
	return program, nil
}

// Evaluate runs program against delegate and returns the resulting Scene.
// baseURL anchors relative imports; cache may be nil (a fresh import cache
// is created) and isCancelled may be nil (evaluation never cancels). A
// cancellation observed mid-run yields a partial Scene and a nil error.
func Evaluate(program *ast.Program, baseURL string, delegate geometry.Delegate, cache *geometry.Cache, isCancelled func() bool) (*geometry.Scene, error) {
	return evaluator.New().Evaluate(program, baseURL, delegate, cache, isCancelled)
}

// classifyLexError lifts a raw lexer error into the structured taxonomy so
// hosts only ever see diagnostics types from Parse.
func classifyLexError(err error) error {
	le, ok := err.(*lexer.Error)
	if !ok {
		return err
	}
	kind := "unexpectedToken"
	switch {
	case strings.Contains(le.Message, "unterminated string"):
		kind = "unterminatedString"
	case strings.Contains(le.Message, "escape"):
		kind = "invalidEscape"
	case strings.Contains(le.Message, "number"):
		kind = "invalidNumber"
	case strings.Contains(le.Message, "color"):
		kind = "invalidColor"
	}
	return &diagnostics.LexerError{KindName: kind, Msg: le.Message, Rng: le.Range}
}

// Package evaluator implements the tree-walking interpreter: it walks a
// parsed Program against a mutable evalctx.Context, dispatching every
// statement and expression through the same Symbol calling convention the
// stdlib package builds its built-ins on, and produces a geometry.Scene.
package evaluator

import (
	"github.com/shapelang/shape/analyzer"
	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/geometry"
	"github.com/shapelang/shape/stdlib"
	"github.com/shapelang/shape/value"
)

// maxRecursionDepth mirrors evalctx's own unexported limit: the evaluator
// must raise a reportable AssertionFailure before a Push/PushDefinition call
// would ever hit the context package's invariant panic, so the check is
// duplicated here rather than relied on as the first line of defense.
const maxRecursionDepth = 25

// cancelled is the private sentinel threaded up through execStatements
// when isCancelled reports true; only the outermost Evaluate call swallows
// it, turning it into a zero-children Scene rather than a reported error.
type cancelled struct{}

func (cancelled) Error() string { return "evaluation cancelled" }

// Evaluator holds the standard library tables built once and reused across
// every evaluate call a host makes against this instance.
type Evaluator struct {
	tables *stdlib.Tables
}

// New builds an Evaluator with a freshly constructed standard library.
func New() *Evaluator {
	return &Evaluator{tables: stdlib.Build()}
}

// Evaluate runs the static pass over program, then walks every top-level
// statement against a fresh root context seeded from source/baseURL, and
// returns the resulting Scene. If isCancelled is nil, evaluation never
// cancels. If cache is nil, a fresh empty import cache is used.
func (e *Evaluator) Evaluate(program *ast.Program, baseURL string, delegate geometry.Delegate, cache *geometry.Cache, isCancelled func() bool) (*geometry.Scene, error) {
	if isCancelled == nil {
		isCancelled = func() bool { return false }
	}
	ctx := evalctx.NewRootContext(program.Source, baseURL, e.tables.Root, delegate)
	ctx.Analysis = analyzer.Analyze(program)
	if cache != nil {
		ctx.ImportCache = cache
	}

	err := e.execStatements(ctx, program.Statements, isCancelled)
	if err != nil {
		if _, ok := err.(cancelled); ok {
			return &geometry.Scene{Background: ctx.Background, Cache: ctx.ImportCache}, nil
		}
		return nil, err
	}
	return e.buildScene(ctx), nil
}

// buildScene partitions the context's accumulated children into ordinary
// geometry roots and cameras (by node Kind), flattening any tuples produced
// by fanned-out statements along the way.
func (e *Evaluator) buildScene(ctx *evalctx.Context) *geometry.Scene {
	scene := &geometry.Scene{Background: ctx.Background, Cache: ctx.ImportCache}
	var collect func(v value.Value)
	collect = func(v value.Value) {
		if v.Kind == value.Tuple {
			for _, elem := range v.Elements {
				collect(elem)
			}
			return
		}
		node, ok := v.Geometry.(*geometry.Node)
		if !ok || node == nil {
			return
		}
		if node.Kind == "camera" {
			scene.Cameras = append(scene.Cameras, node)
			return
		}
		scene.Children = append(scene.Children, node)
	}
	for _, c := range ctx.Children {
		collect(c)
	}
	return scene
}

// execStatements runs stmts in order against ctx, polling isCancelled before
// each one: this single loop is reused for top-level programs, user
// function/block bodies, for/if bodies, and imported `.shape` files, so
// cancellation is checked uniformly everywhere a statement can run.
func (e *Evaluator) execStatements(ctx *evalctx.Context, stmts []ast.Statement, isCancelled func() bool) error {
	for _, st := range stmts {
		if isCancelled() {
			return cancelled{}
		}
		if err := e.execStatement(ctx, st, isCancelled); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execStatement(ctx *evalctx.Context, st ast.Statement, isCancelled func() bool) error {
	switch s := st.(type) {
	case *ast.CommandStmt:
		return e.execCommand(ctx, s, isCancelled)
	case *ast.ExpressionStmt:
		v, err := e.evalExpr(ctx, s.Expr, isCancelled)
		if err != nil {
			return err
		}
		return e.addValue(ctx, v, s.Rng)
	case *ast.DefineStmt:
		return e.execDefine(ctx, s, isCancelled)
	case *ast.OptionStmt:
		return e.execOption(ctx, s, isCancelled)
	case *ast.ForStmt:
		return e.execFor(ctx, s, isCancelled)
	case *ast.IfStmt:
		return e.execIf(ctx, s, isCancelled)
	case *ast.ImportStmt:
		return e.execImport(ctx, s, isCancelled)
	default:
		return nil
	}
}

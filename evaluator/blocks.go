package evaluator

import (
	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/diagnostics"
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/geometry"
	"github.com/shapelang/shape/lexer"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

// invokeBlock runs a block symbol's body (built-in or user-defined) in a
// freshly pushed child context and returns the value the block produces.
func (e *Evaluator) invokeBlock(ctx *evalctx.Context, sym evalctx.Symbol, body *ast.Block, rng lexer.Range, isCancelled func() bool) (value.Value, error) {
	if sym.UserBody != nil {
		return e.invokeUserBlock(ctx, sym, body, rng, isCancelled)
	}

	child := ctx.Push(sym.Block)
	if err := e.execStatements(child, body.Statements, isCancelled); err != nil {
		return value.Void, err
	}
	if sym.BlockImpl == nil {
		return value.Void, diagnostics.NewAssertionFailure("block symbol has no implementation", rng)
	}
	return sym.BlockImpl(child)
}

// invokeUserBlock runs a user-defined block's two bodies in the
// call-site/declaration-body order: the call-site body runs first against a
// child context with AllowImplicitOptions set, so any bare command becomes
// an option pre-set; the declaration body then runs in the same context with
// InUserDefinition set, and evalctx.Context.PushScope lets option bindings
// whose names the declaration body actually declares survive the call-site
// scope restore.
func (e *Evaluator) invokeUserBlock(ctx *evalctx.Context, sym evalctx.Symbol, callSiteBody *ast.Block, rng lexer.Range, isCancelled func() bool) (value.Value, error) {
	if ctx.StackDepth+1 > maxRecursionDepth {
		return value.Void, diagnostics.NewAssertionFailure("Too much recursion", rng)
	}

	declType := &evalctx.BlockType{
		Name:       "block:" + sym.DeclSource,
		Symbols:    e.tables.User.Symbols,
		Options:    declaredOptionTypes(sym.UserBody),
		ChildTypes: types.AnyType,
	}
	child := ctx.PushDefinition(*sym.DeclSymbols, declType)
	child.Options = declaredOptionNames(sym.UserBody)

	err := child.PushScope(func() error {
		saved := child.AllowImplicitOptions
		child.AllowImplicitOptions = true
		err := e.execStatements(child, callSiteBody.Statements, isCancelled)
		child.AllowImplicitOptions = saved
		return err
	})
	if err != nil {
		return value.Void, err
	}

	child.InUserDefinition = true
	err = e.execStatements(child, sym.UserBody.Statements, isCancelled)
	child.InUserDefinition = false
	if err != nil {
		return value.Void, err
	}

	return groupResult(child), nil
}

// groupResult implements "the block's return is a rendered mesh group named
// by the current name, or the raw value if single and unnamed" (4.4): a
// single unnamed child passes through as-is, matching how any other
// single-value expression flows to its caller; anything else — multiple
// children, or a single child the body named — is wrapped the same way a
// built-in `group` wraps its own accumulated children.
func groupResult(ctx *evalctx.Context) value.Value {
	if len(ctx.Children) == 1 && ctx.Name == "" {
		return ctx.Children[0]
	}
	children := make([]*geometry.Node, 0, len(ctx.Children))
	for _, c := range ctx.Children {
		if n, ok := c.Geometry.(*geometry.Node); ok {
			children = append(children, n)
		}
	}
	return value.Value{Kind: value.Mesh, Geometry: &geometry.Node{
		Kind:      "group",
		Children:  children,
		Transform: ctx.Transform,
		Material:  ctx.Material,
		Name:      ctx.Name,
	}}
}

// declaredOptionNames scans a user block body's top-level `option`
// statements, producing the set PushScope checks when deciding which
// call-site pre-sets survive the restore.
func declaredOptionNames(body *ast.Block) map[string]bool {
	out := map[string]bool{}
	for _, st := range body.Statements {
		if opt, ok := st.(*ast.OptionStmt); ok {
			out[opt.Ident] = true
		}
	}
	return out
}

// declaredOptionTypes mirrors declaredOptionNames but for the BlockType's
// static Options map; user-defined blocks accept any type for an option,
// since nothing upstream of the evaluator checks it.
func declaredOptionTypes(body *ast.Block) map[string]types.ValueType {
	out := map[string]types.ValueType{}
	for _, st := range body.Statements {
		if opt, ok := st.(*ast.OptionStmt); ok {
			out[opt.Ident] = types.AnyType
		}
	}
	return out
}

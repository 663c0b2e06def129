package evaluator

import (
	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/diagnostics"
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/lexer"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

// execCommand dispatches `ident arg...`: a function call, a property
// setter, or a no-body block invocation. An identifier not bound to any
// symbol is accepted as an implicit option pre-set when the enclosing
// context allows it (see evalctx.Context.AllowImplicitOptions); otherwise
// it is UnknownSymbol.
func (e *Evaluator) execCommand(ctx *evalctx.Context, s *ast.CommandStmt, isCancelled func() bool) error {
	var argVal value.Value
	if s.Args != nil {
		v, err := e.evalExpr(ctx, s.Args, isCancelled)
		if err != nil {
			return err
		}
		argVal = v
	} else {
		argVal = value.Void
	}

	sym, ok := ctx.Lookup(s.Ident)
	if !ok {
		if ctx.AllowImplicitOptions {
			ctx.FieldOrder = append(ctx.FieldOrder, s.Ident)
			ctx.UserSymbols[s.Ident] = evalctx.OptionOf(argVal)
			return nil
		}
		return diagnostics.NewUnknownSymbol(s.Ident, ctx.KnownNames(), s.Rng)
	}

	switch sym.Kind {
	case evalctx.FunctionSymbol:
		v, err := e.callFunction(ctx, sym, argVal, s.Ident, s.Rng, isCancelled)
		if err != nil {
			return err
		}
		return e.addValue(ctx, v, s.Rng)
	case evalctx.PropertySymbol:
		if sym.Prop.Set == nil {
			return diagnostics.NewAssertionFailure(s.Ident+" has no setter", s.Rng)
		}
		return sym.Prop.Set(ctx, argVal)
	case evalctx.BlockSymbol:
		v, err := e.invokeBlock(ctx, sym, &ast.Block{}, s.Rng, isCancelled)
		if err != nil {
			return err
		}
		return e.addValue(ctx, v, s.Rng)
	case evalctx.ConstantSymbol, evalctx.OptionSymbol:
		return e.addValue(ctx, sym.Value, s.Rng)
	default:
		return diagnostics.NewAssertionFailure("placeholder symbol "+s.Ident+" used before its definition completes", s.Rng)
	}
}

// execDefine installs ident's symbol. Function and block definitions use a
// placeholder/clone/overwrite sequence so a recursive reference to ident
// inside its own body resolves against the real symbol: the body's closure
// (DeclSymbols) is captured only after the placeholder is in scope.
func (e *Evaluator) execDefine(ctx *evalctx.Context, s *ast.DefineStmt, isCancelled func() bool) error {
	switch def := s.Definition.(type) {
	case *ast.ExprDefinition:
		v, err := e.evalExpr(ctx, def.Expr, isCancelled)
		if err != nil {
			return err
		}
		ctx.UserSymbols[s.Ident] = evalctx.ConstantOf(v)
		return nil

	case *ast.FunctionDefinition:
		ctx.UserSymbols[s.Ident] = evalctx.PlaceholderOf(types.AnyType)
		closure := ctx.UserSymbols.Clone()
		ctx.UserSymbols[s.Ident] = evalctx.Symbol{
			Kind:           evalctx.FunctionSymbol,
			UserParams:     def.Params,
			UserParamTypes: inferredParamTypes(ctx, def),
			UserBody:       def.Body,
			DeclSymbols:    &closure,
			DeclSource:     ctx.Source,
		}
		return nil

	case *ast.BlockDefinition:
		ctx.UserSymbols[s.Ident] = evalctx.PlaceholderOf(types.AnyType)
		closure := ctx.UserSymbols.Clone()
		ctx.UserSymbols[s.Ident] = evalctx.Symbol{
			Kind:        evalctx.BlockSymbol,
			UserBody:    def.Body,
			DeclSymbols: &closure,
			DeclSource:  ctx.Source,
		}
		return nil

	default:
		return diagnostics.NewAssertionFailure("unhandled definition kind", s.Rng)
	}
}

// inferredParamTypes resolves the static pass's parameter inference for a
// function definition, positionally aligned with its parameter list.
func inferredParamTypes(ctx *evalctx.Context, def *ast.FunctionDefinition) []types.ValueType {
	if ctx.Analysis == nil {
		return nil
	}
	inferred := ctx.Analysis.ParamsFor(def)
	out := make([]types.ValueType, len(def.Params))
	for i, p := range def.Params {
		out[i] = inferred[p]
	}
	return out
}

// execOption applies a user block's default for ident, unless the call site
// already supplied a value for it (an OptionSymbol already bound in
// UserSymbols from the call-site body's implicit-option pass).
func (e *Evaluator) execOption(ctx *evalctx.Context, s *ast.OptionStmt, isCancelled func() bool) error {
	if !ctx.InUserDefinition {
		// `option` is not a real symbol anywhere but a user block body, so
		// outside one it fails the same way any unknown command would.
		return diagnostics.NewUnknownSymbol("option", ctx.KnownNames(), s.Rng)
	}
	if sym, ok := ctx.UserSymbols[s.Ident]; ok && sym.Kind == evalctx.OptionSymbol {
		return nil
	}
	v, err := e.evalExpr(ctx, s.Expr, isCancelled)
	if err != nil {
		return err
	}
	ctx.UserSymbols[s.Ident] = evalctx.OptionOf(v)
	return nil
}

// execFor iterates s.Expr's sequence view, binding s.Ident (if present) to
// each element for the duration of the body, within a single PushScope so
// bindings introduced by the body do not leak past the loop.
func (e *Evaluator) execFor(ctx *evalctx.Context, s *ast.ForStmt, isCancelled func() bool) error {
	v, err := e.evalExpr(ctx, s.Expr, isCancelled)
	if err != nil {
		return err
	}
	seq, ok := v.Sequence()
	if !ok {
		return diagnostics.NewTypeMismatch("for", 0, "range, tuple, or object", v.Type().String(), s.Rng)
	}

	return ctx.PushScope(func() error {
		var loopErr error
		seq(func(item value.Value) bool {
			if isCancelled() {
				loopErr = cancelled{}
				return false
			}
			if s.Ident != nil {
				ctx.UserSymbols[*s.Ident] = evalctx.ConstantOf(item)
			}
			if err := e.execStatements(ctx, s.Body.Statements, isCancelled); err != nil {
				loopErr = err
				return false
			}
			return true
		})
		return loopErr
	})
}

// execIf evaluates s.Cond and runs the matching branch, if any, inside a
// PushScope so the branch's local definitions don't leak.
func (e *Evaluator) execIf(ctx *evalctx.Context, s *ast.IfStmt, isCancelled func() bool) error {
	v, err := e.evalExpr(ctx, s.Cond, isCancelled)
	if err != nil {
		return err
	}
	if v.Kind != value.Boolean {
		return diagnostics.NewTypeMismatch("if", 0, "boolean", v.Type().String(), s.Rng)
	}

	var body *ast.Block
	if v.Bool {
		body = s.Then
	} else {
		body = s.Else
	}
	if body == nil {
		return nil
	}
	return ctx.PushScope(func() error {
		return e.execStatements(ctx, body.Statements, isCancelled)
	})
}

// addValue applies the "what a statement's resulting value does" rule: void
// vanishes, tuples are flattened and each element applied in turn, a value
// carrying geometry is appended as a child (and made available for later
// named-reference lookups), a Text value is accepted on its own terms
// (wrapped with the current font/colour/linespacing where the text itself
// left them unset) even though it carries no Geometry handle. Any other
// value is kept only if the context's childTypes accepts it — a definition
// body (childTypes any) accumulates everything, which is how a user
// function's trailing expression becomes its return value — and is an
// unused value otherwise.
func (e *Evaluator) addValue(ctx *evalctx.Context, v value.Value, rng lexer.Range) error {
	if v.Kind == value.Tuple {
		for _, elem := range v.Elements {
			if err := e.addValue(ctx, elem, rng); err != nil {
				return err
			}
		}
		return nil
	}
	if v.Kind == value.Text {
		ctx.AddChild(fillTextDefaults(ctx, v))
		return nil
	}
	if v.Geometry != nil {
		ctx.AddChild(v)
		return nil
	}
	if ctx.ChildTypes.Kind == types.Any || v.Type().SubtypeOf(ctx.ChildTypes) {
		ctx.AddChild(v)
		return nil
	}
	return diagnostics.NewUnusedValue(v.Type().String(), rng)
}

// fillTextDefaults applies the current context's font/colour/linespacing to
// a Text value that left them unset, per the addValue contract's "wraps
// string into Text with current font/colour/linespacing" rule.
func fillTextDefaults(ctx *evalctx.Context, v value.Value) value.Value {
	if v.TextFont == "" {
		v.TextFont = ctx.Font
	}
	if v.TextColor == nil {
		c := value.ColorOf(ctx.Material.Color[0], ctx.Material.Color[1], ctx.Material.Color[2], ctx.Material.Color[3])
		v.TextColor = &c
	}
	if v.TextLineSpacing == 0 {
		v.TextLineSpacing = 1
	}
	return v
}

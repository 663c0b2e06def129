package stdlib

import (
	"math"
	"strings"

	"github.com/shapelang/shape/diagnostics"
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/lexer"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

func unary(name string, fn func(float64) float64) evalctx.Symbol {
	return evalctx.Symbol{
		Kind:     evalctx.FunctionSymbol,
		FuncType: evalctx.FunctionType{Param: types.NumberType, Return: types.NumberType},
		FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
			n, err := wantNumber(name, args(arg), 0)
			if err != nil {
				return value.Void, err
			}
			return value.NumberOf(fn(n)), nil
		},
	}
}

func binary(name string, fn func(a, b float64) float64) evalctx.Symbol {
	return evalctx.Symbol{
		Kind:     evalctx.FunctionSymbol,
		FuncType: evalctx.FunctionType{Param: types.Tuple(types.NumberType, types.NumberType), Return: types.NumberType},
		FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
			a := args(arg)
			x, err := wantNumber(name, a, 0)
			if err != nil {
				return value.Void, err
			}
			y, err := wantNumber(name, a, 1)
			if err != nil {
				return value.Void, err
			}
			return value.NumberOf(fn(x, y)), nil
		},
	}
}

// MathFunctions builds abs/sign/ceil/floor/round/sqrt/pow/min/max and the
// trigonometric family, plus the `pi` constant.
func MathFunctions() map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"abs":   unary("abs", math.Abs),
		"sign":  unary("sign", func(x float64) float64 { return math.Copysign(1, x) }),
		"ceil":  unary("ceil", math.Ceil),
		"floor": unary("floor", math.Floor),
		"round": unary("round", math.Round),
		"sqrt":  unary("sqrt", math.Sqrt),
		"cos":   unary("cos", func(x float64) float64 { return math.Cos(x * math.Pi) }),
		"acos":  unary("acos", func(x float64) float64 { return math.Acos(x) / math.Pi }),
		"sin":   unary("sin", func(x float64) float64 { return math.Sin(x * math.Pi) }),
		"asin":  unary("asin", func(x float64) float64 { return math.Asin(x) / math.Pi }),
		"tan":   unary("tan", func(x float64) float64 { return math.Tan(x * math.Pi) }),
		"atan":  unary("atan", func(x float64) float64 { return math.Atan(x) / math.Pi }),
		"pow":   binary("pow", math.Pow),
		"min":   binary("min", math.Min),
		"max":   binary("max", math.Max),
		"atan2": binary("atan2", func(y, x float64) float64 { return math.Atan2(y, x) / math.Pi }),
		"pi":    evalctx.ConstantOf(value.NumberOf(math.Pi)),
	}
}

// LinearAlgebraFunctions builds dot/cross/length/normalize over Vector
// values.
func LinearAlgebraFunctions() map[string]evalctx.Symbol {
	vec := func(v value.Value) (x, y, z float64) { return v.X, v.Y, v.Z }
	return map[string]evalctx.Symbol{
		"dot": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.Tuple(types.VectorType, types.VectorType), Return: types.NumberType},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				a := args(arg)
				if len(a) < 2 {
					return value.Void, diagnostics.NewTypeMismatch("dot", 1, "vector", "nothing", lexer.Range{})
				}
				ax, ay, az := vec(a[0])
				bx, by, bz := vec(a[1])
				return value.NumberOf(ax*bx + ay*by + az*bz), nil
			},
		},
		"cross": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.Tuple(types.VectorType, types.VectorType), Return: types.VectorType},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				a := args(arg)
				if len(a) < 2 {
					return value.Void, diagnostics.NewTypeMismatch("cross", 1, "vector", "nothing", lexer.Range{})
				}
				ax, ay, az := vec(a[0])
				bx, by, bz := vec(a[1])
				return value.VectorOf(ay*bz-az*by, az*bx-ax*bz, ax*by-ay*bx), nil
			},
		},
		"length": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.VectorType, Return: types.NumberType},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				a := args(arg)
				if len(a) < 1 {
					return value.Void, diagnostics.NewTypeMismatch("length", 0, "vector", "nothing", lexer.Range{})
				}
				x, y, z := vec(a[0])
				return value.NumberOf(math.Sqrt(x*x + y*y + z*z)), nil
			},
		},
		"normalize": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.VectorType, Return: types.VectorType},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				a := args(arg)
				if len(a) < 1 {
					return value.Void, diagnostics.NewTypeMismatch("normalize", 0, "vector", "nothing", lexer.Range{})
				}
				x, y, z := vec(a[0])
				n := math.Sqrt(x*x + y*y + z*z)
				if n == 0 {
					return value.VectorOf(0, 0, 0), nil
				}
				return value.VectorOf(x/n, y/n, z/n), nil
			},
		},
	}
}

// StringFunctions builds split/join/trim.
func StringFunctions() map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"split": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.Tuple(types.StringType, types.StringType), Return: types.List(types.StringType)},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				a := args(arg)
				s, err := wantString("split", a, 0)
				if err != nil {
					return value.Void, err
				}
				sep, err := wantString("split", a, 1)
				if err != nil {
					return value.Void, err
				}
				parts := strings.Split(s, sep)
				elems := make([]value.Value, len(parts))
				for i, p := range parts {
					elems[i] = value.StringOf(p)
				}
				return value.TupleOfRaw(elems...), nil
			},
		},
		"join": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.Tuple(types.List(types.StringType), types.StringType), Return: types.StringType},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				a := args(arg)
				if len(a) < 1 || a[0].Kind != value.Tuple {
					return value.Void, diagnostics.NewTypeMismatch("join", 0, "list(string)", "nothing", lexer.Range{})
				}
				sep := ""
				if len(a) >= 2 {
					var err error
					sep, err = wantString("join", a, 1)
					if err != nil {
						return value.Void, err
					}
				}
				parts := make([]string, len(a[0].Elements))
				for i, e := range a[0].Elements {
					parts[i] = e.Str
				}
				return value.StringOf(strings.Join(parts, sep)), nil
			},
		},
		"trim": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.StringType, Return: types.StringType},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				s, err := wantString("trim", args(arg), 0)
				if err != nil {
					return value.Void, err
				}
				return value.StringOf(strings.TrimSpace(s)), nil
			},
		},
	}
}

// RandomnessFunctions builds `rnd` (next value in the deterministic
// sequence) and `seed` (re-seeds and reports the previous seed).
func RandomnessFunctions() map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"rnd": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.Void, Return: types.NumberType},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				return value.NumberOf(ctx.Random.Float64()), nil
			},
		},
		"seed": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.NumberType, Return: types.NumberType},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				n, err := wantNumber("seed", args(arg), 0)
				if err != nil {
					return value.Void, err
				}
				prev := ctx.Random.Seed()
				ctx.Random.Reseed(n)
				return value.NumberOf(prev), nil
			},
		},
	}
}

// LogicFunctions builds `not`, `true`, `false`.
func LogicFunctions() map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"true":  evalctx.ConstantOf(value.BoolOf(true)),
		"false": evalctx.ConstantOf(value.BoolOf(false)),
		"not": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.BooleanType, Return: types.BooleanType},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				a := args(arg)
				if len(a) < 1 || a[0].Kind != value.Boolean {
					return value.Void, diagnostics.NewTypeMismatch("not", 0, "boolean", "nothing", lexer.Range{})
				}
				return value.BoolOf(!a[0].Bool), nil
			},
		},
	}
}

// DebugFunctions builds `print` (forwards to the delegate's DebugLog) and
// `assert` (raises AssertionFailure if its argument is false).
func DebugFunctions() map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"print": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.AnyType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				a := args(arg)
				vals := make([]any, len(a))
				for i, v := range a {
					vals[i] = v
				}
				if ctx.Delegate != nil {
					ctx.Delegate.DebugLog(vals)
				}
				return value.Void, nil
			},
		},
		"assert": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.AnyType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				a := args(arg)
				if len(a) < 1 || a[0].Kind != value.Boolean {
					return value.Void, diagnostics.NewTypeMismatch("assert", 0, "boolean", "nothing", lexer.Range{})
				}
				if !a[0].Bool {
					msg := "assertion failed"
					if len(a) >= 2 && a[1].Kind == value.String {
						msg = a[1].Str
					}
					return value.Void, diagnostics.NewAssertionFailure(msg, lexer.Range{})
				}
				return value.Void, nil
			},
		},
	}
}

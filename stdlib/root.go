package stdlib

import (
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

// RootOnly builds `background`, `detail`, `smoothing`, `font`: global
// program-wide settings. Only the root block type includes the whole
// table; the group type (and the types composed from it) also takes
// `font` from it.
func RootOnly() map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"background": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.AnyType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				r, g, b, a, err := colorArgs("background", args(arg))
				if err != nil {
					return value.Void, err
				}
				ctx.Background = [4]float64{r, g, b, a}
				return value.Void, nil
			},
		},
		"detail": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.NumberType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				n, err := wantNumber("detail", args(arg), 0)
				if err != nil {
					return value.Void, err
				}
				ctx.Detail = int(n)
				return value.Void, nil
			},
		},
		"smoothing": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.NumberType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				a := args(arg)
				if len(a) == 1 && a[0].Kind == value.String && a[0].Str == "none" {
					ctx.Smoothing = nil
					return value.Void, nil
				}
				n, err := wantNumber("smoothing", a, 0)
				if err != nil {
					return value.Void, err
				}
				ctx.Smoothing = &n
				return value.Void, nil
			},
		},
		"font": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.StringType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				s, err := wantString("font", args(arg), 0)
				if err != nil {
					return value.Void, err
				}
				ctx.Font = s
				return value.Void, nil
			},
		},
	}
}

package stdlib

import (
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

// vectorArgs reads a single Vector/Size argument, a single bare number, or
// three bare numbers, the call shapes every transform built-in accepts
// (`translate position`, `size 2` and `translate 1 0 0`).
func vectorArgs(forName string, a []value.Value) (x, y, z float64, err error) {
	if len(a) == 1 && (a[0].Kind == value.Vector || a[0].Kind == value.Size) {
		return a[0].X, a[0].Y, a[0].Z, nil
	}
	if len(a) == 1 && a[0].Kind == value.Number {
		// A single bare number broadcasts uniformly across all three axes
		// (`size 2` means `size 2 2 2`), matching how `scale`/`position`
		// are used in practice for uniform transforms.
		return a[0].Num, a[0].Num, a[0].Num, nil
	}
	x, err = wantNumber(forName, a, 0)
	if err != nil {
		return
	}
	y, err = wantNumber(forName, a, 1)
	if err != nil {
		return
	}
	z, err = wantNumber(forName, a, 2)
	return
}

func setter(name string, apply func(ctx *evalctx.Context, x, y, z float64)) evalctx.Symbol {
	return evalctx.Symbol{
		Kind:     evalctx.FunctionSymbol,
		FuncType: evalctx.FunctionType{Param: types.AnyType, Return: types.Void},
		FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
			x, y, z, err := vectorArgs(name, args(arg))
			if err != nil {
				return value.Void, err
			}
			apply(ctx, x, y, z)
			return value.Void, nil
		},
	}
}

// TransformSetters builds `translate`/`rotate`/`scale`: they mutate
// childTransform cumulatively, so repeated calls within one block compose.
func TransformSetters() map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"translate": setter("translate", func(ctx *evalctx.Context, x, y, z float64) {
			ctx.ChildTransform.Position[0] += x
			ctx.ChildTransform.Position[1] += y
			ctx.ChildTransform.Position[2] += z
		}),
		"rotate": setter("rotate", func(ctx *evalctx.Context, roll, yaw, pitch float64) {
			ctx.ChildTransform.Orientation[0] += roll
			ctx.ChildTransform.Orientation[1] += yaw
			ctx.ChildTransform.Orientation[2] += pitch
		}),
		"scale": setter("scale", func(ctx *evalctx.Context, x, y, z float64) {
			ctx.ChildTransform.Scale[0] *= x
			ctx.ChildTransform.Scale[1] *= y
			ctx.ChildTransform.Scale[2] *= z
		}),
	}
}

// TransformProperties builds `position`/`orientation`/`size`: they set the
// current block's absolute transform fields rather than accumulating.
func TransformProperties() map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"position": setter("position", func(ctx *evalctx.Context, x, y, z float64) {
			ctx.Transform.Position = [3]float64{x, y, z}
		}),
		"orientation": setter("orientation", func(ctx *evalctx.Context, roll, yaw, pitch float64) {
			ctx.Transform.Orientation = [3]float64{roll, yaw, pitch}
		}),
		"size": setter("size", func(ctx *evalctx.Context, x, y, z float64) {
			ctx.Transform.Scale = [3]float64{x, y, z}
		}),
	}
}

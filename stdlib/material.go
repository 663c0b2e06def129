package stdlib

import (
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

func colorArgs(forName string, a []value.Value) (r, g, b, alpha float64, err error) {
	if len(a) >= 1 && a[0].Kind == value.Color {
		c := a[0]
		alpha = 1
		if len(a) >= 2 {
			if alpha, err = wantNumber(forName, a, 1); err != nil {
				return
			}
		} else {
			alpha = c.A
		}
		return c.R, c.G, c.B, alpha, nil
	}
	r, err = wantNumber(forName, a, 0)
	if err != nil {
		return
	}
	g, err = wantNumber(forName, a, 1)
	if err != nil {
		return
	}
	b, err = wantNumber(forName, a, 2)
	if err != nil {
		return
	}
	alpha = 1
	if len(a) >= 4 {
		alpha, err = wantNumber(forName, a, 3)
	}
	return
}

func namedColor(r, g, b float64) evalctx.Symbol {
	return evalctx.ConstantOf(value.ColorOf(r, g, b, 1))
}

// ColorConstants builds the fixed palette of named colors.
func ColorConstants() map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"white":   namedColor(1, 1, 1),
		"black":   namedColor(0, 0, 0),
		"gray":    namedColor(0.5, 0.5, 0.5),
		"red":     namedColor(1, 0, 0),
		"green":   namedColor(0, 1, 0),
		"blue":    namedColor(0, 0, 1),
		"yellow":  namedColor(1, 1, 0),
		"cyan":    namedColor(0, 1, 1),
		"magenta": namedColor(1, 0, 1),
		"orange":  namedColor(1, 0.6, 0),
	}
}

// MaterialSymbols builds the material-mutating commands: `color`, `texture`,
// `opacity`, `normals`, `metallicity`, `roughness`, `glow`, and `material`,
// plus the `colour` spelling alias for `color`.
func MaterialSymbols() map[string]evalctx.Symbol {
	color := evalctx.Symbol{
		Kind:     evalctx.FunctionSymbol,
		FuncType: evalctx.FunctionType{Param: types.AnyType, Return: types.Void},
		FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
			r, g, b, a, err := colorArgs("color", args(arg))
			if err != nil {
				return value.Void, err
			}
			ctx.Material.Color = [4]float64{r, g, b, a}
			return value.Void, nil
		},
	}

	return map[string]evalctx.Symbol{
		"color":  color,
		"colour": color, // British-spelling alias
		"texture": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.StringType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				s, err := wantString("texture", args(arg), 0)
				if err != nil {
					return value.Void, err
				}
				ctx.Material.TextureURL = s
				return value.Void, nil
			},
		},
		"opacity": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.NumberType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				n, err := wantNumber("opacity", args(arg), 0)
				if err != nil {
					return value.Void, err
				}
				ctx.SetOpacity(n)
				return value.Void, nil
			},
		},
		"normals": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.StringType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				s, err := wantString("normals", args(arg), 0)
				if err != nil {
					return value.Void, err
				}
				ctx.Material.Normals = s
				return value.Void, nil
			},
		},
		"metallicity": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.NumberType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				n, err := wantNumber("metallicity", args(arg), 0)
				if err != nil {
					return value.Void, err
				}
				ctx.Material.Metallicity = clampUnit(n)
				return value.Void, nil
			},
		},
		"roughness": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.NumberType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				n, err := wantNumber("roughness", args(arg), 0)
				if err != nil {
					return value.Void, err
				}
				ctx.Material.Roughness = clampUnit(n)
				return value.Void, nil
			},
		},
		"glow": {
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.AnyType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				r, g, b, a, err := colorArgs("glow", args(arg))
				if err != nil {
					return value.Void, err
				}
				ctx.Material.Glow = [4]float64{r, g, b, a}
				return value.Void, nil
			},
		},
		"material": {
			// A shorthand that forwards its argument to `color`, matching the
			// common case of `material color.red` seen in practice; full
			// structured material objects are assigned field-by-field via the
			// individual setters above instead.
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.AnyType, Return: types.Void},
			FuncImpl: color.FuncImpl,
		},
	}
}

// Package value implements the runtime Value sum type.
package value

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shapelang/shape/types"
)

// Kind mirrors types.Kind for the runtime tag of a Value.
type Kind int

const (
	Number Kind = iota
	Boolean
	String
	Color
	Texture
	Vector
	Size
	Rotation
	Text
	Path
	Mesh
	Polygon
	Point
	Range
	Bounds
	Tuple
	Object
)

// Value is the tagged union of every computable runtime value. Only the
// fields relevant to Kind are populated; geometry handles (Mesh, Path,
// Polygon) are opaque references into the geometry package, kept here as
// an `any` to avoid an import cycle between value and geometry.
type Value struct {
	Kind Kind

	Num  float64
	Bool bool
	Str  string

	R, G, B, A float64 // Color
	X, Y, Z    float64 // Vector / Size
	Roll, Yaw, Pitch float64 // Rotation (half-turns)

	TextString      string
	TextFont        string
	TextColor       *Value
	TextLineSpacing float64

	Start, End, Step float64 // Range

	BoundsMin, BoundsMax [3]float64

	Elements []Value          // Tuple
	Fields   map[string]Value // Object
	Keys     []string         // Object: insertion order for iteration

	Geometry any // Mesh / Path / Polygon handle from the geometry package
	Curved   bool // Point
}

// Void is the empty tuple, the result of a statement that produces nothing.
var Void = Value{Kind: Tuple, Elements: []Value{}}

// NumberOf builds a Number value.
func NumberOf(n float64) Value { return Value{Kind: Number, Num: n} }

// BoolOf builds a Boolean value.
func BoolOf(b bool) Value { return Value{Kind: Boolean, Bool: b} }

// StringOf builds a String value.
func StringOf(s string) Value { return Value{Kind: String, Str: s} }

// ColorOf builds a Color value.
func ColorOf(r, g, b, a float64) Value { return Value{Kind: Color, R: r, G: g, B: b, A: a} }

// VectorOf builds a Vector value.
func VectorOf(x, y, z float64) Value { return Value{Kind: Vector, X: x, Y: y, Z: z} }

// SizeOf builds a Size value.
func SizeOf(w, h, d float64) Value { return Value{Kind: Size, X: w, Y: h, Z: d} }

// RotationOf builds a Rotation value (half-turns).
func RotationOf(roll, yaw, pitch float64) Value {
	return Value{Kind: Rotation, Roll: roll, Yaw: yaw, Pitch: pitch}
}

// TupleOf builds a Tuple value, collapsing a single element per the
// calling convention used throughout the evaluator (callers that want a
// true one-tuple use TupleOfRaw).
func TupleOf(elements ...Value) Value {
	if len(elements) == 1 {
		return elements[0]
	}
	return Value{Kind: Tuple, Elements: elements}
}

// TupleOfRaw builds a Tuple value without single-element collapsing.
func TupleOfRaw(elements ...Value) Value { return Value{Kind: Tuple, Elements: elements} }

// ObjectOf builds an Object value preserving key order.
func ObjectOf(keys []string, fields map[string]Value) Value {
	return Value{Kind: Object, Keys: keys, Fields: fields}
}

// RangeOf builds a Range value.
func RangeOf(start, end, step float64) Value { return Value{Kind: Range, Start: start, End: end, Step: step} }

// FromDecoded converts a generically-decoded value (as produced by
// encoding/json or gopkg.in/yaml.v3 unmarshaling into `any`) into a Value:
// objects become Object, arrays become Tuple, and numbers/strings/booleans
// map directly. This is the single conversion path both the `.json` and
// `.yaml`/`.yml` import cases go through, so the two formats produce
// identically-shaped values for identically-shaped documents.
func FromDecoded(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Void, nil
	case bool:
		return BoolOf(x), nil
	case string:
		return StringOf(x), nil
	case float64:
		return NumberOf(x), nil
	case int:
		return NumberOf(float64(x)), nil
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			ev, err := FromDecoded(e)
			if err != nil {
				return Void, err
			}
			elems[i] = ev
		}
		return TupleOfRaw(elems...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		fields := make(map[string]Value, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fv, err := FromDecoded(x[k])
			if err != nil {
				return Void, err
			}
			fields[k] = fv
		}
		return ObjectOf(keys, fields), nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = val
		}
		return FromDecoded(m)
	default:
		return Void, fmt.Errorf("value: cannot convert decoded %T", v)
	}
}

// Type returns the static ValueType tag for v's dynamic shape.
func (v Value) Type() types.ValueType {
	switch v.Kind {
	case Number:
		return types.NumberType
	case Boolean:
		return types.BooleanType
	case String:
		return types.StringType
	case Color:
		return types.ColorType
	case Texture:
		return types.TextureType
	case Vector:
		return types.VectorType
	case Size:
		return types.SizeType
	case Rotation:
		return types.RotationType
	case Text:
		return types.TextType
	case Path:
		return types.PathType
	case Mesh:
		return types.MeshType
	case Polygon:
		return types.PolygonType
	case Point:
		return types.PointType
	case Range:
		return types.RangeType
	case Bounds:
		return types.BoundsType
	case Tuple:
		elems := make([]types.ValueType, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = e.Type()
		}
		return types.Tuple(elems...)
	case Object:
		fields := make(map[string]types.ValueType, len(v.Fields))
		for k, fv := range v.Fields {
			fields[k] = fv.Type()
		}
		return types.Object(fields)
	default:
		return types.AnyType
	}
}

// IsVoid reports whether v is the empty tuple.
func (v Value) IsVoid() bool { return v.Kind == Tuple && len(v.Elements) == 0 }

// Hashable returns a canonical, comparable representation used by `=`/`≠`:
// structural comparison including tuples, objects, and floating numbers by
// bit-identity.
func (v Value) Hashable() string {
	var sb strings.Builder
	v.writeHash(&sb)
	return sb.String()
}

func (v Value) writeHash(sb *strings.Builder) {
	switch v.Kind {
	case Number:
		fmt.Fprintf(sb, "n:%x", math.Float64bits(v.Num))
	case Boolean:
		fmt.Fprintf(sb, "b:%v", v.Bool)
	case String:
		fmt.Fprintf(sb, "s:%q", v.Str)
	case Color:
		fmt.Fprintf(sb, "c:%x,%x,%x,%x", math.Float64bits(v.R), math.Float64bits(v.G), math.Float64bits(v.B), math.Float64bits(v.A))
	case Vector, Size:
		fmt.Fprintf(sb, "v:%x,%x,%x", math.Float64bits(v.X), math.Float64bits(v.Y), math.Float64bits(v.Z))
	case Rotation:
		fmt.Fprintf(sb, "r:%x,%x,%x", math.Float64bits(v.Roll), math.Float64bits(v.Yaw), math.Float64bits(v.Pitch))
	case Range:
		fmt.Fprintf(sb, "g:%x,%x,%x", math.Float64bits(v.Start), math.Float64bits(v.End), math.Float64bits(v.Step))
	case Point:
		fmt.Fprintf(sb, "pt:%x,%x,%x,%v", math.Float64bits(v.X), math.Float64bits(v.Y), math.Float64bits(v.Z), v.Curved)
	case Text:
		sb.WriteString("x:")
		fmt.Fprintf(sb, "%q,%q,%x,", v.TextString, v.TextFont, math.Float64bits(v.TextLineSpacing))
		if v.TextColor != nil {
			v.TextColor.writeHash(sb)
		} else {
			sb.WriteString("-")
		}
	case Tuple:
		sb.WriteString("t(")
		for i, e := range v.Elements {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.writeHash(sb)
		}
		sb.WriteByte(')')
	case Object:
		sb.WriteString("o{")
		keys := append([]string(nil), v.Keys...)
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(sb, "%q:", k)
			fv := v.Fields[k]
			fv.writeHash(sb)
		}
		sb.WriteByte('}')
	default:
		// Mesh, Path, Polygon, and any other geometry-handle kind: equality
		// is the underlying *geometry.Node's identity, not its contents.
		fmt.Fprintf(sb, "h:%p", v.Geometry)
	}
}

// Equal reports structural equality per the Hashable rule.
func (v Value) Equal(other Value) bool { return v.Hashable() == other.Hashable() }

// Sequence returns a lazy view suitable for `for` iteration: ranges yield
// numbers, tuples yield elements, objects yield [key, value] pairs in
// lexicographic key order. ok is false if v has no sequence view.
func (v Value) Sequence() (func(yield func(Value) bool), bool) {
	switch v.Kind {
	case Range:
		return func(yield func(Value) bool) {
			step := v.Step
			if step == 0 {
				step = 1
			}
			if step > 0 {
				for x := v.Start; x <= v.End+1e-9; x += step {
					if !yield(NumberOf(x)) {
						return
					}
				}
			} else {
				for x := v.Start; x >= v.End-1e-9; x += step {
					if !yield(NumberOf(x)) {
						return
					}
				}
			}
		}, true
	case Tuple:
		return func(yield func(Value) bool) {
			for _, e := range v.Elements {
				if !yield(e) {
					return
				}
			}
		}, true
	case Object:
		return func(yield func(Value) bool) {
			keys := append([]string(nil), v.Keys...)
			sort.Strings(keys)
			for _, k := range keys {
				pair := TupleOfRaw(StringOf(k), v.Fields[k])
				if !yield(pair) {
					return
				}
			}
		}, true
	default:
		return nil, false
	}
}

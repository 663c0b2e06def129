// Package members is the single source of truth for member access
// (`receiver.ident`) on both the static and dynamic paths: the static
// analyzer asks it for a member's declared type, the evaluator asks it for
// a member's runtime value, keyed off the same receiver shape so the two
// never drift apart.
package members

import (
	"sort"
	"strings"

	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

// StaticTable returns the member-name -> type table for values of the given
// receiver type, and the sorted list of member names (used for fuzzy
// "unknown member" suggestions).
func StaticTable(receiver types.ValueType) (map[string]types.ValueType, []string) {
	var table map[string]types.ValueType
	switch receiver.Kind {
	case types.VectorT:
		table = map[string]types.ValueType{"x": types.NumberType, "y": types.NumberType, "z": types.NumberType}
	case types.SizeT:
		table = map[string]types.ValueType{"width": types.NumberType, "height": types.NumberType, "depth": types.NumberType}
	case types.RotationT:
		table = map[string]types.ValueType{"roll": types.NumberType, "yaw": types.NumberType, "pitch": types.NumberType}
	case types.ColorT:
		table = map[string]types.ValueType{"red": types.NumberType, "green": types.NumberType, "blue": types.NumberType, "alpha": types.NumberType}
	case types.RangeT:
		table = map[string]types.ValueType{"start": types.NumberType, "end": types.NumberType, "step": types.NumberType}
	case types.BoundsT:
		table = map[string]types.ValueType{"min": types.VectorType, "max": types.VectorType, "size": types.SizeType, "center": types.VectorType}
	case types.StringT:
		table = map[string]types.ValueType{
			"lines":      types.List(types.StringType),
			"words":      types.List(types.StringType),
			"characters": types.List(types.StringType),
			"count":      types.NumberType,
			"uppercased": types.StringType,
			"lowercased": types.StringType,
		}
	case types.TupleT:
		table = map[string]types.ValueType{
			"count": types.NumberType,
			"last":  types.AnyType,
		}
		ordinals := []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth"}
		for i, name := range ordinals {
			if i < len(receiver.Elements) {
				table[name] = receiver.Elements[i]
			} else if len(receiver.Elements) > 0 {
				table[name] = receiver.Elements[len(receiver.Elements)-1]
			}
		}
		if len(receiver.Elements) > 0 {
			table["last"] = receiver.Elements[len(receiver.Elements)-1]
			table["allButFirst"] = types.Tuple(receiver.Elements[min(1, len(receiver.Elements)):]...)
			table["allButLast"] = types.Tuple(receiver.Elements[:max(0, len(receiver.Elements)-1)]...)
		}
	case types.ListT:
		table = map[string]types.ValueType{
			"count":       types.NumberType,
			"first":       *receiver.Elem,
			"last":        *receiver.Elem,
			"allButFirst": receiver,
			"allButLast":  receiver,
		}
	case types.ObjectT:
		table = map[string]types.ValueType{}
		for k, t := range receiver.Fields {
			table[k] = t
		}
	case types.TextT:
		table = map[string]types.ValueType{"string": types.StringType, "color": types.ColorType}
	default:
		table = map[string]types.ValueType{}
	}
	names := make([]string, 0, len(table))
	for k := range table {
		names = append(names, k)
	}
	sort.Strings(names)
	return table, names
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Lookup resolves `receiver.name` at runtime, mirroring StaticTable's shape
// dispatch but returning an actual Value.
func Lookup(receiver value.Value, name string) (value.Value, bool) {
	switch receiver.Kind {
	case value.Vector, value.Size:
		switch name {
		case "x", "width":
			return value.NumberOf(receiver.X), true
		case "y", "height":
			return value.NumberOf(receiver.Y), true
		case "z", "depth":
			return value.NumberOf(receiver.Z), true
		}
	case value.Rotation:
		switch name {
		case "roll":
			return value.NumberOf(receiver.Roll), true
		case "yaw":
			return value.NumberOf(receiver.Yaw), true
		case "pitch":
			return value.NumberOf(receiver.Pitch), true
		}
	case value.Color:
		switch name {
		case "red":
			return value.NumberOf(receiver.R), true
		case "green":
			return value.NumberOf(receiver.G), true
		case "blue":
			return value.NumberOf(receiver.B), true
		case "alpha":
			return value.NumberOf(receiver.A), true
		}
	case value.Range:
		switch name {
		case "start":
			return value.NumberOf(receiver.Start), true
		case "end":
			return value.NumberOf(receiver.End), true
		case "step":
			return value.NumberOf(receiver.Step), true
		}
	case value.Tuple:
		n := len(receiver.Elements)
		ordinals := []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth"}
		for i, on := range ordinals {
			if name == on && i < n {
				return receiver.Elements[i], true
			}
		}
		switch name {
		case "count":
			return value.NumberOf(float64(n)), true
		case "last":
			if n > 0 {
				return receiver.Elements[n-1], true
			}
		case "allButFirst":
			if n > 0 {
				return value.TupleOfRaw(receiver.Elements[1:]...), true
			}
			return value.TupleOfRaw(), true
		case "allButLast":
			if n > 0 {
				return value.TupleOfRaw(receiver.Elements[:n-1]...), true
			}
			return value.TupleOfRaw(), true
		}
	case value.Object:
		if fv, ok := receiver.Fields[name]; ok {
			return fv, true
		}
	case value.String:
		switch name {
		case "count":
			return value.NumberOf(float64(len([]rune(receiver.Str)))), true
		case "uppercased":
			return value.StringOf(strings.ToUpper(receiver.Str)), true
		case "lowercased":
			return value.StringOf(strings.ToLower(receiver.Str)), true
		case "lines":
			return stringTuple(strings.Split(receiver.Str, "\n")), true
		case "words":
			return stringTuple(strings.Fields(receiver.Str)), true
		case "characters":
			rs := []rune(receiver.Str)
			elems := make([]value.Value, len(rs))
			for i, r := range rs {
				elems[i] = value.StringOf(string(r))
			}
			return value.TupleOfRaw(elems...), true
		}
	case value.Text:
		switch name {
		case "string":
			return value.StringOf(receiver.TextString), true
		case "color":
			if receiver.TextColor != nil {
				return *receiver.TextColor, true
			}
		}
	}
	return value.Value{}, false
}

func stringTuple(parts []string) value.Value {
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.StringOf(p)
	}
	return value.TupleOfRaw(elems...)
}

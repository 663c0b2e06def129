// Package types implements the static ValueType lattice: literal types, the
// compound forms (list, tuple, union, object), and the subtyping relation
// the static analyzer and evaluator both consult.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the shape of a ValueType.
type Kind int

const (
	Any Kind = iota
	NumberT
	BooleanT
	StringT
	ColorT
	TextureT
	VectorT
	SizeT
	RotationT
	TextT
	PathT
	MeshT
	PolygonT
	PointT
	RangeT
	BoundsT
	ListT
	TupleT
	UnionT
	ObjectT
)

// ValueType is an immutable, structurally comparable static type.
type ValueType struct {
	Kind Kind

	// ListT
	Elem *ValueType

	// TupleT
	Elements []ValueType

	// UnionT
	Members []ValueType

	// ObjectT
	Fields map[string]ValueType
}

// Primitive constructors for the literal kinds.
var (
	NumberType  = ValueType{Kind: NumberT}
	BooleanType = ValueType{Kind: BooleanT}
	StringType  = ValueType{Kind: StringT}
	ColorType   = ValueType{Kind: ColorT}
	TextureType = ValueType{Kind: TextureT}
	VectorType  = ValueType{Kind: VectorT}
	SizeType    = ValueType{Kind: SizeT}
	RotationType = ValueType{Kind: RotationT}
	TextType    = ValueType{Kind: TextT}
	PathType    = ValueType{Kind: PathT}
	MeshType    = ValueType{Kind: MeshT}
	PolygonType = ValueType{Kind: PolygonT}
	PointType   = ValueType{Kind: PointT}
	RangeType   = ValueType{Kind: RangeT}
	BoundsType  = ValueType{Kind: BoundsT}
	AnyType     = ValueType{Kind: Any}
)

// Void is the empty tuple, the type of a command or statement that
// produces nothing.
var Void = ValueType{Kind: TupleT, Elements: []ValueType{}}

// List constructs list(elem).
func List(elem ValueType) ValueType { return ValueType{Kind: ListT, Elem: &elem} }

// Tuple constructs tuple([elements...]).
func Tuple(elements ...ValueType) ValueType { return ValueType{Kind: TupleT, Elements: elements} }

// Object constructs object({name: type, ...}).
func Object(fields map[string]ValueType) ValueType { return ValueType{Kind: ObjectT, Fields: fields} }

// Union constructs union({members...}), canonicalized: nested unions are
// flattened, subsumed members are removed, and a singleton union collapses
// to its one member.
func Union(members ...ValueType) ValueType {
	var flat []ValueType
	var flatten func(ValueType)
	flatten = func(t ValueType) {
		if t.Kind == UnionT {
			for _, m := range t.Members {
				flatten(m)
			}
			return
		}
		flat = append(flat, t)
	}
	for _, m := range members {
		flatten(m)
	}

	var kept []ValueType
	for i, t := range flat {
		subsumed := false
		for j, u := range flat {
			if i == j {
				continue
			}
			if t.SubtypeOf(u) && !u.SubtypeOf(t) {
				subsumed = true
				break
			}
			if t.SubtypeOf(u) && u.SubtypeOf(t) && j < i {
				subsumed = true // keep only the first of equal members
				break
			}
		}
		if !subsumed {
			kept = append(kept, t)
		}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return ValueType{Kind: UnionT, Members: kept}
}

// SubtypeOf reports whether t is a subtype of other, per the lattice rules:
//
//	anything <= any
//	union(L) <= R           iff every member of L <= R
//	T <= union(R)           iff some member of R has T <= r
//	list(A) <= list(B)      iff A <= B
//	tuple([A...]) <= tuple([B...])  iff same length and pointwise A_i <= B_i
//	tuple([A...]) <= list(B)        iff every A_i <= B
//	object is invariant on field sets used by member lookup (no subtyping
//	beyond structural equality here; the evaluator does not rely on object
//	subtyping for dispatch)
func (t ValueType) SubtypeOf(other ValueType) bool {
	if other.Kind == Any {
		return true
	}
	if t.Kind == UnionT {
		for _, m := range t.Members {
			if !m.SubtypeOf(other) {
				return false
			}
		}
		return true
	}
	if other.Kind == UnionT {
		for _, m := range other.Members {
			if t.SubtypeOf(m) {
				return true
			}
		}
		return false
	}
	if t.Kind == ListT && other.Kind == ListT {
		return t.Elem.SubtypeOf(*other.Elem)
	}
	if t.Kind == TupleT && other.Kind == TupleT {
		if len(t.Elements) != len(other.Elements) {
			return false
		}
		for i := range t.Elements {
			if !t.Elements[i].SubtypeOf(other.Elements[i]) {
				return false
			}
		}
		return true
	}
	if t.Kind == TupleT && other.Kind == ListT {
		for _, e := range t.Elements {
			if !e.SubtypeOf(*other.Elem) {
				return false
			}
		}
		return true
	}
	if t.Kind == Any {
		return other.Kind == Any
	}
	return t.Equal(other)
}

// Equal reports structural equality (not subtyping).
func (t ValueType) Equal(other ValueType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case ListT:
		return t.Elem.Equal(*other.Elem)
	case TupleT:
		if len(t.Elements) != len(other.Elements) {
			return false
		}
		for i := range t.Elements {
			if !t.Elements[i].Equal(other.Elements[i]) {
				return false
			}
		}
		return true
	case UnionT:
		if len(t.Members) != len(other.Members) {
			return false
		}
		for i := range t.Members {
			if !t.Members[i].Equal(other.Members[i]) {
				return false
			}
		}
		return true
	case ObjectT:
		if len(t.Fields) != len(other.Fields) {
			return false
		}
		for k, v := range t.Fields {
			ov, ok := other.Fields[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (t ValueType) String() string {
	switch t.Kind {
	case Any:
		return "any"
	case NumberT:
		return "number"
	case BooleanT:
		return "boolean"
	case StringT:
		return "string"
	case ColorT:
		return "color"
	case TextureT:
		return "texture"
	case VectorT:
		return "vector"
	case SizeT:
		return "size"
	case RotationT:
		return "rotation"
	case TextT:
		return "text"
	case PathT:
		return "path"
	case MeshT:
		return "mesh"
	case PolygonT:
		return "polygon"
	case PointT:
		return "point"
	case RangeT:
		return "range"
	case BoundsT:
		return "bounds"
	case ListT:
		return fmt.Sprintf("list(%s)", t.Elem.String())
	case TupleT:
		if len(t.Elements) == 0 {
			return "void"
		}
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = e.String()
		}
		return fmt.Sprintf("tuple(%s)", strings.Join(parts, ", "))
	case UnionT:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.String()
		}
		sort.Strings(parts)
		return strings.Join(parts, " | ")
	case ObjectT:
		keys := make([]string, 0, len(t.Fields))
		for k := range t.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, t.Fields[k].String())
		}
		return fmt.Sprintf("object(%s)", strings.Join(parts, ", "))
	default:
		return "unknown"
	}
}

// IsVoid reports whether t is the empty tuple.
func (t ValueType) IsVoid() bool { return t.Kind == TupleT && len(t.Elements) == 0 }

package evalctx

import (
	"sort"

	"github.com/shapelang/shape/analyzer"
	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/geometry"
	"github.com/shapelang/shape/internal/invariant"
	"github.com/shapelang/shape/internal/rng"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

// maxRecursionDepth bounds user-defined function/block invocation, per the
// language's hard recursion limit.
const maxRecursionDepth = 25

// maxImportDepth is a sanity bound on nested (non-circular) imports; the
// cycle check catches re-entry, this catches a runaway chain of distinct
// files.
const maxImportDepth = 64

// Context is the interpreter's single piece of mutable state: an explicit,
// mutably-borrowed struct passed into each evaluation step rather than
// hidden behind globals. A fresh Context is created per top-level
// `evaluate` call; every block/definition invocation pushes a child.
type Context struct {
	Source      string
	SourceIndex int // offset of Source within the original multi-import buffer, for diagnostics
	BaseURL     string

	Symbols     *BlockType // built-in table for the current block kind
	UserSymbols Table      // mutable
	Options     map[string]bool

	Name           string
	Material       geometry.Material
	Background     [4]float64
	Transform      geometry.Transform
	ChildTransform geometry.Transform
	Opacity        float64
	Detail         int // segment count, default 16
	Smoothing      *float64
	Font           string

	ChildTypes types.ValueType
	Children   []value.Value
	NamedObjects map[string]value.Value

	Random *rng.Source

	Delegate    geometry.Delegate
	ImportCache *geometry.Cache
	ImportStack []string
	StackDepth  int

	// Imports holds the parsed-Program and decoded-Value caches that live
	// for one top-level evaluation, shared by pointer across every pushed
	// Context the way ImportCache is.
	Imports *ImportState

	// Analysis is the advisory static pass over the program being
	// evaluated, shared by pointer across every pushed Context. The
	// evaluator consults it for the inferred parameter types of
	// user-defined functions when building argument diagnostics; a nil
	// Analysis only means less specific messages.
	Analysis *analyzer.Analysis

	// FieldOrder records, in insertion order, the names bound through the
	// implicit-field path (AllowImplicitOptions below), so an `object`
	// block can rebuild its ordered field map after its body has run.
	FieldOrder []string

	// AllowImplicitOptions is set while running a user-defined block's
	// call-site and declaration bodies: a command whose identifier is not
	// otherwise bound is treated as a caller-supplied option pre-set
	// instead of raising UnknownSymbol, implementing the "outer context
	// already set ident" half of option scoping (see PushScope).
	AllowImplicitOptions bool

	// InUserDefinition is set on the context pushed for a user-defined
	// block's invocation, the only place an `option` statement is legal.
	InUserDefinition bool
}

// ImportState is the per-evaluate-call cache for the two import kinds the
// evaluator itself decodes: parsed `.shape` Programs and decoded
// `.json`/`.yaml` Values. Geometry files and raw bytes are cached in the
// host-supplied geometry.Cache instead; this just covers the two shapes
// only the evaluator produces.
type ImportState struct {
	Programs map[string]*ast.Program
	Values   map[string]value.Value
}

// NewImportState returns an empty ImportState.
func NewImportState() *ImportState {
	return &ImportState{Programs: map[string]*ast.Program{}, Values: map[string]value.Value{}}
}

// Table is the symbol environment: a flat map with lexical push/pop
// discipline implemented by snapshot-and-restore rather than a linked list
// of frames, matching the "pushScope snapshots user symbols and restores
// them on exit" policy verbatim.
type Table map[string]Symbol

// Clone returns a shallow copy of t, safe to mutate independently.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// NewRootContext builds the initial Context for a top-level `evaluate`
// call: the global block type installed, a fresh random stream, an empty
// import cache/stack, and stack depth zero.
func NewRootContext(source, baseURL string, rootType *BlockType, delegate geometry.Delegate) *Context {
	return &Context{
		Source:      source,
		BaseURL:     baseURL,
		Symbols:     rootType,
		UserSymbols: Table{},
		Options:     map[string]bool{},
		Material:    geometry.DefaultMaterial(),
		Background:  [4]float64{1, 1, 1, 1},
		Transform:   geometry.IdentityTransform(),
		ChildTransform: geometry.IdentityTransform(),
		Opacity:     1,
		Detail:      16,
		ChildTypes:  types.AnyType,
		NamedObjects: map[string]value.Value{},
		Random:      rng.New(0),
		Delegate:    delegate,
		ImportCache: geometry.NewCache(),
		Imports:     NewImportState(),
	}
}

// Push returns a child context for invoking a built-in or user block of the
// given kind: it inherits source, delegate, cache, random, material,
// detail, smoothing, font, baseURL, and cumulative opacity;
// resets transform/childTransform/children; installs the block's symbol
// table and takes childTypes from the block type; clears user symbols shadowed by the block's own symbols (but
// user overrides of names the block does not provide survive); and
// increments stack depth.
func (c *Context) Push(blockType *BlockType) *Context {
	child := &Context{
		Source:      c.Source,
		SourceIndex: c.SourceIndex,
		BaseURL:     c.BaseURL,
		Symbols:     blockType,
		UserSymbols: c.unshadowedUserSymbols(blockType),
		Options:     map[string]bool{},
		Material:    c.Material,
		Background:  c.Background,
		Transform:   geometry.IdentityTransform(),
		ChildTransform: geometry.IdentityTransform(),
		Opacity:     c.Material.Opacity,
		Detail:      c.Detail,
		Smoothing:   c.Smoothing,
		Font:        c.Font,
		ChildTypes:  blockType.ChildTypes,
		NamedObjects: map[string]value.Value{},
		Random:      c.Random,
		Delegate:    c.Delegate,
		ImportCache: c.ImportCache,
		ImportStack: c.ImportStack,
		StackDepth:  c.StackDepth + 1,
		Imports:     c.Imports,
		Analysis:    c.Analysis,

		AllowImplicitOptions: blockType.ImplicitFields,
	}
	invariant.Invariant(child.StackDepth <= maxRecursionDepth, "recursion depth exceeded: %d", child.StackDepth)
	return child
}

// PushDefinition returns a child context for invoking a user-defined
// function or block: like Push, but it adopts the caller's current name,
// transform, and opacity rather than resetting them, and installs the
// definition table (any block kind; childTypes is unrestricted) so the
// body may contain any statement a user block permits.
func (c *Context) PushDefinition(declSymbols Table, definitionType *BlockType) *Context {
	child := c.Push(definitionType)
	child.Name = c.Name
	child.Transform = c.Transform
	child.Opacity = c.Opacity
	child.ChildTypes = types.AnyType
	for k, v := range declSymbols {
		if _, shadowed := child.UserSymbols[k]; !shadowed {
			child.UserSymbols[k] = v
		}
	}
	return child
}

// unshadowedUserSymbols computes the user symbol table a pushed child
// should start with: the caller's user symbols, minus any name the new
// block kind provides as one of its own built-ins.
func (c *Context) unshadowedUserSymbols(blockType *BlockType) Table {
	out := make(Table, len(c.UserSymbols))
	for k, v := range c.UserSymbols {
		if _, builtin := blockType.Symbols[k]; builtin {
			continue
		}
		out[k] = v
	}
	return out
}

// PushScope snapshots UserSymbols, runs body, then restores the snapshot —
// except any Option binding whose name is in c.Options (the current
// block's declared option slots) survives the restore, propagating
// caller-supplied option overrides back to the definition site. This
// condition is load-bearing and must match exactly: an entry survives iff
// c.Options has that name, not merely because it is an Option symbol.
func (c *Context) PushScope(body func() error) error {
	before := c.UserSymbols.Clone()
	err := body()
	after := c.UserSymbols
	restored := before
	for name := range c.Options {
		if sym, ok := after[name]; ok && sym.Kind == OptionSymbol {
			restored[name] = sym
		}
	}
	c.UserSymbols = restored
	return err
}

// Lookup resolves name against user symbols first, then the built-in
// table for the current block kind, returning (symbol, found).
func (c *Context) Lookup(name string) (Symbol, bool) {
	if sym, ok := c.UserSymbols[name]; ok {
		return sym, true
	}
	if c.Symbols != nil {
		if sym, ok := c.Symbols.Symbols[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// KnownNames returns every name visible in c, sorted for "did you mean"
// suggestions built from it by the diagnostics package.
func (c *Context) KnownNames() []string {
	seen := make(map[string]bool)
	var names []string
	for k := range c.UserSymbols {
		if !seen[k] {
			seen[k] = true
			names = append(names, k)
		}
	}
	if c.Symbols != nil {
		for k := range c.Symbols.Symbols {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)
	return names
}

// AddChild applies the current ChildTransform to v (the addValue contract's
// "transformed by childTransform" rule for mesh/vector/point/polygon/path
// children), appends the result to the accumulated children, and
// recursively gathers any named geometry nodes reachable from it into
// NamedObjects, the side effect that lets a later `objectName` reference
// resolve against a sibling produced earlier in the same scope.
func (c *Context) AddChild(v value.Value) {
	v = c.applyChildTransform(v)
	c.Children = append(c.Children, v)
	c.gatherNamed(v)
}

// applyChildTransform composes c.ChildTransform onto v's own transform: a
// mesh/path/polygon's geometry.Node.Transform, or a bare vector/point's
// position. Composition follows the same rules translate/rotate/scale use
// to accumulate ChildTransform itself (stdlib/transform.go): position
// composes additively, scaled by the parent's accumulated scale;
// orientation composes additively; scale composes multiplicatively. A
// geometry.Node is structurally cloned rather than mutated in place, since
// its Value's Geometry handle is shared and may still be reachable from
// NamedObjects or a caller-held reference.
func (c *Context) applyChildTransform(v value.Value) value.Value {
	switch v.Kind {
	case value.Mesh, value.Path, value.Polygon:
		node, ok := v.Geometry.(*geometry.Node)
		if !ok || node == nil {
			return v
		}
		cloned := *node
		cloned.Transform = composeTransform(c.ChildTransform, node.Transform)
		v.Geometry = &cloned
		return v
	case value.Vector, value.Point:
		v.X, v.Y, v.Z = composePosition(c.ChildTransform, v.X, v.Y, v.Z)
		return v
	default:
		return v
	}
}

// composeTransform combines a parent childTransform with a child's own
// transform.
func composeTransform(parent, child geometry.Transform) geometry.Transform {
	x, y, z := composePosition(parent, child.Position[0], child.Position[1], child.Position[2])
	return geometry.Transform{
		Position: [3]float64{x, y, z},
		Orientation: [3]float64{
			parent.Orientation[0] + child.Orientation[0],
			parent.Orientation[1] + child.Orientation[1],
			parent.Orientation[2] + child.Orientation[2],
		},
		Scale: [3]float64{
			parent.Scale[0] * child.Scale[0],
			parent.Scale[1] * child.Scale[1],
			parent.Scale[2] * child.Scale[2],
		},
	}
}

// composePosition applies a parent transform's position/scale to a
// child-local x/y/z triple.
func composePosition(parent geometry.Transform, x, y, z float64) (float64, float64, float64) {
	return parent.Position[0] + x*parent.Scale[0],
		parent.Position[1] + y*parent.Scale[1],
		parent.Position[2] + z*parent.Scale[2]
}

func (c *Context) gatherNamed(v value.Value) {
	if node, ok := v.Geometry.(*geometry.Node); ok && node != nil {
		if node.Name != "" {
			c.NamedObjects[node.Name] = v
		}
		for _, child := range node.Children {
			c.gatherNamed(value.Value{Kind: v.Kind, Geometry: child})
		}
	}
	if v.Kind == value.Tuple {
		for _, e := range v.Elements {
			c.gatherNamed(e)
		}
	}
}

// SetOpacity applies the cumulative-opacity invariant: exactly one
// multiplicative opacity value per evaluation path, seeded from the
// parent's material opacity when a child context is pushed.
func (c *Context) SetOpacity(factor float64) {
	c.Opacity *= factor
	c.Material.Opacity = c.Opacity
}

// EnterImport pushes url onto the import stack and returns true, or
// returns false without pushing if it is already present (circular
// import), per the "import stack contains
// each URL at most once" invariant.
func (c *Context) EnterImport(url string) bool {
	for _, u := range c.ImportStack {
		if u == url {
			return false
		}
	}
	c.ImportStack = append(c.ImportStack, url)
	invariant.Invariant(len(c.ImportStack) <= maxImportDepth, "import stack depth exceeded: %d", len(c.ImportStack))
	return true
}

// ExitImport pops the most recently entered import URL.
func (c *Context) ExitImport() {
	if len(c.ImportStack) > 0 {
		c.ImportStack = c.ImportStack[:len(c.ImportStack)-1]
	}
}

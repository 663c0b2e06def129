// Package geometry is the narrow seam between the language evaluator and
// the external geometry-construction collaborator (mesh booleans, path
// tessellation, font glyph outlines, model file loaders). None of that math
// lives here or anywhere in this module; this package only defines the
// handle types the evaluator builds and hands off, and the Delegate
// interface a host implements to supply real geometry.
package geometry

import "fmt"

// PathPoint is one control point accumulated by a path block: a position
// plus whether the outline passes through it as a curve. Tessellating the
// points into an actual outline is the collaborator's job; this module only
// carries them.
type PathPoint struct {
	Position [3]float64
	Curved   bool
}

// Node is an opaque geometry tree built in strict child-then-parent order,
// so the scene graph this module produces is never cyclic: a Node owns its
// Children outright (design note: "owned trees").
type Node struct {
	Kind     string // "cube", "sphere", "union", "path", "camera", "light", ...
	Children []*Node
	Points   []PathPoint // control points for path-kind nodes

	Transform Transform
	Material  Material
	Name      string

	// Options captures the block-specific option values set on this node
	// (e.g. extrude's "along"), keyed by option name. Kept generic because
	// the set of options is extensible per custom block type.
	Options map[string]any

	// AssociatedData is a reference-counted-by-convention slot for
	// host-attached metadata (e.g. a loaded mesh handle); this module never
	// interprets it.
	AssociatedData any
}

// Transform is a position/orientation/scale triple applied to values added
// to a child slot.
type Transform struct {
	Position    [3]float64
	Orientation [3]float64 // roll, yaw, pitch, half-turns
	Scale       [3]float64
}

// IdentityTransform returns the neutral transform (no translation, no
// rotation, unit scale).
func IdentityTransform() Transform {
	return Transform{Scale: [3]float64{1, 1, 1}}
}

// Material holds the cumulative material state applied to a node.
type Material struct {
	Color         [4]float64
	TextureURL    string
	Opacity       float64
	Normals       string
	Metallicity   float64
	Roughness     float64
	Glow          [4]float64
}

// DefaultMaterial returns the material state a fresh context starts with:
// opaque white, zero metallicity/roughness/glow.
func DefaultMaterial() Material {
	return Material{Color: [4]float64{1, 1, 1, 1}, Opacity: 1}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max [3]float64
}

// Scene is the evaluator's final product: the geometry roots, the
// background, the flattened camera list, and the import cache the caller
// supplied (or the default one the evaluator created).
type Scene struct {
	Background [4]float64
	Children   []*Node
	Cameras    []*Node
	Cache      *Cache
}

// Delegate is implemented by the host application. It resolves logical
// import paths to URLs, loads non-`.shape` geometry files (STL/OBJ/...),
// and receives values printed via `print`.
type Delegate interface {
	// ResolveURL maps a logical import path to an absolute URL, relative
	// to baseURL (empty baseURL means "relative to the program root").
	ResolveURL(path, baseURL string) (string, error)

	// ImportGeometry loads a non-`.shape`, non-text, non-JSON/YAML file as
	// geometry. ok is false if the delegate does not recognise the file
	// type, which the evaluator turns into FileTypeMismatch.
	ImportGeometry(url string) (node *Node, ok bool, err error)

	// DebugLog receives the arguments of a `print` statement.
	DebugLog(values []any)

	// ReadText returns the raw content of url, used for `.shape`, `.txt`,
	// `.json`, and `.yaml`/`.yml` imports, all of which decode from source
	// text rather than going through ImportGeometry.
	ReadText(url string) (string, error)
}

// Error is returned by a Delegate when the underlying file system operation
// fails in a way the evaluator should classify (not found vs. access
// restricted vs. a download timeout).
type Error struct {
	Kind string // "not_found", "access_restricted", "timed_out"
	URL  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.URL) }

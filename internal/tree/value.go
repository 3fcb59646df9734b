package tree

// CheckableKey is reserved group metadata; it is never a child.
const CheckableKey = "_checkable"

type Kind int

const (
	KindTrue Kind = iota
	KindFalse
	KindNull
	KindScalar
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindTrue:
		return "item"
	case KindFalse:
		return "skipped"
	case KindNull:
		return "note"
	case KindScalar:
		return "scalar"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Value is one node of a checklist tree.
//
// The zero Value is a `true` leaf.
type Value struct {
	kind   Kind
	scalar any
	group  *Group
}

func True() Value  { return Value{kind: KindTrue} }
func False() Value { return Value{kind: KindFalse} }
func Null() Value  { return Value{kind: KindNull} }

// Scalar wraps an opaque leaf (string, number, array).
func Scalar(v any) Value { return Value{kind: KindScalar, scalar: v} }

// GroupValue wraps g. A nil g is treated as an empty mapping.
func GroupValue(g *Group) Value {
	if g == nil {
		g = NewGroup()
	}
	return Value{kind: KindGroup, group: g}
}

func (v Value) Kind() Kind { return v.kind }

// Inert reports whether v is a `false` or `null` leaf.
func (v Value) Inert() bool { return v.kind == KindFalse || v.kind == KindNull }

// ScalarValue returns the opaque payload of a KindScalar value.
func (v Value) ScalarValue() any { return v.scalar }

// Group returns the mapping behind a KindGroup value.
func (v Value) Group() (*Group, bool) {
	if v.kind != KindGroup || v.group == nil {
		return nil, false
	}
	return v.group, true
}

// Group is an insertion-ordered mapping of child name to Value plus the
// `_checkable` metadata.
type Group struct {
	keys     []string
	children map[string]Value

	hasCheckable bool
	checkable    Value
}

func NewGroup() *Group {
	return &Group{children: map[string]Value{}}
}

// Set adds or replaces a child. Replacing keeps the original position.
// Setting CheckableKey stores metadata instead of a child.
func (g *Group) Set(key string, v Value) *Group {
	if key == CheckableKey {
		g.hasCheckable = true
		g.checkable = v
		return g
	}
	if _, ok := g.children[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.children[key] = v
	return g
}

// Checkable reports whether `_checkable` is present and exactly `true`.
func (g *Group) Checkable() bool {
	return g.hasCheckable && g.checkable.kind == KindTrue
}

// Metadata returns the raw `_checkable` value, if present.
func (g *Group) Metadata() (Value, bool) {
	return g.checkable, g.hasCheckable
}

// Keys returns child names in insertion order, metadata excluded.
func (g *Group) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Len counts children, metadata excluded.
func (g *Group) Len() int { return len(g.keys) }

// RawLen counts every key of the mapping, metadata included.
func (g *Group) RawLen() int {
	if g.hasCheckable {
		return len(g.keys) + 1
	}
	return len(g.keys)
}

func (g *Group) Child(key string) (Value, bool) {
	v, ok := g.children[key]
	return v, ok
}

// IsGroup reports whether v is a non-empty mapping. The metadata key counts
// towards non-emptiness.
func IsGroup(v Value) bool {
	g, ok := v.Group()
	return ok && g.RawLen() > 0
}

func hasChildren(v Value) bool {
	g, ok := v.Group()
	return ok && g.Len() > 0
}

// Resolve walks path from root. ok is false when an intermediate value is not
// a mapping or a key is absent.
func Resolve(root Value, path []string) (Value, bool) {
	cur := root
	for _, key := range path {
		g, ok := cur.Group()
		if !ok {
			return Value{}, false
		}
		next, ok := g.Child(key)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

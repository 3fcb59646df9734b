package tree

// Linearize returns every identifier under root in depth-first pre-order.
// The root itself is not emitted and siblings keep their key order.
func Linearize(root Value) []string {
	var out []string
	Walk(root, func(n Node) bool {
		out = append(out, n.ID)
		return true
	})
	return out
}

// Node is one visited position of a Walk.
type Node struct {
	ID    string
	Path  []string
	Depth int
	Value Value
}

// Name is the node's own key.
func (n Node) Name() string {
	if len(n.Path) == 0 {
		return ""
	}
	return n.Path[len(n.Path)-1]
}

// Walk visits nodes in Linearize order. Returning false from fn skips the
// node's children.
func Walk(root Value, fn func(Node) bool) {
	walk(root, nil, fn)
}

func walk(parent Value, path []string, fn func(Node) bool) {
	g, ok := parent.Group()
	if !ok {
		return
	}
	for _, key := range g.keys {
		child := g.children[key]
		p := childPath(path, key)
		descend := fn(Node{ID: Encode(p), Path: p, Depth: len(path), Value: child})
		if descend && hasChildren(child) {
			walk(child, p, fn)
		}
	}
}

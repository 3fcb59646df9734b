package tree

// Index caches the linear order and actionability of one tree snapshot.
// Its answers match the uncached functions; build a new Index whenever the
// tree changes.
type Index struct {
	root       Value
	nodes      []Node
	pos        map[string]int
	actionable []bool
}

func NewIndex(root Value) *Index {
	idx := &Index{root: root, pos: map[string]int{}}
	Walk(root, func(n Node) bool {
		idx.pos[n.ID] = len(idx.nodes)
		idx.nodes = append(idx.nodes, n)
		idx.actionable = append(idx.actionable, actionable(n.Value, n.Name()))
		return true
	})
	return idx
}

func (x *Index) Root() Value { return x.root }

func (x *Index) Len() int { return len(x.nodes) }

// Nodes returns the nodes in Linearize order.
func (x *Index) Nodes() []Node { return x.nodes }

func (x *Index) Order() []string {
	out := make([]string, len(x.nodes))
	for i, n := range x.nodes {
		out[i] = n.ID
	}
	return out
}

func (x *Index) Lookup(id string) (Node, bool) {
	i, ok := x.pos[id]
	if !ok {
		return Node{}, false
	}
	return x.nodes[i], true
}

func (x *Index) IsActionable(id string) bool {
	i, ok := x.pos[id]
	return ok && x.actionable[i]
}

func (x *Index) IsCompleted(id string, checked Checked) bool {
	n, ok := x.Lookup(id)
	if !ok {
		return false
	}
	return IsCompleted(n.Value, n.Path, checked, x.root)
}

func (x *Index) Next(current string) (string, bool) {
	i, ok := x.pos[current]
	if !ok {
		i = -1
	}
	return scanForward(x.Order(), i, x.IsActionable)
}

func (x *Index) Prev(current string) (string, bool) {
	i, ok := x.pos[current]
	if !ok {
		i = -1
	}
	return scanBackward(x.Order(), i, x.IsActionable)
}

func (x *Index) First() (string, bool) {
	for i, n := range x.nodes {
		if x.actionable[i] {
			return n.ID, true
		}
	}
	return "", false
}

package tree

// Checked is a read-only view of the identifiers the user explicitly marked done.
type Checked interface {
	Has(id string) bool
}

// Set is a map-backed Checked. A nil Set is empty.
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Add(id string)    { s[id] = struct{}{} }
func (s Set) Remove(id string) { delete(s, id) }

// IDs returns the members in the order they appear in root, followed by
// members that do not resolve, in no particular order.
func (s Set) IDs(root Value) []string {
	out := make([]string, 0, len(s))
	seen := map[string]bool{}
	for _, id := range Linearize(root) {
		if s.Has(id) {
			out = append(out, id)
			seen[id] = true
		}
	}
	for id := range s {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// IsCompleted reports whether v, found at path under root, counts as done.
// path must be the full path from root.
func IsCompleted(v Value, path []string, checked Checked, root Value) bool {
	if checked == nil {
		checked = Set(nil)
	}
	switch v.kind {
	case KindFalse, KindNull:
		return true
	case KindTrue, KindScalar:
		return checked.Has(Encode(path))
	}

	g, _ := v.Group()
	if g == nil || g.Len() == 0 {
		return true
	}
	id := Encode(path)
	if checked.Has(id) {
		return true
	}
	// An actionable group is only ever completed by an explicit check.
	if IsActionable(id, root) {
		return false
	}
	for _, key := range g.keys {
		if !IsCompleted(g.children[key], childPath(path, key), checked, root) {
			return false
		}
	}
	return true
}

// IsCompletedID resolves id and applies IsCompleted. Unresolved ids are not
// complete.
func IsCompletedID(id string, checked Checked, root Value) bool {
	path := Decode(id)
	v, ok := Resolve(root, path)
	if !ok {
		return false
	}
	return IsCompleted(v, path, checked, root)
}

// Summary is the completion state of a whole checklist.
type Summary struct {
	Total    int  `json:"total"`
	Done     int  `json:"done"`
	Complete bool `json:"complete"`
}

// Progress counts actionable nodes and how many of them are complete.
// Complete reports whether every top-level node is complete. Label leaves
// such as "|Bathroom|": true can never be checked, so they are left out of
// that rollup.
func Progress(root Value, checked Checked) Summary {
	if checked == nil {
		checked = Set(nil)
	}
	var s Summary
	for _, id := range Actionable(root) {
		s.Total++
		if IsCompletedID(id, checked, root) {
			s.Done++
		}
	}
	s.Complete = true
	if g, ok := root.Group(); ok {
		for _, key := range g.keys {
			if !rollup(g.children[key], []string{key}, checked, root) {
				s.Complete = false
				break
			}
		}
	}
	return s
}

func rollup(v Value, path []string, checked Checked, root Value) bool {
	g, ok := v.Group()
	if !ok {
		if IsPipeWrapped(path[len(path)-1]) {
			return true
		}
		return IsCompleted(v, path, checked, root)
	}
	id := Encode(path)
	if checked.Has(id) || IsActionable(id, root) {
		return IsCompleted(v, path, checked, root)
	}
	for _, key := range g.keys {
		if !rollup(g.children[key], childPath(path, key), checked, root) {
			return false
		}
	}
	return true
}

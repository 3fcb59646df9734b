package tree

import "strings"

// IsActionable reports whether the node named by id is a unit the user acts on
// directly. Identifiers that no longer resolve are never actionable.
func IsActionable(id string, root Value) bool {
	path := Decode(id)
	v, ok := Resolve(root, path)
	if !ok {
		return false
	}
	return actionable(v, path[len(path)-1])
}

func actionable(v Value, name string) bool {
	switch v.kind {
	case KindFalse, KindNull:
		return false
	}
	if IsPipeWrapped(name) {
		return false
	}
	if IsGroup(v) {
		g, _ := v.Group()
		if g.Checkable() {
			return true
		}
		// A group whose children are all inert collapses into one actionable unit.
		for _, key := range g.keys {
			if !g.children[key].Inert() {
				return false
			}
		}
		return true
	}
	return v.kind == KindTrue || v.kind == KindScalar
}

// IsPipeWrapped reports whether a node name is a label such as "| heading |".
func IsPipeWrapped(name string) bool {
	s := strings.TrimSpace(name)
	return len(s) >= 2 && strings.HasPrefix(s, "|") && strings.HasSuffix(s, "|")
}

// Actionable returns the actionable identifiers in Linearize order.
func Actionable(root Value) []string {
	var out []string
	Walk(root, func(n Node) bool {
		if actionable(n.Value, n.Name()) {
			out = append(out, n.ID)
		}
		return true
	})
	return out
}

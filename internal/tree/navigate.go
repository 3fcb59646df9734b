package tree

// MoveForward returns the first actionable identifier after current in
// Linearize order, wrapping to the start. ok is false when nothing in root is
// actionable. An unknown current behaves as if positioned before the first node.
func MoveForward(current string, root Value) (string, bool) {
	order := Linearize(root)
	return scanForward(order, indexOf(order, current), func(id string) bool {
		return IsActionable(id, root)
	})
}

// MoveBackward is MoveForward in reverse, wrapping to the end.
func MoveBackward(current string, root Value) (string, bool) {
	order := Linearize(root)
	return scanBackward(order, indexOf(order, current), func(id string) bool {
		return IsActionable(id, root)
	})
}

func indexOf(order []string, id string) int {
	for i, x := range order {
		if x == id {
			return i
		}
	}
	return -1
}

func scanForward(order []string, i int, ok func(string) bool) (string, bool) {
	for j := i + 1; j < len(order); j++ {
		if ok(order[j]) {
			return order[j], true
		}
	}
	for j := 0; j <= i && j < len(order); j++ {
		if ok(order[j]) {
			return order[j], true
		}
	}
	return "", false
}

func scanBackward(order []string, i int, ok func(string) bool) (string, bool) {
	for j := i - 1; j >= 0; j-- {
		if ok(order[j]) {
			return order[j], true
		}
	}
	for j := len(order) - 1; j >= i && j >= 0; j-- {
		if ok(order[j]) {
			return order[j], true
		}
	}
	return "", false
}

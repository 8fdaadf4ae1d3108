package wikiast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n Content) error

// Walk performs a pre-order traversal starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(root Content, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := walkFunc(root); err != nil {
		return err
	}
	for _, child := range root.Parts() {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// WalkWithContext calls enter before and leave after visiting a node's
// children. Either callback may be nil.
func WalkWithContext(root Content, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}
	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}
	for _, child := range root.Parts() {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}
	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns all nodes for which pred returns true, in pre-order.
func FindAll(root Content, pred func(n Content) bool) []Content {
	var result []Content
	_ = Walk(root, func(n Content) error {
		if pred(n) {
			result = append(result, n)
		}
		return nil
	})
	return result
}

// FindByKind returns all nodes of the given kind.
func FindByKind(root Content, kind Kind) []Content {
	return FindAll(root, func(n Content) bool { return n.Kind() == kind })
}

// Elements returns every leaf node that carries text of its own.
func Elements(root Content) []Content {
	return FindAll(root, func(n Content) bool { return len(n.Parts()) == 0 && isLeaf(n) })
}

func isLeaf(n Content) bool {
	switch n.(type) {
	case *ContentElement, *Paragraph, *NestedListElement:
		return true
	default:
		return false
	}
}

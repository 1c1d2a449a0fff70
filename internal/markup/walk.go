package markup

// WalkFunc is called for every element visited. Returning an error stops
// the walk and the error is returned by Walk.
type WalkFunc func(el Element) error

// Walk visits root and its descendants in document order, parents before
// children.
func Walk(root Element, fn WalkFunc) error {
	if err := fn(root); err != nil {
		return err
	}
	for _, child := range root.Children() {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkReverse visits the tree in the exact reverse of Walk: children last
// to first, each subtree before its parent. It is the teardown order for
// whatever Walk set up.
func WalkReverse(root Element, fn WalkFunc) error {
	children := root.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if err := WalkReverse(children[i], fn); err != nil {
			return err
		}
	}
	return fn(root)
}

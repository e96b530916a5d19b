package grammar

// Extract returns exactly count children of n. Too few children is an
// Arity error; leftovers mean the grammar produced a shape its consumer
// does not expect and are reported as Internal.
func Extract(n *Node, count int, msg string) ([]*Node, error) {
	required, rest, err := ExtractExcess(n, count, msg)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		e := NodeErrorf(Internal, n, "%s: expected exactly %d children, got %d. Matched %s", msg, count, len(n.Children), n.Kind)
		return nil, e
	}
	return required, nil
}

// ExtractExcess returns the first count children of n and any children
// beyond them.
func ExtractExcess(n *Node, count int, msg string) (required, rest []*Node, err error) {
	if len(n.Children) < count {
		return nil, nil, NodeErrorf(Arity, n, "%s: expected at least %d children, got %d. Matched %s", msg, count, len(n.Children), n.Kind)
	}
	return n.Children[:count:count], n.Children[count:], nil
}

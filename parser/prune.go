package parser

// PruneUntyped removes untyped structural nodes from a tree, hoisting their
// typed descendants into the nearest typed ancestor. The root must be typed.
// Offsets and counts of kept nodes are preserved.
func PruneUntyped(tree *Tree) *Tree {
	if tree == nil || tree.Type == "" {
		return nil
	}

	return &Tree{
		TokenOffset: tree.TokenOffset,
		TokenCount:  tree.TokenCount,
		Type:        tree.Type,
		Children:    typedDescendants(tree),
	}
}

func typedDescendants(tree *Tree) []*Tree {
	var out []*Tree
	for _, child := range tree.Children {
		if child.Type == "" {
			out = append(out, typedDescendants(child)...)
			continue
		}
		out = append(out, &Tree{
			TokenOffset: child.TokenOffset,
			TokenCount:  child.TokenCount,
			Type:        child.Type,
			Children:    typedDescendants(child),
		})
	}
	return out
}

// PruneTypes removes nodes whose type is in types, hoisting their children
// into the removed node's parent. The root is never removed.
func PruneTypes(tree *Tree, types map[TokenType]bool) *Tree {
	if tree == nil {
		return nil
	}

	return &Tree{
		TokenOffset: tree.TokenOffset,
		TokenCount:  tree.TokenCount,
		Type:        tree.Type,
		Children:    hoistedChildren(tree, types),
	}
}

func hoistedChildren(tree *Tree, types map[TokenType]bool) []*Tree {
	var out []*Tree
	for _, child := range tree.Children {
		if types[child.Type] {
			out = append(out, hoistedChildren(child, types)...)
			continue
		}
		out = append(out, &Tree{
			TokenOffset: child.TokenOffset,
			TokenCount:  child.TokenCount,
			Type:        child.Type,
			Children:    hoistedChildren(child, types),
		})
	}
	return out
}

// PruneSubtrees removes nodes whose type is in types together with all of
// their descendants. The root is never removed.
func PruneSubtrees(tree *Tree, types map[TokenType]bool) *Tree {
	if tree == nil {
		return nil
	}

	out := &Tree{
		TokenOffset: tree.TokenOffset,
		TokenCount:  tree.TokenCount,
		Type:        tree.Type,
	}
	for _, child := range tree.Children {
		if types[child.Type] {
			continue
		}
		out.Children = append(out.Children, PruneSubtrees(child, types))
	}
	return out
}

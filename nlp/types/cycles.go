package types

// RemoveCycles collapses unary chains in which an internal node has a
// single internal child of the same category. The child's children are
// lifted into the parent. Returns the number of collapsed nodes.
//
// Transition systems assume cycle-free input; corpus loaders call this
// before handing trees to an oracle.
func RemoveCycles(t *Tree) int {
	var removed int
	for _, r := range t.Roots {
		removed += removeCycles(t, r)
	}
	return removed
}

func removeCycles(t *Tree, n NodeID) int {
	if t.IsLeaf(n) {
		return 0
	}
	var removed int
	for {
		node := &t.Nodes[n]
		if len(node.Children) != 1 {
			break
		}
		child := node.Children[0]
		cnode := &t.Nodes[child]
		if cnode.Kind != Internal || cnode.Category != node.Category {
			break
		}
		node.Children = cnode.Children
		node.Head = cnode.Head
		cnode.Children = nil
		cnode.Head = -1
		if cnode.ID != "" {
			delete(t.byID, cnode.ID)
		}
		removed++
	}
	for _, c := range t.Nodes[n].Children {
		removed += removeCycles(t, c)
	}
	return removed
}

// Equal compares two trees structurally: same leaves in the same order and,
// for every node, the same category, label, head and children. Internal
// node ids are ignored.
func Equal(a, b *Tree) bool {
	if len(a.Leaves) != len(b.Leaves) || len(a.Roots) != len(b.Roots) {
		return false
	}
	for i := range a.Leaves {
		la, lb := a.Node(a.Leaves[i]), b.Node(b.Leaves[i])
		if la.Form != lb.Form || la.Category != lb.Category || la.Label != lb.Label {
			return false
		}
	}
	for i := range a.Roots {
		if !equalNodes(a, a.Roots[i], b, b.Roots[i]) {
			return false
		}
	}
	return true
}

func equalNodes(a *Tree, na NodeID, b *Tree, nb NodeID) bool {
	x, y := a.Node(na), b.Node(nb)
	if x.Kind != y.Kind || x.Category != y.Category || x.Label != y.Label {
		return false
	}
	if x.Kind == Leaf {
		return x.Index == y.Index
	}
	if x.Head != y.Head || len(x.Children) != len(y.Children) {
		return false
	}
	for i := range x.Children {
		if !equalNodes(a, x.Children[i], b, y.Children[i]) {
			return false
		}
	}
	return true
}

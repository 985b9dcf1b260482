package types

import "sort"

// Graph adds a child to parent lookup to a finished tree. The lookup is
// computed once; call Rebuild after mutating the tree.
type Graph struct {
	*Tree
	parent []NodeID
	isRoot []bool
}

func NewGraph(t *Tree) *Graph {
	g := &Graph{Tree: t}
	g.Rebuild()
	return g
}

func (g *Graph) Rebuild() {
	g.parent = make([]NodeID, len(g.Nodes))
	g.isRoot = make([]bool, len(g.Nodes))
	for i := range g.parent {
		g.parent[i] = NoNode
	}
	for i := range g.Nodes {
		for _, c := range g.Nodes[i].Children {
			g.parent[c] = NodeID(i)
		}
	}
	for _, r := range g.Roots {
		g.isRoot[r] = true
	}
}

// Parent returns the parent of n, NoNode for roots
func (g *Graph) Parent(n NodeID) NodeID {
	if n < 0 || int(n) >= len(g.parent) {
		return NoNode
	}
	return g.parent[n]
}

func (g *Graph) IsRoot(n NodeID) bool {
	return n >= 0 && int(n) < len(g.isRoot) && g.isRoot[n]
}

// Position returns the position of child within its parent's children
func (g *Graph) Position(child NodeID) int {
	p := g.Parent(child)
	if p == NoNode {
		return -1
	}
	for i, c := range g.Nodes[p].Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Normalize re-sorts every child list by head leaf index. Needed after
// two-phase construction where children were attached before their own
// subtrees were complete.
func (t *Tree) Normalize() {
	for i := range t.Nodes {
		node := &t.Nodes[i]
		if node.Kind == Leaf || len(node.Children) < 2 {
			continue
		}
		head := NoNode
		if node.Head >= 0 {
			head = node.Children[node.Head]
		}
		sort.SliceStable(node.Children, func(a, b int) bool {
			return t.Less(node.Children[a], node.Children[b])
		})
		for j, c := range node.Children {
			if c == head {
				node.Head = j
			}
		}
	}
	sort.SliceStable(t.Roots, func(a, b int) bool {
		return t.Less(t.Roots[a], t.Roots[b])
	})
}

package types

import (
	"fmt"
	"sort"
	"strings"
)

// NodeID addresses a node in a tree's arena
type NodeID int

const NoNode NodeID = -1

type Kind byte

const (
	Leaf     Kind = 'L'
	Internal Kind = 'I'
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Node is either a leaf (Index, Form) or an internal node (ID, Children, Head).
// Category and Label are shared by both kinds.
type Node struct {
	Kind     Kind
	Index    int
	Form     string
	ID       string
	Category string
	Label    string
	Children []NodeID
	Head     int
}

func (n *Node) IsLeaf() bool {
	return n.Kind == Leaf
}

func (n *Node) copy() Node {
	c := *n
	if n.Children != nil {
		c.Children = make([]NodeID, len(n.Children))
		copy(c.Children, n.Children)
	}
	return c
}

// Tree is a constituency tree stored as an arena of nodes.
// Leaves are kept in index order; internal nodes with an id are
// reachable through Lookup.
type Tree struct {
	Name   string
	Nodes  []Node
	Leaves []NodeID
	Roots  []NodeID
	byID   map[string]NodeID
}

func NewTree(name string) *Tree {
	return &Tree{
		Name:   name,
		Nodes:  make([]Node, 0, 32),
		Leaves: make([]NodeID, 0, 16),
		byID:   make(map[string]NodeID, 16),
	}
}

func (t *Tree) Node(n NodeID) *Node {
	return &t.Nodes[n]
}

func (t *Tree) IsLeaf(n NodeID) bool {
	return t.Nodes[n].Kind == Leaf
}

func (t *Tree) Len() int {
	return len(t.Leaves)
}

// AddLeaf appends a leaf; its index is the number of leaves added before it.
func (t *Tree) AddLeaf(form, category, label string) NodeID {
	id := NodeID(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{
		Kind:     Leaf,
		Index:    len(t.Leaves),
		Form:     form,
		Category: category,
		Label:    label,
		Head:     -1,
	})
	t.Leaves = append(t.Leaves, id)
	return id
}

// Leaf returns the leaf at sentence position index
func (t *Tree) Leaf(index int) NodeID {
	if index < 0 || index >= len(t.Leaves) {
		return NoNode
	}
	return t.Leaves[index]
}

// NewInternal creates an internal node. A non-empty id registers the node
// for Lookup; an empty id leaves it anonymous.
func (t *Tree) NewInternal(id, category, label string) NodeID {
	n := NodeID(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{
		Kind:     Internal,
		Index:    -1,
		ID:       id,
		Category: category,
		Label:    label,
		Head:     -1,
	})
	if id != "" {
		t.byID[id] = n
	}
	return n
}

// Internal gets or creates the internal node with the given id. Nodes
// created on first reference are filled in later with Define.
func (t *Tree) Internal(id string) NodeID {
	if n, exists := t.byID[id]; exists {
		return n
	}
	return t.NewInternal(id, "", "")
}

func (t *Tree) Define(id, category, label string) NodeID {
	n := t.Internal(id)
	t.Nodes[n].Category = category
	t.Nodes[n].Label = label
	return n
}

func (t *Tree) Lookup(id string) (NodeID, bool) {
	n, exists := t.byID[id]
	return n, exists
}

// SetID names a previously anonymous internal node
func (t *Tree) SetID(n NodeID, id string) {
	if old := t.Nodes[n].ID; old != "" {
		delete(t.byID, old)
	}
	t.Nodes[n].ID = id
	if id != "" {
		t.byID[id] = n
	}
}

func (t *Tree) AddRoot(n NodeID) {
	t.Roots = append(t.Roots, n)
}

// AddChild inserts child into parent's children keeping them sorted by
// head leaf index. The head position is kept pointing at the same child.
func (t *Tree) AddChild(parent, child NodeID, isHead bool) {
	p := &t.Nodes[parent]
	if p.Kind == Leaf {
		panic(fmt.Sprintf("Can't add child to leaf %v", p.Form))
	}
	pos := sort.Search(len(p.Children), func(i int) bool {
		return t.Less(child, p.Children[i])
	})
	p.Children = append(p.Children, NoNode)
	copy(p.Children[pos+1:], p.Children[pos:])
	p.Children[pos] = child
	switch {
	case isHead:
		p.Head = pos
	case p.Head >= pos:
		p.Head++
	}
}

// HeadChild returns the head child of n, or NoNode for leaves and
// childless internal nodes.
func (t *Tree) HeadChild(n NodeID) NodeID {
	node := &t.Nodes[n]
	if node.Head < 0 || node.Head >= len(node.Children) {
		return NoNode
	}
	return node.Children[node.Head]
}

// HeadLeaf follows head children down to a leaf
func (t *Tree) HeadLeaf(n NodeID) NodeID {
	for n != NoNode && !t.IsLeaf(n) {
		n = t.HeadChild(n)
	}
	return n
}

func (t *Tree) headIndex(n NodeID) int {
	leaf := t.HeadLeaf(n)
	if leaf == NoNode {
		return -1
	}
	return t.Nodes[leaf].Index
}

// Less orders nodes by the index of their head leaf
func (t *Tree) Less(a, b NodeID) bool {
	return t.headIndex(a) < t.headIndex(b)
}

// LeavesOf returns the leaves dominated by n in index order
func (t *Tree) LeavesOf(n NodeID) []NodeID {
	leaves := t.collectLeaves(n, make([]NodeID, 0, 8))
	sort.Slice(leaves, func(i, j int) bool {
		return t.Nodes[leaves[i]].Index < t.Nodes[leaves[j]].Index
	})
	return leaves
}

func (t *Tree) collectLeaves(n NodeID, acc []NodeID) []NodeID {
	node := &t.Nodes[n]
	if node.Kind == Leaf {
		return append(acc, n)
	}
	for _, c := range node.Children {
		acc = t.collectLeaves(c, acc)
	}
	return acc
}

// Span returns the lowest and highest leaf index under n
func (t *Tree) Span(n NodeID) (int, int) {
	leaves := t.LeavesOf(n)
	if len(leaves) == 0 {
		return -1, -1
	}
	return t.Nodes[leaves[0]].Index, t.Nodes[leaves[len(leaves)-1]].Index
}

// IsProjective reports whether the leaves under n form a contiguous range
func (t *Tree) IsProjective(n NodeID) bool {
	leaves := t.LeavesOf(n)
	if len(leaves) == 0 {
		return true
	}
	first, last := t.Nodes[leaves[0]].Index, t.Nodes[leaves[len(leaves)-1]].Index
	return last-first+1 == len(leaves)
}

// Projective reports whether every internal node reachable from the roots
// is projective.
func (t *Tree) Projective() bool {
	for _, r := range t.Roots {
		if !t.projective(r) {
			return false
		}
	}
	return true
}

func (t *Tree) projective(n NodeID) bool {
	if t.IsLeaf(n) {
		return true
	}
	if !t.IsProjective(n) {
		return false
	}
	for _, c := range t.Nodes[n].Children {
		if !t.projective(c) {
			return false
		}
	}
	return true
}

// Copy returns a deep structural copy; node ids stay valid in the copy.
func (t *Tree) Copy() *Tree {
	c := &Tree{
		Name:   t.Name,
		Nodes:  make([]Node, len(t.Nodes), cap(t.Nodes)),
		Leaves: make([]NodeID, len(t.Leaves), cap(t.Leaves)),
		Roots:  make([]NodeID, len(t.Roots)),
		byID:   make(map[string]NodeID, len(t.byID)),
	}
	for i := range t.Nodes {
		c.Nodes[i] = t.Nodes[i].copy()
	}
	copy(c.Leaves, t.Leaves)
	copy(c.Roots, t.Roots)
	for k, v := range t.byID {
		c.byID[k] = v
	}
	return c
}

// Sentence returns the leaf forms in index order
func (t *Tree) Sentence() []string {
	forms := make([]string, len(t.Leaves))
	for i, l := range t.Leaves {
		forms[i] = t.Nodes[l].Form
	}
	return forms
}

func (t *Tree) String() string {
	parts := make([]string, len(t.Roots))
	for i, r := range t.Roots {
		parts[i] = t.NodeString(r)
	}
	return strings.Join(parts, " ")
}

// NodeString renders the subtree under n, marking head children with ^
func (t *Tree) NodeString(n NodeID) string {
	var sb strings.Builder
	t.writeNode(&sb, n, false)
	return sb.String()
}

func (t *Tree) writeNode(sb *strings.Builder, n NodeID, head bool) {
	node := &t.Nodes[n]
	if node.Kind == Leaf && node.Category == "" && node.Label == "" {
		sb.WriteString(node.Form)
		if head {
			sb.WriteByte('^')
		}
		return
	}
	sb.WriteByte('(')
	sb.WriteString(node.Category)
	if node.Label != "" {
		sb.WriteByte(':')
		sb.WriteString(node.Label)
	}
	if head {
		sb.WriteByte('^')
	}
	if node.Kind == Leaf {
		sb.WriteByte(' ')
		sb.WriteString(node.Form)
	} else {
		for i, c := range node.Children {
			sb.WriteByte(' ')
			t.writeNode(sb, c, i == node.Head)
		}
	}
	sb.WriteByte(')')
}

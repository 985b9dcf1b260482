package transition

import (
	"fmt"
	"sort"
	"strings"

	AbstractTransition "hatparse/alg/transition"
	nlp "hatparse/nlp/types"
)

type SlotStatus byte

const (
	TOP_SLOT     SlotStatus = 'T'
	SHIFTED_SLOT SlotStatus = 'S'
	BUILT_SLOT   SlotStatus = 'B'
)

type Slot struct {
	Node   nlp.NodeID
	Status SlotStatus
}

// NO_HAT marks a configuration without a focus pointer (Simple system)
const NO_HAT = -1

// Configuration is the parser state for one sentence. The stack holds
// partially built subtrees whose nodes live in Tree; Stack[0] is always the
// synthetic top. Buffer holds the leaves not yet shifted. Hat is the focus
// slot for the hat systems and NO_HAT otherwise.
type Configuration struct {
	Tree   *nlp.Tree
	Stack  []Slot
	Buffer []nlp.NodeID
	Hat    int
	Top    nlp.NodeID
	Gold   *nlp.Graph
	Last   *Action
	Steps  int
}

var (
	_ AbstractTransition.Configuration = &Configuration{}
	_ AbstractTransition.Sized         = &Configuration{}
)

// NewConfiguration creates the initial configuration for the leaves of
// sentence. gold may be nil; it is required by the oracle only.
func NewConfiguration(sentence *nlp.Tree, gold *nlp.Graph, focused bool) *Configuration {
	c := &Configuration{Gold: gold, Hat: NO_HAT}
	c.Init(sentence, focused)
	return c
}

func (c *Configuration) Init(sentence *nlp.Tree, focused bool) {
	length := sentence.Len()
	c.Tree = nlp.NewTree(sentence.Name)
	c.Buffer = make([]nlp.NodeID, 0, length)
	for _, l := range sentence.Leaves {
		leaf := sentence.Node(l)
		c.Buffer = append(c.Buffer, c.Tree.AddLeaf(leaf.Form, leaf.Category, leaf.Label))
	}
	c.Top = c.Tree.NewInternal("", "", "")
	c.Stack = make([]Slot, 1, length+1)
	c.Stack[0] = Slot{c.Top, TOP_SLOT}
	if focused {
		c.Hat = 0
	} else {
		c.Hat = NO_HAT
	}
	c.Last = nil
	c.Steps = 0
}

// Len is the number of words in the sentence
func (c *Configuration) Len() int {
	return c.Tree.Len()
}

func (c *Configuration) Focused() bool {
	return c.Hat != NO_HAT
}

func (c *Configuration) Terminal() bool {
	return len(c.Stack) == 1 && len(c.Buffer) == 0
}

func (c *Configuration) Copy() AbstractTransition.Configuration {
	newConf := &Configuration{
		Tree:   c.Tree.Copy(),
		Stack:  make([]Slot, len(c.Stack), cap(c.Stack)),
		Buffer: make([]nlp.NodeID, len(c.Buffer), cap(c.Buffer)),
		Hat:    c.Hat,
		Top:    c.Top,
		Gold:   c.Gold,
		Steps:  c.Steps,
	}
	copy(newConf.Stack, c.Stack)
	copy(newConf.Buffer, c.Buffer)
	if c.Last != nil {
		newConf.Last = c.Last.Copy()
	}
	return newConf
}

func (c *Configuration) Node(n nlp.NodeID) *nlp.Node {
	return c.Tree.Node(n)
}

// Peek returns the node i slots from the right end of the stack
func (c *Configuration) Peek(i int) (nlp.NodeID, bool) {
	if i < 0 || i >= len(c.Stack) {
		return nlp.NoNode, false
	}
	return c.Stack[len(c.Stack)-1-i].Node, true
}

// PeekLeft returns the node i slots from the left end of the stack
func (c *Configuration) PeekLeft(i int) (nlp.NodeID, bool) {
	if i < 0 || i >= len(c.Stack) {
		return nlp.NoNode, false
	}
	return c.Stack[i].Node, true
}

func (c *Configuration) Push(n nlp.NodeID, status SlotStatus) {
	c.Stack = append(c.Stack, Slot{n, status})
}

// Pop removes the rightmost slot; the top placeholder is never popped
func (c *Configuration) Pop() (nlp.NodeID, bool) {
	if len(c.Stack) <= 1 {
		return nlp.NoNode, false
	}
	n := c.Stack[len(c.Stack)-1].Node
	c.Remove(len(c.Stack) - 1)
	return n, true
}

// Input returns the leftmost buffer leaf
func (c *Configuration) Input() (nlp.NodeID, bool) {
	if len(c.Buffer) == 0 {
		return nlp.NoNode, false
	}
	return c.Buffer[0], true
}

// Shift moves the leftmost buffer leaf onto the stack; with a focus the
// hat moves to the shifted leaf.
func (c *Configuration) Shift() bool {
	leaf, exists := c.Input()
	if !exists {
		return false
	}
	c.Buffer = c.Buffer[1:]
	c.Push(leaf, SHIFTED_SLOT)
	if c.Focused() {
		c.Hat = len(c.Stack) - 1
	}
	return true
}

// Insert places slot at absolute stack position abs. A focus at or right of
// abs moves right by one.
func (c *Configuration) Insert(abs int, slot Slot) {
	c.Stack = append(c.Stack, Slot{})
	copy(c.Stack[abs+1:], c.Stack[abs:])
	c.Stack[abs] = slot
	if c.Focused() && abs <= c.Hat {
		c.Hat++
	}
}

// Remove deletes the slot at absolute position abs. A focus right of abs
// moves left by one; removing the focus slot itself leaves the hat for the
// caller to retarget.
func (c *Configuration) Remove(abs int) Slot {
	slot := c.Stack[abs]
	c.Stack = append(c.Stack[:abs], c.Stack[abs+1:]...)
	if c.Focused() && abs < c.Hat {
		c.Hat--
	}
	return slot
}

// Rel converts an absolute stack index to one relative to the hat
func (c *Configuration) Rel(abs int) int {
	return abs - c.Hat
}

// Abs converts a hat-relative index to an absolute stack index
func (c *Configuration) Abs(rel int) int {
	return rel + c.Hat
}

func (c *Configuration) Focus() (nlp.NodeID, bool) {
	if !c.Focused() || c.Hat >= len(c.Stack) {
		return nlp.NoNode, false
	}
	return c.Stack[c.Hat].Node, true
}

// Category returns the category of the node at absolute stack index abs
func (c *Configuration) Category(abs int) string {
	return c.Tree.Node(c.Stack[abs].Node).Category
}

// wrap creates a new internal node over child, which becomes its head
func (c *Configuration) wrap(child nlp.NodeID, id, cat, label string) nlp.NodeID {
	parent := c.Tree.NewInternal(id, cat, label)
	c.Tree.AddChild(parent, child, true)
	return parent
}

// Check verifies the leaf invariant: the leaves under the stack subtrees
// followed by the buffer are every sentence leaf exactly once, and the
// hat points into the stack.
func (c *Configuration) Check() error {
	seen := make([]int, c.Tree.Len())
	for _, slot := range c.Stack {
		for _, l := range c.Tree.LeavesOf(slot.Node) {
			seen[c.Tree.Node(l).Index]++
		}
	}
	for _, l := range c.Buffer {
		seen[c.Tree.Node(l).Index]++
	}
	for i, count := range seen {
		if count != 1 {
			return fmt.Errorf("leaf %d appears %d times", i, count)
		}
	}
	if c.Focused() && (c.Hat < 0 || c.Hat >= len(c.Stack)) {
		return fmt.Errorf("hat %d outside stack of %d", c.Hat, len(c.Stack))
	}
	if len(c.Stack) == 0 || c.Stack[0].Node != c.Top {
		return fmt.Errorf("stack does not start with the top placeholder")
	}
	return nil
}

// CreateParse reads the output tree off the stack. Internal nodes without
// an id get fresh synthetic ids, depth-first and head-first. Children of the
// top placeholder and any other remaining stack slots become roots.
func (c *Configuration) CreateParse() *nlp.Tree {
	p := &parseBuilder{
		conf:   c,
		out:    nlp.NewTree(c.Tree.Name),
		leaves: make(map[nlp.NodeID]nlp.NodeID, c.Tree.Len()),
		used:   make(map[string]bool),
		nextID: FIRST_SYNTHETIC_ID,
	}
	for i := range c.Tree.Nodes {
		if id := c.Tree.Nodes[i].ID; id != "" {
			p.used[id] = true
		}
	}
	for _, l := range c.Tree.Leaves {
		leaf := c.Tree.Node(l)
		p.leaves[l] = p.out.AddLeaf(leaf.Form, leaf.Category, leaf.Label)
	}
	for _, slot := range c.Stack {
		if slot.Node == c.Top {
			for _, child := range c.Tree.Node(c.Top).Children {
				p.out.AddRoot(p.visit(child))
			}
			continue
		}
		p.out.AddRoot(p.visit(slot.Node))
	}
	sort.SliceStable(p.out.Roots, func(i, j int) bool {
		return p.out.Less(p.out.Roots[i], p.out.Roots[j])
	})
	return p.out
}

const FIRST_SYNTHETIC_ID = 500

type parseBuilder struct {
	conf   *Configuration
	out    *nlp.Tree
	leaves map[nlp.NodeID]nlp.NodeID
	used   map[string]bool
	nextID int
}

func (p *parseBuilder) freshID() string {
	for {
		id := fmt.Sprintf("#%d", p.nextID)
		p.nextID++
		if !p.used[id] {
			p.used[id] = true
			return id
		}
	}
}

func (p *parseBuilder) visit(n nlp.NodeID) nlp.NodeID {
	node := p.conf.Tree.Node(n)
	if node.Kind == nlp.Leaf {
		return p.leaves[n]
	}
	id := node.ID
	if id == "" {
		id = p.freshID()
	}
	out := p.out.NewInternal(id, node.Category, node.Label)
	if node.Head >= 0 {
		p.out.AddChild(out, p.visit(node.Children[node.Head]), true)
	}
	for i, child := range node.Children {
		if i != node.Head {
			p.out.AddChild(out, p.visit(child), false)
		}
	}
	return out
}

func (c *Configuration) slotString(i int) string {
	slot := c.Stack[i]
	node := c.Tree.Node(slot.Node)
	var s string
	switch {
	case slot.Node == c.Top:
		s = "TOP"
	case node.Kind == nlp.Leaf:
		s = node.Form
	default:
		s = node.Category
	}
	if c.Focused() && i == c.Hat {
		s = "^" + s
	}
	return s
}

func (c *Configuration) StringStack() string {
	strs := make([]string, len(c.Stack))
	for i := range c.Stack {
		strs[i] = c.slotString(i)
	}
	return strings.Join(strs, ",")
}

func (c *Configuration) StringBuffer() string {
	strs := make([]string, len(c.Buffer))
	for i, l := range c.Buffer {
		strs[i] = c.Tree.Node(l).Form
	}
	return strings.Join(strs, ",")
}

func (c *Configuration) String() string {
	var last string
	if c.Last != nil {
		last = c.Last.String()
	}
	return fmt.Sprintf("%s\t=>([%s],\t[%s])", last, c.StringStack(), c.StringBuffer())
}

// StringTrees dumps the subtrees on the stack, for diagnostics
func (c *Configuration) StringTrees() string {
	strs := make([]string, len(c.Stack))
	for i, slot := range c.Stack {
		strs[i] = c.Tree.NodeString(slot.Node)
	}
	return strings.Join(strs, " | ")
}

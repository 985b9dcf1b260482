package transition

import (
	AbstractTransition "hatparse/alg/transition"
	nlp "hatparse/nlp/types"
)

// Oracle holds the predicates shared by the static oracles of every
// transition system. All of them read the configuration's gold graph and
// never mutate state.
//
// Gold counterparts are matched by leaf index for leaves and by id for
// internal nodes; the top placeholder stands for the set of gold roots.
type Oracle struct {
	// LeftFirst attaches left dependents (nearest first) before right ones;
	// otherwise right dependents come first
	LeftFirst bool
}

// Counterpart returns the gold node matching n, NoNode if there is none
func (o *Oracle) Counterpart(c *Configuration, n nlp.NodeID) nlp.NodeID {
	if c.Gold == nil || n == c.Top {
		return nlp.NoNode
	}
	node := c.Node(n)
	if node.Kind == nlp.Leaf {
		return c.Gold.Leaf(node.Index)
	}
	if node.ID == "" {
		return nlp.NoNode
	}
	if g, exists := c.Gold.Lookup(node.ID); exists {
		return g
	}
	return nlp.NoNode
}

// GoldParent returns the gold parent of n's counterpart (in the gold arena)
func (o *Oracle) GoldParent(c *Configuration, n nlp.NodeID) nlp.NodeID {
	g := o.Counterpart(c, n)
	if g == nlp.NoNode {
		return nlp.NoNode
	}
	return c.Gold.Parent(g)
}

// IsHead reports whether n's counterpart is the head child of its gold parent
func (o *Oracle) IsHead(c *Configuration, n nlp.NodeID) bool {
	g := o.Counterpart(c, n)
	if g == nlp.NoNode {
		return false
	}
	p := c.Gold.Parent(g)
	return p != nlp.NoNode && c.Gold.HeadChild(p) == g
}

// AreChildrenAttached reports whether n already has all the children of
// its gold counterpart, so that n itself may be attached.
func (o *Oracle) AreChildrenAttached(c *Configuration, n nlp.NodeID) bool {
	built := len(c.Node(n).Children)
	if n == c.Top {
		return c.Gold != nil && built == len(c.Gold.Roots)
	}
	g := o.Counterpart(c, n)
	if g == nlp.NoNode {
		return false
	}
	return built == len(c.Gold.Node(g).Children)
}

func rightOfHead(node *nlp.Node) int {
	if node.Head < 0 {
		return 0
	}
	return len(node.Children) - 1 - node.Head
}

// AreRightChildrenAttached reports whether every gold child right of the
// head is already attached to n.
func (o *Oracle) AreRightChildrenAttached(c *Configuration, n nlp.NodeID) bool {
	g := o.Counterpart(c, n)
	if g == nlp.NoNode {
		return false
	}
	return rightOfHead(c.Node(n)) == rightOfHead(c.Gold.Node(g))
}

// attachmentOrder lists the children of gold node g in the order the
// oracle attaches them: the head, then each side nearest first.
func (o *Oracle) attachmentOrder(c *Configuration, g nlp.NodeID) []nlp.NodeID {
	node := c.Gold.Node(g)
	order := make([]nlp.NodeID, 0, len(node.Children))
	if node.Head < 0 {
		return append(order, node.Children...)
	}
	order = append(order, node.Children[node.Head])
	left := func() {
		for i := node.Head - 1; i >= 0; i-- {
			order = append(order, node.Children[i])
		}
	}
	right := func() {
		for i := node.Head + 1; i < len(node.Children); i++ {
			order = append(order, node.Children[i])
		}
	}
	if o.LeftFirst {
		left()
		right()
	} else {
		right()
		left()
	}
	return order
}

// ArePreviousChildrenAttached reports whether parent already holds exactly
// the gold children that precede child in attachment order. For the top
// placeholder the order is that of the gold roots.
func (o *Oracle) ArePreviousChildrenAttached(c *Configuration, parent, child nlp.NodeID) bool {
	gc := o.Counterpart(c, child)
	if gc == nlp.NoNode {
		return false
	}
	var order []nlp.NodeID
	if parent == c.Top {
		order = c.Gold.Roots
	} else {
		gp := o.Counterpart(c, parent)
		if gp == nlp.NoNode {
			return false
		}
		order = o.attachmentOrder(c, gp)
	}
	for k, g := range order {
		if g == gc {
			return len(c.Node(parent).Children) == k
		}
	}
	return false
}

// HasChildGold reports whether n2's counterpart is a gold child of n1's.
// With n1 the top placeholder, whether n2's counterpart is a gold root.
func (o *Oracle) HasChildGold(c *Configuration, n1, n2 nlp.NodeID) bool {
	g2 := o.Counterpart(c, n2)
	if g2 == nlp.NoNode {
		return false
	}
	if n1 == c.Top {
		return c.Gold.IsRoot(g2)
	}
	g1 := o.Counterpart(c, n1)
	return g1 != nlp.NoNode && c.Gold.Parent(g2) == g1
}

// LongChain reports whether n already heads a unary chain of two internal
// nodes of category cat, so that wrapping it in cat once more would repeat
// a degenerate unary cycle.
func LongChain(t *nlp.Tree, n nlp.NodeID, cat string) bool {
	node := t.Node(n)
	if node.Kind != nlp.Internal || node.Category != cat || len(node.Children) != 1 {
		return false
	}
	child := t.Node(node.Children[0])
	return child.Kind == nlp.Internal && child.Category == cat
}

func (o *Oracle) LongChain(c *Configuration, n nlp.NodeID, cat string) bool {
	return LongChain(c.Tree, n, cat)
}

// goldWrap returns the category, label and id of the gold parent that n
// heads, for a unary wrapping reduction.
func (o *Oracle) goldWrap(c *Configuration, n nlp.NodeID) (cat, label, id string, ok bool) {
	if !o.IsHead(c, n) {
		return "", "", "", false
	}
	p := c.Gold.Node(o.GoldParent(c, n))
	return p.Category, p.Label, p.ID, true
}

// wrapID is the id for a node created over head child n: the gold parent's
// id when training and the categories agree, empty otherwise.
func (o *Oracle) wrapID(c *Configuration, n nlp.NodeID, cat string) string {
	if c.Gold == nil {
		return ""
	}
	gcat, _, id, ok := o.goldWrap(c, n)
	if !ok || gcat != cat {
		return ""
	}
	return id
}

func (o *Oracle) fail(c *Configuration, system, reason string) error {
	err := &AbstractTransition.OracleError{
		System: system,
		Reason: reason,
		Config: c.String() + "\n  stack trees: " + c.StringTrees(),
	}
	if c.Gold != nil {
		err.Gold = c.Gold.String()
	}
	return err
}

func (o *Oracle) inapplicable(c *Configuration, system string, a *Action) error {
	return &AbstractTransition.InapplicableError{System: system, Action: a, Config: c.String()}
}

// validIndex reports whether abs addresses a stack slot other than the top
func validIndex(c *Configuration, abs int) bool {
	return abs >= 1 && abs < len(c.Stack)
}

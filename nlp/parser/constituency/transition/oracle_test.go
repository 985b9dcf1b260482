package transition

import (
	"testing"

	nlp "hatparse/nlp/types"
)

const ORACLE_TREE = "(S=s (NP=np (DT the) (NN^ cat)) (VBD^ sat) (. .))"

// oracleConfiguration shifts every leaf of ORACLE_TREE without a hat
func oracleConfiguration(t *testing.T) (*Configuration, []nlp.NodeID) {
	gold := readTree(t, ORACLE_TREE)
	c := NewConfiguration(gold, nlp.NewGraph(gold), false)
	for c.Shift() {
	}
	leaves := make([]nlp.NodeID, 0, 4)
	for _, slot := range c.Stack[1:] {
		leaves = append(leaves, slot.Node)
	}
	return c, leaves
}

func TestOraclePredicates(t *testing.T) {
	o := &Oracle{}
	c, leaves := oracleConfiguration(t)
	the, cat, sat, period := leaves[0], leaves[1], leaves[2], leaves[3]

	if g := o.Counterpart(c, the); g != c.Gold.Leaf(0) {
		t.Error("Expected the to match gold leaf 0")
	}
	if o.Counterpart(c, c.Top) != nlp.NoNode {
		t.Error("The top has no single counterpart")
	}
	if np, _ := c.Gold.Lookup("np"); o.GoldParent(c, the) != np {
		t.Error("Expected gold parent np for the")
	}
	if !o.IsHead(c, cat) || o.IsHead(c, the) || !o.IsHead(c, sat) || o.IsHead(c, period) {
		t.Error("Wrong heads")
	}
	if !o.AreChildrenAttached(c, the) {
		t.Error("A leaf is always complete")
	}
	if o.AreChildrenAttached(c, c.Top) {
		t.Error("The top has no roots yet")
	}
	if o.HasChildGold(c, c.Top, the) {
		t.Error("A leaf of S is not a gold root")
	}

	np := c.wrap(cat, "np", "NP", "")
	if !o.HasChildGold(c, np, the) || o.HasChildGold(c, np, sat) {
		t.Error("Wrong gold children for np")
	}
	if o.AreChildrenAttached(c, np) {
		t.Error("np lacks the")
	}
	if !o.ArePreviousChildrenAttached(c, np, the) {
		t.Error("the is next after the head of np")
	}
	if !o.AreRightChildrenAttached(c, np) {
		t.Error("np has nothing right of its head")
	}
	c.Tree.AddChild(np, the, false)
	if !o.AreChildrenAttached(c, np) {
		t.Error("np should be complete")
	}

	s := c.wrap(sat, "s", "S", "")
	if !o.HasChildGold(c, c.Top, s) {
		t.Error("s is a gold root")
	}
	if o.AreRightChildrenAttached(c, s) {
		t.Error("s lacks the period")
	}
	// right first: sat, period, np
	if !o.ArePreviousChildrenAttached(c, s, period) || o.ArePreviousChildrenAttached(c, s, np) {
		t.Error("Right first should attach the period before np")
	}
	left := &Oracle{LeftFirst: true}
	if left.ArePreviousChildrenAttached(c, s, period) || !left.ArePreviousChildrenAttached(c, s, np) {
		t.Error("Left first should attach np before the period")
	}
	if !o.ArePreviousChildrenAttached(c, c.Top, s) {
		t.Error("s is the first gold root")
	}
}

func TestWrapID(t *testing.T) {
	o := &Oracle{}
	c, leaves := oracleConfiguration(t)
	if id := o.wrapID(c, leaves[1], "NP"); id != "np" {
		t.Error("Expected gold id np, got", id)
	}
	if id := o.wrapID(c, leaves[1], "VP"); id != "" {
		t.Error("Expected no id for a category mismatch, got", id)
	}
	if id := o.wrapID(c, leaves[0], "NP"); id != "" {
		t.Error("Expected no id for a non-head, got", id)
	}
	c.Gold = nil
	if id := o.wrapID(c, leaves[1], "NP"); id != "" {
		t.Error("Expected no id without gold, got", id)
	}
}

func TestLongChain(t *testing.T) {
	tree := nlp.NewTree("chain")
	a := tree.AddLeaf("a", "N", "")
	if LongChain(tree, a, "N") {
		t.Error("A leaf never starts a chain")
	}
	np1 := tree.NewInternal("", "NP", "")
	tree.AddChild(np1, a, true)
	if LongChain(tree, np1, "NP") {
		t.Error("A single NP over a leaf is not a chain")
	}
	np2 := tree.NewInternal("", "NP", "")
	tree.AddChild(np2, np1, true)
	if !LongChain(tree, np2, "NP") {
		t.Error("NP(NP(a)) wrapped in NP again is a chain")
	}
	if LongChain(tree, np2, "S") {
		t.Error("A different category does not continue the chain")
	}
	b := tree.AddLeaf("b", "N", "")
	tree.AddChild(np2, b, false)
	if LongChain(tree, np2, "NP") {
		t.Error("A branching node is not a chain")
	}
}

func TestOracleFailsOnUnaryCycle(t *testing.T) {
	gold := readTree(t, "(NP (NP (NP^ (N^ a))))")
	for _, sys := range []System{&Simple{}, &Hat{ViewMin: -1, ViewMax: 1}} {
		c := sys.NewConfiguration(gold, nlp.NewGraph(gold))
		var err error
		for steps := 0; !c.Terminal() && steps < 20; steps++ {
			a, oracleErr := sys.GetAction(c)
			if oracleErr != nil {
				err = oracleErr
				break
			}
			if err = sys.Apply(c, a); err != nil {
				break
			}
		}
		if err == nil {
			t.Errorf("[%s] expected the unary cycle to be rejected", sys.Name())
		}
	}
}

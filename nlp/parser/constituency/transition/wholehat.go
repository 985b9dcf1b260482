package transition

import (
	"fmt"
	"sort"

	AbstractTransition "hatparse/alg/transition"
	nlp "hatparse/nlp/types"
)

// WholeHat builds each constituent in a single step around the focus:
//
//	shift                    hat moves to the shifted leaf
//	reduce(X,h,[i..j])       slots i..j go under a new X headed by the h'th
//	                         of them; X takes the head's place and the hat
//	reduceRoots([1..n])      every non-top slot goes under the top
type WholeHat struct {
	Oracle
}

var _ AbstractTransition.TransitionSystem = &WholeHat{}

func (w *WholeHat) Name() string {
	return "wholehat"
}

func (w *WholeHat) ActionNames() []string {
	return []string{"shift", "reduce", "reduceRoots"}
}

func (w *WholeHat) NewConfiguration(sentence *nlp.Tree, gold *nlp.Graph) *Configuration {
	return NewConfiguration(sentence, gold, true)
}

// present finds the complete stack slot for each gold node in golds
func (w *WholeHat) present(c *Configuration, golds []nlp.NodeID) ([]int, bool) {
	slots := make(map[nlp.NodeID]int, len(c.Stack))
	for abs := 1; abs < len(c.Stack); abs++ {
		n := c.Stack[abs].Node
		if g := w.Counterpart(c, n); g != nlp.NoNode && w.AreChildrenAttached(c, n) {
			slots[g] = abs
		}
	}
	found := make([]int, len(golds))
	for i, g := range golds {
		abs, exists := slots[g]
		if !exists {
			return nil, false
		}
		found[i] = abs
	}
	return found, true
}

func (w *WholeHat) GetAction(conf AbstractTransition.Configuration) (AbstractTransition.Action, error) {
	c := simpleConf(conf)
	if c.Gold == nil {
		panic("Oracle needs a gold tree, set Configuration.Gold")
	}
	focus, _ := c.Focus()
	if focus != c.Top {
		if p := w.GoldParent(c, focus); p != nlp.NoNode {
			gp := c.Gold.Node(p)
			if children, ok := w.present(c, gp.Children); ok {
				head := children[gp.Head]
				sort.Ints(children)
				headIdx := sort.SearchInts(children, head)
				if len(children) == 1 && w.LongChain(c, c.Stack[head].Node, gp.Category) {
					return nil, w.fail(c, w.Name(), fmt.Sprintf("unary cycle of %s above %s", gp.Category, c.Tree.NodeString(c.Stack[head].Node)))
				}
				return Reduce(gp.Category, gp.Label, headIdx, children), nil
			}
		}
	}
	if len(c.Buffer) > 0 {
		return Shift(), nil
	}
	if roots, ok := w.present(c, c.Gold.Roots); ok && len(roots) == len(c.Stack)-1 {
		sort.Ints(roots)
		return ReduceRoots(roots), nil
	}
	return nil, w.fail(c, w.Name(), "no action applies and the input is empty")
}

// contiguous reports whether children are ascending consecutive non-top
// stack indices
func contiguous(c *Configuration, children []int) bool {
	if len(children) == 0 || !validIndex(c, children[0]) || !validIndex(c, children[len(children)-1]) {
		return false
	}
	for i := 1; i < len(children); i++ {
		if children[i] != children[i-1]+1 {
			return false
		}
	}
	return true
}

func (w *WholeHat) Applicable(conf AbstractTransition.Configuration, action AbstractTransition.Action) bool {
	c := simpleConf(conf)
	a, ok := action.(*Action)
	if !ok || !c.Focused() {
		return false
	}
	switch a.Kind {
	case SHIFT:
		return len(c.Buffer) > 0
	case REDUCE:
		if a.Cat == "" || !contiguous(c, a.Children) || a.Head < 0 || a.Head >= len(a.Children) {
			return false
		}
		if c.Hat < a.Children[0] || c.Hat > a.Children[len(a.Children)-1] {
			return false
		}
		if len(a.Children) == 1 && w.LongChain(c, c.Stack[a.Children[0]].Node, a.Cat) {
			return false
		}
		return true
	case REDUCE_ROOTS:
		return len(c.Buffer) == 0 && len(a.Children) == len(c.Stack)-1 && contiguous(c, a.Children)
	default:
		return false
	}
}

func (w *WholeHat) Apply(conf AbstractTransition.Configuration, action AbstractTransition.Action) error {
	c := simpleConf(conf)
	a := asAction(action)
	if !w.Applicable(c, a) {
		return w.inapplicable(c, w.Name(), a)
	}
	switch a.Kind {
	case SHIFT:
		c.Shift()
	case REDUCE:
		headAbs := a.Children[a.Head]
		head := c.Stack[headAbs].Node
		parent := c.wrap(head, w.wrapID(c, head, a.Cat), a.Cat, a.Label)
		for _, abs := range a.Children {
			if abs != headAbs {
				c.Tree.AddChild(parent, c.Stack[abs].Node, false)
			}
		}
		for i := len(a.Children) - 1; i >= 0; i-- {
			c.Remove(a.Children[i])
		}
		pos := headAbs - a.Head
		c.Insert(pos, Slot{parent, BUILT_SLOT})
		c.Hat = pos
	case REDUCE_ROOTS:
		for _, abs := range a.Children {
			c.Tree.AddChild(c.Top, c.Stack[abs].Node, false)
		}
		for i := len(a.Children) - 1; i >= 0; i-- {
			c.Remove(a.Children[i])
		}
		c.Hat = 0
	}
	c.Last = a
	c.Steps++
	return nil
}

func (w *WholeHat) StepAction(conf AbstractTransition.Configuration, action AbstractTransition.Action) (AbstractTransition.Action, bool) {
	return action, true
}

package transition

import (
	"fmt"

	AbstractTransition "hatparse/alg/transition"
	nlp "hatparse/nlp/types"
)

// Simple compares the two rightmost stack elements n0 (top) and n1:
//
//	shift        (S, w|B)         => (S|w, B)
//	reduceUp(X)  (S|n0, B)        => (S|X(n0), B)
//	reduceLeft   (S|n1|n0, B)     => (S|n0+n1, B)     n1 becomes a left child of n0
//	reduceRight  (S|n1|n0, B)     => (S|n1+n0, B)     n0 becomes a right child of n1
type Simple struct {
	Oracle
}

var _ AbstractTransition.TransitionSystem = &Simple{}

func (s *Simple) Name() string {
	return "simple"
}

func (s *Simple) ActionNames() []string {
	return []string{"shift", "reduceUp", "reduceLeft", "reduceRight"}
}

func (s *Simple) NewConfiguration(sentence *nlp.Tree, gold *nlp.Graph) *Configuration {
	return NewConfiguration(sentence, gold, false)
}

func simpleConf(conf AbstractTransition.Configuration) *Configuration {
	c, ok := conf.(*Configuration)
	if !ok {
		panic("Got wrong configuration type")
	}
	return c
}

func (s *Simple) GetAction(conf AbstractTransition.Configuration) (AbstractTransition.Action, error) {
	c := simpleConf(conf)
	if c.Gold == nil {
		panic("Oracle needs a gold tree, set Configuration.Gold")
	}
	if len(c.Stack) >= 2 {
		n0, _ := c.Peek(0)
		n1, _ := c.Peek(1)
		if s.AreChildrenAttached(c, n0) && s.IsHead(c, n0) {
			cat, label, _, _ := s.goldWrap(c, n0)
			if s.LongChain(c, n0, cat) {
				return nil, s.fail(c, s.Name(), fmt.Sprintf("unary cycle of %s above %s", cat, c.Tree.NodeString(n0)))
			}
			return ReduceUp(cat, label), nil
		}
		if n1 != c.Top && s.AreChildrenAttached(c, n1) &&
			s.HasChildGold(c, n0, n1) && s.ArePreviousChildrenAttached(c, n0, n1) {
			return ReduceLeft(), nil
		}
		if s.AreChildrenAttached(c, n0) &&
			s.HasChildGold(c, n1, n0) && s.ArePreviousChildrenAttached(c, n1, n0) {
			return ReduceRight(), nil
		}
	}
	if len(c.Buffer) > 0 {
		return Shift(), nil
	}
	return nil, s.fail(c, s.Name(), "no action applies and the input is empty")
}

func (s *Simple) Applicable(conf AbstractTransition.Configuration, action AbstractTransition.Action) bool {
	c := simpleConf(conf)
	a, ok := action.(*Action)
	if !ok {
		return false
	}
	switch a.Kind {
	case SHIFT:
		return len(c.Buffer) > 0
	case REDUCE_UP:
		if len(c.Stack) < 2 || a.Cat == "" {
			return false
		}
		n0, _ := c.Peek(0)
		return !s.LongChain(c, n0, a.Cat)
	case REDUCE_LEFT:
		if len(c.Stack) < 3 {
			return false
		}
		n0, _ := c.Peek(0)
		return !c.Tree.IsLeaf(n0)
	case REDUCE_RIGHT:
		if len(c.Stack) < 2 {
			return false
		}
		n1, _ := c.Peek(1)
		return !c.Tree.IsLeaf(n1)
	default:
		return false
	}
}

func (s *Simple) Apply(conf AbstractTransition.Configuration, action AbstractTransition.Action) error {
	c := simpleConf(conf)
	a := asAction(action)
	if !s.Applicable(c, a) {
		return s.inapplicable(c, s.Name(), a)
	}
	switch a.Kind {
	case SHIFT:
		c.Shift()
	case REDUCE_UP:
		n0, _ := c.Pop()
		parent := c.wrap(n0, s.wrapID(c, n0, a.Cat), a.Cat, a.Label)
		c.Push(parent, BUILT_SLOT)
	case REDUCE_LEFT:
		n0, _ := c.Peek(0)
		n1, _ := c.Peek(1)
		c.Tree.AddChild(n0, n1, false)
		c.Remove(len(c.Stack) - 2)
	case REDUCE_RIGHT:
		n0, _ := c.Pop()
		n1, _ := c.Peek(0)
		c.Tree.AddChild(n1, n0, false)
	}
	c.Last = a
	c.Steps++
	return nil
}

func (s *Simple) StepAction(conf AbstractTransition.Configuration, action AbstractTransition.Action) (AbstractTransition.Action, bool) {
	return action, true
}

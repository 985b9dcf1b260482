package transition

import (
	"fmt"

	AbstractTransition "hatparse/alg/transition"
	nlp "hatparse/nlp/types"
)

// Hat keeps a focus (the hat) on any stack slot; reductions attach a fellow
// slot, addressed relative to the hat, to or from the focus.
//
//	shift              hat moves to the shifted leaf
//	reduceUpHat(X)     the focus is replaced by X(focus)
//	reduceToHat(r)     the fellow at hat+r becomes a child of the focus
//	reduceFromHat(r)   the focus becomes a child of the fellow at hat+r,
//	                   the hat moves to the fellow
//
// With Compress set, fellows outside [ViewMin, ViewMax] are given as a
// direction and category (see Compress).
type Hat struct {
	Oracle
	ViewMin, ViewMax int
	Compress         bool
}

var _ AbstractTransition.TransitionSystem = &Hat{}

func (h *Hat) Name() string {
	return "hat"
}

func (h *Hat) ActionNames() []string {
	return []string{"shift", "reduceUpHat", "reduceToHat", "reduceFromHat"}
}

func (h *Hat) NewConfiguration(sentence *nlp.Tree, gold *nlp.Graph) *Configuration {
	return NewConfiguration(sentence, gold, true)
}

// GetAction returns the oracle action; fellows outside the view window are
// compressed when compression is on.
func (h *Hat) GetAction(conf AbstractTransition.Configuration) (AbstractTransition.Action, error) {
	c := simpleConf(conf)
	a, err := h.oracle(c)
	if err != nil {
		return nil, err
	}
	if h.Compress {
		return h.CompressAction(c, a), nil
	}
	return a, nil
}

func (h *Hat) oracle(c *Configuration) (*Action, error) {
	if c.Gold == nil {
		panic("Oracle needs a gold tree, set Configuration.Gold")
	}
	focus, _ := c.Focus()
	if focus != c.Top {
		focusDone := h.AreChildrenAttached(c, focus)
		if focusDone && h.IsHead(c, focus) {
			cat, label, _, _ := h.goldWrap(c, focus)
			if h.LongChain(c, focus, cat) {
				return nil, h.fail(c, h.Name(), fmt.Sprintf("unary cycle of %s above %s", cat, c.Tree.NodeString(focus)))
			}
			return ReduceUpHat(cat, label), nil
		}
		for abs := len(c.Stack) - 1; abs >= 0; abs-- {
			if abs == c.Hat {
				continue
			}
			fellow := c.Stack[abs].Node
			if focusDone && h.HasChildGold(c, fellow, focus) && h.ArePreviousChildrenAttached(c, fellow, focus) {
				return ReduceFromHat(c.Rel(abs)), nil
			}
			if fellow != c.Top && h.AreChildrenAttached(c, fellow) &&
				h.HasChildGold(c, focus, fellow) && h.ArePreviousChildrenAttached(c, focus, fellow) {
				return ReduceToHat(c.Rel(abs)), nil
			}
		}
	} else {
		for abs := len(c.Stack) - 1; abs >= 1; abs-- {
			fellow := c.Stack[abs].Node
			if h.AreChildrenAttached(c, fellow) &&
				h.HasChildGold(c, focus, fellow) && h.ArePreviousChildrenAttached(c, focus, fellow) {
				return ReduceToHat(c.Rel(abs)), nil
			}
		}
	}
	if len(c.Buffer) > 0 {
		return Shift(), nil
	}
	return nil, h.fail(c, h.Name(), "no action applies and the input is empty")
}

func (h *Hat) Applicable(conf AbstractTransition.Configuration, action AbstractTransition.Action) bool {
	c := simpleConf(conf)
	a, ok := action.(*Action)
	if !ok || !c.Focused() {
		return false
	}
	if a.Compressed() {
		if a, ok = h.Decompress(c, a); !ok {
			return false
		}
	}
	focus, exists := c.Focus()
	if !exists {
		return false
	}
	switch a.Kind {
	case SHIFT:
		return len(c.Buffer) > 0
	case REDUCE_UP_HAT:
		return focus != c.Top && a.Cat != "" && !h.LongChain(c, focus, a.Cat)
	case REDUCE_TO_HAT:
		abs := c.Abs(a.Fellow)
		return a.Fellow != 0 && validIndex(c, abs) && !c.Tree.IsLeaf(focus)
	case REDUCE_FROM_HAT:
		abs := c.Abs(a.Fellow)
		return a.Fellow != 0 && abs >= 0 && abs < len(c.Stack) && focus != c.Top &&
			!c.Tree.IsLeaf(c.Stack[abs].Node)
	default:
		return false
	}
}

func (h *Hat) Apply(conf AbstractTransition.Configuration, action AbstractTransition.Action) error {
	c := simpleConf(conf)
	a := asAction(action)
	if !h.Applicable(c, a) {
		return h.inapplicable(c, h.Name(), a)
	}
	if a.Compressed() {
		a, _ = h.Decompress(c, a)
	}
	focus, _ := c.Focus()
	switch a.Kind {
	case SHIFT:
		c.Shift()
	case REDUCE_UP_HAT:
		parent := c.wrap(focus, h.wrapID(c, focus, a.Cat), a.Cat, a.Label)
		c.Stack[c.Hat] = Slot{parent, BUILT_SLOT}
	case REDUCE_TO_HAT:
		abs := c.Abs(a.Fellow)
		c.Tree.AddChild(focus, c.Stack[abs].Node, false)
		c.Remove(abs)
	case REDUCE_FROM_HAT:
		abs := c.Abs(a.Fellow)
		c.Tree.AddChild(c.Stack[abs].Node, focus, false)
		c.Remove(c.Hat)
		if abs > c.Hat {
			abs--
		}
		c.Hat = abs
	}
	c.Last = a
	c.Steps++
	return nil
}

// StepAction turns a compressed action back into the numeric one to apply;
// false when no slot matches.
func (h *Hat) StepAction(conf AbstractTransition.Configuration, action AbstractTransition.Action) (AbstractTransition.Action, bool) {
	a := asAction(action)
	if !a.Compressed() {
		return a, true
	}
	numeric, ok := h.Decompress(simpleConf(conf), a)
	if !ok {
		return nil, false
	}
	return numeric, true
}

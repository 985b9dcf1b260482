package transition

import (
	"fmt"
	"strconv"
	"strings"

	AbstractTransition "hatparse/alg/transition"
)

type ActionKind byte

const (
	SHIFT ActionKind = 'S'

	// simple
	REDUCE_UP    ActionKind = 'U'
	REDUCE_LEFT  ActionKind = 'L'
	REDUCE_RIGHT ActionKind = 'R'

	// hat
	REDUCE_UP_HAT   ActionKind = 'u'
	REDUCE_TO_HAT   ActionKind = 't'
	REDUCE_FROM_HAT ActionKind = 'f'

	// whole hat
	REDUCE       ActionKind = 'r'
	REDUCE_ROOTS ActionKind = 'o'
)

var actionNames = map[ActionKind]string{
	SHIFT:           "shift",
	REDUCE_UP:       "reduceUp",
	REDUCE_LEFT:     "reduceLeft",
	REDUCE_RIGHT:    "reduceRight",
	REDUCE_UP_HAT:   "reduceUpHat",
	REDUCE_TO_HAT:   "reduceToHat",
	REDUCE_FROM_HAT: "reduceFromHat",
	REDUCE:          "reduce",
	REDUCE_ROOTS:    "reduceRoots",
}

func (k ActionKind) String() string {
	if name, exists := actionNames[k]; exists {
		return name
	}
	return fmt.Sprintf("unknown(%c)", byte(k))
}

// Direction of a compressed fellow reference, beyond the view window
type Direction byte

const (
	NO_DIRECTION Direction = 0
	LEFT         Direction = 'l'
	RIGHT        Direction = 'r'
)

func (d Direction) String() string {
	switch d {
	case LEFT:
		return "left"
	case RIGHT:
		return "right"
	default:
		return ""
	}
}

// Action is the action type shared by the three systems. Which fields are
// meaningful depends on Kind:
//
//	REDUCE_UP, REDUCE_UP_HAT          Cat, Label of the new parent
//	REDUCE_TO_HAT, REDUCE_FROM_HAT    Fellow relative to the hat, or
//	                                  Dir and FellowCat when compressed
//	REDUCE                            Cat, Label, Head within Children,
//	                                  Children as absolute stack indices
//	REDUCE_ROOTS                      Children as absolute stack indices
type Action struct {
	Kind      ActionKind
	Cat       string
	Label     string
	Fellow    int
	Dir       Direction
	FellowCat string
	Head      int
	Children  []int
}

var _ AbstractTransition.Action = &Action{}

func Shift() *Action {
	return &Action{Kind: SHIFT}
}

func ReduceUp(cat, label string) *Action {
	return &Action{Kind: REDUCE_UP, Cat: cat, Label: label}
}

func ReduceLeft() *Action {
	return &Action{Kind: REDUCE_LEFT}
}

func ReduceRight() *Action {
	return &Action{Kind: REDUCE_RIGHT}
}

func ReduceUpHat(cat, label string) *Action {
	return &Action{Kind: REDUCE_UP_HAT, Cat: cat, Label: label}
}

func ReduceToHat(rel int) *Action {
	return &Action{Kind: REDUCE_TO_HAT, Fellow: rel}
}

func ReduceFromHat(rel int) *Action {
	return &Action{Kind: REDUCE_FROM_HAT, Fellow: rel}
}

// Reduce attaches the slots at the given absolute stack indices under a new
// parent; head indexes into children.
func Reduce(cat, label string, head int, children []int) *Action {
	return &Action{Kind: REDUCE, Cat: cat, Label: label, Head: head, Children: children}
}

func ReduceRoots(children []int) *Action {
	return &Action{Kind: REDUCE_ROOTS, Children: children}
}

func (a *Action) Type() byte {
	return byte(a.Kind)
}

// Compressed reports whether the fellow is given symbolically
func (a *Action) Compressed() bool {
	return a.Dir != NO_DIRECTION
}

func (a *Action) IsFellow() bool {
	return a.Kind == REDUCE_TO_HAT || a.Kind == REDUCE_FROM_HAT
}

func (a *Action) catLabel() string {
	if a.Label == "" {
		return a.Cat
	}
	return a.Cat + ":" + a.Label
}

func (a *Action) String() string {
	switch a.Kind {
	case SHIFT, REDUCE_LEFT, REDUCE_RIGHT:
		return a.Kind.String()
	case REDUCE_UP, REDUCE_UP_HAT:
		return fmt.Sprintf("%v(%s)", a.Kind, a.catLabel())
	case REDUCE_TO_HAT, REDUCE_FROM_HAT:
		if a.Compressed() {
			return fmt.Sprintf("%v(%v %s)", a.Kind, a.Dir, a.FellowCat)
		}
		return fmt.Sprintf("%v(%d)", a.Kind, a.Fellow)
	case REDUCE:
		return fmt.Sprintf("%v(%s,%d,%s)", a.Kind, a.catLabel(), a.Head, intsString(a.Children))
	case REDUCE_ROOTS:
		return fmt.Sprintf("%v(%s)", a.Kind, intsString(a.Children))
	default:
		return a.Kind.String()
	}
}

func intsString(ints []int) string {
	strs := make([]string, len(ints))
	for i, v := range ints {
		strs[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(strs, " ") + "]"
}

func (a *Action) Equal(otherAction AbstractTransition.Action) bool {
	other, ok := otherAction.(*Action)
	if !ok || other == nil {
		return false
	}
	if a.Kind != other.Kind || a.Cat != other.Cat || a.Label != other.Label ||
		a.Fellow != other.Fellow || a.Dir != other.Dir || a.FellowCat != other.FellowCat ||
		a.Head != other.Head || len(a.Children) != len(other.Children) {
		return false
	}
	for i, c := range a.Children {
		if other.Children[i] != c {
			return false
		}
	}
	return true
}

func (a *Action) Copy() *Action {
	c := *a
	if a.Children != nil {
		c.Children = make([]int, len(a.Children))
		copy(c.Children, a.Children)
	}
	return &c
}

func asAction(action AbstractTransition.Action) *Action {
	a, ok := action.(*Action)
	if !ok {
		panic(fmt.Sprintf("Got wrong action type %T", action))
	}
	return a
}

var actionKinds map[string]ActionKind

func init() {
	actionKinds = make(map[string]ActionKind, len(actionNames))
	for k, name := range actionNames {
		actionKinds[name] = k
	}
}

func splitCatLabel(s string) (string, string) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

func parseInts(s string) ([]int, error) {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	fields := strings.Fields(s)
	ints := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		ints[i] = v
	}
	return ints, nil
}

// ParseAction reads back the String form of an action
func ParseAction(s string) (*Action, error) {
	name, args := s, ""
	if i := strings.IndexByte(s, '('); i >= 0 {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("malformed action %q", s)
		}
		name, args = s[:i], s[i+1:len(s)-1]
	}
	kind, exists := actionKinds[name]
	if !exists {
		return nil, fmt.Errorf("unknown action %q", s)
	}
	a := &Action{Kind: kind}
	switch kind {
	case SHIFT, REDUCE_LEFT, REDUCE_RIGHT:
	case REDUCE_UP, REDUCE_UP_HAT:
		a.Cat, a.Label = splitCatLabel(args)
	case REDUCE_TO_HAT, REDUCE_FROM_HAT:
		if dir, cat, found := strings.Cut(args, " "); found {
			switch dir {
			case LEFT.String():
				a.Dir = LEFT
			case RIGHT.String():
				a.Dir = RIGHT
			default:
				return nil, fmt.Errorf("unknown direction in %q", s)
			}
			a.FellowCat = cat
			return a, nil
		}
		rel, err := strconv.Atoi(args)
		if err != nil {
			return nil, fmt.Errorf("bad fellow in %q: %w", s, err)
		}
		a.Fellow = rel
	case REDUCE:
		parts := strings.SplitN(args, ",", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed reduce %q", s)
		}
		a.Cat, a.Label = splitCatLabel(parts[0])
		head, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bad head in %q: %w", s, err)
		}
		a.Head = head
		if a.Children, err = parseInts(parts[2]); err != nil {
			return nil, fmt.Errorf("bad children in %q: %w", s, err)
		}
	case REDUCE_ROOTS:
		children, err := parseInts(args)
		if err != nil {
			return nil, fmt.Errorf("bad children in %q: %w", s, err)
		}
		a.Children = children
	}
	return a, nil
}

// ParseSequence reads a space separated sequence of actions, as written by
// Sequence.String; spaces inside parentheses belong to the action.
func ParseSequence(s string) (AbstractTransition.Sequence, error) {
	var (
		seq   AbstractTransition.Sequence
		depth int
		start = -1
	)
	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		a, err := ParseAction(s[start:end])
		if err != nil {
			return err
		}
		seq = append(seq, a)
		start = -1
		return nil
	}
	for i, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
		case (r == ' ' || r == '\t') && depth == 0:
			if err := flush(i); err != nil {
				return nil, err
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses in %q", s)
	}
	if err := flush(len(s)); err != nil {
		return nil, err
	}
	return seq, nil
}

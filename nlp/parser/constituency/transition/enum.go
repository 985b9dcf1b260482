package transition

import (
	AbstractTransition "hatparse/alg/transition"
	"hatparse/util"
)

// Enumerator maps actions to the integer alphabet a classifier predicts
// over, and back. It is an Extractor, so an oracle run fills it.
type Enumerator struct {
	Actions *util.EnumSet
}

var _ AbstractTransition.Extractor = &Enumerator{}

func NewEnumerator() *Enumerator {
	return &Enumerator{util.NewEnumSet(100)}
}

func (e *Enumerator) Extract(conf AbstractTransition.Configuration, action AbstractTransition.Action) {
	e.Add(action)
}

func (e *Enumerator) Add(action AbstractTransition.Action) int {
	index, _ := e.Actions.Add(action.String())
	return index
}

func (e *Enumerator) IndexOf(action AbstractTransition.Action) (int, bool) {
	return e.Actions.IndexOf(action.String())
}

// Action parses the action interned at index
func (e *Enumerator) Action(index int) (*Action, error) {
	return ParseAction(e.Actions.ValueOf(index))
}

func (e *Enumerator) Len() int {
	return e.Actions.Len()
}

// CountByName tallies how often each action name was extracted
func (e *Enumerator) CountByName() map[string]int {
	counts := make(map[string]int)
	for i := 0; i < e.Actions.Len(); i++ {
		a, err := e.Action(i)
		if err != nil {
			continue
		}
		counts[a.Kind.String()] += e.Actions.Count(i)
	}
	return counts
}

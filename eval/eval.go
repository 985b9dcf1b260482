package eval

import (
	"fmt"
	"sort"

	nlp "hatparse/nlp/types"
)

func Precision(truePositives, testPositives int) float64 {
	if testPositives == 0 {
		return 0
	}
	return float64(truePositives) / float64(testPositives)
}

func Recall(truePositives, conditionPositives int) float64 {
	if conditionPositives == 0 {
		return 0
	}
	return float64(truePositives) / float64(conditionPositives)
}

func F1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2.0 * (precision * recall) / (precision + recall)
}

type Error interface {
	String() string
	Class() string
}

type Errors []Error

func (ers Errors) ByType() map[string]int {
	retval := make(map[string]int)
	for _, e := range ers {
		retval[e.Class()]++
	}
	return retval
}

// Bracket is a labeled constituent: a category over leaves [First, Last]
type Bracket struct {
	Category    string
	First, Last int
}

func (b Bracket) String() string {
	return fmt.Sprintf("%s[%d,%d]", b.Category, b.First, b.Last)
}

// BracketError is a constituent found only in the test tree (extra) or
// only in the gold tree (missing)
type BracketError struct {
	Bracket
	Missing bool
}

func (e *BracketError) Class() string {
	if e.Missing {
		return "missing " + e.Category
	}
	return "extra " + e.Category
}

func (e *BracketError) String() string {
	return e.Class() + " " + e.Bracket.String()
}

type Result struct {
	TP, FP, FN int
	Errors     Errors
}

func (r *Result) Incorrect() int {
	return r.FP + r.FN
}

func (r *Result) TestPositives() int {
	return r.TP + r.FP
}

func (r *Result) ConditionPositives() int {
	return r.TP + r.FN
}

func (r *Result) Precision() float64 {
	return Precision(r.TP, r.TestPositives())
}

func (r *Result) Recall() float64 {
	return Recall(r.TP, r.ConditionPositives())
}

func (r *Result) F1() float64 {
	return F1(r.Precision(), r.Recall())
}

// Brackets collects the labeled constituents of every internal node of t.
// Leaves are not counted; a discontinuous node contributes the span from
// its first to its last leaf.
func Brackets(t *nlp.Tree) []Bracket {
	brackets := make([]Bracket, 0, len(t.Nodes))
	for i := range t.Nodes {
		n := nlp.NodeID(i)
		if t.IsLeaf(n) || len(t.Node(n).Children) == 0 {
			continue
		}
		first, last := t.Span(n)
		brackets = append(brackets, Bracket{t.Node(n).Category, first, last})
	}
	sort.Slice(brackets, func(i, j int) bool {
		a, b := brackets[i], brackets[j]
		if a.First != b.First {
			return a.First < b.First
		}
		if a.Last != b.Last {
			return a.Last > b.Last
		}
		return a.Category < b.Category
	})
	return brackets
}

// Evaluate compares the labeled brackets of test against gold as multisets
func Evaluate(test, gold *nlp.Tree) *Result {
	result := &Result{}
	counts := make(map[Bracket]int)
	for _, b := range Brackets(gold) {
		counts[b]++
	}
	for _, b := range Brackets(test) {
		if counts[b] > 0 {
			counts[b]--
			result.TP++
			continue
		}
		result.FP++
		result.Errors = append(result.Errors, &BracketError{Bracket: b})
	}
	for _, b := range Brackets(gold) {
		if counts[b] > 0 {
			counts[b]--
			result.FN++
			result.Errors = append(result.Errors, &BracketError{Bracket: b, Missing: true})
		}
	}
	return result
}

type Total struct {
	Result
	Results           []*Result
	Exact, Population int
}

func (t *Total) Add(r *Result) {
	t.TP += r.TP
	t.FP += r.FP
	t.FN += r.FN
	if r.Incorrect() == 0 {
		t.Exact += 1
	}
	t.Population += 1
	if t.Results != nil {
		t.Results = append(t.Results, r)
	}
}

func (t *Total) ExactMatch() float64 {
	if t.Population == 0 {
		return 0
	}
	return float64(t.Exact) / float64(t.Population)
}

func (t *Total) Errors() Errors {
	retval := make([]Error, 0, t.Incorrect())
	for _, v := range t.Results {
		if v.Errors != nil {
			retval = append(retval, v.Errors...)
		}
	}
	return retval
}

package transition

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
)

// Action is a single automaton step. Type identifies the action kind
// within its transition system's alphabet.
type Action interface {
	Type() byte
	String() string
	Equal(other Action) bool
}

type Configuration interface {
	Terminal() bool
	Copy() Configuration
	String() string
}

// Sized configurations report the number of words they parse
type Sized interface {
	Len() int
}

// TransitionSystem defines an action alphabet, when each action may be
// applied, what applying it does, and the canonical (gold) action for a
// configuration that carries a gold tree.
type TransitionSystem interface {
	Name() string
	ActionNames() []string

	// GetAction returns the oracle action for conf, or an *OracleError
	GetAction(conf Configuration) (Action, error)
	Applicable(conf Configuration, action Action) bool
	// Apply mutates conf in place; it fails with an *InapplicableError
	// when Applicable does not hold
	Apply(conf Configuration, action Action) error
	// StepAction maps a recorded action to the action actually applied.
	// Systems that rewrite their output alphabet (compression) resolve it
	// here; ok is false when the action cannot be resolved in conf.
	StepAction(conf Configuration, action Action) (step Action, ok bool)
}

// Extractor records training examples; it must accept any action of the
// active transition system
type Extractor interface {
	Extract(conf Configuration, action Action)
}

// Predictor ranks candidate actions, most preferred first
type Predictor interface {
	Predict(conf Configuration) []Action
}

type PredictorFunc func(conf Configuration) []Action

func (f PredictorFunc) Predict(conf Configuration) []Action {
	return f(conf)
}

type ExtractorFunc func(conf Configuration, action Action)

func (f ExtractorFunc) Extract(conf Configuration, action Action) {
	f(conf, action)
}

type Sequence []Action

func (seq Sequence) String() string {
	strs := make([]string, len(seq))
	for i, a := range seq {
		strs[i] = a.String()
	}
	return strings.Join(strs, " ")
}

func (seq Sequence) Equal(other Sequence) bool {
	if len(seq) != len(other) {
		return false
	}
	for i, a := range seq {
		if !a.Equal(other[i]) {
			return false
		}
	}
	return true
}

// Shared returns the length of the common prefix of both sequences
func (seq Sequence) Shared(other Sequence) int {
	var shared int
	for i := range seq {
		if i >= len(other) || !seq[i].Equal(other[i]) {
			break
		}
		shared++
	}
	return shared
}

// Observation is a recorded (configuration, action) pair
type Observation struct {
	Config string
	Action Action
}

// Recorder is an Extractor that keeps every observation
type Recorder struct {
	Observations []Observation
}

var _ Extractor = &Recorder{}

func (r *Recorder) Extract(conf Configuration, action Action) {
	r.Observations = append(r.Observations, Observation{conf.String(), action})
}

func (r *Recorder) Actions() Sequence {
	seq := make(Sequence, len(r.Observations))
	for i, o := range r.Observations {
		seq[i] = o.Action
	}
	return seq
}

func (r *Recorder) Clear() {
	r.Observations = r.Observations[:0]
}

func (r *Recorder) String() string {
	var buf bytes.Buffer
	w := new(tabwriter.Writer)
	w.Init(&buf, 0, 8, 0, '\t', 0)
	for i, o := range r.Observations {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, o.Action, o.Config)
	}
	w.Flush()
	return buf.String()
}

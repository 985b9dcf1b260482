package search

import (
	"fmt"
	"log"

	"hatparse/alg/transition"
)

var (
	SHOW_ORACLE = false
	AllOut      = false
)

const (
	// STEPS_PER_WORD sizes the step budget of a configuration that reports
	// its sentence length: STEPS_PER_WORD * (words + 1)
	STEPS_PER_WORD = 8
	// DEFAULT_MAX_STEPS bounds configurations of unknown length
	DEFAULT_MAX_STEPS = 800
)

// Deterministic runs a transition system greedily, one action per step,
// either following its oracle (Observe), a predictor (Parse) or a recorded
// sequence (Replay). A positive MaxSteps caps every sentence; otherwise the
// budget grows with sentence length. Failures are returned per sentence; panics inside the
// system are recovered into errors unless NoRecover is set.
type Deterministic struct {
	TransFunc          transition.TransitionSystem
	MaxSteps           int
	NoRecover          bool
	ShowConsiderations bool
	Metrics            *Metrics
}

// PanicError is a panic recovered while running a system
type PanicError struct {
	System string
	Value  interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("[%s] recovered: %v", e.System, e.Value)
}

func (d *Deterministic) maxSteps(c transition.Configuration) int {
	if d.MaxSteps > 0 {
		return d.MaxSteps
	}
	if sized, ok := c.(transition.Sized); ok {
		return STEPS_PER_WORD * (sized.Len() + 1)
	}
	return DEFAULT_MAX_STEPS
}

func (d *Deterministic) recoverPanic(err *error) {
	if d.NoRecover {
		return
	}
	if r := recover(); r != nil {
		log.Println("Recovering parse error: ", r)
		*err = &PanicError{d.TransFunc.Name(), r}
	}
}

func (d *Deterministic) stepLimit(c transition.Configuration, steps int) error {
	return &transition.StepLimitError{System: d.TransFunc.Name(), Steps: steps, Config: c.String()}
}

// Observe follows the oracle from c to a terminal configuration, handing
// each (configuration, oracle action) pair to extractor before the action is
// applied. It returns the oracle actions as recorded.
func (d *Deterministic) Observe(c transition.Configuration, extractor transition.Extractor) (seq transition.Sequence, err error) {
	if d.TransFunc == nil {
		panic("Can't parse without a transition system")
	}
	defer func() {
		d.Metrics.Observed("observe", d.TransFunc.Name(), len(seq), err)
	}()
	defer d.recoverPanic(&err)
	var (
		a, step transition.Action
		ok      bool
	)
	if SHOW_ORACLE {
		log.Printf("%d %s", 0, c.String())
	}
	budget := d.maxSteps(c)
	for !c.Terminal() {
		if len(seq) >= budget {
			return seq, d.stepLimit(c, len(seq))
		}
		if a, err = d.TransFunc.GetAction(c); err != nil {
			return seq, err
		}
		if extractor != nil {
			extractor.Extract(c, a)
		}
		seq = append(seq, a)
		if step, ok = d.TransFunc.StepAction(c, a); !ok {
			return seq, &transition.OracleError{
				System: d.TransFunc.Name(),
				Reason: fmt.Sprintf("action %v does not resolve to a stack slot", a),
				Config: c.String(),
			}
		}
		if err = d.TransFunc.Apply(c, step); err != nil {
			return seq, err
		}
		if SHOW_ORACLE {
			log.Printf("%d %s", len(seq), c.String())
		}
	}
	return seq, nil
}

// Parse applies, at each step, the first applicable action of the
// predictor's ranking. It returns the number of steps taken.
func (d *Deterministic) Parse(c transition.Configuration, predictor transition.Predictor) (steps int, err error) {
	if d.TransFunc == nil {
		panic("Can't parse without a transition system")
	}
	defer func() {
		d.Metrics.Observed("parse", d.TransFunc.Name(), steps, err)
	}()
	defer d.recoverPanic(&err)
	budget := d.maxSteps(c)
	for !c.Terminal() {
		if steps >= budget {
			return steps, d.stepLimit(c, steps)
		}
		candidates := predictor.Predict(c)
		if d.ShowConsiderations {
			log.Println(" Showing Considerations For", c)
		}
		var chosen transition.Action
		for _, candidate := range candidates {
			if d.TransFunc.Applicable(c, candidate) {
				chosen = candidate
				break
			}
			if d.ShowConsiderations {
				log.Println(" Skipping inapplicable", candidate)
			}
		}
		if chosen == nil {
			err = &transition.NoCandidateError{System: d.TransFunc.Name(), Candidates: candidates, Config: c.String()}
			log.Println(err)
			return steps, err
		}
		if d.ShowConsiderations {
			log.Println("Chose transition", chosen)
		}
		if err = d.TransFunc.Apply(c, chosen); err != nil {
			return steps, err
		}
		steps++
		if AllOut {
			log.Println(c.String())
		}
	}
	return steps, nil
}

// Replay re-applies a recorded sequence to c, which must end terminal
func (d *Deterministic) Replay(c transition.Configuration, seq transition.Sequence) (err error) {
	if d.TransFunc == nil {
		panic("Can't parse without a transition system")
	}
	defer func() {
		d.Metrics.Observed("replay", d.TransFunc.Name(), len(seq), err)
	}()
	defer d.recoverPanic(&err)
	for i, a := range seq {
		step, ok := d.TransFunc.StepAction(c, a)
		if !ok {
			return &transition.InapplicableError{System: d.TransFunc.Name(), Action: a, Config: c.String()}
		}
		if err = d.TransFunc.Apply(c, step); err != nil {
			return err
		}
		if AllOut {
			log.Println(i, c.String())
		}
	}
	if !c.Terminal() {
		return fmt.Errorf("[%s] replay of %d actions ended in non-terminal configuration %s", d.TransFunc.Name(), len(seq), c.String())
	}
	return nil
}

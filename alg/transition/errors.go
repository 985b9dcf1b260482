package transition

import (
	"errors"
	"fmt"
	"strings"
)

// OracleError reports a gold tree the transition system cannot express
// from the given configuration.
type OracleError struct {
	System string
	Reason string
	Config string
	Gold   string
}

func (e *OracleError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] oracle failure: %s\n", e.System, e.Reason)
	if e.Config != "" {
		fmt.Fprintf(&sb, "  configuration: %s\n", e.Config)
	}
	if e.Gold != "" {
		fmt.Fprintf(&sb, "  gold: %s\n", e.Gold)
	}
	return sb.String()
}

// InapplicableError reports an attempt to apply an action whose
// applicability predicate does not hold.
type InapplicableError struct {
	System string
	Action Action
	Config string
}

func (e *InapplicableError) Error() string {
	return fmt.Sprintf("[%s] inapplicable action %v\n  configuration: %s\n", e.System, e.Action, e.Config)
}

// NoCandidateError reports that no ranked candidate from a predictor was
// applicable.
type NoCandidateError struct {
	System     string
	Candidates []Action
	Config     string
}

func (e *NoCandidateError) Error() string {
	return fmt.Sprintf("[%s] none of %d candidates applicable %v\n  configuration: %s\n",
		e.System, len(e.Candidates), Sequence(e.Candidates), e.Config)
}

// StepLimitError reports a loop that did not reach a terminal
// configuration within the step budget.
type StepLimitError struct {
	System string
	Steps  int
	Config string
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("[%s] no terminal configuration after %d steps\n  configuration: %s\n", e.System, e.Steps, e.Config)
}

// ErrorKind names the class of a per-sentence failure, for reports and
// metric labels.
func ErrorKind(err error) string {
	var (
		oracleErr       *OracleError
		inapplicableErr *InapplicableError
		noCandidateErr  *NoCandidateError
		stepLimitErr    *StepLimitError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &oracleErr):
		return "oracle"
	case errors.As(err, &inapplicableErr):
		return "inapplicable"
	case errors.As(err, &noCandidateErr):
		return "no_candidate"
	case errors.As(err, &stepLimitErr):
		return "step_limit"
	default:
		return "internal"
	}
}

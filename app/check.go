package app

import (
	"fmt"
	"log"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"hatparse/alg/search"
	"hatparse/eval"
	"hatparse/nlp/format/bracket"
	"hatparse/nlp/parser/constituency/transition"
	nlp "hatparse/nlp/types"
)

// ReconstructionError reports a replayed oracle sequence whose parse
// differs from the gold tree
type ReconstructionError struct {
	Gold, Parsed string
}

func (e *ReconstructionError) Error() string {
	return fmt.Sprintf("reconstruction mismatch\n  gold:   %s\n  parsed: %s\n", e.Gold, e.Parsed)
}

// Reconstruct derives the oracle sequence for gold, replays it on a fresh
// configuration and returns the resulting parse
func Reconstruct(system transition.System, d *search.Deterministic, gold *nlp.Tree) (*nlp.Tree, search.Result) {
	observed := system.NewConfiguration(gold, nlp.NewGraph(gold))
	seq, err := d.Observe(observed, nil)
	if err != nil {
		return nil, search.Result{Sequence: seq, Err: err}
	}
	replayed := system.NewConfiguration(gold, nil)
	if err = d.Replay(replayed, seq); err != nil {
		return nil, search.Result{Sequence: seq, Err: err}
	}
	if err = replayed.Check(); err != nil {
		return nil, search.Result{Sequence: seq, Err: err}
	}
	parsed := replayed.CreateParse()
	result := search.Result{Sequence: seq, Output: bracket.Format(parsed)}
	if !nlp.Equal(gold, parsed) {
		result.Err = &ReconstructionError{bracket.Format(gold), result.Output}
	}
	return parsed, result
}

// Score evaluates the labeled brackets of every parse that was built
// against its gold tree; sentences without a parse are skipped
func Score(gold, parsed []*nlp.Tree) *eval.Total {
	total := &eval.Total{Results: make([]*eval.Result, 0, len(gold))}
	for i, p := range parsed {
		if p == nil {
			continue
		}
		total.Add(eval.Evaluate(p, gold[i]))
	}
	return total
}

func CheckRun(cmd *commander.Command, args []string) error {
	c, system, d, reg, err := setup(cmd)
	if err != nil {
		return err
	}
	trees, err := ReadCorpus(input)
	if err != nil {
		return err
	}
	log.Println("Read", len(trees), "trees from", input)
	parsed := make([]*nlp.Tree, len(trees))
	tasks := make([]search.Task, len(trees))
	for i, gold := range trees {
		i, gold := i, gold
		tasks[i] = search.Task{
			Name: gold.Name,
			Run: func() search.Result {
				var result search.Result
				parsed[i], result = Reconstruct(system, d, gold)
				return result
			},
		}
	}
	_, report := runCorpus(c, tasks)
	total := Score(trees, parsed)

	out, closer, err := openOutput()
	if err != nil {
		return err
	}
	defer closer()
	for _, failure := range report.Failures {
		fmt.Fprintf(out, "%s\t%s\n%s\n", failure.Name, failure.Kind, failure.Message)
	}
	fmt.Fprintf(out, "%d/%d reconstructed\n", report.Succeeded, report.Total)
	fmt.Fprintf(out, "Labeled brackets: P %.4f R %.4f F1 %.4f (exact %.4f of %d scored)\n",
		total.Precision(), total.Recall(), total.F1(), total.ExactMatch(), total.Population)
	for class, count := range total.Errors().ByType() {
		log.Printf("\t%s\t%d", class, count)
	}
	if allOut {
		MetricsOut(reg)
	}
	return nil
}

func CheckCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       CheckRun,
		UsageLine: "check <file options> [arguments]",
		Short:     "checks that oracle sequences rebuild their gold trees",
		Long: `
checks that oracle sequences rebuild their gold trees

Every tree's oracle sequence is replayed on a configuration without the gold
tree; the resulting parse must equal the gold tree up to internal ids.

	$ ./hatparse check -in <bracketed trees> [-c <conf.yaml>] [-s simple|hat|wholehat] [options]

`,
		Flag: *flag.NewFlagSet("check", flag.ExitOnError),
	}
	corpusFlags(&cmd.Flag)
	return cmd
}

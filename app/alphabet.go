package app

import (
	"fmt"
	"log"
	"sort"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"hatparse/alg/search"
	"hatparse/nlp/parser/constituency/transition"
	nlp "hatparse/nlp/types"
)

var showActions bool

func AlphabetRun(cmd *commander.Command, args []string) error {
	c, system, d, reg, err := setup(cmd)
	if err != nil {
		return err
	}
	trees, err := ReadCorpus(input)
	if err != nil {
		return err
	}
	log.Println("Read", len(trees), "trees from", input)
	enum := transition.NewEnumerator()
	tasks := make([]search.Task, len(trees))
	for i, gold := range trees {
		gold := gold
		tasks[i] = search.Task{
			Name: gold.Name,
			Run: func() search.Result {
				conf := system.NewConfiguration(gold, nlp.NewGraph(gold))
				seq, err := d.Observe(conf, enum)
				return search.Result{Sequence: seq, Err: err}
			},
		}
	}
	_, report := runCorpus(c, tasks)

	out, closer, err := openOutput()
	if err != nil {
		return err
	}
	defer closer()
	fmt.Fprintf(out, "System:\t%s\n", system.Name())
	fmt.Fprintf(out, "Sentences:\t%d (%d failed)\n", report.Total, len(report.Failures))
	fmt.Fprintf(out, "Alphabet:\t%d\n", enum.Len())
	counts := enum.CountByName()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "\t%s\t%d\n", name, counts[name])
	}
	if showActions {
		for _, action := range enum.Actions.Sorted() {
			fmt.Fprintln(out, action)
		}
	}
	if allOut {
		MetricsOut(reg)
	}
	return nil
}

func AlphabetCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       AlphabetRun,
		UsageLine: "alphabet <file options> [arguments]",
		Short:     "reports the oracle action alphabet of a corpus",
		Long: `
reports the oracle action alphabet of a corpus

The alphabet is the set of distinct actions the oracle emits; with hat
compression its size does not grow with sentence length.

	$ ./hatparse alphabet -in <bracketed trees> [-c <conf.yaml>] [-s hat -compress] [options]

`,
		Flag: *flag.NewFlagSet("alphabet", flag.ExitOnError),
	}
	corpusFlags(&cmd.Flag)
	cmd.Flag.BoolVar(&showActions, "actions", false, "List every action of the alphabet")
	return cmd
}

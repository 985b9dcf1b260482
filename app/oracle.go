package app

import (
	"fmt"
	"log"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"hatparse/alg/search"
	AbstractTransition "hatparse/alg/transition"
	"hatparse/nlp/format/taggedsentence"
	"hatparse/nlp/parser/constituency/transition"
	nlp "hatparse/nlp/types"
)

var sentsOut string

func oracleTask(system transition.System, d *search.Deterministic, gold *nlp.Tree) search.Task {
	return search.Task{
		Name: gold.Name,
		Run: func() search.Result {
			c := system.NewConfiguration(gold, nlp.NewGraph(gold))
			seq, err := d.Observe(c, nil)
			return search.Result{Sequence: seq, Output: seq.String(), Err: err}
		},
	}
}

func OracleRun(cmd *commander.Command, args []string) error {
	c, system, d, reg, err := setup(cmd)
	if err != nil {
		return err
	}
	trees, err := ReadCorpus(input)
	if err != nil {
		return err
	}
	log.Println("Read", len(trees), "trees from", input)
	tasks := make([]search.Task, len(trees))
	for i, gold := range trees {
		tasks[i] = oracleTask(system, d, gold)
	}
	results, report := runCorpus(c, tasks)

	out, closer, err := openOutput()
	if err != nil {
		return err
	}
	defer closer()
	for i, result := range results {
		name := result.Name
		if name == "" {
			name = fmt.Sprintf("%d", i)
		}
		if result.Err != nil {
			fmt.Fprintf(out, "%s\tFAILED\t%v\n", name, AbstractTransition.ErrorKind(result.Err))
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", name, result.Output)
	}
	if allOut {
		MetricsOut(reg)
	}
	if sentsOut != "" {
		file, err := os.Create(sentsOut)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := taggedsentence.Write(file, trees); err != nil {
			return err
		}
		log.Println("Wrote", len(trees), "tagged sentences to", sentsOut)
	}
	if len(report.Failures) > 0 {
		log.Printf("%d of %d sentences have no oracle sequence", len(report.Failures), report.Total)
	}
	return nil
}

func OracleCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       OracleRun,
		UsageLine: "oracle <file options> [arguments]",
		Short:     "prints the oracle action sequence of each gold tree",
		Long: `
prints the oracle action sequence of each gold tree

	$ ./hatparse oracle -in <bracketed trees> [-c <conf.yaml>] [-s simple|hat|wholehat] [options]

`,
		Flag: *flag.NewFlagSet("oracle", flag.ExitOnError),
	}
	corpusFlags(&cmd.Flag)
	cmd.Flag.StringVar(&sentsOut, "sents", "", "Optional - also write the corpus leaves as tagged sentences, input for parse")
	return cmd
}

package app

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"hatparse/alg/search"
	AbstractTransition "hatparse/alg/transition"
	"hatparse/nlp/format/bracket"
	"hatparse/nlp/format/taggedsentence"
	"hatparse/nlp/parser/constituency/transition"
	nlp "hatparse/nlp/types"
)

var sequences string

// ReadSequences reads oracle output: one "name<TAB>actions" line per
// sentence. Failed sentences have no sequence and map to nil.
func ReadSequences(filename string) (map[string]AbstractTransition.Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	seqs := make(map[string]AbstractTransition.Sequence)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for i := 1; scanner.Scan(); i++ {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		name, actions, found := strings.Cut(line, "\t")
		if !found {
			return nil, fmt.Errorf("line %d: expected name and actions separated by a tab", i)
		}
		if strings.HasPrefix(actions, "FAILED") {
			seqs[name] = nil
			continue
		}
		seq, err := transition.ParseSequence(actions)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		seqs[name] = seq
	}
	return seqs, scanner.Err()
}

// SequencePredictor proposes the recorded actions one per step
func SequencePredictor(seq AbstractTransition.Sequence) AbstractTransition.Predictor {
	var next int
	return AbstractTransition.PredictorFunc(func(conf AbstractTransition.Configuration) []AbstractTransition.Action {
		if next >= len(seq) {
			return nil
		}
		next++
		return []AbstractTransition.Action{seq[next-1]}
	})
}

// ParseSentence runs the driver on the leaves of sentence with the recorded
// actions as the predictor's ranking
func ParseSentence(system transition.System, d *search.Deterministic, sentence *nlp.Tree, seq AbstractTransition.Sequence) (*nlp.Tree, search.Result) {
	c := system.NewConfiguration(sentence, nil)
	if _, err := d.Parse(c, SequencePredictor(seq)); err != nil {
		return nil, search.Result{Sequence: seq, Err: err}
	}
	parsed := c.CreateParse()
	return parsed, search.Result{Sequence: seq, Output: bracket.Format(parsed)}
}

func ParseRun(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"seq"}); err != nil {
		return err
	}
	c, system, d, reg, err := setup(cmd)
	if err != nil {
		return err
	}
	sentences, err := taggedsentence.ReadFile(input)
	if err != nil {
		return err
	}
	if limit > 0 && len(sentences) > limit {
		sentences = sentences[:limit]
	}
	log.Println("Read", len(sentences), "sentences from", input)
	seqs, err := ReadSequences(sequences)
	if err != nil {
		return err
	}
	log.Println("Read", len(seqs), "action sequences from", sequences)

	tasks := make([]search.Task, len(sentences))
	for i, sentence := range sentences {
		sentence := sentence
		tasks[i] = search.Task{
			Name: sentence.Name,
			Run: func() search.Result {
				seq, exists := seqs[sentence.Name]
				if !exists || seq == nil {
					return search.Result{Err: fmt.Errorf("no action sequence for sentence %s", sentence.Name)}
				}
				_, result := ParseSentence(system, d, sentence, seq)
				return result
			},
		}
	}
	results, _ := runCorpus(c, tasks)

	out, closer, err := openOutput()
	if err != nil {
		return err
	}
	defer closer()
	for _, result := range results {
		if result.Err != nil {
			// keep the output aligned with the input
			fmt.Fprintln(out, "()")
			continue
		}
		fmt.Fprintln(out, result.Output)
	}
	if allOut {
		MetricsOut(reg)
	}
	return nil
}

func ParseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       ParseRun,
		UsageLine: "parse <file options> [arguments]",
		Short:     "builds trees by replaying action sequences over tagged sentences",
		Long: `
builds trees by replaying action sequences over tagged sentences

Input sentences are one per line as word/TAG tokens; sentence n is parsed
with the sequence named n in the -seq file (the output of the oracle
command). Each step goes through the applicability check of the chosen
transition system.

	$ ./hatparse parse -in <tagged sentences> -seq <oracle output> [-c <conf.yaml>] [-s simple|hat|wholehat] [options]

`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	corpusFlags(&cmd.Flag)
	cmd.Flag.StringVar(&sequences, "seq", "", "Action sequences file")
	return cmd
}

package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/prometheus/client_golang/prometheus"

	"hatparse/alg/search"
	"hatparse/nlp/format/bracket"
	"hatparse/nlp/parser/constituency/transition"
	nlp "hatparse/nlp/types"
	"hatparse/util"
	"hatparse/util/conf"
)

var (
	allOut bool = true

	// file names
	input    string
	confFile string
	output   string

	// overrides of the configuration file
	systemName string
	workers    int
	maxSteps   int
	compress   bool
	leftFirst  bool
	noRecover  bool
	limit      int
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}

func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, name := range required {
		f := cmd.Flag.Lookup(name)
		if f == nil || f.Value.String() == "" {
			cmd.Usage()
			return fmt.Errorf("required flag %s not set", name)
		}
	}
	return nil
}

// corpusFlags registers the flags every corpus command shares
func corpusFlags(fs *flag.FlagSet) {
	fs.StringVar(&input, "in", "", "Bracketed gold trees file")
	fs.StringVar(&confFile, "c", "", "Optional - YAML configuration file")
	fs.StringVar(&output, "out", "", "Optional - output file (default stdout)")
	fs.StringVar(&systemName, "s", "", "Optional - transition system [simple, hat, wholehat], overrides configuration")
	fs.IntVar(&workers, "workers", 0, "Optional - sentences processed concurrently, overrides configuration")
	fs.IntVar(&maxSteps, "maxsteps", 0, "Optional - step budget per sentence, overrides configuration")
	fs.BoolVar(&compress, "compress", false, "Compress hat fellows outside the view window")
	fs.BoolVar(&leftFirst, "leftfirst", false, "Attach left children before right children")
	fs.BoolVar(&noRecover, "norecover", false, "Do not recover from panics in the transition system")
	fs.IntVar(&limit, "limit", 0, "limit number of sentences")
	fs.BoolVar(&search.SHOW_ORACLE, "showoracle", false, "Show oracle transitions")
	fs.BoolVar(&search.AllOut, "showsteps", false, "Show configurations while replaying")
}

// setupConf reads the configuration file, if any, and applies the flag
// overrides that were set on cmd
func setupConf(cmd *commander.Command) (*conf.Conf, error) {
	c := conf.Default()
	if confFile != "" {
		var err error
		if c, err = conf.ReadFile(confFile); err != nil {
			return nil, err
		}
	}
	cmd.Flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			c.System = systemName
		case "workers":
			c.Workers = workers
		case "maxsteps":
			c.MaxSteps = maxSteps
		case "compress":
			c.Compress = compress
		case "leftfirst":
			c.LeftFirst = leftFirst
		}
	})
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func ConfigOut(c *conf.Conf) {
	log.Println("Configuration")
	log.Printf("System:\t\t%s", c.System)
	if c.System == "hat" {
		log.Printf("View:\t\t[%d, %d]", c.ViewMin, c.ViewMax)
		log.Printf("Compress:\t%v", c.Compress)
	}
	log.Printf("Left First:\t%v", c.LeftFirst)
	if c.MaxSteps > 0 {
		log.Printf("Max Steps:\t%d", c.MaxSteps)
	} else {
		log.Printf("Max Steps:\t%d per word", search.STEPS_PER_WORD)
	}
	log.Printf("Workers:\t%d", c.Workers)
	log.Printf("CPUs:\t\t%d", CPUs)
	log.Println()
}

// ReadCorpus reads gold trees and removes unary cycles from them
func ReadCorpus(filename string) ([]*nlp.Tree, error) {
	trees, err := bracket.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(trees) > limit {
		trees = trees[:limit]
	}
	var removed int
	for _, t := range trees {
		removed += nlp.RemoveCycles(t)
	}
	if removed > 0 {
		log.Println("Removed", removed, "unary cycle nodes")
	}
	return trees, nil
}

// setup prepares the transition system and driver shared by the commands
func setup(cmd *commander.Command) (*conf.Conf, transition.System, *search.Deterministic, *prometheus.Registry, error) {
	if err := VerifyFlags(cmd, []string{"in"}); err != nil {
		return nil, nil, nil, nil, err
	}
	if !VerifyExists(input) || (confFile != "" && !VerifyExists(confFile)) {
		return nil, nil, nil, nil, fmt.Errorf("missing input files")
	}
	c, err := setupConf(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if allOut {
		ConfigOut(c)
	}
	system, err := transition.NewSystem(c)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	reg := prometheus.NewRegistry()
	d := &search.Deterministic{
		TransFunc: system,
		MaxSteps:  c.MaxSteps,
		NoRecover: noRecover,
		Metrics:   search.NewMetrics(reg),
	}
	return c, system, d, reg, nil
}

func openOutput() (*os.File, func(), error) {
	if output == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(output)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil
}

func runCorpus(c *conf.Conf, tasks []search.Task) ([]search.Result, *search.Report) {
	start := time.Now()
	corpus := &search.Corpus{Workers: c.Workers, Verbose: allOut}
	results, report := corpus.Run(context.Background(), tasks)
	if allOut {
		log.Println(report.String())
		log.Println("Total Time:", time.Since(start))
		util.LogMemory()
	}
	return results, report
}

// MetricsOut logs the driver counters gathered in reg
func MetricsOut(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.Println("Error gathering metrics", err)
		return
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := ""
			for _, pair := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", pair.GetName(), pair.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				log.Printf("%s%s\t%v", family.GetName(), labels, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				log.Printf("%s%s\tcount %d sum %v", family.GetName(), labels, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}

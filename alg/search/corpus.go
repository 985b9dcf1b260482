package search

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hatparse/alg/transition"
)

// Task runs one sentence; it owns everything it touches
type Task struct {
	Name string
	Run  func() Result
}

type Result struct {
	Name     string
	Sequence transition.Sequence
	Output   string
	Err      error
}

// Failure is a failed sentence with its diagnostics
type Failure struct {
	Index   int
	Name    string
	Kind    string
	Message string
}

type Report struct {
	RunID     string
	Started   time.Time
	Duration  time.Duration
	Total     int
	Succeeded int
	ByKind    map[string]int
	Failures  []Failure
}

func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s: %d sentences, %d succeeded, %d failed in %v\n",
		r.RunID, r.Total, r.Succeeded, len(r.Failures), r.Duration)
	kinds := make([]string, 0, len(r.ByKind))
	for kind := range r.ByKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(&sb, "\t%s\t%d\n", kind, r.ByKind[kind])
	}
	return sb.String()
}

const (
	AttrRunID     = "hatparse.run_id"
	AttrSentence  = "hatparse.sentence"
	AttrSteps     = "hatparse.steps"
	AttrErrorKind = "hatparse.error.kind"
)

// Corpus runs sentences on a bounded pool of workers. Results come back in
// input order. Each sentence runs in its own span under a span for the
// whole run; Tracer defaults to the global provider.
type Corpus struct {
	Workers int
	Verbose bool
	Tracer  trace.Tracer
}

func (cp *Corpus) tracer() trace.Tracer {
	if cp.Tracer == nil {
		return otel.Tracer("hatparse/search")
	}
	return cp.Tracer
}

func setStatus(span trace.Span, result Result) {
	span.SetAttributes(attribute.Int(AttrSteps, len(result.Sequence)))
	if result.Err != nil {
		span.SetAttributes(attribute.String(AttrErrorKind, transition.ErrorKind(result.Err)))
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, transition.ErrorKind(result.Err))
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func (cp *Corpus) workers(n int) int {
	workers := cp.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	return workers
}

func (cp *Corpus) Run(ctx context.Context, tasks []Task) ([]Result, *Report) {
	report := &Report{
		RunID:   uuid.New().String(),
		Started: time.Now(),
		Total:   len(tasks),
		ByKind:  make(map[string]int),
	}
	tracer := cp.tracer()
	ctx, runSpan := tracer.Start(ctx, "corpus", trace.WithAttributes(
		attribute.String(AttrRunID, report.RunID),
		attribute.Int("hatparse.sentences", len(tasks)),
	))
	defer runSpan.End()
	results := make([]Result, len(tasks))
	jobs := make(chan int, len(tasks))
	for i := range tasks {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < cp.workers(len(tasks)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				_, span := tracer.Start(ctx, "sentence", trace.WithAttributes(
					attribute.String(AttrSentence, tasks[i].Name),
				))
				result := tasks[i].Run()
				if result.Name == "" {
					result.Name = tasks[i].Name
				}
				setStatus(span, result)
				span.End()
				results[i] = result
			}
		}()
	}
	wg.Wait()

	for i, result := range results {
		kind := transition.ErrorKind(result.Err)
		report.ByKind[kind]++
		if result.Err == nil {
			report.Succeeded++
			continue
		}
		report.Failures = append(report.Failures, Failure{i, result.Name, kind, result.Err.Error()})
		if cp.Verbose {
			log.Printf("Sentence %d (%s) failed: %v", i, result.Name, result.Err)
		}
	}
	report.Duration = time.Since(report.Started)
	runSpan.SetAttributes(attribute.Int("hatparse.failures", len(report.Failures)))
	return results, report
}

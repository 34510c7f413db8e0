package analysis

import (
	"context"
	"runtime"
)

// Result is the outcome of analyzing one input with RunAll.
type Result struct {
	Input    string
	Analysis *Analysis
	Err      error
}

type job struct {
	index int
	input Input
}

// RunAll analyzes every input on a pool of workers. If workers < 1, one
// worker per CPU is used. Results are returned in input order.
//
// Cancelling ctx stops workers from picking up new inputs. Inputs that were
// never started get ctx.Err() as their error.
func RunAll(ctx context.Context, inputs []Input, opts Options,
	workers int) []Result {

	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan job)
	done := make(chan job, len(inputs))
	results := make([]Result, len(inputs))
	for i := 0; i < workers; i++ {
		go worker(ctx, opts, jobs, results, done)
	}

	sent := 0
feed:
	for i, in := range inputs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{i, in}:
			sent++
		}
	}
	close(jobs)

	for i := 0; i < sent; i++ {
		<-done
	}
	for i := sent; i < len(inputs); i++ {
		results[i] = Result{Input: inputs[i].Name, Err: ctx.Err()}
	}
	return results
}

// worker analyzes jobs until the jobs channel is closed. Each job writes only
// its own slot of results, and signals on done afterwards.
func worker(ctx context.Context, opts Options, jobs <-chan job,
	results []Result, done chan<- job) {

	for j := range jobs {
		a, err := Run(ctx, j.input, opts)
		results[j.index] = Result{Input: j.input.Name, Analysis: a, Err: err}
		if err != nil {
			opts.Logger.Error(err, "analysis failed", "structure", j.input.Name)
		}
		done <- j
	}
}

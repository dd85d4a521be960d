package zhunt

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
)

// WorkerResult records one partition's predictor run. Created when the
// worker process exits and consumed once by the aggregation layer.
type WorkerResult struct {
	// Partition is the sequence ID the worker ran against
	Partition string `json:"partition"`

	// Success is whether the process exited 0 with artifacts present
	Success bool `json:"success"`

	// Elapsed is the wall-clock run time
	Elapsed time.Duration `json:"elapsed_ns"`

	// Artifacts written by the predictor, valid when Success
	Artifacts Artifacts `json:"artifacts"`

	// Err is the captured error text, set when !Success
	Err string `json:"error,omitempty"`
}

// Pool runs the predictor over partitions with bounded concurrency.
type Pool struct {
	// Predictor launched once per partition
	Predictor Predictor

	// Workers caps concurrent predictor processes. Zero or negative
	// means max(1, min(NumCPU, partitionCount))
	Workers int

	// Monitor, if set, tracks per-partition progress during RunAll
	Monitor *Monitor
}

// RunAll drives one predictor invocation per partition and collects
// every result. One partition's failure never aborts its siblings;
// partial success is the normal completion mode and there is no
// automatic retry. With zero partitions it returns immediately without
// spawning anything.
func (p *Pool) RunAll(ctx context.Context, partitions []genome.Partition) []WorkerResult {
	if len(partitions) == 0 {
		return []WorkerResult{}
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(partitions) {
		workers = len(partitions)
	}
	if workers < 1 {
		workers = 1
	}

	if p.Monitor != nil {
		for _, part := range partitions {
			p.Monitor.register(part.ID, part.Path)
		}
	}

	jobs := make(chan genome.Partition)
	results := make(chan WorkerResult, len(partitions))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for part := range jobs {
				results <- p.runOne(ctx, part)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, part := range partitions {
			select {
			case jobs <- part:
			case <-ctx.Done():
				// unsubmitted partitions fail fast instead of hanging
				results <- WorkerResult{
					Partition: part.ID,
					Success:   false,
					Err:       ctx.Err().Error(),
				}
			}
		}
	}()

	collected := make([]WorkerResult, 0, len(partitions))
	for range partitions {
		collected = append(collected, <-results)
	}
	wg.Wait()

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].Partition < collected[j].Partition
	})

	return collected
}

// runOne launches the predictor for a single partition and turns its
// outcome into a WorkerResult.
func (p *Pool) runOne(ctx context.Context, part genome.Partition) WorkerResult {
	start := time.Now()

	arts, err := p.Predictor.Run(ctx, part.Path)
	elapsed := time.Since(start)

	if err != nil {
		return WorkerResult{
			Partition: part.ID,
			Success:   false,
			Elapsed:   elapsed,
			Err:       err.Error(),
		}
	}

	return WorkerResult{
		Partition: part.ID,
		Success:   true,
		Elapsed:   elapsed,
		Artifacts: arts,
	}
}

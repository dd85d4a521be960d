// Package report merges per-partition results into global collections
// and reads/writes the pipeline's tabular outputs.
package report

import (
	"sort"

	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
	"github.com/alexsuw/drosophila-dna-analysis/internal/zhunt"
)

// Failure is one partition that produced no usable result.
type Failure struct {
	// Partition is the sequence ID
	Partition string

	// Err is the captured error text
	Err string
}

// RunStatus classifies a whole run's outcome.
type RunStatus int

const (
	// RunFailed means zero partitions succeeded
	RunFailed RunStatus = iota

	// RunPartial means some partitions failed but at least one succeeded
	RunPartial

	// RunSuccess means every partition succeeded
	RunSuccess
)

func (s RunStatus) String() string {
	switch s {
	case RunSuccess:
		return "complete success"
	case RunPartial:
		return "partial success"
	default:
		return "failure"
	}
}

// Merge combines per-partition candidate lists into one deterministic,
// per-class collection sorted by (sequence, start). Candidates are not
// deduplicated: overlapping spans from different G-run classes are
// independent records.
func Merge(lists ...[]motif.Candidate) map[motif.Class][]motif.Candidate {
	byClass := make(map[motif.Class][]motif.Candidate)
	for _, list := range lists {
		for _, c := range list {
			byClass[c.Class] = append(byClass[c.Class], c)
		}
	}

	for class := range byClass {
		motif.SortCandidates(byClass[class])
	}

	return byClass
}

// Failures extracts the failed partitions from worker results, sorted
// by partition ID.
func Failures(results []zhunt.WorkerResult) []Failure {
	var failures []Failure
	for _, r := range results {
		if !r.Success {
			failures = append(failures, Failure{Partition: r.Partition, Err: r.Err})
		}
	}

	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Partition < failures[j].Partition
	})

	return failures
}

// StatusOf classifies worker results: all succeeded, some did, or none.
// A run with zero successful partitions must never pass for success.
func StatusOf(results []zhunt.WorkerResult) RunStatus {
	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}

	switch {
	case len(results) == 0 || succeeded == 0:
		return RunFailed
	case succeeded < len(results):
		return RunPartial
	default:
		return RunSuccess
	}
}

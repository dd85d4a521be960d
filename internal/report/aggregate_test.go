package report

import (
	"reflect"
	"testing"

	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
	"github.com/alexsuw/drosophila-dna-analysis/internal/zhunt"
)

func Test_Merge(t *testing.T) {
	chr2L := []motif.Candidate{
		{SeqID: "chr2L", Start: 900, End: 920, Class: motif.QuadruplexRepeat},
		{SeqID: "chr2L", Start: 100, End: 120, Class: motif.QuadruplexRepeat},
		{SeqID: "chr2L", Start: 500, End: 512, Class: motif.AlternativeStructure},
	}
	chrX := []motif.Candidate{
		{SeqID: "chrX", Start: 50, End: 70, Class: motif.QuadruplexRepeat},
	}

	merged := Merge(chr2L, chrX)

	g4 := merged[motif.QuadruplexRepeat]
	if len(g4) != 3 {
		t.Fatalf("expected 3 quadruplex candidates, got %d", len(g4))
	}
	// sorted by sequence then start
	if g4[0].Start != 100 || g4[1].Start != 900 || g4[2].SeqID != "chrX" {
		t.Errorf("bad merge order: %+v", g4)
	}

	if len(merged[motif.AlternativeStructure]) != 1 {
		t.Errorf("lost the predictor candidate: %+v", merged)
	}
}

// merging is deterministic regardless of input list order
func Test_Merge_deterministic(t *testing.T) {
	a := []motif.Candidate{{SeqID: "chr2L", Start: 10, End: 30, Class: motif.QuadruplexRepeat}}
	b := []motif.Candidate{{SeqID: "chr2L", Start: 5, End: 25, Class: motif.QuadruplexRepeat}}

	if !reflect.DeepEqual(Merge(a, b), Merge(b, a)) {
		t.Error("merge order changed the result")
	}
}

// overlapping candidates from different runs are both kept
func Test_Merge_keepsOverlaps(t *testing.T) {
	a := []motif.Candidate{
		{SeqID: "chrX", Start: 100, End: 119, Class: motif.QuadruplexRepeat, Quad: &motif.QuadMeta{GRunLength: 3}},
		{SeqID: "chrX", Start: 100, End: 119, Class: motif.QuadruplexRepeat, Quad: &motif.QuadMeta{GRunLength: 4}},
	}

	if got := Merge(a)[motif.QuadruplexRepeat]; len(got) != 2 {
		t.Errorf("expected both overlapping candidates, got %d", len(got))
	}
}

func Test_Failures(t *testing.T) {
	results := []zhunt.WorkerResult{
		{Partition: "chrX", Success: false, Err: "exit status 1"},
		{Partition: "chr2L", Success: true},
		{Partition: "chr2R", Success: false, Err: "signal: killed"},
	}

	failures := Failures(results)
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failures))
	}
	if failures[0].Partition != "chr2R" || failures[1].Partition != "chrX" {
		t.Errorf("failures not sorted: %+v", failures)
	}
	if failures[0].Err == "" {
		t.Error("failure lost its error text")
	}
}

func Test_StatusOf(t *testing.T) {
	ok := zhunt.WorkerResult{Partition: "a", Success: true}
	bad := zhunt.WorkerResult{Partition: "b", Success: false, Err: "boom"}

	tests := []struct {
		name    string
		results []zhunt.WorkerResult
		want    RunStatus
	}{
		{"all succeed", []zhunt.WorkerResult{ok, ok}, RunSuccess},
		{"some fail", []zhunt.WorkerResult{ok, bad}, RunPartial},
		{"all fail", []zhunt.WorkerResult{bad, bad}, RunFailed},
		{"no results", nil, RunFailed},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.results); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

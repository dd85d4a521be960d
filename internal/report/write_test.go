package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/alexsuw/drosophila-dna-analysis/internal/annotation"
	"github.com/alexsuw/drosophila-dna-analysis/internal/coloc"
	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
	"github.com/alexsuw/drosophila-dna-analysis/internal/zhunt"
)

// a written candidate table reads back identical
func Test_WriteCandidates_roundTrip(t *testing.T) {
	candidates := []motif.Candidate{
		{
			SeqID: "chr2L", Start: 100, End: 121, Seq: "GGGAAAGGGAAAGGGAAAGGG",
			Class: motif.QuadruplexRepeat, Score: 112.14,
			Quad: &motif.QuadMeta{GRunLength: 3, GContent: 0.571, GCContent: 0.571},
		},
		{
			SeqID: "chrX", Start: 5000, End: 5012, Seq: "ACGCGCGCGCGT",
			Class: motif.QuadruplexRepeat, Score: 90.5,
			Quad: &motif.QuadMeta{GRunLength: 4, GContent: 0.417, GCContent: 0.917},
		},
	}

	path := filepath.Join(t.TempDir(), "quadruplex_results.tsv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if err := WriteCandidates(f, candidates); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}
	f.Close()

	again, err := ReadCandidates(path, motif.QuadruplexRepeat)
	if err != nil {
		t.Fatalf("failed to read the table back: %v", err)
	}
	if !reflect.DeepEqual(again, candidates) {
		t.Errorf("round trip changed the candidates:\nwrote %+v\nread  %+v", candidates, again)
	}
}

func Test_WriteCandidates_predictorMeta(t *testing.T) {
	candidates := []motif.Candidate{
		{
			SeqID: "chr3R", Start: 200, End: 212, Seq: "GCGCGCGCGCGC",
			Class: motif.AlternativeStructure, Score: 350.25,
			Alt: &motif.AltMeta{AuxScores: []float64{1.5, 2.25}},
		},
	}

	path := filepath.Join(t.TempDir(), "zdna_structures.tsv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if err := WriteCandidates(f, candidates); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}
	f.Close()

	again, err := ReadCandidates(path, motif.AlternativeStructure)
	if err != nil {
		t.Fatalf("failed to read the table back: %v", err)
	}
	if !reflect.DeepEqual(again, candidates) {
		t.Errorf("round trip changed the candidates:\nwrote %+v\nread  %+v", candidates, again)
	}
}

// a schema with only position and quality columns produces candidates
// with no aux scores; their table must still read back whole
func Test_WriteCandidates_noAuxScores(t *testing.T) {
	candidates := []motif.Candidate{
		{
			SeqID: "chr2L", Start: 100, End: 112, Seq: "ACGCGCGCGCGT",
			Class: motif.AlternativeStructure, Score: 310,
			Alt: &motif.AltMeta{},
		},
	}

	path := filepath.Join(t.TempDir(), "zdna_structures.tsv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if err := WriteCandidates(f, candidates); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}
	f.Close()

	again, err := ReadCandidates(path, motif.AlternativeStructure)
	if err != nil {
		t.Fatalf("failed to read the table back: %v", err)
	}
	if len(again) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(again))
	}
	c := again[0]
	if c.Alt == nil || len(c.Alt.AuxScores) != 0 {
		t.Errorf("expected metadata with no aux scores, got %+v", c.Alt)
	}
	if c.Start != 100 || c.End != 112 || c.Seq != "ACGCGCGCGCGT" || c.Score != 310 {
		t.Errorf("round trip changed the candidate: %+v", c)
	}
}

func Test_WriteBED(t *testing.T) {
	var sb strings.Builder
	err := WriteBED(&sb, []motif.Candidate{
		{SeqID: "chr2L", Start: 100, End: 121, Class: motif.QuadruplexRepeat, Score: 112.14},
	})
	if err != nil {
		t.Fatalf("failed to write BED: %v", err)
	}

	if got := sb.String(); got != "chr2L\t100\t121\tG4_0\t112.14\t.\n" {
		t.Errorf("unexpected BED line %q", got)
	}
}

func Test_WritePairs(t *testing.T) {
	pairs := []coloc.Pair{
		{
			SeqID: "chr2L", PosA: 1000, PosB: 1500, Distance: 500,
			A: motif.Candidate{Seq: "GGGAGGGAGGGAGGG"},
			B: motif.Candidate{Seq: "GCGCGCGCGCGC", Score: 320},
		},
	}

	var sb strings.Builder
	if err := WritePairs(&sb, pairs); err != nil {
		t.Fatalf("failed to write pairs: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected a header and 1 row, got %d lines", len(lines))
	}
	if lines[1] != "chr2L\t1000\t1500\t500\tGGGAGGGAGGGAGGG\tGCGCGCGCGCGC\t320.00" {
		t.Errorf("unexpected pair row %q", lines[1])
	}
}

func Test_WriteGeneList(t *testing.T) {
	dpp := &annotation.Gene{GeneID: "FBgn0000490", Name: "dpp"}
	lgl := &annotation.Gene{GeneID: "FBgn0002121", Name: "l(2)gl"}

	overlaps := []coloc.Overlap{
		{Region: annotation.Promoter{Gene: dpp}},
		{Region: annotation.Promoter{Gene: lgl}},
		{Region: annotation.Promoter{Gene: dpp}}, // second hit, same gene
	}

	var sb strings.Builder
	if err := WriteGeneList(&sb, overlaps); err != nil {
		t.Fatalf("failed to write gene list: %v", err)
	}

	if got := sb.String(); got != "dpp\nl(2)gl\n" {
		t.Errorf("expected a unique sorted gene list, got %q", got)
	}
}

func Test_Summary(t *testing.T) {
	results := []zhunt.WorkerResult{
		{Partition: "chr2L", Success: true, Elapsed: 2 * time.Second},
		{Partition: "chrX", Success: false, Err: "exit status 1"},
	}

	s := NewSummary(results, 42, 90*time.Second)
	if s.PartitionsSucceeded != 1 || s.PartitionsTotal != 2 {
		t.Errorf("bad partition counts %d/%d", s.PartitionsSucceeded, s.PartitionsTotal)
	}
	if s.Status != "partial success" {
		t.Errorf("expected partial success, got %q", s.Status)
	}
	if s.StructuresFound != 42 || s.TotalTimeSeconds != 90.0 {
		t.Errorf("unexpected summary %+v", s)
	}
	if len(s.Failures) != 1 || s.Failures[0].Partition != "chrX" {
		t.Errorf("unexpected failures %+v", s.Failures)
	}

	path := filepath.Join(t.TempDir(), "zhunt_summary.json")
	if err := s.WriteFile(path); err != nil {
		t.Fatalf("failed to write summary: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read summary back: %v", err)
	}
	var decoded Summary
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if decoded.Status != s.Status || decoded.PartitionsTotal != s.PartitionsTotal {
		t.Errorf("summary changed on disk: %+v", decoded)
	}
}

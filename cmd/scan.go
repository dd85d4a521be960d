package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"text/tabwriter"

	"github.com/alexsuw/drosophila-dna-analysis/config"
	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
	"github.com/alexsuw/drosophila-dna-analysis/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scanCmd finds G-quadruplex forming sequences in a genome FASTA file.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a genome for G-quadruplex forming sequences",
	Long: `Scan every chromosome of a multi-FASTA genome for tandem G-repeat
patterns (four G-runs separated by short variable loops), score each
match, and write the candidates as a table and a BED file.

Chromosomes are scanned in parallel; each G-run length class from
min-run-length up to max-run-length scans independently, so candidates
from different classes may cover overlapping spans.`,
	Example: "  dna-analysis scan --in dm6.fa --out results",
	Run:     runScan,
}

func runScan(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")

	conf, err := config.New()
	if err != nil {
		log.Fatalf("%v", err)
	}

	seqs, err := genome.SplitFile(in)
	if err != nil {
		log.Fatalf("%v", err)
	}

	params := motif.ScanParams{
		MinRunLength:  conf.MinRunLength,
		MaxRunLength:  conf.MaxRunLength,
		MaxLoopLength: conf.MaxLoopLength,
		MinScore:      conf.MinScore,
	}

	// chromosomes are independent, scan them in parallel
	lists := make([][]motif.Candidate, len(seqs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())
	for i, s := range seqs {
		wg.Add(1)
		go func(i int, s *genome.Sequence) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			lists[i] = motif.Scan(s, params)
		}(i, s)
	}
	wg.Wait()

	merged := report.Merge(lists...)
	candidates := merged[motif.QuadruplexRepeat]

	if err := os.MkdirAll(out, 0755); err != nil {
		log.Fatalf("failed to create output directory %s: %v", out, err)
	}

	tablePath := filepath.Join(out, "quadruplex_results.tsv")
	writeWith(tablePath, func(f *os.File) error {
		return report.WriteCandidates(f, candidates)
	})

	bedPath := filepath.Join(out, "quadruplex_results.bed")
	writeWith(bedPath, func(f *os.File) error {
		return report.WriteBED(f, candidates)
	})

	logScanSummary(candidates)
	fmt.Printf("wrote %d candidates to %s\n", len(candidates), tablePath)
}

// scanStats accumulates one chromosome's candidate distribution.
type scanStats struct {
	count     int
	scoreSum  float64
	scoreMin  float64
	scoreMax  float64
	lengthSum int
}

// logScanSummary prints the per-chromosome candidate distribution.
func logScanSummary(candidates []motif.Candidate) {
	stats := make(map[string]*scanStats)
	var order []string
	for i := range candidates {
		c := &candidates[i]
		s, ok := stats[c.SeqID]
		if !ok {
			s = &scanStats{scoreMin: c.Score, scoreMax: c.Score}
			stats[c.SeqID] = s
			order = append(order, c.SeqID)
		}
		s.count++
		s.scoreSum += c.Score
		if c.Score < s.scoreMin {
			s.scoreMin = c.Score
		}
		if c.Score > s.scoreMax {
			s.scoreMax = c.Score
		}
		s.lengthSum += c.Length()
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(tw, "chromosome\tcandidates\tmean score\tmin\tmax\tmean length\t\n")
	for _, id := range order {
		s := stats[id]
		n := float64(s.count)
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.1f\t\n",
			id, s.count, s.scoreSum/n, s.scoreMin, s.scoreMax, float64(s.lengthSum)/n)
	}
	tw.Flush()
}

// writeWith creates path and runs the write function against it.
func writeWith(path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		log.Fatalf("failed to write %s: %v", path, err)
	}
}

// set flags
func init() {
	scanCmd.Flags().StringP("in", "i", "", "path to the genome multi-FASTA file")
	scanCmd.Flags().StringP("out", "o", "results", "output directory")
	scanCmd.Flags().Float64P("min-score", "s", 50, "minimum quadruplex score to keep")
	scanCmd.Flags().Int("min-run-length", 3, "minimum G-run length (inclusive)")
	scanCmd.Flags().Int("max-run-length", 7, "maximum G-run length (exclusive)")
	scanCmd.Flags().Int("max-loop-length", 7, "maximum loop length between G-runs")

	scanCmd.MarkFlagRequired("in")

	viper.BindPFlag("min-score", scanCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("min-run-length", scanCmd.Flags().Lookup("min-run-length"))
	viper.BindPFlag("max-run-length", scanCmd.Flags().Lookup("max-run-length"))
	viper.BindPFlag("max-loop-length", scanCmd.Flags().Lookup("max-loop-length"))

	rootCmd.AddCommand(scanCmd)
}

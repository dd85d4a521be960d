package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/alexsuw/drosophila-dna-analysis/config"
	"github.com/alexsuw/drosophila-dna-analysis/internal/annotation"
	"github.com/alexsuw/drosophila-dna-analysis/internal/coloc"
	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
	"github.com/alexsuw/drosophila-dna-analysis/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// analyzeCmd relates the two structure classes to each other and to genes.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Relate quadruplex and Z-DNA candidates to promoters and to each other",
	Long: `Load the candidate tables produced by scan and predict, derive promoter
regions from a GTF annotation, and report:

  - which candidates fall inside promoters (plus a unique gene list
    for functional-enrichment upload)
  - colocalized quadruplex/Z-DNA pairs within the distance window
  - aggregate colocalization statistics`,
	Example: "  dna-analysis analyze --g4 results/quadruplex_results.tsv --zdna z_hunt_results/zdna_structures.tsv --gtf dm6.gtf",
	Run:     runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) {
	g4Path, _ := cmd.Flags().GetString("g4")
	zdnaPath, _ := cmd.Flags().GetString("zdna")
	gtfPath, _ := cmd.Flags().GetString("gtf")
	out, _ := cmd.Flags().GetString("out")

	conf, err := config.New()
	if err != nil {
		log.Fatalf("%v", err)
	}

	g4s, err := report.ReadCandidates(g4Path, motif.QuadruplexRepeat)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var zdnas []motif.Candidate
	if zdnaPath != "" {
		if zdnas, err = report.ReadCandidates(zdnaPath, motif.AlternativeStructure); err != nil {
			log.Fatalf("%v", err)
		}
	} else {
		stderr.Println("no Z-DNA table provided, skipping colocalization")
	}

	annots, err := annotation.ReadFile(gtfPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	for _, w := range annots.Warnings {
		stderr.Printf("skipped annotation record: %s", w)
	}
	if len(annots.Genes) == 0 {
		log.Fatalf("no transcript records found in %s", gtfPath)
	}

	promoters := annotation.Promoters(annots.Genes, conf.PromoterUpstream, conf.PromoterDownstream)

	if err := os.MkdirAll(out, 0755); err != nil {
		log.Fatalf("failed to create output directory %s: %v", out, err)
	}

	// promoter overlaps for both classes together
	combined := append(append([]motif.Candidate{}, g4s...), zdnas...)
	overlaps := coloc.FindOverlapping(combined, promoters)

	writeWith(filepath.Join(out, "promoter_overlaps.tsv"), func(f *os.File) error {
		return report.WriteOverlaps(f, overlaps)
	})
	writeWith(filepath.Join(out, "genes_for_string.txt"), func(f *os.File) error {
		return report.WriteGeneList(f, overlaps)
	})

	fmt.Printf("%d candidates in promoters across %d genes\n", len(overlaps), len(annots.Genes))

	if len(zdnas) == 0 {
		return
	}

	pairs := coloc.FindProximal(g4s, zdnas, conf.Window)
	writeWith(filepath.Join(out, "colocalization_pairs.tsv"), func(f *os.File) error {
		return report.WritePairs(f, pairs)
	})

	stats := coloc.PairStats(pairs)
	fmt.Printf("colocalization within %d bp: %d pairs, %d G4 with Z-DNA, %d Z-DNA with G4, mean distance %.0f bp\n",
		conf.Window, stats.Total, stats.AWithPartner, stats.BWithPartner, stats.MeanDistance)
}

// set flags
func init() {
	analyzeCmd.Flags().String("g4", "", "path to the quadruplex candidate table from scan")
	analyzeCmd.Flags().String("zdna", "", "path to the Z-DNA candidate table from predict")
	analyzeCmd.Flags().StringP("gtf", "g", "", "path to the GTF gene annotation")
	analyzeCmd.Flags().StringP("out", "o", "results", "output directory")
	analyzeCmd.Flags().IntP("window", "w", 1000, "colocalization distance window in bp")
	analyzeCmd.Flags().Int("promoter-upstream", 1000, "promoter extent upstream of the TSS")
	analyzeCmd.Flags().Int("promoter-downstream", 1000, "promoter extent downstream of the TSS")

	analyzeCmd.MarkFlagRequired("g4")
	analyzeCmd.MarkFlagRequired("gtf")

	viper.BindPFlag("window", analyzeCmd.Flags().Lookup("window"))
	viper.BindPFlag("promoter-upstream", analyzeCmd.Flags().Lookup("promoter-upstream"))
	viper.BindPFlag("promoter-downstream", analyzeCmd.Flags().Lookup("promoter-downstream"))

	rootCmd.AddCommand(analyzeCmd)
}

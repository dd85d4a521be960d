package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexsuw/drosophila-dna-analysis/config"
	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
	"github.com/alexsuw/drosophila-dna-analysis/internal/report"
	"github.com/alexsuw/drosophila-dna-analysis/internal/zhunt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// predictCmd runs the external Z-Hunt predictor over every chromosome.
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run the Z-Hunt predictor per chromosome and extract Z-DNA candidates",
	Long: `Split the genome into one FASTA file per chromosome, run the external
Z-Hunt predictor against each large enough partition with a bounded
pool of worker processes, and extract the windows whose Z-score falls
inside the configured band.

Progress is polled from the predictor's artifact files every few
seconds. A failed chromosome never aborts the others: the run finishes
as a partial success and enumerates what failed.`,
	Example: "  dna-analysis predict --in dm6.fa --out z_hunt_results --predictor ./tools/zhunt/zhunt2",
	Run:     runPredict,
}

func runPredict(cmd *cobra.Command, args []string) {
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

	parts, err := genome.WriteAll(seqs, out)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// the predictor is only worth its startup cost on large partitions
	minBytes := int(conf.MinPartitionMB * 1024 * 1024)
	var large []genome.Partition
	for _, p := range parts {
		if p.Size >= minBytes {
			large = append(large, p)
			continue
		}
		stderr.Printf("skipping small partition %s (%.1f MB)", p.ID, float64(p.Size)/(1024*1024))
	}

	if len(large) == 0 {
		log.Fatalf("no partition reaches the %.1f MB minimum, nothing to predict", conf.MinPartitionMB)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	monitor := zhunt.NewMonitor(conf.PollInterval)
	pool := &zhunt.Pool{
		Predictor: &zhunt.CommandPredictor{
			Command:     conf.PredictorCommand,
			MinRunSize:  conf.PredictorMinRun,
			WindowParam: conf.PredictorWindow,
			MaxRunSize:  conf.PredictorMaxRun,
			Grace:       conf.GracePeriod,
		},
		Workers: conf.Workers,
		Monitor: monitor,
	}

	stop := make(chan struct{})
	go monitor.Run(stop)
	go displayProgress(stop, monitor, conf.PollInterval)

	start := time.Now()
	results := pool.RunAll(ctx, large)
	close(stop)

	candidates := extractCandidates(results, conf)

	status := report.StatusOf(results)
	summary := report.NewSummary(results, len(candidates), time.Since(start))
	summaryPath := filepath.Join(out, "zhunt_summary.json")
	if err := summary.WriteFile(summaryPath); err != nil {
		log.Fatalf("failed to write summary: %v", err)
	}

	tablePath := filepath.Join(out, "zdna_structures.tsv")
	writeWith(tablePath, func(f *os.File) error {
		return report.WriteCandidates(f, candidates)
	})

	for _, f := range report.Failures(results) {
		stderr.Printf("partition %s failed: %s", f.Partition, f.Err)
	}

	fmt.Printf("%s: %d/%d partitions, %d Z-DNA candidates, summary at %s\n",
		status, summary.PartitionsSucceeded, summary.PartitionsTotal, len(candidates), summaryPath)

	if status == report.RunFailed {
		log.Fatal("no partition succeeded")
	}
}

// extractCandidates parses every successful partition's probability
// file within the configured Z-score band.
func extractCandidates(results []zhunt.WorkerResult, conf *config.Config) []motif.Candidate {
	schema := zhunt.DefaultSchema()
	schema.QualityColumn = conf.QualityColumn
	schema.SequenceColumn = conf.SequenceColumn
	schema.WindowLength = conf.PredictorMinRun

	var lists [][]motif.Candidate
	for _, r := range results {
		if !r.Success {
			continue
		}

		parsed, err := zhunt.Parse(r.Artifacts.ProbabilityFile, schema, conf.ZScoreMin, conf.ZScoreMax)
		if err != nil {
			stderr.Printf("failed to parse %s: %v", r.Artifacts.ProbabilityFile, err)
			continue
		}
		for _, w := range parsed.Warnings {
			stderr.Printf("skipped line %s", w)
		}
		if parsed.Skipped > len(parsed.Warnings) {
			stderr.Printf("%d more malformed lines in %s", parsed.Skipped-len(parsed.Warnings), r.Artifacts.ProbabilityFile)
		}
		lists = append(lists, parsed.Candidates)
	}

	return report.Merge(lists...)[motif.AlternativeStructure]
}

// displayProgress periodically prints the monitor's status table.
func displayProgress(stop <-chan struct{}, monitor *zhunt.Monitor, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			monitor.Write(os.Stdout)
		}
	}
}

// set flags
func init() {
	predictCmd.Flags().StringP("in", "i", "", "path to the genome multi-FASTA file")
	predictCmd.Flags().StringP("out", "o", "z_hunt_results", "directory for partition files and artifacts")
	predictCmd.Flags().StringP("predictor", "p", "zhunt2", "path to the Z-Hunt binary")
	predictCmd.Flags().Int("predictor-min-run", 12, "predictor minimum run size parameter")
	predictCmd.Flags().Int("predictor-window", 8, "predictor window parameter")
	predictCmd.Flags().Int("predictor-max-run", 12, "predictor maximum run size parameter")
	predictCmd.Flags().Float64("min-partition-mb", 1.0, "skip partitions smaller than this many MB")
	predictCmd.Flags().IntP("workers", "w", 0, "maximum concurrent predictor processes (0 = one per CPU)")
	predictCmd.Flags().Duration("poll-interval", 2*time.Second, "progress poll interval")
	predictCmd.Flags().Duration("grace-period", 10*time.Second, "SIGTERM to SIGKILL grace on cancellation")
	predictCmd.Flags().Float64("zscore-min", 300, "minimum Z-score to keep (inclusive)")
	predictCmd.Flags().Float64("zscore-max", 400, "maximum Z-score to keep (inclusive)")
	predictCmd.Flags().Int("quality-column", 3, "column of the Z-score in the probability file")
	predictCmd.Flags().Int("sequence-column", 4, "column of the sequence text (-1 if absent)")

	predictCmd.MarkFlagRequired("in")

	viper.BindPFlag("predictor", predictCmd.Flags().Lookup("predictor"))
	viper.BindPFlag("predictor-min-run", predictCmd.Flags().Lookup("predictor-min-run"))
	viper.BindPFlag("predictor-window", predictCmd.Flags().Lookup("predictor-window"))
	viper.BindPFlag("predictor-max-run", predictCmd.Flags().Lookup("predictor-max-run"))
	viper.BindPFlag("min-partition-mb", predictCmd.Flags().Lookup("min-partition-mb"))
	viper.BindPFlag("workers", predictCmd.Flags().Lookup("workers"))
	viper.BindPFlag("poll-interval", predictCmd.Flags().Lookup("poll-interval"))
	viper.BindPFlag("grace-period", predictCmd.Flags().Lookup("grace-period"))
	viper.BindPFlag("zscore-min", predictCmd.Flags().Lookup("zscore-min"))
	viper.BindPFlag("zscore-max", predictCmd.Flags().Lookup("zscore-max"))
	viper.BindPFlag("quality-column", predictCmd.Flags().Lookup("quality-column"))
	viper.BindPFlag("sequence-column", predictCmd.Flags().Lookup("sequence-column"))

	rootCmd.AddCommand(predictCmd)
}

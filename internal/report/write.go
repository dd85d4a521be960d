package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alexsuw/drosophila-dna-analysis/internal/coloc"
	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
	"github.com/alexsuw/drosophila-dna-analysis/internal/zhunt"
)

// WriteCandidates writes one motif class's candidates as a
// tab-separated table: sequenceId, start, end, length, score, sequence
// text, then the class-specific columns.
func WriteCandidates(w io.Writer, candidates []motif.Candidate) error {
	if _, err := fmt.Fprintln(w, "chromosome\tstart\tend\tlength\tscore\tsequence\tmeta"); err != nil {
		return err
	}

	for i := range candidates {
		c := &candidates[i]
		row := fmt.Sprintf(
			"%s\t%d\t%d\t%d\t%s\t%s",
			c.SeqID, c.Start, c.End, c.Length(), formatScore(c.Score), c.Seq,
		)
		// no trailing empty column when a candidate has no metadata
		if meta := metaColumns(c); meta != "" {
			row += "\t" + meta
		}
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}

	return nil
}

// metaColumns renders the class-specific trailing columns.
func metaColumns(c *motif.Candidate) string {
	switch {
	case c.Quad != nil:
		return fmt.Sprintf("%d\t%.3f\t%.3f", c.Quad.GRunLength, c.Quad.GContent, c.Quad.GCContent)
	case c.Alt != nil:
		cols := make([]string, len(c.Alt.AuxScores))
		for i, s := range c.Alt.AuxScores {
			cols[i] = formatScore(s)
		}
		return strings.Join(cols, "\t")
	default:
		return ""
	}
}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', 2, 64)
}

// WriteBED writes candidates as a 6-column BED file:
// chrom, start, end, name, score, strand.
func WriteBED(w io.Writer, candidates []motif.Candidate) error {
	for i := range candidates {
		c := &candidates[i]
		name := fmt.Sprintf("%s_%d", c.Class, i)
		_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t.\n", c.SeqID, c.Start, c.End, name, formatScore(c.Score))
		if err != nil {
			return err
		}
	}
	return nil
}

// WritePairs writes colocalization pairs: sequenceId, positionA,
// positionB, distance, the two sequence texts, and the B-side score.
func WritePairs(w io.Writer, pairs []coloc.Pair) error {
	if _, err := fmt.Fprintln(w, "chromosome\tg4_position\tzdna_position\tdistance\tg4_sequence\tzdna_sequence\tzdna_score"); err != nil {
		return err
	}

	for _, p := range pairs {
		_, err := fmt.Fprintf(
			w,
			"%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			p.SeqID, p.PosA, p.PosB, p.Distance, p.A.Seq, p.B.Seq, formatScore(p.B.Score),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteOverlaps writes promoter overlaps: the feature span, its class
// and score, and the gene whose promoter it fell into.
func WriteOverlaps(w io.Writer, overlaps []coloc.Overlap) error {
	if _, err := fmt.Fprintln(w, "chromosome\tstart\tend\tclass\tscore\tgene_id\tgene_name"); err != nil {
		return err
	}

	for _, o := range overlaps {
		_, err := fmt.Fprintf(
			w,
			"%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
			o.Feature.SeqID, o.Feature.Start, o.Feature.End, o.Feature.Class,
			formatScore(o.Feature.Score), o.Region.Gene.GeneID, o.Region.Gene.Name,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteGeneList writes the unique gene names from promoter overlaps,
// one per line sorted, for upload to functional-enrichment services.
func WriteGeneList(w io.Writer, overlaps []coloc.Overlap) error {
	seen := make(map[string]bool)
	for _, o := range overlaps {
		seen[o.Region.Gene.Name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}

	return nil
}

// Summary is the machine-readable record of one predictor run.
type Summary struct {
	Timestamp           string               `json:"timestamp"`
	TotalTimeSeconds    float64              `json:"total_time_seconds"`
	PartitionsSucceeded int                  `json:"partitions_succeeded"`
	PartitionsTotal     int                  `json:"partitions_total"`
	Status              string               `json:"status"`
	StructuresFound     int                  `json:"structures_found"`
	Failures            []Failure            `json:"failures,omitempty"`
	Results             []zhunt.WorkerResult `json:"results"`
}

// NewSummary assembles a run summary from worker results.
func NewSummary(results []zhunt.WorkerResult, structures int, elapsed time.Duration) *Summary {
	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}

	return &Summary{
		Timestamp:           time.Now().Format(time.RFC3339),
		TotalTimeSeconds:    elapsed.Seconds(),
		PartitionsSucceeded: succeeded,
		PartitionsTotal:     len(results),
		Status:              StatusOf(results).String(),
		StructuresFound:     structures,
		Failures:            Failures(results),
		Results:             results,
	}
}

// WriteFile writes the summary as indented JSON.
func (s *Summary) WriteFile(path string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

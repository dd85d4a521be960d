package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
)

// ReadCandidates reads a candidate table previously written by
// WriteCandidates, restoring spans, scores and sequence text. The
// class-specific trailing columns are restored for quadruplex tables;
// for predictor tables the aux columns come back as AuxScores.
func ReadCandidates(path string, class motif.Class) ([]motif.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open candidate table %s: %v", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var candidates []motif.Candidate
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if lineNum == 1 && strings.HasPrefix(line, "chromosome\t") {
			continue // header
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 5 {
			return nil, fmt.Errorf("%s:%d: expected at least 5 columns, found %d", path, lineNum, len(cols))
		}

		start, err := strconv.Atoi(cols[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad start %q", path, lineNum, cols[1])
		}
		end, err := strconv.Atoi(cols[2])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad end %q", path, lineNum, cols[2])
		}
		score, err := strconv.ParseFloat(cols[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad score %q", path, lineNum, cols[4])
		}

		c := motif.Candidate{
			SeqID: cols[0],
			Start: start,
			End:   end,
			Class: class,
			Score: score,
		}
		if len(cols) > 5 {
			c.Seq = cols[5]
		}

		if err := restoreMeta(&c, cols); err != nil {
			return nil, fmt.Errorf("%s:%d: %v", path, lineNum, err)
		}

		candidates = append(candidates, c)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}

// restoreMeta rebuilds class metadata from the trailing columns.
func restoreMeta(c *motif.Candidate, cols []string) error {
	switch c.Class {
	case motif.QuadruplexRepeat:
		if len(cols) < 9 {
			return nil // older tables without metadata columns
		}
		gRun, err := strconv.Atoi(cols[6])
		if err != nil {
			return fmt.Errorf("bad g-run length %q", cols[6])
		}
		gContent, err := strconv.ParseFloat(cols[7], 64)
		if err != nil {
			return fmt.Errorf("bad g-content %q", cols[7])
		}
		gcContent, err := strconv.ParseFloat(cols[8], 64)
		if err != nil {
			return fmt.Errorf("bad gc-content %q", cols[8])
		}
		c.Quad = &motif.QuadMeta{GRunLength: gRun, GContent: gContent, GCContent: gcContent}

	case motif.AlternativeStructure:
		// predictor candidates always carry metadata, possibly with no
		// aux scores when the artifact had no columns beyond position
		// and the quality metric
		var aux []float64
		if len(cols) > 6 {
			for _, col := range cols[6:] {
				if col == "" {
					continue
				}
				v, err := strconv.ParseFloat(col, 64)
				if err != nil {
					return fmt.Errorf("bad aux score %q", col)
				}
				aux = append(aux, v)
			}
		}
		c.Alt = &motif.AltMeta{AuxScores: aux}
	}

	return nil
}

package zhunt

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
)

// maxParseWarnings caps how many skipped-line diagnostics surface;
// parsing always continues to end of file.
const maxParseWarnings = 10

// Schema declares where the probability file's fields live. Observed
// Z-Hunt artifacts vary between 4 and 5 leading numeric columns, so the
// layout is configuration rather than hard-coded.
type Schema struct {
	// PositionColumn holds the window start position
	PositionColumn int

	// QualityColumn holds the quality metric (Z-score)
	QualityColumn int

	// SequenceColumn holds the window's sequence text, -1 if the
	// artifact carries none
	SequenceColumn int

	// WindowLength sizes candidates when no sequence column exists
	WindowLength int
}

// DefaultSchema matches the probability layout the original pipeline
// consumed: position, two aux scores, Z-score, then the sequence.
func DefaultSchema() Schema {
	return Schema{
		PositionColumn: 0,
		QualityColumn:  3,
		SequenceColumn: 4,
		WindowLength:   12,
	}
}

// ParseResult is the parsed content of one probability file.
type ParseResult struct {
	// Candidates within the quality band
	Candidates []motif.Candidate

	// Warnings for the first skipped malformed lines
	Warnings []string

	// Skipped counts every malformed line, surfaced or not
	Skipped int
}

// Parse reads one probability file into AlternativeStructure candidates
// whose quality metric falls within [minScore, maxScore] inclusive.
//
// Malformed lines (too few columns, non-numeric fields) are skipped,
// with only the first few reasons surfaced as warnings. A missing file
// yields an empty result: fatal precondition checking happens before
// orchestration, not here.
func Parse(path string, schema Schema, minScore, maxScore float64) (*ParseResult, error) {
	res := &ParseResult{}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return res, nil
		}
		return nil, err
	}
	defer f.Close()

	seqID := seqIDFromPath(path)

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		c, reason := parseLine(line, seqID, schema)
		if reason != "" {
			res.Skipped++
			if len(res.Warnings) < maxParseWarnings {
				res.Warnings = append(res.Warnings, fmt.Sprintf("%s:%d: %s", filepath.Base(path), lineNum, reason))
			}
			continue
		}

		if c.Score < minScore || c.Score > maxScore {
			continue // out of the quality band, not malformed
		}
		res.Candidates = append(res.Candidates, c)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

// parseLine converts one whitespace-separated line into a candidate,
// or returns the reason it was skipped.
func parseLine(line, seqID string, schema Schema) (motif.Candidate, string) {
	cols := strings.Fields(line)

	need := schema.QualityColumn
	if schema.PositionColumn > need {
		need = schema.PositionColumn
	}
	if len(cols) <= need {
		return motif.Candidate{}, fmt.Sprintf("expected at least %d columns, found %d", need+1, len(cols))
	}

	pos, err := strconv.Atoi(cols[schema.PositionColumn])
	if err != nil {
		return motif.Candidate{}, fmt.Sprintf("bad position %q", cols[schema.PositionColumn])
	}
	if pos < 0 {
		return motif.Candidate{}, fmt.Sprintf("negative position %d", pos)
	}

	quality, err := strconv.ParseFloat(cols[schema.QualityColumn], 64)
	if err != nil {
		return motif.Candidate{}, fmt.Sprintf("bad quality metric %q", cols[schema.QualityColumn])
	}

	var aux []float64
	for i := 0; i < len(cols) && i <= schema.QualityColumn; i++ {
		if i == schema.PositionColumn || i == schema.QualityColumn {
			continue
		}
		v, err := strconv.ParseFloat(cols[i], 64)
		if err != nil {
			return motif.Candidate{}, fmt.Sprintf("bad score column %d: %q", i, cols[i])
		}
		aux = append(aux, v)
	}

	c := motif.Candidate{
		SeqID: seqID,
		Start: pos,
		Class: motif.AlternativeStructure,
		Score: quality,
		Alt:   &motif.AltMeta{AuxScores: aux},
	}

	if schema.SequenceColumn >= 0 && schema.SequenceColumn < len(cols) {
		c.Seq = strings.ToUpper(cols[schema.SequenceColumn])
		c.End = c.Start + len(c.Seq)
	} else {
		c.End = c.Start + schema.WindowLength
	}

	return c, ""
}

// seqIDFromPath recovers the partition's sequence ID from an artifact
// path like z_hunt_results/chr2L.fa.probability.
func seqIDFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, probExt)
	base = strings.TrimSuffix(base, scoreExt)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base
}

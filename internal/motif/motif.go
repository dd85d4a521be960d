// Package motif finds and models non-canonical DNA structure candidates:
// G-quadruplex tandem repeats found by scanning raw sequence, and Z-DNA
// predictions parsed from Z-Hunt output.
package motif

import "sort"

// Class labels the structural pattern a candidate belongs to.
type Class string

const (
	// QuadruplexRepeat is a four G-run tandem repeat found by Scan.
	QuadruplexRepeat Class = "G4"

	// AlternativeStructure is a Z-DNA-like prediction from the external predictor.
	AlternativeStructure Class = "Z-DNA"
)

// Candidate is a scored, positioned match of a structural pattern.
// Identity is (SeqID, Start, End, Class). Candidates from different
// G-run classes may overlap and are kept as independent records.
type Candidate struct {
	// SeqID is the chromosome/contig name the candidate was found on
	SeqID string

	// Start of the match, 0-indexed
	Start int

	// End of the match, half-open (Start < End)
	End int

	// Seq is the matched sequence text. Empty for predictor output
	// files that carry no sequence column
	Seq string

	// Class of the structural pattern
	Class Class

	// Score is the quadruplex score or the predictor's quality metric
	Score float64

	// Quad holds quadruplex-only metadata
	Quad *QuadMeta

	// Alt holds predictor-only metadata
	Alt *AltMeta
}

// QuadMeta is per-candidate metadata for QuadruplexRepeat candidates.
type QuadMeta struct {
	// GRunLength is the G-run class (k) whose pattern matched
	GRunLength int

	// GContent is the G fraction of the matched text
	GContent float64

	// GCContent is the G+C fraction of the matched text
	GCContent float64
}

// AltMeta is per-candidate metadata for AlternativeStructure candidates.
type AltMeta struct {
	// AuxScores are the predictor's leading numeric columns
	// other than position and the quality metric
	AuxScores []float64
}

// Length of the candidate's span.
func (c *Candidate) Length() int {
	return c.End - c.Start
}

// SortCandidates orders candidates by (SeqID, Start, End, Class) for
// deterministic downstream consumption.
func SortCandidates(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].SeqID != candidates[j].SeqID {
			return candidates[i].SeqID < candidates[j].SeqID
		}
		if candidates[i].Start != candidates[j].Start {
			return candidates[i].Start < candidates[j].Start
		}
		if candidates[i].End != candidates[j].End {
			return candidates[i].End < candidates[j].End
		}
		return candidates[i].Class < candidates[j].Class
	})
}

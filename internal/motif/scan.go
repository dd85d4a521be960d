package motif

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexsuw/drosophila-dna-analysis/internal/genome"
)

// ScanParams bound the quadruplex patterns built by Scan.
type ScanParams struct {
	// MinRunLength is the smallest G-run class to scan for (inclusive)
	MinRunLength int

	// MaxRunLength is the largest G-run class (exclusive)
	MaxRunLength int

	// MaxLoopLength caps the variable loops between G-runs
	MaxLoopLength int

	// MinScore discards candidates scoring below it
	MinScore float64
}

// patterns returns one compiled pattern per G-run class:
// G{k,}N{1,loop}G{k,}N{1,loop}G{k,}N{1,loop}G{k,} where N is any
// nucleotide including the ambiguity code.
func (p ScanParams) patterns() []classPattern {
	var ps []classPattern
	for k := p.MinRunLength; k < p.MaxRunLength; k++ {
		run := fmt.Sprintf("G{%d,}", k)
		loop := fmt.Sprintf("[ATCGUN]{1,%d}", p.MaxLoopLength)
		re := regexp.MustCompile(run + loop + run + loop + run + loop + run)
		ps = append(ps, classPattern{gRun: k, re: re})
	}
	return ps
}

type classPattern struct {
	gRun int
	re   *regexp.Regexp
}

// Scan finds all quadruplex-forming candidates in one sequence.
//
// Each G-run class scans the full sequence independently, leftmost-first
// and non-overlapping within the class, so candidates from different
// classes may cover overlapping spans. Scanning is case-insensitive and
// never fails on well-formed input; characters outside the alphabet are
// treated as non-G.
func Scan(seq *genome.Sequence, params ScanParams) []Candidate {
	text := strings.ToUpper(seq.Seq)

	var candidates []Candidate
	for _, cp := range params.patterns() {
		for _, loc := range cp.re.FindAllStringIndex(text, -1) {
			matched := text[loc[0]:loc[1]]
			score := ScoreQuadruplex(matched)
			if score < params.MinScore {
				continue
			}

			candidates = append(candidates, Candidate{
				SeqID: seq.ID,
				Start: loc[0],
				End:   loc[1],
				Seq:   matched,
				Class: QuadruplexRepeat,
				Score: score,
				Quad: &QuadMeta{
					GRunLength: cp.gRun,
					GContent:   baseFraction(matched, 'G'),
					GCContent:  baseFraction(matched, 'G') + baseFraction(matched, 'C'),
				},
			})
		}
	}

	return candidates
}

// baseFraction returns the fraction of text made up of base.
func baseFraction(text string, base byte) float64 {
	if len(text) == 0 {
		return 0
	}

	count := 0
	for i := 0; i < len(text); i++ {
		if text[i] == base {
			count++
		}
	}

	return float64(count) / float64(len(text))
}

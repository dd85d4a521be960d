package coloc

import (
	"github.com/alexsuw/drosophila-dna-analysis/internal/annotation"
	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
)

// Pair is two features from different classes found within a bounded
// distance of each other. Produced only by FindProximal.
type Pair struct {
	// SeqID both features lie on
	SeqID string

	// PosA and PosB are the two features' start positions
	PosA int
	PosB int

	// Distance is |PosB - PosA|, never above the query window
	Distance int

	// A and B are the paired candidates
	A motif.Candidate
	B motif.Candidate
}

// Overlap is one feature found inside one promoter region.
type Overlap struct {
	Feature motif.Candidate
	Region  annotation.Promoter
}

// Stats summarize a pair list.
type Stats struct {
	// Total number of pairs
	Total int

	// AWithPartner counts distinct A-side features with >= 1 partner
	AWithPartner int

	// BWithPartner counts distinct B-side features with >= 1 partner
	BWithPartner int

	// MeanDistance across all pairs, 0 when empty
	MeanDistance float64
}

// FindProximal emits one pair per (a, b) where b's start lies within
// window of a's start, boundary inclusive. Swapping the argument order
// yields the same unordered pair set with PosA/PosB exchanged.
func FindProximal(setA, setB []motif.Candidate, window int) []Pair {
	ixB := NewIndex(setB)

	var pairs []Pair
	for _, a := range setA {
		for _, b := range ixB.Window(a.SeqID, a.Start, window) {
			d := b.Start - a.Start
			if d < 0 {
				d = -d
			}
			pairs = append(pairs, Pair{
				SeqID:    a.SeqID,
				PosA:     a.Start,
				PosB:     b.Start,
				Distance: d,
				A:        a,
				B:        b,
			})
		}
	}

	return pairs
}

// FindOverlapping returns every (feature, promoter) intersection, using
// half-open interval semantics on both sides.
func FindOverlapping(features []motif.Candidate, regions []annotation.Promoter) []Overlap {
	ix := NewIndex(features)

	var found []Overlap
	for _, r := range regions {
		for _, f := range ix.Overlapping(r.SeqID, r.Start, r.End) {
			found = append(found, Overlap{Feature: f, Region: r})
		}
	}

	return found
}

// PairStats derives aggregate statistics from a pair list.
func PairStats(pairs []Pair) Stats {
	s := Stats{Total: len(pairs)}
	if len(pairs) == 0 {
		return s
	}

	type pos struct {
		seqID string
		p     int
	}
	aSeen := make(map[pos]bool)
	bSeen := make(map[pos]bool)

	sum := 0
	for _, p := range pairs {
		aSeen[pos{p.SeqID, p.PosA}] = true
		bSeen[pos{p.SeqID, p.PosB}] = true
		sum += p.Distance
	}

	s.AWithPartner = len(aSeen)
	s.BWithPartner = len(bSeen)
	s.MeanDistance = float64(sum) / float64(len(pairs))

	return s
}

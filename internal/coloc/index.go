// Package coloc relates two motif collections in genomic space:
// proximity within a distance window and interval overlap.
package coloc

import (
	"sort"

	"github.com/alexsuw/drosophila-dna-analysis/internal/motif"
)

// Index holds candidates per sequence, sorted ascending by start, for
// window and overlap queries in O(log n + k).
type Index struct {
	bySeq map[string][]motif.Candidate

	// maxLen per sequence bounds how far left an overlapping
	// candidate's start can be from a query interval
	maxLen map[string]int
}

// NewIndex builds an index over features, grouping by sequence and
// sorting each group by start.
func NewIndex(features []motif.Candidate) *Index {
	ix := &Index{
		bySeq:  make(map[string][]motif.Candidate),
		maxLen: make(map[string]int),
	}

	for _, f := range features {
		ix.bySeq[f.SeqID] = append(ix.bySeq[f.SeqID], f)
		if l := f.Length(); l > ix.maxLen[f.SeqID] {
			ix.maxLen[f.SeqID] = l
		}
	}

	for id := range ix.bySeq {
		fs := ix.bySeq[id]
		sort.Slice(fs, func(i, j int) bool {
			if fs[i].Start != fs[j].Start {
				return fs[i].Start < fs[j].Start
			}
			return fs[i].End < fs[j].End
		})
	}

	return ix
}

// Window returns all candidates on seqID whose start position is within
// window of pos, inclusive on both bounds.
func (ix *Index) Window(seqID string, pos, window int) []motif.Candidate {
	fs := ix.bySeq[seqID]
	if len(fs) == 0 {
		return nil
	}

	lo := pos - window
	hi := pos + window

	first := sort.Search(len(fs), func(i int) bool { return fs[i].Start >= lo })

	var hits []motif.Candidate
	for i := first; i < len(fs) && fs[i].Start <= hi; i++ {
		hits = append(hits, fs[i])
	}

	return hits
}

// Overlapping returns all candidates on seqID whose half-open span
// intersects [start, end).
func (ix *Index) Overlapping(seqID string, start, end int) []motif.Candidate {
	fs := ix.bySeq[seqID]
	if len(fs) == 0 {
		return nil
	}

	// an overlapping candidate starts no earlier than start-maxLen
	lo := start - ix.maxLen[seqID]
	first := sort.Search(len(fs), func(i int) bool { return fs[i].Start >= lo })

	var hits []motif.Candidate
	for i := first; i < len(fs) && fs[i].Start < end; i++ {
		if overlaps(fs[i].Start, fs[i].End, start, end) {
			hits = append(hits, fs[i])
		}
	}

	return hits
}

// overlaps is the half-open intersection test: [100,200) and [200,300)
// do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

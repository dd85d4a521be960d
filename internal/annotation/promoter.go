package annotation

// Promoter is the interval flanking a gene's TSS, expressed in
// increasing genomic coordinates regardless of strand and clamped so
// Start >= 1.
type Promoter struct {
	// SeqID is the chromosome
	SeqID string

	// Start and End of the promoter interval
	Start int
	End   int

	// Gene the promoter belongs to
	Gene *Gene
}

// Promoters derives one promoter per gene: upstream bases before the
// TSS and downstream bases after it, flipped for minus-strand genes so
// the coordinates still increase.
func Promoters(genes []*Gene, upstream, downstream int) []Promoter {
	promoters := make([]Promoter, 0, len(genes))

	for _, g := range genes {
		tss := g.TSS()

		var start, end int
		if g.Strand == '+' {
			start = tss - upstream
			end = tss + downstream
		} else {
			start = tss - downstream
			end = tss + upstream
		}
		if start < 1 {
			start = 1
		}

		promoters = append(promoters, Promoter{
			SeqID: g.SeqID,
			Start: start,
			End:   end,
			Gene:  g,
		})
	}

	return promoters
}

// Package annotation reads gene annotations from GTF and derives the
// strand-oriented promoter regions around transcription start sites.
package annotation

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
)

// maxParseWarnings caps how many skipped-record diagnostics surface.
const maxParseWarnings = 10

// Gene is one transcript record from the annotation input, read-only.
type Gene struct {
	// SeqID is the chromosome the gene lies on
	SeqID string

	// Start and End of the transcript, 0-based half-open: the gff
	// reader converts from the annotation's 1-based coordinates,
	// matching the motif candidates' convention
	Start int
	End   int

	// Strand is '+' or '-'
	Strand byte

	// GeneID from the gene_id attribute
	GeneID string

	// Name from gene_name, falling back to GeneID
	Name string
}

// TSS is the transcription start site: Start on the plus strand,
// End on the minus strand, in the same 0-based coordinates as the
// gene itself.
func (g *Gene) TSS() int {
	if g.Strand == '+' {
		return g.Start
	}
	return g.End
}

// ReadResult is the parsed annotation input.
type ReadResult struct {
	// Genes in file order
	Genes []*Gene

	// Warnings for the first skipped malformed records
	Warnings []string

	// Skipped counts every skipped record
	Skipped int
}

// Read parses transcript records out of a GTF stream. Records that are
// not transcripts are ignored; malformed transcript records are skipped
// with a bounded number of surfaced warnings.
func Read(r io.Reader) (*ReadResult, error) {
	res := &ReadResult{}

	in := gff.NewReader(r)
	for {
		f, err := in.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			// a malformed line; keep reading the rest
			res.Skipped++
			if len(res.Warnings) < maxParseWarnings {
				res.Warnings = append(res.Warnings, err.Error())
			}
			continue
		}

		gf, ok := f.(*gff.Feature)
		if !ok || gf.Feature != "transcript" {
			continue
		}

		gene, reason := geneFrom(gf)
		if reason != "" {
			res.Skipped++
			if len(res.Warnings) < maxParseWarnings {
				res.Warnings = append(res.Warnings, reason)
			}
			continue
		}
		res.Genes = append(res.Genes, gene)
	}

	return res, nil
}

// ReadFile reads the GTF annotation at path.
func ReadFile(path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation file %s: %v", path, err)
	}
	defer f.Close()

	return Read(f)
}

// geneFrom converts one GFF transcript feature, or explains the skip.
func geneFrom(gf *gff.Feature) (*Gene, string) {
	var strand byte
	switch gf.FeatStrand {
	case seq.Plus:
		strand = '+'
	case seq.Minus:
		strand = '-'
	default:
		return nil, fmt.Sprintf("transcript on %s:%d has no strand", gf.SeqName, gf.FeatStart)
	}

	geneID := attribute(gf, "gene_id")
	if geneID == "" {
		return nil, fmt.Sprintf("transcript on %s:%d has no gene_id", gf.SeqName, gf.FeatStart)
	}

	name := attribute(gf, "gene_name")
	if name == "" {
		name = geneID
	}

	return &Gene{
		SeqID:  gf.SeqName,
		Start:  gf.FeatStart,
		End:    gf.FeatEnd,
		Strand: strand,
		GeneID: geneID,
		Name:   name,
	}, ""
}

// attribute returns a GTF attribute value with its quotes stripped.
func attribute(gf *gff.Feature, tag string) string {
	return strings.Trim(gf.FeatAttributes.Get(tag), `"; `)
}

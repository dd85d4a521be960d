// Package genome models input sequences and splits a multi-FASTA
// genome into per-chromosome partitions for independent processing.
package genome

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sequence is one chromosome/contig: an identifier plus its nucleotide
// string with line wrapping removed. Immutable once loaded.
type Sequence struct {
	// ID is the chromosome/contig name (first word of the FASTA header)
	ID string

	// Seq is the full nucleotide string
	Seq string
}

// Partition is a Sequence written out as its own single-record FASTA
// file, the unit the external predictor runs against.
type Partition struct {
	// ID of the partitioned sequence
	ID string

	// Path to the single-sequence FASTA file
	Path string

	// Size of the sequence in bytes
	Size int
}

// InputError reports missing, empty or malformed sequence input. It is
// fatal and raised before any orchestration starts.
type InputError struct {
	// Path of the offending input, if known
	Path string

	// Reason the input was rejected
	Reason string
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid sequence input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid sequence input %s: %s", e.Path, e.Reason)
}

// Split parses a multi-record FASTA stream into one Sequence per
// header, preserving per-sequence content byte-for-byte aside from
// line-wrap removal, in order of first appearance.
func Split(r io.Reader) ([]*Sequence, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)

	var seqs []*Sequence
	var id string
	var chunks []string

	flush := func() {
		if id == "" {
			return
		}
		seqs = append(seqs, &Sequence{ID: id, Seq: strings.Join(chunks, "")})
	}

	sawContent := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		sawContent = true

		if strings.HasPrefix(line, ">") {
			flush()
			id = strings.Fields(line[1:])[0]
			chunks = chunks[:0]
			continue
		}

		if id == "" {
			return nil, &InputError{Reason: "sequence data before the first FASTA header"}
		}
		chunks = append(chunks, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()

	if !sawContent {
		return nil, &InputError{Reason: "empty input"}
	}
	if len(seqs) == 0 {
		return nil, &InputError{Reason: "no FASTA headers found"}
	}

	return seqs, nil
}

// SplitFile reads and splits the multi-FASTA file at path.
func SplitFile(path string) ([]*Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Reason: err.Error()}
	}
	defer f.Close()

	seqs, err := Split(f)
	if ie, ok := err.(*InputError); ok {
		ie.Path = path
	}
	return seqs, err
}

// WriteAll writes each sequence to <dir>/<id>.fa as a single-record
// FASTA file and returns the resulting partitions in input order.
// Write sets are disjoint by sequence ID, so concurrent consumers of
// the directory never contend.
func WriteAll(seqs []*Sequence, dir string) ([]Partition, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var parts []Partition
	for _, s := range seqs {
		path := filepath.Join(dir, s.ID+".fa")
		content := fmt.Sprintf(">%s\n%s\n", s.ID, s.Seq)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write partition file at %s: %v", path, err)
		}

		parts = append(parts, Partition{ID: s.ID, Path: path, Size: len(s.Seq)})
	}

	return parts, nil
}

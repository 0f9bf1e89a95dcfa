// Package bed provides BED12 file parsing functionality.
package bed

import (
	"fmt"
	"strconv"
	"strings"
)

// Strand is the transcription direction of a record.
type Strand int8

const (
	// Forward is the "+" strand: transcription runs in ascending genomic order.
	Forward Strand = 1
	// Reverse is the "-" strand: transcription runs against genomic order.
	Reverse Strand = -1
)

// ParseStrand parses a BED strand field.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return Forward, nil
	case "-":
		return Reverse, nil
	}
	return 0, fmt.Errorf("invalid strand %q", s)
}

// String returns the GTF/BED representation of the strand.
func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// Record represents a single BED12 gene-model line.
//
// All coordinates are 0-based half-open. Exon bounds are absolute genomic
// positions in ascending order, derived from the relative block lists at
// parse time.
type Record struct {
	Chrom      string  // Chromosome name (e.g., "chr12")
	TxStart    int64   // Transcript start
	TxEnd      int64   // Transcript end
	Name       string  // Transcript name (unique key)
	Strand     Strand  // Transcription direction
	CDSStart   int64   // Coding region start; equal to CDSEnd if non-coding
	CDSEnd     int64   // Coding region end
	ExonStarts []int64 // Absolute exon starts, ascending
	ExonEnds   []int64 // Absolute exon ends, ascending
}

// ExonCount returns the number of exons.
func (r *Record) ExonCount() int {
	return len(r.ExonStarts)
}

// IsCoding returns true if the record has a non-empty coding region.
func (r *Record) IsCoding() bool {
	return r.CDSStart < r.CDSEnd
}

// BlockSizes re-encodes the exon lengths as the BED blockSizes field,
// comma-separated with a trailing comma.
func (r *Record) BlockSizes() string {
	var sb strings.Builder
	for i := range r.ExonStarts {
		sb.WriteString(strconv.FormatInt(r.ExonEnds[i]-r.ExonStarts[i], 10))
		sb.WriteByte(',')
	}
	return sb.String()
}

// BlockStarts re-encodes the exon offsets relative to TxStart as the BED
// blockStarts field, comma-separated with a trailing comma.
func (r *Record) BlockStarts() string {
	var sb strings.Builder
	for i := range r.ExonStarts {
		sb.WriteString(strconv.FormatInt(r.ExonStarts[i]-r.TxStart, 10))
		sb.WriteByte(',')
	}
	return sb.String()
}

// ParseRecord parses a single BED12 line.
func ParseRecord(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 12 {
		return nil, fmt.Errorf("expected 12 fields, got %d", len(fields))
	}

	txStart, err := parseCoord(fields[1], "txStart")
	if err != nil {
		return nil, err
	}
	txEnd, err := parseCoord(fields[2], "txEnd")
	if err != nil {
		return nil, err
	}
	strand, err := ParseStrand(fields[5])
	if err != nil {
		return nil, err
	}
	cdsStart, err := parseCoord(fields[6], "cdsStart")
	if err != nil {
		return nil, err
	}
	cdsEnd, err := parseCoord(fields[7], "cdsEnd")
	if err != nil {
		return nil, err
	}
	exonCount, err := parseCoord(fields[9], "exonCount")
	if err != nil {
		return nil, err
	}

	sizes, err := parseCommaList(fields[10], "blockSizes")
	if err != nil {
		return nil, err
	}
	offsets, err := parseCommaList(fields[11], "blockStarts")
	if err != nil {
		return nil, err
	}
	if int64(len(sizes)) != exonCount || int64(len(offsets)) != exonCount {
		return nil, fmt.Errorf("exonCount %d does not match block lists (%d sizes, %d starts)",
			exonCount, len(sizes), len(offsets))
	}

	starts := make([]int64, len(offsets))
	ends := make([]int64, len(offsets))
	for i := range offsets {
		starts[i] = txStart + offsets[i]
		ends[i] = starts[i] + sizes[i]
	}

	return &Record{
		Chrom:      fields[0],
		TxStart:    txStart,
		TxEnd:      txEnd,
		Name:       fields[3],
		Strand:     strand,
		CDSStart:   cdsStart,
		CDSEnd:     cdsEnd,
		ExonStarts: starts,
		ExonEnds:   ends,
	}, nil
}

func parseCoord(s, field string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", field, s)
	}
	return v, nil
}

// parseCommaList parses a comma-separated integer list with a trailing comma,
// as used by the BED blockSizes and blockStarts fields.
func parseCommaList(s, field string) ([]int64, error) {
	var values []int64
	for _, part := range strings.Split(s, ",") {
		if part == "" {
			continue
		}
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry %q", field, part)
		}
		values = append(values, v)
	}
	return values, nil
}

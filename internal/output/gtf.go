// Package output provides the GTF record writer.
package output

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/genomekit/bed2gtf/internal/bed"
)

// Source is the fixed GTF source column token.
const Source = "bed2gtf"

// phases maps an exon reading frame to the GTF phase column. The 1/2
// inversion is the GTF convention: phase counts bases to the next codon
// boundary, frame counts bases past the previous one.
var phases = map[int]string{
	-1: ".",
	0:  "0",
	1:  "2",
	2:  "1",
}

// Feature is a single non-gene GTF record. Coordinates are 0-based half-open
// and converted to 1-based inclusive on write.
type Feature struct {
	Chrom      string
	Type       string // transcript, exon, CDS, 5UTR, 3UTR, start_codon, stop_codon
	Start      int64
	End        int64
	Strand     bed.Strand
	Gene       string
	Transcript string
	Frame      int // -1 for features without phase
	ExonIndex  int // genomic exon index; -1 omits the exon attributes
	ExonCount  int
}

// Writer writes GTF records to an output stream.
type Writer struct {
	w      *bufio.Writer
	source string
}

// NewWriter creates a GTF writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:      bufio.NewWriter(w),
		source: Source,
	}
}

// WriteComments writes the provenance comment header.
func (gw *Writer) WriteComments(version string) error {
	_, err := fmt.Fprintf(gw.w, "#provider: %s\n#version: %s\n#date: %s\n",
		gw.source, version, time.Now().UTC().Format("2006-01-02"))
	return err
}

// WriteGene writes a gene record. Gene records carry only a gene_id
// attribute and no phase.
func (gw *Writer) WriteGene(chrom string, strand bed.Strand, gene string, start, end int64) error {
	_, err := fmt.Fprintf(gw.w, "%s\t%s\tgene\t%d\t%d\t.\t%s\t.\tgene_id \"%s\";\n",
		chrom, gw.source, start+1, end, strand, gene)
	return err
}

// WriteFeature writes a transcript-level record.
func (gw *Writer) WriteFeature(f Feature) error {
	attrs := fmt.Sprintf("gene_id \"%s\"; transcript_id \"%s\";", f.Gene, f.Transcript)
	if f.ExonIndex >= 0 {
		n := exonNumber(f.Strand, f.ExonIndex, f.ExonCount)
		attrs += fmt.Sprintf(" exon_number \"%d\"; exon_id \"%s.%d\";", n, f.Transcript, n)
	}

	_, err := fmt.Fprintf(gw.w, "%s\t%s\t%s\t%d\t%d\t.\t%s\t%s\t%s\n",
		f.Chrom, gw.source, f.Type, f.Start+1, f.End, f.Strand, phases[f.Frame], attrs)
	return err
}

// Flush flushes buffered records to the underlying writer.
func (gw *Writer) Flush() error {
	return gw.w.Flush()
}

// exonNumber converts a genomic exon index to the transcription-order exon
// number: 1..count from the left on the forward strand, from the right on
// the reverse.
func exonNumber(strand bed.Strand, index, count int) int {
	if strand == bed.Reverse {
		return count - index
	}
	return index + 1
}

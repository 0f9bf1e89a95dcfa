// Package convert implements the BED-to-GTF conversion engine: reading-frame
// propagation across exons, terminal codon localization, coordinate walking
// over the exon chain, and per-record feature emission.
package convert

import "github.com/genomekit/bed2gtf/internal/bed"

// cdsOverlap intersects an exon with the coding region [cdsStart, cdsEnd).
// The intersection is empty when start >= end.
func cdsOverlap(exonStart, exonEnd, cdsStart, cdsEnd int64) (int64, int64) {
	start := max(exonStart, cdsStart)
	end := min(exonEnd, cdsEnd)
	return start, end
}

// ExonFrames computes the reading frame of every exon: 0, 1 or 2 for the
// phase at which the exon's coding region begins, -1 for exons with no CDS
// overlap. Exons are walked in transcription order, so the running CDS base
// count starts at the translation start on either strand.
func ExonFrames(rec *bed.Record) []int {
	n := rec.ExonCount()
	frames := make([]int, n)
	var cds int64

	first, stop, step := 0, n, 1
	if rec.Strand == bed.Reverse {
		first, stop, step = n-1, -1, -1
	}

	for i := first; i != stop; i += step {
		start, end := cdsOverlap(rec.ExonStarts[i], rec.ExonEnds[i], rec.CDSStart, rec.CDSEnd)
		if start < end {
			frames[i] = int(cds % 3)
			cds += end - start
		} else {
			frames[i] = -1
		}
	}

	return frames
}

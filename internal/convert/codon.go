package convert

import "github.com/genomekit/bed2gtf/internal/bed"

// Interval is a 0-based half-open genomic interval.
type Interval struct {
	Start int64
	End   int64
}

// Len returns the interval length in bases.
func (iv Interval) Len() int64 {
	return iv.End - iv.Start
}

// Codon describes a terminal codon of the coding region. A codon straddling
// an intron carries a non-empty Second interval in the adjacent coding exon.
// Found distinguishes "no codon located" from a codon at coordinate zero.
type Codon struct {
	Found      bool
	First      Interval // boundary-side interval
	FirstExon  int
	Second     Interval // remainder in the adjacent exon; empty if unsplit
	SecondExon int
}

// IsSplit returns true if the codon spans two exons.
func (c Codon) IsSplit() bool {
	return c.Second.Len() > 0
}

// Complete returns true if the located codon covers exactly 3 bases.
func (c Codon) Complete() bool {
	return c.Found && c.First.Len()+c.Second.Len() == 3
}

// LeftCodon locates the codon anchored at the genomic-left CDS boundary
// (the start codon on the forward strand, the stop codon on the reverse).
// The codon is absent when no exon is coding, when the boundary is not
// frame-aligned, or when fewer than 3 coding bases are reachable.
func LeftCodon(rec *bed.Record, frames []int) Codon {
	idx := -1
	for i := 0; i < len(frames); i++ {
		if frames[i] >= 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Codon{}
	}

	start, end := cdsOverlap(rec.ExonStarts[idx], rec.ExonEnds[idx], rec.CDSStart, rec.CDSEnd)

	// Local phase at the boundary: the exon frame is relative to the
	// translation start, so it reads directly on the forward strand and
	// through the overlap length on the reverse.
	phase := frames[idx]
	if rec.Strand == bed.Reverse {
		phase = (frames[idx] + int(end-start)) % 3
	}
	if phase != 0 {
		return Codon{}
	}

	available := min(int64(3), end-start)
	c := Codon{
		Found:     true,
		First:     Interval{Start: start, End: start + available},
		FirstExon: idx,
	}

	if available < 3 {
		needed := 3 - available
		next := idx + 1
		if next >= rec.ExonCount() {
			return Codon{}
		}
		start2, end2 := cdsOverlap(rec.ExonStarts[next], rec.ExonEnds[next], rec.CDSStart, rec.CDSEnd)
		if end2-start2 < needed {
			return Codon{}
		}
		c.Second = Interval{Start: start2, End: start2 + needed}
		c.SecondExon = next
	}

	return c
}

// RightCodon locates the codon anchored at the genomic-right CDS boundary
// (the stop codon on the forward strand, the start codon on the reverse).
func RightCodon(rec *bed.Record, frames []int) Codon {
	idx := -1
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i] >= 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Codon{}
	}

	start, end := cdsOverlap(rec.ExonStarts[idx], rec.ExonEnds[idx], rec.CDSStart, rec.CDSEnd)

	phase := frames[idx]
	if rec.Strand == bed.Forward {
		phase = (frames[idx] + int(end-start)) % 3
	}
	if phase != 0 {
		return Codon{}
	}

	available := min(int64(3), end-start)
	c := Codon{
		Found:     true,
		First:     Interval{Start: end - available, End: end},
		FirstExon: idx,
	}

	if available < 3 {
		needed := 3 - available
		prev := idx - 1
		if prev < 0 {
			return Codon{}
		}
		start2, end2 := cdsOverlap(rec.ExonStarts[prev], rec.ExonEnds[prev], rec.CDSStart, rec.CDSEnd)
		if end2-start2 < needed {
			return Codon{}
		}
		c.Second = Interval{Start: end2 - needed, End: end2}
		c.SecondExon = prev
	}

	return c
}

package convert

import (
	"fmt"

	"github.com/genomekit/bed2gtf/internal/bed"
)

// PositionError indicates that a coordinate walk could not be carried out:
// the start position lies in no exon, or the exon chain was exhausted before
// the requested distance was consumed.
type PositionError struct {
	Pos  int64
	Dist int64
}

func (e *PositionError) Error() string {
	if e.Dist == 0 {
		return fmt.Sprintf("position %d not in any exon", e.Pos)
	}
	return fmt.Sprintf("can't move position %d by %d", e.Pos, e.Dist)
}

// inExon reports whether pos is walkable within exon i. The check is closed
// on the exon end bound so the exclusive CDS end coordinate itself can be
// used as a walk origin.
func inExon(rec *bed.Record, i int, pos int64) bool {
	return rec.ExonStarts[i] <= pos && pos <= rec.ExonEnds[i]
}

// MovePos steps pos along the exon chain by dist bases, skipping introns at
// zero cost. A positive dist walks toward the transcript end, a negative one
// toward the transcript start.
func MovePos(rec *bed.Record, pos, dist int64) (int64, error) {
	orig := pos

	exon := -1
	for i := 0; i < rec.ExonCount(); i++ {
		if inExon(rec, i, pos) {
			exon = i
			break
		}
	}
	if exon < 0 {
		return 0, &PositionError{Pos: pos}
	}

	steps := dist
	direction := int64(1)
	if dist < 0 {
		steps = -dist
		direction = -1
	}

	for exon >= 0 && exon < rec.ExonCount() && steps > 0 {
		if inExon(rec, exon, pos+direction) {
			pos += direction
			steps--
		} else if direction > 0 {
			// Hop to the next exon's first base; the consuming step
			// happens on the following iteration.
			exon++
			if exon < rec.ExonCount() {
				pos = rec.ExonStarts[exon]
			}
		} else {
			// Hop to the previous exon's last base, which is itself one
			// step back.
			exon--
			if exon >= 0 {
				pos = rec.ExonEnds[exon] - 1
				steps--
			}
		}
	}

	if steps > 0 {
		return 0, &PositionError{Pos: orig, Dist: dist}
	}
	return pos, nil
}

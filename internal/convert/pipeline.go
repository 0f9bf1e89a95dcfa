package convert

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/genomekit/bed2gtf/internal/bed"
	"github.com/genomekit/bed2gtf/internal/isoform"
	"github.com/genomekit/bed2gtf/internal/output"
)

// Converter turns BED records into GTF features. It owns the gene emission
// registry, so one Converter corresponds to one conversion run.
type Converter struct {
	out       *output.Writer
	isoforms  *isoform.Map // nil: use the transcript name as the gene name
	seenGenes map[string]struct{}
	logger    *zap.Logger

	transcripts int
}

// New creates a converter writing to out. A nil isoform map enables no-gene
// mode, where each transcript is its own gene.
func New(out *output.Writer, isoforms *isoform.Map) *Converter {
	return &Converter{
		out:       out,
		isoforms:  isoforms,
		seenGenes: make(map[string]struct{}),
		logger:    zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and summary messages.
func (c *Converter) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Run converts every record from the parser, aborting on the first
// malformed record, unknown isoform or walk failure.
func (c *Converter) Run(p *bed.Parser) error {
	start := time.Now()

	for {
		rec, err := p.Next()
		if err != nil {
			return err
		}
		if rec == nil {
			break
		}
		if err := c.Process(rec); err != nil {
			return fmt.Errorf("record %s: %w", rec.Name, err)
		}
	}

	c.logger.Info("conversion complete",
		zap.Int("transcripts", c.transcripts),
		zap.Int("genes", len(c.seenGenes)),
		zap.Duration("elapsed", time.Since(start)))

	return nil
}

// Process converts a single record into its GTF feature block.
func (c *Converter) Process(rec *bed.Record) error {
	gene := rec.Name
	if c.isoforms != nil {
		g, err := c.isoforms.GeneNameOf(rec.Name)
		if err != nil {
			return err
		}
		gene = g
	}

	frames := ExonFrames(rec)
	left := LeftCodon(rec, frames)
	right := RightCodon(rec, frames)

	// UTR boundaries are fixed before the stop-codon trim; the trimmed
	// bounds below govern only the CDS segments. The frames above likewise
	// stay those of the untrimmed coding region.
	firstUTREnd := rec.CDSStart
	lastUTRStart := rec.CDSEnd

	cdsStart, cdsEnd := rec.CDSStart, rec.CDSEnd

	// GTF excludes the stop codon from the CDS, so a confirmed stop pulls
	// the strand-appropriate bound in by one codon width.
	if rec.Strand == bed.Forward && right.Complete() {
		pos, err := MovePos(rec, lastUTRStart, -3)
		if err != nil {
			return err
		}
		cdsEnd = pos
	}
	if rec.Strand == bed.Reverse && left.Complete() {
		pos, err := MovePos(rec, firstUTREnd, 3)
		if err != nil {
			return err
		}
		cdsStart = pos
	}

	if _, ok := c.seenGenes[gene]; !ok {
		c.seenGenes[gene] = struct{}{}
		if err := c.out.WriteGene(rec.Chrom, rec.Strand, gene, rec.TxStart, rec.TxEnd); err != nil {
			return err
		}
	}

	if err := c.out.WriteFeature(output.Feature{
		Chrom:      rec.Chrom,
		Type:       "transcript",
		Start:      rec.TxStart,
		End:        rec.TxEnd,
		Strand:     rec.Strand,
		Gene:       gene,
		Transcript: rec.Name,
		Frame:      -1,
		ExonIndex:  -1,
	}); err != nil {
		return err
	}

	for i := 0; i < rec.ExonCount(); i++ {
		if err := c.writeExonBlock(rec, gene, i, frames[i], firstUTREnd, cdsStart, cdsEnd, lastUTRStart); err != nil {
			return err
		}
	}

	// Codon records in genomic coordinate order: on the forward strand the
	// start codon sits at the left CDS boundary, on the reverse the stop
	// codon does.
	leftType, rightType := "start_codon", "stop_codon"
	if rec.Strand == bed.Reverse {
		leftType, rightType = "stop_codon", "start_codon"
	}
	if left.Complete() {
		if err := c.writeCodon(rec, gene, leftType, left); err != nil {
			return err
		}
	}
	if right.Complete() {
		if err := c.writeCodon(rec, gene, rightType, right); err != nil {
			return err
		}
	}

	c.transcripts++
	return nil
}

// writeExonBlock writes the exon record followed by any UTR and CDS segments
// the exon contributes. UTR/CDS segments are skipped entirely for non-coding
// regions (original or trimmed down to empty).
func (c *Converter) writeExonBlock(rec *bed.Record, gene string, i, frame int, firstUTREnd, cdsStart, cdsEnd, lastUTRStart int64) error {
	exonStart, exonEnd := rec.ExonStarts[i], rec.ExonEnds[i]

	feat := output.Feature{
		Chrom:      rec.Chrom,
		Strand:     rec.Strand,
		Gene:       gene,
		Transcript: rec.Name,
		ExonIndex:  i,
		ExonCount:  rec.ExonCount(),
	}

	feat.Type, feat.Start, feat.End, feat.Frame = "exon", exonStart, exonEnd, -1
	if err := c.out.WriteFeature(feat); err != nil {
		return err
	}

	if cdsStart >= cdsEnd {
		return nil
	}

	if exonStart < firstUTREnd {
		feat.Type = utrType(rec.Strand, true)
		feat.Start, feat.End, feat.Frame = exonStart, min(exonEnd, firstUTREnd), -1
		if err := c.out.WriteFeature(feat); err != nil {
			return err
		}
	}

	if cdsStart < exonEnd && cdsEnd > exonStart {
		feat.Type = "CDS"
		feat.Start, feat.End, feat.Frame = max(exonStart, cdsStart), min(exonEnd, cdsEnd), frame
		if err := c.out.WriteFeature(feat); err != nil {
			return err
		}
	}

	if exonEnd > lastUTRStart {
		feat.Type = utrType(rec.Strand, false)
		feat.Start, feat.End, feat.Frame = max(lastUTRStart, exonStart), exonEnd, -1
		if err := c.out.WriteFeature(feat); err != nil {
			return err
		}
	}

	return nil
}

// writeCodon writes one or two records for a located codon. The remainder of
// a split codon is tagged with the frame offset of its first base within the
// codon.
func (c *Converter) writeCodon(rec *bed.Record, gene, featureType string, codon Codon) error {
	feat := output.Feature{
		Chrom:      rec.Chrom,
		Type:       featureType,
		Start:      codon.First.Start,
		End:        codon.First.End,
		Strand:     rec.Strand,
		Gene:       gene,
		Transcript: rec.Name,
		Frame:      0,
		ExonIndex:  codon.FirstExon,
		ExonCount:  rec.ExonCount(),
	}
	if err := c.out.WriteFeature(feat); err != nil {
		return err
	}

	if codon.IsSplit() {
		feat.Start, feat.End = codon.Second.Start, codon.Second.End
		feat.Frame = int(codon.First.Len())
		feat.ExonIndex = codon.SecondExon
		if err := c.out.WriteFeature(feat); err != nil {
			return err
		}
	}

	return nil
}

// utrType labels a UTR segment relative to the strand: the region before the
// CDS is 5' on the forward strand and 3' on the reverse.
func utrType(strand bed.Strand, beforeCDS bool) string {
	if beforeCDS == (strand == bed.Forward) {
		return "5UTR"
	}
	return "3UTR"
}

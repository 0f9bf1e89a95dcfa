package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genomekit/bed2gtf/internal/bed"
)

func TestWriter_WriteGene(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteGene("chr15", bed.Forward, "TP53", 81000922, 81005788))
	require.NoError(t, w.Flush())

	line := strings.TrimRight(buf.String(), "\n")
	fields := strings.Split(line, "\t")
	require.Len(t, fields, 9)

	assert.Equal(t, "chr15", fields[0])
	assert.Equal(t, Source, fields[1])
	assert.Equal(t, "gene", fields[2])
	assert.Equal(t, "81000923", fields[3]) // 0-based start becomes 1-based
	assert.Equal(t, "81005788", fields[4])
	assert.Equal(t, ".", fields[5])
	assert.Equal(t, "+", fields[6])
	assert.Equal(t, ".", fields[7])
	assert.Equal(t, `gene_id "TP53";`, fields[8])
}

func TestWriter_WriteFeature_ExonAttributes(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteFeature(Feature{
		Chrom:      "chr1",
		Type:       "exon",
		Start:      0,
		End:        100,
		Strand:     bed.Forward,
		Gene:       "GENE1",
		Transcript: "tx1",
		Frame:      -1,
		ExonIndex:  0,
		ExonCount:  3,
	}))
	require.NoError(t, w.Flush())

	fields := strings.Split(strings.TrimRight(buf.String(), "\n"), "\t")
	require.Len(t, fields, 9)
	assert.Equal(t, "1", fields[3])
	assert.Equal(t, "100", fields[4])
	assert.Equal(t, ".", fields[7])
	assert.Equal(t, `gene_id "GENE1"; transcript_id "tx1"; exon_number "1"; exon_id "tx1.1";`, fields[8])
}

func TestWriter_WriteFeature_NoExonAttributes(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteFeature(Feature{
		Chrom:      "chr1",
		Type:       "transcript",
		Start:      0,
		End:        100,
		Strand:     bed.Reverse,
		Gene:       "GENE1",
		Transcript: "tx1",
		Frame:      -1,
		ExonIndex:  -1,
	}))
	require.NoError(t, w.Flush())

	fields := strings.Split(strings.TrimRight(buf.String(), "\n"), "\t")
	require.Len(t, fields, 9)
	assert.Equal(t, "-", fields[6])
	assert.Equal(t, `gene_id "GENE1"; transcript_id "tx1";`, fields[8])
	assert.NotContains(t, fields[8], "exon_number")
}

func TestWriter_PhaseMapping(t *testing.T) {
	tests := []struct {
		frame int
		phase string
	}{
		{-1, "."},
		{0, "0"},
		{1, "2"},
		{2, "1"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		w := NewWriter(&buf)

		require.NoError(t, w.WriteFeature(Feature{
			Chrom:      "chr1",
			Type:       "CDS",
			Start:      10,
			End:        20,
			Strand:     bed.Forward,
			Gene:       "g",
			Transcript: "t",
			Frame:      tt.frame,
			ExonIndex:  0,
			ExonCount:  1,
		}))
		require.NoError(t, w.Flush())

		fields := strings.Split(strings.TrimRight(buf.String(), "\n"), "\t")
		assert.Equal(t, tt.phase, fields[7], "frame %d", tt.frame)
	}
}

func TestExonNumber(t *testing.T) {
	assert.Equal(t, 1, exonNumber(bed.Forward, 0, 9))
	assert.Equal(t, 9, exonNumber(bed.Forward, 8, 9))
	assert.Equal(t, 9, exonNumber(bed.Reverse, 0, 9))
	assert.Equal(t, 1, exonNumber(bed.Reverse, 8, 9))
}

func TestWriter_WriteComments(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteComments("1.0.0"))
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Contains(t, out, "#provider: bed2gtf\n")
	assert.Contains(t, out, "#version: 1.0.0\n")
	assert.Contains(t, out, "#date: ")
}

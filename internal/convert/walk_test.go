package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genomekit/bed2gtf/internal/bed"
)

func twoExonRecord() *bed.Record {
	return &bed.Record{
		Chrom:      "chr1",
		TxStart:    0,
		TxEnd:      30,
		Name:       "tx1",
		Strand:     bed.Forward,
		CDSStart:   2,
		CDSEnd:     21,
		ExonStarts: []int64{0, 20},
		ExonEnds:   []int64{10, 30},
	}
}

func TestMovePos_WithinExon(t *testing.T) {
	rec := &bed.Record{
		Chrom:      "chr1",
		TxStart:    0,
		TxEnd:      300,
		Name:       "tx1",
		Strand:     bed.Forward,
		CDSStart:   0,
		CDSEnd:     300,
		ExonStarts: []int64{0},
		ExonEnds:   []int64{300},
	}

	pos, err := MovePos(rec, 300, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(297), pos)

	pos, err = MovePos(rec, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pos)
}

func TestMovePos_BackwardAcrossIntron(t *testing.T) {
	rec := twoExonRecord()

	// From one base into the second exon, three bases back land two bases
	// before the first exon's end: the intron costs nothing.
	pos, err := MovePos(rec, 21, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(8), pos)
}

func TestMovePos_ForwardAcrossIntron(t *testing.T) {
	rec := twoExonRecord()

	pos, err := MovePos(rec, 9, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(22), pos)
}

func TestMovePos_ZeroDistance(t *testing.T) {
	rec := twoExonRecord()

	pos, err := MovePos(rec, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pos)
}

func TestMovePos_PositionOutsideExons(t *testing.T) {
	rec := twoExonRecord()

	_, err := MovePos(rec, 15, -3)
	require.Error(t, err)

	var posErr *PositionError
	require.ErrorAs(t, err, &posErr)
	assert.Equal(t, int64(15), posErr.Pos)
}

func TestMovePos_ExhaustsExons(t *testing.T) {
	rec := twoExonRecord()

	_, err := MovePos(rec, 5, -20)
	require.Error(t, err)

	var posErr *PositionError
	require.ErrorAs(t, err, &posErr)
	assert.Equal(t, int64(5), posErr.Pos)
	assert.Equal(t, int64(-20), posErr.Dist)

	_, err = MovePos(rec, 25, 20)
	assert.Error(t, err)
}

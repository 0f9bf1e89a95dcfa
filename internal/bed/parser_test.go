package bed

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBED = `# a comment
track name=test
chr15	81000922	81005788	ENST00000267984	0	+	81002271	81003360	0	1	4866,	0,

chr11	13934505	13958243	ENST00000674667	1000	-	13934505	13958243	0,0,200	9	224,217,228,198,149,142,115,157,49,	0,1305,2811,5576,10085,14837,18016,19498,23689,
`

func TestParser_NextSkipsHeadersAndBlanks(t *testing.T) {
	p := NewParserFromReader(strings.NewReader(testBED))

	rec, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "ENST00000267984", rec.Name)

	rec, err = p.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "ENST00000674667", rec.Name)

	// Skipped comment, track and blank lines still count toward position
	assert.Equal(t, 5, p.LineNumber())

	rec, err = p.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestParser_MalformedLineReportsLineNumber(t *testing.T) {
	input := "# header\nchr1\tnot-a-number\t200\ttx1\t0\t+\t0\t0\t0\t1\t200,\t0,\n"
	p := NewParserFromReader(strings.NewReader(input))

	_, err := p.Next()
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, p.LineNumber(), parseErr.Line)
	assert.Contains(t, parseErr.Error(), "line 2")
}

func TestParser_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.bed")
	require.NoError(t, os.WriteFile(path, []byte(testBED), 0o644))

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	var names []string
	for {
		rec, err := p.Next()
		require.NoError(t, err)
		if rec == nil {
			break
		}
		names = append(names, rec.Name)
	}
	assert.Equal(t, []string{"ENST00000267984", "ENST00000674667"}, names)
}

func TestParser_GzippedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.bed.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(testBED))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	rec, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "ENST00000267984", rec.Name)
}

func TestParser_MissingFile(t *testing.T) {
	_, err := NewParser("/nonexistent/path.bed")
	assert.Error(t, err)
}

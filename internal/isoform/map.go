// Package isoform provides the transcript-to-gene lookup table.
package isoform

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Map resolves transcript names to their parent gene name.
type Map struct {
	genes map[string]string
}

// Load reads a tab-separated isoform file with columns [geneName,
// transcriptName, ...]. A header line starting with "Gene" is skipped.
func Load(path string) (*Map, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open isoform file: %w", err)
	}
	defer file.Close()

	m := &Map{genes: make(map[string]string)}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "Gene") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("isoform line %q: expected at least 2 columns", line)
		}
		m.genes[strings.TrimSpace(fields[1])] = fields[0]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read isoform file: %w", err)
	}

	return m, nil
}

// Len returns the number of transcript entries.
func (m *Map) Len() int {
	return len(m.genes)
}

// GeneNameOf returns the gene name for a transcript.
func (m *Map) GeneNameOf(transcript string) (string, error) {
	gene, ok := m.genes[transcript]
	if !ok {
		return "", &UnknownIsoformError{Transcript: transcript}
	}
	return gene, nil
}

// UnknownIsoformError indicates a transcript absent from the isoform map.
type UnknownIsoformError struct {
	Transcript string
}

func (e *UnknownIsoformError) Error() string {
	return fmt.Sprintf("transcript %s not found in isoform map", e.Transcript)
}

// Package index builds and queries the in-memory recipe document index:
// fetched pages are split into overlapping chunks, embedded, and stored
// for cosine-similarity retrieval.
package index

import "fmt"

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the number of characters shared between
	// consecutive chunks, so sentences split across a boundary remain
	// findable from either side.
	DefaultChunkOverlap = 200
)

// Chunk represents a single piece of a fetched document.
type Chunk struct {
	Text      string // The actual text content
	SourceURL string // Page the chunk was extracted from
	Ordinal   int    // Sequence number within the page (0-indexed)
}

// Splitter splits page text into fixed-size overlapping chunks.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

// NewSplitter creates a splitter with the given chunk size and overlap.
func NewSplitter(chunkSize, chunkOverlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap must be in [0, chunk size), got %d", chunkOverlap)
	}
	return &Splitter{chunkSize: chunkSize, chunkOverlap: chunkOverlap}, nil
}

// Split cuts text into chunks of at most chunkSize characters, with
// consecutive chunks sharing exactly chunkOverlap characters. Text
// shorter than chunkSize yields a single chunk.
func (s *Splitter) Split(text, sourceURL string) []Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := s.chunkSize - s.chunkOverlap

	var chunks []Chunk
	for start := 0; ; start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, Chunk{
			Text:      string(runes[start:end]),
			SourceURL: sourceURL,
			Ordinal:   len(chunks),
		})

		if end == len(runes) {
			break
		}
	}

	return chunks
}

package index

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// SearchResult is a chunk with its similarity score against a query.
type SearchResult struct {
	Chunk Chunk
	Score float32
}

// Store is an in-memory vector index. Chunks and their embeddings are
// held for the lifetime of the process; nothing is persisted.
type Store struct {
	chunks  []Chunk
	vectors [][]float32
}

// NewStore creates an empty vector store.
func NewStore() *Store {
	return &Store{}
}

// Add inserts chunks with their embeddings. chunks[i] corresponds to
// vectors[i].
func (s *Store) Add(chunks []Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk count %d does not match vector count %d", len(chunks), len(vectors))
	}
	s.chunks = append(s.chunks, chunks...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Len returns the number of stored chunks.
func (s *Store) Len() int {
	return len(s.chunks)
}

// Search returns the k chunks most similar to the query vector, by
// cosine similarity, highest score first. Ties keep insertion order.
func (s *Store) Search(query []float32, k int) []SearchResult {
	if k <= 0 || len(s.chunks) == 0 {
		return nil
	}

	results := make([]SearchResult, 0, len(s.chunks))
	for i, vec := range s.vectors {
		results = append(results, SearchResult{
			Chunk: s.chunks[i],
			Score: cosineSimilarity(query, vec),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

// cosineSimilarity returns the cosine of the angle between a and b.
// Mismatched dimensions or zero vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// Retriever finds the chunks most relevant to a text query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Chunk, error)
}

// StoreRetriever embeds a query and searches a Store.
type StoreRetriever struct {
	store    *Store
	embedder Embedder
}

// NewStoreRetriever creates a retriever bound to a store and embedder.
func NewStoreRetriever(store *Store, embedder Embedder) *StoreRetriever {
	return &StoreRetriever{store: store, embedder: embedder}
}

// Retrieve embeds the query and returns the top-k most similar chunks.
func (r *StoreRetriever) Retrieve(ctx context.Context, query string, k int) ([]Chunk, error) {
	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 query embedding, got %d", len(vectors))
	}

	results := r.store.Search(vectors[0], k)
	chunks := make([]Chunk, len(results))
	for i, res := range results {
		chunks[i] = res.Chunk
	}
	return chunks, nil
}

var _ Retriever = (*StoreRetriever)(nil)

package index

import (
	"context"
	"testing"
)

func TestStore_AddMismatchedLengths(t *testing.T) {
	s := NewStore()
	err := s.Add([]Chunk{{Text: "a"}}, [][]float32{{1, 0}, {0, 1}})
	if err == nil {
		t.Error("Add() should reject mismatched chunk/vector counts")
	}
}

func TestStore_SearchOrdering(t *testing.T) {
	s := NewStore()
	chunks := []Chunk{
		{Text: "pasta with tomatoes", Ordinal: 0},
		{Text: "chocolate cake", Ordinal: 1},
		{Text: "tomato soup", Ordinal: 2},
	}
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	if err := s.Add(chunks, vectors); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	results := s.Search([]float32{1, 0, 0}, 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Text != "pasta with tomatoes" {
		t.Errorf("expected best match first, got %q", results[0].Chunk.Text)
	}
	if results[1].Chunk.Text != "tomato soup" {
		t.Errorf("expected second-best match, got %q", results[1].Chunk.Text)
	}
	if results[0].Score < results[1].Score {
		t.Error("results are not sorted by descending score")
	}
}

func TestStore_SearchClampsK(t *testing.T) {
	s := NewStore()
	_ = s.Add([]Chunk{{Text: "only"}}, [][]float32{{1}})

	if got := len(s.Search([]float32{1}, 10)); got != 1 {
		t.Errorf("expected 1 result, got %d", got)
	}
	if got := s.Search([]float32{1}, 0); got != nil {
		t.Errorf("expected no results for k=0, got %d", len(got))
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"mismatched dims", []float32{1}, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("cosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

// stubEmbedder maps known texts to fixed vectors.
type stubEmbedder struct {
	vectors map[string][]float32
	fallback []float32
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := s.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = s.fallback
		}
	}
	return out, nil
}

func (s *stubEmbedder) Model() string { return "stub" }

func TestStoreRetriever_Retrieve(t *testing.T) {
	store := NewStore()
	_ = store.Add(
		[]Chunk{{Text: "tomato pasta"}, {Text: "cake"}},
		[][]float32{{1, 0}, {0, 1}},
	)

	emb := &stubEmbedder{
		vectors:  map[string][]float32{"pasta recipes": {1, 0}},
		fallback: []float32{0, 0},
	}

	r := NewStoreRetriever(store, emb)
	chunks, err := r.Retrieve(context.Background(), "pasta recipes", 1)
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "tomato pasta" {
		t.Errorf("expected tomato pasta, got %q", chunks[0].Text)
	}
}

package index

import (
	"strings"
	"testing"
)

func TestNewSplitter_InvalidConfig(t *testing.T) {
	if _, err := NewSplitter(0, 0); err == nil {
		t.Error("NewSplitter() should reject zero chunk size")
	}
	if _, err := NewSplitter(100, 100); err == nil {
		t.Error("NewSplitter() should reject overlap >= chunk size")
	}
	if _, err := NewSplitter(100, -1); err == nil {
		t.Error("NewSplitter() should reject negative overlap")
	}
}

func TestSplit_ShortText(t *testing.T) {
	s, err := NewSplitter(1000, 200)
	if err != nil {
		t.Fatalf("NewSplitter() error: %v", err)
	}

	chunks := s.Split("a short recipe page", "https://example.com")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "a short recipe page" {
		t.Errorf("unexpected chunk text %q", chunks[0].Text)
	}
	if chunks[0].SourceURL != "https://example.com" {
		t.Errorf("unexpected source URL %q", chunks[0].SourceURL)
	}
	if chunks[0].Ordinal != 0 {
		t.Errorf("expected ordinal 0, got %d", chunks[0].Ordinal)
	}
}

func TestSplit_EmptyText(t *testing.T) {
	s, _ := NewSplitter(1000, 200)
	if chunks := s.Split("", "https://example.com"); chunks != nil {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestSplit_ExactOverlap(t *testing.T) {
	s, err := NewSplitter(1000, 200)
	if err != nil {
		t.Fatalf("NewSplitter() error: %v", err)
	}

	// 2500 characters: expect chunks at [0:1000], [800:1800], [1600:2500]
	text := strings.Repeat("abcde", 500)
	chunks := s.Split(text, "https://example.com")

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	for i := 0; i < len(chunks)-1; i++ {
		cur := chunks[i].Text
		next := chunks[i+1].Text

		tail := cur[len(cur)-200:]
		head := next[:200]
		if tail != head {
			t.Errorf("chunks %d and %d overlap does not match", i, i+1)
		}
	}

	if len(chunks[0].Text) != 1000 {
		t.Errorf("expected first chunk length 1000, got %d", len(chunks[0].Text))
	}
	if len(chunks[2].Text) != 900 {
		t.Errorf("expected last chunk length 900, got %d", len(chunks[2].Text))
	}

	for i, c := range chunks {
		if c.Ordinal != i {
			t.Errorf("chunk %d has ordinal %d", i, c.Ordinal)
		}
	}
}

func TestSplit_ReconstructsOriginal(t *testing.T) {
	s, _ := NewSplitter(100, 20)

	text := strings.Repeat("0123456789", 35)
	chunks := s.Split(text, "u")

	rebuilt := chunks[0].Text
	for _, c := range chunks[1:] {
		rebuilt += c.Text[20:]
	}
	if rebuilt != text {
		t.Error("chunks do not reconstruct the original text")
	}
}

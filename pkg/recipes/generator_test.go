package recipes

import (
	"context"
	"strings"
	"testing"

	"github.com/mealforge/mealforge/pkg/index"
	"github.com/mealforge/mealforge/pkg/llm"
)

// fixedRetriever returns the same chunks for any query.
type fixedRetriever struct {
	chunks []index.Chunk
}

func (r *fixedRetriever) Retrieve(_ context.Context, _ string, k int) ([]index.Chunk, error) {
	if k > len(r.chunks) {
		k = len(r.chunks)
	}
	return r.chunks[:k], nil
}

// scriptedProvider replays canned replies and records each prompt.
type scriptedProvider struct {
	replies []string
	calls   int
	prompts []string
}

func (p *scriptedProvider) Execute(_ context.Context, req llm.Request) (*llm.Response, error) {
	for _, msg := range req.Messages {
		if msg.Role == llm.RoleUser {
			p.prompts = append(p.prompts, msg.Content)
		}
	}
	reply := p.replies[p.calls]
	p.calls++
	return &llm.Response{
		Content: reply,
		Usage:   llm.Usage{InputTokens: 10, OutputTokens: 20},
		Model:   "scripted",
	}, nil
}

func (p *scriptedProvider) Name() string  { return "scripted" }
func (p *scriptedProvider) Model() string { return "scripted" }

func newTestGenerator(t *testing.T, provider llm.Provider) *Generator {
	t.Helper()

	retriever := &fixedRetriever{chunks: []index.Chunk{
		{Text: "Classic marinara sauce starts with ripe tomatoes."},
		{Text: "Fresh pasta cooks in three minutes."},
		{Text: "A vegetarian ragu substitutes lentils for meat."},
	}}

	g, err := NewGenerator(retriever, provider, GeneratorConfig{
		TopK:       3,
		MaxRetries: 1,
	})
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}
	return g
}

func TestGenerate_PromptContainsRequest(t *testing.T) {
	provider := &scriptedProvider{replies: []string{validArray}}
	g := newTestGenerator(t, provider)

	result, err := g.Generate(context.Background(), Request{
		NumPeople:   4,
		Ingredients: "tomatoes, pasta",
		Dietary:     "vegetarian",
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if len(provider.prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(provider.prompts))
	}
	prompt := provider.prompts[0]

	for _, want := range []string{
		"tomatoes, pasta",
		"vegetarian",
		"4 people",
		"Classic marinara sauce starts with ripe tomatoes.",
		"missing_ingredients",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if len(result.Recipes) != 2 {
		t.Errorf("expected 2 recipes, got %d", len(result.Recipes))
	}
	if result.RetryCount != 0 {
		t.Errorf("expected no retries, got %d", result.RetryCount)
	}
}

func TestGenerate_CorrectiveRetry(t *testing.T) {
	provider := &scriptedProvider{replies: []string{
		"Sorry, here is prose instead of JSON.",
		validArray,
	}}
	g := newTestGenerator(t, provider)

	result, err := g.Generate(context.Background(), Request{
		NumPeople:   2,
		Ingredients: "tomatoes",
		Dietary:     "none",
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if provider.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", provider.calls)
	}
	if result.RetryCount != 1 {
		t.Errorf("expected retry count 1, got %d", result.RetryCount)
	}

	// Second prompt should carry the previous error for self-correction.
	if !strings.Contains(provider.prompts[1], "previous reply could not be used") {
		t.Error("corrective prompt missing previous error context")
	}

	// Usage accumulates across attempts.
	if result.Usage.InputTokens != 20 || result.Usage.OutputTokens != 40 {
		t.Errorf("unexpected accumulated usage %+v", result.Usage)
	}
}

func TestGenerate_ExhaustedRetriesFails(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"nope", "still nope"}}
	g := newTestGenerator(t, provider)

	_, err := g.Generate(context.Background(), Request{
		NumPeople:   2,
		Ingredients: "tomatoes",
	})
	if err == nil {
		t.Fatal("Generate() should fail after exhausting retries")
	}
	if provider.calls != 2 {
		t.Errorf("expected 2 attempts, got %d", provider.calls)
	}
}

func TestGenerate_RejectsInvalidRequest(t *testing.T) {
	provider := &scriptedProvider{replies: []string{validArray}}
	g := newTestGenerator(t, provider)

	if _, err := g.Generate(context.Background(), Request{NumPeople: 0, Ingredients: "x"}); err == nil {
		t.Error("Generate() should reject zero people")
	}
	if _, err := g.Generate(context.Background(), Request{NumPeople: 2}); err == nil {
		t.Error("Generate() should reject empty ingredients")
	}
	if provider.calls != 0 {
		t.Errorf("invalid requests should not reach the provider, got %d calls", provider.calls)
	}
}

func TestBuildQuery(t *testing.T) {
	query := BuildQuery(Request{NumPeople: 4, Ingredients: "tomatoes, pasta", Dietary: "vegetarian"})
	want := "Recipes using tomatoes, pasta for vegetarian diet"
	if query != want {
		t.Errorf("BuildQuery() = %q, want %q", query, want)
	}
}

package index

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mealforge/mealforge/internal/logger"
)

// DefaultEmbeddingModel is the embedding model used when none is configured.
const DefaultEmbeddingModel = string(openai.EmbeddingModelTextEmbedding3Small)

// Embedder computes vector representations of text.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the embedding model identifier.
	Model() string
}

// EmbedderConfig holds configuration for embedding backends.
type EmbedderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIEmbedder computes embeddings via the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client openai.Client
	model  string
}

// NewOpenAIEmbedder creates a new OpenAI-backed embedder.
func NewOpenAIEmbedder(cfg EmbedderConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultEmbeddingModel
	}

	return &OpenAIEmbedder{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Embed computes embeddings for a batch of texts.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	start := time.Now()
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI embeddings error: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}

	logger.Debug("embeddings computed",
		"model", e.model,
		"texts", len(texts),
		"duration", time.Since(start))

	return vectors, nil
}

// Model returns the embedding model identifier.
func (e *OpenAIEmbedder) Model() string {
	return e.model
}

var _ Embedder = (*OpenAIEmbedder)(nil)

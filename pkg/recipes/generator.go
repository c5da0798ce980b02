package recipes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mealforge/mealforge/internal/logger"
	"github.com/mealforge/mealforge/pkg/index"
	"github.com/mealforge/mealforge/pkg/llm"
)

// GeneratorConfig holds generation parameters.
type GeneratorConfig struct {
	TopK        int     // Chunks retrieved per query
	Temperature float64 // Sampling temperature; outputs are not deterministic
	MaxTokens   int
	MaxRetries  int // Corrective re-prompts after an unparseable reply
}

// DefaultGeneratorConfig returns the fixed pipeline defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		TopK:        3,
		Temperature: 0.7,
		MaxTokens:   4096,
		MaxRetries:  2,
	}
}

// Request describes the recipes the user wants.
type Request struct {
	NumPeople   int    `validate:"required,gt=0"`
	Ingredients string `validate:"required"` // Comma-separated
	Dietary     string // Free text, may be empty
}

// Result is a successful generation with its raw reply and usage.
type Result struct {
	Recipes    []Recipe
	Raw        string // Raw LLM response of the final attempt
	Usage      llm.Usage
	Model      string
	RetryCount int
	Duration   time.Duration
}

// Generator produces recipes by retrieving recipe-site context and
// prompting an LLM for a strict JSON reply.
type Generator struct {
	retriever index.Retriever
	provider  llm.Provider
	config    GeneratorConfig
}

// NewGenerator creates a generator bound to a retriever and provider.
func NewGenerator(r index.Retriever, p llm.Provider, cfg GeneratorConfig) (*Generator, error) {
	if r == nil {
		return nil, fmt.Errorf("retriever required")
	}
	if p == nil {
		return nil, fmt.Errorf("llm provider required")
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultGeneratorConfig().TopK
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultGeneratorConfig().MaxTokens
	}
	return &Generator{retriever: r, provider: p, config: cfg}, nil
}

// BuildQuery composes the retrieval query for a request.
func BuildQuery(req Request) string {
	return fmt.Sprintf("Recipes using %s for %s diet", req.Ingredients, req.Dietary)
}

// Generate retrieves context, prompts the model, and parses its JSON
// reply. An unparseable or invalid reply is retried with a corrective
// prompt up to MaxRetries times; exhausting retries fails the request.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	start := time.Now()

	query := BuildQuery(req)
	chunks, err := g.retriever.Retrieve(ctx, query, g.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	logger.Debug("context retrieved", "query", query, "chunks", len(chunks))

	contextTexts := make([]string, len(chunks))
	for i, c := range chunks {
		contextTexts[i] = c.Text
	}
	contextBlock := strings.Join(contextTexts, "\n\n")

	var lastErr error
	var totalUsage llm.Usage

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		prompt := BuildPrompt(contextBlock, req.NumPeople, req.Ingredients, req.Dietary, lastErr)

		resp, err := g.provider.Execute(ctx, llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: systemPrompt},
				{Role: llm.RoleUser, Content: prompt},
			},
			MaxTokens:   g.config.MaxTokens,
			Temperature: g.config.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("completion failed: %w", err)
		}

		totalUsage.InputTokens += resp.Usage.InputTokens
		totalUsage.OutputTokens += resp.Usage.OutputTokens

		rs, err := ParseResponse(resp.Content)
		if err == nil {
			err = Validate(rs)
		}
		if err == nil {
			if len(rs) < 3 || len(rs) > 5 {
				logger.Warn("recipe count outside requested range", "count", len(rs))
			}
			return &Result{
				Recipes:    rs,
				Raw:        resp.Content,
				Usage:      totalUsage,
				Model:      resp.Model,
				RetryCount: attempt,
				Duration:   time.Since(start),
			}, nil
		}

		lastErr = err
		logger.Debug("model reply rejected, retrying",
			"attempt", attempt+1,
			"max_attempts", g.config.MaxRetries+1,
			"error", err)
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", g.config.MaxRetries+1, lastErr)
}

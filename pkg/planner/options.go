// Package planner wires fetching, indexing, generation, and cart
// simulation into the single recipe-planning entry point.
package planner

import (
	"time"

	"github.com/mealforge/mealforge/pkg/fetcher"
	"github.com/mealforge/mealforge/pkg/index"
	"github.com/mealforge/mealforge/pkg/llm"
	"github.com/mealforge/mealforge/pkg/recipes"
)

// FetchMode selects the page fetching strategy.
type FetchMode string

const (
	FetchModeStatic  FetchMode = "static"
	FetchModeDynamic FetchMode = "dynamic"
)

// Config holds all planner configuration.
type Config struct {
	// LLM settings
	Provider string
	Model    string
	APIKey   string
	BaseURL  string

	// Embedding settings
	EmbeddingModel   string
	EmbeddingBaseURL string

	// Retailer settings
	WalmartClientID     string
	WalmartClientSecret string
	WalmartBaseURL      string

	// Indexing settings
	SourceURLs   []string
	ChunkSize    int
	ChunkOverlap int

	// Fetching settings
	FetchMode FetchMode
	UserAgent string
	Timeout   time.Duration

	// Generation settings
	TopK        int
	Temperature float64
	MaxRetries  int

	// Injected collaborators (override construction; used in tests)
	Fetcher   fetcher.Fetcher
	Embedder  index.Embedder
	LLM       llm.Provider
	Retriever index.Retriever
	Searcher  ProductSearcher
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	gen := recipes.DefaultGeneratorConfig()
	return Config{
		Provider:     "openai",
		FetchMode:    FetchModeStatic,
		Timeout:      30 * time.Second,
		SourceURLs:   index.DefaultSourceURLs,
		ChunkSize:    index.DefaultChunkSize,
		ChunkOverlap: index.DefaultChunkOverlap,
		TopK:         gen.TopK,
		Temperature:  gen.Temperature,
		MaxRetries:   gen.MaxRetries,
	}
}

// Option configures the planner.
type Option func(*Config)

// WithProvider sets the LLM provider name.
func WithProvider(provider string) Option {
	return func(c *Config) { c.Provider = provider }
}

// WithModel sets the LLM model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithAPIKey sets the LLM API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithBaseURL sets a custom LLM API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithEmbeddingModel sets the embedding model.
func WithEmbeddingModel(model string) Option {
	return func(c *Config) { c.EmbeddingModel = model }
}

// WithWalmartCredentials sets the marketplace client credentials.
func WithWalmartCredentials(id, secret string) Option {
	return func(c *Config) {
		c.WalmartClientID = id
		c.WalmartClientSecret = secret
	}
}

// WithSourceURLs overrides the recipe pages to index.
func WithSourceURLs(urls []string) Option {
	return func(c *Config) { c.SourceURLs = urls }
}

// WithFetchMode sets the fetch mode (static, dynamic).
func WithFetchMode(mode FetchMode) Option {
	return func(c *Config) { c.FetchMode = mode }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithTopK sets the number of chunks retrieved per query.
func WithTopK(k int) Option {
	return func(c *Config) { c.TopK = k }
}

// WithTemperature sets the LLM sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = t }
}

// WithMaxRetries sets the maximum corrective re-prompt attempts.
func WithMaxRetries(n int) Option {
	return func(c *Config) { c.MaxRetries = n }
}

// WithFetcher injects a custom page fetcher.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Config) { c.Fetcher = f }
}

// WithEmbedder injects a custom embedder.
func WithEmbedder(e index.Embedder) Option {
	return func(c *Config) { c.Embedder = e }
}

// WithLLM injects a custom LLM provider.
func WithLLM(p llm.Provider) Option {
	return func(c *Config) { c.LLM = p }
}

// WithRetriever injects a prebuilt retriever, skipping indexing.
func WithRetriever(r index.Retriever) Option {
	return func(c *Config) { c.Retriever = r }
}

// WithSearcher injects a custom product searcher.
func WithSearcher(s ProductSearcher) Option {
	return func(c *Config) { c.Searcher = s }
}

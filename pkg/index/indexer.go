package index

import (
	"context"
	"fmt"

	"github.com/mealforge/mealforge/internal/logger"
	"github.com/mealforge/mealforge/pkg/fetcher"
)

// DefaultSourceURLs are the recipe listing pages indexed when no
// sources are configured.
var DefaultSourceURLs = []string{
	"https://www.allrecipes.com/recipes/",
	"https://www.bbcgoodfood.com/recipes",
}

// IndexerConfig holds configuration for building the document index.
type IndexerConfig struct {
	SourceURLs   []string
	ChunkSize    int
	ChunkOverlap int
	FetchOptions fetcher.Options
}

// DefaultIndexerConfig returns the fixed defaults used by the pipeline.
func DefaultIndexerConfig() IndexerConfig {
	return IndexerConfig{
		SourceURLs:   DefaultSourceURLs,
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
	}
}

// Indexer fetches recipe pages, splits them into chunks, embeds the
// chunks, and loads them into a fresh in-memory store.
type Indexer struct {
	fetcher  fetcher.Fetcher
	embedder Embedder
	config   IndexerConfig
}

// NewIndexer creates an indexer from a fetcher and embedder.
func NewIndexer(f fetcher.Fetcher, e Embedder, cfg IndexerConfig) (*Indexer, error) {
	if f == nil {
		return nil, fmt.Errorf("fetcher required")
	}
	if e == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if len(cfg.SourceURLs) == 0 {
		cfg.SourceURLs = DefaultSourceURLs
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkOverlap == 0 {
		cfg.ChunkOverlap = DefaultChunkOverlap
	}
	return &Indexer{fetcher: f, embedder: e, config: cfg}, nil
}

// Build fetches every configured URL, chunks and embeds the page text,
// and returns a retriever bound to the populated store. Pages run in
// strict sequence; a failed fetch fails the whole build.
func (ix *Indexer) Build(ctx context.Context) (*StoreRetriever, error) {
	splitter, err := NewSplitter(ix.config.ChunkSize, ix.config.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	store := NewStore()

	for _, url := range ix.config.SourceURLs {
		content, err := ix.fetcher.Fetch(ctx, url, ix.config.FetchOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
		}

		chunks := splitter.Split(content.Text, url)
		if len(chunks) == 0 {
			logger.Warn("page produced no chunks", "url", url)
			continue
		}

		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}

		vectors, err := ix.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks from %s: %w", url, err)
		}

		if err := store.Add(chunks, vectors); err != nil {
			return nil, err
		}

		logger.Debug("page indexed",
			"url", url,
			"chunks", len(chunks),
			"text_size", len(content.Text))
	}

	logger.Info("document index built",
		"pages", len(ix.config.SourceURLs),
		"chunks", store.Len(),
		"embedding_model", ix.embedder.Model())

	return NewStoreRetriever(store, ix.embedder), nil
}

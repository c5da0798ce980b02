package planner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mealforge/mealforge/internal/logger"
	"github.com/mealforge/mealforge/pkg/fetcher"
	"github.com/mealforge/mealforge/pkg/index"
	"github.com/mealforge/mealforge/pkg/llm"
	"github.com/mealforge/mealforge/pkg/recipes"
	"github.com/mealforge/mealforge/pkg/walmart"
)

// ProductSearcher finds the top catalog match for a search term.
type ProductSearcher interface {
	SearchProduct(ctx context.Context, query string) (walmart.Product, error)
}

// Plan is the orchestrator result: the generated recipes plus the
// simulated cart additions for their missing ingredients.
type Plan struct {
	Recipes     []recipes.Recipe     `json:"recipes"`
	CartActions []walmart.CartAction `json:"cart_additions"`
}

// Planner is the main entry point for recipe planning.
type Planner struct {
	config   Config
	fetcher  fetcher.Fetcher
	embedder index.Embedder
	provider llm.Provider
	searcher ProductSearcher

	mu        sync.Mutex
	retriever index.Retriever
}

// New creates a Planner. Collaborators not injected via options are
// constructed from the configuration.
func New(opts ...Option) (*Planner, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Planner{config: cfg, retriever: cfg.Retriever}

	// Fetcher
	if cfg.Fetcher != nil {
		p.fetcher = cfg.Fetcher
	} else {
		switch cfg.FetchMode {
		case FetchModeDynamic:
			f, err := fetcher.NewDynamic(fetcher.DynamicConfig{
				UserAgent: cfg.UserAgent,
				Timeout:   cfg.Timeout,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create dynamic fetcher: %w", err)
			}
			p.fetcher = f
		default:
			p.fetcher = fetcher.NewStatic(fetcher.StaticConfig{
				UserAgent: cfg.UserAgent,
				Timeout:   cfg.Timeout,
			})
		}
	}

	// Embedder
	if cfg.Embedder != nil {
		p.embedder = cfg.Embedder
	} else if p.retriever == nil {
		embCfg := index.EmbedderConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.EmbeddingBaseURL,
			Model:   cfg.EmbeddingModel,
		}
		switch cfg.Provider {
		case "ollama":
			p.embedder = index.NewOllamaEmbedder(embCfg)
		default:
			e, err := index.NewOpenAIEmbedder(embCfg)
			if err != nil {
				return nil, fmt.Errorf("failed to create embedder: %w", err)
			}
			p.embedder = e
		}
	}

	// LLM provider
	if cfg.LLM != nil {
		p.provider = cfg.LLM
	} else {
		provider, err := llm.NewProvider(cfg.Provider, llm.ProviderConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM provider: %w", err)
		}
		p.provider = provider
	}

	// Product search
	if cfg.Searcher != nil {
		p.searcher = cfg.Searcher
	} else {
		client, err := walmart.NewClient(walmart.Config{
			ClientID:     cfg.WalmartClientID,
			ClientSecret: cfg.WalmartClientSecret,
			BaseURL:      cfg.WalmartBaseURL,
			Timeout:      cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create walmart client: %w", err)
		}
		p.searcher = client
	}

	return p, nil
}

// Retriever returns the document retriever, building the index on
// first use. The index is reused for the planner's lifetime.
func (p *Planner) Retriever(ctx context.Context) (index.Retriever, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.retriever != nil {
		return p.retriever, nil
	}

	ix, err := index.NewIndexer(p.fetcher, p.embedder, index.IndexerConfig{
		SourceURLs:   p.config.SourceURLs,
		ChunkSize:    p.config.ChunkSize,
		ChunkOverlap: p.config.ChunkOverlap,
	})
	if err != nil {
		return nil, err
	}

	retriever, err := ix.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build document index: %w", err)
	}

	p.retriever = retriever
	return p.retriever, nil
}

// GenerateRecipes runs the full pipeline: index, retrieve, generate,
// parse, and simulate cart additions for missing ingredients. A failed
// product search skips that ingredient's cart action rather than
// failing the whole plan.
func (p *Planner) GenerateRecipes(ctx context.Context, req recipes.Request) (*Plan, error) {
	retriever, err := p.Retriever(ctx)
	if err != nil {
		return nil, err
	}

	gen, err := recipes.NewGenerator(retriever, p.provider, recipes.GeneratorConfig{
		TopK:        p.config.TopK,
		Temperature: p.config.Temperature,
		MaxRetries:  p.config.MaxRetries,
	})
	if err != nil {
		return nil, err
	}

	result, err := gen.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("recipe generation failed: %w", err)
	}

	logger.Info("recipes generated",
		"count", len(result.Recipes),
		"model", result.Model,
		"retries", result.RetryCount,
		"input_tokens", result.Usage.InputTokens,
		"output_tokens", result.Usage.OutputTokens)

	owned := make(map[string]bool)
	for _, ing := range recipes.SplitIngredients(req.Ingredients) {
		owned[ing] = true
	}

	plan := &Plan{Recipes: result.Recipes}

	// The prompt already instructs the model to keep missing_ingredients
	// disjoint from the user's list; this filter is the backstop.
	seen := make(map[string]bool)
	for i := range plan.Recipes {
		r := &plan.Recipes[i]
		filtered := r.MissingIngredients[:0]
		for _, missing := range r.MissingIngredients {
			key := strings.ToLower(strings.TrimSpace(missing))
			if key == "" || owned[key] {
				continue
			}
			filtered = append(filtered, missing)

			if seen[key] {
				continue
			}
			seen[key] = true

			product, err := p.searcher.SearchProduct(ctx, missing)
			if err != nil {
				logger.Warn("product search failed, skipping cart action",
					"ingredient", missing,
					"error", err)
				continue
			}
			plan.CartActions = append(plan.CartActions, walmart.SimulateCartAdd(product.ItemID))
		}
		r.MissingIngredients = filtered
	}

	return plan, nil
}

// Close releases fetcher resources.
func (p *Planner) Close() error {
	if p.fetcher != nil {
		return p.fetcher.Close()
	}
	return nil
}

// Provider returns the LLM provider name.
func (p *Planner) Provider() string {
	return p.provider.Name()
}

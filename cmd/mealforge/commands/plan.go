package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mealforge/mealforge/internal/logger"
	"github.com/mealforge/mealforge/internal/output"
	"github.com/mealforge/mealforge/pkg/llm"
	"github.com/mealforge/mealforge/pkg/planner"
	"github.com/mealforge/mealforge/pkg/recipes"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate recipes and fill a simulated cart",
	Long: `Generate 3-5 recipes for the ingredients you have, constrained
by dietary needs. Recipe sites are fetched and indexed for retrieval
context, the LLM's JSON reply is validated, and every missing
ingredient triggers a catalog lookup plus a simulated cart addition.

Examples:
  mealforge plan --people 4 --ingredients "tomatoes, pasta" --dietary vegetarian
  mealforge plan --people 2 --ingredients "chicken, rice" -o plan.json`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	flags := planCmd.Flags()

	// Request
	flags.IntP("people", "n", 2, "number of people to cook for")
	flags.StringP("ingredients", "i", "", "comma-separated ingredients on hand (required)")
	flags.StringP("dietary", "d", "none", "dietary restrictions (free text)")

	// LLM settings
	flags.StringP("provider", "p", "", "LLM provider: openai, anthropic, ollama (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.String("base-url", "", "custom API base URL")
	flags.String("embedding-model", "", "embedding model name")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, yaml")

	// Fetch/index settings
	flags.StringSlice("source-url", nil, "recipe page URL(s) to index (can be repeated)")
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")
	flags.Duration("timeout", 30*time.Second, "request timeout")

	// Generation settings
	flags.Int("top-k", 3, "retrieved context chunks per query")
	flags.Float64("temperature", 0.7, "LLM sampling temperature")
	flags.Int("max-retries", 2, "corrective re-prompts after a bad reply")

	_ = planCmd.MarkFlagRequired("ingredients")

	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
}

func runPlan(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	people, _ := cmd.Flags().GetInt("people")
	ingredients, _ := cmd.Flags().GetString("ingredients")
	dietary, _ := cmd.Flags().GetString("dietary")

	provider := viper.GetString("provider")
	apiKey := viper.GetString("api_key")
	if provider == "" {
		provider, apiKey = llm.DetectProvider()
		logger.Debug("provider auto-detected", "provider", provider)
	}

	// Fail fast on missing credentials rather than erroring mid-pipeline.
	if provider != "ollama" && apiKey == "" {
		logError("no API key configured for provider %q (set OPENAI_API_KEY or ANTHROPIC_API_KEY)", provider)
		return fmt.Errorf("missing API key")
	}

	walmartID := viper.GetString("walmart_client_id")
	walmartSecret := viper.GetString("walmart_client_secret")
	if walmartID == "" || walmartSecret == "" {
		logError("walmart credentials not configured (set WALMART_CLIENT_ID and WALMART_CLIENT_SECRET)")
		return fmt.Errorf("missing walmart credentials")
	}

	model := viper.GetString("model")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	fetchMode, _ := cmd.Flags().GetString("fetch-mode")
	sourceURLs, _ := cmd.Flags().GetStringSlice("source-url")
	topK, _ := cmd.Flags().GetInt("top-k")
	temperature, _ := cmd.Flags().GetFloat64("temperature")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	embeddingModel, _ := cmd.Flags().GetString("embedding-model")

	opts := []planner.Option{
		planner.WithProvider(provider),
		planner.WithAPIKey(apiKey),
		planner.WithWalmartCredentials(walmartID, walmartSecret),
		planner.WithFetchMode(planner.FetchMode(fetchMode)),
		planner.WithTimeout(timeout),
		planner.WithTopK(topK),
		planner.WithTemperature(temperature),
		planner.WithMaxRetries(maxRetries),
	}
	if model != "" {
		opts = append(opts, planner.WithModel(model))
	}
	if baseURL := viper.GetString("base_url"); baseURL != "" {
		opts = append(opts, planner.WithBaseURL(baseURL))
	}
	if embeddingModel != "" {
		opts = append(opts, planner.WithEmbeddingModel(embeddingModel))
	}
	if len(sourceURLs) > 0 {
		opts = append(opts, planner.WithSourceURLs(sourceURLs))
	}

	p, err := planner.New(opts...)
	if err != nil {
		logError("failed to create planner: %v", err)
		return err
	}
	defer func() { _ = p.Close() }()

	logInfo("Planning recipes for %d people with: %s", people, ingredients)

	plan, err := p.GenerateRecipes(ctx, recipes.Request{
		NumPeople:   people,
		Ingredients: ingredients,
		Dietary:     dietary,
	})
	if err != nil {
		logError("planning failed: %v", err)
		return err
	}

	logInfo("Generated %d recipes, %d simulated cart additions",
		len(plan.Recipes), len(plan.CartActions))

	return writePlan(cmd, plan)
}

func writePlan(cmd *cobra.Command, plan *planner.Plan) error {
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	w, err := output.NewWriter(out, output.Format(format))
	if err != nil {
		return err
	}

	if err := w.Write(plan); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return w.Close()
}

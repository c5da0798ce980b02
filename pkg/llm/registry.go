package llm

import (
	"fmt"
	"os"
	"sort"
)

// ProviderFactory creates providers from config.
type ProviderFactory func(cfg ProviderConfig) (Provider, error)

// DefaultModels maps provider names to their default models.
var DefaultModels = map[string]string{
	"openai":    DefaultOpenAIModel,
	"anthropic": "claude-sonnet-4-20250514",
	"ollama":    "llama3.2",
}

var registry = map[string]ProviderFactory{}

func init() {
	RegisterProvider("openai", func(cfg ProviderConfig) (Provider, error) {
		return NewOpenAIProvider(cfg)
	})
	RegisterProvider("anthropic", func(cfg ProviderConfig) (Provider, error) {
		return NewAnthropicProvider(cfg)
	})
	RegisterProvider("ollama", func(cfg ProviderConfig) (Provider, error) {
		return NewOllamaProvider(cfg)
	})
}

// NewProvider creates a provider by name.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (available: openai, anthropic, ollama)", name)
	}
	return factory(cfg)
}

// RegisterProvider adds a custom provider factory.
func RegisterProvider(name string, factory ProviderFactory) {
	registry[name] = factory
}

// AvailableProviders returns the list of registered providers.
func AvailableProviders() []string {
	providers := make([]string, 0, len(registry))
	for name := range registry {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// DetectProvider auto-detects a provider based on available API keys.
// Priority: OPENAI_API_KEY > ANTHROPIC_API_KEY > ollama (no key needed).
func DetectProvider() (provider string, apiKey string) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return "openai", key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return "anthropic", key
	}
	return "ollama", ""
}

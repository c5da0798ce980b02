package llm

import (
	"context"
	"testing"
)

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider("nonexistent", ProviderConfig{}); err == nil {
		t.Error("NewProvider() should fail for an unknown provider")
	}
}

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	if _, err := NewProvider("openai", ProviderConfig{}); err == nil {
		t.Error("openai provider should require an API key")
	}
	if _, err := NewProvider("anthropic", ProviderConfig{}); err == nil {
		t.Error("anthropic provider should require an API key")
	}
}

func TestNewProvider_OllamaDefaults(t *testing.T) {
	p, err := NewProvider("ollama", ProviderConfig{})
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("unexpected provider name %q", p.Name())
	}
	if p.Model() != "llama3.2" {
		t.Errorf("unexpected default model %q", p.Model())
	}
}

func TestRegisterProvider_Custom(t *testing.T) {
	RegisterProvider("custom", func(cfg ProviderConfig) (Provider, error) {
		return &customProvider{}, nil
	})

	p, err := NewProvider("custom", ProviderConfig{})
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if p.Name() != "custom" {
		t.Errorf("unexpected provider name %q", p.Name())
	}
}

type customProvider struct{}

func (p *customProvider) Execute(_ context.Context, _ Request) (*Response, error) {
	return &Response{Content: "ok"}, nil
}

func (p *customProvider) Name() string  { return "custom" }
func (p *customProvider) Model() string { return "custom-model" }

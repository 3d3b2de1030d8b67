package llm

import (
	"testing"

	"github.com/kavach-labs/kavach/internal/model"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error for disabled provider, got %v", err)
	}
	if provider != nil {
		t.Error("Expected nil provider when disabled")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "gemini"})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestNewProvider_Ollama(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "ollama", Model: "llama3.1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.Name() != "ollama" {
		t.Errorf("Expected ollama, got %s", provider.Name())
	}
}

func TestNewProvider_AnthropicAlias(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "claude", APIKey: "k"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.Name() != "anthropic" {
		t.Errorf("Expected anthropic, got %s", provider.Name())
	}
}

func TestConfigFromModel(t *testing.T) {
	mc := model.LLMConfig{
		Provider:   "openai",
		Model:      "gpt-4o-mini",
		APIKey:     "key",
		Timeout:    45,
		MaxRetries: 2,
		MaxTokens:  500,
	}

	c := ConfigFromModel(mc)

	if c.Provider != "openai" || c.Model != "gpt-4o-mini" || c.APIKey != "key" {
		t.Errorf("Identity fields not carried over: %+v", c)
	}
	if c.Timeout != 45 || c.MaxRetries != 2 || c.MaxTokens != 500 {
		t.Errorf("Limit fields not carried over: %+v", c)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Provider != "" {
		t.Errorf("Expected provider to be empty (disabled), got '%s'", config.Provider)
	}
	if config.Timeout <= 0 {
		t.Error("Expected positive timeout")
	}
	if config.MaxTokens <= 0 {
		t.Error("Expected positive max tokens")
	}
	if config.MaxRetries <= 0 {
		t.Error("Expected positive retry budget")
	}
}

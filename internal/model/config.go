package model

import "time"

// Config holds the full runtime configuration. It is constructed once by
// the caller (CLI or test) and passed to every component that needs it;
// no component reads configuration from globals.
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Alert       AlertConfig       `yaml:"alert"`
	Store       StoreConfig       `yaml:"store"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig configures the optional language-model stages
type LLMConfig struct {
	Provider   string `yaml:"provider"` // openai, anthropic, ollama, "" = disabled
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key,omitempty"`
	BaseURL    string `yaml:"base_url,omitempty"`
	Timeout    int    `yaml:"timeout"` // seconds, per API call
	MaxRetries int    `yaml:"max_retries"`
	MaxTokens  int    `yaml:"max_tokens"`

	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
}

// PipelineConfig bounds one analysis run
type PipelineConfig struct {
	MaxTurns int           `yaml:"max_turns"` // stage-emission ceiling per run
	Timeout  time.Duration `yaml:"timeout"`
}

// AlertConfig configures the escalation dispatcher
type AlertConfig struct {
	FamilyContact string `yaml:"family_contact"`
	PoliceStation string `yaml:"police_station"`
	SeniorName    string `yaml:"senior_name"`
}

// StoreConfig configures result archiving
type StoreConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Dir      string        `yaml:"dir"`
	DedupTTL time.Duration `yaml:"dedup_ttl"`
}

// ConcurrencyConfig bounds batch processing and LLM call rates
type ConcurrencyConfig struct {
	Workers       int     `yaml:"workers"`
	ProviderRate  float64 `yaml:"provider_rate"` // requests/second per provider
	ProviderBurst int     `yaml:"provider_burst"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:   "", // LLM stages disabled by default
			Timeout:    30,
			MaxRetries: 3,
			MaxTokens:  1000,
		},
		Pipeline: PipelineConfig{
			MaxTurns: 8,
			Timeout:  2 * time.Minute,
		},
		Alert: AlertConfig{
			SeniorName: "the senior citizen",
		},
		Store: StoreConfig{
			Enabled:  true,
			Dir:      "",
			DedupTTL: 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:       4,
			ProviderRate:  2,
			ProviderBurst: 5,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

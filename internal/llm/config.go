// Package llm provides the text model boundary used by the summarizer and
// a local model server backend.
package llm

import "time"

// Provider represents a text model backend
type Provider string

// Provider constants define supported backends
const (
	// ProviderOllama is a local Ollama model server
	ProviderOllama Provider = "ollama"
	// ProviderNone disables inference; the summarizer passes items through
	ProviderNone Provider = "none"
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Endpoint    string
	Model       string
	Temperature float64
	NumPredict  int           // Upper bound on generated tokens per call
	HTTPTimeout time.Duration // Transport-level ceiling; per-call timeouts come from ctx
}

// DefaultConfig returns the default configuration (local Ollama)
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderOllama,
		Endpoint:    "http://127.0.0.1:11434",
		Model:       "llama3.2",
		Temperature: 0.1, // Low temperature for consistent output
		NumPredict:  256,
		HTTPTimeout: 2 * time.Minute,
	}
}

// WithModel returns a copy of the config using a different model
func (c *Config) WithModel(model string) *Config {
	next := *c
	next.Model = model
	return &next
}

// WithEndpoint returns a copy of the config using a different endpoint
func (c *Config) WithEndpoint(endpoint string) *Config {
	next := *c
	next.Endpoint = endpoint
	return &next
}

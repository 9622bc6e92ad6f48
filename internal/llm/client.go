package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// TextModel is the capability the summarizer needs from a model backend
type TextModel interface {
	// Generate runs instruction against text and returns the raw completion
	Generate(ctx context.Context, instruction, text string) (string, error)
}

// ModelFunc adapts an ordinary function to the TextModel interface
type ModelFunc func(ctx context.Context, instruction, text string) (string, error)

// Generate calls f(ctx, instruction, text)
func (f ModelFunc) Generate(ctx context.Context, instruction, text string) (string, error) {
	return f(ctx, instruction, text)
}

// NewClient creates a text model based on configuration.
// It returns a nil model and no error for ProviderNone.
func NewClient(config *Config) (TextModel, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderNone:
		return nil, nil
	case ProviderOllama, "":
		return NewOllamaClient(config)
	default:
		return nil, fmt.Errorf("unsupported model provider %q", config.Provider)
	}
}

// OllamaClient implements TextModel against a local Ollama server
type OllamaClient struct {
	endpoint string
	config   *Config
	client   *http.Client
}

// NewOllamaClient creates a client for a model server on this machine.
// Non-loopback endpoints are rejected: inference stays local.
func NewOllamaClient(config *Config) (*OllamaClient, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}
	endpoint := strings.TrimRight(config.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultConfig().Endpoint
	}
	if err := requireLoopback(endpoint); err != nil {
		return nil, err
	}

	return &OllamaClient{
		endpoint: endpoint,
		config:   config,
		client:   &http.Client{Timeout: config.HTTPTimeout},
	}, nil
}

// Generate sends a single non-streaming generate request
func (c *OllamaClient) Generate(ctx context.Context, instruction, text string) (string, error) {
	req := ollamaGenerateRequest{
		Model:  c.config.Model,
		System: instruction,
		Prompt: text,
		Stream: false,
		Options: ollamaOptions{
			Temperature: c.config.Temperature,
			NumPredict:  c.config.NumPredict,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", &InferenceFailure{Reason: ReasonBadResponse, Message: "failed to marshal request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &InferenceFailure{Reason: ReasonBadResponse, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		failure := Classify(err)
		if failure.Reason == ReasonModelError {
			failure.Reason = ReasonUnavailable
		}
		failure.Message = "ollama request failed"
		return "", failure
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		reason := ReasonBadResponse
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			reason = ReasonServer
		}
		return "", &InferenceFailure{
			Reason:  reason,
			Message: fmt.Sprintf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes))),
		}
	}

	var result ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &InferenceFailure{Reason: ReasonBadResponse, Message: "failed to decode response", Cause: err}
	}
	if result.Error != "" {
		return "", &InferenceFailure{Reason: ReasonModelError, Message: result.Error}
	}

	return result.Response, nil
}

// requireLoopback rejects endpoints that do not resolve to this machine by name
func requireLoopback(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid model endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid model endpoint %q: scheme must be http or https", endpoint)
	}

	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return nil
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return nil
	}
	return fmt.Errorf("model endpoint %q must be a loopback address: inference runs locally", endpoint)
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

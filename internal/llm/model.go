// Package llm adapts chat-completion backends to the single call the agents need.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sprout/internal/config"
	"time"
)

// Role is the speaker role of a message as seen by the model.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of model input. Name labels the speaker of a user
// turn in multi-party conversations and may be empty.
type Message struct {
	Role    Role
	Name    string
	Content string
}

// ChatModel produces the next assistant reply for a system prompt and history.
type ChatModel interface {
	Complete(ctx context.Context, system string, history []Message) (string, error)
}

// Options are shared by every backend.
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int64
	Temperature *float64
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// ErrEmptyReply is returned when the backend answers without any content choice.
var ErrEmptyReply = errors.New("model returned no reply")

// OptionsFromConfig maps application configuration onto backend options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
	}
}

// New builds the ChatModel for the configured provider.
func New(cfg *config.Config) (ChatModel, error) {
	opts := OptionsFromConfig(cfg)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIModel(opts), nil
	case config.ProviderAnthropic:
		return NewAnthropicModel(opts), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: o.Timeout}
}

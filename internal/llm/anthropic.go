package llm

import (
	"context"
	"fmt"
	"sprout/internal/logger"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicModel talks to the Messages API, either Anthropic's own or a local
// server that emulates it.
type AnthropicModel struct {
	client anthropic.Client
	opts   Options
}

// NewAnthropicModel creates a Messages API backed model.
func NewAnthropicModel(opts Options) *AnthropicModel {
	client := anthropic.NewClient(
		option.WithBaseURL(opts.BaseURL),
		option.WithAPIKey(opts.APIKey),
		option.WithHTTPClient(opts.httpClient()),
		option.WithMaxRetries(0),
	)
	return &AnthropicModel{client: client, opts: opts}
}

// Complete sends history with system as the system block and joins the text of the reply.
func (m *AnthropicModel) Complete(ctx context.Context, system string, history []Message) (string, error) {
	conversation := make([]anthropic.MessageParam, 0, len(history))
	for _, msg := range history {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == RoleAssistant {
			conversation = append(conversation, anthropic.NewAssistantMessage(block))
		} else {
			conversation = append(conversation, anthropic.NewUserMessage(block))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     m.opts.Model,
		MaxTokens: m.opts.MaxTokens,
		Messages:  conversation,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if m.opts.Temperature != nil {
		params.Temperature = anthropic.Float(*m.opts.Temperature)
	}

	logger.Ctx(ctx).Debug().
		Str("model", m.opts.Model).
		Int("messages", len(conversation)).
		Msg("Requesting message")

	message, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("messages: %w", err)
	}

	var parts []string
	for _, content := range message.Content {
		if content.Type == "text" {
			parts = append(parts, content.Text)
		}
	}
	if len(parts) == 0 {
		return "", ErrEmptyReply
	}
	return strings.Join(parts, ""), nil
}

package llm

import (
	"context"
	"fmt"
	"sprout/internal/logger"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIModel talks to any server that emulates the OpenAI chat-completions API,
// Ollama's /v1 endpoint included.
type OpenAIModel struct {
	client openai.Client
	opts   Options
}

// NewOpenAIModel creates a chat-completions backed model.
func NewOpenAIModel(opts Options) *OpenAIModel {
	client := openai.NewClient(
		option.WithBaseURL(opts.BaseURL),
		option.WithAPIKey(opts.APIKey),
		option.WithHTTPClient(opts.httpClient()),
		option.WithMaxRetries(0),
	)
	return &OpenAIModel{client: client, opts: opts}
}

// Complete sends the system message followed by history and returns the first choice.
func (m *OpenAIModel) Complete(ctx context.Context, system string, history []Message) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	for _, msg := range history {
		switch msg.Role {
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, userMessage(msg))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(m.opts.Model),
		Messages: messages,
	}
	if m.opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(m.opts.MaxTokens)
	}
	if m.opts.Temperature != nil {
		params.Temperature = openai.Float(*m.opts.Temperature)
	}

	logger.Ctx(ctx).Debug().
		Str("model", m.opts.Model).
		Int("messages", len(messages)).
		Msg("Requesting chat completion")

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}

func userMessage(msg Message) openai.ChatCompletionMessageParamUnion {
	if msg.Name == "" {
		return openai.UserMessage(msg.Content)
	}
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{OfString: openai.String(msg.Content)},
			Name:    openai.String(msg.Name),
		},
	}
}

package agent

import (
	"context"
	"sprout/internal/llm"
	"sprout/internal/logger"
)

// Message is one entry of a conversation transcript
type Message struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Transcript is the ordered message log of a conversation
type Transcript []Message

// Last returns the most recent message spoken by name
func (t Transcript) Last(name string) (Message, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Name == name {
			return t[i], true
		}
	}
	return Message{}, false
}

// From returns the messages whose speaker is one of names, in transcript order
func (t Transcript) From(names ...string) Transcript {
	allowed := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowed[n] = struct{}{}
	}
	out := Transcript{}
	for _, msg := range t {
		if _, ok := allowed[msg.Name]; ok {
			out = append(out, msg)
		}
	}
	return out
}

// Assistant is a model-backed persona: a name, a fixed instruction text and a model
type Assistant struct {
	name          string
	systemMessage string
	model         llm.ChatModel
}

// Config holds configuration options for creating a new Assistant
type Config struct {
	Name          string
	SystemMessage string
	Model         llm.ChatModel
}

// New creates a new Assistant with the provided configuration
func New(config Config) *Assistant {
	logger.Get().Debug().
		Str("agent", config.Name).
		Int("promptLength", len(config.SystemMessage)).
		Msg("Creating new agent")

	return &Assistant{
		name:          config.Name,
		systemMessage: config.SystemMessage,
		model:         config.Model,
	}
}

// Name returns the assistant's speaker label
func (a *Assistant) Name() string {
	return a.name
}

// SystemMessage returns the assistant's instruction text
func (a *Assistant) SystemMessage() string {
	return a.systemMessage
}

// Generate asks the model for the next reply. The assistant's own earlier
// messages are replayed as assistant turns, everyone else's as user turns
// labelled with the speaker's name.
func (a *Assistant) Generate(ctx context.Context, transcript Transcript) (string, bool, error) {
	reply, err := a.model.Complete(ctx, a.systemMessage, a.history(transcript))
	if err != nil {
		return "", false, err
	}
	return reply, true, nil
}

func (a *Assistant) history(transcript Transcript) []llm.Message {
	history := make([]llm.Message, 0, len(transcript))
	for _, msg := range transcript {
		if msg.Name == a.name {
			history = append(history, llm.Message{Role: llm.RoleAssistant, Content: msg.Content})
			continue
		}
		history = append(history, llm.Message{Role: llm.RoleUser, Name: msg.Name, Content: msg.Content})
	}
	return history
}

// UserProxy stands in for the human side of a conversation. It opens
// conversations but never replies on its own.
type UserProxy struct {
	name          string
	systemMessage string
}

// NewUserProxy creates a proxy participant
func NewUserProxy(name, systemMessage string) *UserProxy {
	return &UserProxy{name: name, systemMessage: systemMessage}
}

// Name returns the proxy's speaker label
func (u *UserProxy) Name() string {
	return u.name
}

// SystemMessage returns the proxy's self description
func (u *UserProxy) SystemMessage() string {
	return u.systemMessage
}

// Generate never produces a reply
func (u *UserProxy) Generate(context.Context, Transcript) (string, bool, error) {
	return "", false, nil
}

// ChatOnce sends a single message from sender to recipient and records the reply
func ChatOnce(ctx context.Context, sender Participant, message string, recipient Participant) (Transcript, error) {
	transcript := Transcript{{Name: sender.Name(), Content: message}}

	reply, ok, err := recipient.Generate(ctx, transcript)
	if err != nil {
		return transcript, &ErrAgentReply{Agent: recipient.Name(), Round: 1, Err: err}
	}
	if ok {
		transcript = append(transcript, Message{Name: recipient.Name(), Content: reply})
	}
	return transcript, nil
}

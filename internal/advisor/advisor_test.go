package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"sprout/internal/agent"
	"sprout/internal/config"
	"sprout/internal/llm"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	system  string
	history []llm.Message
}

// promptModel answers according to which system prompt it receives.
type promptModel struct {
	replies map[string]string
	errs    map[string]error
	calls   []call
}

func (m *promptModel) Complete(_ context.Context, system string, history []llm.Message) (string, error) {
	m.calls = append(m.calls, call{system: system, history: append([]llm.Message(nil), history...)})
	if err := m.errs[system]; err != nil {
		return "", err
	}
	return m.replies[system], nil
}

func (m *promptModel) systems() []string {
	out := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c.system)
	}
	return out
}

func newModel(classifierReply string) *promptModel {
	p := config.DefaultPrompts()
	return &promptModel{
		replies: map[string]string{
			p.Classifier:    classifierReply,
			p.BotanistFruit: "Rich in vitamin C.",
			p.BotanistPlant: "Water weekly, bright indirect light.",
			p.Chef:          "Try a tart.",
		},
		errs: map[string]error{},
	}
}

func TestCategoryFromReply(t *testing.T) {
	cases := map[string]Category{
		"plant":          CategoryPlant,
		"  Plant\n":      CategoryPlant,
		"\"PLANT\"":      CategoryPlant,
		"It is a plant.": CategoryPlant,
		"houseplant":     CategoryPlant,
		"fruit":          CategoryFruit,
		"vegetable":      CategoryFruit,
		"":               CategoryFruit,
		"I am not sure":  CategoryFruit,
		"plan t":         CategoryFruit,
	}
	for reply, want := range cases {
		assert.Equal(t, want, CategoryFromReply(reply), "reply %q", reply)
	}
}

func TestChat_PlantRoute(t *testing.T) {
	model := newModel("plant")
	prompts := config.DefaultPrompts()

	result, err := New(model, config.Prompts{}).Chat(context.Background(), "  Monstera ")
	require.NoError(t, err)

	assert.Equal(t, "Monstera", result.Name)
	assert.Equal(t, CategoryPlant, result.DetectedCategory)
	assert.Equal(t, []Reply{{Agent: BotanistName, Content: "Water weekly, bright indirect light."}}, result.Responses)
	assert.Equal(t, []string{prompts.Classifier, prompts.BotanistPlant}, model.systems())
}

func TestChat_FruitRoute(t *testing.T) {
	model := newModel("fruit")
	prompts := config.DefaultPrompts()

	result, err := New(model, config.Prompts{}).Chat(context.Background(), "Apple")
	require.NoError(t, err)

	assert.Equal(t, CategoryFruit, result.DetectedCategory)
	assert.Equal(t, []Reply{
		{Agent: BotanistName, Content: "Rich in vitamin C."},
		{Agent: MealPlannerName, Content: "Try a tart."},
	}, result.Responses)
	assert.Equal(t, []string{prompts.Classifier, prompts.BotanistFruit, prompts.Chef}, model.systems())

	// The meal planner can tell the botanist apart from the user.
	assert.Equal(t, []llm.Message{
		{Role: llm.RoleUser, Name: UserName, Content: "Tell me about: Apple."},
		{Role: llm.RoleUser, Name: BotanistName, Content: "Rich in vitamin C."},
	}, model.calls[2].history)
}

func TestChat_UnexpectedClassifierReplyDefaultsToFruit(t *testing.T) {
	model := newModel("Sorry, I cannot help with that")

	result, err := New(model, config.Prompts{}).Chat(context.Background(), "Basil")
	require.NoError(t, err)
	assert.Equal(t, CategoryFruit, result.DetectedCategory)
	assert.Len(t, result.Responses, 2)
}

func TestChat_SendsRawNameToClassifier(t *testing.T) {
	model := newModel("fruit")

	_, err := New(model, config.Prompts{}).Chat(context.Background(), "Kiwi")
	require.NoError(t, err)

	require.NotEmpty(t, model.calls)
	assert.Equal(t, []llm.Message{{Role: llm.RoleUser, Name: DetectorName, Content: "Kiwi"}}, model.calls[0].history)
	assert.Equal(t, []llm.Message{{Role: llm.RoleUser, Name: UserName, Content: "Tell me about: Kiwi."}}, model.calls[1].history)
}

func TestChat_BlankNameIsNotValidated(t *testing.T) {
	model := newModel("fruit")

	result, err := New(model, config.Prompts{}).Chat(context.Background(), "   ")
	require.NoError(t, err)

	assert.Equal(t, "", result.Name)
	assert.Equal(t, []llm.Message{{Role: llm.RoleUser, Name: DetectorName, Content: ""}}, model.calls[0].history)
	assert.Equal(t, "Tell me about: .", model.calls[1].history[0].Content)
}

func TestChat_ClassifierError(t *testing.T) {
	model := newModel("fruit")
	model.errs[config.DefaultPrompts().Classifier] = errors.New("connection refused")

	_, err := New(model, config.Prompts{}).Chat(context.Background(), "Apple")
	require.Error(t, err)

	var replyErr *agent.ErrAgentReply
	require.ErrorAs(t, err, &replyErr)
	assert.Equal(t, ClassifierName, replyErr.Agent)
	assert.Len(t, model.calls, 1)
}

func TestChat_ChefError(t *testing.T) {
	model := newModel("fruit")
	model.errs[config.DefaultPrompts().Chef] = errors.New("model crashed")

	_, err := New(model, config.Prompts{}).Chat(context.Background(), "Apple")
	var replyErr *agent.ErrAgentReply
	require.ErrorAs(t, err, &replyErr)
	assert.Equal(t, MealPlannerName, replyErr.Agent)
}

func TestFruitChat_NoClassification(t *testing.T) {
	model := newModel("plant")
	prompts := config.DefaultPrompts()

	result, err := New(model, config.Prompts{}).FruitChat(context.Background(), "Monstera")
	require.NoError(t, err)

	assert.Equal(t, "Monstera", result.Fruit)
	assert.Len(t, result.Responses, 2)
	assert.Equal(t, []string{prompts.BotanistFruit, prompts.Chef}, model.systems())
}

func TestFruitChat_EchoesItemAsFruit(t *testing.T) {
	result, err := New(newModel("fruit"), config.Prompts{}).FruitChat(context.Background(), " Apple ")
	require.NoError(t, err)

	body, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"fruit": "Apple",
		"responses": [
			{"agent": "Botanist", "content": "Rich in vitamin C."},
			{"agent": "MealPlanner", "content": "Try a tart."}
		]
	}`, string(body))
}

func TestConversation_Rosters(t *testing.T) {
	a := New(newModel(""), config.Prompts{})

	user, chat := a.Conversation(CategoryPlant)
	assert.Equal(t, UserName, user.Name())
	assert.Equal(t, PlantRounds, chat.MaxRound)
	require.Len(t, chat.Participants, 2)
	assert.Equal(t, BotanistName, chat.Participants[1].Name())
	assert.Equal(t, config.DefaultPrompts().BotanistPlant, chat.Participants[1].(*agent.Assistant).SystemMessage())

	_, chat = a.Conversation(CategoryFruit)
	assert.Equal(t, FruitRounds, chat.MaxRound)
	require.Len(t, chat.Participants, 3)
	assert.Equal(t, UserName, chat.Participants[0].Name())
	assert.Equal(t, BotanistName, chat.Participants[1].Name())
	assert.Equal(t, MealPlannerName, chat.Participants[2].Name())
	assert.Equal(t, config.DefaultPrompts().BotanistFruit, chat.Participants[1].(*agent.Assistant).SystemMessage())
}

func TestNew_PromptOverrides(t *testing.T) {
	model := newModel("fruit")
	model.replies["Only desserts."] = "Sorbet."

	result, err := New(model, config.Prompts{Chef: "Only desserts."}).FruitChat(context.Background(), "Mango")
	require.NoError(t, err)
	assert.Equal(t, "Sorbet.", result.Responses[1].Content)
}

func TestExtract(t *testing.T) {
	transcript := agent.Transcript{
		{Name: UserName, Content: "Tell me about: Apple."},
		{Name: BotanistName, Content: "b"},
		{Name: ClassifierName, Content: "fruit"},
		{Name: MealPlannerName, Content: "m"},
	}
	assert.Equal(t, []Reply{
		{Agent: BotanistName, Content: "b"},
		{Agent: MealPlannerName, Content: "m"},
	}, Extract(transcript))

	assert.Equal(t, []Reply{}, Extract(agent.Transcript{{Name: UserName, Content: "hi"}}))
}

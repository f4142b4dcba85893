// Package advisor turns a produce or plant name into expert commentary by
// classifying it and running the matching scripted conversation.
package advisor

import (
	"context"
	"fmt"
	"sprout/internal/agent"
	"sprout/internal/config"
	"sprout/internal/llm"
	"sprout/internal/logger"
	"strings"
)

// Category is the branch a name is routed to.
type Category string

const (
	CategoryFruit Category = "fruit"
	CategoryPlant Category = "plant"
)

// Speaker names as they appear in transcripts.
const (
	ClassifierName  = "Classifier"
	DetectorName    = "User_Detector"
	UserName        = "User"
	BotanistName    = "Botanist"
	MealPlannerName = "MealPlanner"
)

// Round budgets per category; the opening message counts as a round.
const (
	FruitRounds = 3
	PlantRounds = 2
)

// Experts lists the speakers whose messages are returned to callers.
var Experts = []string{BotanistName, MealPlannerName}

// Reply is one expert message in a response.
type Reply struct {
	Agent   string `json:"agent" jsonschema:"enum=Botanist,enum=MealPlanner"`
	Content string `json:"content"`
}

// Result is the outcome of one advisory request.
type Result struct {
	Name             string   `json:"name"`
	DetectedCategory Category `json:"detected_category,omitempty" jsonschema:"enum=fruit,enum=plant"`
	Responses        []Reply  `json:"responses"`
}

// FruitResult is the outcome of a fruit-only advisory. The item is echoed
// under "fruit".
type FruitResult struct {
	Fruit     string  `json:"fruit"`
	Responses []Reply `json:"responses"`
}

// Advisor holds the immutable prompt set and model shared by every request.
type Advisor struct {
	model   llm.ChatModel
	prompts config.Prompts
}

// New creates an Advisor. Blank prompts fall back to the built-in texts.
func New(model llm.ChatModel, prompts config.Prompts) *Advisor {
	return &Advisor{model: model, prompts: config.DefaultPrompts().Merge(prompts)}
}

// Chat classifies name and then runs the conversation for its category.
func (a *Advisor) Chat(ctx context.Context, name string) (*Result, error) {
	name = strings.TrimSpace(name)

	category, err := a.Classify(ctx, name)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Debug().Str("item", name).Str("category", string(category)).Msg("Item classified")

	responses, err := a.Consult(ctx, name, category)
	if err != nil {
		return nil, err
	}
	return &Result{Name: name, DetectedCategory: category, Responses: responses}, nil
}

// FruitChat skips classification and always consults the botanist and the meal planner.
func (a *Advisor) FruitChat(ctx context.Context, name string) (*FruitResult, error) {
	name = strings.TrimSpace(name)

	responses, err := a.Consult(ctx, name, CategoryFruit)
	if err != nil {
		return nil, err
	}
	return &FruitResult{Fruit: name, Responses: responses}, nil
}

// Classify sends name to the classifier agent and interprets its answer.
func (a *Advisor) Classify(ctx context.Context, name string) (Category, error) {
	detector := agent.NewUserProxy(DetectorName, "")
	classifier := agent.New(agent.Config{
		Name:          ClassifierName,
		SystemMessage: a.prompts.Classifier,
		Model:         a.model,
	})

	transcript, err := agent.ChatOnce(ctx, detector, name, classifier)
	if err != nil {
		return "", fmt.Errorf("classify %q: %w", name, err)
	}

	var answer string
	if last, ok := transcript.Last(ClassifierName); ok {
		answer = last.Content
	}
	return CategoryFromReply(answer), nil
}

// CategoryFromReply maps a classifier answer onto a category. Anything that
// does not mention "plant" is treated as fruit.
func CategoryFromReply(reply string) Category {
	if strings.Contains(strings.ToLower(strings.TrimSpace(reply)), string(CategoryPlant)) {
		return CategoryPlant
	}
	return CategoryFruit
}

// Consult runs the scripted conversation for category and returns the expert replies.
func (a *Advisor) Consult(ctx context.Context, name string, category Category) ([]Reply, error) {
	user, chat := a.Conversation(category)

	transcript, err := chat.Run(ctx, user, OpeningMessage(name))
	if err != nil {
		return nil, fmt.Errorf("consult on %q: %w", name, err)
	}
	return Extract(transcript), nil
}

// Conversation assembles the participants and round budget for category.
func (a *Advisor) Conversation(category Category) (agent.Participant, *agent.GroupChat) {
	user := agent.NewUserProxy(UserName, a.prompts.User)

	if category == CategoryPlant {
		botanist := agent.New(agent.Config{
			Name:          BotanistName,
			SystemMessage: a.prompts.BotanistPlant,
			Model:         a.model,
		})
		return user, agent.NewGroupChat(PlantRounds, user, botanist)
	}

	botanist := agent.New(agent.Config{
		Name:          BotanistName,
		SystemMessage: a.prompts.BotanistFruit,
		Model:         a.model,
	})
	chef := agent.New(agent.Config{
		Name:          MealPlannerName,
		SystemMessage: a.prompts.Chef,
		Model:         a.model,
	})
	return user, agent.NewGroupChat(FruitRounds, user, botanist, chef)
}

// OpeningMessage is what the user proxy says to start a conversation.
func OpeningMessage(name string) string {
	return fmt.Sprintf("Tell me about: %s.", name)
}

// Extract keeps the expert messages of transcript in order.
func Extract(transcript agent.Transcript) []Reply {
	experts := transcript.From(Experts...)
	replies := make([]Reply, 0, len(experts))
	for _, msg := range experts {
		replies = append(replies, Reply{Agent: msg.Name, Content: msg.Content})
	}
	return replies
}

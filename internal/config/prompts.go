package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prompts holds the instruction text for every scripted participant.
type Prompts struct {
	Classifier    string `yaml:"classifier"`
	BotanistFruit string `yaml:"botanist_fruit"`
	BotanistPlant string `yaml:"botanist_plant"`
	Chef          string `yaml:"chef"`
	User          string `yaml:"user"`
}

const classifierPrompt = `
You are a classification tool.
Analyze the user input.
If it is an edible fruit, vegetable, or herb used in cooking, reply EXACTLY: "fruit".
If it is a houseplant, flower, or decorative tree, reply EXACTLY: "plant".
Do not write anything else. No punctuation.
`

const botanistFruitPrompt = `
You are a Botanical Expert regarding edible plants.
Give:
    1. Brief Nutritional value (Calories/Vitamins).
    2. One expert tip on how to preserve it.
    3. One fun fact.
Stay under 60 words.
`

const botanistPlantPrompt = `
You are a Houseplant Expert.
Give:
    1. Watering requirements (frequency).
    2. Light requirements (direct/indirect).
    3. Soil recommendation.
    4. One common mistake to avoid.
Stay under 60 words.
`

const chefPrompt = `
You are a culinary chef.
Give:
    1. A simple recipe idea.
    2. A quick menu suggestion (Starter/Main/Dessert).
Keep answers concise.
`

const userPrompt = "A user asking for information."

// DefaultPrompts returns the built-in prompt set.
func DefaultPrompts() Prompts {
	return Prompts{
		Classifier:    classifierPrompt,
		BotanistFruit: botanistFruitPrompt,
		BotanistPlant: botanistPlantPrompt,
		Chef:          chefPrompt,
		User:          userPrompt,
	}
}

// Merge returns p with every non-blank field of o applied on top.
func (p Prompts) Merge(o Prompts) Prompts {
	pick := func(base, override string) string {
		if strings.TrimSpace(override) == "" {
			return base
		}
		return override
	}
	return Prompts{
		Classifier:    pick(p.Classifier, o.Classifier),
		BotanistFruit: pick(p.BotanistFruit, o.BotanistFruit),
		BotanistPlant: pick(p.BotanistPlant, o.BotanistPlant),
		Chef:          pick(p.Chef, o.Chef),
		User:          pick(p.User, o.User),
	}
}

// LoadPrompts reads prompt overrides from a YAML file.
func LoadPrompts(path string) (Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Prompts{}, fmt.Errorf("read prompts file: %w", err)
	}
	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prompts{}, fmt.Errorf("parse prompts file %s: %w", path, err)
	}
	return p, nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"sprout/internal/advisor"
	"sprout/internal/config"
	"sprout/internal/llm"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadlineModel answers every agent and records whether calls carried a deadline.
type deadlineModel struct {
	deadlines []bool
}

func (m *deadlineModel) Complete(ctx context.Context, system string, _ []llm.Message) (string, error) {
	_, ok := ctx.Deadline()
	m.deadlines = append(m.deadlines, ok)
	if system == config.DefaultPrompts().Classifier {
		return "fruit", nil
	}
	return "ok", nil
}

func TestAsk_LeavesDeadlinesToModelCalls(t *testing.T) {
	model := &deadlineModel{}
	var out bytes.Buffer

	require.NoError(t, ask(context.Background(), advisor.New(model, config.Prompts{}), "Apple", false, &out))

	assert.Equal(t, []bool{false, false, false}, model.deadlines)

	var result advisor.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "Apple", result.Name)
	assert.Len(t, result.Responses, 2)
}

func TestAsk_FruitPrintsFruitField(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, ask(context.Background(), advisor.New(&deadlineModel{}, config.Prompts{}), "Pear", true, &out))

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "Pear", result["fruit"])
	assert.NotContains(t, result, "detected_category")
}

package generation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"volunteer-matching-be/pkg/llm"
)

// ErrGeneration is returned when the chat completion provider fails. The turn
// cannot be salvaged at this point, callers surface a stable failure reply.
var ErrGeneration = errors.New("generation: completion failed")

// Generator builds the grounded prompt and runs the completion call
type Generator struct {
	llmProvider llm.LLMProvider
	policy      string
	logger      *log.Logger
}

// NewGenerator creates a generator bound to a policy text. The policy is
// configuration, not logic: revising it must not require code changes here.
func NewGenerator(llmProvider llm.LLMProvider, policy string, logger *log.Logger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		policy:      policy,
		logger:      logger,
	}
}

// Generate sends the conversation with a freshly built system message and
// returns the raw completion. Any system messages already present in history
// are dropped so exactly one system message reaches the provider. No retry.
func (g *Generator) Generate(ctx context.Context, history []llm.Message, contextBlock string) (string, error) {
	systemMessage := llm.Message{
		Role:    "system",
		Content: fmt.Sprintf("%s\n\n関連イベント情報:\n%s", g.policy, contextBlock),
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, systemMessage)
	for _, msg := range history {
		if msg.Role == "system" {
			continue
		}
		messages = append(messages, llm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	response, err := g.llmProvider.Chat(ctx, messages)
	if err != nil {
		g.logger.Printf("[ERROR] LLM generation failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return response, nil
}

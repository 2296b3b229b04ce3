package advisor

import (
	"context"
	"log"
	"strings"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/pkg/advisor/contextbuild"
	"volunteer-matching-be/pkg/advisor/generation"
	"volunteer-matching-be/pkg/advisor/parse"
	"volunteer-matching-be/pkg/advisor/retrieval"
	"volunteer-matching-be/pkg/llm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Sentinel errors of the pipeline, re-exported for callers so they can match
// with errors.Is without importing the stage packages.
var (
	ErrEmptyQuery = retrieval.ErrEmptyQuery
	ErrGeneration = generation.ErrGeneration
)

// Message is one conversation turn as submitted by the client. Extras carries
// side-channel data attached to earlier assistant turns (shown events,
// suggested options); it never reaches the completion provider.
type Message struct {
	Role    string
	Content string
	Extras  map[string]any
}

// TurnResult is the outcome of one advisor turn
type TurnResult struct {
	Prose             string
	Options           []string
	SupportingRecords []*entity.Event
}

// Advisor runs the full conversation turn pipeline:
// retrieve -> assemble -> generate -> parse
type Advisor struct {
	retriever *retrieval.Retriever
	generator *generation.Generator
	parser    *parse.Parser
	logger    *log.Logger
}

func New(retriever *retrieval.Retriever, generator *generation.Generator, logger *log.Logger) *Advisor {
	return &Advisor{
		retriever: retriever,
		generator: generator,
		parser:    parse.NewParser(logger),
		logger:    logger,
	}
}

// HandleTurn answers the latest user message in history. Retrieval problems
// degrade to an answer without event context; a completion failure aborts the
// turn with ErrGeneration.
func (a *Advisor) HandleTurn(ctx context.Context, history []Message) (*TurnResult, error) {
	query := latestUserQuery(history)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	candidates, err := a.retriever.Retrieve(ctx, query, 0)
	if err != nil {
		a.logger.Printf("[WARN] Retrieval failed, answering without event context: %v", err)
		candidates = nil
	}

	contextBlock := contextbuild.Assemble(candidates)

	completion, err := a.generator.Generate(ctx, toProviderHistory(history), contextBlock)
	if err != nil {
		return nil, err
	}

	reply := a.parser.Parse(completion)

	return &TurnResult{
		Prose:             reply.Prose,
		Options:           reply.Options,
		SupportingRecords: supportingRecords(candidates),
	}, nil
}

func latestUserQuery(history []Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser {
			return strings.TrimSpace(history[i].Content)
		}
	}
	return ""
}

// toProviderHistory narrows messages to role and content. Extras stay behind.
func toProviderHistory(history []Message) []llm.Message {
	messages := make([]llm.Message, 0, len(history))
	for _, msg := range history {
		messages = append(messages, llm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return messages
}

func supportingRecords(candidates []retrieval.Candidate) []*entity.Event {
	records := make([]*entity.Event, 0, len(candidates))
	for _, c := range candidates {
		if c.Event != nil {
			records = append(records, c.Event)
		}
	}
	return records
}

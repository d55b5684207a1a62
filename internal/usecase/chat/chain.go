package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
	"github.com/johnquangdev/video-chat/pkg/ai"
)

// DefaultTopK is the number of chunks retrieved per question
const DefaultTopK = 4

// Completer produces a chat completion
type Completer interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (string, error)
}

// Retriever returns the k passages most similar to query
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]entities.Passage, error)
}

// Session answers questions over one indexed video
type Session interface {
	Answer(ctx context.Context, history []entities.ChatTurn, question string) (string, error)
}

// Options tunes the retrieval chain
type Options struct {
	TopK         int
	Temperature  *float32 // nil keeps the completer default, zero is sent as is
	MaxTokens    int      // zero keeps the completer default
	SystemPrompt string
}

func (o Options) withDefaults() Options {
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.SystemPrompt == "" {
		o.SystemPrompt = defaultSystemPrompt
	}
	return o
}

// Chain is a conversational retrieval chain: condense, retrieve, answer
type Chain struct {
	completer Completer
	retriever Retriever
	opts      Options
	logger    *zap.Logger
}

// NewChain creates a chain over one retriever
func NewChain(completer Completer, retriever Retriever, opts Options, logger *zap.Logger) *Chain {
	return &Chain{
		completer: completer,
		retriever: retriever,
		opts:      opts.withDefaults(),
		logger:    logger,
	}
}

// Answer answers question given the prior turns of the conversation
func (c *Chain) Answer(ctx context.Context, history []entities.ChatTurn, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", entities.ErrEmptyQuestion
	}

	standalone, err := c.condense(ctx, history, question)
	if err != nil {
		return "", err
	}

	passages, err := c.retriever.Retrieve(ctx, standalone, c.opts.TopK)
	if err != nil {
		return "", fmt.Errorf("retrieve: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug("retrieved passages",
			zap.String("question", standalone),
			zap.Int("passage_count", len(passages)),
		)
	}

	answer, err := c.complete(ctx,
		ai.ChatMessage{Role: ai.RoleSystem, Content: c.opts.SystemPrompt},
		ai.ChatMessage{Role: ai.RoleUser, Content: fmt.Sprintf(answerPrompt, FormatPassages(passages), standalone)},
	)
	if err != nil {
		return "", fmt.Errorf("answer: %w", err)
	}
	if answer == "" {
		return "", errors.New("answer: empty completion")
	}
	return answer, nil
}

// condense rewrites a follow-up into a standalone question; without history it is a no-op
func (c *Chain) condense(ctx context.Context, history []entities.ChatTurn, question string) (string, error) {
	if len(history) == 0 {
		return question, nil
	}

	rewritten, err := c.complete(ctx, ai.ChatMessage{
		Role:    ai.RoleUser,
		Content: fmt.Sprintf(condensePrompt, FormatHistory(history), question),
	})
	if err != nil {
		return "", fmt.Errorf("condense question: %w", err)
	}
	if rewritten == "" {
		return question, nil
	}
	return rewritten, nil
}

func (c *Chain) complete(ctx context.Context, messages ...ai.ChatMessage) (string, error) {
	out, err := c.completer.Complete(ctx, ai.CompletionRequest{
		Messages:    messages,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// FormatHistory renders turns as Human/Assistant lines
func FormatHistory(history []entities.ChatTurn) string {
	var sb strings.Builder
	for _, turn := range history {
		speaker := "Human"
		if turn.Role == entities.RoleAssistant {
			speaker = "Assistant"
		}
		fmt.Fprintf(&sb, "%s: %s\n", speaker, turn.Content)
	}
	return sb.String()
}

// FormatPassages renders passages as "[HH:MM:SS] text" blocks
func FormatPassages(passages []entities.Passage) string {
	var sb strings.Builder
	for _, p := range passages {
		fmt.Fprintf(&sb, "[%s] %s\n\n", p.Source, strings.TrimSpace(p.Text))
	}
	return sb.String()
}

// Starter opens a chain for each freshly built index
type Starter struct {
	completer Completer
	opts      Options
	logger    *zap.Logger
}

// NewStarter creates a Starter sharing one completer across sessions
func NewStarter(completer Completer, opts Options, logger *zap.Logger) *Starter {
	return &Starter{completer: completer, opts: opts, logger: logger}
}

// Start binds a new chain to retriever
func (s *Starter) Start(_ context.Context, retriever Retriever) (Session, error) {
	if s.completer == nil {
		return nil, errors.New("no chat model configured")
	}
	if retriever == nil {
		return nil, errors.New("no retriever")
	}
	return NewChain(s.completer, retriever, s.opts, s.logger), nil
}

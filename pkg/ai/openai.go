package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/johnquangdev/video-chat/pkg/config"
)

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat message roles
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// CompletionRequest is the input of ChatClient.Complete
type CompletionRequest struct {
	Messages    []ChatMessage
	Temperature *float32 // nil keeps the client temperature
	MaxTokens   int
}

// ChatClient calls an OpenAI-compatible chat completion endpoint (OpenAI, Groq, local servers)
type ChatClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewChatClient creates a chat client from the LLM config
func NewChatClient(cfg config.LLMConfig) *ChatClient {
	return &ChatClient{
		client:      newOpenAIClient(cfg.APIKey, cfg.BaseURL),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Complete sends the messages and returns the first choice content.
// A nil temperature or zero max tokens in req fall back to the client defaults.
func (c *ChatClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("no messages to send")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	temperature := c.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	// go-openai drops a zero temperature from the request body
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", describeAPIError("chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", c.model)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// EmbeddingClient calls an OpenAI-compatible embeddings endpoint
type EmbeddingClient struct {
	client    *openai.Client
	model     string
	batchSize int
}

// NewEmbeddingClient creates an embeddings client from the embedding config
func NewEmbeddingClient(cfg config.EmbeddingConfig) *EmbeddingClient {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 64
	}
	return &EmbeddingClient{
		client:    newOpenAIClient(cfg.APIKey, cfg.BaseURL),
		model:     cfg.Model,
		batchSize: batch,
	}
}

// Model returns the embedding model name
func (c *EmbeddingClient) Model() string {
	return c.model
}

// Embed returns one vector per input text, in input order
func (c *EmbeddingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := min(start+c.batchSize, len(texts))

		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: texts[start:end],
			Model: openai.EmbeddingModel(c.model),
		})
		if err != nil {
			return nil, describeAPIError("embeddings", err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("embeddings: got %d vectors for %d inputs", len(resp.Data), end-start)
		}
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= end-start {
				return nil, fmt.Errorf("embeddings: index %d out of range", d.Index)
			}
			out[start+d.Index] = d.Embedding
		}
	}
	return out, nil
}

func newOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return openai.NewClientWithConfig(cfg)
}

func describeAPIError(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: status %d: %w", op, apiErr.HTTPStatusCode, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

package engine

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"wallet-advisor/internal/resilience"
)

// LLMClient defines the interface for LLM completion used to narrate
// recommendation explanations.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient implements LLMClient using the OpenAI API.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	breaker *resilience.CircuitBreaker
}

// NewOpenAIClient creates a new OpenAI LLM client.
func NewOpenAIClient(apiKey string, model string) *OpenAIClient {
	return &OpenAIClient{
		client:  openai.NewClient(apiKey),
		model:   model,
		breaker: resilience.NewCircuitBreaker("openai", resilience.DefaultConfig()),
	}
}

// Complete sends a prompt to the LLM and returns the response.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	return resilience.ExecuteWithResult(c.breaker, func() (string, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return "", fmt.Errorf("openai completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response from openai")
		}
		return resp.Choices[0].Message.Content, nil
	})
}

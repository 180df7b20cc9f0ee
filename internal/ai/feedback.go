package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

const critiqueTimeout = 15 * time.Second

// Client generates tutor feedback and a corrected rewrite for a transcript
type Client struct {
	client *openai.Client
}

// NewClient creates a new feedback client on top of an OpenAI API client
func NewClient(c *openai.Client) *Client {
	return &Client{client: c}
}

// Critique asks the model to review the transcript and parses its two-section
// response. Either both fields are produced (possibly via fallback) or the
// whole call fails.
func (c *Client) Critique(ctx context.Context, transcript string) (*Critique, error) {
	systemPrompt, userPrompt := BuildPrompt(transcript)

	ctx, cancel := context.WithTimeout(ctx, critiqueTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("feedback completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("feedback completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	log.Printf("[feedback] completion received: %d characters", len(content))

	return ParseCritique(transcript, content), nil
}

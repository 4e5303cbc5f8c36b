package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Cleaner cleans transcripts with an OpenAI chat model
type Cleaner struct {
	client *openai.Client
	model  string
}

// NewCleaner creates a chat-completion cleaner
func NewCleaner(client *openai.Client, model string) *Cleaner {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Cleaner{client: client, model: model}
}

// Clean sends systemPrompt as the system message and text as the user
// message, returning the first choice.
func (c *Cleaner) Clean(ctx context.Context, text, systemPrompt string) (string, error) {
	request := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("createChatCompletion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

type IInsight interface {
	GenerateSpendingInsight(ctx context.Context, summaryJSON string) (string, error)
}

type insightService struct {
	client *openai.Client
	model  string
}

func NewInsight() IInsight {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT4oMini
	}

	return &insightService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *insightService) GenerateSpendingInsight(ctx context.Context, summaryJSON string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleSystem,
			Content: `You are SpendScan's budgeting assistant. You receive a JSON summary of a user's expenses for the current month (total, record count, top category, per-day amounts).

Rules:
- Reply with 2-3 short, concrete budgeting recommendations based on the numbers.
- Mention the top spending category by name.
- Amounts are in PKR; format them with thousands separators.
- Plain text only, no markdown, no JSON.`,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: summaryJSON,
		},
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0.7,
			MaxTokens:   250,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
	model  string
}

// TaskDraft is a suggested task listing.
type TaskDraft struct {
	Title         string `json:"title"`
	Detail        string `json:"detail"`
	Quantity      int64  `json:"quantity"`
	PayableAmount int64  `json:"payable_amount"`
}

// NewAIService creates the drafting client. baseURL is empty outside tests.
func NewAIService(apiKey, baseURL string) *AIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4oMini,
	}
}

// DraftTask turns a buyer's short brief into a task listing suggestion
func (s *AIService) DraftTask(ctx context.Context, brief string) (*TaskDraft, error) {
	if s == nil || s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}

	prompt := fmt.Sprintf(`You write listings for a microtask marketplace where workers are paid in coins.
Turn the buyer's brief into one task listing.

Brief:
%s

Reply with a single JSON object:
{
  "title": "short imperative title",
  "detail": "step-by-step instructions and what proof the worker must submit",
  "quantity": number of workers needed (integer, at least 1),
  "payable_amount": coins paid per approved submission (integer, at least 1)
}

Reply with JSON only.`, brief)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var draft TaskDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, fmt.Errorf("%w: %v (response: %s)", ErrAINoValidDraft, err, content)
	}
	if draft.Title == "" || draft.Quantity <= 0 || draft.PayableAmount <= 0 {
		return nil, fmt.Errorf("%w (response: %s)", ErrAINoValidDraft, content)
	}

	return &draft, nil
}

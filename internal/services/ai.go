package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// TaskDraft is an onboarding task proposed by the model. It is not sent to
// the backend until an admin creates it.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithBaseURL points the client at an OpenAI-compatible endpoint.
func NewAIServiceWithBaseURL(apiKey, baseURL string) *AIService {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
	}
}

// GenerateTaskDrafts turns free text such as an onboarding plan or welcome
// email into task drafts using OpenAI GPT.
func (s *AIService) GenerateTaskDrafts(ctx context.Context, text string, now time.Time) ([]TaskDraft, error) {
	if s == nil || s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}

	prompt := fmt.Sprintf(`You help HR administrators plan employee onboarding. Extract the concrete onboarding tasks a new employee must complete from the text below.

Current time: %s

Text:
%s

Return a JSON array of tasks in this shape:
[
  {
    "title": "Short task title",
    "description": "What the employee has to do",
    "dueDate": "Deadline in ISO8601, e.g. 2025-10-28T23:59:59Z, or null when none is given"
  }
]

Rules:
- Return [] when the text contains no tasks
- Turn relative deadlines ("tomorrow", "by the end of week one") into concrete timestamps
- dueDate must be an ISO8601 string or null
- Return only JSON, no commentary`, now.Format(time.RFC3339), text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
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

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var drafts []TaskDraft
	if err := sonic.UnmarshalString(content, &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return drafts, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block if present.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimPrefix(content, "json")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

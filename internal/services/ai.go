package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// completionClient is the slice of the OpenAI client the service needs.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AIService extracts task suggestions from free-form text using OpenAI.
type AIService struct {
	client completionClient
}

// GeneratedTask is a task suggestion produced from text. Suggestions are not
// persisted; the caller reviews them and creates real tasks explicitly.
type GeneratedTask struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewAIService creates a new AIService.
func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateTasksFromText analyzes text and extracts task suggestions.
func (s *AIService) GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a task extraction assistant. Extract concrete, actionable tasks from the text below.

Text:
%s

Return a JSON array of the extracted tasks in this shape:
[
  {
    "name": "short task name",
    "description": "what needs to be done, in one or two sentences"
  }
]

Rules:
- Return an empty array [] when the text contains no tasks
- Keep names under 80 characters
- Return JSON only, no surrounding prose`, text)

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

	content := resp.Choices[0].Message.Content

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rahafha1/project-manager-api/internal/constants"
	"github.com/rahafha1/project-manager-api/internal/metrics"
	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker/v2"
)

// ChatCompleter is the part of the OpenAI client the AI service uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// SuggestedTask is a task proposed by the model. It is never persisted.
type SuggestedTask struct {
	Title       string
	Description string
	DueDate     *time.Time
}

type aiTask struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
}

type AIService struct {
	client  ChatCompleter
	breaker *gobreaker.CircuitBreaker[[]SuggestedTask]
	now     func() time.Time
}

// NewAIService returns nil when no API key is configured.
func NewAIService(apiKey string) *AIService {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	return NewAIServiceWithClient(openai.NewClient(apiKey))
}

// NewAIServiceWithClient wraps client in a circuit breaker that opens after
// five consecutive failures.
func NewAIServiceWithClient(client ChatCompleter) *AIService {
	return &AIService{
		client: client,
		breaker: gobreaker.NewCircuitBreaker[[]SuggestedTask](gobreaker.Settings{
			Name:        "openai",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: breakerSuccess,
		}),
		now: time.Now,
	}
}

// breakerSuccess keeps unusable model output and caller cancellation from
// counting against the upstream.
func breakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, ErrAINoTasksGenerated) ||
		errors.Is(err, context.Canceled)
}

// SuggestTasks extracts tasks from free text.
func (s *AIService) SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error) {
	tasks, err := s.breaker.Execute(func() ([]SuggestedTask, error) {
		return s.complete(ctx, text)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordAIRequest("rejected")
		return nil, ErrAIUnavailable
	case errors.Is(err, ErrAINoTasksGenerated):
		metrics.RecordAIRequest("unusable")
		return nil, err
	case err != nil:
		metrics.RecordAIRequest("error")
		return nil, err
	}
	metrics.RecordAIRequest("ok")
	return tasks, nil
}

func (s *AIService) complete(ctx context.Context, text string) ([]SuggestedTask, error) {
	today := s.now().UTC().Format(constants.DateLayout)
	prompt := fmt.Sprintf(`You extract concrete tasks from text.

Today: %s

Text:
%s

Reply with a JSON array only, no prose:
[
  {
    "title": "short task title (at most 100 characters)",
    "description": "task details",
    "due_date": "YYYY-MM-DD, or null when the text gives no deadline"
  }
]

Rules:
- Return [] when there are no tasks
- Resolve relative deadlines ("tomorrow", "next week") against today`, today, text)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrAINoTasksGenerated)
	}

	return parseSuggestions(resp.Choices[0].Message.Content)
}

// parseSuggestions decodes the model output, tolerating a markdown code fence.
func parseSuggestions(content string) ([]SuggestedTask, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var raw []aiTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil {
		return nil, fmt.Errorf("%w: unparseable response: %v", ErrAINoTasksGenerated, err)
	}

	tasks := make([]SuggestedTask, 0, len(raw))
	for _, r := range raw {
		task := SuggestedTask{
			Title:       strings.TrimSpace(r.Title),
			Description: strings.TrimSpace(r.Description),
		}
		if r.DueDate != nil {
			task.DueDate = parseDueDate(*r.DueDate)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// parseDueDate accepts a plain date or an RFC 3339 timestamp and keeps the
// calendar date. Anything else is dropped.
func parseDueDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(constants.DateLayout, value); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &day
	}
	return nil
}

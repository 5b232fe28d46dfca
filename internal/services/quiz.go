package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mockmate/interview-api/internal/models"
)

type QuizService interface {
	Generate(ctx context.Context, topic string) ([]models.QuizQuestion, error)
}

type quizService struct {
	completion CompletionService
	prompts    *PromptBuilder
}

func NewQuizService(completion CompletionService, prompts *PromptBuilder) QuizService {
	return &quizService{
		completion: completion,
		prompts:    prompts,
	}
}

// Generate implements QuizService.
func (s *quizService) Generate(ctx context.Context, topic string) ([]models.QuizQuestion, error) {
	content, err := s.completion.Complete(ctx, CompletionRequest{
		System:      "You are an expert DevOps quiz generator.",
		Prompt:      s.prompts.BuildQuizPrompt(topic),
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	cleaned, err := CleanQuizJSON(content)
	if err != nil {
		return nil, err
	}

	var quiz []models.QuizQuestion
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return nil, fmt.Errorf("failed to parse quiz JSON: %w", err)
	}

	return quiz, nil
}

// CleanQuizJSON strips markdown fences, smart punctuation and any prose
// around the outermost JSON array. The model is asked for bare JSON but
// wraps it often enough that this cleanup is load-bearing.
func CleanQuizJSON(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	replacer := strings.NewReplacer(
		`\_`, "_",
		"’", "'",
		"“", `"`,
		"”", `"`,
	)
	cleaned = replacer.Replace(cleaned)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no valid JSON array found in response")
	}

	return cleaned[start : end+1], nil
}

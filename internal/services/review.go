package services

import (
	"context"
	"fmt"
)

type ReviewService interface {
	Review(ctx context.Context, resumeText, role string) (string, error)
}

type reviewService struct {
	completion CompletionService
	prompts    *PromptBuilder
}

func NewReviewService(completion CompletionService, prompts *PromptBuilder) ReviewService {
	return &reviewService{
		completion: completion,
		prompts:    prompts,
	}
}

// Review implements ReviewService.
func (s *reviewService) Review(ctx context.Context, resumeText, role string) (string, error) {
	feedback, err := s.completion.Complete(ctx, CompletionRequest{
		System:      "You are a resume reviewer.",
		Prompt:      s.prompts.BuildReviewPrompt(resumeText, role),
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("resume review failed: %w", err)
	}

	return feedback, nil
}

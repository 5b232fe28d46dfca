package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
)

// EvaluationResult is the structured form of a free-text evaluation reply.
// Score stays a string: the model may answer with a decimal, and absence is
// the sentinel "N/A".
type EvaluationResult struct {
	Score         string
	Feedback      string
	CorrectAnswer string
	Raw           string
}

// FeedbackBlock renders the score line plus commentary the way the session
// flow shows it to the candidate. The "/5" suffix only makes sense for a
// numeric score, not the "N/A" sentinel.
func (r EvaluationResult) FeedbackBlock() string {
	if r.Score == "N/A" {
		return fmt.Sprintf("Score: %s\nFeedback: %s", r.Score, r.Feedback)
	}
	return fmt.Sprintf("Score: %s/5\nFeedback: %s", r.Score, r.Feedback)
}

// fallbackReply is returned verbatim when the completion call fails, so the
// caller always gets a well-formed three-line evaluation.
const fallbackReply = "Score: 1\nConstructive feedback: Evaluation failed.\nCorrect Answer: Not available."

type EvaluatorService interface {
	// Evaluate never returns an error; upstream failure degrades to a
	// sentinel result instead.
	Evaluate(ctx context.Context, question, answer string) EvaluationResult
	// EvaluateTopic uses the looser topic prompt and does propagate errors.
	EvaluateTopic(ctx context.Context, question, answer string) (EvaluationResult, error)
}

type evaluatorService struct {
	completion CompletionService
	prompts    *PromptBuilder
}

func NewEvaluatorService(completion CompletionService, prompts *PromptBuilder) EvaluatorService {
	return &evaluatorService{
		completion: completion,
		prompts:    prompts,
	}
}

// Evaluate implements EvaluatorService.
func (s *evaluatorService) Evaluate(ctx context.Context, question, answer string) EvaluationResult {
	raw, err := s.completion.Complete(ctx, CompletionRequest{
		Prompt:      s.prompts.BuildEvaluationPrompt(question, answer),
		Temperature: 0.3,
	})
	if err != nil {
		log.Printf("❌ Evaluation call failed: %v", err)
		raw = fallbackReply
	}

	return ParseEvaluation(raw)
}

// EvaluateTopic implements EvaluatorService.
func (s *evaluatorService) EvaluateTopic(ctx context.Context, question, answer string) (EvaluationResult, error) {
	raw, err := s.completion.Complete(ctx, CompletionRequest{
		Prompt:      s.prompts.BuildTopicEvaluationPrompt(question, answer),
		Temperature: 0.7,
	})
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("topic evaluation failed: %w", err)
	}

	return ParseEvaluation(raw), nil
}

var (
	scoreRe    = regexp.MustCompile(`(?i)score\s*[:\-]?\s*([1-5](?:\.\d)?)\s*/?\s*5?`)
	feedbackRe = regexp.MustCompile(`(?i)feedback\s*[:\-]?\s*(.+)`)
	correctRe  = regexp.MustCompile(`(?i)correct(?:\s+answer)?\s*[:\-]?\s*(.+)`)
)

// ParseEvaluation extracts score, feedback and correct answer from the raw
// reply. The upstream model follows the requested format only by convention,
// so every field degrades independently to "N/A" when its line is missing.
// The function is pure: the same input always yields the same result.
func ParseEvaluation(raw string) EvaluationResult {
	result := EvaluationResult{
		Score:         "N/A",
		Feedback:      "N/A",
		CorrectAnswer: "N/A",
		Raw:           strings.TrimSpace(raw),
	}

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), "score") {
			continue
		}
		if m := scoreRe.FindStringSubmatch(line); m != nil {
			result.Score = m[1]
		}
		break
	}

	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), "feedback") {
			continue
		}
		if m := feedbackRe.FindStringSubmatch(line); m != nil {
			result.Feedback = strings.TrimSpace(m[1])
		}
		break
	}

	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), "correct") {
			continue
		}
		if m := correctRe.FindStringSubmatch(line); m != nil {
			result.CorrectAnswer = strings.TrimSpace(m[1])
		}
		break
	}

	return result
}

package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxResumeChars = 3000

type QuestionService interface {
	// FromResume generates interview questions from extracted resume text.
	// The reply may contain fewer than the requested questions; callers
	// must tolerate that.
	FromResume(ctx context.Context, resumeText string) ([]string, error)
	// ForTopic generates questions one per line for a topic and difficulty.
	ForTopic(ctx context.Context, topic, difficulty string) ([]string, error)
	// NumberedForTopic generates questions as a numbered list and keeps
	// only the numbered lines.
	NumberedForTopic(ctx context.Context, topic, difficulty string) ([]string, error)
}

type questionService struct {
	completion CompletionService
	prompts    *PromptBuilder
}

func NewQuestionService(completion CompletionService, prompts *PromptBuilder) QuestionService {
	return &questionService{
		completion: completion,
		prompts:    prompts,
	}
}

// FromResume implements QuestionService.
func (s *questionService) FromResume(ctx context.Context, resumeText string) ([]string, error) {
	if len(resumeText) > maxResumeChars {
		cut := maxResumeChars
		// Back off to a rune boundary so the prompt stays valid UTF-8.
		for cut > 0 && !utf8.RuneStart(resumeText[cut]) {
			cut--
		}
		resumeText = resumeText[:cut]
	}

	content, err := s.completion.Complete(ctx, CompletionRequest{
		Prompt:      s.prompts.BuildResumeQuestionsPrompt(resumeText),
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate resume questions: %w", err)
	}

	return ParseResumeQuestions(content), nil
}

// ForTopic implements QuestionService.
func (s *questionService) ForTopic(ctx context.Context, topic, difficulty string) ([]string, error) {
	content, err := s.completion.Complete(ctx, CompletionRequest{
		Prompt:      s.prompts.BuildTopicQuestionsPrompt(topic, difficulty),
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate topic questions: %w", err)
	}

	var questions []string
	for _, line := range strings.Split(content, "\n") {
		if q := strings.TrimSpace(line); q != "" {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

// NumberedForTopic implements QuestionService.
func (s *questionService) NumberedForTopic(ctx context.Context, topic, difficulty string) ([]string, error) {
	content, err := s.completion.Complete(ctx, CompletionRequest{
		Prompt:      s.prompts.BuildNumberedTopicQuestionsPrompt(topic, difficulty),
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate topic questions: %w", err)
	}

	return ParseNumberedQuestions(content), nil
}

// ParseResumeQuestions splits a reply into question lines, stripping
// numbering and bullet prefixes and discarding short lines (fewer than
// 4 words) as likely non-question artifacts.
func ParseResumeQuestions(content string) []string {
	var questions []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.Trim(line, "0123456789.-) *")
		if len(strings.Fields(line)) > 3 {
			questions = append(questions, line)
		}
	}
	return questions
}

// ParseNumberedQuestions keeps only lines that start with a digit and
// strips the "N. " prefix.
func ParseNumberedQuestions(content string) []string {
	var questions []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		if _, rest, found := strings.Cut(line, ". "); found {
			questions = append(questions, strings.TrimSpace(rest))
		} else {
			questions = append(questions, line)
		}
	}
	return questions
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanQuizJSON_MarkdownFences(t *testing.T) {
	raw := "```json\n[{\"question\": \"Q1\", \"options\": [\"a\",\"b\",\"c\",\"d\"], \"correct_answer\": [\"a\"]}]\n```"

	cleaned, err := CleanQuizJSON(raw)

	require.NoError(t, err)
	assert.Equal(t, `[{"question": "Q1", "options": ["a","b","c","d"], "correct_answer": ["a"]}]`, cleaned)
}

func TestCleanQuizJSON_ProseAroundArray(t *testing.T) {
	raw := "Here is your quiz:\n[1, 2, 3]\nEnjoy!"

	cleaned, err := CleanQuizJSON(raw)

	require.NoError(t, err)
	assert.Equal(t, "[1, 2, 3]", cleaned)
}

func TestCleanQuizJSON_SmartPunctuation(t *testing.T) {
	raw := `[{“question”: “What’s CI\_CD?”}]`

	cleaned, err := CleanQuizJSON(raw)

	require.NoError(t, err)
	assert.Equal(t, `[{"question": "What's CI_CD?"}]`, cleaned)
}

func TestCleanQuizJSON_NoArray(t *testing.T) {
	_, err := CleanQuizJSON("I could not generate a quiz, sorry.")
	require.Error(t, err)
}

func TestGenerateQuiz_ParsesReply(t *testing.T) {
	completion := &fakeCompletion{reply: "```json\n" + `[
  {
    "question": "Which of the following are CI/CD tools?",
    "options": ["Jenkins", "Docker", "Photoshop", "GitHub Actions"],
    "correct_answer": ["Jenkins", "GitHub Actions"]
  }
]` + "\n```"}
	svc := NewQuizService(completion, NewPromptBuilder())

	quiz, err := svc.Generate(context.Background(), "CI/CD")

	require.NoError(t, err)
	require.Len(t, quiz, 1)
	assert.Equal(t, "Which of the following are CI/CD tools?", quiz[0].Question)
	assert.Len(t, quiz[0].Options, 4)
	assert.Equal(t, []string{"Jenkins", "GitHub Actions"}, quiz[0].CorrectAnswer)
	assert.Contains(t, completion.lastReq.Prompt, `"CI/CD"`)
}

func TestGenerateQuiz_RejectsNonJSONReply(t *testing.T) {
	completion := &fakeCompletion{reply: "no quiz today"}
	svc := NewQuizService(completion, NewPromptBuilder())

	_, err := svc.Generate(context.Background(), "DevOps")

	require.Error(t, err)
}

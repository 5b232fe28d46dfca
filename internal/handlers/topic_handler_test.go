package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/services"
)

type fakeQuestions struct {
	questions  []string
	err        error
	topic      string
	difficulty string
}

func (f *fakeQuestions) FromResume(context.Context, string) ([]string, error) {
	return f.questions, f.err
}

func (f *fakeQuestions) ForTopic(_ context.Context, topic, difficulty string) ([]string, error) {
	f.topic, f.difficulty = topic, difficulty
	return f.questions, f.err
}

func (f *fakeQuestions) NumberedForTopic(_ context.Context, topic, difficulty string) ([]string, error) {
	f.topic, f.difficulty = topic, difficulty
	return f.questions, f.err
}

func newTopicApp(questions services.QuestionService, evaluator services.EvaluatorService) *fiber.App {
	app := fiber.New()
	h := NewTopicHandler(questions, evaluator, validator.New())
	app.Post("/generate-topic-questions", h.HandleGenerateTopicQuestions)
	app.Post("/topic-question", h.HandleTopicQuestion)
	app.Post("/topic-evaluate", h.HandleTopicEvaluate)
	return app
}

func TestGenerateTopicQuestions(t *testing.T) {
	questions := &fakeQuestions{questions: []string{"q1", "q2"}}
	app := newTopicApp(questions, &fakeEvaluator{})

	req := jsonRequest(http.MethodPost, "/generate-topic-questions",
		models.TopicQuestionsRequest{Topic: "Kubernetes", Difficulty: "Hard"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Kubernetes", questions.topic)
	assert.Equal(t, "Hard", questions.difficulty)
}

func TestGenerateTopicQuestions_MissingDifficulty(t *testing.T) {
	app := newTopicApp(&fakeQuestions{}, &fakeEvaluator{})

	req := jsonRequest(http.MethodPost, "/generate-topic-questions",
		models.TopicQuestionsRequest{Topic: "Kubernetes"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Topic and difficulty are required.", decodeBody(t, resp)["error"])
}

func TestTopicQuestion_DefaultsDifficulty(t *testing.T) {
	questions := &fakeQuestions{questions: []string{"q1"}}
	app := newTopicApp(questions, &fakeEvaluator{})

	req := jsonRequest(http.MethodPost, "/topic-question",
		models.TopicQuestionsRequest{Topic: "Terraform"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Easy", questions.difficulty)
}

func TestTopicEvaluate(t *testing.T) {
	evaluator := &fakeEvaluator{result: services.EvaluationResult{
		Score:         "3",
		Feedback:      "Could be deeper.",
		CorrectAnswer: "State files track resources.",
	}}
	app := newTopicApp(&fakeQuestions{}, evaluator)

	req := jsonRequest(http.MethodPost, "/topic-evaluate",
		models.TopicEvaluateRequest{Question: "q", Answer: "a"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "1. Score: 3/5\nFeedback: Could be deeper.", body["feedback"])
	assert.Equal(t, "State files track resources.", body["correct_answer"])
}

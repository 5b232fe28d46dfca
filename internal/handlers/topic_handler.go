package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/services"
)

type TopicHandler struct {
	questions services.QuestionService
	evaluator services.EvaluatorService
	validate  *validator.Validate
}

func NewTopicHandler(
	questions services.QuestionService,
	evaluator services.EvaluatorService,
	validate *validator.Validate,
) *TopicHandler {
	return &TopicHandler{
		questions: questions,
		evaluator: evaluator,
		validate:  validate,
	}
}

// HandleGenerateTopicQuestions handles POST /generate-topic-questions,
// one question per line.
func (h *TopicHandler) HandleGenerateTopicQuestions(c *fiber.Ctx) error {
	var req models.TopicQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if req.Topic == "" || req.Difficulty == "" {
		return c.JSON(fiber.Map{"error": "Topic and difficulty are required."})
	}

	questions, err := h.questions.ForTopic(c.UserContext(), req.Topic, req.Difficulty)
	if err != nil {
		return c.JSON(fiber.Map{
			"error": "Failed to generate questions: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{"questions": questions})
}

// HandleTopicQuestion handles POST /topic-question, the numbered-list
// variant. Difficulty defaults to Easy.
func (h *TopicHandler) HandleTopicQuestion(c *fiber.Ctx) error {
	var req models.TopicQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if req.Topic == "" {
		return c.JSON(fiber.Map{"error": "Missing topic"})
	}
	if req.Difficulty == "" {
		req.Difficulty = "Easy"
	}

	questions, err := h.questions.NumberedForTopic(c.UserContext(), req.Topic, req.Difficulty)
	if err != nil {
		return c.JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"questions": questions})
}

// HandleTopicEvaluate handles POST /topic-evaluate. Unlike the session
// pipeline, upstream failure surfaces as an error payload here.
func (h *TopicHandler) HandleTopicEvaluate(c *fiber.Ctx) error {
	var req models.TopicEvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question and answer are required",
		})
	}

	result, err := h.evaluator.EvaluateTopic(c.UserContext(), req.Question, req.Answer)
	if err != nil {
		return c.JSON(fiber.Map{"error": "Evaluation failed. Check backend logs."})
	}

	return c.JSON(fiber.Map{
		"feedback":       fmt.Sprintf("1. Score: %s/5\nFeedback: %s", result.Score, result.Feedback),
		"correct_answer": result.CorrectAnswer,
	})
}

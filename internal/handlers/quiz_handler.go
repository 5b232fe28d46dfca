package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/services"
)

type QuizHandler struct {
	quiz     services.QuizService
	validate *validator.Validate
}

func NewQuizHandler(quiz services.QuizService, validate *validator.Validate) *QuizHandler {
	return &QuizHandler{
		quiz:     quiz,
		validate: validate,
	}
}

// HandleGenerateQuiz handles POST /generate-quiz. The response body is the
// bare JSON array of questions.
func (h *QuizHandler) HandleGenerateQuiz(c *fiber.Ctx) error {
	var req models.QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "topic is required",
		})
	}

	quiz, err := h.quiz.Generate(c.UserContext(), req.Topic)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error generating quiz: " + err.Error(),
		})
	}

	return c.JSON(quiz)
}

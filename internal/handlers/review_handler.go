package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"mockmate/interview-api/internal/services"
)

type ReviewHandler struct {
	review    services.ReviewService
	storage   services.StorageService
	pdfParser services.PDFParserService
}

func NewReviewHandler(
	review services.ReviewService,
	storage services.StorageService,
	pdfParser services.PDFParserService,
) *ReviewHandler {
	return &ReviewHandler{
		review:    review,
		storage:   storage,
		pdfParser: pdfParser,
	}
}

// HandleResumeReview handles POST /resume-review (multipart "file" +
// "role"). The uploaded file is transient and removed afterwards.
func (h *ReviewHandler) HandleResumeReview(c *fiber.Ctx) error {
	role := c.FormValue("role")
	if role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "role is required",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	filename, path, err := h.storage.SaveUpload(file)
	if err != nil {
		if errors.Is(err, services.ErrNotPDF) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Only PDF files are supported",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	defer h.storage.DeleteFile(filename)

	text, err := h.pdfParser.ExtractText(path)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	feedback, err := h.review.Review(c.UserContext(), services.CleanText(text), role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"feedback": feedback})
}

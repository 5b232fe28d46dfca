package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/repositories"
	"mockmate/interview-api/internal/services"
)

type InterviewHandler struct {
	sessions   services.SessionStore
	evaluator  services.EvaluatorService
	questions  services.QuestionService
	storage    services.StorageService
	pdfParser  services.PDFParserService
	recorder   services.Recorder
	recordRepo repositories.RecordRepository
	validate   *validator.Validate
}

func NewInterviewHandler(
	sessions services.SessionStore,
	evaluator services.EvaluatorService,
	questions services.QuestionService,
	storage services.StorageService,
	pdfParser services.PDFParserService,
	recorder services.Recorder,
	recordRepo repositories.RecordRepository,
	validate *validator.Validate,
) *InterviewHandler {
	return &InterviewHandler{
		sessions:   sessions,
		evaluator:  evaluator,
		questions:  questions,
		storage:    storage,
		pdfParser:  pdfParser,
		recorder:   recorder,
		recordRepo: recordRepo,
		validate:   validate,
	}
}

// HandleEvaluateAnswer handles POST /evaluate-answer. The evaluation itself
// never fails; a degraded reply is still a reply.
func (h *InterviewHandler) HandleEvaluateAnswer(c *fiber.Ctx) error {
	var req models.EvaluateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question, answer and user are required",
		})
	}

	result := h.evaluator.Evaluate(c.UserContext(), req.Question, req.Answer)

	h.recorder.RecordInterview(&models.InterviewRecord{
		UserEmail: req.User,
		Question:  req.Question,
		Answer:    req.Answer,
		Feedback:  result.Raw,
	})

	return c.JSON(fiber.Map{"evaluation": result.Raw})
}

// HandleStartResumeSession handles POST /start-resume-session (multipart
// "file" + "user"). Seeds the session tracker with at most 5 generated
// questions. Starting again for the same user replaces the live session.
func (h *InterviewHandler) HandleStartResumeSession(c *fiber.Ctx) error {
	user := c.FormValue("user")
	if user == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user is required",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	questions, err := h.questionsFromUpload(c, file)
	if err != nil {
		return c.JSON(fiber.Map{
			"error": "Failed to generate questions: " + err.Error(),
		})
	}
	if len(questions) > maxSessionQuestions {
		questions = questions[:maxSessionQuestions]
	}
	if len(questions) == 0 {
		return c.JSON(fiber.Map{
			"error": "Failed to generate questions: empty reply from the model",
		})
	}

	h.sessions.Start(user, questions)

	return c.JSON(fiber.Map{
		"message":  "Session started",
		"question": questions[0],
	})
}

const maxSessionQuestions = 5

// HandleSubmitResumeAnswer handles POST /submit-resume-answer. Evaluates the
// answer to the current question, persists an audit record, advances the
// cursor, and returns either the next question or a completion message.
func (h *InterviewHandler) HandleSubmitResumeAnswer(c *fiber.Ctx) error {
	var req models.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if req.User == "" || req.Answer == "" {
		return c.JSON(fiber.Map{"error": "Missing user or answer."})
	}

	question, err := h.sessions.CurrentQuestion(req.User)
	switch {
	case errors.Is(err, services.ErrNoSession):
		return c.JSON(fiber.Map{"error": "No active session found for this user."})
	case errors.Is(err, services.ErrSessionComplete):
		return c.JSON(fiber.Map{"message": "Interview already completed."})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	result := h.evaluator.Evaluate(c.UserContext(), question, req.Answer)
	feedback := result.FeedbackBlock()

	next, done, err := h.sessions.RecordAnswer(req.User, services.AnswerRecord{
		Question:      question,
		Answer:        req.Answer,
		Feedback:      feedback,
		CorrectAnswer: result.CorrectAnswer,
	})
	switch {
	case errors.Is(err, services.ErrQuestionMismatch):
		return c.JSON(fiber.Map{"error": "Answer no longer matches the current question."})
	case errors.Is(err, services.ErrNoSession):
		return c.JSON(fiber.Map{"error": "No active session found for this user."})
	case errors.Is(err, services.ErrSessionComplete):
		return c.JSON(fiber.Map{"message": "Interview already completed."})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// Persistence is independent of the cursor advance; a write failure
	// never changes the response.
	h.recorder.RecordSession(&models.SessionRecord{
		UserEmail:     req.User,
		Question:      question,
		Answer:        req.Answer,
		Feedback:      feedback,
		CorrectAnswer: result.CorrectAnswer,
	})

	if done {
		return c.JSON(fiber.Map{
			"feedback":       feedback,
			"correct_answer": result.CorrectAnswer,
			"message":        "Interview complete.",
		})
	}
	return c.JSON(fiber.Map{
		"feedback":       feedback,
		"correct_answer": result.CorrectAnswer,
		"next_question":  next,
	})
}

// HandleNextQuestion handles GET /next-question?user=.
func (h *InterviewHandler) HandleNextQuestion(c *fiber.Ctx) error {
	user := c.Query("user")
	if user == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user is required",
		})
	}

	question, err := h.sessions.CurrentQuestion(user)
	switch {
	case errors.Is(err, services.ErrNoSession):
		return c.JSON(fiber.Map{"error": "No session found."})
	case errors.Is(err, services.ErrSessionComplete):
		return c.JSON(fiber.Map{"message": "Interview complete."})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"question": question})
}

// HandleGetSessions handles GET /get-sessions?user=, returning persisted
// interview records newest first.
func (h *InterviewHandler) HandleGetSessions(c *fiber.Ctx) error {
	user := c.Query("user")
	if user == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user is required",
		})
	}

	records, err := h.recordRepo.FindInterviewRecordsByUser(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load sessions",
		})
	}

	return c.JSON(records)
}

// HandleGenerateQuestionsFromResume handles POST
// /generate-questions-from-resume (multipart "file").
func (h *InterviewHandler) HandleGenerateQuestionsFromResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	questions, err := h.questionsFromUpload(c, file)
	if err != nil {
		return c.JSON(fiber.Map{
			"error": "Failed to generate questions from resume.",
		})
	}

	return c.JSON(fiber.Map{"questions": questions})
}

func (h *InterviewHandler) questionsFromUpload(c *fiber.Ctx, file *multipart.FileHeader) ([]string, error) {
	_, path, err := h.storage.SaveUpload(file)
	if err != nil {
		return nil, err
	}

	text, err := h.pdfParser.ExtractText(path)
	if err != nil {
		return nil, err
	}

	return h.questions.FromResume(c.UserContext(), services.CleanText(text))
}

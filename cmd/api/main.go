package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"mockmate/interview-api/internal/config"
	"mockmate/interview-api/internal/handlers"
	"mockmate/interview-api/internal/repositories"
	"mockmate/interview-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	recordRepo := repositories.NewRecordRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	prompts := services.NewPromptBuilder()

	completionService := services.NewCompletionService(
		cfg.Together.APIKey,
		cfg.Together.BaseURL,
		cfg.Together.Model,
	)
	log.Println("✅ Completion service initialized successfully")

	identityService, err := services.NewIdentityService(
		cfg.Firebase.CredentialsFile,
		cfg.Firebase.APIKey,
		cfg.Firebase.ProjectID,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize identity service: %v", err)
	}
	log.Println("✅ Identity service initialized successfully")

	sessionStore := services.NewSessionStore()
	evaluatorService := services.NewEvaluatorService(completionService, prompts)
	questionService := services.NewQuestionService(completionService, prompts)
	quizService := services.NewQuizService(completionService, prompts)
	reviewService := services.NewReviewService(completionService, prompts)
	log.Println("✅ Services initialized successfully")

	// Initialize recorder
	recorder := services.NewRecorder(recordRepo, cfg.Recorder.Workers, cfg.Recorder.QueueSize)
	recorder.Start()
	log.Println("✅ Recorder started successfully")

	// Initialize handlers
	validate := validator.New()

	interviewHandler := handlers.NewInterviewHandler(
		sessionStore,
		evaluatorService,
		questionService,
		storageService,
		pdfParser,
		recorder,
		recordRepo,
		validate,
	)
	topicHandler := handlers.NewTopicHandler(questionService, evaluatorService, validate)
	quizHandler := handlers.NewQuizHandler(quizService, validate)
	reviewHandler := handlers.NewReviewHandler(reviewService, storageService, pdfParser)
	adminHandler := handlers.NewAdminHandler(identityService, userRepo, validate)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Interview Prep API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Interview endpoints
	app.Post("/evaluate-answer", interviewHandler.HandleEvaluateAnswer)
	app.Post("/generate-questions-from-resume", interviewHandler.HandleGenerateQuestionsFromResume)
	app.Post("/start-resume-session", interviewHandler.HandleStartResumeSession)
	app.Post("/submit-resume-answer", interviewHandler.HandleSubmitResumeAnswer)
	app.Get("/next-question", interviewHandler.HandleNextQuestion)
	app.Get("/get-sessions", interviewHandler.HandleGetSessions)

	// Topic endpoints
	app.Post("/generate-topic-questions", topicHandler.HandleGenerateTopicQuestions)
	app.Post("/topic-question", topicHandler.HandleTopicQuestion)
	app.Post("/topic-evaluate", topicHandler.HandleTopicEvaluate)

	// Quiz and review
	app.Post("/generate-quiz", quizHandler.HandleGenerateQuiz)
	app.Post("/resume-review", reviewHandler.HandleResumeReview)

	// Admin subtree
	admin := app.Group("/admin", adminHandler.RequireAuth)
	admin.Get("/check", adminHandler.HandleCheck)
	admin.Get("/users", adminHandler.HandleListUsers)
	admin.Post("/toggle-admin", adminHandler.HandleToggleAdmin)
	admin.Post("/create-user", adminHandler.HandleCreateUser)
	admin.Delete("/delete-user", adminHandler.HandleDeleteUser)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

	// Listen has returned, so no handler can enqueue anymore. Flush the
	// queue before the process exits.
	recorder.Stop()
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

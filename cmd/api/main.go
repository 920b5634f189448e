package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"ai-interviewer/internal/config"
	"ai-interviewer/internal/handlers"
	"ai-interviewer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	promptBuilder := services.NewPromptBuilder()
	difficultyTable := services.NewDifficultyTable()
	log.Println("✅ Services initialized successfully")

	// Initialize the model gateway
	modelClient, err := newModelClient(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize model gateway: %v", err)
	}
	log.Printf("✅ Model gateway initialized (%s backend, model %s)", cfg.Model.Backend, modelClient.ModelName())

	// Initialize handlers
	interviewHandler := handlers.NewInterviewHandler(
		storageService,
		pdfParser,
		promptBuilder,
		difficultyTable,
		modelClient,
		cfg.Storage.MaxFileSize,
		cfg.Model.Timeout,
	)
	evaluationHandler := handlers.NewEvaluationHandler(
		promptBuilder,
		difficultyTable,
		modelClient,
		cfg.Model.Timeout,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview API",
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

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/interview-questions", interviewHandler.HandleGenerateQuestions)
	api.Post("/evaluate-answers", evaluationHandler.HandleEvaluateAnswers)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/interview-questions",
				"POST /api/v1/evaluate-answers",
			},
		})
	})

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
}

func newModelClient(cfg *config.Config) (services.ModelClient, error) {
	switch cfg.Model.Backend {
	case "ollama":
		return services.NewOllamaService(cfg.Ollama.URL, cfg.Ollama.Model, cfg.Model.Timeout), nil
	case "gemini":
		return services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Model.RetryMaxAttempts)
	default:
		return nil, fmt.Errorf("unknown model backend: %q", cfg.Model.Backend)
	}
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

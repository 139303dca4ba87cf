package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/handlers"
	"alfredoptarigan/interview-coach/internal/metrics"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLog, err := config.NewLogger(cfg.Server.Env)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zapLog.Sync()
	zapLog.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Initialize database
	db, err := config.InitDatabase(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("❌ Failed to initialize database", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	jobRepo := repositories.NewJobDescriptionRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	zapLog.Info("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		zapLog.Fatal("❌ Failed to create upload directory", zap.Error(err))
	}
	if err := os.MkdirAll(cfg.Storage.GeneratedPath, 0755); err != nil {
		zapLog.Fatal("❌ Failed to create generated PDF directory", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService()
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	authService := services.NewAuthService(userRepo, tokenService, zapLog)

	promptBuilder, err := services.NewPromptBuilder()
	if err != nil {
		zapLog.Fatal("❌ Failed to load prompt templates", zap.Error(err))
	}

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, zapLog)
	if err != nil {
		zapLog.Fatal("❌ Failed to initialize Gemini AI", zap.Error(err))
	}
	zapLog.Info("✅ Gemini AI initialized successfully", zap.String("model", cfg.Gemini.Model))

	// Reference retrieval is optional
	var retriever services.ContextRetriever
	if cfg.Qdrant.URL != "" {
		qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, zapLog)
		if err != nil {
			zapLog.Fatal("❌ Failed to initialize Qdrant", zap.Error(err))
		}
		if err := qdrantService.InitCollection(context.Background()); err != nil {
			zapLog.Fatal("❌ Failed to initialize Qdrant collection", zap.Error(err))
		}
		retriever = services.NewReferenceRetriever(
			geminiService,
			qdrantService,
			services.DocTypeInterviewGuide,
			cfg.Qdrant.Limit,
			appMetrics,
		)
		zapLog.Info("✅ Qdrant initialized successfully", zap.String("collection", cfg.Qdrant.Collection))
	} else {
		zapLog.Info("ℹ️ QDRANT_URL not set, interview prompts will not use reference material")
	}

	contentGenerator := services.NewContentGenerator(geminiService, promptBuilder, retriever, appMetrics, zapLog)
	analyzer := services.NewTranscriptAnalyzer(geminiService, promptBuilder, appMetrics, zapLog)
	remoteClient := services.NewTavusClient(cfg.Tavus.APIURL, cfg.Tavus.APIKey, appMetrics, zapLog)
	renderer := services.NewCheatsheetRenderer(cfg.Storage.GeneratedPath)

	orchestrator := services.NewInterviewOrchestrator(services.OrchestratorDeps{
		Sessions:      sessionRepo,
		Resumes:       resumeRepo,
		Jobs:          jobRepo,
		Content:       contentGenerator,
		Remote:        remoteClient,
		Analyzer:      analyzer,
		Renderer:      renderer,
		QuestionCount: cfg.Interview.QuestionCount,
		Metrics:       appMetrics,
		Log:           zapLog,
	})
	zapLog.Info("✅ Services initialized successfully")

	// Résumé sync with the provider is opt-in
	var resumeSync services.RemoteInterviewClient
	if cfg.Tavus.SyncResumes {
		resumeSync = remoteClient
	}

	// Initialize handlers
	h := handlers.Handlers{
		Auth:            handlers.NewAuthHandler(authService),
		Resumes:         handlers.NewResumeHandler(resumeRepo, storageService, pdfParser, resumeSync, zapLog),
		JobDescriptions: handlers.NewJobDescriptionHandler(jobRepo),
		Interviews:      handlers.NewInterviewHandler(orchestrator),
		Results:         handlers.NewResultHandler(sessionRepo, resumeRepo, jobRepo, zapLog),
	}
	zapLog.Info("✅ Handlers initialized")

	// Create Fiber app. Interview setup and finish wait on the model, so the
	// write timeout is generous.
	app := fiber.New(fiber.Config{
		AppName:      "Interview Coach API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
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

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	handlers.RegisterRoutes(api, h, handlers.RequireAuth(tokenService))

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Interview Coach API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/register",
				"POST /api/v1/auth/login",
				"POST /api/v1/auth/refresh",
				"GET /api/v1/auth/me",
				"POST /api/v1/resumes",
				"GET /api/v1/resumes",
				"POST /api/v1/job-descriptions",
				"GET /api/v1/job-descriptions",
				"POST /api/v1/interview/setup",
				"POST /api/v1/interview/start",
				"POST /api/v1/interview/:id/finish",
				"POST /api/v1/interview/:id/abort",
				"GET /api/v1/interview/:id/status",
				"GET /api/v1/interview/:id/cheatsheet",
				"GET /api/v1/interview/:id/cheatsheet/pdf",
				"GET /api/v1/interview/results/:id",
				"GET /api/v1/interview/results/:id/transcript",
				"GET /api/v1/interview/history",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zapLog.Info("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			zapLog.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLog.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zapLog.Fatal("❌ Failed to start server", zap.Error(err))
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

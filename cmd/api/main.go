package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/video-chat/docs"
	pkgvalidator "github.com/johnquangdev/video-chat/pkg/validator"

	"github.com/johnquangdev/video-chat/internal/adapter/handler"
	"github.com/johnquangdev/video-chat/internal/adapter/repository"
	"github.com/johnquangdev/video-chat/internal/domain/repositories"
	"github.com/johnquangdev/video-chat/internal/infrastructure/cache"
	"github.com/johnquangdev/video-chat/internal/infrastructure/database"
	"github.com/johnquangdev/video-chat/internal/infrastructure/external/whisper"
	"github.com/johnquangdev/video-chat/internal/infrastructure/external/ytdlp"
	"github.com/johnquangdev/video-chat/internal/infrastructure/storage"
	"github.com/johnquangdev/video-chat/internal/infrastructure/vectorstore"
	"github.com/johnquangdev/video-chat/internal/usecase/chat"
	"github.com/johnquangdev/video-chat/internal/usecase/pipeline"
	"github.com/johnquangdev/video-chat/internal/usecase/segment"
	pkgai "github.com/johnquangdev/video-chat/pkg/ai"
	"github.com/johnquangdev/video-chat/pkg/config"
)

// @title           Video Chat API
// @version         1.0
// @description     Ask questions about a YouTube video: download, transcribe, index and chat.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Request-ID"},
	}))

	ctx := context.Background()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Transcript archive (optional)
	var transcriptRepo repositories.TranscriptRepository
	if cfg.Database.Enabled {
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		// Production deployments should run scripts/migrate.go from CI instead.
		if cfg.Database.AutoMigrate {
			if cfg.Server.Environment == "production" {
				log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or run the migrate script.")
			}
			log.Println("🔄 Applying migrations...")
			if _, err := database.AutoMigrate(db, database.MigrationsDir, logger); err != nil {
				log.Fatalf("Failed to apply migrations: %v", err)
			}
		}
		transcriptRepo = repository.NewTranscriptRepository(db)
	} else {
		log.Println("⚠️  Database disabled, transcripts will not be archived")
	}

	// Embedding cache: Redis when enabled, in-process otherwise
	var embeddingCache vectorstore.Cache
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		embeddingCache = cache.NewRedisStore(redisClient, cfg.Cache.Prefix)
	} else {
		memoryStore := cache.NewMemoryStore()
		defer memoryStore.Close()
		embeddingCache = memoryStore
	}

	// Audio archive (optional)
	var (
		archiver pipeline.AudioArchiver
		linker   handler.AudioLinker
	)
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		archiver = minioClient
		linker = minioClient
	}

	// Initialize AI components
	log.Println("🤖 Initializing AI components...")
	transcriber := newTranscriber(cfg, logger)
	embedder := vectorstore.NewCachedEmbedder(
		pkgai.NewEmbeddingClient(cfg.Embedding),
		embeddingCache,
		cfg.Embedding.Model,
		cfg.Cache.TTL,
		logger,
	)
	chatClient := pkgai.NewChatClient(cfg.LLM)
	starter := chat.NewStarter(chatClient, chat.Options{TopK: cfg.Pipeline.TopK}, logger)

	mode, err := segment.ParseMode(cfg.Pipeline.GroupingMode)
	if err != nil {
		log.Fatalf("Invalid grouping mode: %v", err)
	}

	// Initialize pipeline service
	log.Println("🎬 Initializing pipeline service...")
	deps := pipeline.Dependencies{
		Fetcher:     ytdlp.NewFetcher(cfg.Fetcher, logger),
		Transcriber: transcriber,
		Indexer:     vectorstore.NewBuilder(embedder, logger),
		Chat:        starter,
		Archiver:    archiver,
	}
	if transcriptRepo != nil {
		deps.Transcripts = transcriptRepo
	}
	svc, err := pipeline.NewService(deps, pipeline.Config{
		Grouping:     segment.Options{Window: cfg.Pipeline.Window, Mode: mode},
		StageTimeout: cfg.Pipeline.StageTimeout,
		KeepAudio:    cfg.Pipeline.KeepAudio,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	sessionHandler := handler.NewSessionHandler(svc, logger)
	transcriptHandler := handler.NewTranscriptHandler(transcriptRepo, logger)
	storageHandler := handler.NewStorageHandler(svc, linker, cfg.Storage.PresignExpiry, logger)

	router := handler.NewRouter(cfg, sessionHandler, transcriptHandler, storageHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🎙️  Transcription backend: %s", cfg.Transcription.Backend)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newTranscriber picks the speech-to-text backend
func newTranscriber(cfg *config.Config, logger *zap.Logger) pipeline.Transcriber {
	switch cfg.Transcription.Backend {
	case config.BackendAssemblyAI:
		return pkgai.NewAssemblyAITranscriber(cfg.Transcription, logger)
	case config.BackendLocal:
		return whisper.NewCLITranscriber(cfg.Transcription, logger)
	default:
		return pkgai.NewWhisperTranscriber(cfg.Transcription)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"scanvault/internal/config"
	emailnoop "scanvault/internal/email/noop"
	"scanvault/internal/email/ses"
	"scanvault/internal/extractor"
	"scanvault/internal/extractor/anthropic"
	"scanvault/internal/extractor/google"
	"scanvault/internal/extractor/openai"
	"scanvault/internal/handler"
	"scanvault/internal/ocr"
	"scanvault/internal/port"
	"scanvault/internal/repository/postgres"
	"scanvault/internal/router"
	"scanvault/internal/search"
	"scanvault/internal/service"
	s3storage "scanvault/internal/storage/s3"

	"scanvault/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	ownerRepo := postgres.NewOwnerRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	assetRepo := postgres.NewAssetRepo(db)
	credentialRepo := postgres.NewCredentialRepo(db)

	// Storage
	s3Client, err := s3storage.New(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Extraction backends
	registry := extractor.Registry{
		domain.ProviderOpenAI:    openai.New(&cfg.Extractor.OpenAI),
		domain.ProviderAnthropic: anthropic.New(&cfg.Extractor.Anthropic),
		domain.ProviderGoogle:    google.New(&cfg.Extractor.Google),
	}

	var recognizer port.TextRecognizer
	if cfg.OCR.Disabled {
		recognizer = ocr.NoopRecognizer{}
	} else {
		recognizer = ocr.NewTesseractRecognizer(&cfg.OCR)
	}

	var indexer port.SearchIndexer
	if cfg.Search.Endpoint != "" {
		indexer = search.NewHTTPIndexer(&cfg.Search)
	} else {
		indexer = search.NewNoopIndexer()
	}

	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = emailnoop.NewNoopSender()
	}

	// Services
	categorySvc := service.NewCategoryService(categoryRepo)
	extractionSvc := service.NewExtractionService(
		assetRepo, credentialRepo, categorySvc, s3Client, recognizer, indexer, registry, cfg.S3.Bucket)
	assetSvc := service.NewAssetService(
		assetRepo, ownerRepo, categorySvc, s3Client, cfg.S3.Bucket, cfg.S3.PresignExpiry)
	ownerSvc := service.NewOwnerService(ownerRepo, credentialRepo, registry.Providers())

	// Queue worker
	worker := service.NewExtractQueueWorker(assetRepo, ownerRepo, extractionSvc, emailSender, service.ExtractQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})

	workerCtx, stopWorker := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopWorker()
	go worker.Start(workerCtx)

	// Handlers
	healthH := handler.NewHealthHandler(db)
	ownerH := handler.NewOwnerHandler(ownerSvc)
	assetH := handler.NewAssetHandler(assetSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)

	r := router.Setup(cfg.CORS.AllowedOrigins, healthH, ownerH, assetH, categoryH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

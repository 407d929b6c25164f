package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"menulens/internal/config"
	"menulens/internal/email/noop"
	"menulens/internal/email/ses"
	"menulens/internal/handler"
	"menulens/internal/menu/learning"
	"menulens/internal/ocr"
	"menulens/internal/ocr/mistral"
	"menulens/internal/ocr/openai"
	"menulens/internal/port"
	"menulens/internal/repository/postgres"
	"menulens/internal/router"
	"menulens/internal/service"
	s3storage "menulens/internal/storage/s3"
)

// @title MenuLens API
// @version 1.0
// @description Restaurant menu digitization service: OCR, correction, validation, and export of menu photos.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	// Initialize repositories
	scanRepo := postgres.NewScanRepo(db)
	feedbackRepo := postgres.NewFeedbackRepo(db)
	restaurantRepo := postgres.NewRestaurantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize OCR providers
	ocr.RegisterProvider("mistral", func(pc *config.OCRProviderConfig) (port.MenuOCR, error) {
		return mistral.NewClient(pc), nil
	})
	ocr.RegisterProvider("openai", func(pc *config.OCRProviderConfig) (port.MenuOCR, error) {
		return openai.NewClient(pc), nil
	})

	ocrClient, err := buildOCRClient(&cfg.OCR)
	if err != nil {
		return fmt.Errorf("failed to initialize OCR client: %w", err)
	}

	// Initialize email sender
	emailSender, err := buildEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Learning store: seed from stored feedback, then refresh periodically.
	learner := learning.NewStore(learning.DefaultConfig())
	pipeline := service.NewPipeline(learner)

	feedbackSvc := service.NewFeedbackService(feedbackRepo, learner)
	if err := feedbackSvc.RebuildLearningStore(ctx); err != nil {
		log.Printf("initial learning store build failed, continuing without patterns: %v", err)
	}
	feedbackSvc.StartPeriodicRebuild(ctx, time.Duration(cfg.Learning.ReloadIntervalSecs)*time.Second)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	scanSvc := service.NewScanService(scanRepo, s3Client, ocrClient, emailSender, pipeline, cfg.S3, cfg.Email)
	restaurantSvc := service.NewRestaurantService(restaurantRepo)
	userSvc := service.NewUserService(userRepo)
	statsSvc := service.NewStatsService(statsRepo, learner)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, userSvc)
	scanH := handler.NewScanHandler(scanSvc)
	restaurantH := handler.NewRestaurantHandler(restaurantSvc)
	feedbackH := handler.NewFeedbackHandler(feedbackSvc)
	userH := handler.NewUserHandler(userSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, scanH, restaurantH, feedbackH, userH, statsH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Scan queue worker
	worker := service.NewScanQueueWorker(scanRepo, scanSvc, service.ScanQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
	<-workerDone
	log.Println("Shutdown complete")
	return nil
}

// buildOCRClient creates the primary client, wrapped with the secondary in a
// fallback chain when one is configured.
func buildOCRClient(cfg *config.OCRConfig) (port.MenuOCR, error) {
	primary, err := ocr.NewClient(&cfg.Primary)
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}

	secondary, err := ocr.NewClient(secondaryCfg)
	if err != nil {
		return nil, err
	}

	return ocr.NewFallbackClient(
		[]port.MenuOCR{primary, secondary},
		[]string{cfg.Primary.Provider, secondaryCfg.Provider},
	), nil
}

func buildEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	if cfg.Provider == "ses" {
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	}
	return noop.NewNoopSender(), nil
}

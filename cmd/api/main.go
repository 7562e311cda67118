package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"portfolio/internal/auth"
	"portfolio/internal/blob"
	"portfolio/internal/config"
	"portfolio/internal/events"
	"portfolio/internal/http"
	"portfolio/internal/llm"
	"portfolio/internal/portfolio"
	"portfolio/internal/service"
	"portfolio/internal/storage"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API serves a photography portfolio: the photo gallery, AI assisted
// keyword search, admin uploads and the contact form.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Portfolio API
//   description: |
//     Gallery, search and admin API for the photography portfolio site.
//     Uploads and deletions require an admin session cookie obtained from /api/login.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
//   - multipart/form-data
// produces:
//   - application/json

const (
	shutdownTimeout       = 10 * time.Second
	sessionSweepInterval  = time.Hour
	readHeaderTimeout     = 10 * time.Second
	storageDriverS3       = "s3"
	storageDriverLocalDir = "local"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "driver", cfg.DBDriver)

	// Create repository instances
	photoRepo := storage.NewPhotoRepo(db)
	contactRepo := storage.NewContactRepo(db)
	userRepo := storage.NewUserRepo(db)
	sessionRepo := storage.NewSessionRepo(db)

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}
	slog.Info("Photo storage ready", "driver", cfg.StorageDriver)

	hub := events.NewHub()
	go hub.Run(ctx)

	// Create LLM client (external service layer). A nil analyzer makes the
	// search endpoints answer with the smart keyword fallback.
	var analyzer service.Analyzer
	if cfg.AnalyzerEnabled() {
		analyzer = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
		slog.Info("Query analyzer enabled", "model", cfg.LLMModel)
	} else {
		slog.Warn("LLM_API_KEY not set, search uses smart keywords only")
	}

	photoService := service.NewPhotoService(photoRepo, blobs, hub)
	searchService := service.NewSearchService(analyzer, photoService)
	contactService := service.NewContactService(contactRepo)

	hash, err := auth.ResolveHash(cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		log.Fatalf("Failed to resolve admin password: %v", err)
	}
	authManager, err := auth.NewManager(sessionRepo, userRepo, hash, auth.Options{
		CookieName: cfg.SessionCookieName,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.SessionSecure,
	})
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}
	go sweepSessions(ctx, sessionRepo)

	var limiter *rate.Limiter
	if cfg.AnalyzeRatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.AnalyzeRatePerMinute)), cfg.AnalyzeBurst)
	}

	// Create router with dependencies
	deps := &http.Deps{
		Photos:          photoService,
		Search:          searchService,
		Contacts:        contactService,
		Auth:            authManager,
		Renderer:        portfolio.NewRenderer(),
		DB:              db,
		AnalyzerEnabled: analyzer != nil,
		AnalyzeLimiter:  limiter,
		Hub:             hub,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
	}
	if cfg.StorageDriver == storageDriverLocalDir {
		deps.PhotosDir = cfg.PhotosDir
		deps.PhotosURLPrefix = cfg.PhotosURLPrefix
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
}

func newBlobStore(ctx context.Context, cfg *config.Config) (service.BlobStore, error) {
	if cfg.StorageDriver == storageDriverS3 {
		return blob.NewS3Store(ctx, blob.S3Config{
			Bucket:        cfg.S3.Bucket,
			Region:        cfg.S3.Region,
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			Prefix:        cfg.S3.Prefix,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
	}
	return blob.NewLocalStore(cfg.PhotosDir, cfg.PhotosURLPrefix)
}

// sweepSessions removes expired sessions until ctx is done.
func sweepSessions(ctx context.Context, sessions storage.SessionStore) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := sessions.DeleteExpired(ctx, now)
			if err != nil {
				slog.Error("Failed to delete expired sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("Expired sessions removed", "count", n)
			}
		}
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commercial-paper-verifier/config"
	httpHandler "commercial-paper-verifier/internal/adapter/http/handler"
	pgStorage "commercial-paper-verifier/internal/adapter/storage/postgres"
	redisStorage "commercial-paper-verifier/internal/adapter/storage/redis"
	"commercial-paper-verifier/internal/core/ports"
	"commercial-paper-verifier/internal/service"
	"commercial-paper-verifier/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CPV_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret must be set (CPV_JWT_SECRET)")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Dur("cache_ttl", cfg.Verifier.CacheTTL).
		Bool("audit", cfg.Verifier.AuditEnabled).
		Msg("Starting Commercial Paper Verifier")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories and stores
	verdictRepo := pgStorage.NewVerdictRepo(pool)
	verdictCache := redisStorage.NewVerdictCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	sigSvc := service.NewEd25519SignatureService()
	hashSvc := service.NewSHA3HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	verificationSvc := service.NewVerificationService(
		sigSvc,
		hashSvc,
		verdictCache,
		verdictRepo,
		cfg.Verifier.CacheTTL,
		logger.Component(log, "verifier"),
	)
	reportingSvc := service.NewReportingService(verdictRepo)

	var auditSvc ports.AuditService
	if cfg.Verifier.AuditEnabled {
		auditSvc = service.NewAuditService(pgStorage.NewAuditRepo(pool), logger.Component(log, "audit"))
	}

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		VerificationSvc: verificationSvc,
		ReportingSvc:    reportingSvc,
		TokenSvc:        tokenSvc,
		RateLimitStore:  rateLimitStore,
		VerifyRateLimit: cfg.Verifier.RateLimit,
		HealthCheckers:  []ports.HealthChecker{pgHealth, redisHealth},
		AuditSvc:        auditSvc,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		Mode:            cfg.Server.Mode,
		Logger:          logger.Component(log, "http"),
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

package handler

import (
	"commercial-paper-verifier/internal/adapter/http/middleware"
	redisStore "commercial-paper-verifier/internal/adapter/storage/redis"
	"commercial-paper-verifier/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	VerificationSvc ports.VerificationService
	ReportingSvc    ports.ReportingService
	TokenSvc        ports.TokenService
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	VerifyRateLimit int64                      // 0 = default rule
	HealthCheckers  []ports.HealthChecker
	AuditSvc        ports.AuditService // nil = audit logging disabled
	MaxBodyBytes    int64              // 0 = 1 MB
	Mode            string             // gin mode, "" = release
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBody))

	// Health check (deep, pings PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules(deps.VerifyRateLimit)
	rl := func(group string) gin.HandlerFunc {
		return middleware.RateLimiter(deps.RateLimitStore, group, rules[group], deps.Logger)
	}

	// API v1 routes, all JWT-authenticated
	v1 := r.Group("/api/v1", middleware.JWTAuth(deps.TokenSvc, deps.Logger))
	if deps.AuditSvc != nil {
		v1.Use(middleware.AuditLog(deps.AuditSvc))
	}

	verificationHandler := NewVerificationHandler(deps.VerificationSvc)
	verdictHandler := NewVerdictHandler(deps.ReportingSvc)

	v1.POST("/transactions/verify", rl("verify"), verificationHandler.Verify)

	verdicts := v1.Group("/verdicts", rl("verdicts"))
	{
		verdicts.GET("/stats", verdictHandler.Stats)
		verdicts.GET("/:id", verdictHandler.Get)
	}

	return r
}

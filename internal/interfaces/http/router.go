package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cheki/internal/application/receipt/usecases"
	"cheki/internal/infrastructure/cache"
	"cheki/internal/infrastructure/config"
	"cheki/internal/infrastructure/gateway"
	"cheki/internal/infrastructure/repository"
	"cheki/internal/interfaces/http/handlers"
	"cheki/internal/interfaces/http/middleware"
	"cheki/internal/interfaces/http/routes"
	"cheki/internal/shared/logger"
)

// Router wires the use cases to their HTTP surface.
type Router struct {
	engine         *gin.Engine
	authHandler    *handlers.AuthHandler
	receiptHandler *handlers.ReceiptHandler
	rateLimiter    *middleware.RateLimiter
}

// NewRouter builds the full dependency graph from the database handle,
// the optional redis client and the loaded configuration.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Router {
	log := logger.NewLogger()

	tokenRepo := repository.NewSessionTokenRepository(db)
	irkkt := gateway.NewIRKKTClient(&cfg.Gateway, log)

	lifetime := time.Duration(cfg.Session.LifetimeMinutes) * time.Minute
	resolveSession := usecases.NewResolveSessionUseCase(tokenRepo, irkkt, lifetime, log)
	requestCode := usecases.NewRequestSMSCodeUseCase(irkkt, log)
	createSession := usecases.NewCreateSessionUseCase(tokenRepo, irkkt, log)
	fetchReceipt := usecases.NewFetchReceiptUseCase(resolveSession, irkkt, log)

	var attempts *cache.VerifyAttemptStore
	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		attempts = cache.NewVerifyAttemptStore(
			redisClient,
			cfg.RateLimit.VerifyAttempts,
			time.Duration(cfg.RateLimit.LockoutMinutes)*time.Minute,
		)
		if cfg.RateLimit.Enabled {
			rateLimiter = middleware.NewRateLimiter(
				redisClient,
				cfg.RateLimit.Requests,
				time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			)
		}
	}

	router := &Router{
		engine:         gin.New(),
		receiptHandler: handlers.NewReceiptHandler(fetchReceipt, log),
		rateLimiter:    rateLimiter,
	}
	if attempts != nil {
		router.authHandler = handlers.NewAuthHandler(requestCode, createSession, attempts, log)
	} else {
		router.authHandler = handlers.NewAuthHandler(requestCode, createSession, nil, log)
	}

	router.setupMiddleware(cfg)
	router.setupRoutes()

	return router
}

func (r *Router) setupMiddleware(cfg *config.Config) {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(logger.NewLogger()))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", handlers.HealthCheck)

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler: r.authHandler,
		RateLimiter: r.rateLimiter,
	})

	routes.SetupReceiptRoutes(r.engine, &routes.ReceiptRouteConfig{
		ReceiptHandler: r.receiptHandler,
	})
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

package routes

import (
	"github.com/gin-gonic/gin"

	"cheki/internal/interfaces/http/handlers"
	"cheki/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for the SMS bootstrap routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
	RateLimiter *middleware.RateLimiter // may be nil if redis is not configured
}

// SetupAuthRoutes configures the SMS bootstrap routes. Both endpoints
// trigger outbound calls to the upstream, so they sit behind the IP
// rate limiter when one is available.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		if cfg.RateLimiter != nil {
			auth.POST("/sms/request", cfg.RateLimiter.Limit(), cfg.AuthHandler.RequestSMSCode)
			auth.POST("/sms/verify", cfg.RateLimiter.Limit(), cfg.AuthHandler.VerifySMSCode)
		} else {
			auth.POST("/sms/request", cfg.AuthHandler.RequestSMSCode)
			auth.POST("/sms/verify", cfg.AuthHandler.VerifySMSCode)
		}
	}
}

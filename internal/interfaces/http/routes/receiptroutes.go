package routes

import (
	"github.com/gin-gonic/gin"

	"cheki/internal/interfaces/http/handlers"
)

// ReceiptRouteConfig holds dependencies for the receipt routes.
type ReceiptRouteConfig struct {
	ReceiptHandler *handlers.ReceiptHandler
}

// SetupReceiptRoutes configures the receipt lookup route.
func SetupReceiptRoutes(engine *gin.Engine, cfg *ReceiptRouteConfig) {
	engine.POST("/receipt", cfg.ReceiptHandler.LookupReceipt)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cheki/internal/shared/biztime"
)

// HealthCheck reports liveness for load balancers and monitoring.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   biztime.FormatMetadataTime(biztime.NowUTC()),
	})
}

package handlers

import (
	"net/http"

	"realtalk/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last background check of mongo and redis.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.CheckedAt.IsZero() && !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": http.StatusText(code), "checks": status})
}

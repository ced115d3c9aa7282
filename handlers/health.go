package handlers

import (
	"net/http"

	"stayline/utils"

	"github.com/gin-gonic/gin"
)

// Health returns the latest dependency health snapshot.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()

	code := http.StatusOK
	if !status.Mongo || !status.Redis {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flwsb/pregnancy-nutrition-bot/config"
)

// Health reports process liveness and whether the store answers.
func Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	sqlDB, err := config.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{"status": status})
}

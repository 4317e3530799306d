package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const welcomeText = "Welcome to the Crypto Tracker API! Use /api/coins to get the top 10 cryptocurrencies by market cap."

func GetIndex(c *gin.Context) {
	c.String(http.StatusOK, welcomeText)
}

func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

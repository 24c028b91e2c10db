package controllers

import (
	"net/http"

	"techmastery/db"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and the MongoDB connection state
func Health(ctx *gin.Context) {
	mongoState := "Disconnected"
	if db.Ping(ctx.Request.Context()) {
		mongoState = "Connected"
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "OK", "mongodb": mongoState})
}

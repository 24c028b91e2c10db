package controllers

import (
	"log"
	"net/http"
	"time"

	"techmastery/db"
	"techmastery/metrics"
	"techmastery/models"
	"techmastery/structs"
	"techmastery/websocket"

	"github.com/gin-gonic/gin"
)

// GetProgress returns the session user's progress block and achievements
func GetProgress(ctx *gin.Context) {
	userID := ctx.GetString("userID")

	user, err := db.FindUserByID(ctx.Request.Context(), userID)
	if err == db.ErrUserNotFound {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to fetch progress for %s: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"progress": user.Progress, "achievements": user.Achievements})
}

// UpdateProgress credits a challenge completion exactly once. The point value
// comes from the challenge record, never from the request body.
func UpdateProgress(ctx *gin.Context) {
	var request structs.UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	userID := ctx.GetString("userID")

	challenge, err := db.GetChallengeByNumber(ctx.Request.Context(), request.ChallengeID)
	if err == db.ErrChallengeNotFound {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to look up challenge %d: %v", request.ChallengeID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user, credited, err := db.RecordCompletion(ctx.Request.Context(), userID, challenge.ChallengeID, challenge.Points)
	if err == db.ErrUserNotFound {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to record completion for %s: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if credited {
		metrics.CompletionsRecorded.Inc()
		websocket.BroadcastProgressEvent(models.ProgressEvent{
			Type:        "progress_updated",
			UserID:      userID,
			ChallengeID: challenge.ChallengeID,
			Points:      challenge.Points,
			TotalPoints: user.Progress.TotalPoints,
			Timestamp:   time.Now(),
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "progress": user.Progress})
}

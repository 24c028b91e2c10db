package controllers

import (
	"log"
	"net/http"
	"strconv"

	"techmastery/db"
	"techmastery/services"

	"github.com/gin-gonic/gin"
)

const (
	defaultChallengeLimit = 50
	maxChallengeLimit     = 100
)

// ListChallenges returns challenges matching the optional difficulty/category
// filter in seed order, capped by limit.
func ListChallenges(ctx *gin.Context) {
	limit := int64(defaultChallengeLimit)
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxChallengeLimit {
		limit = maxChallengeLimit
	}

	challenges, err := db.ListChallenges(ctx.Request.Context(), ctx.Query("difficulty"), ctx.Query("category"), limit)
	if err != nil {
		log.Printf("Failed to list challenges: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"challenges": challenges})
}

// GetChallenge returns one challenge by id or 404
func GetChallenge(ctx *gin.Context) {
	challenge, err := db.GetChallenge(ctx.Request.Context(), ctx.Param("id"))
	if err == db.ErrChallengeNotFound {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to fetch challenge %s: %v", ctx.Param("id"), err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"challenge": challenge})
}

// ChallengeHint returns a model-generated hint for a challenge
func ChallengeHint(ctx *gin.Context) {
	challenge, err := db.GetChallenge(ctx.Request.Context(), ctx.Param("id"))
	if err == db.ErrChallengeNotFound {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	hint, err := services.GenerateChallengeHint(ctx.Request.Context(), challenge.Title, challenge.Description, challenge.Difficulty)
	if err == services.ErrHintUnavailable {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Hints are not available"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"hint": hint})
}

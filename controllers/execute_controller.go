package controllers

import (
	"log"
	"net/http"
	"strings"

	"techmastery/config"
	"techmastery/metrics"
	"techmastery/services"
	"techmastery/structs"

	"github.com/gin-gonic/gin"
)

var sandboxLimits services.SandboxLimits

// InitExecute configures the sandbox limits from config
func InitExecute(cfg *config.Config) {
	sandboxLimits = services.SandboxLimits{
		WallTime:       config.Duration(cfg.Sandbox.WallTime, 0),
		MemoryBytes:    cfg.Sandbox.MemoryMB * 1024 * 1024,
		MaxOutputBytes: cfg.Sandbox.MaxOutputBytes,
	}
}

// ExecuteCode runs a submitted snippet in the container sandbox and returns
// its captured output. Execution failures (including timeouts) come back as
// {success:false, error}, not as server errors.
func ExecuteCode(ctx *gin.Context) {
	var request structs.ExecuteCodeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	language := strings.ToLower(strings.TrimSpace(request.Language))
	if language == "" {
		language = string(services.LangJavaScript)
	}

	result, err := services.RunInSandbox(ctx.Request.Context(), services.SandboxLanguage(language), request.Code, sandboxLimits)
	if err == services.ErrUnsupportedLanguage {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Only javascript and python are supported"})
		return
	}
	// Counted only for accepted languages; the label set stays bounded.
	metrics.CodeExecutions.WithLabelValues(language).Inc()
	if err == services.ErrSandboxUnavailable {
		ctx.JSON(http.StatusOK, gin.H{"success": false, "error": "sandbox unavailable"})
		return
	}
	if err != nil {
		log.Printf("Sandbox execution failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Timeouts arrive here too, carrying their own error string.
	if result.Err != "" {
		ctx.JSON(http.StatusOK, gin.H{"success": false, "error": result.Err})
		return
	}
	if result.ExitCode != 0 {
		errOutput := strings.TrimSpace(result.Stderr)
		if errOutput == "" {
			errOutput = "execution failed"
		}
		ctx.JSON(http.StatusOK, gin.H{"success": false, "error": errOutput})
		return
	}

	output := strings.TrimRight(result.Stdout, "\n")
	if output == "" {
		output = "Code executed successfully!"
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "output": output})
}

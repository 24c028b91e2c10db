package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"techmastery/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var geminiClient *genai.Client

// ErrHintUnavailable is returned when no Gemini API key is configured.
var ErrHintUnavailable = errors.New("hint service unavailable")

// InitHintService creates the Gemini client; without an API key the hint
// endpoint degrades gracefully.
func InitHintService(cfg *config.Config) {
	if cfg.Gemini.ApiKey == "" {
		log.Println("Gemini API key not configured, hints disabled")
		return
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		log.Printf("Failed to initialize Gemini client: %v", err)
		return
	}
	geminiClient = client
}

// GenerateChallengeHint asks Gemini for a short nudge toward the solution
// without giving it away.
func GenerateChallengeHint(ctx context.Context, title, description, difficulty string) (string, error) {
	if geminiClient == nil {
		return "", ErrHintUnavailable
	}

	prompt := fmt.Sprintf(
		`A learner is stuck on a %s-level coding challenge titled %q:
%s
Give a single short hint (at most two sentences) that points them toward the
approach. Do not write any code and do not reveal the full solution.`,
		strings.ToLower(difficulty), title, description,
	)

	model := geminiClient.GenerativeModel("gemini-1.5-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil || len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Printf("Failed to generate hint: %v", err)
		return "", ErrHintUnavailable
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return strings.TrimSpace(string(text)), nil
		}
	}
	return "", ErrHintUnavailable
}

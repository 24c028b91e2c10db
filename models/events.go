package models

import "time"

// ProgressEvent is broadcast over the websocket hub when a user's progress
// changes, so connected clients can refresh without polling.
type ProgressEvent struct {
	Type        string    `json:"type"` // "progress_updated"
	UserID      string    `json:"userId"`
	ChallengeID int       `json:"challengeId"`
	Points      int       `json:"points"`
	TotalPoints int       `json:"totalPoints"`
	Timestamp   time.Time `json:"timestamp"`
}

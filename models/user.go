package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress holds a user's cumulative learning state
type Progress struct {
	TotalPoints         int        `bson:"totalPoints" json:"totalPoints"`
	CompletedChallenges []int      `bson:"completedChallenges" json:"completedChallenges"`
	CompletedFields     []int      `bson:"completedFields" json:"completedFields"`
	CompletedMissions   []int      `bson:"completedMissions" json:"completedMissions"`
	CurrentStreak       int        `bson:"currentStreak" json:"currentStreak"`
	LastActive          *time.Time `bson:"lastActive,omitempty" json:"lastActive,omitempty"`
}

// User defines a user entity. GoogleID and Nickname are the two login keys:
// OAuth logins resolve by GoogleID, nickname logins by Nickname.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GoogleID     string             `bson:"googleId,omitempty" json:"googleId,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Nickname     string             `bson:"nickname" json:"nickname"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Progress     Progress           `bson:"progress" json:"progress"`
	Achievements []int              `bson:"achievements" json:"achievements"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewProgress returns the zero progress block for a freshly created user
func NewProgress() Progress {
	return Progress{
		CompletedChallenges: []int{},
		CompletedFields:     []int{},
		CompletedMissions:   []int{},
	}
}

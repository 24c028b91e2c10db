package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Challenge difficulty tiers
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// TestCase is a single input/expected-output pair attached to a challenge
type TestCase struct {
	Input          string `bson:"input" json:"input"`
	ExpectedOutput string `bson:"expectedOutput" json:"expectedOutput"`
}

// Challenge is a single coding exercise. ChallengeID is the stable seed
// ordinal (1..500) that progress tracking refers to; the Mongo _id is only
// used for direct lookups.
type Challenge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ChallengeID int                `bson:"challengeId" json:"challengeId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Difficulty  string             `bson:"difficulty" json:"difficulty"`
	Category    string             `bson:"category" json:"category"`
	Points      int                `bson:"points" json:"points"`
	TimeLimit   string             `bson:"timeLimit" json:"timeLimit"`
	TestCases   []TestCase         `bson:"testCases,omitempty" json:"testCases,omitempty"`
	StarterCode string             `bson:"starterCode" json:"starterCode"`
}

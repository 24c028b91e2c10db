package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"techmastery/db"
	"techmastery/models"
)

const defaultStarterCode = "// Write your solution here\nfunction solution() {\n  \n}"

type seedTier struct {
	difficulty  string
	count       int
	points      int
	timeLimit   string
	categories  [3]string
	description string
}

var seedTiers = []seedTier{
	{
		difficulty: models.DifficultyBeginner,
		count:      150,
		points:     10,
		timeLimit:  "30 mins",
		categories: [3]string{"Web Development", "Data Science & AI", "Mobile Development"},
		description: "Solve this beginner-level coding problem to build your foundation. " +
			"Challenge %d focuses on basic programming concepts.",
	},
	{
		difficulty: models.DifficultyIntermediate,
		count:      200,
		points:     25,
		timeLimit:  "60 mins",
		categories: [3]string{"Cloud & DevOps", "Cybersecurity", "Blockchain & Web3"},
		description: "Take your skills to the next level with this intermediate challenge. " +
			"Apply advanced concepts and algorithms.",
	},
	{
		difficulty: models.DifficultyAdvanced,
		count:      150,
		points:     50,
		timeLimit:  "120 mins",
		categories: [3]string{"Game Development", "UI/UX Design", "Web Development"},
		description: "Master-level challenge for true tech geniuses. " +
			"Requires deep understanding of algorithms and data structures.",
	},
}

// GenerateChallenges builds the fixed 500-record catalog: 150 Beginner,
// 200 Intermediate, 150 Advanced, category assigned round-robin within each
// tier. ChallengeID is a stable ordinal across the whole catalog.
func GenerateChallenges() []models.Challenge {
	challenges := make([]models.Challenge, 0, 500)
	ordinal := 0
	for _, tier := range seedTiers {
		for i := 1; i <= tier.count; i++ {
			ordinal++
			description := tier.description
			if tier.difficulty == models.DifficultyBeginner {
				description = fmt.Sprintf(tier.description, i)
			}
			challenges = append(challenges, models.Challenge{
				ChallengeID: ordinal,
				Title:       fmt.Sprintf("%s Challenge %d", tier.difficulty, i),
				Description: description,
				Difficulty:  tier.difficulty,
				Category:    tier.categories[i%3],
				Points:      tier.points,
				TimeLimit:   tier.timeLimit,
				StarterCode: defaultStarterCode,
			})
		}
	}
	return challenges
}

// SeedChallengesIfEmpty bulk-inserts the catalog on first start. Safe to call
// on every boot: a populated catalog is left untouched.
func SeedChallengesIfEmpty() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := db.CountChallenges(ctx)
	if err != nil {
		return fmt.Errorf("failed to count challenges: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding challenges...")
	challenges := GenerateChallenges()
	if err := db.InsertChallenges(ctx, challenges); err != nil {
		return fmt.Errorf("failed to insert seed challenges: %w", err)
	}
	log.Printf("Seeded %d challenges", len(challenges))
	return nil
}

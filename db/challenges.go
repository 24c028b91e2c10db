package db

import (
	"context"
	"strconv"

	"techmastery/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChallengeFilter builds the equality filter for a catalog query; absent
// fields match everything.
func ChallengeFilter(difficulty, category string) bson.M {
	filter := bson.M{}
	if difficulty != "" {
		filter["difficulty"] = difficulty
	}
	if category != "" {
		filter["category"] = category
	}
	return filter
}

// ListChallenges returns up to limit challenges matching the filter in seed order
func ListChallenges(ctx context.Context, difficulty, category string, limit int64) ([]models.Challenge, error) {
	opts := options.Find().SetLimit(limit)
	cursor, err := Challenges().Find(ctx, ChallengeFilter(difficulty, category), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	challenges := []models.Challenge{}
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// GetChallenge fetches a single challenge by hex object id, falling back to
// the numeric seed ordinal when the id is not a valid object id.
func GetChallenge(ctx context.Context, id string) (*models.Challenge, error) {
	var filter bson.M
	if objectID, err := primitive.ObjectIDFromHex(id); err == nil {
		filter = bson.M{"_id": objectID}
	} else if n, ok := parseChallengeNumber(id); ok {
		filter = bson.M{"challengeId": n}
	} else {
		return nil, ErrChallengeNotFound
	}

	var challenge models.Challenge
	err := Challenges().FindOne(ctx, filter).Decode(&challenge)
	if err == mongo.ErrNoDocuments {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// GetChallengeByNumber fetches a challenge by its stable seed ordinal
func GetChallengeByNumber(ctx context.Context, challengeID int) (*models.Challenge, error) {
	var challenge models.Challenge
	err := Challenges().FindOne(ctx, bson.M{"challengeId": challengeID}).Decode(&challenge)
	if err == mongo.ErrNoDocuments {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// CountChallenges returns the catalog size
func CountChallenges(ctx context.Context) (int64, error) {
	return Challenges().CountDocuments(ctx, bson.M{})
}

// InsertChallenges bulk-inserts seed records
func InsertChallenges(ctx context.Context, challenges []models.Challenge) error {
	documents := make([]interface{}, 0, len(challenges))
	for _, challenge := range challenges {
		documents = append(documents, challenge)
	}
	_, err := Challenges().InsertMany(ctx, documents)
	return err
}

func parseChallengeNumber(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

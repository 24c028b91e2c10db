package db

import (
	"context"
	"time"

	"techmastery/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GoogleProfile carries the identity fields returned by the OAuth provider
type GoogleProfile struct {
	SubjectID string
	Email     string
	Name      string
	Avatar    string
}

// ResolveUserByGoogleID finds the user matching the OAuth subject id, creating
// the record atomically on first login. The upsert makes two near-simultaneous
// first logins resolve to a single record.
func ResolveUserByGoogleID(ctx context.Context, profile GoogleProfile) (*models.User, error) {
	filter := bson.M{"googleId": profile.SubjectID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"email":        profile.Email,
			"nickname":     profile.Name,
			"avatar":       profile.Avatar,
			"progress":     models.NewProgress(),
			"achievements": []int{},
			"createdAt":    time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	if err := Users().FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ResolveUserByNickname finds the user matching the nickname, creating the
// record atomically on first login with a synthesized local email and the
// given avatar.
func ResolveUserByNickname(ctx context.Context, nickname, avatar string) (*models.User, error) {
	filter := bson.M{"nickname": nickname}
	update := bson.M{
		"$setOnInsert": bson.M{
			"email":        nickname + "@techmastery.local",
			"avatar":       avatar,
			"progress":     models.NewProgress(),
			"achievements": []int{},
			"createdAt":    time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	if err := Users().FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID fetches a user by hex object id
func FindUserByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var user models.User
	err = Users().FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RecordCompletion credits a challenge to a user exactly once. The filter
// excludes users that already hold the challenge id, so the membership check
// and the append happen in a single conditional update; a replayed completion
// matches nothing and the current progress is returned unchanged. The returned
// bool reports whether this call was the first-time completion.
func RecordCompletion(ctx context.Context, userID string, challengeID, points int) (*models.User, bool, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false, ErrUserNotFound
	}

	filter := bson.M{
		"_id":                           objectID,
		"progress.completedChallenges": bson.M{"$ne": challengeID},
	}
	update := bson.M{
		"$addToSet": bson.M{"progress.completedChallenges": challengeID},
		"$inc":      bson.M{"progress.totalPoints": points},
		"$set":      bson.M{"progress.lastActive": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err = Users().FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err == nil {
		return &user, true, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, err
	}

	// Already completed, or the user is gone; either way no credit is applied.
	err = Users().FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, false, ErrUserNotFound
	}
	if err != nil {
		return nil, false, err
	}
	return &user, false, nil
}

package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"techmastery/db"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func progressRouter(userID string) *gin.Engine {
	router := gin.New()
	router.POST("/api/user/update-progress", func(c *gin.Context) {
		c.Set("userID", userID)
		UpdateProgress(c)
	})
	return router
}

func postProgress(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/user/update-progress", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateProgressUnknownChallenge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown challenge yields 404", func(mt *mtest.T) {
		db.MongoDatabase = mt.Client.Database("tech-mastery")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "tech-mastery.challenges", mtest.FirstBatch))

		router := progressRouter(primitive.NewObjectID().Hex())
		w := postProgress(router, `{"challengeId": 9999}`)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Challenge not found") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	mt.Run("caller points are ignored", func(mt *mtest.T) {
		db.MongoDatabase = mt.Client.Database("tech-mastery")
		userID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "tech-mastery.challenges", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "challengeId", Value: 1},
				{Key: "points", Value: 10},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: userID},
				{Key: "progress", Value: bson.D{
					{Key: "totalPoints", Value: 10},
					{Key: "completedChallenges", Value: bson.A{1}},
				}},
			}}),
		)

		router := progressRouter(userID.Hex())
		w := postProgress(router, `{"challengeId": 1, "points": 99999}`)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		// First command is the challenge lookup; second is the credit.
		mt.GetStartedEvent()
		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "findAndModify" {
			t.Fatalf("expected a findAndModify command, got %+v", evt)
		}
		if got := evt.Command.Lookup("update", "$inc", "progress.totalPoints").AsInt64(); got != 10 {
			t.Fatalf("credited %d points, want the challenge's 10", got)
		}
	})
}

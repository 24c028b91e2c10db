package routes

import (
	"techmastery/controllers"

	"github.com/gin-gonic/gin"
)

func ListChallengesRouteHandler(ctx *gin.Context) {
	controllers.ListChallenges(ctx)
}

func GetChallengeRouteHandler(ctx *gin.Context) {
	controllers.GetChallenge(ctx)
}

func ChallengeHintRouteHandler(ctx *gin.Context) {
	controllers.ChallengeHint(ctx)
}

func ExecuteCodeRouteHandler(ctx *gin.Context) {
	controllers.ExecuteCode(ctx)
}

func HealthRouteHandler(ctx *gin.Context) {
	controllers.Health(ctx)
}

package routes

import (
	"techmastery/controllers"

	"github.com/gin-gonic/gin"
)

func GetProgressRouteHandler(ctx *gin.Context) {
	controllers.GetProgress(ctx)
}

func UpdateProgressRouteHandler(ctx *gin.Context) {
	controllers.UpdateProgress(ctx)
}

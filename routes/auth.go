package routes

import (
	"techmastery/controllers"

	"github.com/gin-gonic/gin"
)

func GoogleLoginRouteHandler(ctx *gin.Context) {
	controllers.GoogleLogin(ctx)
}

func GoogleCallbackRouteHandler(ctx *gin.Context) {
	controllers.GoogleCallback(ctx)
}

func SimpleLoginRouteHandler(ctx *gin.Context) {
	controllers.SimpleLogin(ctx)
}

func LogoutRouteHandler(ctx *gin.Context) {
	controllers.Logout(ctx)
}

func CurrentUserRouteHandler(ctx *gin.Context) {
	controllers.CurrentUser(ctx)
}

package main

import (
	"context"
	"log"
	"strconv"

	"techmastery/config"
	"techmastery/controllers"
	"techmastery/db"
	"techmastery/metrics"
	"techmastery/middlewares"
	"techmastery/routes"
	"techmastery/services"
	"techmastery/utils"
	"techmastery/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Bootstrap the challenge catalog on first start
	if err := utils.SeedChallengesIfEmpty(); err != nil {
		log.Fatalf("Failed to seed challenges: %v", err)
	}
	if count, err := db.CountChallenges(context.Background()); err == nil {
		metrics.ChallengesSeeded.Set(float64(count))
	}

	sessionStore := services.NewSessionStore(cfg)
	controllers.InitAuth(cfg, sessionStore)
	controllers.InitExecute(cfg)
	services.InitHintService(cfg)

	router := setupRouter(cfg, sessionStore)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config, sessionStore services.SessionStore) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes
	router.GET("/auth/google", routes.GoogleLoginRouteHandler)
	router.GET("/auth/google/callback", routes.GoogleCallbackRouteHandler)
	router.GET("/auth/logout", routes.LogoutRouteHandler)
	router.POST("/api/auth/simple-login", routes.SimpleLoginRouteHandler)
	router.GET("/api/challenges", routes.ListChallengesRouteHandler)
	router.GET("/api/challenges/:id", routes.GetChallengeRouteHandler)
	router.POST("/api/challenges/:id/hint", routes.ChallengeHintRouteHandler)
	router.POST("/api/execute-code", routes.ExecuteCodeRouteHandler)
	router.GET("/health", routes.HealthRouteHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes (session auth)
	auth := router.Group("/")
	auth.Use(middlewares.SessionMiddleware(sessionStore))
	{
		auth.GET("/auth/user", routes.CurrentUserRouteHandler)
		auth.GET("/api/user/progress", routes.GetProgressRouteHandler)
		auth.POST("/api/user/update-progress", routes.UpdateProgressRouteHandler)

		// Live progress event stream
		auth.GET("/ws/progress", websocket.ProgressHandler(sessionStore))
	}

	return router
}

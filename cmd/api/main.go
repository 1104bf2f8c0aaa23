package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"steprush-backend/internal/config"
	"steprush-backend/internal/handlers"
	"steprush-backend/internal/middleware"
	"steprush-backend/internal/models"
	"steprush-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	policy, err := services.PolicyByName(models.PolicyName(cfg.Game.Policy))
	if err != nil {
		log.Fatalf("Failed to select outcome policy: %v", err)
	}

	var rateLimiter *services.RateLimiter
	if cfg.RedisAddr != "" {
		rateLimiter, err = services.NewRateLimiter(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rateLimiter.Close()
	} else {
		log.Println("REDIS_ADDR not set, rate limiting disabled")
	}

	jwtService := services.NewJWTService(cfg)
	wallets := services.NewWalletService(cfg.Game.StartingBalance)
	gameEngine := services.NewGameEngine(cfg.Game, policy, wallets)

	wsHandler := handlers.NewWebSocketHandler(wallets)
	gameEngine.SetBroadcaster(wsHandler)

	authHandler := handlers.NewAuthHandler(jwtService)
	gameHandler := handlers.NewGameHandler(gameEngine, wallets)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/guest", authHandler.GuestLogin)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(rateLimiter))
	{
		protected.GET("/ws", wsHandler.HandleWebSocket)

		games := protected.Group("/games")
		{
			games.POST("/start", gameHandler.StartGame)
			games.POST("/step", gameHandler.MakeStep)
			games.POST("/cashout", gameHandler.Cashout)
			games.GET("/balance", gameHandler.GetBalance)
			games.GET("/history", gameHandler.GetHistory)
			games.GET("/multipliers", gameHandler.GetMultipliers)

			games.GET("/session/:id", gameHandler.GetSession)
			games.DELETE("/session/:id", gameHandler.ClearSession)

			games.GET("/verification/:id", gameHandler.GetVerificationData)
			games.POST("/verify", gameHandler.VerifyGame)
		}
	}

	log.Printf("Server starting on port %s (policy: %s)", cfg.Port, policy.Name())
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

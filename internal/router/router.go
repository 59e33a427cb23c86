package router

import (
	"net/http"

	"roomboard/backend/internal/auth"
	"roomboard/backend/internal/config"
	"roomboard/backend/internal/handler"
	"roomboard/backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	// Swagger imports
	_ "roomboard/backend/docs" // registers the swagger document

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires every route. redisClient may be nil, which disables rate limiting.
func NewRouter(cfg *config.Config, h *handler.Handler, redisClient *redis.Client) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(middleware.MethodNotAllowed)
	router.Use(middleware.RequestLogger(), middleware.Recovery())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	var writeLimit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if redisClient != nil {
		writeLimit = middleware.RateLimit(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	api := router.Group(cfg.APIPrefix)
	{
		// Room routes sweep expired content before every request
		roomRoutes := api.Group("/rooms")
		roomRoutes.Use(h.PrepareRooms())
		{
			roomRoutes.GET("", h.ListRooms)
			roomRoutes.POST("", writeLimit, h.CreateRoom)

			messageRoutes := roomRoutes.Group("/:id/messages")
			messageRoutes.Use(auth.RoomAccessMiddleware(h.Store(), h.Hasher()))
			{
				messageRoutes.GET("", h.ListMessages)
				messageRoutes.POST("", writeLimit, h.CreateMessage)
			}
		}

		boardRoutes := api.Group("/message-board")
		boardRoutes.Use(h.RequireSchema())
		{
			boardRoutes.GET("", h.ListBoardPosts)
			boardRoutes.POST("", writeLimit, h.CreateBoardPost)
		}

		api.POST("/feedback", h.RequireSchema(), writeLimit, h.CreateFeedback)

		mobyCORS := middleware.CORS("POST, OPTIONS")
		api.OPTIONS("/moby", mobyCORS)
		api.POST("/moby", mobyCORS, writeLimit, h.ChatWithMoby)
	}

	return router
}

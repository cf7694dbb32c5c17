package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retrieverhq/retriever-study/internal/app/controllers"
	"github.com/retrieverhq/retriever-study/internal/middleware"
	"github.com/retrieverhq/retriever-study/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	groupController *controllers.GroupController,
	searchController *controllers.SearchController,
	userController *controllers.UserController,
	messageController *controllers.MessageController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Health check (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.GET("/google/url", authController.GetGoogleLoginURL)
		auth.POST("/google", authController.LoginWithGoogle)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// User profile routes
	users := authenticated.Group("/users")
	{
		users.GET("/me", userController.GetMyProfile)
		users.PUT("/me", userController.UpdateMyProfile)
		users.GET("/:id", userController.GetUserByID)
	}

	// Study group routes
	groups := authenticated.Group("/groups")
	{
		groups.POST("", groupController.CreateGroup)
		groups.GET("", groupController.GetAllGroups)
		groups.GET("/mine", groupController.GetMyGroups)
		groups.GET("/:id", groupController.GetGroupByID)
		groups.PUT("/:id", groupController.UpdateGroup)
		groups.POST("/:id/join", groupController.JoinGroup)
		groups.POST("/:id/leave", groupController.LeaveGroup)

		// Group chat
		groups.POST("/:id/messages", messageController.SendMessage)
		groups.GET("/:id/messages", messageController.GetMessageHistory)
		groups.GET("/:id/chat/ws", wsHandler.HandleConnection)
	}

	// Search and recommendations
	authenticated.GET("/search", searchController.SearchGroups)
	authenticated.GET("/recommendations", searchController.GetRecommendations)
}

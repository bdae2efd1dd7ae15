package auth

import (
	"go-hrops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, credentials middleware.CredentialService) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", middleware.RateLimitByIP(0.1, 3), handler.Signup)
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/verify", middleware.AuthMiddleware(credentials), middleware.RateLimitByUser(2, 5), handler.Verify)
		auth.PUT("/password", middleware.AuthMiddleware(credentials), middleware.RateLimitByUser(0.2, 2), handler.ChangePassword)
	}
}

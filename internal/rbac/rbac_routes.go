package rbac

import (
	"go-hrops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, credentials middleware.CredentialService) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(credentials))
	{
		group.GET("/permissions", handler.Permissions)
	}
}

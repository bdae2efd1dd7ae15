package settings

import (
	"go-hrops/internal/middleware"
	"go-hrops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, credentials middleware.CredentialService, rbacService rbac.Service) {
	settings := r.Group("/settings")
	settings.Use(middleware.AuthMiddleware(credentials))
	{
		settings.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceSettings, rbac.ActionRead), h.Get)
		settings.PUT("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSettings, rbac.ActionUpdate),
			h.Update,
		)
	}
}

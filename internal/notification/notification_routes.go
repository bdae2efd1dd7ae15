package notification

import (
	"go-hrops/internal/middleware"
	"go-hrops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	credentials middleware.CredentialService,
	rbacService rbac.Service,
) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(credentials))
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead), h.GetAll)
		notifications.PATCH("/:id/read", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate), h.MarkRead)
	}
}

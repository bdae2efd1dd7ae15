package user

import (
	"go-hrops/internal/middleware"
	"go-hrops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	credentials middleware.CredentialService,
	rbacService rbac.Service,
) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(credentials))
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionRead),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionRead),
			handler.GetByID,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionCreate),
			handler.Create,
		)

		users.PATCH("/:id/role",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionChangeRole),
			handler.ChangeRole,
		)
	}
}

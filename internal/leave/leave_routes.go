package leave

import (
	"go-hrops/internal/middleware"
	"go-hrops/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	credentials middleware.CredentialService,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(credentials))
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), handler.GetByID)
		leaves.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.PATCH("/:id/status",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionApprove),
			handler.UpdateStatus,
		)
	}
}

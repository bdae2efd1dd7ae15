package attendance

import (
	"go-hrops/internal/middleware"
	"go-hrops/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	credentials middleware.CredentialService,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware(credentials))
	{
		attendances.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead),
			h.GetAll,
		)
		attendances.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			h.Create,
		)
		attendances.PATCH("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionUpdate),
			h.Update,
		)
	}
}

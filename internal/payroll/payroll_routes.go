package payroll

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
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware(credentials))
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead), handler.GetAll)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead), handler.GetByID)
		payrolls.POST(
			"",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		payrolls.PATCH(
			"/:id/status",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionUpdateStatus),
			handler.UpdateStatus,
		)
	}
}

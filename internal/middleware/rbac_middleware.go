package middleware

import (
	"net/http"

	autherrors "go-hrops/internal/auth/errors"
	"go-hrops/internal/domain"
	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service; declared here so the middleware
// does not import the rbac package.
type RBACService interface {
	Permits(role domain.Role, resource, action string) bool
}

// RBACAuthorize rejects callers whose role has no grant at all for
// resource:action. Ownership checks happen later in the services.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			abortWithError(c, autherrors.ErrTokenMissing)
			return
		}

		if !service.Permits(actor.Role, resource, action) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action, "role": actor.Role.String()},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}

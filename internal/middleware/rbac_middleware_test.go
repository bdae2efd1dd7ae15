package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrops/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRBAC struct {
	permitsFn func(role domain.Role, resource, action string) bool
}

func (f *fakeRBAC) Permits(role domain.Role, resource, action string) bool {
	return f.permitsFn(role, resource, action)
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeRBAC{permitsFn: func(role domain.Role, resource, action string) bool {
		return role.Is(domain.RoleManager) && resource == "leave" && action == "approve"
	}}

	newRouter := func(actor *domain.Actor) *gin.Engine {
		r := gin.New()
		r.PATCH("/leaves/:id/status",
			func(c *gin.Context) {
				if actor != nil {
					c.Set(ContextActor, *actor)
				}
				c.Next()
			},
			RBACAuthorize(svc, "leave", "approve"),
			func(c *gin.Context) { c.Status(http.StatusNoContent) },
		)
		return r
	}

	tests := []struct {
		name   string
		actor  *domain.Actor
		status int
	}{
		{"manager passes", &domain.Actor{ID: 1, Role: domain.Predefined(domain.RoleManager)}, http.StatusNoContent},
		{"employee forbidden", &domain.Actor{ID: 2, Role: domain.Predefined(domain.RoleEmployee)}, http.StatusForbidden},
		{"custom role forbidden", &domain.Actor{ID: 3, Role: domain.Custom("Intern")}, http.StatusForbidden},
		{"no actor", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRouter(tt.actor).ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/leaves/1/status", nil))
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, w).Error.Code)
			}
		})
	}
}

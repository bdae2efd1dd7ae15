package rbac

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrops/internal/domain"
	"go-hrops/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Permissions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(newTestService(t))

	t.Run("returns grants of caller", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil)
		c.Set(middleware.ContextActor, domain.Actor{ID: 1, Role: domain.Predefined(domain.RolePayrollOfficer)})

		handler.Permissions(c)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Ok   bool               `json:"ok"`
			Data PermissionResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Ok)
		assert.Equal(t, "Payroll Officer", body.Data.Role)
		assert.NotEmpty(t, body.Data.Permissions)
	})

	t.Run("missing actor", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil)

		handler.Permissions(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

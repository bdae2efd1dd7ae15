package rbac

import (
	"net/http"

	"go-hrops/internal/middleware"
	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Permissions lists the grants of the calling actor so clients can hide
// actions they cannot perform.
func (h *Handler) Permissions(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
		return
	}

	response.Success(c, http.StatusOK, PermissionResponse{
		Role:        actor.Role.String(),
		Permissions: h.service.GrantsFor(actor.Role),
	}, nil)
}

package settings

import (
	"net/http"

	"go-hrops/internal/middleware"
	"go-hrops/internal/shared/apperror"
	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.service.Get(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Update(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", httpErr.Message, err.Error())
		return
	}

	res, err := h.service.Update(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

package leave

import (
	"net/http"
	"strings"

	"go-hrops/internal/middleware"
	"go-hrops/internal/shared/apperror"
	"go-hrops/internal/shared/request"
	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var filter ListFilter
	if filter.UserID, err = request.OptionalQueryID(c, "user_id"); err != nil {
		h.writeServiceError(c, err)
		return
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st, err := ParseStatus(raw)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		filter.Status = &st
	}

	resp, err := h.service.GetAll(c.Request.Context(), actor, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	id, err := request.PathID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	id, err := request.PathID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

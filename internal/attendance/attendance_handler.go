package attendance

import (
	"net/http"
	"strings"
	"time"

	attendanceerrors "go-hrops/internal/attendance/errors"
	"go-hrops/internal/middleware"
	"go-hrops/internal/shared/apperror"
	"go-hrops/internal/shared/request"
	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	id, err := request.PathID(c, "id")
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var filter ListFilter
	if filter.UserID, err = request.OptionalQueryID(c, "user_id"); err != nil {
		writeServiceError(c, err)
		return
	}
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeServiceError(c, attendanceerrors.ErrInvalidDate)
			return
		}
		filter.Date = &d
	}

	resp, err := h.service.GetAll(c.Request.Context(), actor, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

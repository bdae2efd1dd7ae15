package payroll

import (
	"net/http"
	"strings"

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

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Amount binds through decimal.Decimal, so "abc" fails here with a 400.
	var req CreatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

	filter := ListFilter{Month: strings.TrimSpace(c.Query("month"))}
	if filter.UserID, err = request.OptionalQueryID(c, "user_id"); err != nil {
		h.writeServiceError(c, err)
		return
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

	var req UpdatePayrollStatusRequest
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

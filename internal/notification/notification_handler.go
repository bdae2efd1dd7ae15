package notification

import (
	"net/http"
	"strconv"

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

func (h *Handler) GetAll(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))

	resp, err := h.service.GetAll(c.Request.Context(), actor, unreadOnly)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) MarkRead(c *gin.Context) {
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

	resp, err := h.service.MarkRead(c.Request.Context(), actor, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

package user

import (
	"net/http"
	"sort"
	"strings"

	"go-hrops/internal/middleware"
	"go-hrops/internal/shared/apperror"
	"go-hrops/internal/shared/request"
	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, logger: l}
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
	userID, err := request.OptionalQueryID(c, "user_id")
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.logger.Debug("http get all users", zap.Uint("actor_id", actor.ID))

	resp, err := h.svc.GetAll(c.Request.Context(), actor, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]UserResponse, 0, len(resp))
		for _, u := range resp {
			if strings.Contains(strings.ToLower(u.Email), q) || strings.Contains(strings.ToLower(u.Name), q) {
				filtered = append(filtered, u)
			}
		}
		resp = filtered
	}

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "id")))
	sortDir := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_dir", "asc")))
	if sortDir != "desc" {
		sortDir = "asc"
	}

	sort.SliceStable(resp, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "email":
			less = strings.ToLower(resp[i].Email) < strings.ToLower(resp[j].Email)
		case "name":
			less = strings.ToLower(resp[i].Name) < strings.ToLower(resp[j].Name)
		default:
			less = resp[i].ID < resp[j].ID
		}
		if sortDir == "desc" {
			return !less
		}
		return less
	})

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
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

	res, err := h.svc.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Create(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	res, err := h.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) ChangeRole(c *gin.Context) {
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

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	res, err := h.svc.ChangeRole(c.Request.Context(), actor, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

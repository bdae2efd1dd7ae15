package auth

import (
	"net/http"
	"time"

	"go-hrops/internal/middleware"
	"go-hrops/internal/shared/apperror"
	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service      Service
	secureCookie bool
}

func NewHandler(s Service, secureCookie bool) *Handler {
	return &Handler{service: s, secureCookie: secureCookie}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (ctrl *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	res, err := ctrl.service.Signup(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	ctrl.setTokenCookie(c, res)
	response.Success(c, http.StatusCreated, res, nil)
}

func (ctrl *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	res, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	ctrl.setTokenCookie(c, res)
	response.Success(c, http.StatusOK, res, nil)
}

func (ctrl *Handler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ctrl.secureCookie,
		SameSite: http.SameSiteLaxMode, // harus sama dengan login
	})

	response.Success(c, http.StatusOK, "Logout success.", nil)
}

func (ctrl *Handler) Verify(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	info, err := ctrl.service.Me(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, info, nil)
}

func (ctrl *Handler) ChangePassword(c *gin.Context) {
	actor, err := middleware.RequireActor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	if err := ctrl.service.ChangePassword(c.Request.Context(), actor, req); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Password updated.", nil)
}

func (ctrl *Handler) setTokenCookie(c *gin.Context, res AuthResponse) {
	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   ctrl.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

package middleware

import (
	"context"
	"strconv"
	"strings"

	autherrors "go-hrops/internal/auth/errors"
	"go-hrops/internal/domain"
	"go-hrops/internal/shared/apperror"
	"go-hrops/internal/shared/contextutil"
	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextActor           = "actor"
	ContextUserID          = "user_id"
	ContextUserIDValidated = "user_id_validated"
	AccessTokenCookie      = "access_token"
)

// CredentialService resolves a bearer token into the current actor. Failures
// must be autherrors sentinels so they surface as 401.
type CredentialService interface {
	Authenticate(ctx context.Context, token string) (domain.Actor, error)
}

func AuthMiddleware(credentials CredentialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		tokenString = strings.TrimSpace(tokenString)

		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWithError(c, autherrors.ErrTokenMissing)
			return
		}

		actor, err := credentials.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			abortWithError(c, err)
			return
		}

		uid := strconv.FormatUint(uint64(actor.ID), 10)
		c.Set(ContextActor, actor)
		c.Set(ContextUserID, uid)
		c.Set(ContextUserIDValidated, uid)

		ctx := contextutil.WithUserID(c.Request.Context(), uid)
		reqLogger := contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", uid))
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// CurrentActor returns the actor stored by AuthMiddleware.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

// RequireActor is CurrentActor for handlers: a missing actor is a 401.
func RequireActor(c *gin.Context) (domain.Actor, error) {
	actor, ok := CurrentActor(c)
	if !ok {
		return domain.Actor{}, autherrors.ErrTokenMissing
	}
	return actor, nil
}

func abortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}

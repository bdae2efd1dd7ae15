package request

import (
	"strings"

	"go-hrops/internal/shared/apperror"
	"go-hrops/internal/shared/dbutil"

	"github.com/gin-gonic/gin"
)

// PathID parses a numeric path parameter.
func PathID(c *gin.Context, name string) (uint, error) {
	id, ok := dbutil.ParseID(c.Param(name))
	if !ok {
		return 0, apperror.ErrInvalidID.WithDetails(gin.H{"param": name})
	}
	return id, nil
}

// OptionalQueryID parses an optional numeric query filter such as ?user_id=.
func OptionalQueryID(c *gin.Context, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, ok := dbutil.ParseID(raw)
	if !ok {
		return nil, apperror.ErrInvalidID.WithDetails(gin.H{"param": name})
	}
	return &id, nil
}

package user

import (
	"errors"

	"go-hrops/internal/shared/dbutil"
	usererrors "go-hrops/internal/user/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return usererrors.ErrUserNotFound
	case dbutil.IsUniqueViolation(err, "uq_users_email"):
		return usererrors.ErrUserAlreadyExists
	default:
		return err
	}
}

package leave

import (
	"errors"

	leaveerrors "go-hrops/internal/leave/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return leaveerrors.ErrLeaveNotFound
	default:
		return err
	}
}

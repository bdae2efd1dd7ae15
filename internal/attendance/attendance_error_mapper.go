package attendance

import (
	"errors"

	attendanceerrors "go-hrops/internal/attendance/errors"
	"go-hrops/internal/shared/dbutil"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return attendanceerrors.ErrAttendanceNotFound
	case dbutil.IsUniqueViolation(err, "uq_attendance_user_date"):
		return attendanceerrors.ErrAttendanceExists
	default:
		return err
	}
}

package attendanceerrors

import (
	"net/http"

	"go-hrops/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrAttendanceExists = apperror.New(
		apperror.CodeConflict,
		"Attendance already recorded for this user and date",
		http.StatusConflict,
	)

	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"Attendance already checked out",
		http.StatusConflict,
	)

	ErrInvalidInterval = apperror.New(
		apperror.CodeInvalidInterval,
		"check_out must not be before check_in",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of Present, Absent, Half Day, Leave",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrCheckInRequired = apperror.New(
		apperror.CodeInvalidInput,
		"check_in is required when check_out is set",
		http.StatusBadRequest,
	)

	ErrNothingToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"Provide check_out or status",
		http.StatusBadRequest,
	)
)

package leaveerrors

import (
	"net/http"

	"go-hrops/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidInterval = apperror.New(
		apperror.CodeInvalidInterval,
		"to must be on or after from",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of Pending, Approved, Rejected",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"status must be Approved or Rejected",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	// ErrAlreadyProcessed carries the current status in its message, see
	// leave.CanTransition.
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"AlreadyProcessed",
		http.StatusConflict,
	)
)

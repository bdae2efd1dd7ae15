package payrollerrors

import (
	"net/http"

	"go-hrops/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrPayrollExists = apperror.New(
		apperror.CodeConflict,
		"payroll already exists for this user and month",
		http.StatusConflict,
	)
	ErrAlreadyPaid = apperror.New(
		apperror.CodeConflict,
		"payroll already paid",
		http.StatusConflict,
	)
	ErrStatusRegression = apperror.New(
		apperror.CodeConflict,
		"cannot regress from Processing to Pending",
		http.StatusConflict,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of Pending, Processing, Paid",
		http.StatusBadRequest,
	)
	ErrPaidAtCreation = apperror.New(
		apperror.CodeInvalidInput,
		"payroll must be created as Pending or Processing",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a non-negative number with at most 2 decimals",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month is required",
		http.StatusBadRequest,
	)
)

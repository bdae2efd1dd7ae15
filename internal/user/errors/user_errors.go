package usererrors

import (
	"net/http"

	"go-hrops/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of Employee, Manager, Admin, HR Officer, Payroll Officer",
		http.StatusBadRequest,
	)

	ErrInvalidPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid password",
		http.StatusBadRequest,
	)
)

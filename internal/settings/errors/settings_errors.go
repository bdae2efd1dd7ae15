package settingserrors

import (
	"net/http"

	"go-hrops/internal/shared/apperror"
)

var (
	ErrInvalidThresholds = apperror.New(
		apperror.CodeInvalidInput,
		"half_day_min_hours must be greater than 0 and lower than full_day_hours, and full_day_hours at most 24",
		http.StatusBadRequest,
	)

	ErrInvalidWorkingHours = apperror.New(
		apperror.CodeInvalidInput,
		"workday_start must be before workday_end (HH:MM)",
		http.StatusBadRequest,
	)
)

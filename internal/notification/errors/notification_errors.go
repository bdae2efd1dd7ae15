package notificationerrors

import (
	"net/http"

	"go-hrops/internal/shared/apperror"
)

var ErrNotificationNotFound = apperror.New(
	apperror.CodeNotFound,
	"notification not found",
	http.StatusNotFound,
)

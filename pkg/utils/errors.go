package utils

import (
	"net/http"

	"github.com/GlebRadaev/gosplit/internal/apperrors"
	"go.uber.org/zap"
)

// StatusFromError maps a service error to its HTTP status.
func StatusFromError(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidInput:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindSplitMismatch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithServiceError writes err with the status of its kind. Unknown
// errors are logged and hidden behind a generic message.
func RespondWithServiceError(w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		if apperrors.KindOf(err) != apperrors.KindPersistence {
			RespondWithError(w, status, "Internal server error")
			return
		}
	}
	RespondWithError(w, status, err.Error())
}

package apperror

import (
	"errors"
	"net/http"
	"time"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindAccessDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidReference, KindDuplicateEmail, KindDuplicateUsername, KindValidation:
		return http.StatusBadRequest
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Response builds the body for err. An unclassified error is answered with
// 400 and its own message.
func Response(err error, now time.Time) ErrorResponse {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return ErrorResponse{
			Status:    http.StatusBadRequest,
			Code:      CodeValidation,
			Message:   err.Error(),
			Timestamp: now,
		}
	}

	msg := appErr.Message
	if appErr.Kind == KindInternal {
		msg = "An unexpected error occurred"
	}
	return ErrorResponse{
		Status:    HTTPStatus(appErr.Kind),
		Code:      appErr.Code,
		Message:   msg,
		Timestamp: now,
	}
}

package errors

import (
	stdErrors "errors"
	"net/http"
)

// MapToHTTPStatus picks the response status for an error returned by the service layer.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case stdErrors.Is(err, ErrTransactionNotFound):
		return http.StatusNotFound
	case stdErrors.Is(err, ErrInvalidSender),
		stdErrors.Is(err, ErrInvalidMessage),
		stdErrors.Is(err, ErrInvalidBits),
		stdErrors.Is(err, ErrEmptyQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

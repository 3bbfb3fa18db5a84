package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
)

const internalErrorMessage = "This is an internal server error. We are working on resolving the issue. Please try again later."

// Envelope is the body of every response.
type Envelope struct {
	Error      bool   `json:"error"`
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Detail     any    `json:"detail"`
	Reason     string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, message string, detail any) {
	if detail == nil {
		detail = map[string]string{}
	}
	writeJSON(w, http.StatusOK, Envelope{
		Status:     "success",
		StatusCode: http.StatusOK,
		Message:    message,
		Detail:     detail,
	})
}

func writeFail(w http.ResponseWriter, code int, reason, message, detail string) {
	writeJSON(w, code, Envelope{
		Error:      true,
		Status:     "fail",
		StatusCode: code,
		Message:    message,
		Detail:     detail,
		Reason:     reason,
	})
}

// httpStatus maps domain errors to HTTP status codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFoundOrAlreadyRevoked), errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrDuplicateToken):
		return http.StatusConflict
	case errors.Is(err, common.ErrDenylistDisabled):
		return http.StatusNotImplemented
	case errors.Is(err, common.ErrStorage), errors.Is(err, common.ErrUserService):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

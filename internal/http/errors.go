package httpx

import (
	"net/http"

	apperrors "github.com/medtrack/medtrack-api/internal/errors"
)

// statusForError maps application error codes to HTTP status codes.
func statusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeConflict, apperrors.ErrCodeForeignKey:
		return http.StatusConflict
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return 499 // client closed request
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError writes a JSON error response for a service-layer error,
// picking the status from the error's code. Field-level validation errors
// carry the field name in the payload.
func WriteAppError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}

	body := map[string]string{"error": string(code), "message": err.Error()}
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs.
		body["message"] = "internal server error"
	}
	if field := apperrors.GetField(err); field != "" {
		body["field"] = field
	}
	WriteJSON(w, status, body)
}

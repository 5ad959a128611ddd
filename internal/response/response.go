package response

import (
	"encoding/json"
	"net/http"

	"github.com/RouqX7/AthleteConnect/internal/utils"
)

// Response is the uniform envelope every operation returns. Status mirrors
// the HTTP status code the caller should emit.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Data    *T     `json:"data,omitempty"`
}

// Ok wraps a successful result.
func Ok[T any](status int, message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Status:  status,
		Data:    &data,
	}
}

// Fail wraps a failure with no payload.
func Fail[T any](status int, message string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Status:  status,
	}
}

// FromError converts a lower-layer error into a failure envelope, mapping
// tagged AppError codes to HTTP statuses and defaulting to 500.
func FromError[T any](err error, context string) Response[T] {
	status := utils.AppErrorToHTTPStatus(utils.ErrorCode(err))
	return Fail[T](status, context+": "+err.Error())
}

// Write emits the envelope as JSON with its status mirrored onto the HTTP
// response.
func (r Response[T]) Write(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.Status)
	return json.NewEncoder(w).Encode(r)
}

// WriteFail is the non-generic writer used where no payload type exists,
// e.g. middleware rejections and panic recovery.
func WriteFail(w http.ResponseWriter, status int, message string) {
	_ = Fail[struct{}](status, message).Write(w)
}

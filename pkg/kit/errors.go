package kit

import (
	"errors"
	"fmt"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Error is an error whose Message is safe to show to the client.
type Error struct {
	Status  int
	Message string
	Err     error
}

func NewError(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

func WrapError(status int, msg string, err error) *Error {
	return &Error{Status: status, Message: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// HandlerFunc is an http.HandlerFunc that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.HandlerFunc. A returned *Error is written as is;
// anything else is logged and answered with a generic 500.
func Handle(log *zap.Logger, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		var e *Error
		if errors.As(err, &e) {
			if e.Status >= http.StatusInternalServerError && log != nil {
				log.Error("request failed",
					zap.Error(err),
					zap.String("request_id", chimw.GetReqID(r.Context())),
				)
			}
			WriteError(w, e.Status, e.Message)
			return
		}

		if log != nil {
			log.Error("unhandled error",
				zap.Error(err),
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
		}
		WriteError(w, http.StatusInternalServerError, MsgInternal)
	}
}

// Package apperror renders handler failures as the service's JSON error envelope.
//
// Only absence is translated: a NotFound carries its own message and a 404.
// Every other error is passed through as a 500 with the raw underlying message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is a failure with an HTTP status
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports that a looked-up row does not exist
func NotFound(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFound error
func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Status == http.StatusNotFound
}

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Envelope is the body of every non-2xx response
type Envelope struct {
	Error   errorBody `json:"error"`
	Message string    `json:"message"`
}

// Translate maps an error to its status and envelope
func Translate(err error) (int, Envelope) {
	status := http.StatusInternalServerError
	message := err.Error()

	var appErr *Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status, message = appErr.Status, appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	}

	return status, Envelope{Error: errorBody{Message: message, Status: status}, Message: message}
}

// Handler is an echo.HTTPErrorHandler writing the error envelope
func Handler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := Translate(err)
		if status >= http.StatusInternalServerError {
			log.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Error("Failed to write error response", zap.Error(writeErr))
		}
	}
}

package middleware

import (
	"biztime-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxRequestIDLen bounds caller-supplied ids copied into headers and logs
const maxRequestIDLen = 64

// RequestIDMiddleware tags every request with an X-Request-ID.
// A caller's id is reused when it is short and made of [A-Za-z0-9._-];
// anything else is replaced by a fresh UUID.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(logger.RequestIDKey)
		if !validRequestID(requestID) {
			requestID = uuid.New().String()
		}

		// The logger middleware reads the request header, clients read the response header
		c.Request().Header.Set(logger.RequestIDKey, requestID)
		c.Response().Header().Set(logger.RequestIDKey, requestID)
		c.Set(logger.RequestIDKey, requestID)

		return next(c)
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

package middlewares

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/xid"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request with an id, reusing the caller's if
// it sent one.
func RequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestID := c.Get(requestIDHeader)
		if requestID == "" {
			requestID = xid.New().String()
		}

		c.Locals("requestID", requestID)
		c.Set(requestIDHeader, requestID)

		return c.Next()
	}
}

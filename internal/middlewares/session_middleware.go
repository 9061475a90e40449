package middlewares

import (
	"strings"

	"github.com/taskloom/taskloom/internal/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

const userIDContextKey = "userID"

// SessionMiddleware resolves the authenticated principal from the bearer
// token before any handler runs. Requests without a valid, active session are
// rejected with 401.
func SessionMiddleware(verifier auth.SessionVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get("Authorization")

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		session, err := verifier.VerifySession(c.RequestCtx(), token)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("Session verification failed")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		c.Locals(userIDContextKey, session.UserID)

		return c.Next()
	}
}

// UserIDFromContext returns the principal stored by SessionMiddleware.
func UserIDFromContext(c fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", false
	}

	return userID, true
}

package middleware

import (
	"log/slog"
	"strconv"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the signed user identity.
const SessionCookieName = "user_id"

// CurrentUser resolves the session cookie once per request and stores the
// result in Locals. A missing, tampered, or stale cookie leaves the request
// anonymous; it is never an error.
func CurrentUser(signer *auth.Signer, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return c.Next()
		}

		value, ok := signer.Unsign(token)
		if !ok {
			Logger.WarnContext(c.UserContext(), "rejected tampered session cookie",
				slog.String("ip", c.IP()))
			return c.Next()
		}

		uid, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return c.Next()
		}

		user, err := users.GetByID(c.Context(), uint(uid))
		if err != nil {
			// Covers both a deleted user and a store failure; the request
			// proceeds anonymously either way.
			if !models.IsCode(err, models.CodeNotFound) {
				Logger.ErrorContext(c.UserContext(), "session user lookup failed",
					slog.String("error", err.Error()))
			}
			return c.Next()
		}

		c.Locals("userID", user.ID)
		c.Locals("currentUser", user)
		return c.Next()
	}
}

// UserFromLocals returns the resolved user for this request, or nil when the
// request is anonymous.
func UserFromLocals(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}

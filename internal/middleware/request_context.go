package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog/log"
)

// RequestContext puts a request-scoped zerolog logger, tagged with the
// request ID, into the user context so services can log with log.Ctx.
// It must run after requestid.New().
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		logger := log.With().
			Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger()
		c.SetUserContext(logger.WithContext(c.UserContext()))
		return c.Next()
	}
}

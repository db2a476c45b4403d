package middleware

import (
	"catalog/internal/apperr"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Authorize asks the authorizer whether the request may perform action and
// stops the chain with a Forbidden error when it may not.
func Authorize(authorizer services.Authorizer, action services.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authorizer.Authorize(c.UserContext(), action); err != nil {
			return apperr.Forbidden("Not allowed to perform "+string(action), err)
		}
		return c.Next()
	}
}

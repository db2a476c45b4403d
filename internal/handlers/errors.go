package handlers

import (
	"errors"

	"catalog/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	msgRouteNotFound  = "Route not found"
	msgInvalidBody    = "Invalid request body"
	redactedErrDetail = "Internal Server Error"
)

// errorBody renders err as the JSON body and status the API answers with.
// The "error" detail is left out in production.
func errorBody(err error, production bool) (int, fiber.Map) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		body := fiber.Map{"message": apperr.MsgInternalServer}
		if production {
			body["error"] = redactedErrDetail
		} else {
			body["error"] = err.Error()
		}
		return fiber.StatusInternalServerError, body
	}

	body := fiber.Map{"message": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	if appErr.Err != nil && !production {
		body["error"] = appErr.Err.Error()
	}
	return apperr.StatusCode(appErr), body
}

func respondError(c *fiber.Ctx, err error, production bool) error {
	status, body := errorBody(err, production)
	if status >= fiber.StatusInternalServerError {
		log.Ctx(c.UserContext()).Error().Err(err).
			Str("component", "ProductHandler").
			Int("status", status).
			Msg("request failed")
	}
	return c.Status(status).JSON(body)
}

// ErrorHandler is the app-wide Fiber error handler. It renders service
// errors like the handlers do, Fiber errors with their own status and
// anything else, recovered panics included, as a generic 500.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			message := fiberErr.Message
			if fiberErr.Code == fiber.StatusNotFound {
				message = msgRouteNotFound
			}
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": message})
		}
		return respondError(c, err, production)
	}
}

// NotFound answers every request no route matched.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": msgRouteNotFound})
}

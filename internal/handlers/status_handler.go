package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// StatusHandler serves the liveness endpoints.
type StatusHandler struct {
	storeDriver string
}

// NewStatusHandler creates a StatusHandler reporting the given store driver.
func NewStatusHandler(storeDriver string) *StatusHandler {
	return &StatusHandler{storeDriver: storeDriver}
}

// RegisterRoutes registers "/" and "/health".
func (h *StatusHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleRoot)
	router.Get("/health", h.HandleHealth)
}

func (h *StatusHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Product Catalog API is running"})
}

func (h *StatusHandler) HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
		"store":  h.storeDriver,
	})
}

package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benjihealth/sanctuary/internal/backend"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// backendError maps a failed backend call to a response, passing the
// server's detail through when the backend answered at all.
func backendError(c *fiber.Ctx, err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Detail
		if message == "" {
			message = "request failed"
		}
		return apiError(c, apiErr.StatusCode, message)
	}
	return apiError(c, fiber.StatusBadGateway, "backend unavailable")
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geotrail/geotrail/internal/identity"
)

// RegisterAuthRoutes wires the unauthenticated credential endpoints.
func RegisterAuthRoutes(r fiber.Router, h *identity.Handler, rateLimiter fiber.Handler) {
	r.Post("/signup", h.Signup)
	if rateLimiter != nil {
		r.Post("/login", rateLimiter, h.Login)
	} else {
		r.Post("/login", h.Login)
	}
}

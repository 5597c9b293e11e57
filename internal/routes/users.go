package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/geotrail/geotrail/internal/apperr"
	"github.com/geotrail/geotrail/internal/device"
	"github.com/geotrail/geotrail/internal/identity"
	"github.com/geotrail/geotrail/internal/telemetry"
)

// RegisterAppUserRoutes wires the endpoints the mobile app calls on behalf
// of an authorized user. Responses never include salts, digests or tokens.
func RegisterAppUserRoutes(r fiber.Router, guard fiber.Handler, users identity.Repository, devices *device.Handler, points *telemetry.Handler) {
	r.Get("/user", guard, func(c *fiber.Ctx) error {
		userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "user_id is required")
		}
		user, err := users.FindByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return fiber.NewError(http.StatusNotFound, "user not found")
			}
			return fiber.NewError(http.StatusInternalServerError, "internal server error")
		}
		return c.JSON(fiber.Map{
			"user_id":       user.ID,
			"email_address": user.Email,
			"phone_number":  user.Phone,
			"name":          user.Name,
		})
	})

	r.Get("/devices", guard, devices.ListByOwner)
	r.Get("/GPSData", guard, points.Window)
	r.Post("/registerDeviceToUser", guard, devices.LinkToUser)
}

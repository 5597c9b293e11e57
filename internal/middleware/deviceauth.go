package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/geotrail/geotrail/internal/apperr"
	"github.com/geotrail/geotrail/internal/device"
)

// AccessTokenHeader carries the bearer secret on every authenticated request.
const AccessTokenHeader = "Access-Token"

const (
	deviceIDKey = "auth_device_id"
	userIDKey   = "auth_user_id"
)

// AuthorizedDeviceID returns the device identifier verified by DeviceAuth.
func AuthorizedDeviceID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(deviceIDKey).(int64)
	return id, ok
}

// AuthorizedUserID returns the user identifier verified by UserAuth.
func AuthorizedUserID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(userIDKey).(int64)
	return id, ok
}

// DeviceAuth gates device endpoints. The claimed device_id comes from the
// JSON body and must match the stored access token. Missing token, unknown
// device and wrong token all produce the same 401.
func DeviceAuth(repo device.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			DeviceID *int64 `json:"device_id"`
		}
		if raw := c.Body(); len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
		if body.DeviceID == nil {
			return fiber.NewError(http.StatusBadRequest, "device_id is required")
		}

		presented := c.Get(AccessTokenHeader)
		if presented == "" {
			return fiber.NewError(http.StatusUnauthorized, "invalid device credentials")
		}

		dev, err := repo.FindByID(c.UserContext(), *body.DeviceID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return fiber.NewError(http.StatusUnauthorized, "invalid device credentials")
			}
			return fiber.NewError(http.StatusInternalServerError, "internal server error")
		}

		if subtle.ConstantTimeCompare([]byte(dev.AccessToken), []byte(presented)) != 1 {
			return fiber.NewError(http.StatusUnauthorized, "invalid device credentials")
		}

		c.Locals(deviceIDKey, dev.ID)
		return c.Next()
	}
}

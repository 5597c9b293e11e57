package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/geotrail/geotrail/internal/apperr"
	"github.com/geotrail/geotrail/internal/identity"
)

// UserAuth gates app endpoints. The claimed user_id is taken from the query
// string first, then from the JSON body, and must match the account's access
// token. The failure taxonomy mirrors DeviceAuth.
func UserAuth(repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := claimedUserID(c)
		if !ok {
			return fiber.NewError(http.StatusBadRequest, "user_id is required")
		}

		presented := c.Get(AccessTokenHeader)
		if presented == "" {
			return fiber.NewError(http.StatusUnauthorized, "invalid user credentials")
		}

		user, err := repo.FindByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return fiber.NewError(http.StatusUnauthorized, "invalid user credentials")
			}
			return fiber.NewError(http.StatusInternalServerError, "internal server error")
		}

		if subtle.ConstantTimeCompare([]byte(user.AccessToken), []byte(presented)) != 1 {
			return fiber.NewError(http.StatusUnauthorized, "invalid user credentials")
		}

		c.Locals(userIDKey, user.ID)
		return c.Next()
	}
}

func claimedUserID(c *fiber.Ctx) (int64, bool) {
	if q := c.Query("user_id"); q != "" {
		id, err := strconv.ParseInt(q, 10, 64)
		return id, err == nil
	}
	var body struct {
		UserID *int64 `json:"user_id"`
	}
	if raw := c.Body(); len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	if body.UserID == nil {
		return 0, false
	}
	return *body.UserID, true
}

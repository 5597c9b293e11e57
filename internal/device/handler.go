package device

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/geotrail/geotrail/internal/apperr"
)

// Handler exposes device provisioning endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler builds a device HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type registerRequest struct {
	DeviceID    *int64 `json:"device_id"`
	AccessToken string `json:"access_token"`
	SMSNumber   string `json:"sms_number"`
	Control1    *bool  `json:"control_1"`
	Control2    *bool  `json:"control_2"`
	Control3    *bool  `json:"control_3"`
	Control4    *bool  `json:"control_4"`
}

// Register provisions a new device row.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.DeviceID == nil {
		return fiber.NewError(http.StatusBadRequest, "device_id is required")
	}
	if req.AccessToken == "" {
		return fiber.NewError(http.StatusBadRequest, "access_token is required")
	}
	err := h.service.Register(c.UserContext(), RegisterInput{
		DeviceID:    *req.DeviceID,
		AccessToken: req.AccessToken,
		SMSNumber:   req.SMSNumber,
		Control1:    req.Control1,
		Control2:    req.Control2,
		Control3:    req.Control3,
		Control4:    req.Control4,
	})
	if err != nil {
		return h.httpError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "message": "Device registered successfully"})
}

type linkRequest struct {
	UserID   *int64 `json:"user_id"`
	DeviceID *int64 `json:"device_id"`
}

// LinkToUser associates a provisioned device with the caller's account. The
// user guard has already proven the user_id in the body belongs to the caller.
func (h *Handler) LinkToUser(c *fiber.Ctx) error {
	var req linkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.UserID == nil || req.DeviceID == nil {
		return fiber.NewError(http.StatusBadRequest, "user_id and device_id are required")
	}
	if err := h.service.LinkToUser(c.UserContext(), *req.UserID, *req.DeviceID); err != nil {
		return h.httpError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "message": "Device registered to user successfully"})
}

type deviceResponse struct {
	DeviceID  int64  `json:"device_id"`
	SMSNumber string `json:"sms_number"`
	Control1  *bool  `json:"control_1"`
	Control2  *bool  `json:"control_2"`
	Control3  *bool  `json:"control_3"`
	Control4  *bool  `json:"control_4"`
}

// ListByOwner returns the devices linked to the caller's account. The access
// token never leaves the server.
func (h *Handler) ListByOwner(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "user_id is required")
	}
	devices, err := h.service.ListByOwner(c.UserContext(), userID)
	if err != nil {
		return h.httpError(err)
	}
	out := make([]deviceResponse, 0, len(devices))
	for _, dev := range devices {
		out = append(out, deviceResponse{DeviceID: dev.ID, SMSNumber: dev.SMSNumber, Control1: dev.Control1, Control2: dev.Control2, Control3: dev.Control3, Control4: dev.Control4})
	}
	return c.Status(http.StatusOK).JSON(out)
}

func (h *Handler) httpError(err error) *fiber.Error {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError && h.logger != nil {
		h.logger.Error("device request failed", slog.Any("error", err))
	}
	return fiber.NewError(status, apperr.Message(err))
}

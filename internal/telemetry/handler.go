package telemetry

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/geotrail/geotrail/internal/apperr"
)

// Handler exposes telemetry endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler builds a telemetry HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type pointRequest struct {
	DeviceID  *int64    `json:"device_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

type pointResponse struct {
	DeviceID  int64     `json:"device_id"`
	Time      time.Time `json:"time"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

// Record stores a fix pushed by a device. The device guard has already
// verified the device_id in the body against its access token.
func (h *Handler) Record(c *fiber.Ctx) error {
	var req pointRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.DeviceID == nil {
		return fiber.NewError(http.StatusBadRequest, "device_id is required")
	}
	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	err := h.service.Record(c.UserContext(), Point{DeviceID: *req.DeviceID, Time: ts, Latitude: req.Latitude, Longitude: req.Longitude})
	if err != nil {
		return h.httpError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "message": "GPS data saved successfully"})
}

// Window returns the fixes for one of the caller's devices inside the
// [start_time, end_time) query window (RFC 3339). The user guard has
// already proven the user_id query parameter belongs to the caller.
func (h *Handler) Window(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "user_id is required")
	}
	deviceID, err := strconv.ParseInt(c.Query("device_id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "device_id is required")
	}
	start, err := time.Parse(time.RFC3339, c.Query("start_time"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "start_time must be an RFC 3339 timestamp")
	}
	end, err := time.Parse(time.RFC3339, c.Query("end_time"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "end_time must be an RFC 3339 timestamp")
	}

	points, err := h.service.Query(c.UserContext(), userID, deviceID, start, end)
	if err != nil {
		return h.httpError(err)
	}

	out := make([]pointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, pointResponse{DeviceID: p.DeviceID, Time: p.Time, Latitude: p.Latitude, Longitude: p.Longitude})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"gps_data": out})
}

func (h *Handler) httpError(err error) *fiber.Error {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError && h.logger != nil {
		h.logger.Error("telemetry request failed", slog.Any("error", err))
	}
	return fiber.NewError(status, apperr.Message(err))
}

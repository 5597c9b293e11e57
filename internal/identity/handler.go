package identity

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/geotrail/geotrail/internal/apperr"
)

// Handler exposes signup and login endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs an identity HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type signupRequest struct {
	Email    string `json:"email_address"`
	Phone    string `json:"phone_number"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email_address"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID      int64  `json:"user_id"`
	Email       string `json:"email_address"`
	Phone       string `json:"phone_number"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}

// Signup handles account creation.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.service.Signup(c.UserContext(), SignupInput{Email: req.Email, Phone: req.Phone, Name: req.Name, Password: req.Password})
	if err != nil {
		return h.httpError(err)
	}
	return c.Status(http.StatusCreated).JSON(authResponse{UserID: user.ID, Email: user.Email, Phone: user.Phone, Name: user.Name, AccessToken: user.AccessToken})
}

// Login verifies credentials and returns the account with its token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.httpError(err)
	}
	return c.Status(http.StatusOK).JSON(authResponse{UserID: user.ID, Email: user.Email, Phone: user.Phone, Name: user.Name, AccessToken: user.AccessToken})
}

func (h *Handler) httpError(err error) *fiber.Error {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError && h.logger != nil {
		h.logger.Error("identity request failed", slog.Any("error", err))
	}
	return fiber.NewError(status, apperr.Message(err))
}

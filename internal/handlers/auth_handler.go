package handlers

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	user, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		if msg, ok := asValidation(err); ok {
			return errorJSON(c, fiber.StatusBadRequest, msg)
		}
		if errors.Is(err, services.ErrEmailTaken) {
			return errorJSON(c, fiber.StatusConflict, "User already exists with this email")
		}
		return fmt.Errorf("register: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	token, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if msg, ok := asValidation(err); ok {
			return errorJSON(c, fiber.StatusBadRequest, msg)
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		if errors.Is(err, auth.ErrMissingSecret) {
			logServerError(c, "token signing unavailable", err)
			return errorJSON(c, fiber.StatusInternalServerError, "Server configuration error")
		}
		return fmt.Errorf("login: %w", err)
	}

	return c.JSON(dto.LoginResponse{Token: token})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.authService.Me(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return unauthorized(c)
		}
		return fmt.Errorf("load profile: %w", err)
	}

	return c.JSON(dto.MeResponse{User: user})
}

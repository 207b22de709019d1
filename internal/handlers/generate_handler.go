package handlers

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type GenerateHandler struct {
	authService     *services.AuthService
	generateService *services.GenerateService
}

func NewGenerateHandler(authService *services.AuthService, generateService *services.GenerateService) *GenerateHandler {
	return &GenerateHandler{authService: authService, generateService: generateService}
}

func (h *GenerateHandler) Generate(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	user, err := h.authService.Me(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return unauthorized(c)
		}
		return err
	}

	content, err := h.generateService.Generate(c.UserContext(), user, &req)
	if err != nil {
		if msg, ok := asValidation(err); ok {
			return errorJSON(c, fiber.StatusBadRequest, msg)
		}
		return fmt.Errorf("generate: %w", err)
	}

	return c.JSON(dto.GenerateResponse{Content: content})
}

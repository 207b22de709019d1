package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/validation"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the last stop for errors returned by handlers. Client
// errors keep their message; everything else is logged and hidden behind a
// generic one.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		logServerError(c, "unhandled server error", err)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

func logServerError(c *fiber.Ctx, msg string, err error) {
	attrs := []any{
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"error", err.Error(),
	}
	if userID, ok := auth.UserID(c); ok {
		attrs = append(attrs, "user_id", userID.String())
	}
	slog.Error(msg, attrs...)
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
}

// asValidation reports whether err is a field failure and returns its message.
func asValidation(err error) (string, bool) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Message, true
	}
	return "", false
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/validation"
)

var generateMessages = map[string]string{
	"Prompt.required": "Please enter a prompt.",
}

// GenerateService is a placeholder for content generation. It waits for the
// configured delay and answers with a canned text.
type GenerateService struct {
	delay     time.Duration
	validator *validation.Validator
}

func NewGenerateService(delay time.Duration, v *validation.Validator) *GenerateService {
	return &GenerateService{delay: delay, validator: v}
}

func (s *GenerateService) Generate(ctx context.Context, user *models.User, req *dto.GenerateRequest) (string, error) {
	if err := s.validator.Struct(req, generateMessages); err != nil {
		return "", err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return fmt.Sprintf(
		"This is the AI-generated content for your prompt: %q.\n\n"+
			"This request was made by: %s\n"+
			"Subscription Status: %s",
		req.Prompt, user.Email, user.SubscriptionStatus,
	), nil
}

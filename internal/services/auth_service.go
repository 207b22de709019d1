package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// bcrypt only looks at the first 72 bytes and rejects longer input.
const maxPasswordBytes = 72

var registerMessages = map[string]string{
	"Email.required":    "Email and password are required",
	"Password.required": "Email and password are required",
	"Email.emailshape":  "Invalid email format",
}

var loginMessages = map[string]string{
	"Email.required":    "Email and password are required",
	"Password.required": "Email and password are required",
}

type AuthService struct {
	db        *gorm.DB
	cfg       *config.Config
	tokens    *auth.TokenService
	validator *validation.Validator

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(db *gorm.DB, cfg *config.Config, tokens *auth.TokenService, v *validation.Validator) *AuthService {
	return &AuthService{
		db:        db,
		cfg:       cfg,
		tokens:    tokens,
		validator: v,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req, registerMessages); err != nil {
		return nil, err
	}
	if len(req.Password) < s.cfg.PasswordMinLength {
		return nil, validation.New("Password",
			fmt.Sprintf("Password must be at least %d characters long", s.cfg.PasswordMinLength))
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, validation.New("Password", "Password is too long")
	}

	db := s.db.WithContext(ctx)

	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:                 uuid.New(),
		Email:              req.Email,
		PasswordHash:       string(hash),
		SubscriptionStatus: models.SubscriptionFree,
	}

	if err := db.Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Login returns a signed session token. Unknown emails and wrong passwords
// produce the same error after the same amount of bcrypt work.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	if err := s.validator.Struct(req, loginMessages); err != nil {
		return "", err
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("failed to look up user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(req.Password))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Me loads the stored profile behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		raw := make([]byte, 32)
		_, _ = rand.Read(raw)
		hash, err := bcrypt.GenerateFromPassword(raw, s.cfg.BcryptCost)
		if err != nil {
			hash = []byte{}
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

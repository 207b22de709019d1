package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ContextKey is where the verified token is stored in fiber locals.
const ContextKey = "user"

// UserID returns the caller's id from a token verified earlier in the chain.
// It does not touch the database. ok is false for anonymous requests.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ClaimsFrom returns the verified claims, if any.
func ClaimsFrom(c *fiber.Ctx) (*Claims, bool) {
	token, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || token == nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, false
	}

	// Tokens without an expiry are never issued here; refuse them anyway.
	if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
		return nil, false
	}
	return claims, true
}

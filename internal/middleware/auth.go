package middleware

import (
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/auth"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// Authenticate verifies an optional bearer token. A valid token is stored in
// locals under auth.ContextKey; anything else leaves the request anonymous and
// handlers decide whether that is a 401.
func Authenticate(tokens *auth.TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:     tokens.KeyFunc,
		Claims:      &auth.Claims{},
		ContextKey:  auth.ContextKey,
		TokenLookup: "header:" + fiber.HeaderAuthorization,
		AuthScheme:  "Bearer",
		SuccessHandler: func(c *fiber.Ctx) error {
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Next()
		},
	})
}

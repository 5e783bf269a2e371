package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/adilnv/internlink/pkg/kernel"
)

const authContextKey = "auth_context"

// AuthContext is the resolved caller identity stored on the request
type AuthContext struct {
	UserID kernel.UserID
	Role   string
	Email  string
	Scopes []string
}

// HasAnyScope reports whether the caller holds at least one of the scopes
func (a *AuthContext) HasAnyScope(scopes ...string) bool {
	for _, held := range a.Scopes {
		for _, required := range scopes {
			if MatchScope(held, required) {
				return true
			}
		}
	}
	return false
}

// TokenMiddleware authenticates requests with bearer tokens
type TokenMiddleware struct {
	tokens TokenService
}

// NewTokenMiddleware creates the auth middleware
func NewTokenMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

// Authenticate validates the Authorization header and stores the AuthContext
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return ErrTokenMissing()
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			return ErrTokenInvalid().WithDetail("reason", "expected bearer token")
		}

		claims, err := m.tokens.ValidateAccessToken(tokenString)
		if err != nil {
			return err
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: claims.UserID,
			Role:   claims.Role,
			Email:  claims.Email,
			Scopes: claims.Scopes,
		})
		return c.Next()
	}
}

// RequireScope rejects requests whose caller holds none of the scopes
func (m *TokenMiddleware) RequireScope(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrTokenMissing()
		}
		if !authCtx.HasAnyScope(scopes...) {
			return ErrScopeMissing().WithDetail("required_scope", strings.Join(scopes, " | "))
		}
		return c.Next()
	}
}

// GetAuthContext retrieves the caller identity stored by Authenticate
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}

package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/ticket-gate/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Runtime string
}

// AuthMiddleware validates bearer tokens or API keys presented by vault
// runtimes.
type AuthMiddleware struct {
	tokens  *TokenManager
	apiKeys *APIKeyVerifier
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, apiKeys *APIKeyVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, apiKeys: apiKeys}
}

// Handle enforces authentication for protected routes. Callers present
// either a Bearer JWT or a pre-shared key in X-Api-Key.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if key := c.Get("X-Api-Key"); key != "" {
		if !m.apiKeys.Verify(key) {
			return apperrors.NewUnauthorized("invalid api key")
		}
		c.Locals(principalKey, &Principal{Runtime: "api-key"})
		return c.Next()
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, &Principal{Runtime: claims.Runtime})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-gate/internal/api/dto"
	"github.com/spec-kit/ticket-gate/internal/auth"
	apperrors "github.com/spec-kit/ticket-gate/pkg/util/errorutil"
)

// AuthHandler issues runtime tokens in exchange for the deployment API key.
type AuthHandler struct {
	tokens  *auth.TokenManager
	apiKeys *auth.APIKeyVerifier
}

// NewAuthHandler constructs handler.
func NewAuthHandler(tokens *auth.TokenManager, apiKeys *auth.APIKeyVerifier) *AuthHandler {
	return &AuthHandler{tokens: tokens, apiKeys: apiKeys}
}

// IssueToken POST /auth/token.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Runtime == "" {
		return apperrors.NewValidationError("runtime required", nil)
	}
	if !h.apiKeys.Verify(req.APIKey) {
		return apperrors.NewUnauthorized("invalid api key")
	}

	token, expiresAt, err := h.tokens.GenerateToken(req.Runtime)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.TokenResponse{Token: token, ExpiresAt: expiresAt}})
}

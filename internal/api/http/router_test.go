package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-gate/internal/api/http/handlers"
	"github.com/spec-kit/ticket-gate/internal/auth"
	"github.com/spec-kit/ticket-gate/internal/config"
	"github.com/spec-kit/ticket-gate/internal/service"
	"github.com/spec-kit/ticket-gate/internal/validation"
)

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	tokens := auth.NewTokenManager("test-secret-1234567890", 30)
	apiKeys := auth.NewAPIKeyVerifier("")

	gateService := service.NewGateService(service.GateDependencies{
		Pipeline: validation.NewPipeline(validation.Dependencies{}),
		Gate:     config.GateConfig{},
		Logger:   zap.NewNop(),
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("ticket-gate", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(tokens, apiKeys),
		Validations:    handlers.NewValidationsHandler(gateService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, apiKeys),
	})
	return app, tokens
}

func TestHealthLive(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidationsRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestValidationsWithBearerToken(t *testing.T) {
	app, tokens := newTestApp(t)

	token, _, err := tokens.GenerateToken("vault-prod")
	require.NoError(t, err)

	payload := map[string]any{
		"ticket_id":       "SCR-100",
		"system_name":     "jira",
		"requesting_user": "jdoe",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded struct {
		Data struct {
			Valid       bool   `json:"valid"`
			UserMessage string `json:"user_message"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.False(t, decoded.Data.Valid)
	assert.Equal(t, "Please configure bypassValidationCode.", decoded.Data.UserMessage)
}

func TestValidationsRejectsMissingFields(t *testing.T) {
	app, tokens := newTestApp(t)

	token, _, err := tokens.GenerateToken("vault-prod")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLegacyEndpointNotImplemented(t *testing.T) {
	app, tokens := newTestApp(t)

	token, _, err := tokens.GenerateToken("vault-prod")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations/legacy", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

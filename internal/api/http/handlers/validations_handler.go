package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-gate/internal/api/dto"
	"github.com/spec-kit/ticket-gate/internal/service"
	apperrors "github.com/spec-kit/ticket-gate/pkg/util/errorutil"
)

// ValidationsHandler manages ticket validation endpoints.
type ValidationsHandler struct {
	service *service.GateService
}

// NewValidationsHandler constructs handler.
func NewValidationsHandler(gateService *service.GateService) *ValidationsHandler {
	return &ValidationsHandler{service: gateService}
}

// Validate POST /validations.
func (h *ValidationsHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SystemName == "" {
		return apperrors.NewValidationError("system_name required", nil)
	}
	if req.RequestingUser == "" {
		return apperrors.NewValidationError("requesting_user required", nil)
	}

	result := h.service.Validate(c.Context(), req.ToDomain(), req.XMLParameters, req.Account())
	return c.JSON(fiber.Map{"data": dto.FromResult(result)})
}

// ValidateLegacy POST /validations/legacy. The pre-JSON exchange format is
// not served by this gate.
func (h *ValidationsHandler) ValidateLegacy(c *fiber.Ctx) error {
	return apperrors.NewNotImplemented("legacy exchange format is not supported")
}

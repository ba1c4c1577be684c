package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-gate/internal/audit"
	"github.com/spec-kit/ticket-gate/internal/config"
	"github.com/spec-kit/ticket-gate/internal/domain"
	"github.com/spec-kit/ticket-gate/internal/observability"
	"github.com/spec-kit/ticket-gate/internal/validation"
)

// GateService coordinates ticket validation workflows.
type GateService struct {
	pipeline *validation.Pipeline
	recorder *audit.Recorder
	gate     config.GateConfig
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// GateDependencies bundles collaborators for the gate service.
type GateDependencies struct {
	Pipeline *validation.Pipeline
	Recorder *audit.Recorder
	Gate     config.GateConfig
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

// NewGateService constructs the service.
func NewGateService(deps GateDependencies) *GateService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GateService{
		pipeline: deps.Pipeline,
		recorder: deps.Recorder,
		gate:     deps.Gate,
		metrics:  deps.Metrics,
		logger:   logger,
	}
}

// Validate runs a request through the validation pipeline, records the
// audit event and returns the decision.
func (s *GateService) Validate(ctx context.Context, req domain.ValidationRequest, blob string, account *domain.ConnectionAccount) *domain.ValidationResult {
	policy := domain.ParsePolicyBlob(blob, s.gate.PolicyDefaults)

	if account == nil && s.gate.HasConnectionAccount() {
		fallback := s.gate.ConnectionAccount
		account = &fallback
	}

	result := s.pipeline.Validate(ctx, &req, policy, account)

	if s.metrics != nil {
		s.metrics.RecordValidation(req.SystemName, result.Outcome)
	}

	if s.recorder != nil {
		event := audit.NewEvent(uuid.NewString(), &req, result)
		s.recorder.Record(ctx, event)
	}

	s.logger.Info("ticket validation completed",
		zap.String("ticket_id", result.TicketID),
		zap.String("outcome", result.Outcome),
		zap.Bool("valid", result.Valid),
		zap.Bool("emergency", result.EmergencyMode),
	)

	return result
}

package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-gate/internal/audit"
	"github.com/spec-kit/ticket-gate/internal/config"
	"github.com/spec-kit/ticket-gate/internal/domain"
	"github.com/spec-kit/ticket-gate/internal/jira"
	"github.com/spec-kit/ticket-gate/internal/observability"
	"github.com/spec-kit/ticket-gate/internal/validation"
)

type stubAPI struct {
	accounts []domain.ConnectionAccount
}

func (s *stubAPI) Probe(context.Context) bool { return true }

func (s *stubAPI) FetchIssue(context.Context, string) (jira.Document, int, bool) {
	return jira.Document{"fields": map[string]any{
		"status": map[string]any{"name": "Approved"},
	}}, http.StatusOK, true
}

func (s *stubAPI) CreateIssue(context.Context, *jira.Incident) (jira.Document, int, bool) {
	return nil, http.StatusBadRequest, false
}

func (s *stubAPI) CommentIssue(context.Context, string, *jira.Comment) bool { return true }

func (s *stubAPI) ResolveConfigItem(context.Context, string) (string, bool) { return "", false }

type memorySink struct {
	events []audit.Event
}

func (m *memorySink) Record(_ context.Context, event audit.Event) error {
	m.events = append(m.events, event)
	return nil
}

func newTestService(t *testing.T, gate config.GateConfig, sink audit.Sink, metrics *observability.Metrics) (*GateService, *stubAPI) {
	t.Helper()
	api := &stubAPI{}
	pipeline := validation.NewPipeline(validation.Dependencies{
		APIFactory: func(account domain.ConnectionAccount, _ time.Duration) validation.TicketAPI {
			api.accounts = append(api.accounts, account)
			return api
		},
	})
	svc := NewGateService(GateDependencies{
		Pipeline: pipeline,
		Recorder: audit.NewRecorder(zap.NewNop(), sink),
		Gate:     gate,
		Metrics:  metrics,
		Logger:   zap.NewNop(),
	})
	return svc, api
}

func testGateConfig() config.GateConfig {
	return config.GateConfig{
		ConnectionAccount: domain.ConnectionAccount{Address: "jira.corp", Username: "svc", Password: "pw"},
		PolicyDefaults: domain.GatePolicy{
			AllowedChangeStatus: "Approved",
			TicketFormatPattern: "^[A-Z]+-[0-9]+$",
			BypassCode:          "^EMERGENCY[0-9]{4}$",
			MsgInvalidTicket:    "Ticket is not valid.",
		},
	}
}

func TestGateServiceValidateRecordsAuditAndMetrics(t *testing.T) {
	sink := &memorySink{}
	metrics := observability.NewMetrics()
	svc, _ := newTestService(t, testGateConfig(), sink, metrics)

	req := domain.ValidationRequest{TicketID: "SCR-100", SystemName: "jira", RequestingUser: "jdoe"}
	result := svc.Validate(context.Background(), req, "", nil)

	require.True(t, result.Valid)
	assert.Equal(t, domain.OutcomeValidated, result.Outcome)

	require.Len(t, sink.events, 1)
	assert.Equal(t, "SCR-100", sink.events[0].TicketID)
	assert.Equal(t, domain.OutcomeValidated, sink.events[0].Status)
	assert.NotEmpty(t, sink.events[0].ID)

	assert.Equal(t, int64(1), metrics.ValidationCount("JIRA", domain.OutcomeValidated))
}

func TestGateServiceFallsBackToConfiguredAccount(t *testing.T) {
	svc, api := newTestService(t, testGateConfig(), &memorySink{}, nil)

	req := domain.ValidationRequest{TicketID: "SCR-100", SystemName: "jira", RequestingUser: "jdoe"}
	svc.Validate(context.Background(), req, "", nil)

	require.Len(t, api.accounts, 1)
	assert.Equal(t, "jira.corp", api.accounts[0].Address)
}

func TestGateServiceBlobOverridesDefaults(t *testing.T) {
	sink := &memorySink{}
	svc, _ := newTestService(t, testGateConfig(), sink, nil)

	blob := `<Parameter Name="allowedChangeTicketStatus" Value="Scheduled"/>`
	req := domain.ValidationRequest{TicketID: "SCR-100", SystemName: "jira", RequestingUser: "jdoe"}
	result := svc.Validate(context.Background(), req, blob, nil)

	assert.False(t, result.Valid)
	assert.Contains(t, result.UserMessage, "allowed ticket status: Scheduled")
}

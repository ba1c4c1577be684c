package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/ticket-gate/internal/domain"
)

func TestLoadTowerIDsOverride(t *testing.T) {
	t.Setenv("GATE_TOWER_IDS", "pam=99999, custom = 12345,malformed")

	towers := loadTowerIDs()
	assert.Equal(t, "99999", towers["PAM"], "env entries override defaults")
	assert.Equal(t, "12345", towers["CUSTOM"])
	assert.Equal(t, "11410", towers["UNIX"], "untouched defaults survive")
}

func TestGateConfigOutboundTimeout(t *testing.T) {
	assert.Equal(t, 60*time.Second, GateConfig{}.OutboundTimeout())
	assert.Equal(t, 15*time.Second, GateConfig{OutboundTimeoutSeconds: 15}.OutboundTimeout())
}

func TestGateConfigHasConnectionAccount(t *testing.T) {
	assert.False(t, GateConfig{}.HasConnectionAccount())

	g := GateConfig{ConnectionAccount: domain.ConnectionAccount{Address: "jira.corp"}}
	assert.True(t, g.HasConnectionAccount())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "ticket-gate", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "Ticket is not valid.", cfg.Gate.PolicyDefaults.MsgInvalidTicket)
	assert.NotEmpty(t, cfg.Gate.TowerIDs)
}

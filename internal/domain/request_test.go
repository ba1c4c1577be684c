package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestNormalize(t *testing.T) {
	req := ValidationRequest{
		TicketID:                  " scr-100 ",
		SystemName:                "jira",
		MachineAddress:            "db01.corp ",
		TransparentMachineAddress: " web01.corp",
		RequestingUser:            " jdoe ",
	}
	req.Normalize()

	assert.Equal(t, "SCR-100", req.TicketID)
	assert.Equal(t, "JIRA", req.SystemName)
	assert.Equal(t, "DB01.CORP", req.MachineAddress)
	assert.Equal(t, "WEB01.CORP", req.TransparentMachineAddress)
	assert.Equal(t, "JDOE", req.RequestingUser)
}

func TestConnectionAddressPrefersTransparent(t *testing.T) {
	req := ValidationRequest{MachineAddress: "DIRECT", TransparentMachineAddress: "PROXY"}
	assert.Equal(t, "PROXY", req.ConnectionAddress())

	req.TransparentMachineAddress = ""
	assert.Equal(t, "DIRECT", req.ConnectionAddress())
}

func TestProperty(t *testing.T) {
	req := ValidationRequest{AdditionalProperties: map[string]string{PropertyTower: "PAM"}}
	assert.Equal(t, "PAM", req.Property(PropertyTower))
	assert.Empty(t, req.Property(PropertyHostname))

	var empty ValidationRequest
	assert.Empty(t, empty.Property(PropertyTower))
}

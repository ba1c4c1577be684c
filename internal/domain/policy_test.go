package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleBlob = `<Parameters>
<Parameter Name="allowedChangeTicketStatus" Value="Approved|Scheduled"/>
<Parameter Name="allowTicketFormatRegex" Value="^[A-Z]+-[0-9]+$"/>
<Parameter Name="bypassValidationCode" Value="emg123"/>
<Parameter Name="validateTimeStamp" Value="yes"/>
<Parameter Name="validateCI" Value="no"/>
<Parameter Name="jsonKey_CI" Value="customfield_11105"/>
</Parameters>`

func TestParsePolicyBlob(t *testing.T) {
	defaults := GatePolicy{
		AllowedIncidentStatus:  "Open",
		CheckConfigurationItem: true,
		MsgInvalidTicket:       "Ticket is not valid.",
	}

	p := ParsePolicyBlob(sampleBlob, defaults)

	assert.Equal(t, "Approved|Scheduled", p.AllowedChangeStatus)
	assert.Equal(t, "^[A-Z]+-[0-9]+$", p.TicketFormatPattern)
	assert.Equal(t, "EMG123", p.BypassCode, "bypass codes are uppercased")
	assert.True(t, p.CheckTimeWindow)
	assert.False(t, p.CheckConfigurationItem, "blob overrides the default")
	assert.Equal(t, "customfield_11105", p.FieldKeyConfigItem)

	// Keys absent from the blob keep the defaults.
	assert.Equal(t, "Open", p.AllowedIncidentStatus)
	assert.Equal(t, "Ticket is not valid.", p.MsgInvalidTicket)
}

func TestParsePolicyBlobEmptyValueKeepsDefault(t *testing.T) {
	blob := `<Parameter Name="allowedChangeTicketStatus" Value=""/>`
	p := ParsePolicyBlob(blob, GatePolicy{AllowedChangeStatus: "Approved"})
	assert.Equal(t, "Approved", p.AllowedChangeStatus)
}

func TestParsePolicyBlobBoolIgnoresUnknownValue(t *testing.T) {
	blob := `<Parameter Name="validateTimeStamp" Value="maybe"/>`
	p := ParsePolicyBlob(blob, GatePolicy{CheckTimeWindow: true})
	assert.True(t, p.CheckTimeWindow)
}

func TestAllowedStatusPattern(t *testing.T) {
	p := GatePolicy{
		AllowedChangeStatus:         "a",
		AllowedServiceRequestStatus: "b",
		AllowedIncidentStatus:       "c",
		AllowedProblemStatus:        "d",
	}
	assert.Equal(t, "a", p.AllowedStatusPattern(CategoryChangeRequest))
	assert.Equal(t, "b", p.AllowedStatusPattern(CategoryServiceRequest))
	assert.Equal(t, "c", p.AllowedStatusPattern(CategoryIncident))
	assert.Equal(t, "d", p.AllowedStatusPattern(CategoryProblem))
	assert.Empty(t, p.AllowedStatusPattern(CategoryUnrecognized))
}

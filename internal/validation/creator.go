package validation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/ticket-gate/internal/domain"
	"github.com/spec-kit/ticket-gate/internal/jira"
)

// createTicket synthesizes and submits a new incident ticket for the
// request. It returns the new ticket's key, or false with the failure
// recorded on the result.
func (p *Pipeline) createTicket(ctx context.Context, c *call) (string, bool) {
	req := c.req

	tower := req.Property(domain.PropertyTower)
	if tower == "" {
		c.result.Fail("You are not authorized to create an incident ticket. Please check with the PAM team.")
		return "", false
	}
	if c.api == nil {
		c.result.Fail("No ticketing system login account was specified")
		return "", false
	}

	address := req.ConnectionAddress()
	configItem, ok := c.api.ResolveConfigItem(ctx, address)
	if !ok {
		c.result.Fail("Failed to get server ID from CMDB.")
		return "", false
	}

	incident := jira.NewIncident()
	incident.SetSummary(req.Reason)
	incident.SetAssignee(req.RequestingUser)
	incident.AddConfigItem(configItem)
	incident.AddTower(tower, p.towerIDs)
	incident.AppendDescription("Requesting User: " + req.RequesterName)
	incident.AppendDescription("Requesting User ID: " + req.RequestingUser)
	incident.AppendDescription("Requesting User Email: " + req.Email)
	incident.AppendDescription("Device Address: " + address)
	incident.AppendDescription("Safe: " + req.Safe)
	incident.AppendDescription("Object: " + req.Object)
	incident.AppendDescription("Account: " + req.Username)
	incident.AppendDescription("Policy: " + req.PolicyID)
	appendDescriptionIfSet(incident, "Hostname", req.Property(domain.PropertyHostname))
	appendDescriptionIfSet(incident, "Database", req.Property(domain.PropertyDatabase))
	appendDescriptionIfSet(incident, "Port", req.Property(domain.PropertyPort))
	incident.AppendDescription(fmt.Sprintf("Dual Control: %t", req.DualControl))
	incident.AppendDescription(fmt.Sprintf("Dual Control Request Confirmed: %t", req.DualControlRequestConfirmed))

	doc, status, _ := c.api.CreateIssue(ctx, incident)
	if status != http.StatusCreated {
		c.result.Fail("API response status code is not 201 (created). %s", doc.FirstErrorDetail())
		return "", false
	}
	key, ok := doc.Key()
	if !ok {
		c.result.Fail("Created ticket response carried no key.")
		return "", false
	}
	return key, true
}

func appendDescriptionIfSet(incident *jira.Incident, key, value string) {
	if value == "" {
		return
	}
	incident.AppendDescription(key + ": " + value)
}

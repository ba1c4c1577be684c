package validation

import (
	"context"
	"regexp"
	"strings"

	"github.com/spec-kit/ticket-gate/internal/jira"
)

const windowFormat = "01/02/2006 15:04:05"

// runCategoryChecks evaluates all four category checks. None of them
// short-circuits the others: the decision is their conjunction, while each
// failing check overwrites the reported message, so the last failure is the
// one the requester sees.
func (p *Pipeline) runCategoryChecks(ctx context.Context, c *call, doc jira.Document) bool {
	timeOK := p.checkTimeWindow(c, doc)
	ciOK := p.checkConfigItem(ctx, c, doc)
	assigneeOK := p.checkAssignee(c, doc)
	statusOK := p.checkStatus(c, doc)
	return timeOK && ciOK && assigneeOK && statusOK
}

// checkTimeWindow requires the current instant to lie strictly inside the
// ticket's access window. Only change requests enforce it; a time-bypass
// marker in the ticket id disables it for the call.
func (p *Pipeline) checkTimeWindow(c *call, doc jira.Document) bool {
	if !c.category.Rules().EnforceTimeWindow || !c.policy.CheckTimeWindow || c.skipTimeCheck {
		return true
	}
	if c.policy.FieldKeyStartTime == "" || c.policy.FieldKeyEndTime == "" {
		c.result.Fail("jsonKey_StartTime or jsonKey_EndTime is not configured. Please contact the gate administrator.")
		return false
	}

	start, _ := doc.ScalarField(c.policy.FieldKeyStartTime)
	end, _ := doc.ScalarField(c.policy.FieldKeyEndTime)
	window, err := ParseWindow(start, end)
	if err != nil {
		c.result.Fail("%s", err.Error())
		return false
	}
	c.result.StartTime = &window.Start
	c.result.EndTime = &window.End

	if !window.Contains(p.now()) {
		c.result.Fail("[%s - %s] Access only allowed from %s to %s.",
			c.req.SystemName, c.ticketID,
			window.Start.Format(windowFormat), window.End.Format(windowFormat))
		return false
	}
	return true
}

// checkConfigItem confirms the requesting machine's CMDB key appears in the
// ticket's configuration item list. Only change requests enforce it.
func (p *Pipeline) checkConfigItem(ctx context.Context, c *call, doc jira.Document) bool {
	if !c.category.Rules().EnforceConfigurationItem || !c.policy.CheckConfigurationItem {
		return true
	}
	if c.policy.FieldKeyConfigItem == "" {
		c.result.Fail("jsonKey_CI is not configured. Please contact the gate administrator.")
		return false
	}

	configItem, _ := c.api.ResolveConfigItem(ctx, c.req.ConnectionAddress())
	if configItem != "" {
		for _, key := range doc.ListField(c.policy.FieldKeyConfigItem) {
			if key == configItem {
				return true
			}
		}
	}
	c.result.Fail("[%s - %s] Machine %s is not part of ticket's configuration items.",
		c.req.SystemName, c.ticketID, c.req.TransparentMachineAddress)
	return false
}

// checkAssignee requires the ticket's assignee to match the requesting user,
// case-insensitive and trimmed. Applies to every category when enabled.
func (p *Pipeline) checkAssignee(c *call, doc jira.Document) bool {
	if !c.policy.CheckAssignee {
		return true
	}
	assignee, ok := doc.AssigneeName()
	if !ok || !strings.EqualFold(strings.TrimSpace(assignee), c.req.RequestingUser) {
		c.result.Fail("[%s - %s] %s is not ticket's assignee.",
			c.req.SystemName, c.ticketID, strings.ToLower(c.req.RequestingUser))
		return false
	}
	c.result.AppendAudit("TicketAssignee= %s | ", assignee)
	return true
}

// checkStatus matches the ticket's current status against the allowed
// pattern configured for its category.
func (p *Pipeline) checkStatus(c *call, doc jira.Document) bool {
	pattern := c.policy.AllowedStatusPattern(c.category)
	if pattern == "" {
		c.result.Fail("Allowed ticket status is not configured. Please contact the gate administrator.")
		return false
	}

	status, _ := doc.StatusName()
	matched, err := regexp.MatchString(pattern, status)
	if err != nil {
		c.result.Fail("Allowed ticket status is not a valid pattern. Please contact the gate administrator.")
		return false
	}
	if !matched {
		c.result.Fail("[%s - %s] Current ticket status: %s, allowed ticket status: %s",
			c.req.SystemName, c.ticketID, status, pattern)
		return false
	}
	return true
}

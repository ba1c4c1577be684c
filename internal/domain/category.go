package domain

import "strings"

// TicketCategory is the validation ruleset family a ticket belongs to,
// derived from the prefix before the first dash of its identifier.
type TicketCategory string

const (
	CategoryChangeRequest  TicketCategory = "CHANGE_REQUEST"
	CategoryServiceRequest TicketCategory = "SERVICE_REQUEST"
	CategoryIncident       TicketCategory = "INCIDENT"
	CategoryProblem        TicketCategory = "PROBLEM"
	CategoryUnrecognized   TicketCategory = "UNRECOGNIZED"
)

// Classify maps a ticket identifier onto its category. The mapping is total:
// any prefix outside the fixed table yields CategoryUnrecognized.
func Classify(ticketID string) TicketCategory {
	prefix := strings.ToUpper(strings.TrimSpace(strings.SplitN(ticketID, "-", 2)[0]))
	switch prefix {
	case "SCR", "NCR", "ECR":
		return CategoryChangeRequest
	case "SR", "ISR":
		return CategoryServiceRequest
	case "INC":
		return CategoryIncident
	case "PR":
		return CategoryProblem
	default:
		return CategoryUnrecognized
	}
}

// CategoryRules states which category-specific checks apply. Only change
// requests enforce the access time window and the configuration item match;
// the assignee and status checks apply to every recognized category.
type CategoryRules struct {
	EnforceTimeWindow        bool
	EnforceConfigurationItem bool
}

// Rules returns the rule row for the category.
func (c TicketCategory) Rules() CategoryRules {
	if c == CategoryChangeRequest {
		return CategoryRules{EnforceTimeWindow: true, EnforceConfigurationItem: true}
	}
	return CategoryRules{}
}

// Recognized reports whether the category participates in validation.
func (c TicketCategory) Recognized() bool {
	return c != CategoryUnrecognized
}

package domain

import (
	"regexp"
	"strings"
)

// GatePolicy carries the per-call validation policy. It is derived from the
// hosting runtime's XML parameter blob, with unset keys falling back to the
// service-level defaults, and is read-only for the duration of a call.
type GatePolicy struct {
	AllowedChangeStatus         string
	AllowedServiceRequestStatus string
	AllowedIncidentStatus       string
	AllowedProblemStatus        string

	TicketFormatPattern string
	BypassCode          string
	TimeBypassCode      string
	CreateIncidentCode  string

	VerifyConnection       bool
	CheckTimeWindow        bool
	CheckConfigurationItem bool
	CheckAssignee          bool

	FieldKeyConfigItem string
	FieldKeyStartTime  string
	FieldKeyEndTime    string

	MsgInvalidTicket       string
	MsgInvalidTicketFormat string
	MsgConnectionError     string
}

// AllowedStatusPattern selects the allowed-status regex for a category.
// An empty return value means the policy is incomplete for that category.
func (p *GatePolicy) AllowedStatusPattern(c TicketCategory) string {
	switch c {
	case CategoryChangeRequest:
		return p.AllowedChangeStatus
	case CategoryServiceRequest:
		return p.AllowedServiceRequestStatus
	case CategoryIncident:
		return p.AllowedIncidentStatus
	case CategoryProblem:
		return p.AllowedProblemStatus
	default:
		return ""
	}
}

// Parameter keys as they appear in the runtime's configuration blob.
const (
	paramAllowedChangeStatus         = "allowedChangeTicketStatus"
	paramAllowedServiceRequestStatus = "allowedServiceRequestTicketStatus"
	paramAllowedIncidentStatus       = "allowedIncidentTicketStatus"
	paramAllowedProblemStatus        = "allowedProblemTicketStatus"
	paramTicketFormatPattern         = "allowTicketFormatRegex"
	paramMsgInvalidTicket            = "msgInvalidTicket"
	paramMsgInvalidTicketFormat      = "msgInvalidTicketFormat"
	paramMsgConnectionError          = "msgConnectionError"
	paramVerifyConnection            = "chkLogonToTicketingSystem"
	paramCheckTimeWindow             = "validateTimeStamp"
	paramCheckConfigurationItem      = "validateCI"
	paramCheckAssignee               = "validateImplementer"
	paramBypassCode                  = "bypassValidationCode"
	paramTimeBypassCode              = "bypassValidateTimeStampCode"
	paramCreateIncidentCode          = "createIncValidationCode"
	paramFieldKeyConfigItem          = "jsonKey_CI"
	paramFieldKeyStartTime           = "jsonKey_StartTime"
	paramFieldKeyEndTime             = "jsonKey_EndTime"
)

// ParsePolicyBlob extracts the gate policy from the runtime's XML-like
// parameter fragment. The blob is not a well-formed document, so values are
// pulled with a `<key>" Value="<value>"` scan, the way the vault serialises
// its options. Keys missing from the blob keep the default's value.
func ParsePolicyBlob(blob string, defaults GatePolicy) GatePolicy {
	p := defaults

	setString(&p.AllowedChangeStatus, blob, paramAllowedChangeStatus)
	setString(&p.AllowedServiceRequestStatus, blob, paramAllowedServiceRequestStatus)
	setString(&p.AllowedIncidentStatus, blob, paramAllowedIncidentStatus)
	setString(&p.AllowedProblemStatus, blob, paramAllowedProblemStatus)
	setString(&p.TicketFormatPattern, blob, paramTicketFormatPattern)
	setString(&p.MsgInvalidTicket, blob, paramMsgInvalidTicket)
	setString(&p.MsgInvalidTicketFormat, blob, paramMsgInvalidTicketFormat)
	setString(&p.MsgConnectionError, blob, paramMsgConnectionError)
	setString(&p.FieldKeyConfigItem, blob, paramFieldKeyConfigItem)
	setString(&p.FieldKeyStartTime, blob, paramFieldKeyStartTime)
	setString(&p.FieldKeyEndTime, blob, paramFieldKeyEndTime)

	setBool(&p.VerifyConnection, blob, paramVerifyConnection)
	setBool(&p.CheckTimeWindow, blob, paramCheckTimeWindow)
	setBool(&p.CheckConfigurationItem, blob, paramCheckConfigurationItem)
	setBool(&p.CheckAssignee, blob, paramCheckAssignee)

	setCode(&p.BypassCode, blob, paramBypassCode)
	setCode(&p.TimeBypassCode, blob, paramTimeBypassCode)
	setCode(&p.CreateIncidentCode, blob, paramCreateIncidentCode)

	return p
}

func extractValue(blob, key string) (string, bool) {
	pattern := regexp.QuoteMeta(key) + `" Value="(.*?)"`
	match := regexp.MustCompile(pattern).FindStringSubmatch(blob)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

func setString(dst *string, blob, key string) {
	if v, ok := extractValue(blob, key); ok && v != "" {
		*dst = v
	}
}

// Bypass-style codes are compared against uppercased ticket identifiers.
func setCode(dst *string, blob, key string) {
	if v, ok := extractValue(blob, key); ok && v != "" {
		*dst = strings.ToUpper(v)
	}
}

func setBool(dst *bool, blob, key string) {
	v, ok := extractValue(blob, key)
	if !ok {
		return
	}
	switch strings.ToLower(v) {
	case "yes":
		*dst = true
	case "no":
		*dst = false
	}
}

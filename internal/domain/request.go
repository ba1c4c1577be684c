package domain

import "strings"

// Additional property keys supplied by the hosting runtime per platform.
const (
	PropertyTower    = "Tower"
	PropertyHostname = "Hostname"
	PropertyDatabase = "Database"
	PropertyPort     = "Port"
)

// ValidationRequest is the immutable input for one validation call.
type ValidationRequest struct {
	TicketID                    string
	SystemName                  string
	RequestingUser              string
	RequesterName               string
	Email                       string
	Username                    string
	MachineAddress              string
	TransparentMachineAddress   string
	Safe                        string
	Object                      string
	PolicyID                    string
	Reason                      string
	DualControl                 bool
	DualControlRequestConfirmed bool
	AdditionalProperties        map[string]string
}

// Normalize applies the ingest canonicalisation applied before any check:
// ticket id, machine addresses and requesting user are trimmed and
// uppercased, the system name is uppercased.
func (r *ValidationRequest) Normalize() {
	r.TicketID = strings.ToUpper(strings.TrimSpace(r.TicketID))
	r.SystemName = strings.ToUpper(r.SystemName)
	r.MachineAddress = strings.ToUpper(strings.TrimSpace(r.MachineAddress))
	r.TransparentMachineAddress = strings.ToUpper(strings.TrimSpace(r.TransparentMachineAddress))
	r.RequestingUser = strings.ToUpper(strings.TrimSpace(r.RequestingUser))
}

// ConnectionAddress returns the effective address of the target machine,
// preferring the transparent (proxy) address over the direct one.
func (r *ValidationRequest) ConnectionAddress() string {
	if r.TransparentMachineAddress != "" {
		return r.TransparentMachineAddress
	}
	return r.MachineAddress
}

// Property returns a named additional property, or "" when absent.
func (r *ValidationRequest) Property(key string) string {
	if r.AdditionalProperties == nil {
		return ""
	}
	return r.AdditionalProperties[key]
}

// ConnectionAccount is the service account used against the ticketing system.
type ConnectionAccount struct {
	Address  string
	Username string
	Password string
}

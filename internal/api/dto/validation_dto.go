package dto

import (
	"time"

	"github.com/spec-kit/ticket-gate/internal/domain"
)

// ConnectionAccountRequest carries optional ticketing system credentials
// supplied by the vault per request.
type ConnectionAccountRequest struct {
	Address  string `json:"address"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ValidateTicketRequest payload.
type ValidateTicketRequest struct {
	TicketID                    string                    `json:"ticket_id"`
	SystemName                  string                    `json:"system_name"`
	RequestingUser              string                    `json:"requesting_user"`
	RequesterName               string                    `json:"requester_name"`
	Email                       string                    `json:"email"`
	Username                    string                    `json:"username"`
	MachineAddress              string                    `json:"machine_address"`
	TransparentMachineAddress   string                    `json:"transparent_machine_address"`
	Safe                        string                    `json:"safe"`
	Object                      string                    `json:"object"`
	PolicyID                    string                    `json:"policy_id"`
	Reason                      string                    `json:"reason"`
	DualControl                 bool                      `json:"dual_control"`
	DualControlRequestConfirmed bool                      `json:"dual_control_request_confirmed"`
	AdditionalProperties        map[string]string         `json:"additional_properties"`
	ConnectionAccount           *ConnectionAccountRequest `json:"connection_account"`
	XMLParameters               string                    `json:"xml_parameters"`
}

// ToDomain converts the payload into a domain request.
func (r *ValidateTicketRequest) ToDomain() domain.ValidationRequest {
	req := domain.ValidationRequest{
		TicketID:                    r.TicketID,
		SystemName:                  r.SystemName,
		RequestingUser:              r.RequestingUser,
		RequesterName:               r.RequesterName,
		Email:                       r.Email,
		Username:                    r.Username,
		MachineAddress:              r.MachineAddress,
		TransparentMachineAddress:   r.TransparentMachineAddress,
		Safe:                        r.Safe,
		Object:                      r.Object,
		PolicyID:                    r.PolicyID,
		Reason:                      r.Reason,
		DualControl:                 r.DualControl,
		DualControlRequestConfirmed: r.DualControlRequestConfirmed,
		AdditionalProperties:        r.AdditionalProperties,
	}
	return req
}

// Account converts the optional credentials.
func (r *ValidateTicketRequest) Account() *domain.ConnectionAccount {
	if r.ConnectionAccount == nil {
		return nil
	}
	return &domain.ConnectionAccount{
		Address:  r.ConnectionAccount.Address,
		Username: r.ConnectionAccount.Username,
		Password: r.ConnectionAccount.Password,
	}
}

// ValidateTicketResponse reports the gate decision.
type ValidateTicketResponse struct {
	Valid         bool       `json:"valid"`
	TicketID      string     `json:"ticket_id"`
	UserMessage   string     `json:"user_message"`
	AuditTrail    string     `json:"audit_trail"`
	Outcome       string     `json:"outcome"`
	EmergencyMode bool       `json:"emergency_mode"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
}

// FromResult builds the response from a validation result.
func FromResult(res *domain.ValidationResult) ValidateTicketResponse {
	return ValidateTicketResponse{
		Valid:         res.Valid,
		TicketID:      res.TicketID,
		UserMessage:   res.UserMessage,
		AuditTrail:    res.AuditTrail,
		Outcome:       res.Outcome,
		EmergencyMode: res.EmergencyMode,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
	}
}

// TokenRequest payload for issuing runtime tokens.
type TokenRequest struct {
	Runtime string `json:"runtime"`
	APIKey  string `json:"api_key"`
}

// TokenResponse returns a signed JWT.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

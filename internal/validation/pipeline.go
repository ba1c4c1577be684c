package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-gate/internal/domain"
	"github.com/spec-kit/ticket-gate/internal/jira"
)

// TicketAPI is the outbound surface the pipeline needs from the ticketing
// system and its CMDB.
type TicketAPI interface {
	Probe(ctx context.Context) bool
	FetchIssue(ctx context.Context, ticketID string) (jira.Document, int, bool)
	CreateIssue(ctx context.Context, incident *jira.Incident) (jira.Document, int, bool)
	CommentIssue(ctx context.Context, ticketID string, comment *jira.Comment) bool
	ResolveConfigItem(ctx context.Context, address string) (string, bool)
}

// APIFactory builds a TicketAPI for a connection account. Each validation
// call gets a fresh client; there is no cross-call pooling or caching.
type APIFactory func(account domain.ConnectionAccount, timeout time.Duration) TicketAPI

type liveAPI struct {
	*jira.Client
	resolver *jira.Resolver
}

func (a *liveAPI) ResolveConfigItem(ctx context.Context, address string) (string, bool) {
	return a.resolver.Resolve(ctx, address)
}

// LiveAPIFactory builds the production TicketAPI over HTTP.
func LiveAPIFactory(account domain.ConnectionAccount, timeout time.Duration) TicketAPI {
	client := jira.NewClient(account, timeout)
	return &liveAPI{Client: client, resolver: jira.NewResolver(client)}
}

// Pipeline runs the staged validation of one ticket identifier. It holds no
// per-call state: every invocation threads its own call context through the
// stages.
type Pipeline struct {
	newAPI   APIFactory
	timeout  time.Duration
	towerIDs map[string]string
	logger   *zap.Logger
	now      func() time.Time
}

// Dependencies bundles pipeline collaborators.
type Dependencies struct {
	APIFactory APIFactory
	Timeout    time.Duration
	TowerIDs   map[string]string
	Logger     *zap.Logger
}

// NewPipeline constructs the pipeline.
func NewPipeline(deps Dependencies) *Pipeline {
	factory := deps.APIFactory
	if factory == nil {
		factory = LiveAPIFactory
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		newAPI:   factory,
		timeout:  timeout,
		towerIDs: deps.TowerIDs,
		logger:   logger,
		now:      time.Now,
	}
}

// call is the per-invocation context threaded through the stages.
type call struct {
	api           TicketAPI
	req           *domain.ValidationRequest
	policy        *domain.GatePolicy
	result        *domain.ValidationResult
	ticketID      string
	category      domain.TicketCategory
	skipTimeCheck bool
}

// Validate runs the full decision process for one request. Every terminal
// exit produces a ValidationResult; stages are never retried within a call.
func (p *Pipeline) Validate(ctx context.Context, req *domain.ValidationRequest, policy domain.GatePolicy, account *domain.ConnectionAccount) *domain.ValidationResult {
	req.Normalize()
	result := domain.NewValidationResult(req)
	c := &call{req: req, policy: &policy, result: result, ticketID: req.TicketID}
	if account != nil {
		c.api = p.newAPI(*account, p.timeout)
	}

	p.logger.Info("validation started",
		zap.String("system", req.SystemName),
		zap.String("ticket_id", req.TicketID),
		zap.String("requesting_user", req.RequestingUser))

	// Create-ticket trigger diverts to the creation workflow.
	if policy.CreateIncidentCode != "" {
		triggered, err := matchPattern(c.ticketID, policy.CreateIncidentCode)
		if err != nil {
			result.Fail("createIncValidationCode is not a valid pattern. Please contact the gate administrator.")
			return result
		}
		if triggered {
			return p.runCreation(ctx, c)
		}
	}

	// Emergency bypass. An unconfigured bypass code fails closed.
	if policy.BypassCode == "" {
		result.Fail("Please configure bypassValidationCode.")
		return result
	}
	emergency, err := matchPattern(c.ticketID, policy.BypassCode)
	if err != nil {
		result.Fail("bypassValidationCode is not a valid pattern. Please contact the gate administrator.")
		return result
	}
	result.EmergencyMode = emergency
	result.AppendAudit(" Emergency=%t | ", emergency)
	if emergency {
		result.Valid = true
		result.TicketID = c.ticketID
		result.Outcome = domain.OutcomeValidated
		result.AppendAudit("Ticket validated successfully.")
		p.logger.Info("emergency bypass accepted", zap.String("ticket_id", c.ticketID))
		return result
	}

	// Ticket id format. Runs before any network call.
	if policy.TicketFormatPattern == "" {
		result.Fail("Please configure allowTicketFormatRegex.")
		return result
	}
	formatOK, err := matchPattern(c.ticketID, policy.TicketFormatPattern)
	if err != nil {
		result.Fail("allowTicketFormatRegex is not a valid pattern. Please contact the gate administrator.")
		return result
	}
	if !formatOK {
		result.Fail("[%s - %s] %s", req.SystemName, c.ticketID, policy.MsgInvalidTicketFormat)
		return p.failValidation(c)
	}

	// Connectivity.
	if c.api == nil {
		result.Fail("No ticketing system login account was specified")
		return p.failValidation(c)
	}
	if policy.VerifyConnection && !c.api.Probe(ctx) {
		result.Fail("%s You can enter bypass code in ticket ID.", policy.MsgConnectionError)
		return p.failValidation(c)
	}

	// Time-bypass extraction: strip the marker and skip the window check.
	if policy.TimeBypassCode != "" && strings.Contains(c.ticketID, policy.TimeBypassCode) {
		c.ticketID = strings.TrimSpace(strings.ReplaceAll(c.ticketID, policy.TimeBypassCode, ""))
		c.skipTimeCheck = true
		result.AppendAudit(" bypassValidateTimeMode= true | ")
	}

	// Category routing.
	c.category = domain.Classify(c.ticketID)
	if !c.category.Recognized() {
		result.Fail("Ticket was not configured to be validated.")
		return p.failValidation(c)
	}

	// Ticket fetch.
	doc, _, ok := c.api.FetchIssue(ctx, c.ticketID)
	if !ok {
		result.Fail("[%s - %s] %s", req.SystemName, c.ticketID, policy.MsgInvalidTicket)
		return p.failValidation(c)
	}

	if !p.runCategoryChecks(ctx, c, doc) {
		return p.failValidation(c)
	}

	result.Valid = true
	result.TicketID = c.ticketID
	result.Outcome = domain.OutcomeValidated
	result.AppendAudit(" TicketID validated successfully.")
	p.postComment(ctx, c)
	p.logger.Info("validation succeeded", zap.String("ticket_id", c.ticketID))
	return result
}

func (p *Pipeline) failValidation(c *call) *domain.ValidationResult {
	c.result.AppendAudit(" TicketID validation failed.")
	p.logger.Info("validation failed",
		zap.String("ticket_id", c.ticketID),
		zap.String("message", c.result.UserMessage))
	return c.result
}

func (p *Pipeline) runCreation(ctx context.Context, c *call) *domain.ValidationResult {
	ticketID, ok := p.createTicket(ctx, c)
	if !ok {
		c.result.Outcome = domain.OutcomeCreationFailed
		c.result.UserMessage += " TicketID failed to create."
		c.result.AppendAudit(" TicketID failed to create.")
		p.logger.Info("ticket creation failed", zap.String("message", c.result.UserMessage))
		return c.result
	}
	c.result.Valid = true
	c.result.TicketID = ticketID
	c.result.Outcome = domain.OutcomeCreated
	c.result.AppendAudit(" %s created successfully.", ticketID)
	p.logger.Info("ticket created", zap.String("ticket_id", ticketID))
	return c.result
}

// postComment leaves an audit record on the validated ticket. The post is
// best-effort: its failure is logged and never flips the decision.
func (p *Pipeline) postComment(ctx context.Context, c *call) {
	req := c.req
	comment := jira.NewComment()
	comment.AddLine("Reason: " + req.Reason)
	comment.AddLine("Requesting User: " + req.RequesterName)
	comment.AddLine("Requesting User ID: " + req.RequestingUser)
	comment.AddLine("Requesting User Email: " + req.Email)
	comment.AddLine("Device Address: " + req.ConnectionAddress())
	comment.AddLine("Safe: " + req.Safe)
	comment.AddLine("Object: " + req.Object)
	comment.AddLine("Account: " + req.Username)
	comment.AddLine("Policy: " + req.PolicyID)
	addLineIfSet(comment, "Hostname", req.Property(domain.PropertyHostname))
	addLineIfSet(comment, "Database", req.Property(domain.PropertyDatabase))
	addLineIfSet(comment, "Port", req.Property(domain.PropertyPort))
	comment.AddLine(fmt.Sprintf("Dual Control: %t", req.DualControl))
	comment.AddLine(fmt.Sprintf("Dual Control Request Confirmed: %t", req.DualControlRequestConfirmed))

	if ok := c.api.CommentIssue(ctx, c.ticketID, comment); !ok {
		p.logger.Warn("audit comment failed", zap.String("ticket_id", c.ticketID))
		return
	}
	p.logger.Info("audit comment posted", zap.String("ticket_id", c.ticketID))
}

func addLineIfSet(comment *jira.Comment, key, value string) {
	if value == "" {
		return
	}
	comment.AddLine(key + ": " + value)
}

func matchPattern(s, pattern string) (bool, error) {
	return regexp.MatchString(pattern, s)
}

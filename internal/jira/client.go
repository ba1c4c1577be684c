package jira

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"time"

	"github.com/spec-kit/ticket-gate/internal/domain"
)

// Endpoint paths on the ticketing system and its CMDB.
const (
	issuePath     = "/rest/api/2/issue/"
	cmdbQueryPath = "/rest/insight/1.0/object/navlist/iql"
)

// Client issues authenticated calls against the ticketing system. Callers
// branch on the returned success flag, which reflects a 2xx status; network
// errors and timeouts surface as success=false with no parsed document.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

// NewClient builds a client for the given connection account. Requests use
// basic authentication, JSON content negotiation, a TLS 1.2 floor and the
// given fixed timeout.
func NewClient(account domain.ConnectionAccount, timeout time.Duration) *Client {
	return &Client{
		baseURL:  "https://" + account.Address,
		username: account.Username,
		password: account.Password,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
	}
}

// Do performs one request. A nil body sends no payload; otherwise the body
// is JSON-encoded. The returned document is nil when the response carries no
// decodable JSON.
func (c *Client) Do(ctx context.Context, method, path string, body any) (Document, int, bool) {
	var payload *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, 0, false
		}
		payload = bytes.NewBuffer(encoded)
	} else {
		payload = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, 0, false
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, false
	}
	defer resp.Body.Close()

	success := resp.StatusCode >= 200 && resp.StatusCode < 300

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		// A non-JSON body (the root probe returns a login page) is not
		// itself a failure; accessors on a nil document degrade to absent.
		doc = nil
	}
	return doc, resp.StatusCode, success
}

// Probe performs a lightweight authenticated GET against the system root to
// verify connectivity and credentials.
func (c *Client) Probe(ctx context.Context) bool {
	_, _, ok := c.Do(ctx, http.MethodGet, "/", nil)
	return ok
}

// FetchIssue retrieves a ticket document.
func (c *Client) FetchIssue(ctx context.Context, ticketID string) (Document, int, bool) {
	return c.Do(ctx, http.MethodGet, issuePath+ticketID, nil)
}

// CreateIssue submits a new ticket.
func (c *Client) CreateIssue(ctx context.Context, incident *Incident) (Document, int, bool) {
	return c.Do(ctx, http.MethodPost, issuePath, incident)
}

// CommentIssue posts a comment onto a ticket.
func (c *Client) CommentIssue(ctx context.Context, ticketID string, comment *Comment) bool {
	_, _, ok := c.Do(ctx, http.MethodPost, issuePath+ticketID+"/comment", comment)
	return ok
}

// QueryObjects runs a CMDB object query.
func (c *Client) QueryObjects(ctx context.Context, query *CMDBQuery) (Document, int, bool) {
	return c.Do(ctx, http.MethodPost, cmdbQueryPath, query)
}

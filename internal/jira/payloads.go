package jira

import (
	"strings"
)

// Incident is the creation payload for a new incident ticket. The custom
// field identifiers follow the ticketing instance's incident screen layout.
type Incident struct {
	Fields IncidentFields `json:"fields"`
}

// IncidentFields holds the writable fields of the incident screen.
type IncidentFields struct {
	Summary     string              `json:"summary,omitempty"`
	Description string              `json:"description"`
	Project     map[string]string   `json:"project"`
	IssueType   map[string]string   `json:"issuetype"`
	ServiceDesk string              `json:"customfield_10001"`
	ConfigItems []KeyRef            `json:"customfield_11105"`
	Towers      []map[string]string `json:"customfield_11800"`
	Assignee    NameRef             `json:"assignee"`
}

// KeyRef references an object by key.
type KeyRef struct {
	Key string `json:"key"`
}

// NameRef references a user by name.
type NameRef struct {
	Name string `json:"name"`
}

// NewIncident seeds an incident payload for the INC project.
func NewIncident() *Incident {
	return &Incident{
		Fields: IncidentFields{
			Description: "Ticket created from PAM Web portal.",
			Project:     map[string]string{"key": "INC"},
			IssueType:   map[string]string{"id": "10005"},
			ServiceDesk: "inc/1c62b287-075b-45b1-bdd6-f80394d05424",
			ConfigItems: []KeyRef{},
			Towers:      []map[string]string{},
		},
	}
}

// SetSummary sets the ticket summary.
func (i *Incident) SetSummary(reason string) {
	i.Fields.Summary = reason
}

// SetAssignee sets the ticket assignee.
func (i *Incident) SetAssignee(userName string) {
	i.Fields.Assignee = NameRef{Name: userName}
}

// AddConfigItem attaches a configuration item reference.
func (i *Incident) AddConfigItem(key string) {
	i.Fields.ConfigItems = append(i.Fields.ConfigItems, KeyRef{Key: key})
}

// AddTower attaches the internal id of a named tower, looked up in the
// provided table. An unknown tower name is silently omitted.
func (i *Incident) AddTower(towerName string, towerIDs map[string]string) {
	id, ok := towerIDs[strings.ToUpper(strings.TrimSpace(towerName))]
	if !ok {
		return
	}
	i.Fields.Towers = append(i.Fields.Towers, map[string]string{"id": id})
}

// AppendDescription appends a paragraph to the ticket description.
func (i *Incident) AppendDescription(line string) {
	i.Fields.Description += "\n\n" + line
}

// Comment is the payload posted onto a ticket's comment endpoint. Comments
// are marked non-public so they stay off customer-facing views.
type Comment struct {
	Body   string `json:"body"`
	Public string `json:"public"`
}

// NewComment builds an empty non-public comment.
func NewComment() *Comment {
	return &Comment{Public: "false"}
}

// AddLine appends a line to the comment body.
func (c *Comment) AddLine(line string) {
	c.Body += line + "\n"
}

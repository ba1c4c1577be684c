package jira

import (
	"context"
	"fmt"
	"net"
	"strings"
)

// CMDBQuery is the object query body for the CMDB navlist endpoint. The
// object type, schema and paging constants target the Host object table.
type CMDBQuery struct {
	ObjectTypeID      string `json:"objectTypeId"`
	Page              int    `json:"page"`
	Asc               int    `json:"asc"`
	OrderByTypeAttrID string `json:"orderByTypeAttrId"`
	ResultsPerPage    int    `json:"resultsPerPage"`
	IncludeAttributes bool   `json:"includeAttributes"`
	IQL               string `json:"iql"`
	ObjectSchemaID    int    `json:"objectSchemaId"`
}

// NewHostQuery builds a Host lookup for a machine address. An IP literal is
// matched on the "Production LAN IP Address" attribute, anything else on the
// asset name, both uppercased.
func NewHostQuery(address string) *CMDBQuery {
	address = strings.ToUpper(strings.TrimSpace(address))

	var iql string
	if net.ParseIP(address) != nil {
		iql = fmt.Sprintf("ObjectType = Host And %q = %s", "Production LAN IP Address", address)
	} else {
		iql = "ObjectType = Host And Name = " + address
	}

	return &CMDBQuery{
		ObjectTypeID:      "956",
		Page:              1,
		Asc:               1,
		OrderByTypeAttrID: "13387",
		ResultsPerPage:    25,
		IncludeAttributes: true,
		IQL:               iql,
		ObjectSchemaID:    47,
	}
}

// Resolver maps a machine address to its CMDB configuration item key.
type Resolver struct {
	client *Client
}

// NewResolver builds a resolver on top of an authenticated client.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve queries the CMDB for the address and returns the object key of the
// matching configuration item. When the query matches several objects the
// last entry wins; an empty result reports absent.
func (r *Resolver) Resolve(ctx context.Context, address string) (string, bool) {
	doc, _, ok := r.client.QueryObjects(ctx, NewHostQuery(address))
	if !ok {
		return "", false
	}
	keys := doc.ObjectEntryKeys()
	if len(keys) == 0 {
		return "", false
	}
	return keys[len(keys)-1], true
}

package jira

import (
	"fmt"
	"sort"
	"strings"
)

// Document is a parsed ticketing-system response. Every accessor is
// null-safe: a missing or differently-shaped key degrades to an absent
// value, never a panic, so a malformed ticket surfaces as an ordinary
// validation failure downstream.
type Document map[string]any

func (d Document) fields() (map[string]any, bool) {
	if d == nil {
		return nil, false
	}
	fields, ok := d["fields"].(map[string]any)
	return fields, ok
}

func (d Document) field(name string) (any, bool) {
	fields, ok := d.fields()
	if !ok {
		return nil, false
	}
	value, ok := fields[name]
	return value, ok
}

// ScalarField returns fields.<name> as a string when present and not
// list-valued.
func (d Document) ScalarField(name string) (string, bool) {
	value, ok := d.field(name)
	if !ok || value == nil {
		return "", false
	}
	if _, isList := value.([]any); isList {
		return "", false
	}
	return fmt.Sprintf("%v", value), true
}

// ListField returns fields.<name> as a list of configuration item keys.
// Entries come back formatted as "<label> (<KEY>)": the second
// whitespace-separated token is taken, parentheses stripped, uppercased.
// An absent or non-list field yields an empty slice.
func (d Document) ListField(name string) []string {
	value, ok := d.field(name)
	if !ok {
		return []string{}
	}
	entries, ok := value.([]any)
	if !ok {
		return []string{}
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		tokens := strings.Fields(fmt.Sprintf("%v", entry))
		if len(tokens) < 2 {
			continue
		}
		key := strings.ReplaceAll(strings.ReplaceAll(tokens[1], "(", ""), ")", "")
		keys = append(keys, strings.ToUpper(key))
	}
	return keys
}

func (d Document) nestedName(field string) (string, bool) {
	value, ok := d.field(field)
	if !ok {
		return "", false
	}
	object, ok := value.(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := object["name"].(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// AssigneeName returns fields.assignee.name.
func (d Document) AssigneeName() (string, bool) {
	return d.nestedName("assignee")
}

// StatusName returns fields.status.name.
func (d Document) StatusName() (string, bool) {
	return d.nestedName("status")
}

// Key returns the top-level issue key of a creation response.
func (d Document) Key() (string, bool) {
	if d == nil {
		return "", false
	}
	key, ok := d["key"].(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// FirstErrorDetail returns the first entry of the top-level errors object of
// a rejected creation response, formatted as "<field>: <detail>".
func (d Document) FirstErrorDetail() string {
	if d == nil {
		return ""
	}
	errs, ok := d["errors"].(map[string]any)
	if !ok {
		return ""
	}
	for _, field := range sortedKeys(errs) {
		return fmt.Sprintf("%s: %v", field, errs[field])
	}
	return ""
}

// ObjectEntryKeys returns the objectKey of every objectEntries element of a
// CMDB query response, in response order.
func (d Document) ObjectEntryKeys() []string {
	if d == nil {
		return nil
	}
	entries, ok := d["objectEntries"].([]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		object, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if key, ok := object["objectKey"].(string); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

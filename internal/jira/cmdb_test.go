package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHostQueryByName(t *testing.T) {
	q := NewHostQuery(" db01.corp ")
	assert.Equal(t, "ObjectType = Host And Name = DB01.CORP", q.IQL)
	assert.Equal(t, "956", q.ObjectTypeID)
	assert.Equal(t, 47, q.ObjectSchemaID)
	assert.Equal(t, 25, q.ResultsPerPage)
	assert.Equal(t, "13387", q.OrderByTypeAttrID)
}

func TestNewHostQueryByIP(t *testing.T) {
	q := NewHostQuery("10.1.2.3")
	assert.Equal(t, `ObjectType = Host And "Production LAN IP Address" = 10.1.2.3`, q.IQL)
}

func TestResolverTakesLastEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, cmdbQueryPath, r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"objectEntries": []any{
				map[string]any{"objectKey": "HOST-1"},
				map[string]any{"objectKey": "HOST-2"},
			},
		})
	}))
	defer srv.Close()

	resolver := NewResolver(testClient(srv))
	key, ok := resolver.Resolve(context.Background(), "db01.corp")
	require.True(t, ok)
	assert.Equal(t, "HOST-2", key)
}

func TestResolverEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"objectEntries": []any{}})
	}))
	defer srv.Close()

	_, ok := NewResolver(testClient(srv)).Resolve(context.Background(), "db01.corp")
	assert.False(t, ok)
}

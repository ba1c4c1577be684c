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

// testClient builds a client pointed at an httptest server.
func testClient(srv *httptest.Server) *Client {
	return &Client{
		baseURL:  srv.URL,
		username: "svc-ticketing",
		password: "secret",
		http:     srv.Client(),
	}
}

func TestClientDoSendsBasicAuthAndJSON(t *testing.T) {
	var gotUser, gotPass, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode(map[string]any{"key": "INC-1"})
	}))
	defer srv.Close()

	doc, status, ok := testClient(srv).Do(context.Background(), http.MethodGet, "/", nil)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "svc-ticketing", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, "application/json", gotContentType)

	key, found := doc.Key()
	require.True(t, found)
	assert.Equal(t, "INC-1", key)
}

func TestClientDoNonJSONBodyStillSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>login page</html>"))
	}))
	defer srv.Close()

	doc, _, ok := testClient(srv).Do(context.Background(), http.MethodGet, "/", nil)
	assert.True(t, ok)
	assert.Nil(t, doc)
}

func TestClientDoNon2xxReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"errors": map[string]any{"tower": "invalid"}})
	}))
	defer srv.Close()

	doc, status, ok := testClient(srv).Do(context.Background(), http.MethodPost, issuePath, NewIncident())
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "tower: invalid", doc.FirstErrorDetail())
}

func TestClientFetchIssuePath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	_, _, ok := testClient(srv).FetchIssue(context.Background(), "SCR-100")
	require.True(t, ok)
	assert.Equal(t, issuePath+"SCR-100", gotPath)
}

func TestClientCommentIssue(t *testing.T) {
	var gotBody Comment
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, issuePath+"SCR-100/comment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	comment := NewComment()
	comment.AddLine("Reason: patching")

	ok := testClient(srv).CommentIssue(context.Background(), "SCR-100", comment)
	require.True(t, ok)
	assert.Equal(t, "Reason: patching\n", gotBody.Body)
	assert.Equal(t, "false", gotBody.Public)
}

func TestClientUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := testClient(srv)
	srv.Close()

	assert.False(t, client.Probe(context.Background()))
}

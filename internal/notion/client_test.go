package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieveDatabase(t *testing.T) {
	var gotAuth, gotVersion string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")

		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/databases/abc", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "abc",
			"title": [{"plain_text": "Team Photos"}],
			"data_sources": [{"id": "ds-1", "name": "Photos"}]
		}`))
	}))
	defer srv.Close()

	client := New("secret_key", WithBaseURL(srv.URL))
	db, err := client.RetrieveDatabase(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret_key", gotAuth)
	assert.Equal(t, DefaultVersion, gotVersion)
	assert.Equal(t, "Team Photos", PlainText(db.Title))
	require.Len(t, db.DataSources, 1)
	assert.Equal(t, "ds-1", db.DataSources[0].ID)
}

func TestQueryDataSource_SendsPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/data_sources/ds-1/query", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(100), body["page_size"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [], "has_more": false}`))
	}))
	defer srv.Close()

	client := New("secret_key", WithBaseURL(srv.URL))
	resp, err := client.QueryDataSource(context.Background(), "ds-1", 100)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.False(t, resp.HasMore)
}

func TestAppendBlockChildren(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/blocks/page-1/children", r.URL.Path)

		var body struct {
			Children []Block `json:"children"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Children, 2)
		assert.Equal(t, "image", body.Children[0].Type)
		assert.Equal(t, "https://example.com/a.png", body.Children[0].Image.External.URL)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object": "list", "results": []}`))
	}))
	defer srv.Close()

	client := New("secret_key", WithBaseURL(srv.URL))
	blocks := []Block{
		NewExternalImageBlock("https://example.com/a.png"),
		NewExternalImageBlock("https://example.com/b.jpg"),
	}
	err := client.AppendBlockChildren(context.Background(), "page-1", blocks)
	require.NoError(t, err)
}

func TestDo_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`))
	}))
	defer srv.Close()

	client := New("bad_key", WithBaseURL(srv.URL))
	_, err := client.RetrieveDatabase(context.Background(), "abc")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, ErrCodeUnauthorized, apiErr.Code)
	assert.Equal(t, "API token is invalid.", apiErr.Message)
}

func TestDo_APIErrorWithUnexpectedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	client := New("key", WithBaseURL(srv.URL))
	_, err := client.RetrieveDatabase(context.Background(), "abc")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Code)
}

// Package notion is a minimal client for the Notion API surface this
// service consumes: retrieve a database, query a data source, and append
// child blocks to a page. Authentication is a bearer token supplied per
// client; nothing is cached between calls.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the production Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com/v1"

	// DefaultVersion is the Notion-Version header value. The data-source
	// query endpoint requires 2025-09-03 or later.
	DefaultVersion = "2025-09-03"

	defaultTimeout = 30 * time.Second
)

// Client talks to the Notion API on behalf of a single integration token.
type Client struct {
	apiKey     string
	baseURL    string
	version    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests and self-hosted
// proxies.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithVersion overrides the Notion-Version header.
func WithVersion(v string) Option {
	return func(c *Client) { c.version = v }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client authenticated with the given integration token.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		version: DefaultVersion,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RetrieveDatabase fetches database metadata, including its title and
// the list of queryable data sources.
func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error) {
	var db Database
	if err := c.do(ctx, http.MethodGet, "/databases/"+databaseID, nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// QueryDataSource fetches up to pageSize rows from a data source. A
// single page only; the caller receives the continuation cursor but this
// client never follows it.
func (c *Client) QueryDataSource(ctx context.Context, dataSourceID string, pageSize int) (*QueryResponse, error) {
	body := map[string]any{"page_size": pageSize}
	var resp QueryResponse
	if err := c.do(ctx, http.MethodPost, "/data_sources/"+dataSourceID+"/query", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AppendBlockChildren appends blocks to the given page or block.
func (c *Client) AppendBlockChildren(ctx context.Context, blockID string, blocks []Block) error {
	body := map[string]any{"children": blocks}
	return c.do(ctx, http.MethodPatch, "/blocks/"+blockID+"/children", body, nil)
}

// do issues one API request. Non-2xx responses are decoded into an
// *APIError; transport failures are returned as-is for the gateway to
// classify.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}

// Package gateway sits between the HTTP handlers and the Notion API. It
// normalizes database identifiers, performs the validate/query/sync
// operations with caller-supplied credentials, and translates every
// Notion failure into the fixed user-facing error taxonomy. Credentials
// are passed explicitly on each call; no client is cached between
// requests.
package gateway

import (
	"context"
	"fmt"

	"notiongrid/internal/extract"
	"notiongrid/internal/notion"
	"notiongrid/internal/token"
)

// Operation-level fallback messages for failures outside the fixed code
// mapping.
const (
	fallbackValidate = "Invalid credentials or database not accessible"
	fallbackQuery    = "Failed to query database"
	fallbackSync     = "Failed to sync images to Notion page"
)

// DefaultTitle is used when a database has no title.
const DefaultTitle = "Notion Database"

// ClientFactory builds a Notion client for one request's credentials.
type ClientFactory func(apiKey string) *notion.Client

// Result is one page of query results plus the database title.
type Result struct {
	Rows       []notion.Page
	Title      string
	HasMore    bool
	NextCursor string
}

// Gateway performs all Notion-facing operations.
type Gateway struct {
	newClient ClientFactory
	pageSize  int
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithClientFactory overrides how per-request clients are built. Used to
// point the gateway at a different base URL or HTTP client.
func WithClientFactory(f ClientFactory) Option {
	return func(g *Gateway) { g.newClient = f }
}

// WithPageSize sets how many rows a query fetches. The Notion API caps
// a page at 100 rows.
func WithPageSize(n int) Option {
	return func(g *Gateway) {
		if n > 0 && n <= 100 {
			g.pageSize = n
		}
	}
}

// New creates a gateway with default settings: production Notion API,
// 100-row pages.
func New(opts ...Option) *Gateway {
	g := &Gateway{
		newClient: func(apiKey string) *notion.Client {
			return notion.New(apiKey)
		},
		pageSize: 100,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Validate checks that the API key is authorized and the database is
// reachable. Metadata lookup only; no rows are fetched.
func (g *Gateway) Validate(ctx context.Context, creds token.Credentials) error {
	if err := creds.Validate(); err != nil {
		return missingCredentialsError(msgMissingCredentials)
	}

	client := g.newClient(creds.NotionAPIKey)
	if _, err := client.RetrieveDatabase(ctx, NormalizeDatabaseID(creds.DatabaseID)); err != nil {
		return mapError(err, fallbackValidate)
	}
	return nil
}

// Query fetches one page of rows from the database's data source along
// with the database title.
func (g *Gateway) Query(ctx context.Context, creds token.Credentials) (*Result, error) {
	if err := creds.Validate(); err != nil {
		return nil, missingCredentialsError(msgMissingCredentials)
	}

	client := g.newClient(creds.NotionAPIKey)
	databaseID := NormalizeDatabaseID(creds.DatabaseID)

	db, err := client.RetrieveDatabase(ctx, databaseID)
	if err != nil {
		return nil, mapError(err, fallbackQuery)
	}

	title := notion.PlainText(db.Title)
	if title == "" {
		title = DefaultTitle
	}

	resp, err := client.QueryDataSource(ctx, resolveDataSource(db, databaseID), g.pageSize)
	if err != nil {
		return nil, mapError(err, fallbackQuery)
	}

	return &Result{
		Rows:       resp.Results,
		Title:      title,
		HasMore:    resp.HasMore,
		NextCursor: resp.NextCursor,
	}, nil
}

// SyncImages extracts every image reference from the database and
// appends them as external image blocks to the target page. Returns the
// number of images appended; zero images is a no-op, not an error.
func (g *Gateway) SyncImages(ctx context.Context, creds token.Credentials) (int, error) {
	if creds.TargetPageID == "" {
		return 0, missingCredentialsError(msgMissingTargetPage)
	}

	result, err := g.Query(ctx, creds)
	if err != nil {
		return 0, err
	}

	images := extract.ImageList(result.Rows)
	if len(images) == 0 {
		return 0, nil
	}

	blocks := make([]notion.Block, 0, len(images))
	for _, img := range images {
		blocks = append(blocks, notion.NewExternalImageBlock(img.URL))
	}

	client := g.newClient(creds.NotionAPIKey)
	if err := client.AppendBlockChildren(ctx, creds.TargetPageID, blocks); err != nil {
		return 0, mapError(err, fallbackSync)
	}

	return len(images), nil
}

// resolveDataSource picks the queryable handle for a database: the first
// entry of its data_sources array, falling back to the database's own ID
// for workspaces that still return databases without data sources.
func resolveDataSource(db *notion.Database, databaseID string) string {
	if len(db.DataSources) > 0 && db.DataSources[0].ID != "" {
		return db.DataSources[0].ID
	}
	return databaseID
}

// SyncMessage is the success message for a completed sync.
func SyncMessage(count int) string {
	return fmt.Sprintf("Added %d images to Notion page", count)
}

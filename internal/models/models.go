package models

import "notiongrid/internal/notion"

// CredentialsRequest is the body of the validate, database, sync, and
// embed endpoints. targetPageId is only meaningful for sync.
type CredentialsRequest struct {
	NotionAPIKey string `json:"notionApiKey"`
	DatabaseID   string `json:"databaseId"`
	TargetPageID string `json:"targetPageId,omitempty"`
}

// ValidateResponse is returned when credentials check out.
type ValidateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DatabaseResponse is one page of query results.
type DatabaseResponse struct {
	Results       []notion.Page `json:"results"`
	DatabaseTitle string        `json:"databaseTitle"`
	HasMore       bool          `json:"hasMore"`
	NextCursor    string        `json:"nextCursor,omitempty"`
}

// SyncResponse reports how many images a sync appended.
type SyncResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// EmbedResponse carries a freshly minted embed link.
type EmbedResponse struct {
	EmbedURL string `json:"embedUrl"`
	Token    string `json:"token"`
}

// HealthResponse is the body of the health-check endpoint.
type HealthResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the shape of every error the API returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

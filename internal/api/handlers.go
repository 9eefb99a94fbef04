package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"notiongrid/internal/gateway"
	"notiongrid/internal/models"
	"notiongrid/internal/notion"
	"notiongrid/internal/token"
)

// Handler holds dependencies for API handlers
type Handler struct {
	gateway *gateway.Gateway
	baseURL string
	logger  *slog.Logger
}

// NewHandler creates a new API handler. baseURL is the public origin
// used when minting embed links.
func NewHandler(gw *gateway.Gateway, baseURL string, logger *slog.Logger) *Handler {
	return &Handler{
		gateway: gw,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Health handles GET /api/test
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{Message: "Notion Database Grid API"})
}

// Validate handles POST /api/validate
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	if err := h.gateway.Validate(r.Context(), creds); err != nil {
		h.respondGatewayError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ValidateResponse{
		Success: true,
		Message: "Credentials validated successfully",
	})
}

// Database handles POST /api/database
func (h *Handler) Database(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.gateway.Query(r.Context(), creds)
	if err != nil {
		h.respondGatewayError(w, r, err)
		return
	}

	resp := models.DatabaseResponse{
		Results:       result.Rows,
		DatabaseTitle: result.Title,
		HasMore:       result.HasMore,
		NextCursor:    result.NextCursor,
	}
	if resp.Results == nil {
		resp.Results = []notion.Page{}
	}

	respondJSON(w, http.StatusOK, resp)
}

// Sync handles POST /api/sync
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	count, err := h.gateway.SyncImages(r.Context(), creds)
	if err != nil {
		h.respondGatewayError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.SyncResponse{
		Success: true,
		Message: gateway.SyncMessage(count),
	})
}

// Embed handles POST /api/embed: validates credentials, then mints the
// shareable embed link.
func (h *Handler) Embed(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	if err := h.gateway.Validate(r.Context(), creds); err != nil {
		h.respondGatewayError(w, r, err)
		return
	}

	tok, err := token.Encode(creds)
	if err != nil {
		h.logger.Error("token encode failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, models.EmbedResponse{
		EmbedURL: h.baseURL + "/embed/" + url.PathEscape(tok),
		Token:    tok,
	})
}

// decodeCredentials parses the shared request body. Reports its own
// error response and returns ok=false on failure.
func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (token.Credentials, bool) {
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return token.Credentials{}, false
	}

	return token.Credentials{
		NotionAPIKey: req.NotionAPIKey,
		DatabaseID:   req.DatabaseID,
		TargetPageID: req.TargetPageID,
	}, true
}

// respondGatewayError maps gateway errors onto HTTP responses. Anything
// that is not a gateway.Error is an internal failure and is logged but
// not exposed.
func (h *Handler) respondGatewayError(w http.ResponseWriter, r *http.Request, err error) {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		if gwErr.Category == gateway.CategoryUnexpected {
			h.logger.Error("notion call failed", "path", r.URL.Path, "category", gwErr.Category, "error", err)
		}
		respondError(w, gwErr.Status, gwErr.Message)
		return
	}

	h.logger.Error("unexpected handler failure", "path", r.URL.Path, "error", err)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}

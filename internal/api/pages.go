package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"notiongrid/internal/extract"
	"notiongrid/internal/gateway"
	"notiongrid/internal/token"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type landingData struct {
	BaseURL string
}

type gridData struct {
	Title  string
	Images []extract.ImageReference
}

type tableData struct {
	Title string
	View  extract.TableView
}

type errorData struct {
	Message string
}

// Landing handles GET /: the embed-link generator form.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, "index.html", landingData{BaseURL: h.baseURL})
}

// EmbedPage handles GET /embed/{token}: decodes the token, queries the
// database, and renders either the image grid (default) or the table
// view (?view=table).
func (h *Handler) EmbedPage(w http.ResponseWriter, r *http.Request) {
	// The token is standard base64 and may contain percent-encoded
	// characters; chi hands back the escaped path segment.
	tok, err := url.PathUnescape(chi.URLParam(r, "token"))
	if err != nil {
		h.renderPage(w, http.StatusBadRequest, "error.html", errorData{
			Message: "Invalid embed link. Please generate a new one.",
		})
		return
	}

	creds, err := token.Decode(tok)
	if err != nil {
		h.renderPage(w, http.StatusBadRequest, "error.html", errorData{
			Message: "Invalid embed link. Please generate a new one.",
		})
		return
	}

	result, err := h.gateway.Query(r.Context(), creds)
	if err != nil {
		status := http.StatusInternalServerError
		message := "Failed to load database"

		var gwErr *gateway.Error
		if errors.As(err, &gwErr) {
			status = gwErr.Status
			message = gwErr.Message
		}

		h.renderPage(w, status, "error.html", errorData{Message: message})
		return
	}

	if r.URL.Query().Get("view") == "table" {
		h.renderPage(w, http.StatusOK, "table.html", tableData{
			Title: result.Title,
			View:  extract.Table(result.Rows),
		})
		return
	}

	h.renderPage(w, http.StatusOK, "grid.html", gridData{
		Title:  result.Title,
		Images: extract.ImageList(result.Rows),
	})
}

// renderPage executes a template into a buffer before writing, so a
// template failure produces a clean 500 instead of a torn page.
func (h *Handler) renderPage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

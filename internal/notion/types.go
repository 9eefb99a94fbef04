package notion

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Property kinds returned by the Notion API. Kinds not listed here are
// decoded with their type string preserved and no payload.
const (
	PropertyTypeTitle       = "title"
	PropertyTypeRichText    = "rich_text"
	PropertyTypeSelect      = "select"
	PropertyTypeMultiSelect = "multi_select"
	PropertyTypeStatus      = "status"
	PropertyTypeDate        = "date"
	PropertyTypeCheckbox    = "checkbox"
	PropertyTypeNumber      = "number"
	PropertyTypeURL         = "url"
	PropertyTypeEmail       = "email"
	PropertyTypePhone       = "phone_number"
	PropertyTypePeople      = "people"
	PropertyTypeFiles       = "files"
)

// RichText is a single fragment of Notion rich text.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
	Href      string       `json:"href,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
}

// TextContent is the literal content of a text rich-text fragment.
type TextContent struct {
	Content string `json:"content"`
}

// PlainText joins the plain-text content of a rich-text array.
func PlainText(rt []RichText) string {
	var buf bytes.Buffer
	for _, r := range rt {
		buf.WriteString(r.PlainText)
	}
	return buf.String()
}

// SelectOption is an option of a select, multi_select, or status property.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DateValue is the payload of a date property.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// User is a workspace member referenced by a people property.
type User struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// FileRef points at the actual file location. Hosted files carry an
// expiring URL, external files a caller-provided one.
type FileRef struct {
	URL string `json:"url"`
}

// File is one entry of a files property.
type File struct {
	Name     string     `json:"name,omitempty"`
	Type     string     `json:"type,omitempty"` // "file" or "external"
	File     *FileRef   `json:"file,omitempty"`
	External *FileRef   `json:"external,omitempty"`
	Caption  []RichText `json:"caption,omitempty"`
}

// URL returns the usable URL of the file, preferring the hosted location
// over the external one. Empty when the entry carries neither.
func (f File) URL() string {
	if f.File != nil && f.File.URL != "" {
		return f.File.URL
	}
	if f.External != nil {
		return f.External.URL
	}
	return ""
}

// PropertyValue is the tagged variant carried by each page property.
// Type selects which payload field is populated.
type PropertyValue struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Status      *SelectOption  `json:"status,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	URL         string         `json:"url,omitempty"`
	Email       string         `json:"email,omitempty"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	People      []User         `json:"people,omitempty"`
	Files       []File         `json:"files,omitempty"`
}

// Page is one row of a data source. Property iteration order matters to
// the rendering layer (table columns follow the first row), and Go maps
// do not preserve JSON object order, so the order of keys is captured
// separately during unmarshaling.
type Page struct {
	ID         string                   `json:"id"`
	Properties map[string]PropertyValue `json:"properties"`

	propertyOrder []string
}

// PropertyOrder returns the property names in the order they appeared in
// the API response. Falls back to nil for pages built without JSON.
func (p *Page) PropertyOrder() []string {
	return p.propertyOrder
}

// SetPropertyOrder fixes the iteration order for pages constructed in
// code (tests, fixtures).
func (p *Page) SetPropertyOrder(names []string) {
	p.propertyOrder = names
}

// UnmarshalJSON decodes a page while recording the JSON object order of
// its properties.
func (p *Page) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         string          `json:"id"`
		Properties json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.ID = raw.ID
	p.Properties = make(map[string]PropertyValue)
	p.propertyOrder = nil

	if len(raw.Properties) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw.Properties))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode properties: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode properties: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode properties: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode properties: expected key, got %v", keyTok)
		}

		var pv PropertyValue
		if err := dec.Decode(&pv); err != nil {
			return fmt.Errorf("decode property %q: %w", key, err)
		}

		p.Properties[key] = pv
		p.propertyOrder = append(p.propertyOrder, key)
	}

	return nil
}

// DataSourceRef identifies a queryable data source exposed by a database.
type DataSourceRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Database is the container object returned by the retrieve endpoint.
type Database struct {
	ID          string          `json:"id"`
	Title       []RichText      `json:"title"`
	DataSources []DataSourceRef `json:"data_sources,omitempty"`
}

// QueryResponse is one page of data-source query results.
type QueryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Block is the subset of the block object this service appends: external
// image blocks built from extracted image URLs.
type Block struct {
	Object string      `json:"object"`
	Type   string      `json:"type"`
	Image  *ImageBlock `json:"image,omitempty"`
}

// ImageBlock is the payload of an image block.
type ImageBlock struct {
	Type     string  `json:"type"`
	External FileRef `json:"external"`
}

// NewExternalImageBlock builds an image block pointing at an external URL.
func NewExternalImageBlock(url string) Block {
	return Block{
		Object: "block",
		Type:   "image",
		Image: &ImageBlock{
			Type:     "external",
			External: FileRef{URL: url},
		},
	}
}

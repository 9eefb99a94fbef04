// Package token implements the reversible embed-token codec. A token
// carries the viewer's Notion credentials through the embed URL so the
// server never has to store them.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedToken is returned when a token cannot be decoded back into
// credentials. Callers should surface this as an invalid or expired link,
// never as an internal error.
var ErrMalformedToken = errors.New("malformed embed token")

// Credentials is the configuration encoded into an embed token. The API
// key is a secret: tokens are not encrypted, so the key is only as
// protected as the URL that carries it. That is an accepted limitation
// of the embed scheme, not something to work around here.
type Credentials struct {
	NotionAPIKey string `json:"notionApiKey"`
	DatabaseID   string `json:"databaseId"`
	TargetPageID string `json:"targetPageId,omitempty"`
}

// Validate reports whether the credentials are usable for a gateway call.
func (c Credentials) Validate() error {
	if c.NotionAPIKey == "" || c.DatabaseID == "" {
		return errors.New("notion API key and database ID are required")
	}
	return nil
}

// Encode serializes credentials to JSON and base64-encodes the result,
// producing an opaque token suitable for use as a URL path segment.
func Encode(c Credentials) (string, error) {
	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses Encode. Any failure mode (invalid base64, invalid
// JSON, missing required fields) is reported as ErrMalformedToken.
func Decode(tok string) (Credentials, error) {
	data, err := base64.StdEncoding.DecodeString(tok)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if err := c.Validate(); err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return c, nil
}

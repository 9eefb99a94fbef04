package token

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
	}{
		{
			name:  "key and database",
			creds: Credentials{NotionAPIKey: "secret_abc123", DatabaseID: "a1b2c3d4e5f60718293a4b5c6d7e8f90"},
		},
		{
			name:  "dashed database id",
			creds: Credentials{NotionAPIKey: "ntn_xyz", DatabaseID: "a1b2c3d4-e5f6-0718-293a-4b5c6d7e8f90"},
		},
		{
			name:  "with target page",
			creds: Credentials{NotionAPIKey: "secret_abc", DatabaseID: "db", TargetPageID: "page-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := Encode(tt.creds)
			require.NoError(t, err)
			require.NotEmpty(t, tok)

			got, err := Decode(tok)
			require.NoError(t, err)
			assert.Equal(t, tt.creds, got)
		})
	}
}

func TestEncode_RejectsIncompleteCredentials(t *testing.T) {
	_, err := Encode(Credentials{NotionAPIKey: "secret_abc"})
	assert.Error(t, err)

	_, err = Encode(Credentials{DatabaseID: "db"})
	assert.Error(t, err)
}

func TestDecode_MalformedInputs(t *testing.T) {
	tests := []struct {
		name string
		tok  string
	}{
		{name: "not base64", tok: "!!!not-base64!!!"},
		{name: "base64 but not json", tok: base64.StdEncoding.EncodeToString([]byte("plain text"))},
		{name: "json missing api key", tok: base64.StdEncoding.EncodeToString([]byte(`{"databaseId":"db"}`))},
		{name: "json missing database id", tok: base64.StdEncoding.EncodeToString([]byte(`{"notionApiKey":"k"}`))},
		{name: "empty", tok: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.tok)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedToken), "expected ErrMalformedToken, got %v", err)
		})
	}
}

func TestDecode_BrowserEncodedToken(t *testing.T) {
	// window.btoa output for {"notionApiKey":"k","databaseId":"d"}
	tok := base64.StdEncoding.EncodeToString([]byte(`{"notionApiKey":"k","databaseId":"d"}`))

	got, err := Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "k", got.NotionAPIKey)
	assert.Equal(t, "d", got.DatabaseID)
	assert.Empty(t, got.TargetPageID)
}

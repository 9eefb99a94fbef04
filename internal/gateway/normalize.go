package gateway

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeDatabaseID brings a database ID into canonical dashed UUID
// form. Notion accepts IDs copied out of page URLs, which lack dashes;
// the API itself wants the dashed form. A 32-character hex string gets
// dashes inserted at the standard offsets; everything else passes
// through unchanged and is left to the API to accept or reject.
// Idempotent.
func NormalizeDatabaseID(id string) string {
	stripped := strings.ReplaceAll(id, "-", "")
	if len(stripped) != 32 {
		return id
	}

	parsed, err := uuid.Parse(stripped)
	if err != nil {
		return id
	}
	return parsed.String()
}

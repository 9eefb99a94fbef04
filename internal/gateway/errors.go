package gateway

import (
	"errors"
	"net/http"

	"notiongrid/internal/notion"
)

// Category identifies one member of the user-facing error taxonomy.
type Category string

const (
	CategoryMissingCredentials  Category = "missing_credentials"
	CategoryInvalidCredentials  Category = "invalid_credentials"
	CategoryDatabaseNotFound    Category = "database_not_found"
	CategoryAccessRestricted    Category = "access_restricted"
	CategoryMalformedIdentifier Category = "malformed_identifier"
	CategoryUnexpected          Category = "unexpected"
)

// User-facing messages. Multi-line guidance for the two cases where the
// fix is connecting the integration inside Notion.
const (
	msgMissingCredentials = "Notion API Key and Database ID are required"
	msgMissingTargetPage  = "Target page ID is required"
	msgInvalidAPIKey      = "Invalid Notion API Key"
	msgDatabaseNotFound   = "Database not found. Make sure:\n1. The database ID is correct\n2. Your integration is connected to the database (click \"...\" → \"Add connections\" in Notion)"
	msgAccessRestricted   = "Database access restricted. Connect your integration to the database in Notion (click \"...\" → \"Add connections\")"
	msgBadIdentifier      = "Invalid Database ID format. Please check and try again."
)

// Error is what every gateway operation returns on failure: exactly one
// taxonomy category, the HTTP status to surface, and a human-readable
// message. Raw Notion errors never cross this boundary.
type Error struct {
	Category Category
	Status   int
	Message  string
}

func (e *Error) Error() string {
	return e.Message
}

// mapError translates any failure from the Notion client into a taxonomy
// member. The mapping is total: recognized API codes get their fixed
// category, unrecognized codes get the operation's fallback message with
// a 400, and transport or internal failures get the fallback with a 500.
func mapError(err error, fallback string) *Error {
	var apiErr *notion.APIError
	if !errors.As(err, &apiErr) {
		return &Error{
			Category: CategoryUnexpected,
			Status:   http.StatusInternalServerError,
			Message:  fallback,
		}
	}

	switch apiErr.Code {
	case notion.ErrCodeUnauthorized:
		return &Error{Category: CategoryInvalidCredentials, Status: http.StatusBadRequest, Message: msgInvalidAPIKey}
	case notion.ErrCodeObjectNotFound:
		return &Error{Category: CategoryDatabaseNotFound, Status: http.StatusBadRequest, Message: msgDatabaseNotFound}
	case notion.ErrCodeRestrictedResource:
		return &Error{Category: CategoryAccessRestricted, Status: http.StatusBadRequest, Message: msgAccessRestricted}
	case notion.ErrCodeInvalidRequestURL:
		return &Error{Category: CategoryMalformedIdentifier, Status: http.StatusBadRequest, Message: msgBadIdentifier}
	default:
		return &Error{Category: CategoryUnexpected, Status: http.StatusBadRequest, Message: fallback}
	}
}

func missingCredentialsError(msg string) *Error {
	return &Error{
		Category: CategoryMissingCredentials,
		Status:   http.StatusBadRequest,
		Message:  msg,
	}
}

// Package core provides the tabular presentation engine behind the dashboard.
//
// # Error Codes Reference
//
// Technical errors are mapped to user-facing messages with a code that can be
// quoted to support staff. Codes are grouped by category:
//
// # Table Errors (TBL001-TBL099)
//
//	TBL001 - Table not found: The requested table does not exist
//	         Action: Pick a table from the navigation
//	         Patterns: "table not found"
//
// # Filter Errors (FLT001-FLT099)
//
//	FLT001 - Invalid filter: A filter value is not one of the known options
//	         Action: Reset the filters and choose again
//	         Patterns: "invalid filter"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Unsupported format: The export format is not supported
//	         Action: Export as csv or excel
//	         Patterns: "unsupported export format"
//
// # View Errors (VIEW001-VIEW099)
//
//	VIEW001 - Toggle unsupported: This table has no toggle column
//	          Action: Toggles are only available on alert rules
//	          Patterns: "toggle not supported"
//
//	VIEW002 - Row not found: The row does not exist in this table
//	          Action: Refresh the page and try again
//	          Patterns: "row not found"
//
// # Fixture Errors (FIX001-FIX099)
//
// Raised at startup when a fixture set fails validation.
//
//	FIX001 - Duplicate id: Two rows share the same identifier
//	         Patterns: "duplicate row id"
//
//	FIX002 - Missing id: A row has an empty identifier
//	         Patterns: "missing row id"
//
//	FIX003 - Invalid fixture: A fixture file could not be decoded
//	         Patterns: "invalid fixture"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	         Patterns: "context canceled"
//
//	REQ002 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check the logs for the
// original error.
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Their messages contain the patterns below so that wrapped
// errors still map to the right code.
var (
	ErrTableNotFound        = errors.New("table not found")
	ErrInvalidFilter        = errors.New("invalid filter")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
	ErrToggleUnsupported    = errors.New("toggle not supported")
	ErrRowNotFound          = errors.New("row not found")
	ErrDuplicateID          = errors.New("duplicate row id")
	ErrMissingID            = errors.New("missing row id")
	ErrInvalidFixture       = errors.New("invalid fixture")
	ErrDuplicateTable       = errors.New("duplicate table key")
	ErrInvalidConfiguration = errors.New("invalid table configuration")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. Order matters: specific patterns before general ones.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Table and filter errors
	// =========================================================================
	{
		pattern: "table not found",
		msg: UserMessage{
			Message: "Table not found",
			Action:  "Pick a table from the navigation",
			Code:    "TBL001",
		},
	},
	{
		pattern: "invalid filter",
		msg: UserMessage{
			Message: "A filter value is not one of the known options",
			Action:  "Reset the filters and choose again",
			Code:    "FLT001",
		},
	},
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "The export format is not supported",
			Action:  "Export as csv or excel",
			Code:    "EXP001",
		},
	},

	// =========================================================================
	// View state errors
	// =========================================================================
	{
		pattern: "toggle not supported",
		msg: UserMessage{
			Message: "This table has no toggle column",
			Action:  "Toggles are only available on alert rules",
			Code:    "VIEW001",
		},
	},
	{
		pattern: "row not found",
		msg: UserMessage{
			Message: "The row does not exist in this table",
			Action:  "Refresh the page and try again",
			Code:    "VIEW002",
		},
	},

	// =========================================================================
	// Fixture errors (startup)
	// =========================================================================
	{
		pattern: "duplicate row id",
		msg: UserMessage{
			Message: "Two rows share the same identifier",
			Action:  "Give every fixture row a unique id",
			Code:    "FIX001",
		},
	},
	{
		pattern: "missing row id",
		msg: UserMessage{
			Message: "A row has an empty identifier",
			Action:  "Give every fixture row a non-empty id",
			Code:    "FIX002",
		},
	},
	{
		pattern: "invalid fixture",
		msg: UserMessage{
			Message: "A fixture file could not be read",
			Action:  "Check the fixture JSON for syntax errors",
			Code:    "FIX003",
		},
	},

	// =========================================================================
	// Request lifecycle
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Narrow the search or try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern, or ERR000 when nothing matches.
//
// Example:
//
//	err := fmt.Errorf("load vendors: %w", ErrDuplicateID)
//	msg := MapError(err)
//	// msg.Code == "FIX001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}

package errors

import "fmt"

// Error codes
const (
	CodeUpstream      = "UPSTREAM_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeMalformed     = "MALFORMED_RESPONSE"
	CodeInvalidUID    = "INVALID_UID_FORMAT"
)

// EnkaError is the base error carried by every error kind in this package.
type EnkaError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *EnkaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *EnkaError) Unwrap() error {
	return e.Cause
}

// UpstreamError reports a non-2xx, non-404 response or a transport-level
// failure. StatusCode is 0 when no response was received at all.
type UpstreamError struct {
	*EnkaError
	URL        string
	StatusText string
}

func NewUpstreamError(message string, statusCode int, statusText, url string) *UpstreamError {
	return &UpstreamError{
		EnkaError: &EnkaError{
			Message:    message,
			Code:       CodeUpstream,
			StatusCode: statusCode,
			Context: map[string]any{
				"url": url,
			},
		},
		URL:        url,
		StatusText: statusText,
	}
}

func (e *UpstreamError) WithCause(cause error) *UpstreamError {
	e.Cause = cause
	return e
}

// NotFoundError reports a 404 for a username/hash-addressed resource.
type NotFoundError struct {
	*UpstreamError
	Username string
	Hash     string
}

func NewNotFoundError(username, hash string, statusCode int, statusText, url string) *NotFoundError {
	message := fmt.Sprintf("enka.network user %q not found", username)
	if hash != "" {
		message = fmt.Sprintf("game account %q of enka.network user %q not found", hash, username)
	}
	return &NotFoundError{
		UpstreamError: &UpstreamError{
			EnkaError: &EnkaError{
				Message:    message,
				Code:       CodeNotFound,
				StatusCode: statusCode,
				Context: map[string]any{
					"username": username,
					"hash":     hash,
					"url":      url,
				},
			},
			URL:        url,
			StatusText: statusText,
		},
		Username: username,
		Hash:     hash,
	}
}

// ConfigurationError reports a broken registry setup, never a network fault.
type ConfigurationError struct {
	*EnkaError
}

func NewConfigurationError(message string, context map[string]any) *ConfigurationError {
	return &ConfigurationError{
		EnkaError: &EnkaError{
			Message: message,
			Code:    CodeConfiguration,
			Context: context,
		},
	}
}

// MalformedResponseError reports a 200 response whose body is missing a
// required field or carries one of the wrong type.
type MalformedResponseError struct {
	*EnkaError
	Field string
}

func NewMalformedResponseError(message, field string) *MalformedResponseError {
	return &MalformedResponseError{
		EnkaError: &EnkaError{
			Message: message,
			Code:    CodeMalformed,
			Context: map[string]any{
				"field": field,
			},
		},
		Field: field,
	}
}

func (e *MalformedResponseError) WithCause(cause error) *MalformedResponseError {
	e.Cause = cause
	return e
}

// InvalidUIDFormatError is raised by game libraries when an in-game UID does
// not match the game's format. No core operation produces it.
type InvalidUIDFormatError struct {
	*EnkaError
	UID int
}

func NewInvalidUIDFormatError(uid, statusCode int, statusText string) *InvalidUIDFormatError {
	return &InvalidUIDFormatError{
		EnkaError: &EnkaError{
			Message:    fmt.Sprintf("invalid UID format (%d provided)", uid),
			Code:       CodeInvalidUID,
			StatusCode: statusCode,
			Context: map[string]any{
				"uid":         uid,
				"status_text": statusText,
			},
		},
		UID: uid,
	}
}

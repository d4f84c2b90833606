package services

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate record")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSlugExhausted  = errors.New("no free slug available")
	ErrNotConfigured  = errors.New("GROQ_API_KEY not configured")
	ErrInvalidSVG     = errors.New("response does not contain an svg element")
	ErrEmptyResponse  = errors.New("model returned an empty response")
	ErrInvalidPalette = errors.New("palette is missing a color slot")
)

// ErrorCode distinguishes failures that callers must handle differently.
type ErrorCode string

const (
	CodeMissingAPIKey ErrorCode = "MISSING_API_KEY"
	CodePaletteFailed ErrorCode = "PALETTE_FAILED"
	CodePersistFailed ErrorCode = "PERSIST_FAILED"
)

// Error is a pipeline failure carrying a reason code.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsConfigurationError reports whether err stems from a missing integration.
func IsConfigurationError(err error) bool {
	var e *Error
	if errors.As(err, &e) && e.Code == CodeMissingAPIKey {
		return true
	}
	return errors.Is(err, ErrNotConfigured)
}

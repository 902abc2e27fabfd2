package apierror

import "net/http"

// Code is the closed vocabulary every handler uses to report failure.
// Handlers never emit ad hoc error shapes outside this set.
type Code string

const (
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeRateLimit    Code = "RATE_LIMIT"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeConflict     Code = "CONFLICT"
)

// statusByCode fixes the HTTP status for each code; an Error can never
// carry a status inconsistent with its code.
var statusByCode = map[Code]int{
	CodeUnauthorized: http.StatusUnauthorized,
	CodeForbidden:    http.StatusForbidden,
	CodeNotFound:     http.StatusNotFound,
	CodeValidation:   http.StatusBadRequest,
	CodeRateLimit:    http.StatusTooManyRequests,
	CodeInternal:     http.StatusInternalServerError,
	CodeBadRequest:   http.StatusBadRequest,
	CodeConflict:     http.StatusConflict,
}

// StatusFor returns the HTTP status mapped to code.
func StatusFor(code Code) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is the typed error envelope serialized back to callers.
// Fields is populated only by Validation; every other constructor leaves
// it nil, so no code path can smuggle an untyped payload.
type Error struct {
	Code    Code
	Message string
	Status  int
	Fields  map[string]string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message, Status: StatusFor(code)}
}

// Validation reports malformed client input with per-field messages.
func Validation(fields map[string]string) *Error {
	e := New(CodeValidation, "validation failed")
	e.Fields = fields
	return e
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "unauthorized"
	}
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "forbidden"
	}
	return New(CodeForbidden, message)
}

func NotFound(resource string) *Error {
	return New(CodeNotFound, resource+" not found")
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func RateLimit() *Error {
	return New(CodeRateLimit, "rate limit exceeded")
}

func BadRequest(message string) *Error {
	return New(CodeBadRequest, message)
}

// Internal reports a store or unexpected failure. The message is what the
// caller sees; never pass raw store error text here.
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

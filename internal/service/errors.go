package service

import "fmt"

// ErrorCode classifies service failures for the API boundary.
type ErrorCode string

const (
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeBadRequest   ErrorCode = "BAD_REQUEST"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
)

// Error is a service-layer error carrying a user-facing message. Only
// business-rule failures (slug taken, last role-holder, invite not found,
// missing permissions) produce one; infrastructure errors propagate as-is and
// are surfaced opaquely.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Code: CodeBadRequest, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

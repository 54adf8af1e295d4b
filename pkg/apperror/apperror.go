package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Code int

const (
	CodeBadRequest Code = iota + 1
	CodeNotFound
	CodeInternal
)

func (c Code) String() string {
	switch c {
	case CodeBadRequest:
		return "bad_request"
	case CodeNotFound:
		return "not_found"
	default:
		return "internal_error"
	}
}

func (c Code) HTTPStatus() int {
	switch c {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a business failure carried back to the caller as a value.
type Error struct {
	Code    Code
	Message string
}

// Kind sentinels. errors.Is(err, ErrNotFound) matches every NotFound error.
var (
	ErrBadRequest = &Error{Code: CodeBadRequest}
	ErrNotFound   = &Error{Code: CodeNotFound}
	ErrInternal   = &Error{Code: CodeInternal}
)

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func BadRequest(message string) *Error {
	return New(CodeBadRequest, message)
}

func BadRequestf(format string, args ...any) *Error {
	return New(CodeBadRequest, fmt.Sprintf(format, args...))
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Code == e.Code
}

// CodeOf returns CodeInternal for anything that is not an *Error.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func StatusOf(err error) int {
	return CodeOf(err).HTTPStatus()
}

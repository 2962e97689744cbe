package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed API call. Gateways normalize every failure
// into one of these kinds so callers can decide whether to abort, absorb,
// or surface it without inspecting transport details.
type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"
	KindAuth       ErrorKind = "auth"
	KindForbidden  ErrorKind = "forbidden"
	KindValidation ErrorKind = "validation"
	KindServer     ErrorKind = "server"
)

type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("status %d", e.Status)
	}
	return string(e.Kind) + " error"
}

func (e *Error) Unwrap() error {
	return e.cause
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "request failed, please try again", cause: err}
}

func statusError(status int, message string) *Error {
	kind := KindServer
	switch {
	case status == 401:
		kind = KindAuth
	case status == 403:
		kind = KindForbidden
	case status >= 400 && status < 500:
		kind = KindValidation
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// IsKind reports whether err is an API error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func IsAuth(err error) bool      { return IsKind(err, KindAuth) }
func IsForbidden(err error) bool { return IsKind(err, KindForbidden) }

// Package apperr defines the error taxonomy shared by every feature.
// Features declare sentinel *Error values; transports map the Kind to a status.
package apperr

import (
	"context"
	"errors"
)

// Kind classifies a failure independently of the transport.
type Kind int

const (
	// KindInfrastructure is the zero value: anything not classified is treated as a store/config failure.
	KindInfrastructure Kind = iota
	KindNotFound
	KindGone
	KindDisabled
	KindUnauthorized
	KindForbidden
	KindConflict
	KindBadRequest
	// KindTimeout marks work abandoned because the request deadline passed.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindGone:
		return "gone"
	case KindDisabled:
		return "disabled"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindBadRequest:
		return "bad_request"
	case KindTimeout:
		return "timeout"
	default:
		return "infrastructure"
	}
}

// Error is a classified failure whose message is safe to return to callers.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// New creates a classified error.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// KindOf returns the Kind of the first *Error in err's chain.
// An exceeded context deadline reports KindTimeout; other unclassified errors
// report KindInfrastructure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindInfrastructure
}

// PublicMessage returns the message that may cross the process boundary.
// Infrastructure failures never expose their details.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInfrastructure {
		return e.Msg
	}
	if KindOf(err) == KindTimeout {
		return "timeout"
	}
	return "internal server error"
}

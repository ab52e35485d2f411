// Package errs defines the error taxonomy shared by all services.
// Handlers map kinds to HTTP status codes; services return them so callers
// can tell a conflict from a bad value without parsing messages.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindRoleViolation
	KindDuplicate
	KindValidation
	KindBusinessRule
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindRoleViolation:
		return "role_violation"
	case KindDuplicate:
		return "duplicate"
	case KindValidation:
		return "validation"
	case KindBusinessRule:
		return "business_rule"
	default:
		return "unexpected"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func RoleViolation(msg string) error {
	return &Error{Kind: KindRoleViolation, Msg: msg}
}

func Duplicate(msg string) error {
	return &Error{Kind: KindDuplicate, Msg: msg}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func BusinessRule(msg string) error {
	return &Error{Kind: KindBusinessRule, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of err, or KindUnexpected for errors outside the
// taxonomy (driver faults, context cancellation, ...).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }

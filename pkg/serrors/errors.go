package serrors

import "errors"

// Error is a coded error intended to cross API boundaries: Code and Message
// are safe to surface to callers, Detail is for logs only.
type Error struct {
	Code    string
	Message string
	Detail  string

	cause error
}

func NewError(code, message, detail string) *Error {
	return &Error{Code: code, Message: message, Detail: detail}
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail returns a copy carrying an internal detail string.
func (e *Error) WithDetail(detail string) *Error {
	c := *e
	c.Detail = detail
	return &c
}

// Wrap returns a copy of e with err recorded as the cause, so that
// errors.Is(wrapped, e) and errors.Is(wrapped, err) both hold.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.cause = err
	if c.Detail == "" && err != nil {
		c.Detail = err.Error()
	}
	return &c
}

// Is matches by code, so wrapped copies still compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// From extracts the first coded error in err's chain.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

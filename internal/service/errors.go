package service

import "fmt"

// Kind classifies a service failure. The HTTP layer maps each kind to one
// status code.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindNotFound:
		return "not found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by every service operation that fails for a reason the
// caller can act on. Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
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

// Is matches the Err* sentinels by kind, so errors.Is(err, ErrNotFound)
// works for any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrBadRequest   = &Error{Kind: KindBadRequest}
)

const (
	msgNotFound           = "Record not found"
	msgNotAllowed         = "Action not allowed"
	msgStoreFail          = "Store fail"
	msgUpdateFail         = "Update fail"
	msgDeleteFail         = "Delete fail"
	msgReadFail           = "Read fail"
	msgInvalidCredentials = "Invalid credentials"
	msgInactiveUser       = "User is not active"
)

func notFound() error {
	return &Error{Kind: KindNotFound, Message: msgNotFound}
}

func unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func badRequest(msg string, cause error) error {
	return &Error{Kind: KindBadRequest, Message: msg, Err: cause}
}

package remote

import (
	"errors"
	"fmt"
)

// Kind classifies a remote call failure.
type Kind int

const (
	// KindTransport covers connection, TLS and timeout failures.
	KindTransport Kind = iota + 1
	// KindUnauthorized is a 401 or 403 answer.
	KindUnauthorized
	// KindServer is any other non-2xx answer.
	KindServer
	// KindDecode is a 2xx answer whose body could not be parsed.
	KindDecode
	// KindMissingToken is a report request answered without a token.
	KindMissingToken
)

// Sentinels usable with errors.Is against an *Error.
var (
	ErrTransport    = errors.New("remote: transport failure")
	ErrUnauthorized = errors.New("remote: unauthorized")
	ErrServer       = errors.New("remote: server error")
	ErrDecode       = errors.New("remote: malformed response")
	ErrMissingToken = errors.New("remote: missing report token")
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	case KindMissingToken:
		return "missing_token"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindUnauthorized:
		return ErrUnauthorized
	case KindServer:
		return ErrServer
	case KindDecode:
		return ErrDecode
	case KindMissingToken:
		return ErrMissingToken
	default:
		return nil
	}
}

// Error describes a failed remote call.
type Error struct {
	// Op names the call, e.g. "list hosts".
	Op string
	// Kind classifies the failure.
	Kind Kind
	// Status is the HTTP status code, zero when no response was received.
	Status int
	// Body is the (truncated) response body, if any.
	Body string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of a remote error, or zero if err is not one.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}

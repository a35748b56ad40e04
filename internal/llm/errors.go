package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTransport marks network or connection failures.
	ErrTransport = errors.New("llm: transport failure")
	// ErrRemote marks a non-success response from the remote side.
	ErrRemote = errors.New("llm: remote error")
	// ErrMalformedResponse marks a response without a usable completion.
	ErrMalformedResponse = errors.New("llm: malformed response")
)

// TransportError wraps a failure to reach the remote endpoint.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("llm: transport: %v", e.Err) }

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// RemoteError is a failure reported by the remote endpoint.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

func (e *RemoteError) Unwrap() error { return ErrRemote }

func remoteError(status int, message string) *RemoteError {
	if message == "" {
		message = fmt.Sprintf("API request failed with status %d", status)
	}
	return &RemoteError{Status: status, Message: message}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}

// Kind names a remote failure class.
type Kind string

const (
	KindNone              Kind = ""
	KindTransport         Kind = "transport_failure"
	KindRemote            Kind = "remote_error"
	KindMalformedResponse Kind = "malformed_response"
	KindCanceled          Kind = "canceled"
)

// Classify maps an error returned by a Provider to its Kind. Errors that
// match no class are reported as transport failures.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrRemote):
		return KindRemote
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	case errors.Is(err, context.Canceled):
		return KindCanceled
	default:
		return KindTransport
	}
}

package service

import (
	"errors"
	"fmt"
)

// DefaultRemoteMessage is used when a failed response carries no usable error field
const DefaultRemoteMessage = "Failed to get prediction"

// RemoteError is returned when the service was reached but reported a failure
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("classification service returned status %d: %s", e.StatusCode, e.Message)
}

// TransportError is returned when the call could not complete or the
// response could not be understood.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRemoteError reports whether err is or wraps a RemoteError
func IsRemoteError(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr)
}

// IsTransportError reports whether err is or wraps a TransportError
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

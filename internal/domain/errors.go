package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSecretNotFound   = errors.New("secret not found")
	ErrPersonaNotFound  = errors.New("persona not found")
	ErrSnapshotNotFound = errors.New("journal snapshot not found")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type ProtocolError struct {
	StatusCode int
	Body       string
}

func (e *ProtocolError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("completion endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("completion endpoint returned status %d: %s", e.StatusCode, e.Body)
}

type EmptyResponseError struct {
	Reason string
}

func (e *EmptyResponseError) Error() string {
	if e.Reason == "" {
		return "completion response has no candidates"
	}
	return "completion response has no candidates: " + e.Reason
}

// ClassifyError maps a completion failure onto the error marker stored in AdviceState.
func ClassifyError(err error) (ErrorKind, int) {
	if err == nil {
		return ErrorKindNone, 0
	}

	var protocolErr *ProtocolError
	if errors.As(err, &protocolErr) {
		return ErrorKindProtocol, protocolErr.StatusCode
	}

	var emptyErr *EmptyResponseError
	if errors.As(err, &emptyErr) {
		return ErrorKindEmptyResponse, 0
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return ErrorKindTransport, 0
	}

	return ErrorKindUnknown, 0
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

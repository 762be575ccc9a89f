package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an operation failure for display and status mapping.
type ErrorKind string

const (
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindValidation     ErrorKind = "validation"
	ErrorKindVendorAPI      ErrorKind = "vendor_api"
	ErrorKindLocalIO        ErrorKind = "local_io"
)

// ErrNotConnected is wrapped in an authentication error when an operation is
// requested for a platform the session has not authenticated against.
var ErrNotConnected = errors.New("platform not connected")

// ErrNotFound is returned by adapters when the vendor reports no matching resource.
var ErrNotFound = errors.New("resource not found")

// OperationError carries the error kind alongside the underlying cause.
// Error() always includes the cause's message unchanged.
type OperationError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *OperationError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error { return e.Err }

// NewAuthenticationError wraps err as an authentication failure.
func NewAuthenticationError(op string, err error) error {
	return &OperationError{Kind: ErrorKindAuthentication, Op: op, Err: err}
}

// NewValidationError builds a validation failure from a formatted message.
func NewValidationError(op, format string, args ...any) error {
	return &OperationError{Kind: ErrorKindValidation, Op: op, Err: fmt.Errorf(format, args...)}
}

// NewVendorError wraps err as a failure returned by a remote platform.
func NewVendorError(op string, err error) error {
	return &OperationError{Kind: ErrorKindVendorAPI, Op: op, Err: err}
}

// NewLocalIOError wraps err as a local filesystem failure.
func NewLocalIOError(op string, err error) error {
	return &OperationError{Kind: ErrorKindLocalIO, Op: op, Err: err}
}

// KindOf returns the kind of the first OperationError in err's chain.
// Unclassified errors are reported as vendor API failures.
func KindOf(err error) ErrorKind {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return ErrorKindVendorAPI
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var opErr *OperationError
	return errors.As(err, &opErr) && opErr.Kind == kind
}

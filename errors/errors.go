package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorNone ErrorType = iota
	ErrorTransport
	ErrorProtocol
	ErrorInvalidArgument
	ErrorAborted
)

// TransportError represents transport-layer specific errors
type TransportError int

const (
	TransportErrorNone TransportError = iota
	TransportErrorSocketCreateFailure
	TransportErrorSocketConnectFailure
	TransportErrorSocketReadFailure
	TransportErrorSocketWriteFailure
	TransportErrorConnectionClosed
	TransportErrorDnsFailure
	TransportErrorTimeout
	TransportErrorIoUringInit
	TransportErrorIoUringSubmit
)

// ProtocolError represents protocol-layer specific errors
type ProtocolError int

const (
	ProtocolErrorNone ProtocolError = iota
	ProtocolErrorInvalidStatusLine
	ProtocolErrorInvalidHeader
	ProtocolErrorInvalidChunkedEncoding
	ProtocolErrorInvalidBody
	ProtocolErrorMessageTooLarge
	ProtocolErrorIncompleteResponse
)

// HttpError is the main error type for the HTTP client
type HttpError struct {
	Type          ErrorType
	TransportErr  TransportError
	ProtocolErr   ProtocolError
	Message       string
	UnderlyingErr error
}

// Error implements the error interface
func (e *HttpError) Error() string {
	if e == nil {
		return "no error"
	}

	var typeStr string
	switch e.Type {
	case ErrorTransport:
		typeStr = fmt.Sprintf("Transport error (%d)", e.TransportErr)
	case ErrorProtocol:
		typeStr = fmt.Sprintf("Protocol error (%d)", e.ProtocolErr)
	case ErrorInvalidArgument:
		typeStr = "Invalid argument"
	case ErrorAborted:
		typeStr = "Aborted"
	default:
		typeStr = "Unknown error"
	}

	if e.Message != "" {
		typeStr = fmt.Sprintf("%s: %s", typeStr, e.Message)
	}

	if e.UnderlyingErr != nil {
		return fmt.Sprintf("%s (caused by: %v)", typeStr, e.UnderlyingErr)
	}

	return typeStr
}

// Unwrap returns the underlying error for error chain support
func (e *HttpError) Unwrap() error {
	return e.UnderlyingErr
}

// NewTransportError creates a new transport error
func NewTransportError(err TransportError, message string, underlying error) *HttpError {
	return &HttpError{
		Type:          ErrorTransport,
		TransportErr:  err,
		Message:       message,
		UnderlyingErr: underlying,
	}
}

// NewProtocolError creates a new protocol error
func NewProtocolError(err ProtocolError, message string) *HttpError {
	return &HttpError{
		Type:        ErrorProtocol,
		ProtocolErr: err,
		Message:     message,
	}
}

// NewProtocolErrorCause creates a new protocol error wrapping an underlying error
func NewProtocolErrorCause(err ProtocolError, message string, underlying error) *HttpError {
	return &HttpError{
		Type:          ErrorProtocol,
		ProtocolErr:   err,
		Message:       message,
		UnderlyingErr: underlying,
	}
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message string) *HttpError {
	return &HttpError{
		Type:    ErrorInvalidArgument,
		Message: message,
	}
}

// NewAbortedError creates a new aborted error, used when a caller-supplied
// body sink rejects a block during a drain
func NewAbortedError(message string) *HttpError {
	return &HttpError{
		Type:    ErrorAborted,
		Message: message,
	}
}

// IsTransport reports whether err is a transport-layer HttpError
func IsTransport(err error) bool {
	var he *HttpError
	return stderrors.As(err, &he) && he.Type == ErrorTransport
}

// IsProtocol reports whether err is a protocol-layer HttpError
func IsProtocol(err error) bool {
	var he *HttpError
	return stderrors.As(err, &he) && he.Type == ErrorProtocol
}

// IsAborted reports whether err is an abort signalled by a body sink
func IsAborted(err error) bool {
	var he *HttpError
	return stderrors.As(err, &he) && he.Type == ErrorAborted
}

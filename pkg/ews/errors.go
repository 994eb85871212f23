package ews

import (
	"errors"
	"fmt"
)

// Error kinds returned by the FindFolder operation. Use errors.Is to match
// them; TransportError and ParseError carry the details.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrTransport    = errors.New("transport error")
	ErrParse        = errors.New("parse error")
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrInvalidEndpoint      = errors.New("invalid endpoint")
	ErrParentFolderRequired = fmt.Errorf("%w: parent folder id must not be empty", ErrInvalidInput)
	ErrFolderShapeRequired  = fmt.Errorf("%w: folder shape must not be empty", ErrInvalidInput)
)

// TransportError reports a failed HTTP exchange: either the request never
// completed (Err is set) or the server answered with a status other than 200.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       []byte
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: POST %s: %v", e.Endpoint, e.Err)
	}

	return fmt.Sprintf("transport error: POST %s: HTTP error code: %d", e.Endpoint, e.StatusCode)
}

// Unwrap returns the underlying network error, if any.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ParseError reports a response body that is not well-formed XML.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

// Unwrap returns the decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IsInputError checks if the error was caused by invalid caller input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTransportError checks if the error is a transport failure.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsParseError checks if the error is a response parse failure.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

// StatusCode returns the HTTP status carried by a TransportError, or 0.
func StatusCode(err error) int {
	transportErr := &TransportError{}
	if errors.As(err, &transportErr) {
		return transportErr.StatusCode
	}

	return 0
}

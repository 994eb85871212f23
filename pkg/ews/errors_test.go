package ews

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *TransportError
		expected string
	}{
		{
			name:     "status",
			err:      &TransportError{Endpoint: "http://localhost:8080/ews/FindFolder", StatusCode: 500},
			expected: "transport error: POST http://localhost:8080/ews/FindFolder: HTTP error code: 500",
		},
		{
			name:     "network",
			err:      &TransportError{Endpoint: "http://localhost:1", Err: syscall.ECONNREFUSED},
			expected: "transport error: POST http://localhost:1: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorKinds(t *testing.T) {
	transportErr := fmt.Errorf("sending FindFolder request: %w",
		&TransportError{Endpoint: "x", Err: syscall.ECONNREFUSED})
	parseErr := fmt.Errorf("parsing FindFolder response: %w", &ParseError{Err: errors.New("unexpected EOF")})
	inputErr := fmt.Errorf("validating: %w", ErrParentFolderRequired)

	assert.True(t, IsTransportError(transportErr))
	assert.True(t, errors.Is(transportErr, syscall.ECONNREFUSED))
	assert.False(t, IsParseError(transportErr))
	assert.False(t, IsInputError(transportErr))

	assert.True(t, IsParseError(parseErr))
	assert.False(t, IsTransportError(parseErr))

	assert.True(t, IsInputError(inputErr))
	assert.True(t, IsInputError(ErrFolderShapeRequired))
	assert.False(t, IsTransportError(inputErr))

	assert.Equal(t, 0, StatusCode(parseErr))
	assert.Equal(t, 404, StatusCode(fmt.Errorf("wrapped: %w", &TransportError{StatusCode: 404})))
}

func TestFindFolderResult_Err(t *testing.T) {
	result := &FindFolderResult{HasPayload: true}
	assert.False(t, result.IsFault())
	assert.NoError(t, result.Err())

	result = &FindFolderResult{Fault: &Fault{Code: "ErrorInvalidFolderId", String: "bad id"}}
	assert.True(t, result.IsFault())

	fault := &Fault{}
	assert.True(t, errors.As(result.Err(), &fault))
	assert.Equal(t, "soap fault ErrorInvalidFolderId: bad id", fault.Error())
}

func TestReporterFunc(t *testing.T) {
	var got *FindFolderOutcome

	reporter := ReporterFunc(func(_ context.Context, outcome *FindFolderOutcome) error {
		got = outcome

		return nil
	})

	outcome := &FindFolderOutcome{RequestID: "abc"}
	assert.NoError(t, reporter.Report(context.Background(), outcome))
	assert.Same(t, outcome, got)
}

// Package ews defines the public types of the Exchange Web Services
// FindFolder client: configuration, folder records, faults and the error
// kinds returned by the operation.
//
// A call has three kinds of outcome:
//
//   - a *FindFolderResult with folders (possibly none, or no payload at all),
//   - a *FindFolderResult whose Fault is set, for a SOAP fault,
//   - an error: ErrInvalidInput, a *TransportError or a *ParseError.
//
// Faults are data. Check result.IsFault() or escalate with result.Err().
// Clients are built with github.com/fivetwenty-io/ews-client/pkg/ewsclient.
package ews

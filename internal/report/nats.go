// Package report forwards FindFolder outcomes to external sinks.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/ews-client/internal/constants"
	"github.com/fivetwenty-io/ews-client/pkg/ews"
	"github.com/nats-io/nats.go"
)

// Static errors for err113 compliance.
var (
	ErrPublisherRequired = errors.New("NATS publisher is required")
)

// Header names set on every published message.
const (
	HeaderRequestID = "Ews-Request-Id"
	HeaderOutcome   = "Ews-Outcome"
)

// Outcome header values.
const (
	OutcomeFolders   = "folders"
	OutcomeFault     = "fault"
	OutcomeNoPayload = "no-payload"
	OutcomeError     = "error"
)

// Publisher is the part of *nats.Conn the reporter needs.
type Publisher interface {
	PublishMsg(msg *nats.Msg) error
}

// NATSReporter publishes each outcome as JSON on a subject.
type NATSReporter struct {
	publisher Publisher
	subject   string
}

// NewNATSReporter creates a reporter. An empty subject selects
// constants.DefaultNATSSubject.
func NewNATSReporter(publisher Publisher, subject string) (*NATSReporter, error) {
	if publisher == nil {
		return nil, ErrPublisherRequired
	}

	if subject == "" {
		subject = constants.DefaultNATSSubject
	}

	return &NATSReporter{publisher: publisher, subject: subject}, nil
}

// Connect opens a NATS connection suitable for NewNATSReporter.
func Connect(url, name string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(constants.NATSConnectTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	return conn, nil
}

// Subject returns the subject outcomes are published on.
func (r *NATSReporter) Subject() string {
	return r.subject
}

// Report implements ews.Reporter.
func (r *NATSReporter) Report(ctx context.Context, outcome *ews.FindFolderOutcome) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("publishing outcome: %w", err)
	}

	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encoding outcome: %w", err)
	}

	msg := nats.NewMsg(r.subject)
	msg.Data = data
	msg.Header.Set(HeaderRequestID, outcome.RequestID)
	msg.Header.Set(HeaderOutcome, Classify(outcome))

	err = r.publisher.PublishMsg(msg)
	if err != nil {
		return fmt.Errorf("publishing outcome on %s: %w", r.subject, err)
	}

	return nil
}

// Classify names the kind of outcome for the Ews-Outcome header.
func Classify(outcome *ews.FindFolderOutcome) string {
	switch {
	case outcome.Result == nil:
		return OutcomeError
	case outcome.Result.IsFault():
		return OutcomeFault
	case !outcome.Result.HasPayload:
		return OutcomeNoPayload
	default:
		return OutcomeFolders
	}
}

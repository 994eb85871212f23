package ews

import (
	"fmt"
	"time"
)

// Folder is one folder record of a FindFolder response. Fields missing from
// the response hold constants.NotAvailable.
type Folder struct {
	FolderID    string `json:"folder_id"    yaml:"folder_id"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	TotalCount  string `json:"total_count"  yaml:"total_count"`
}

// Fault is a SOAP fault returned in place of a normal response body. Code
// and String hold the fault text exactly as the server sent it.
type Fault struct {
	Code   string `json:"code"             yaml:"code"`
	String string `json:"string"           yaml:"string"`
	Actor  string `json:"actor,omitempty"  yaml:"actor,omitempty"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Error implements the error interface so callers can escalate a fault.
func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.String)
}

// FindFolderResult is the outcome of a FindFolder call that reached the
// server and returned well-formed XML. Exactly one of Fault or the payload
// fields is meaningful.
type FindFolderResult struct {
	Fault *Fault `json:"fault,omitempty" yaml:"fault,omitempty"`

	// HasPayload is false when the body carried no FindFolderResponse.
	// It separates "no payload" from "zero folders".
	HasPayload    bool     `json:"has_payload"              yaml:"has_payload"`
	ResponseClass string   `json:"response_class,omitempty" yaml:"response_class,omitempty"`
	ResponseCode  string   `json:"response_code,omitempty"  yaml:"response_code,omitempty"`
	MessageText   string   `json:"message_text,omitempty"   yaml:"message_text,omitempty"`
	Folders       []Folder `json:"folders"                  yaml:"folders"`
}

// IsFault reports whether the server answered with a SOAP fault.
func (r *FindFolderResult) IsFault() bool {
	return r.Fault != nil
}

// Err returns the fault as an error, or nil.
func (r *FindFolderResult) Err() error {
	if r.Fault == nil {
		return nil
	}

	return r.Fault
}

// FindFolderOutcome describes one completed FindFolders call for reporters.
// Either Result or Error is set.
type FindFolderOutcome struct {
	RequestID      string            `json:"request_id"`
	ParentFolderID string            `json:"parent_folder_id"`
	FolderShape    string            `json:"folder_shape"`
	Endpoint       string            `json:"endpoint"`
	Offline        bool              `json:"offline"`
	Duration       time.Duration     `json:"duration"`
	Result         *FindFolderResult `json:"result,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// Package envelope builds the SOAP request document of the FindFolder
// operation.
package envelope

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/fivetwenty-io/ews-client/internal/constants"
)

// Envelope is a serialized FindFolder request. It cannot be changed after
// Build returns it.
type Envelope struct {
	parentFolderID string
	folderShape    string
	body           []byte
}

type soapEnvelope struct {
	XMLName    xml.Name `xml:"soap:Envelope"`
	SOAPNS     string   `xml:"xmlns:soap,attr"`
	TypesNS    string   `xml:"xmlns:t,attr"`
	MessagesNS string   `xml:"xmlns:m,attr"`
	Body       soapBody `xml:"soap:Body"`
}

type soapBody struct {
	FindFolder findFolder `xml:"m:FindFolder"`
}

type findFolder struct {
	Traversal       string          `xml:"Traversal,attr"`
	FolderShape     folderShape     `xml:"m:FolderShape"`
	ParentFolderIDs parentFolderIDs `xml:"m:ParentFolderIds"`
}

type folderShape struct {
	BaseShape string `xml:"t:BaseShape"`
}

type parentFolderIDs struct {
	FolderID folderID `xml:"t:FolderId"`
}

type folderID struct {
	ID string `xml:"Id,attr"`
}

// Build returns the FindFolder envelope for the given parent folder and base
// shape. Empty arguments are replaced by the protocol defaults "root" and
// "Default".
func Build(parentFolderID, shape string) *Envelope {
	if parentFolderID == "" {
		parentFolderID = constants.DefaultParentFolderID
	}

	if shape == "" {
		shape = constants.DefaultFolderShape
	}

	doc := soapEnvelope{
		SOAPNS:     constants.NamespaceSOAP,
		TypesNS:    constants.NamespaceTypes,
		MessagesNS: constants.NamespaceMessages,
		Body: soapBody{
			FindFolder: findFolder{
				Traversal:   constants.TraversalShallow,
				FolderShape: folderShape{BaseShape: shape},
				ParentFolderIDs: parentFolderIDs{
					FolderID: folderID{ID: parentFolderID},
				},
			},
		},
	}

	var buf bytes.Buffer

	buf.WriteString(xml.Header)

	// Only strings are marshaled, so encoding cannot fail.
	err := xml.NewEncoder(&buf).Encode(doc)
	if err != nil {
		panic(fmt.Sprintf("envelope: encoding FindFolder request: %v", err))
	}

	return &Envelope{
		parentFolderID: parentFolderID,
		folderShape:    shape,
		body:           buf.Bytes(),
	}
}

// Bytes returns a copy of the serialized document.
func (e *Envelope) Bytes() []byte {
	return bytes.Clone(e.body)
}

// String returns the serialized document.
func (e *Envelope) String() string {
	return string(e.body)
}

// ParentFolderID returns the folder id written into t:FolderId/@Id.
func (e *Envelope) ParentFolderID() string {
	return e.parentFolderID
}

// FolderShape returns the text written into t:BaseShape.
func (e *Envelope) FolderShape() string {
	return e.folderShape
}

// Package soap parses SOAP response documents and interprets FindFolder
// payloads.
package soap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fivetwenty-io/ews-client/internal/constants"
	"github.com/fivetwenty-io/ews-client/pkg/ews"
	"golang.org/x/net/html/charset"
)

// Static errors for err113 compliance.
var (
	ErrEmptyDocument   = errors.New("document has no root element")
	ErrMultipleRoots   = errors.New("document has more than one root element")
	ErrNotSOAPEnvelope = errors.New("root element is not a SOAP envelope")
	ErrMissingBody     = errors.New("SOAP envelope has no Body")
)

// Element is a read-only XML element. Names carry resolved namespace URIs.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Element
	text     strings.Builder
}

// Document is a parsed SOAP response.
type Document struct {
	Envelope *Element
	Body     *Element
}

// Parse reads a SOAP 1.1 or 1.2 envelope. Input that is not well-formed XML,
// or not a SOAP envelope with a Body, yields a *ews.ParseError.
func Parse(data []byte) (*Document, error) {
	root, err := parseTree(data)
	if err != nil {
		return nil, &ews.ParseError{Err: err}
	}

	space := root.Name.Space
	if root.Name.Local != "Envelope" || (space != constants.NamespaceSOAP && space != constants.NamespaceSOAP12) {
		return nil, &ews.ParseError{Err: fmt.Errorf("%w: {%s}%s", ErrNotSOAPEnvelope, space, root.Name.Local)}
	}

	body := root.Child(space, "Body")
	if body == nil {
		return nil, &ews.ParseError{Err: ErrMissingBody}
	}

	return &Document{Envelope: root, Body: body}, nil
}

func parseTree(data []byte) (*Element, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *Element
		stack []*Element
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("decoding XML: %w", err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			elem := &Element{Name: tok.Name, Attrs: tok.Copy().Attr}

			if len(stack) == 0 {
				if root != nil {
					return nil, ErrMultipleRoots
				}

				root = elem
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			}

			stack = append(stack, elem)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(tok)
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}

	return root, nil
}

// Text returns the element's own character data with surrounding
// whitespace removed.
func (e *Element) Text() string {
	return strings.TrimSpace(e.text.String())
}

// RawText returns the element's own character data exactly as written.
func (e *Element) RawText() string {
	return e.text.String()
}

// Attr returns the value of an attribute without namespace.
func (e *Element) Attr(local string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Name.Space == "" && attr.Name.Local == local {
			return attr.Value, true
		}
	}

	return "", false
}

// Child returns the first direct child with the given name.
func (e *Element) Child(space, local string) *Element {
	for _, child := range e.Children {
		if child.Name.Space == space && child.Name.Local == local {
			return child
		}
	}

	return nil
}

// ChildLocal returns the first direct child with the given local name in any
// namespace.
func (e *Element) ChildLocal(local string) *Element {
	for _, child := range e.Children {
		if child.Name.Local == local {
			return child
		}
	}

	return nil
}

// Find returns the first descendant with the given name in document order.
func (e *Element) Find(space, local string) *Element {
	for _, child := range e.Children {
		if child.Name.Space == space && child.Name.Local == local {
			return child
		}

		if found := child.Find(space, local); found != nil {
			return found
		}
	}

	return nil
}

// FindAll returns every descendant with the given name in document order.
func (e *Element) FindAll(space, local string) []*Element {
	var found []*Element

	e.walk(func(elem *Element) {
		if elem.Name.Space == space && elem.Name.Local == local {
			found = append(found, elem)
		}
	})

	return found
}

func (e *Element) walk(visit func(*Element)) {
	for _, child := range e.Children {
		visit(child)
		child.walk(visit)
	}
}

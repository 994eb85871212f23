package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Endpoint defaults.
const (
	// DefaultEndpoint is used when no endpoint is configured.
	DefaultEndpoint = "http://localhost:8080/ews/FindFolder"

	// DefaultUserAgent is sent unless overridden by configuration.
	DefaultUserAgent = "ews-client/go"
)

// XML namespaces of the Exchange Web Services protocol.
const (
	// NamespaceSOAP is the SOAP 1.1 envelope namespace.
	NamespaceSOAP = "http://schemas.xmlsoap.org/soap/envelope/"

	// NamespaceSOAP12 is the SOAP 1.2 envelope namespace.
	NamespaceSOAP12 = "http://www.w3.org/2003/05/soap-envelope"

	// NamespaceTypes is the EWS types namespace.
	NamespaceTypes = "http://schemas.microsoft.com/exchange/services/2006/types"

	// NamespaceMessages is the EWS messages namespace.
	NamespaceMessages = "http://schemas.microsoft.com/exchange/services/2006/messages"
)

// HTTP headers for the FindFolder exchange.
const (
	// ContentTypeXML is the request content type.
	ContentTypeXML = "text/xml; charset=utf-8"

	// SOAPActionFindFolder names the FindFolder operation URI. The value is
	// quoted on the wire.
	SOAPActionFindFolder = `"` + NamespaceMessages + `/FindFolder"`
)

// FindFolder request defaults.
const (
	// DefaultParentFolderID is the distinguished mailbox root.
	DefaultParentFolderID = "root"

	// DefaultFolderShape is the protocol default base shape.
	DefaultFolderShape = "Default"

	// TraversalShallow is the only traversal this client requests.
	TraversalShallow = "Shallow"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// NoPayload is shown when a response carries no FindFolderResponse.
	NoPayload = "No FindFolderResponse found in SOAP body"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Offline fixture.
const (
	// SimulatedResponseFile is the name of the embedded offline response.
	SimulatedResponseFile = "simulated-response.xml"

	// MaxErrorBodySize caps how much of a failed response body is kept.
	MaxErrorBodySize = 4096
)

// NATS reporting.
const (
	// DefaultNATSSubject is the subject outcomes are published on.
	DefaultNATSSubject = "ews.findfolder.outcomes"

	// NATSConnectTimeout bounds the initial connection to the NATS server.
	NATSConnectTimeout = 5 * time.Second
)

package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Quickbase API endpoints and headers.
const (
	// DefaultBaseURL is the root of the Quickbase JSON API.
	DefaultBaseURL = "https://api.quickbase.com"

	// RealmDomain is appended to the realm to form the realm hostname.
	RealmDomain = "quickbase.com"

	// DefaultUserAgent identifies this client.
	DefaultUserAgent = "quickbase-client/1.0"

	// HeaderRealmHostname carries "<realm>.quickbase.com".
	HeaderRealmHostname = "QB-Realm-Hostname"

	// HeaderAuthorization carries the user token.
	HeaderAuthorization = "Authorization"

	// UserTokenScheme prefixes the token in the Authorization header.
	UserTokenScheme = "QB-USER-TOKEN"

	// ContentTypeJSON is used for request and accepted response bodies.
	ContentTypeJSON = "application/json"
)

// Record endpoint paths.
const (
	// PathRecordsQuery is the query endpoint (POST).
	PathRecordsQuery = "/v1/records/query"

	// PathRecords is the insert/update (POST) and delete (DELETE) endpoint.
	PathRecords = "/v1/records"
)

// HTTP status boundaries used for classification.
const (
	// HTTPStatusClientErrorMin is the first status classified as a client error.
	HTTPStatusClientErrorMin = 400

	// HTTPStatusServerErrorMin is the first status classified as a server error.
	HTTPStatusServerErrorMin = 500
)

// HTTP and network timeouts.
const (
	// ShortHTTPTimeout bounds CLI calls that have no other deadline.
	ShortHTTPTimeout = 10 * time.Second

	// DefaultHTTPTimeout is the default timeout used by the CLI.
	DefaultHTTPTimeout = 30 * time.Second
)

// Error codes placed in classified errors.
const (
	// ErrorCodeRecordsNotFound marks a query that matched no records.
	ErrorCodeRecordsNotFound = "Records.NotFound"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// StringTruncationLength limits cell width in tables.
	StringTruncationLength = 80
)

package quickbase

import (
	"context"
	"net/http"
)

// RecordsClient provides the record operations of the Quickbase API.
//
// Each method returns a classified Result for every protocol-level outcome.
// The error return is reserved for transport faults and response bodies that
// cannot be decoded; those are never folded into a Result.
type RecordsClient interface {
	QueryRecords(ctx context.Context, request QueryRequest) (Result[QueryResponse], error)
	InsertRecords(ctx context.Context, request MutationRequest) (Result[MutationResponse], error)
	UpdateRecords(ctx context.Context, request MutationRequest) (Result[MutationResponse], error)
	DeleteRecords(ctx context.Context, request DeleteRequest) (Result[MutationResponse], error)
}

// Client is a Quickbase API client.
type Client interface {
	RecordsClient

	// Realm returns the realm the client was built for.
	Realm() string
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// HTTPDoer sends a prepared request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config represents client configuration for building a Client.
//
// Realm and UserToken are required; construction fails with an
// ArgumentError naming the missing parameter before any request is sent.
//
// The client adds no timeout of its own. Bound calls with the context passed
// to each method, or with the timeout of a custom HTTPClient.
type Config struct {
	// Realm: the account subdomain, e.g. "acme" for acme.quickbase.com.
	// Sent as the QB-Realm-Hostname header.
	Realm string
	// UserToken: a Quickbase user token, sent as "QB-USER-TOKEN <token>".
	UserToken string

	// Optional configurations
	// BaseURL: API root. Defaults to https://api.quickbase.com. A trailing
	// slash is trimmed and "https://" is added if no scheme is present.
	BaseURL string
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// HTTPClient: transport used to send requests. If nil, a
	// go-retryablehttp client with retries disabled is used.
	HTTPClient HTTPDoer
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger
	// AllowEmptyQueryResults: when true, a query matching no records is a
	// success with empty Data instead of a NotFound failure.
	AllowEmptyQueryResults bool
}

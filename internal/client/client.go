package client

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/internal/http"
	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

// Client implements quickbase.Client.
type Client struct {
	httpClient             *http.Client
	realm                  string
	baseURL                string
	logger                 quickbase.Logger
	debug                  bool
	allowEmptyQueryResults bool
}

var _ quickbase.Client = (*Client)(nil)

// New creates a new Quickbase API client. Realm and UserToken are checked
// before anything else is set up.
func New(config *quickbase.Config) (*Client, error) {
	if config == nil {
		return nil, quickbase.ErrConfigRequired
	}

	if strings.TrimSpace(config.Realm) == "" {
		return nil, &quickbase.ArgumentError{Param: "realm", Reason: "must not be empty"}
	}

	if strings.TrimSpace(config.UserToken) == "" {
		return nil, &quickbase.ArgumentError{Param: "userToken", Reason: "must not be empty"}
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	client := &Client{
		realm:                  config.Realm,
		baseURL:                baseURL,
		logger:                 config.Logger,
		debug:                  config.Debug,
		allowEmptyQueryResults: config.AllowEmptyQueryResults,
	}

	client.httpClient = http.NewClient(baseURL, createHTTPClientOptions(config)...)

	return client, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *quickbase.Config) []http.Option {
	httpOpts := []http.Option{
		http.WithHeader(constants.HeaderRealmHostname, RealmHostname(config.Realm)),
		http.WithHeader(constants.HeaderAuthorization, constants.UserTokenScheme+" "+config.UserToken),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithDoer(config.HTTPClient))
	}

	return httpOpts
}

// RealmHostname returns the value of the QB-Realm-Hostname header.
func RealmHostname(realm string) string {
	return fmt.Sprintf("%s.%s", realm, constants.RealmDomain)
}

// Realm implements quickbase.Client.Realm.
func (c *Client) Realm() string {
	return c.realm
}

func (c *Client) logFailure(operation string, statusCode int, qbErr quickbase.Error) {
	if c.logger == nil || !c.debug {
		return
	}

	c.logger.Debug("API Response Error", map[string]interface{}{
		"operation":   operation,
		"status_code": statusCode,
		"kind":        qbErr.Kind.String(),
		"code":        qbErr.Code,
		"message":     qbErr.Message,
	})
}

// loggerAdapter adapts quickbase.Logger to http.Logger.
type loggerAdapter struct {
	logger quickbase.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

// Package qbclient provides the main entry point for creating Quickbase API clients
package qbclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/quickbase-client/internal/client"
	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

// New creates a new Quickbase API client.
//
// An empty Realm or UserToken is rejected with a *quickbase.ArgumentError
// naming the parameter; no request is sent during construction.
func New(config *quickbase.Config) (quickbase.Client, error) {
	if config == nil {
		return nil, quickbase.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	qbClient, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return qbClient, nil
}

// NewWithToken creates a new client for realm authenticated with a user token.
func NewWithToken(realm, userToken string) (quickbase.Client, error) {
	return New(&quickbase.Config{
		Realm:     realm,
		UserToken: userToken,
	})
}

// normalizeBaseURL trims a trailing slash and adds https:// when no scheme is present.
func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

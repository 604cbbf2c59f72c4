package constants

import "errors"

// Configuration errors.
var (
	ErrNoRealmConfigured = errors.New("no realm configured, use 'qb config set realm <realm>' or --realm")
	ErrNoTokenConfigured = errors.New("no user token configured, use 'qb login' or --token")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
)

// Validation errors.
var (
	ErrTableRequired      = errors.New("--table flag is required")
	ErrWhereRequired      = errors.New("--where flag is required")
	ErrFieldRequired      = errors.New("at least one --field is required")
	ErrInvalidFieldFormat = errors.New("invalid field, expected <fieldId>=<value>")
	ErrInvalidSortFormat  = errors.New("invalid sort, expected <fieldId>[:ASC|DESC]")
	ErrInvalidGroupFormat = errors.New("invalid group-by, expected <fieldId>[:<grouping>]")
	ErrRecordIDRequired   = errors.New("record id must be a positive integer")
	ErrUnsupportedOutput  = errors.New("unsupported output format")
)

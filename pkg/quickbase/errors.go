package quickbase

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed operation.
type ErrorKind int

const (
	// KindFailure is a generic failure. It is also the kind of None.
	KindFailure ErrorKind = 0

	// KindNotFound means no records matched, or the expected payload was absent.
	KindNotFound ErrorKind = 1

	// KindClientError is an HTTP 4xx outcome.
	KindClientError ErrorKind = 3

	// KindServerError is an HTTP 5xx outcome.
	KindServerError ErrorKind = 4
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindFailure:
		return "Failure"
	case KindNotFound:
		return "NotFound"
	case KindClientError:
		return "ClientError"
	case KindServerError:
		return "ServerError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Error is a classified failure returned inside a Result.
type Error struct {
	Code        string    `json:"code"        yaml:"code"`
	Message     string    `json:"message"     yaml:"message"`
	Description string    `json:"description" yaml:"description"`
	Kind        ErrorKind `json:"kind"        yaml:"kind"`
}

// None is the canonical "no error" value. Compare against it with IsNone;
// a Failure-kind error with empty fields built elsewhere is still equal to None.
var None = Error{Kind: KindFailure}

// NullValue is the failure produced when a nil value is lifted into a Result.
var NullValue = Error{
	Code:    "Error.NullValue",
	Message: "Null value was provided",
	Kind:    KindFailure,
}

// NewNotFoundError creates a NotFound-kind error.
func NewNotFoundError(code, message, description string) Error {
	return Error{Code: code, Message: message, Description: description, Kind: KindNotFound}
}

// NewFailureError creates a generic failure.
func NewFailureError(code, message, description string) Error {
	return Error{Code: code, Message: message, Description: description, Kind: KindFailure}
}

// NewClientError creates an error for a 4xx response.
func NewClientError(code, message, description string) Error {
	return Error{Code: code, Message: message, Description: description, Kind: KindClientError}
}

// NewServerError creates an error for a 5xx response.
func NewServerError(code, message, description string) Error {
	return Error{Code: code, Message: message, Description: description, Kind: KindServerError}
}

// IsNone reports whether e is the None sentinel.
func (e Error) IsNone() bool {
	return e == None
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.IsNone() {
		return "no error"
	}

	msg := e.Kind.String()
	if e.Code != "" {
		msg += " " + e.Code
	}

	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Description != "" {
		msg += " (" + e.Description + ")"
	}

	return msg
}

// Static errors for err113 compliance.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("the value of a failure result can't be accessed")
	ErrConfigRequired  = errors.New("config is required")
	ErrFieldConversion = errors.New("field value conversion failed")
	ErrFieldValueNull  = errors.New("field value is null")
)

// ArgumentError reports a rejected constructor argument.
type ArgumentError struct {
	Param  string
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidArgument, e.Param, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidArgument) match.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// IsInvalidArgument checks if the error rejects the named parameter.
// An empty param matches any ArgumentError.
func IsInvalidArgument(err error, param string) bool {
	argErr := &ArgumentError{}
	if !errors.As(err, &argErr) {
		return false
	}

	return param == "" || argErr.Param == param
}

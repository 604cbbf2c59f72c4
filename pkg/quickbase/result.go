package quickbase

import (
	"fmt"
	"reflect"
)

// Status is the success/failure part of a Result, usable on its own for
// operations that produce no value.
type Status struct {
	isSuccess bool
	err       Error
}

// NewStatus validates that isSuccess holds exactly when err is None.
func NewStatus(isSuccess bool, err Error) (Status, error) {
	if isSuccess != err.IsNone() {
		return Status{}, invalidErrorArgument(isSuccess)
	}

	return Status{isSuccess: isSuccess, err: err}, nil
}

// Succeeded returns a successful Status.
func Succeeded() Status {
	return Status{isSuccess: true, err: None}
}

// Failed returns a failed Status. It panics if err is None.
func Failed(err Error) Status {
	status, verr := NewStatus(false, err)
	if verr != nil {
		panic(verr)
	}

	return status
}

// IsSuccess reports whether the operation succeeded.
func (s Status) IsSuccess() bool { return s.isSuccess }

// IsFailure reports whether the operation failed.
func (s Status) IsFailure() bool { return !s.isSuccess }

// Error returns the classified error, or None on success.
func (s Status) Error() Error { return s.err }

// IsNotFound reports a NotFound failure.
func (s Status) IsNotFound() bool { return s.hasKind(KindNotFound) }

// IsClientError reports a ClientError failure.
func (s Status) IsClientError() bool { return s.hasKind(KindClientError) }

// IsServerError reports a ServerError failure.
func (s Status) IsServerError() bool { return s.hasKind(KindServerError) }

func (s Status) hasKind(kind ErrorKind) bool {
	return !s.isSuccess && s.err.Kind == kind
}

// Result carries either a value or a classified Error.
type Result[T any] struct {
	Status

	value T
}

// NewResult builds a Result after checking the success/error invariant.
func NewResult[T any](value T, isSuccess bool, err Error) (Result[T], error) {
	status, verr := NewStatus(isSuccess, err)
	if verr != nil {
		return Result[T]{}, verr
	}

	if !isSuccess {
		var zero T
		value = zero
	}

	return Result[T]{Status: status, value: value}, nil
}

// Success wraps value in a successful Result.
func Success[T any](value T) Result[T] {
	return Result[T]{Status: Succeeded(), value: value}
}

// Failure returns a failed Result. It panics if err is None.
func Failure[T any](err Error) Result[T] {
	return Result[T]{Status: Failed(err)}
}

// ResultFrom lifts value into a Result. A nil pointer, map, slice, interface,
// func or channel becomes a NullValue failure.
func ResultFrom[T any](value T) Result[T] {
	if isNil(value) {
		return Failure[T](NullValue)
	}

	return Success(value)
}

// Value returns the wrapped value, or ErrInvalidState on a failed Result.
func (r Result[T]) Value() (T, error) {
	if !r.isSuccess {
		var zero T

		return zero, fmt.Errorf("%w: %s", ErrInvalidState, r.err)
	}

	return r.value, nil
}

// MustValue returns the wrapped value and panics on a failed Result.
func (r Result[T]) MustValue() T {
	value, err := r.Value()
	if err != nil {
		panic(err)
	}

	return value
}

func invalidErrorArgument(isSuccess bool) error {
	if isSuccess {
		return &ArgumentError{Param: "error", Reason: "must be None for a successful result"}
	}

	return &ArgumentError{Param: "error", Reason: "must not be None for a failed result"}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

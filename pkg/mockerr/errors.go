// Package mockerr defines the errors raised by the mocking library itself.
//
// Every error here is delivered through the error channel of the asynchronous
// primitive a mock returns, so code under test sees it exactly as it would a
// production failure. Use errors.Is against the Err* sentinels to classify
// them and errors.As to reach the typed details.
package mockerr

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrWrongType is returned when a type-erased result holds a value of a
	// different type than the one the mocked call returns.
	ErrWrongType = errors.New("wrong type")

	// ErrUnexpectedCall is returned when a mocked function is called with no
	// configured result.
	ErrUnexpectedCall = errors.New("unexpected function call")

	// ErrDecoding is returned when a JSON, YAML or protobuf result cannot be decoded.
	ErrDecoding = errors.New("decoding failed")

	// ErrDataNotFound is returned when a file backed result cannot find its file.
	ErrDataNotFound = errors.New("data not found")

	// ErrInvalidData is returned when result source text is not valid encoded text.
	ErrInvalidData = errors.New("invalid data")
)

// WrongTypeError describes a failed cast of a type-erased result value.
type WrongTypeError struct {
	Expected reflect.Type
	Found    reflect.Type
}

// Error implements the error interface.
func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("wrong type: expected %s, found %s", TypeName(e.Expected), TypeName(e.Found))
}

// Is reports whether target is ErrWrongType.
func (e *WrongTypeError) Is(target error) bool { return target == ErrWrongType }

// UnexpectedCallError names the function that was called without a result.
type UnexpectedCallError struct {
	Function string
}

// Error implements the error interface.
func (e *UnexpectedCallError) Error() string {
	return fmt.Sprintf("unexpected function call %s", e.Function)
}

// Is reports whether target is ErrUnexpectedCall.
func (e *UnexpectedCallError) Is(target error) bool { return target == ErrUnexpectedCall }

// DecodingError wraps a decoder failure with the type being decoded and,
// when the result was built from a string, the source text.
type DecodingError struct {
	Expected  reflect.Type
	Source    string
	HasSource bool
	Err       error
}

// Error implements the error interface.
func (e *DecodingError) Error() string {
	if e.HasSource {
		return fmt.Sprintf("failed to decode %s from %q: %v", TypeName(e.Expected), e.Source, e.Err)
	}
	return fmt.Sprintf("failed to decode %s: %v", TypeName(e.Expected), e.Err)
}

// Unwrap returns the decoder error.
func (e *DecodingError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecoding.
func (e *DecodingError) Is(target error) bool { return target == ErrDecoding }

// DataNotFound returns an ErrDataNotFound error naming the missing resource.
func DataNotFound(name string) error {
	return fmt.Errorf("%w: %s", ErrDataNotFound, name)
}

// InvalidData returns an ErrInvalidData error with a reason.
func InvalidData(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidData, reason)
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// TypeName renders a type for messages. A nil type is a nil interface value.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Describe renders an error as "<type>: <message>" for failure messages.
func Describe(err error) string {
	if err == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T: %v", err, err)
}

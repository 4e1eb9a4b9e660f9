package hashid

import (
	"errors"
	"fmt"
	"reflect"

	"lukechampine.com/uint128"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidConfig indicates a configuration was rejected at build time.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrDuplicateCharacter indicates the alphabet repeats a character.
	ErrDuplicateCharacter = errors.New("duplicate character in alphabet")

	// ErrAlphabetTooShort indicates the alphabet has too few distinct characters.
	ErrAlphabetTooShort = errors.New("alphabet too short")

	// ErrAlphabetSpace indicates the alphabet contains whitespace.
	ErrAlphabetSpace = errors.New("alphabet contains whitespace")

	// ErrMinLength indicates the minimum length is out of bounds.
	ErrMinLength = errors.New("minimum length out of range")

	// ErrWeakSecret indicates a salt derivation secret is too short.
	ErrWeakSecret = errors.New("secret too short")

	// ErrMalformed indicates a hash string does not decode under the active configuration.
	ErrMalformed = errors.New("malformed hash string")

	// ErrOutOfRange indicates a decoded value does not fit the field width.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnsupportedType indicates a marked field has a type that cannot be transformed.
	ErrUnsupportedType = errors.New("unsupported field type")

	// ErrInvalidTag indicates a struct tag has an invalid value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrEncode indicates encoding of a field failed.
	ErrEncode = errors.New("encode failed")

	// ErrDecode indicates decoding of a field failed.
	ErrDecode = errors.New("decode failed")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// ConfigError represents a rejected hash configuration.
// The previously active configuration remains in effect.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrDuplicateCharacter, etc.)
	Option string // Option that was rejected (salt, min_length, alphabet)
	Cause  error  // Original error, if any
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Option != "" {
		msg = fmt.Sprintf("%s (option %s)", msg, e.Option)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ConfigError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidConfig, e.Err, e.Cause}
	}
	return []error{ErrInvalidConfig, e.Err}
}

// DecodeError reports a hash string that is not valid under the active
// configuration.
type DecodeError struct {
	Input string // The rejected hash string
	Cause error  // Original error from the codec, if any
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %q: %v", ErrMalformed.Error(), e.Input, e.Cause)
	}
	return fmt.Sprintf("%s %q", ErrMalformed.Error(), e.Input)
}

func (e *DecodeError) Unwrap() error {
	return ErrMalformed
}

// RangeError reports a decoded value wider than the destination field.
type RangeError struct {
	Value uint128.Uint128
	Width Width
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s exceeds %s", ErrOutOfRange.Error(), e.Value.String(), e.Width)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// TypeError reports a field that cannot be transformed.
// It is always raised while building a processor, never per record.
type TypeError struct {
	Field  string       // Field path
	Type   reflect.Type // Offending type
	Reason string       // Optional detail
}

func (e *TypeError) Error() string {
	msg := fmt.Sprintf("%s %s (field %s)", ErrUnsupportedType.Error(), e.Type, e.Field)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *TypeError) Unwrap() error {
	return ErrUnsupportedType
}

// TransformError represents an error during field transformation.
// It wraps a sentinel error with context about which field and operation failed.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrEncode, ErrDecode)
	Field     string // Field path that failed
	Operation string // Operation that failed (encode, decode)
	Cause     error  // Original error from the underlying operation
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s field %s: %v", e.Operation, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s field %s", e.Operation, e.Field)
}

func (e *TransformError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for a rejected option.
func newConfigError(sentinel error, option string, cause error) error {
	return &ConfigError{
		Err:    sentinel,
		Option: option,
		Cause:  cause,
	}
}

// newTransformError creates a TransformError for field transformation failures.
func newTransformError(sentinel error, operation, field string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Field:     field,
		Operation: operation,
		Cause:     cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}

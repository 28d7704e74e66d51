package codec

import "github.com/cockroachdb/errors"

var (
	// ErrMalformedInput represents odd length or non hex input, or a value which cannot be parsed.
	ErrMalformedInput = errors.New("malformed input")
	// ErrTruncatedInput represents reading past the end of the available bytes.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrUnknownField represents a field name or header without registry entry.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnsupportedType represents a type name absent from the type dispatch table.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrOutOfRange represents a value exceeding its fixed width or protocol bound.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidStructure represents a container which does not follow the nesting rules.
	ErrInvalidStructure = errors.New("invalid structure")
	// ErrInvalidDefinitions represents a malformed field definition table.
	ErrInvalidDefinitions = errors.New("invalid definitions")
)

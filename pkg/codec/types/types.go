// Package types implements the closed set of serialized value kinds and the canonical
// object and array encoding built on top of them.
//
// Every kind is reached through a static table keyed by the type name used in the
// definitions table. Values enter as JSON-like Go values (map[string]any, []any, string,
// json.Number and Go integers) and leave as the same.
package types

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
	"github.com/xrplkit/ledger-codec/pkg/log"
)

const (
	TypeUInt8     = "UInt8"
	TypeUInt16    = "UInt16"
	TypeUInt32    = "UInt32"
	TypeUInt64    = "UInt64"
	TypeHash128   = "Hash128"
	TypeHash160   = "Hash160"
	TypeHash256   = "Hash256"
	TypeAccountID = "AccountID"
	TypeCurrency  = "Currency"
	TypeBlob      = "Blob"
	TypeVector256 = "Vector256"
	TypePathSet   = "PathSet"
	TypeAmount    = "Amount"
	TypeSTObject  = "STObject"
	TypeSTArray   = "STArray"
)

// noHint marks a fixed width read without declared length.
const noHint = -1

// serializedType is implemented by every member of the closed set of kinds.
type serializedType interface {
	fromJSON(c *Context, field definitions.FieldInstance, value any) ([]byte, error)
	toJSON(c *Context, field definitions.FieldInstance, r *codec.Reader, hint int) (any, error)
}

var dispatch = map[string]serializedType{
	TypeUInt8:     uintType{width: 1},
	TypeUInt16:    uintType{width: 2},
	TypeUInt32:    uintType{width: 4},
	TypeUInt64:    uintType{width: 8},
	TypeHash128:   hashType{size: 16},
	TypeHash160:   hashType{size: 20},
	TypeHash256:   hashType{size: 32},
	TypeAccountID: accountIDType{},
	TypeCurrency:  currencyType{},
	TypeBlob:      blobType{},
	TypeVector256: vector256Type{},
	TypePathSet:   pathSetType{},
	TypeAmount:    amountType{},
	TypeSTObject:  objectType{},
	TypeSTArray:   arrayType{},
}

// Supported returns true if typeName has an implementation.
func Supported(typeName string) bool {
	_, ok := dispatch[typeName]
	return ok
}

// TypeNames returns the supported type names sorted alphabetically.
func TypeNames() []string {
	names := lo.Keys(dispatch)
	slices.Sort(names)
	return names
}

func lookup(typeName string) (serializedType, error) {
	t, ok := dispatch[typeName]
	if !ok {
		return nil, errors.Wrapf(codec.ErrUnsupportedType, "type %q", typeName)
	}
	return t, nil
}

// Context carries the read-only registry and options of a single encode or decode call.
// A Context holds no per-call state and may be shared between goroutines.
type Context struct {
	Definitions *definitions.Definitions
	// Strict rejects field names absent from the registry instead of skipping them.
	Strict bool
	Logger log.Logger
}

// NewContext returns a context over defs with a no-op logger.
func NewContext(defs *definitions.Definitions) *Context {
	return &Context{
		Definitions: defs,
		Logger:      log.NewNopLogger(),
	}
}

// EncodeValue returns the canonical bytes of value as typeName, without header or length prefix.
func (c *Context) EncodeValue(typeName string, value any) ([]byte, error) {
	return c.encodeValue(definitions.FieldInstance{TypeName: typeName}, value)
}

// DecodeValue reads a value of typeName from r. hint is the declared byte length, or -1.
func (c *Context) DecodeValue(typeName string, r *codec.Reader, hint int) (any, error) {
	return c.decodeValue(definitions.FieldInstance{TypeName: typeName}, r, hint)
}

func (c *Context) encodeValue(field definitions.FieldInstance, value any) ([]byte, error) {
	t, err := lookup(field.TypeName)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, errors.Wrapf(codec.ErrMalformedInput, "field %s has no value", field.Name)
	}
	return t.fromJSON(c, field, value)
}

func (c *Context) decodeValue(field definitions.FieldInstance, r *codec.Reader, hint int) (any, error) {
	t, err := lookup(field.TypeName)
	if err != nil {
		return nil, err
	}
	if hint == noHint {
		return t.toJSON(c, field, r, hint)
	}
	sub, err := r.Sub(hint)
	if err != nil {
		return nil, err
	}
	value, err := t.toJSON(c, field, sub, hint)
	if err != nil {
		return nil, err
	}
	if sub.HasRemaining() {
		return nil, errors.Wrapf(codec.ErrMalformedInput, "field %s left %d of %d declared bytes unread", field.Name, sub.Remaining(), hint)
	}
	return value, nil
}

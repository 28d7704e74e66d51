package types

import (
	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
)

// blobType is an opaque byte sequence; its length always comes from the length prefix.
type blobType struct{}

func (blobType) fromJSON(c *Context, field definitions.FieldInstance, value any) ([]byte, error) {
	str, err := toString(value, field.Name)
	if err != nil {
		return nil, err
	}
	return codec.DecodeHex(str)
}

func (blobType) toJSON(c *Context, field definitions.FieldInstance, r *codec.Reader, hint int) (any, error) {
	if hint == noHint {
		return nil, errors.Wrapf(codec.ErrInvalidStructure, "blob field %s requires a length prefix", field.Name)
	}
	data, err := r.ReadBytes(hint)
	if err != nil {
		return nil, err
	}
	return codec.EncodeHex(data), nil
}

package types

import (
	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
)

const hash256Length = 32

// vector256Type is a concatenation of 32 byte hashes.
type vector256Type struct{}

func (vector256Type) fromJSON(c *Context, field definitions.FieldInstance, value any) ([]byte, error) {
	items, err := toSlice(value, field.Name)
	if err != nil {
		return nil, err
	}
	w := codec.NewWriter()
	for i, item := range items {
		str, err := toString(item, field.Name)
		if err != nil {
			return nil, err
		}
		hash, err := decodeFixedHex(str, hash256Length)
		if err != nil {
			return nil, errors.Wrapf(err, "%s[%d]", field.Name, i)
		}
		w.WriteBytes(hash)
	}
	return w.Result(), nil
}

func (vector256Type) toJSON(c *Context, field definitions.FieldInstance, r *codec.Reader, hint int) (any, error) {
	if hint == noHint {
		return nil, errors.Wrapf(codec.ErrInvalidStructure, "vector field %s requires a length prefix", field.Name)
	}
	if hint%hash256Length != 0 {
		return nil, errors.Wrapf(codec.ErrMalformedInput, "vector length %d is not a multiple of %d", hint, hash256Length)
	}
	result := make([]any, 0, hint/hash256Length)
	for i := 0; i < hint/hash256Length; i++ {
		hash, err := r.ReadBytes(hash256Length)
		if err != nil {
			return nil, err
		}
		result = append(result, codec.EncodeHex(hash))
	}
	return result, nil
}

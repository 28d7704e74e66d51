package types

import (
	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
)

// hashType covers Hash128, Hash160 and Hash256: fixed size opaque values in hex.
type hashType struct {
	size int
}

func (t hashType) fromJSON(c *Context, field definitions.FieldInstance, value any) ([]byte, error) {
	str, err := toString(value, field.Name)
	if err != nil {
		return nil, err
	}
	return decodeFixedHex(str, t.size)
}

func (t hashType) toJSON(c *Context, field definitions.FieldInstance, r *codec.Reader, hint int) (any, error) {
	if hint != noHint && hint != t.size {
		return nil, errors.Wrapf(codec.ErrOutOfRange, "hash of %d bytes declared %d bytes", t.size, hint)
	}
	data, err := r.ReadBytes(t.size)
	if err != nil {
		return nil, err
	}
	return codec.EncodeHex(data), nil
}

func decodeFixedHex(value string, size int) ([]byte, error) {
	data, err := codec.DecodeHex(value)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, errors.Wrapf(codec.ErrOutOfRange, "expected %d bytes but received %d", size, len(data))
	}
	return data, nil
}

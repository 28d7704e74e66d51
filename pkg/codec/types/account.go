package types

import (
	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/addresscodec"
	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
)

const accountIDLength = addresscodec.AccountIDLength

// accountIDType is a 20 byte account identifier rendered as a classic address.
type accountIDType struct{}

func (accountIDType) fromJSON(c *Context, field definitions.FieldInstance, value any) ([]byte, error) {
	str, err := toString(value, field.Name)
	if err != nil {
		return nil, err
	}
	return parseAccountID(str)
}

func (accountIDType) toJSON(c *Context, field definitions.FieldInstance, r *codec.Reader, hint int) (any, error) {
	if hint != noHint && hint != accountIDLength {
		return nil, errors.Wrapf(codec.ErrMalformedInput, "account id of field %s declared %d bytes", field.Name, hint)
	}
	return readAccountID(r)
}

// parseAccountID accepts a classic address or 40 hex digits.
func parseAccountID(value string) ([]byte, error) {
	if len(value) == accountIDLength*2 {
		if data, err := codec.DecodeHex(value); err == nil {
			return data, nil
		}
	}
	data, err := addresscodec.DecodeAccountID(value)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "account %q", value), codec.ErrMalformedInput)
	}
	return data, nil
}

func readAccountID(r *codec.Reader) (string, error) {
	data, err := r.ReadBytes(accountIDLength)
	if err != nil {
		return "", err
	}
	return addresscodec.EncodeAccountID(data)
}

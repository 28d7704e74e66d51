package types

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
)

const (
	currencyLength = 20
	isoCodeLength  = 3
	isoCodeOffset  = 12
	nativeCode     = "XRP"
	isoCodeChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789?!@#$%^&*<>(){}[]|"
)

// currencyType is a 20 byte currency code. Three letter codes occupy bytes 12 to 14.
type currencyType struct{}

func (currencyType) fromJSON(c *Context, field definitions.FieldInstance, value any) ([]byte, error) {
	str, err := toString(value, field.Name)
	if err != nil {
		return nil, err
	}
	return parseCurrency(str)
}

func (currencyType) toJSON(c *Context, field definitions.FieldInstance, r *codec.Reader, hint int) (any, error) {
	return readCurrency(r)
}

func parseCurrency(value string) ([]byte, error) {
	switch {
	case value == nativeCode:
		return make([]byte, currencyLength), nil
	case len(value) == isoCodeLength:
		if !isISOCode(value) {
			return nil, errors.Wrapf(codec.ErrMalformedInput, "invalid currency code %q", value)
		}
		result := make([]byte, currencyLength)
		copy(result[isoCodeOffset:], value)
		return result, nil
	case len(value) == currencyLength*2:
		return decodeFixedHex(value, currencyLength)
	default:
		return nil, errors.Wrapf(codec.ErrMalformedInput, "invalid currency %q", value)
	}
}

func readCurrency(r *codec.Reader) (string, error) {
	data, err := r.ReadBytes(currencyLength)
	if err != nil {
		return "", err
	}
	return formatCurrency(data), nil
}

func formatCurrency(data []byte) string {
	zero := make([]byte, currencyLength)
	if bytes.Equal(data, zero) {
		return nativeCode
	}
	code := string(data[isoCodeOffset : isoCodeOffset+isoCodeLength])
	if bytes.Equal(data[:isoCodeOffset], zero[:isoCodeOffset]) &&
		bytes.Equal(data[isoCodeOffset+isoCodeLength:], zero[isoCodeOffset+isoCodeLength:]) &&
		isISOCode(code) && code != nativeCode {
		return code
	}
	return codec.EncodeHex(data)
}

func isISOCode(code string) bool {
	if len(code) != isoCodeLength {
		return false
	}
	for _, ch := range code {
		if !strings.ContainsRune(isoCodeChars, ch) {
			return false
		}
	}
	return true
}

package types

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/codec"
)

const (
	// QualityLength is the size of an encoded book quality.
	QualityLength = 8

	qualityExponentBias = 100
	qualityMantissaMask = 1<<56 - 1
)

// EncodeQuality returns the 8 byte form of a positive decimal quality: the biased exponent
// byte followed by a 56 bit mantissa of 16 digits.
func EncodeQuality(value string) ([]byte, error) {
	negative, digits, exponent, err := parseDecimal(value)
	if err != nil {
		return nil, err
	}
	if digits == "" || negative {
		return nil, errors.Wrapf(codec.ErrOutOfRange, "quality %q must be positive", value)
	}
	if len(digits) > mantissaDigits {
		return nil, errors.Wrapf(codec.ErrOutOfRange, "quality %q has more than %d significant digits", value, mantissaDigits)
	}
	exponent -= mantissaDigits - len(digits)
	digits += strings.Repeat("0", mantissaDigits-len(digits))
	biased := exponent + qualityExponentBias
	if biased < 0 || biased > exponentByteMax {
		return nil, errors.Wrapf(codec.ErrOutOfRange, "quality %q exponent %d", value, exponent)
	}
	mantissa, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "quality %q", value), codec.ErrMalformedInput)
	}
	return binary.BigEndian.AppendUint64(nil, uint64(biased)<<56|mantissa), nil
}

// DecodeQuality renders the quality held in the last 8 bytes of data, so a book
// directory index can be passed as is.
func DecodeQuality(data []byte) (string, error) {
	if len(data) < QualityLength {
		return "", errors.Wrapf(codec.ErrTruncatedInput, "quality needs %d bytes but received %d", QualityLength, len(data))
	}
	header := binary.BigEndian.Uint64(data[len(data)-QualityLength:])
	exponent := int(header>>56) - qualityExponentBias
	return formatDecimal(strconv.FormatUint(header&qualityMantissaMask, 10), exponent), nil
}

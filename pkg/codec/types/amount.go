package types

import (
	"encoding/binary"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
)

const (
	amountHeaderLength = 8
	issuedAmountLength = amountHeaderLength + currencyLength + accountIDLength

	issuedFlag   uint64 = 1 << 63
	positiveFlag uint64 = 1 << 62

	// MaxDrops is the total native currency supply in drops.
	MaxDrops uint64 = 100_000_000_000_000_000

	minMantissa     uint64 = 1_000_000_000_000_000
	maxMantissa     uint64 = 9_999_999_999_999_999
	mantissaMask    uint64 = 1<<54 - 1
	mantissaDigits         = 16
	minExponent            = -96
	maxExponent            = 80
	exponentBias           = 97
	exponentShift          = 54
	exponentByteMax        = 0xff

	// Decoded decimals switch to exponent notation at these powers of ten.
	minPlainExponent = -7
	maxPlainExponent = 21
)

// amountType is either 8 bytes of native drops or 48 bytes of issued currency
// (header, currency, issuer). The high bit of the first byte selects the form.
type amountType struct{}

func (amountType) fromJSON(c *Context, field definitions.FieldInstance, value any) ([]byte, error) {
	if m, ok := value.(map[string]any); ok {
		return encodeIssuedAmount(m)
	}
	drops, err := ParseDrops(value)
	if err != nil {
		return nil, errors.Wrapf(err, "field %s", field.Name)
	}
	return EncodeNativeAmount(drops)
}

func (amountType) toJSON(c *Context, field definitions.FieldInstance, r *codec.Reader, hint int) (any, error) {
	first, err := r.PeekByte()
	if err != nil {
		return nil, err
	}
	if first&0x80 == 0 {
		header, err := r.ReadUInt(amountHeaderLength)
		if err != nil {
			return nil, err
		}
		drops, err := decodeNativeHeader(header)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", field.Name)
		}
		return strconv.FormatUint(drops, 10), nil
	}
	header, err := r.ReadUInt(amountHeaderLength)
	if err != nil {
		return nil, err
	}
	value, err := formatIssuedValue(header)
	if err != nil {
		return nil, errors.Wrapf(err, "field %s", field.Name)
	}
	currency, err := readCurrency(r)
	if err != nil {
		return nil, err
	}
	issuer, err := readAccountID(r)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"currency": currency,
		"value":    value,
		"issuer":   issuer,
	}, nil
}

// EncodeNativeAmount returns the 8 byte encoding of drops.
func EncodeNativeAmount(drops uint64) ([]byte, error) {
	if drops > MaxDrops {
		return nil, errors.Wrapf(codec.ErrOutOfRange, "%d drops exceeds maximum %d", drops, MaxDrops)
	}
	return binary.BigEndian.AppendUint64(nil, drops|positiveFlag), nil
}

func decodeNativeHeader(header uint64) (uint64, error) {
	drops := header &^ positiveFlag
	if header&positiveFlag == 0 && drops != 0 {
		return 0, errors.Wrapf(codec.ErrOutOfRange, "negative native amount %d", drops)
	}
	if drops > MaxDrops {
		return 0, errors.Wrapf(codec.ErrOutOfRange, "%d drops exceeds maximum %d", drops, MaxDrops)
	}
	return drops, nil
}

// ParseDrops accepts an integer number of drops as a string, json.Number or Go integer.
func ParseDrops(value any) (uint64, error) {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	case json.Number:
		str = string(v)
	default:
		drops, err := toUint64(value, ^uint64(0))
		if err != nil {
			return 0, err
		}
		if drops > MaxDrops {
			return 0, errors.Wrapf(codec.ErrOutOfRange, "%d drops exceeds maximum %d", drops, MaxDrops)
		}
		return drops, nil
	}
	magnitude := strings.TrimPrefix(str, "-")
	if magnitude == "" || strings.Trim(magnitude, "0123456789") != "" {
		return 0, errors.Wrapf(codec.ErrMalformedInput, "native amount %q must be an integer number of drops", str)
	}
	drops, err := strconv.ParseUint(magnitude, 10, 64)
	if err != nil || drops > MaxDrops {
		return 0, errors.Wrapf(codec.ErrOutOfRange, "native amount %q exceeds maximum %d", str, MaxDrops)
	}
	if magnitude != str && drops != 0 {
		return 0, errors.Wrapf(codec.ErrOutOfRange, "native amount %q is negative", str)
	}
	return drops, nil
}

func encodeIssuedAmount(m map[string]any) ([]byte, error) {
	var parts [3]string
	for i, key := range []string{"currency", "value", "issuer"} {
		raw, ok := m[key]
		if !ok {
			return nil, errors.Wrapf(codec.ErrInvalidStructure, "issued amount is missing %s", key)
		}
		str, err := toString(raw, key)
		if err != nil {
			return nil, err
		}
		parts[i] = str
	}
	if parts[0] == nativeCode {
		return nil, errors.Wrap(codec.ErrMalformedInput, "issued amount cannot use the native currency code")
	}
	header, err := EncodeIssuedValue(parts[1])
	if err != nil {
		return nil, err
	}
	currency, err := parseCurrency(parts[0])
	if err != nil {
		return nil, err
	}
	issuer, err := parseAccountID(parts[2])
	if err != nil {
		return nil, err
	}
	result := make([]byte, 0, issuedAmountLength)
	result = append(result, header...)
	result = append(result, currency...)
	return append(result, issuer...), nil
}

// EncodeIssuedValue returns the 8 byte header of an issued currency decimal value.
func EncodeIssuedValue(value string) ([]byte, error) {
	negative, mantissa, exponent, err := normalizeDecimal(value)
	if err != nil {
		return nil, err
	}
	if mantissa == 0 {
		return binary.BigEndian.AppendUint64(nil, issuedFlag), nil
	}
	header := issuedFlag | uint64(exponent+exponentBias)<<exponentShift | mantissa
	if !negative {
		header |= positiveFlag
	}
	return binary.BigEndian.AppendUint64(nil, header), nil
}

// normalizeDecimal parses value and returns a mantissa in [10^15, 10^16) with its exponent,
// or a zero mantissa.
func normalizeDecimal(value string) (bool, uint64, int, error) {
	negative, digits, exponent, err := parseDecimal(value)
	if err != nil {
		return false, 0, 0, err
	}
	if digits == "" {
		return negative, 0, 0, nil
	}
	if len(digits) > mantissaDigits {
		return false, 0, 0, errors.Wrapf(codec.ErrOutOfRange, "value %q has more than %d significant digits", value, mantissaDigits)
	}
	exponent -= mantissaDigits - len(digits)
	digits += strings.Repeat("0", mantissaDigits-len(digits))
	if exponent < minExponent || exponent > maxExponent {
		return false, 0, 0, errors.Wrapf(codec.ErrOutOfRange, "value %q exponent %d outside [%d, %d]", value, exponent, minExponent, maxExponent)
	}
	mantissa, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return false, 0, 0, errors.Mark(errors.Wrapf(err, "value %q", value), codec.ErrMalformedInput)
	}
	return negative, mantissa, exponent, nil
}

// parseDecimal splits value into sign, significant digits without leading or trailing
// zeros, and the power of ten they are scaled by. Zero has no digits.
func parseDecimal(value string) (bool, string, int, error) {
	malformed := func() error {
		return errors.Wrapf(codec.ErrMalformedInput, "invalid decimal %q", value)
	}
	s := value
	negative := false
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		negative = s[0] == '-'
		s = s[1:]
	}
	exponent := 0
	if idx := strings.IndexAny(s, "eE"); idx >= 0 {
		exp, err := strconv.Atoi(s[idx+1:])
		if err != nil {
			return false, "", 0, malformed()
		}
		exponent = exp
		s = s[:idx]
	}
	intPart, fracPart := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart, fracPart = s[:idx], s[idx+1:]
	}
	if intPart == "" && fracPart == "" {
		return false, "", 0, malformed()
	}
	digits := intPart + fracPart
	if strings.Trim(digits, "0123456789") != "" {
		return false, "", 0, malformed()
	}
	exponent -= len(fracPart)
	digits = strings.TrimLeft(digits, "0")
	trimmed := strings.TrimRight(digits, "0")
	exponent += len(digits) - len(trimmed)
	if trimmed == "" {
		return false, "", 0, nil
	}
	return negative, trimmed, exponent, nil
}

func formatIssuedValue(header uint64) (string, error) {
	if header == issuedFlag {
		return "0", nil
	}
	mantissa := header & mantissaMask
	exponent := int(header>>exponentShift&exponentByteMax) - exponentBias
	if mantissa < minMantissa || mantissa > maxMantissa {
		return "", errors.Wrapf(codec.ErrOutOfRange, "mantissa %d is not normalized", mantissa)
	}
	if exponent < minExponent || exponent > maxExponent {
		return "", errors.Wrapf(codec.ErrOutOfRange, "exponent %d outside [%d, %d]", exponent, minExponent, maxExponent)
	}
	value := formatDecimal(strconv.FormatUint(mantissa, 10), exponent)
	if header&positiveFlag == 0 {
		value = "-" + value
	}
	return value, nil
}

// formatDecimal renders digits scaled by 10^exponent. Values whose leading digit sits
// outside 10^-7 < x < 10^21 use exponent notation, as in "1e-81" or "1.5e+25".
func formatDecimal(digits string, exponent int) string {
	trimmed := strings.TrimRight(digits, "0")
	if trimmed == "" {
		return "0"
	}
	exponent += len(digits) - len(trimmed)
	if leading := exponent + len(trimmed) - 1; leading <= minPlainExponent || leading >= maxPlainExponent {
		value := trimmed[:1]
		if len(trimmed) > 1 {
			value += "." + trimmed[1:]
		}
		if leading > 0 {
			return value + "e+" + strconv.Itoa(leading)
		}
		return value + "e" + strconv.Itoa(leading)
	}
	switch {
	case exponent >= 0:
		return trimmed + strings.Repeat("0", exponent)
	case -exponent < len(trimmed):
		point := len(trimmed) + exponent
		return trimmed[:point] + "." + trimmed[point:]
	default:
		return "0." + strings.Repeat("0", -exponent-len(trimmed)) + trimmed
	}
}
